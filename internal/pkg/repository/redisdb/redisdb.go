package redisdb

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

// Config is the required properties to use redis.
type Config struct {
	Host     string
	Port     string
	Password string
}

// NewClient opens a redis connection.
func NewClient(cfg Config) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		Password: cfg.Password,
	})
}

// SessionStore keeps the active refresh token per user so sign-out can
// revoke it before expiry.
type SessionStore struct {
	client *redis.Client
}

func NewSessionStore(client *redis.Client) *SessionStore {
	return &SessionStore{client: client}
}

func sessionKey(userID int) string {
	return fmt.Sprintf("session:%d", userID)
}

// Save stores the refresh token issued to a user, replacing any previous
// session.
func (s SessionStore) Save(ctx context.Context, userID int, refreshToken string, ttl time.Duration) error {
	if err := s.client.Set(ctx, sessionKey(userID), refreshToken, ttl).Err(); err != nil {
		return errors.Wrap(err, "saving session")
	}
	return nil
}

// IsActive reports whether the refresh token is the one currently issued to
// the user.
func (s SessionStore) IsActive(ctx context.Context, userID int, refreshToken string) (bool, error) {
	stored, err := s.client.Get(ctx, sessionKey(userID)).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, errors.Wrap(err, "reading session")
	}
	return stored == refreshToken, nil
}

// Revoke drops the user's session.
func (s SessionStore) Revoke(ctx context.Context, userID int) error {
	if err := s.client.Del(ctx, sessionKey(userID)).Err(); err != nil {
		return errors.Wrap(err, "revoking session")
	}
	return nil
}

// Cache is a small helper for short lived dashboard numbers.
type Cache struct {
	client *redis.Client
}

func NewCache(client *redis.Client) *Cache {
	return &Cache{client: client}
}

// Get returns the cached value, "" when absent.
func (c Cache) Get(ctx context.Context, key string) (string, error) {
	value, err := c.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", errors.Wrap(err, "reading cache")
	}
	return value, nil
}

func (c Cache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if err := c.client.Set(ctx, key, value, ttl).Err(); err != nil {
		return errors.Wrap(err, "writing cache")
	}
	return nil
}
