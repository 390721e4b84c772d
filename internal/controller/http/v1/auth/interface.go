package auth

import (
	"context"
	"time"

	"workforce/backend/internal/entity"
)

type User interface {
	GetByEmployeeID(ctx context.Context, employeeID string) (entity.User, error)
}

type SessionStore interface {
	Save(ctx context.Context, userID int, refreshToken string, ttl time.Duration) error
	IsActive(ctx context.Context, userID int, refreshToken string) (bool, error)
	Revoke(ctx context.Context, userID int) error
}
