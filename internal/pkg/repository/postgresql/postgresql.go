package postgresql

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"reflect"
	"strings"
	"time"

	"workforce/backend/foundation/web"
	"workforce/backend/internal/auth"

	"github.com/pkg/errors"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/extra/bundebug"
)

// Config is the required properties to use the database.
type Config struct {
	User       string
	Password   string
	Host       string
	Port       string
	Name       string
	DisableTLS bool
}

// Database wraps the bun connection with request scoped helpers shared by
// every repository.
type Database struct {
	*bun.DB
}

// NewDB opens a postgres connection through pgdriver and attaches the debug
// query hook.
func NewDB(cfg Config) *Database {
	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s", cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.Name)

	options := []pgdriver.Option{
		pgdriver.WithDSN(dsn),
		pgdriver.WithTimeout(30 * time.Second),
	}
	if cfg.DisableTLS {
		options = append(options, pgdriver.WithInsecure(true))
	}

	sqldb := sql.OpenDB(pgdriver.NewConnector(options...))
	db := bun.NewDB(sqldb, pgdialect.New())
	db.AddQueryHook(bundebug.NewQueryHook(bundebug.FromEnv("BUNDEBUG")))

	return &Database{DB: db}
}

// CheckClaims pulls the auth claims out of the request context and, when
// roles are given, verifies the caller holds one of them.
func (d Database) CheckClaims(ctx context.Context, roles ...string) (auth.Claims, error) {
	claims, ok := ctx.Value(auth.Key).(auth.Claims)
	if !ok {
		return auth.Claims{}, web.NewRequestError(errors.New("claims missing from context"), http.StatusUnauthorized)
	}

	if len(roles) > 0 && !claims.Authorized(roles...) {
		return auth.Claims{}, web.NewRequestError(errors.New("attempted action is not allowed"), http.StatusUnauthorized)
	}

	return claims, nil
}

// ValidateStruct verifies the named fields of the request struct are present.
// Pointer fields must be non-nil, strings non-empty.
func (d Database) ValidateStruct(s interface{}, requiredFields ...string) error {
	v := reflect.ValueOf(s)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}

	var missing []string
	for _, name := range requiredFields {
		f := v.FieldByName(name)
		if !f.IsValid() {
			missing = append(missing, name)
			continue
		}
		switch f.Kind() {
		case reflect.Ptr:
			if f.IsNil() {
				missing = append(missing, name)
			}
		case reflect.String:
			if f.String() == "" {
				missing = append(missing, name)
			}
		}
	}

	if len(missing) > 0 {
		return web.NewRequestError(errors.Errorf("required fields: %s", strings.Join(missing, ", ")), http.StatusBadRequest)
	}

	return nil
}

// DeleteRow soft deletes a row by id, stamping who removed it.
func (d Database) DeleteRow(ctx context.Context, table string, id int) error {
	claims, err := d.CheckClaims(ctx)
	if err != nil {
		return err
	}

	q := d.NewUpdate().Table(table).Where("deleted_at IS NULL AND id = ?", id)
	q.Set("deleted_at = ?", time.Now())
	q.Set("deleted_by = ?", claims.UserId)

	result, err := q.Exec(ctx)
	if err != nil {
		return web.NewRequestError(errors.Wrapf(err, "deleting from %s", table), http.StatusBadRequest)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return web.NewRequestError(errors.Wrap(err, "checking rows affected"), http.StatusInternalServerError)
	}
	if affected == 0 {
		return web.NewRequestError(errors.Errorf("row not found in %s", table), http.StatusNotFound)
	}

	return nil
}
