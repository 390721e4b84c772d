package officeinfo

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"workforce/backend/foundation/web"
	"workforce/backend/internal/auth"
	"workforce/backend/internal/entity"
	"workforce/backend/internal/pkg/repository/postgresql"

	"github.com/pkg/errors"
)

type Repository struct {
	*postgresql.Database
}

func NewRepository(database *postgresql.Database) *Repository {
	return &Repository{Database: database}
}

// Get returns the single company profile row. The profile must be seeded
// before office-mode check-ins can be verified.
func (r Repository) Get(ctx context.Context) (entity.OfficeInfo, error) {
	var detail entity.OfficeInfo
	err := r.NewSelect().Model(&detail).Where("deleted_at IS NULL").Limit(1).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return entity.OfficeInfo{}, web.NewRequestError(errors.New("office info is not configured"), http.StatusNotFound)
	}
	if err != nil {
		return entity.OfficeInfo{}, web.NewRequestError(errors.Wrap(err, "selecting office info"), http.StatusInternalServerError)
	}

	return detail, nil
}

func (r Repository) UpdateColumns(ctx context.Context, request UpdateRequest) error {
	claims, err := r.CheckClaims(ctx, auth.RoleAdmin)
	if err != nil {
		return err
	}

	if err := r.ValidateStruct(&request, "ID"); err != nil {
		return err
	}

	q := r.NewUpdate().Table("office_info").Where("deleted_at IS NULL AND id = ?", request.ID)
	if request.CompanyName != nil {
		q.Set("company_name = ?", request.CompanyName)
	}
	if request.Latitude != nil {
		q.Set("latitude = ?", request.Latitude)
	}
	if request.Longitude != nil {
		q.Set("longitude = ?", request.Longitude)
	}
	if request.Radius != nil {
		q.Set("radius = ?", request.Radius)
	}
	if request.StartTime != nil {
		q.Set("start_time = ?", request.StartTime)
	}
	if request.EndTime != nil {
		q.Set("end_time = ?", request.EndTime)
	}
	if request.LateTime != nil {
		q.Set("late_time = ?", request.LateTime)
	}
	q.Set("updated_at = ?", time.Now())
	q.Set("updated_by = ?", claims.UserId)

	_, err = q.Exec(ctx)
	if err != nil {
		return web.NewRequestError(errors.Wrap(err, "updating office info"), http.StatusBadRequest)
	}

	return nil
}
