package holiday

import (
	"context"
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

func (r Repository) GetList(ctx context.Context, filter Filter) ([]GetListResponse, int, error) {
	_, err := r.CheckClaims(ctx)
	if err != nil {
		return nil, 0, err
	}

	q := r.NewSelect().Model((*entity.Holiday)(nil)).
		Column("id", "name", "day").
		Where("deleted_at IS NULL").
		Order("day ASC")

	if filter.Year != nil {
		q.Where("date_part('year', day) = ?", *filter.Year)
	}
	if filter.Page != nil && filter.Limit != nil {
		q.Limit(*filter.Limit).Offset((*filter.Page - 1) * (*filter.Limit))
	} else if filter.Limit != nil {
		q.Limit(*filter.Limit)
	}

	var list []GetListResponse
	count, err := q.ScanAndCount(ctx, &list)
	if err != nil {
		return nil, 0, web.NewRequestError(errors.Wrap(err, "selecting holidays"), http.StatusInternalServerError)
	}

	return list, count, nil
}

// IsHoliday reports whether the given day is a registered holiday.
func (r Repository) IsHoliday(ctx context.Context, day string) (bool, error) {
	exists := false
	err := r.NewSelect().Model((*entity.Holiday)(nil)).
		ColumnExpr("count(id) > 0").
		Where("day = ? AND deleted_at IS NULL", day).
		Scan(ctx, &exists)
	if err != nil {
		return false, web.NewRequestError(errors.Wrap(err, "checking holiday"), http.StatusInternalServerError)
	}

	return exists, nil
}

func (r Repository) Create(ctx context.Context, request CreateRequest) (CreateResponse, error) {
	claims, err := r.CheckClaims(ctx, auth.RoleAdmin)
	if err != nil {
		return CreateResponse{}, err
	}

	if err := r.ValidateStruct(&request, "Name", "Day"); err != nil {
		return CreateResponse{}, err
	}

	day, err := time.Parse("2006-01-02", *request.Day)
	if err != nil {
		return CreateResponse{}, web.NewRequestError(errors.Wrap(err, "parsing day"), http.StatusBadRequest)
	}

	var response CreateResponse
	response.Name = request.Name
	response.Day = day.Format("2006-01-02")
	response.CreatedAt = time.Now()
	response.CreatedBy = claims.UserId

	_, err = r.NewInsert().Model(&response).Returning("id").Exec(ctx, &response.ID)
	if err != nil {
		return CreateResponse{}, web.NewRequestError(errors.Wrap(err, "creating holiday"), http.StatusBadRequest)
	}

	return response, nil
}

func (r Repository) UpdateColumns(ctx context.Context, request UpdateRequest) error {
	claims, err := r.CheckClaims(ctx, auth.RoleAdmin)
	if err != nil {
		return err
	}

	if err := r.ValidateStruct(&request, "ID"); err != nil {
		return err
	}

	q := r.NewUpdate().Table("holidays").Where("deleted_at IS NULL AND id = ?", request.ID)
	if request.Name != nil {
		q.Set("name = ?", request.Name)
	}
	if request.Day != nil {
		day, err := time.Parse("2006-01-02", *request.Day)
		if err != nil {
			return web.NewRequestError(errors.Wrap(err, "parsing day"), http.StatusBadRequest)
		}
		q.Set("day = ?", day.Format("2006-01-02"))
	}
	q.Set("updated_at = ?", time.Now())
	q.Set("updated_by = ?", claims.UserId)

	_, err = q.Exec(ctx)
	if err != nil {
		return web.NewRequestError(errors.Wrap(err, "updating holiday"), http.StatusBadRequest)
	}

	return nil
}

func (r Repository) Delete(ctx context.Context, id int) error {
	return r.DeleteRow(ctx, "holidays", id)
}
