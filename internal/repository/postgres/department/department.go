package department

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"workforce/backend/foundation/web"
	"workforce/backend/internal/auth"
	"workforce/backend/internal/entity"
	"workforce/backend/internal/pkg/repository/postgresql"
	"workforce/backend/internal/repository/postgres"

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

	q := r.NewSelect().Model((*entity.Department)(nil)).
		Column("id", "name").
		Where("deleted_at IS NULL").
		Order("name ASC")

	if filter.Search != nil {
		q.Where("name ilike ?", "%"+*filter.Search+"%")
	}
	if filter.Page != nil && filter.Limit != nil {
		offset := (*filter.Page - 1) * (*filter.Limit)
		filter.Offset = &offset
	}
	if filter.Limit != nil {
		q.Limit(*filter.Limit)
	}
	if filter.Offset != nil {
		q.Offset(*filter.Offset)
	}

	var list []GetListResponse
	count, err := q.ScanAndCount(ctx, &list)
	if err != nil {
		return nil, 0, web.NewRequestError(errors.Wrap(err, "selecting departments"), http.StatusInternalServerError)
	}

	return list, count, nil
}

func (r Repository) GetDetailById(ctx context.Context, id int) (entity.Department, error) {
	_, err := r.CheckClaims(ctx)
	if err != nil {
		return entity.Department{}, err
	}

	var detail entity.Department
	err = r.NewSelect().Model(&detail).Where("id = ? AND deleted_at IS NULL", id).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return entity.Department{}, web.NewRequestError(postgres.ErrNotFound, http.StatusNotFound)
	}
	if err != nil {
		return entity.Department{}, web.NewRequestError(errors.Wrap(err, "selecting department"), http.StatusInternalServerError)
	}

	return detail, nil
}

func (r Repository) Create(ctx context.Context, request CreateRequest) (CreateResponse, error) {
	claims, err := r.CheckClaims(ctx, auth.RoleAdmin)
	if err != nil {
		return CreateResponse{}, err
	}

	if err := r.ValidateStruct(&request, "Name"); err != nil {
		return CreateResponse{}, err
	}

	var response CreateResponse
	response.Name = request.Name
	response.CreatedAt = time.Now()
	response.CreatedBy = claims.UserId

	_, err = r.NewInsert().Model(&response).Returning("id").Exec(ctx, &response.ID)
	if err != nil {
		return CreateResponse{}, web.NewRequestError(errors.Wrap(err, "creating department"), http.StatusBadRequest)
	}

	return response, nil
}

func (r Repository) UpdateColumns(ctx context.Context, request UpdateRequest) error {
	claims, err := r.CheckClaims(ctx, auth.RoleAdmin)
	if err != nil {
		return err
	}

	if err := r.ValidateStruct(&request, "ID", "Name"); err != nil {
		return err
	}

	q := r.NewUpdate().Table("department").Where("deleted_at IS NULL AND id = ?", request.ID)
	q.Set("name = ?", request.Name)
	q.Set("updated_at = ?", time.Now())
	q.Set("updated_by = ?", claims.UserId)

	_, err = q.Exec(ctx)
	if err != nil {
		return web.NewRequestError(errors.Wrap(err, "updating department"), http.StatusBadRequest)
	}

	return nil
}

// NameMap returns department names keyed to ids, for resolving imported
// spreadsheets.
func (r Repository) NameMap(ctx context.Context) (map[string]int, error) {
	var list []GetListResponse
	err := r.NewSelect().Model((*entity.Department)(nil)).
		Column("id", "name").
		Where("deleted_at IS NULL").
		Scan(ctx, &list)
	if err != nil {
		return nil, web.NewRequestError(errors.Wrap(err, "selecting departments"), http.StatusInternalServerError)
	}

	nameMap := make(map[string]int, len(list))
	for _, d := range list {
		if d.Name != nil {
			nameMap[*d.Name] = d.ID
		}
	}

	return nameMap, nil
}

func (r Repository) Delete(ctx context.Context, id int) error {
	return r.DeleteRow(ctx, "department", id)
}
