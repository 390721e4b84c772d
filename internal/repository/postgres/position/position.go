package position

import (
	"context"
	"net/http"
	"time"

	"workforce/backend/foundation/web"
	"workforce/backend/internal/auth"
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

	whereQuery := `WHERE p.deleted_at IS NULL`
	args := []interface{}{}

	if filter.Search != nil {
		whereQuery += ` AND p.name ilike ?`
		args = append(args, "%"+*filter.Search+"%")
	}
	if filter.DepartmentID != nil {
		whereQuery += ` AND p.department_id = ?`
		args = append(args, *filter.DepartmentID)
	}

	orderQuery := " ORDER BY p.name ASC"

	var limitQuery, offsetQuery string
	if filter.Page != nil && filter.Limit != nil {
		offset := (*filter.Page - 1) * (*filter.Limit)
		filter.Offset = &offset
	}
	if filter.Limit != nil {
		limitQuery = " LIMIT ?"
		args = append(args, *filter.Limit)
	}
	if filter.Offset != nil {
		offsetQuery = " OFFSET ?"
		args = append(args, *filter.Offset)
	}

	query := `
		SELECT
			p.id,
			p.name,
			p.department_id,
			d.name
		FROM position p
		LEFT JOIN department d ON d.id = p.department_id
		` + whereQuery + orderQuery + limitQuery + offsetQuery

	rows, err := r.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, web.NewRequestError(errors.Wrap(err, "selecting positions"), http.StatusInternalServerError)
	}
	defer rows.Close()

	var list []GetListResponse
	for rows.Next() {
		var detail GetListResponse
		if err = rows.Scan(
			&detail.ID,
			&detail.Name,
			&detail.DepartmentID,
			&detail.Department,
		); err != nil {
			return nil, 0, web.NewRequestError(errors.Wrap(err, "scanning positions"), http.StatusInternalServerError)
		}
		list = append(list, detail)
	}

	count := 0
	countArgs := args
	if filter.Limit != nil {
		countArgs = countArgs[:len(countArgs)-1]
	}
	if filter.Offset != nil {
		countArgs = countArgs[:len(countArgs)-1]
	}
	countQuery := `SELECT count(p.id) FROM position p ` + whereQuery
	if err = r.QueryRowContext(ctx, countQuery, countArgs...).Scan(&count); err != nil {
		return nil, 0, web.NewRequestError(errors.Wrap(err, "counting positions"), http.StatusInternalServerError)
	}

	return list, count, nil
}

func (r Repository) Create(ctx context.Context, request CreateRequest) (CreateResponse, error) {
	claims, err := r.CheckClaims(ctx, auth.RoleAdmin)
	if err != nil {
		return CreateResponse{}, err
	}

	if err := r.ValidateStruct(&request, "Name", "DepartmentID"); err != nil {
		return CreateResponse{}, err
	}

	var response CreateResponse
	response.Name = request.Name
	response.DepartmentID = request.DepartmentID
	response.CreatedAt = time.Now()
	response.CreatedBy = claims.UserId

	_, err = r.NewInsert().Model(&response).Returning("id").Exec(ctx, &response.ID)
	if err != nil {
		return CreateResponse{}, web.NewRequestError(errors.Wrap(err, "creating position"), http.StatusBadRequest)
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

	q := r.NewUpdate().Table("position").Where("deleted_at IS NULL AND id = ?", request.ID)
	if request.Name != nil {
		q.Set("name = ?", request.Name)
	}
	if request.DepartmentID != nil {
		q.Set("department_id = ?", request.DepartmentID)
	}
	q.Set("updated_at = ?", time.Now())
	q.Set("updated_by = ?", claims.UserId)

	_, err = q.Exec(ctx)
	if err != nil {
		return web.NewRequestError(errors.Wrap(err, "updating position"), http.StatusBadRequest)
	}

	return nil
}

// NameMap returns position names keyed to ids, for resolving imported
// spreadsheets.
func (r Repository) NameMap(ctx context.Context) (map[string]int, error) {
	type row struct {
		ID   int     `bun:"id"`
		Name *string `bun:"name"`
	}

	var list []row
	err := r.NewSelect().Table("position").
		Column("id", "name").
		Where("deleted_at IS NULL").
		Scan(ctx, &list)
	if err != nil {
		return nil, web.NewRequestError(errors.Wrap(err, "selecting positions"), http.StatusInternalServerError)
	}

	nameMap := make(map[string]int, len(list))
	for _, p := range list {
		if p.Name != nil {
			nameMap[*p.Name] = p.ID
		}
	}

	return nameMap, nil
}

func (r Repository) Delete(ctx context.Context, id int) error {
	return r.DeleteRow(ctx, "position", id)
}
