package task

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
	claims, err := r.CheckClaims(ctx)
	if err != nil {
		return nil, 0, err
	}

	// Employees see their own tasks only.
	if claims.Role == auth.RoleEmployee {
		filter.UserID = &claims.UserId
	}

	whereQuery := `WHERE t.deleted_at IS NULL`
	args := []interface{}{}

	if filter.UserID != nil {
		whereQuery += ` AND t.user_id = ?`
		args = append(args, *filter.UserID)
	}
	if filter.Status != nil {
		whereQuery += ` AND t.status = ?`
		args = append(args, *filter.Status)
	}

	orderQuery := " ORDER BY t.due_date ASC NULLS LAST, t.id DESC"

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
			t.id,
			t.user_id,
			u.full_name,
			t.title,
			t.description,
			t.status,
			t.due_date
		FROM tasks t
		LEFT JOIN users u ON u.id = t.user_id
		` + whereQuery + orderQuery + limitQuery + offsetQuery

	rows, err := r.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, web.NewRequestError(errors.Wrap(err, "selecting tasks"), http.StatusInternalServerError)
	}
	defer rows.Close()

	var list []GetListResponse
	for rows.Next() {
		var detail GetListResponse
		if err = rows.Scan(
			&detail.ID,
			&detail.UserID,
			&detail.FullName,
			&detail.Title,
			&detail.Description,
			&detail.Status,
			&detail.DueDate,
		); err != nil {
			return nil, 0, web.NewRequestError(errors.Wrap(err, "scanning tasks"), http.StatusInternalServerError)
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
	countQuery := `SELECT count(t.id) FROM tasks t ` + whereQuery
	if err = r.QueryRowContext(ctx, countQuery, countArgs...).Scan(&count); err != nil {
		return nil, 0, web.NewRequestError(errors.Wrap(err, "counting tasks"), http.StatusInternalServerError)
	}

	return list, count, nil
}

func (r Repository) Create(ctx context.Context, request CreateRequest) (CreateResponse, error) {
	claims, err := r.CheckClaims(ctx, auth.RoleAdmin)
	if err != nil {
		return CreateResponse{}, err
	}

	if err := r.ValidateStruct(&request, "UserID", "Title"); err != nil {
		return CreateResponse{}, err
	}

	var response CreateResponse
	response.UserID = *request.UserID
	response.Title = request.Title
	response.Description = request.Description
	response.Status = entity.TaskTodo
	response.DueDate = request.DueDate
	response.CreatedAt = time.Now()
	response.CreatedBy = claims.UserId

	_, err = r.NewInsert().Model(&response).Returning("id").Exec(ctx, &response.ID)
	if err != nil {
		return CreateResponse{}, web.NewRequestError(errors.Wrap(err, "creating task"), http.StatusBadRequest)
	}

	return response, nil
}

// UpdateColumns edits a task. Employees may only move their own tasks between
// statuses; admins may edit everything.
func (r Repository) UpdateColumns(ctx context.Context, request UpdateRequest) error {
	claims, err := r.CheckClaims(ctx)
	if err != nil {
		return err
	}

	if err := r.ValidateStruct(&request, "ID"); err != nil {
		return err
	}

	if request.Status != nil {
		switch *request.Status {
		case entity.TaskTodo, entity.TaskInProgress, entity.TaskDone:
		default:
			return web.NewRequestError(errors.New("status should be TODO, IN_PROGRESS or DONE"), http.StatusBadRequest)
		}
	}

	q := r.NewUpdate().Table("tasks").Where("deleted_at IS NULL AND id = ?", request.ID)
	if claims.Role == auth.RoleEmployee {
		q.Where("user_id = ?", claims.UserId)
	} else {
		if request.Title != nil {
			q.Set("title = ?", request.Title)
		}
		if request.Description != nil {
			q.Set("description = ?", request.Description)
		}
		if request.DueDate != nil {
			q.Set("due_date = ?", request.DueDate)
		}
	}
	if request.Status != nil {
		q.Set("status = ?", request.Status)
	}
	q.Set("updated_at = ?", time.Now())
	q.Set("updated_by = ?", claims.UserId)

	result, err := q.Exec(ctx)
	if err != nil {
		return web.NewRequestError(errors.Wrap(err, "updating task"), http.StatusBadRequest)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return web.NewRequestError(errors.Wrap(err, "checking rows affected"), http.StatusInternalServerError)
	}
	if affected == 0 {
		return web.NewRequestError(errors.New("no task with this id"), http.StatusNotFound)
	}

	return nil
}

func (r Repository) Delete(ctx context.Context, id int) error {
	if _, err := r.CheckClaims(ctx, auth.RoleAdmin); err != nil {
		return err
	}
	return r.DeleteRow(ctx, "tasks", id)
}
