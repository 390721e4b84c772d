package department

import (
	"context"

	"workforce/backend/internal/entity"
	"workforce/backend/internal/repository/postgres/department"
)

type Department interface {
	GetList(ctx context.Context, filter department.Filter) ([]department.GetListResponse, int, error)
	GetDetailById(ctx context.Context, id int) (entity.Department, error)
	Create(ctx context.Context, request department.CreateRequest) (department.CreateResponse, error)
	UpdateColumns(ctx context.Context, request department.UpdateRequest) error
	Delete(ctx context.Context, id int) error
	NameMap(ctx context.Context) (map[string]int, error)
}
