package task

import (
	"context"

	"workforce/backend/internal/repository/postgres/task"
)

type Task interface {
	GetList(ctx context.Context, filter task.Filter) ([]task.GetListResponse, int, error)
	Create(ctx context.Context, request task.CreateRequest) (task.CreateResponse, error)
	UpdateColumns(ctx context.Context, request task.UpdateRequest) error
	Delete(ctx context.Context, id int) error
}
