package position

import (
	"context"

	"workforce/backend/internal/repository/postgres/position"
)

type Position interface {
	GetList(ctx context.Context, filter position.Filter) ([]position.GetListResponse, int, error)
	Create(ctx context.Context, request position.CreateRequest) (position.CreateResponse, error)
	UpdateColumns(ctx context.Context, request position.UpdateRequest) error
	Delete(ctx context.Context, id int) error
	NameMap(ctx context.Context) (map[string]int, error)
}
