package holiday

import (
	"context"

	"workforce/backend/internal/repository/postgres/holiday"
)

type Holiday interface {
	GetList(ctx context.Context, filter holiday.Filter) ([]holiday.GetListResponse, int, error)
	Create(ctx context.Context, request holiday.CreateRequest) (holiday.CreateResponse, error)
	UpdateColumns(ctx context.Context, request holiday.UpdateRequest) error
	Delete(ctx context.Context, id int) error
}
