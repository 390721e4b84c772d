package leave

import (
	"context"

	"workforce/backend/internal/repository/postgres/leave"
)

type Leave interface {
	Create(ctx context.Context, request leave.CreateRequest) (leave.CreateResponse, error)
	GetList(ctx context.Context, filter leave.Filter) ([]leave.GetListResponse, int, error)
	Review(ctx context.Context, request leave.ReviewRequest) error
	Delete(ctx context.Context, id int) error
}
