package remoterequest

import (
	"context"

	"workforce/backend/internal/repository/postgres/remoterequest"
)

type RemoteRequest interface {
	Create(ctx context.Context, request remoterequest.CreateRequest) (remoterequest.CreateResponse, error)
	GetList(ctx context.Context, filter remoterequest.Filter) ([]remoterequest.GetListResponse, int, error)
	Review(ctx context.Context, request remoterequest.ReviewRequest) error
	Delete(ctx context.Context, id int) error
}
