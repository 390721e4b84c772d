package officeinfo

import (
	"context"

	"workforce/backend/internal/entity"
	"workforce/backend/internal/repository/postgres/officeinfo"
)

type OfficeInfo interface {
	Get(ctx context.Context) (entity.OfficeInfo, error)
	UpdateColumns(ctx context.Context, request officeinfo.UpdateRequest) error
}
