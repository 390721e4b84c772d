package user

import (
	"context"

	"workforce/backend/internal/repository/postgres/user"
)

type User interface {
	GetList(ctx context.Context, filter user.Filter) ([]user.GetListResponse, int, error)
	GetDetailById(ctx context.Context, id int) (user.GetDetailByIdResponse, error)
	Create(ctx context.Context, request user.CreateRequest) (user.CreateResponse, error)
	UpdateColumns(ctx context.Context, request user.UpdateRequest) error
	Delete(ctx context.Context, id int) error
	GetQrCodeByEmployeeID(ctx context.Context, employeeID string) (string, error)
	CredentialSets(ctx context.Context) (map[string]struct{}, map[string]struct{}, error)
	ExportRows(ctx context.Context) ([]user.ExportRow, error)
}

type DepartmentDirectory interface {
	NameMap(ctx context.Context) (map[string]int, error)
}

type PositionDirectory interface {
	NameMap(ctx context.Context) (map[string]int, error)
}
