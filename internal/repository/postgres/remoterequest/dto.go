package remoterequest

import (
	"time"

	"github.com/Azure/go-autorest/autorest/date"
	"github.com/uptrace/bun"
)

type Filter struct {
	Limit  *int
	Offset *int
	Page   *int
	UserID *int
	Status *string
}

type CreateRequest struct {
	RequestDate *string `json:"request_date" form:"request_date"`
	Reason      *string `json:"reason" form:"reason"`
}

type CreateResponse struct {
	bun.BaseModel `bun:"table:remote_work_requests"`

	ID          int       `json:"id" bun:"-"`
	UserID      int       `json:"user_id" bun:"user_id"`
	RequestDate string    `json:"request_date" bun:"request_date"`
	Status      string    `json:"status" bun:"status"`
	Reason      *string   `json:"reason" bun:"reason"`
	CreatedAt   time.Time `json:"-" bun:"created_at"`
	CreatedBy   int       `json:"-" bun:"created_by"`
}

type GetListResponse struct {
	ID          int        `json:"id"`
	UserID      int        `json:"user_id"`
	EmployeeID  *string    `json:"employee_id"`
	FullName    *string    `json:"full_name"`
	RequestDate *date.Date `json:"request_date"`
	Status      string     `json:"status"`
	Reason      *string    `json:"reason"`
	ReviewedBy  *int       `json:"reviewed_by"`
}

type ReviewRequest struct {
	ID     int    `json:"id" form:"id"`
	Status string `json:"status" form:"status"`
}
