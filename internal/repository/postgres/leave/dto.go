package leave

import (
	"time"

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
	StartDate *string `json:"start_date" form:"start_date"`
	EndDate   *string `json:"end_date" form:"end_date"`
	LeaveType *string `json:"leave_type" form:"leave_type"`
	Reason    *string `json:"reason" form:"reason"`
}

type CreateResponse struct {
	bun.BaseModel `bun:"table:leave_requests"`

	ID        int       `json:"id" bun:"-"`
	UserID    int       `json:"user_id" bun:"user_id"`
	StartDate string    `json:"start_date" bun:"start_date"`
	EndDate   string    `json:"end_date" bun:"end_date"`
	LeaveType *string   `json:"leave_type" bun:"leave_type"`
	Status    string    `json:"status" bun:"status"`
	Reason    *string   `json:"reason" bun:"reason"`
	CreatedAt time.Time `json:"-" bun:"created_at"`
	CreatedBy int       `json:"-" bun:"created_by"`
}

type GetListResponse struct {
	ID         int     `json:"id"`
	UserID     int     `json:"user_id"`
	EmployeeID *string `json:"employee_id"`
	FullName   *string `json:"full_name"`
	StartDate  string  `json:"start_date"`
	EndDate    string  `json:"end_date"`
	LeaveType  *string `json:"leave_type"`
	Status     string  `json:"status"`
	Reason     *string `json:"reason"`
	ReviewedBy *int    `json:"reviewed_by"`
}

type ReviewRequest struct {
	ID     int    `json:"id" form:"id"`
	Status string `json:"status" form:"status"`
}
