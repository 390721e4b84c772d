package entity

import (
	"github.com/uptrace/bun"
)

type LeaveRequest struct {
	bun.BaseModel `bun:"table:leave_requests"`

	BasicEntity
	UserID     int     `json:"user_id" bun:"user_id"`
	StartDate  string  `json:"start_date" bun:"start_date"`
	EndDate    string  `json:"end_date" bun:"end_date"`
	LeaveType  *string `json:"leave_type" bun:"leave_type"`
	Status     string  `json:"status" bun:"status"`
	Reason     *string `json:"reason" bun:"reason"`
	ReviewedBy *int    `json:"reviewed_by" bun:"reviewed_by"`
}
