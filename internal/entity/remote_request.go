package entity

import (
	"github.com/uptrace/bun"
)

// RemoteWorkRequest statuses.
const (
	RequestPending  = "PENDING"
	RequestApproved = "APPROVED"
	RequestRejected = "REJECTED"
)

type RemoteWorkRequest struct {
	bun.BaseModel `bun:"table:remote_work_requests"`

	BasicEntity
	UserID      int     `json:"user_id" bun:"user_id"`
	RequestDate string  `json:"request_date" bun:"request_date"`
	Status      string  `json:"status" bun:"status"`
	Reason      *string `json:"reason" bun:"reason"`
	ReviewedBy  *int    `json:"reviewed_by" bun:"reviewed_by"`
}
