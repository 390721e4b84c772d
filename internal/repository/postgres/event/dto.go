package event

import (
	"time"

	"workforce/backend/internal/entity"

	"github.com/Azure/go-autorest/autorest/date"
)

type Filter struct {
	Limit    *int
	Offset   *int
	Page     *int
	UserID   *int
	Type     *string
	Mode     *string
	DateFrom *date.Date
	DateTo   *date.Date
}

type GetListResponse struct {
	ID         int              `json:"id"`
	UserID     int              `json:"user_id"`
	EmployeeID *string          `json:"employee_id"`
	FullName   *string          `json:"full_name"`
	Type       entity.EventType `json:"type"`
	Mode       entity.EventMode `json:"mode"`
	Timestamp  time.Time        `json:"timestamp"`
	Latitude   *float64         `json:"latitude,omitempty"`
	Longitude  *float64         `json:"longitude,omitempty"`
	Address    *string          `json:"address,omitempty"`
	Notes      *string          `json:"notes,omitempty"`
}
