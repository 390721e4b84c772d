package entity

import (
	"github.com/uptrace/bun"
)

// OfficeInfo is the single-row company profile used to verify office-mode
// check-ins (geofence) and to render report headers.
type OfficeInfo struct {
	bun.BaseModel `bun:"table:office_info"`

	BasicEntity
	CompanyName string  `json:"company_name" bun:"company_name"`
	Latitude    float64 `json:"latitude" bun:"latitude"`
	Longitude   float64 `json:"longitude" bun:"longitude"`
	Radius      float64 `json:"radius" bun:"radius"`
	StartTime   string  `json:"start_time" bun:"start_time"`
	EndTime     string  `json:"end_time" bun:"end_time"`
	LateTime    string  `json:"late_time" bun:"late_time"`
}
