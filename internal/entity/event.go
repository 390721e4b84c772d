package entity

import (
	"time"

	"github.com/uptrace/bun"
)

// EventType tells whether an attendance event opens or closes a work session.
type EventType string

const (
	EventCheckIn  EventType = "checkin"
	EventCheckOut EventType = "checkout"
)

// EventMode tells how an attendance event was recorded.
type EventMode string

const (
	ModeOffice EventMode = "office"
	ModeRemote EventMode = "remote"
)

// Location is a geotag attached to office-mode events.
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Address   string  `json:"address,omitempty"`
}

// AttendanceEvent is one row of the append-only attendance log. Rows are
// never updated or deleted once written.
type AttendanceEvent struct {
	bun.BaseModel `bun:"table:attendance_events"`

	ID        int       `json:"id" bun:"id,pk,autoincrement"`
	UserID    int       `json:"user_id" bun:"user_id"`
	Type      EventType `json:"type" bun:"type"`
	Timestamp time.Time `json:"timestamp" bun:"event_time"`
	Mode      EventMode `json:"mode" bun:"mode"`
	Latitude  *float64  `json:"latitude,omitempty" bun:"latitude"`
	Longitude *float64  `json:"longitude,omitempty" bun:"longitude"`
	Address   *string   `json:"address,omitempty" bun:"address"`
	Photo     *string   `json:"photo,omitempty" bun:"photo"`
	Notes     *string   `json:"notes,omitempty" bun:"notes"`
	CreatedAt time.Time `json:"created_at" bun:"created_at"`
}

// Location returns the geotag of the event, if one was recorded.
func (e AttendanceEvent) Location() *Location {
	if e.Latitude == nil || e.Longitude == nil {
		return nil
	}
	loc := Location{Latitude: *e.Latitude, Longitude: *e.Longitude}
	if e.Address != nil {
		loc.Address = *e.Address
	}
	return &loc
}
