package reconciler

import (
	"context"
	"log"
	"math"
	"time"

	"workforce/backend/internal/entity"

	"github.com/Azure/go-autorest/autorest/date"
	"github.com/pkg/errors"
)

// remoteStartHour is the local hour a synthesized remote check-in is pinned
// to when an approved remote-work request exists without a physical event.
const remoteStartHour = 10

// Status is the derived attendance state of one user for one calendar day.
type Status string

const (
	StatusNotCheckedIn    Status = "not_checked_in"
	StatusCheckedIn       Status = "checked_in"
	StatusCheckedOut      Status = "checked_out"
	StatusPendingApproval Status = "pending_approval"
)

// DayStatus is computed on every call and never persisted.
type DayStatus struct {
	Status       Status     `json:"status"`
	CheckInTime  *time.Time `json:"check_in_time"`
	CheckOutTime *time.Time `json:"check_out_time"`
	HoursWorked  float64    `json:"hours_worked"`
	IsRemote     bool       `json:"is_remote"`
}

// RangeSummary aggregates paired sessions across an inclusive day range.
type RangeSummary struct {
	TotalHours         float64 `json:"total_hours"`
	DaysWorked         int     `json:"days_worked"`
	CheckInCount       int     `json:"check_in_count"`
	CheckOutCount      int     `json:"check_out_count"`
	AverageHoursPerDay float64 `json:"average_hours_per_day"`
}

// EventStore is the append-only attendance log collaborator.
//
// InsertEvent must evaluate guard against the latest event of the given
// window and perform the insert inside one serializable transaction scoped
// to the user, so two concurrent check-ins cannot both pass the guard.
type EventStore interface {
	QueryEvents(ctx context.Context, userID int, since, until time.Time) ([]entity.AttendanceEvent, error)
	LastCheckIn(ctx context.Context, userID int) (*entity.AttendanceEvent, error)
	InsertEvent(ctx context.Context, event entity.AttendanceEvent, since, until time.Time, guard func(latest *entity.AttendanceEvent) error) (entity.AttendanceEvent, error)
}

// RemoteRequestStore resolves the most relevant remote-work request for a
// user and day; approved requests take precedence over pending ones. A nil
// request means none exists.
type RemoteRequestStore interface {
	FindRequest(ctx context.Context, userID int, day date.Date) (*entity.RemoteWorkRequest, error)
}

// Service derives a consistent attendance view from the raw event log. It
// holds no state between calls; every computation re-reads the log.
type Service struct {
	events EventStore
	remote RemoteRequestStore
	clock  Clock
}

func NewService(events EventStore, remote RemoteRequestStore, clock Clock) *Service {
	return &Service{events: events, remote: remote, clock: clock}
}

// RecordEventInput describes one check-in or check-out action.
type RecordEventInput struct {
	UserID int
	Type   entity.EventType
	// Timestamp defaults to the current instant when nil.
	Timestamp *time.Time
	Mode      entity.EventMode
	Location  *entity.Location
	Notes     *string
	Photo     *string
	// TimezoneOffset is the caller's offset from UTC in hours. May be
	// fractional for half-hour zones.
	TimezoneOffset float64
}

// RecordEvent appends one immutable event after running the duplicate and
// location guards. "Today" is determined by the caller's timezone offset,
// not by the server's local zone.
func (s *Service) RecordEvent(ctx context.Context, in RecordEventInput) (entity.AttendanceEvent, error) {
	if in.Type != entity.EventCheckIn && in.Type != entity.EventCheckOut {
		return entity.AttendanceEvent{}, errors.Errorf("unknown event type: %s", in.Type)
	}
	if in.Mode != entity.ModeOffice && in.Mode != entity.ModeRemote {
		return entity.AttendanceEvent{}, errors.Errorf("unknown event mode: %s", in.Mode)
	}

	ts := s.clock.Now().UTC()
	if in.Timestamp != nil {
		ts = in.Timestamp.UTC()
	}

	if in.Type == entity.EventCheckIn && in.Mode == entity.ModeOffice && in.Location == nil {
		return entity.AttendanceEvent{}, ErrMissingLocation
	}

	// A checkout closing an office session needs a location too, unless the
	// caller explicitly flags the checkout itself as remote.
	if in.Type == entity.EventCheckOut && in.Mode != entity.ModeRemote && in.Location == nil {
		last, err := s.events.LastCheckIn(ctx, in.UserID)
		if err != nil {
			return entity.AttendanceEvent{}, errors.Wrap(err, "loading last check-in")
		}
		if last != nil && last.Mode == entity.ModeOffice {
			return entity.AttendanceEvent{}, ErrMissingLocation
		}
	}

	event := entity.AttendanceEvent{
		UserID:    in.UserID,
		Type:      in.Type,
		Timestamp: ts,
		Mode:      in.Mode,
		Notes:     in.Notes,
		Photo:     in.Photo,
		CreatedAt: s.clock.Now().UTC(),
	}
	if in.Location != nil {
		lat, lon := in.Location.Latitude, in.Location.Longitude
		event.Latitude = &lat
		event.Longitude = &lon
		if in.Location.Address != "" {
			addr := in.Location.Address
			event.Address = &addr
		}
	}

	since, until := dayWindow(localDate(ts, in.TimezoneOffset), in.TimezoneOffset)

	guard := func(latest *entity.AttendanceEvent) error {
		switch in.Type {
		case entity.EventCheckIn:
			if latest != nil && latest.Type == entity.EventCheckIn {
				return ErrDuplicateCheckIn
			}
		case entity.EventCheckOut:
			if latest == nil {
				return ErrCheckOutWithoutCheckIn
			}
			if latest.Type == entity.EventCheckOut {
				return ErrDuplicateCheckOut
			}
		}
		return nil
	}

	return s.events.InsertEvent(ctx, event, since, until, guard)
}

// DailyStatus derives the attendance state of one user for one calendar day
// in a single pass over the day's events.
func (s *Service) DailyStatus(ctx context.Context, userID int, day date.Date, tzOffset float64) (DayStatus, error) {
	since, until := dayWindow(day, tzOffset)

	events, err := s.events.QueryEvents(ctx, userID, since, until)
	if err != nil {
		return DayStatus{}, errors.Wrap(err, "querying events")
	}

	status := DayStatus{Status: StatusNotCheckedIn}

	// Last event wins for the current status. A fresh check-in after a
	// completed session restarts tracking, but hours still count every
	// completed pair of the day.
	var checkIn, checkOut *entity.AttendanceEvent
	for i := range events {
		e := &events[i]
		switch e.Type {
		case entity.EventCheckIn:
			checkIn = e
			checkOut = nil
			status.Status = StatusCheckedIn
		case entity.EventCheckOut:
			checkOut = e
			status.Status = StatusCheckedOut
		}
	}

	now := s.clock.Now().UTC()

	if checkIn == nil && checkOut == nil {
		request, err := s.remote.FindRequest(ctx, userID, day)
		if err != nil {
			return DayStatus{}, errors.Wrap(err, "querying remote request")
		}
		if request == nil {
			return status, nil
		}

		switch request.Status {
		case entity.RequestApproved:
			// Synthesize a virtual check-in at the default remote start,
			// never later than now.
			synthetic := since.Add(remoteStartHour * time.Hour)
			if synthetic.After(now) {
				synthetic = now
			}
			status.Status = StatusCheckedIn
			status.IsRemote = true
			status.CheckInTime = &synthetic
			status.HoursWorked = round2(s.clampHours(userID, now.Sub(synthetic)))
		case entity.RequestPending:
			status.Status = StatusPendingApproval
		}
		return status, nil
	}

	if checkIn != nil {
		t := checkIn.Timestamp
		status.CheckInTime = &t
		status.IsRemote = checkIn.Mode == entity.ModeRemote
	}
	if checkOut != nil {
		t := checkOut.Timestamp
		status.CheckOutTime = &t
	}

	hours, _, open := s.pairedHours(userID, events)
	if open != nil {
		// Open session: live-updating duration measured to now.
		hours += s.clampHours(userID, now.Sub(open.Timestamp))
	}
	status.HoursWorked = round2(hours)

	return status, nil
}

// SummarizeRange applies the daily pairing logic across every day of the
// inclusive range.
func (s *Service) SummarizeRange(ctx context.Context, userID int, start, end date.Date, tzOffset float64) (RangeSummary, error) {
	if end.Before(start.Time) {
		return RangeSummary{}, errors.New("end date before start date")
	}

	since, _ := dayWindow(start, tzOffset)
	_, until := dayWindow(end, tzOffset)

	events, err := s.events.QueryEvents(ctx, userID, since, until)
	if err != nil {
		return RangeSummary{}, errors.Wrap(err, "querying events")
	}

	byDay := make(map[string][]entity.AttendanceEvent)
	for _, e := range events {
		key := localDate(e.Timestamp, tzOffset).String()
		byDay[key] = append(byDay[key], e)
	}

	now := s.clock.Now().UTC()
	today := localDate(now, tzOffset).String()

	var summary RangeSummary
	for cursor := start.Time; !cursor.After(end.Time); cursor = cursor.AddDate(0, 0, 1) {
		day := date.Date{Time: cursor}
		bucket := byDay[day.String()]
		if len(bucket) == 0 {
			continue
		}

		for _, e := range bucket {
			switch e.Type {
			case entity.EventCheckIn:
				summary.CheckInCount++
			case entity.EventCheckOut:
				summary.CheckOutCount++
			}
		}

		// A day counts as worked once it has a complete pair, even a
		// zero-length one.
		hours, pairs, open := s.pairedHours(userID, bucket)
		if pairs >= 1 {
			summary.DaysWorked++
		}
		// A still-open session counts only when the range reaches today.
		if open != nil && day.String() == today {
			hours += s.clampHours(userID, now.Sub(open.Timestamp))
		}
		summary.TotalHours += hours
	}

	summary.TotalHours = round2(summary.TotalHours)
	summary.AverageHoursPerDay = round2(summary.TotalHours / math.Max(1, float64(summary.DaysWorked)))

	return summary, nil
}

// pairedHours sums the durations of all complete checkin→checkout pairs,
// pairing each check-in with the next checkout that follows it before
// another check-in. It returns the completed-pair count and the still-open
// check-in, if any.
func (s *Service) pairedHours(userID int, events []entity.AttendanceEvent) (float64, int, *entity.AttendanceEvent) {
	var total float64
	var pairs int
	var open *entity.AttendanceEvent

	for i := range events {
		e := &events[i]
		switch e.Type {
		case entity.EventCheckIn:
			open = e
		case entity.EventCheckOut:
			if open == nil {
				continue
			}
			total += s.clampHours(userID, e.Timestamp.Sub(open.Timestamp))
			pairs++
			open = nil
		}
	}

	return total, pairs, open
}

// clampHours converts a duration to hours, clamping negatives to zero. A
// negative pair means the stored instants are skewed; the anomaly is logged
// and never fails the request.
func (s *Service) clampHours(userID int, d time.Duration) float64 {
	if d < 0 {
		log.Printf("clock anomaly: user %d negative duration %s clamped to 0", userID, d)
		return 0
	}
	return d.Hours()
}

// dayWindow maps a local calendar day to its UTC instant window. The local
// day boundary is found by shifting UTC by the caller's offset, so the
// server's own zone never leaks in.
func dayWindow(day date.Date, tzOffset float64) (time.Time, time.Time) {
	shift := time.Duration(tzOffset * float64(time.Hour))
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC).Add(-shift)
	return start, start.Add(24 * time.Hour)
}

// localDate converts an absolute instant to the caller's calendar date.
func localDate(t time.Time, tzOffset float64) date.Date {
	shift := time.Duration(tzOffset * float64(time.Hour))
	local := t.UTC().Add(shift)
	return date.Date{Time: time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC)}
}

// Today returns the caller's current calendar date.
func (s *Service) Today(tzOffset float64) date.Date {
	return localDate(s.clock.Now().UTC(), tzOffset)
}

func round2(hours float64) float64 {
	return math.Round(hours*100) / 100
}
