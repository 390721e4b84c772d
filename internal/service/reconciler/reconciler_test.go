package reconciler

import (
	"context"
	"sort"
	"testing"
	"time"

	"workforce/backend/internal/entity"

	"github.com/Azure/go-autorest/autorest/date"
	"github.com/pkg/errors"
)

type fakeEventStore struct {
	events []entity.AttendanceEvent
	nextID int
}

func (f *fakeEventStore) QueryEvents(_ context.Context, userID int, since, until time.Time) ([]entity.AttendanceEvent, error) {
	var out []entity.AttendanceEvent
	for _, e := range f.events {
		if e.UserID != userID {
			continue
		}
		if e.Timestamp.Before(since) || !e.Timestamp.Before(until) {
			continue
		}
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Timestamp.Equal(out[j].Timestamp) {
			return out[i].ID < out[j].ID
		}
		return out[i].Timestamp.Before(out[j].Timestamp)
	})
	return out, nil
}

func (f *fakeEventStore) LastCheckIn(_ context.Context, userID int) (*entity.AttendanceEvent, error) {
	var last *entity.AttendanceEvent
	for i := range f.events {
		e := &f.events[i]
		if e.UserID != userID || e.Type != entity.EventCheckIn {
			continue
		}
		if last == nil || e.Timestamp.After(last.Timestamp) {
			last = e
		}
	}
	return last, nil
}

func (f *fakeEventStore) InsertEvent(ctx context.Context, event entity.AttendanceEvent, since, until time.Time, guard func(latest *entity.AttendanceEvent) error) (entity.AttendanceEvent, error) {
	window, err := f.QueryEvents(ctx, event.UserID, since, until)
	if err != nil {
		return entity.AttendanceEvent{}, err
	}
	var latest *entity.AttendanceEvent
	if len(window) > 0 {
		latest = &window[len(window)-1]
	}
	if err := guard(latest); err != nil {
		return entity.AttendanceEvent{}, err
	}
	f.nextID++
	event.ID = f.nextID
	f.events = append(f.events, event)
	return event, nil
}

type fakeRemoteStore struct {
	request *entity.RemoteWorkRequest
	day     string
}

func (f *fakeRemoteStore) FindRequest(_ context.Context, userID int, day date.Date) (*entity.RemoteWorkRequest, error) {
	if f.request == nil || f.request.UserID != userID || f.day != day.String() {
		return nil, nil
	}
	return f.request, nil
}

func fixedClock(t time.Time) Clock {
	return ClockFunc(func() time.Time { return t })
}

func mkDate(year int, month time.Month, day int) date.Date {
	return date.Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

func ts(year int, month time.Month, day, hour, min int) time.Time {
	return time.Date(year, month, day, hour, min, 0, 0, time.UTC)
}

func addEvent(store *fakeEventStore, userID int, typ entity.EventType, at time.Time, mode entity.EventMode) {
	store.nextID++
	store.events = append(store.events, entity.AttendanceEvent{
		ID:        store.nextID,
		UserID:    userID,
		Type:      typ,
		Timestamp: at,
		Mode:      mode,
		CreatedAt: at,
	})
}

func TestDailyStatusPairsAllSessions(t *testing.T) {
	store := &fakeEventStore{}
	addEvent(store, 1, entity.EventCheckIn, ts(2024, 3, 5, 9, 0), entity.ModeOffice)
	addEvent(store, 1, entity.EventCheckOut, ts(2024, 3, 5, 12, 0), entity.ModeOffice)
	addEvent(store, 1, entity.EventCheckIn, ts(2024, 3, 5, 13, 0), entity.ModeOffice)
	addEvent(store, 1, entity.EventCheckOut, ts(2024, 3, 5, 17, 0), entity.ModeOffice)

	svc := NewService(store, &fakeRemoteStore{}, fixedClock(ts(2024, 3, 5, 18, 0)))

	status, err := svc.DailyStatus(context.Background(), 1, mkDate(2024, 3, 5), 0)
	if err != nil {
		t.Fatalf("DailyStatus: %v", err)
	}

	if status.Status != StatusCheckedOut {
		t.Errorf("status = %s, want %s", status.Status, StatusCheckedOut)
	}
	if status.HoursWorked != 7.0 {
		t.Errorf("hours = %v, want 7.0", status.HoursWorked)
	}
	if status.CheckOutTime == nil || !status.CheckOutTime.Equal(ts(2024, 3, 5, 17, 0)) {
		t.Errorf("check-out time = %v, want 17:00", status.CheckOutTime)
	}
	if status.CheckInTime == nil || !status.CheckInTime.Equal(ts(2024, 3, 5, 13, 0)) {
		t.Errorf("check-in time = %v, want 13:00 (latest session)", status.CheckInTime)
	}
}

func TestDailyStatusOpenSession(t *testing.T) {
	store := &fakeEventStore{}
	addEvent(store, 1, entity.EventCheckIn, ts(2024, 3, 5, 9, 0), entity.ModeOffice)

	svc := NewService(store, &fakeRemoteStore{}, fixedClock(ts(2024, 3, 5, 13, 30)))

	status, err := svc.DailyStatus(context.Background(), 1, mkDate(2024, 3, 5), 0)
	if err != nil {
		t.Fatalf("DailyStatus: %v", err)
	}

	if status.Status != StatusCheckedIn {
		t.Errorf("status = %s, want %s", status.Status, StatusCheckedIn)
	}
	if status.HoursWorked != 4.5 {
		t.Errorf("hours = %v, want 4.5", status.HoursWorked)
	}
	if status.CheckOutTime != nil {
		t.Errorf("check-out time = %v, want nil", status.CheckOutTime)
	}
}

func TestDailyStatusIdempotentRead(t *testing.T) {
	store := &fakeEventStore{}
	addEvent(store, 1, entity.EventCheckIn, ts(2024, 3, 5, 9, 0), entity.ModeOffice)
	addEvent(store, 1, entity.EventCheckOut, ts(2024, 3, 5, 17, 0), entity.ModeOffice)

	svc := NewService(store, &fakeRemoteStore{}, fixedClock(ts(2024, 3, 5, 18, 0)))

	first, err := svc.DailyStatus(context.Background(), 1, mkDate(2024, 3, 5), 0)
	if err != nil {
		t.Fatalf("DailyStatus: %v", err)
	}
	second, err := svc.DailyStatus(context.Background(), 1, mkDate(2024, 3, 5), 0)
	if err != nil {
		t.Fatalf("DailyStatus: %v", err)
	}

	if first.Status != second.Status || first.HoursWorked != second.HoursWorked || first.IsRemote != second.IsRemote {
		t.Errorf("repeated reads differ: %+v vs %+v", first, second)
	}
	if !timesEqual(first.CheckInTime, second.CheckInTime) {
		t.Errorf("check-in times differ: %v vs %v", first.CheckInTime, second.CheckInTime)
	}
	if !timesEqual(first.CheckOutTime, second.CheckOutTime) {
		t.Errorf("check-out times differ: %v vs %v", first.CheckOutTime, second.CheckOutTime)
	}
}

func timesEqual(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}

func TestHoursNeverNegative(t *testing.T) {
	// An open check-in "in the future" relative to now must clamp to zero.
	store := &fakeEventStore{}
	addEvent(store, 1, entity.EventCheckIn, ts(2024, 3, 5, 15, 0), entity.ModeOffice)

	svc := NewService(store, &fakeRemoteStore{}, fixedClock(ts(2024, 3, 5, 14, 0)))

	status, err := svc.DailyStatus(context.Background(), 1, mkDate(2024, 3, 5), 0)
	if err != nil {
		t.Fatalf("DailyStatus: %v", err)
	}
	if status.HoursWorked != 0 {
		t.Errorf("hours = %v, want 0", status.HoursWorked)
	}
}

func TestPairedHoursClampsSkewedPair(t *testing.T) {
	svc := NewService(&fakeEventStore{}, &fakeRemoteStore{}, fixedClock(ts(2024, 3, 5, 18, 0)))

	// Pair whose checkout instant is behind its check-in: clamped, not negative.
	events := []entity.AttendanceEvent{
		{ID: 1, UserID: 1, Type: entity.EventCheckIn, Timestamp: ts(2024, 3, 5, 9, 0)},
		{ID: 2, UserID: 1, Type: entity.EventCheckOut, Timestamp: ts(2024, 3, 5, 8, 30)},
	}

	hours, pairs, open := svc.pairedHours(1, events)
	if hours != 0 {
		t.Errorf("hours = %v, want 0", hours)
	}
	if pairs != 1 {
		t.Errorf("pairs = %d, want 1 (clamped pair still completes)", pairs)
	}
	if open != nil {
		t.Errorf("open = %+v, want nil", open)
	}
}

func TestTimezoneDayBoundary(t *testing.T) {
	// 23:30Z on Jan 1 is already Jan 2 at offset +2.
	store := &fakeEventStore{}
	addEvent(store, 1, entity.EventCheckIn, ts(2024, 1, 1, 23, 30), entity.ModeOffice)

	svc := NewService(store, &fakeRemoteStore{}, fixedClock(ts(2024, 1, 2, 1, 30)))

	status, err := svc.DailyStatus(context.Background(), 1, mkDate(2024, 1, 2), 2)
	if err != nil {
		t.Fatalf("DailyStatus: %v", err)
	}
	if status.Status != StatusCheckedIn {
		t.Errorf("status on local Jan 2 = %s, want %s", status.Status, StatusCheckedIn)
	}

	previous, err := svc.DailyStatus(context.Background(), 1, mkDate(2024, 1, 1), 2)
	if err != nil {
		t.Fatalf("DailyStatus: %v", err)
	}
	if previous.Status != StatusNotCheckedIn {
		t.Errorf("status on local Jan 1 = %s, want %s", previous.Status, StatusNotCheckedIn)
	}
}

func TestFractionalOffsetDayBoundary(t *testing.T) {
	// India standard time, +5.5: 19:00Z is already the next local day at 00:30.
	store := &fakeEventStore{}
	addEvent(store, 1, entity.EventCheckIn, ts(2024, 1, 1, 19, 0), entity.ModeOffice)

	svc := NewService(store, &fakeRemoteStore{}, fixedClock(ts(2024, 1, 1, 20, 0)))

	status, err := svc.DailyStatus(context.Background(), 1, mkDate(2024, 1, 2), 5.5)
	if err != nil {
		t.Fatalf("DailyStatus: %v", err)
	}
	if status.Status != StatusCheckedIn {
		t.Errorf("status = %s, want %s", status.Status, StatusCheckedIn)
	}
}

func TestRemoteSynthesis(t *testing.T) {
	// Approved remote request, no physical events, now 14:00 local (offset +3).
	remote := &fakeRemoteStore{
		request: &entity.RemoteWorkRequest{UserID: 1, Status: entity.RequestApproved},
		day:     "2024-03-05",
	}
	svc := NewService(&fakeEventStore{}, remote, fixedClock(ts(2024, 3, 5, 11, 0)))

	status, err := svc.DailyStatus(context.Background(), 1, mkDate(2024, 3, 5), 3)
	if err != nil {
		t.Fatalf("DailyStatus: %v", err)
	}

	if status.Status != StatusCheckedIn {
		t.Errorf("status = %s, want %s", status.Status, StatusCheckedIn)
	}
	if !status.IsRemote {
		t.Error("is_remote = false, want true")
	}
	if status.HoursWorked != 4.0 {
		t.Errorf("hours = %v, want 4.0", status.HoursWorked)
	}
	// 10:00 local at +3 is 07:00Z.
	if status.CheckInTime == nil || !status.CheckInTime.Equal(ts(2024, 3, 5, 7, 0)) {
		t.Errorf("check-in time = %v, want 07:00Z", status.CheckInTime)
	}
}

func TestRemoteSynthesisClampedToNow(t *testing.T) {
	// Before 10:00 local the synthetic check-in pins to now, not the future.
	remote := &fakeRemoteStore{
		request: &entity.RemoteWorkRequest{UserID: 1, Status: entity.RequestApproved},
		day:     "2024-03-05",
	}
	now := ts(2024, 3, 5, 8, 15)
	svc := NewService(&fakeEventStore{}, remote, fixedClock(now))

	status, err := svc.DailyStatus(context.Background(), 1, mkDate(2024, 3, 5), 0)
	if err != nil {
		t.Fatalf("DailyStatus: %v", err)
	}
	if status.HoursWorked != 0 {
		t.Errorf("hours = %v, want 0", status.HoursWorked)
	}
	if status.CheckInTime == nil || !status.CheckInTime.Equal(now) {
		t.Errorf("check-in time = %v, want now", status.CheckInTime)
	}
}

func TestPendingRemoteRequest(t *testing.T) {
	remote := &fakeRemoteStore{
		request: &entity.RemoteWorkRequest{UserID: 1, Status: entity.RequestPending},
		day:     "2024-03-05",
	}
	svc := NewService(&fakeEventStore{}, remote, fixedClock(ts(2024, 3, 5, 12, 0)))

	status, err := svc.DailyStatus(context.Background(), 1, mkDate(2024, 3, 5), 0)
	if err != nil {
		t.Fatalf("DailyStatus: %v", err)
	}
	if status.Status != StatusPendingApproval {
		t.Errorf("status = %s, want %s", status.Status, StatusPendingApproval)
	}
	if status.HoursWorked != 0 {
		t.Errorf("hours = %v, want 0", status.HoursWorked)
	}
}

func TestRecordEventRoundTrip(t *testing.T) {
	store := &fakeEventStore{}
	svc := NewService(store, &fakeRemoteStore{}, fixedClock(ts(2024, 3, 5, 18, 0)))

	loc := &entity.Location{Latitude: 35.7, Longitude: 139.77}

	in := ts(2024, 3, 5, 9, 0)
	if _, err := svc.RecordEvent(context.Background(), RecordEventInput{
		UserID: 1, Type: entity.EventCheckIn, Timestamp: &in, Mode: entity.ModeOffice, Location: loc,
	}); err != nil {
		t.Fatalf("check-in: %v", err)
	}

	out := ts(2024, 3, 5, 17, 30)
	if _, err := svc.RecordEvent(context.Background(), RecordEventInput{
		UserID: 1, Type: entity.EventCheckOut, Timestamp: &out, Mode: entity.ModeOffice, Location: loc,
	}); err != nil {
		t.Fatalf("check-out: %v", err)
	}

	status, err := svc.DailyStatus(context.Background(), 1, mkDate(2024, 3, 5), 0)
	if err != nil {
		t.Fatalf("DailyStatus: %v", err)
	}

	if status.Status != StatusCheckedOut {
		t.Errorf("status = %s, want %s", status.Status, StatusCheckedOut)
	}
	if status.HoursWorked != 8.5 {
		t.Errorf("hours = %v, want 8.5", status.HoursWorked)
	}
	if status.CheckInTime == nil || !status.CheckInTime.Equal(in) {
		t.Errorf("check-in time = %v, want 09:00", status.CheckInTime)
	}
	if status.CheckOutTime == nil || !status.CheckOutTime.Equal(out) {
		t.Errorf("check-out time = %v, want 17:30", status.CheckOutTime)
	}
}

func TestDuplicateCheckInRejected(t *testing.T) {
	store := &fakeEventStore{}
	svc := NewService(store, &fakeRemoteStore{}, fixedClock(ts(2024, 3, 5, 10, 0)))

	loc := &entity.Location{Latitude: 35.7, Longitude: 139.77}

	if _, err := svc.RecordEvent(context.Background(), RecordEventInput{
		UserID: 1, Type: entity.EventCheckIn, Mode: entity.ModeOffice, Location: loc,
	}); err != nil {
		t.Fatalf("first check-in: %v", err)
	}

	_, err := svc.RecordEvent(context.Background(), RecordEventInput{
		UserID: 1, Type: entity.EventCheckIn, Mode: entity.ModeOffice, Location: loc,
	})
	if !errors.Is(err, ErrDuplicateCheckIn) {
		t.Fatalf("err = %v, want ErrDuplicateCheckIn", err)
	}

	if len(store.events) != 1 {
		t.Errorf("event count = %d, want 1 (rejected insert must not write)", len(store.events))
	}
}

func TestDuplicateCheckOutRejected(t *testing.T) {
	store := &fakeEventStore{}
	addEvent(store, 1, entity.EventCheckIn, ts(2024, 3, 5, 9, 0), entity.ModeRemote)
	addEvent(store, 1, entity.EventCheckOut, ts(2024, 3, 5, 12, 0), entity.ModeRemote)

	svc := NewService(store, &fakeRemoteStore{}, fixedClock(ts(2024, 3, 5, 13, 0)))

	_, err := svc.RecordEvent(context.Background(), RecordEventInput{
		UserID: 1, Type: entity.EventCheckOut, Mode: entity.ModeRemote,
	})
	if !errors.Is(err, ErrDuplicateCheckOut) {
		t.Fatalf("err = %v, want ErrDuplicateCheckOut", err)
	}
}

func TestCheckOutWithoutCheckInRejected(t *testing.T) {
	svc := NewService(&fakeEventStore{}, &fakeRemoteStore{}, fixedClock(ts(2024, 3, 5, 13, 0)))

	_, err := svc.RecordEvent(context.Background(), RecordEventInput{
		UserID: 1, Type: entity.EventCheckOut, Mode: entity.ModeRemote,
	})
	if !errors.Is(err, ErrCheckOutWithoutCheckIn) {
		t.Fatalf("err = %v, want ErrCheckOutWithoutCheckIn", err)
	}
}

func TestOfficeCheckInRequiresLocation(t *testing.T) {
	svc := NewService(&fakeEventStore{}, &fakeRemoteStore{}, fixedClock(ts(2024, 3, 5, 9, 0)))

	_, err := svc.RecordEvent(context.Background(), RecordEventInput{
		UserID: 1, Type: entity.EventCheckIn, Mode: entity.ModeOffice,
	})
	if !errors.Is(err, ErrMissingLocation) {
		t.Fatalf("err = %v, want ErrMissingLocation", err)
	}
}

func TestOfficeCheckOutRequiresLocation(t *testing.T) {
	store := &fakeEventStore{}
	addEvent(store, 1, entity.EventCheckIn, ts(2024, 3, 5, 9, 0), entity.ModeOffice)

	svc := NewService(store, &fakeRemoteStore{}, fixedClock(ts(2024, 3, 5, 17, 0)))

	_, err := svc.RecordEvent(context.Background(), RecordEventInput{
		UserID: 1, Type: entity.EventCheckOut, Mode: entity.ModeOffice,
	})
	if !errors.Is(err, ErrMissingLocation) {
		t.Fatalf("err = %v, want ErrMissingLocation", err)
	}

	// Explicitly flagging the checkout remote waives the requirement.
	if _, err := svc.RecordEvent(context.Background(), RecordEventInput{
		UserID: 1, Type: entity.EventCheckOut, Mode: entity.ModeRemote,
	}); err != nil {
		t.Fatalf("remote-flagged check-out: %v", err)
	}
}

func TestReCheckInRestartsTracking(t *testing.T) {
	store := &fakeEventStore{}
	addEvent(store, 1, entity.EventCheckIn, ts(2024, 3, 5, 9, 0), entity.ModeOffice)
	addEvent(store, 1, entity.EventCheckOut, ts(2024, 3, 5, 12, 0), entity.ModeOffice)
	addEvent(store, 1, entity.EventCheckIn, ts(2024, 3, 5, 13, 0), entity.ModeOffice)

	svc := NewService(store, &fakeRemoteStore{}, fixedClock(ts(2024, 3, 5, 15, 0)))

	status, err := svc.DailyStatus(context.Background(), 1, mkDate(2024, 3, 5), 0)
	if err != nil {
		t.Fatalf("DailyStatus: %v", err)
	}

	if status.Status != StatusCheckedIn {
		t.Errorf("status = %s, want %s", status.Status, StatusCheckedIn)
	}
	if status.CheckOutTime != nil {
		t.Errorf("check-out time = %v, want nil after re-check-in", status.CheckOutTime)
	}
	// 3h completed morning session + 2h open afternoon session.
	if status.HoursWorked != 5.0 {
		t.Errorf("hours = %v, want 5.0", status.HoursWorked)
	}
}

func TestSummarizeRange(t *testing.T) {
	store := &fakeEventStore{}
	// Day 1: one complete 8h session.
	addEvent(store, 1, entity.EventCheckIn, ts(2024, 3, 4, 9, 0), entity.ModeOffice)
	addEvent(store, 1, entity.EventCheckOut, ts(2024, 3, 4, 17, 0), entity.ModeOffice)
	// Day 2: two sessions, 3h + 4h.
	addEvent(store, 1, entity.EventCheckIn, ts(2024, 3, 5, 9, 0), entity.ModeOffice)
	addEvent(store, 1, entity.EventCheckOut, ts(2024, 3, 5, 12, 0), entity.ModeOffice)
	addEvent(store, 1, entity.EventCheckIn, ts(2024, 3, 5, 13, 0), entity.ModeOffice)
	addEvent(store, 1, entity.EventCheckOut, ts(2024, 3, 5, 17, 0), entity.ModeOffice)
	// Day 3: nothing.
	// Another user's events must not leak in.
	addEvent(store, 2, entity.EventCheckIn, ts(2024, 3, 5, 8, 0), entity.ModeOffice)

	svc := NewService(store, &fakeRemoteStore{}, fixedClock(ts(2024, 3, 10, 12, 0)))

	summary, err := svc.SummarizeRange(context.Background(), 1, mkDate(2024, 3, 4), mkDate(2024, 3, 6), 0)
	if err != nil {
		t.Fatalf("SummarizeRange: %v", err)
	}

	if summary.TotalHours != 15.0 {
		t.Errorf("total hours = %v, want 15.0", summary.TotalHours)
	}
	if summary.DaysWorked != 2 {
		t.Errorf("days worked = %d, want 2", summary.DaysWorked)
	}
	if summary.CheckInCount != 3 || summary.CheckOutCount != 3 {
		t.Errorf("counts = %d/%d, want 3/3", summary.CheckInCount, summary.CheckOutCount)
	}
	if summary.AverageHoursPerDay != 7.5 {
		t.Errorf("average = %v, want 7.5", summary.AverageHoursPerDay)
	}
}

func TestSummarizeRangeCountsZeroLengthDay(t *testing.T) {
	store := &fakeEventStore{}
	// Check-in and check-out at the same instant: zero hours, but the day
	// still has a complete pair and counts as worked.
	addEvent(store, 1, entity.EventCheckIn, ts(2024, 3, 5, 9, 0), entity.ModeOffice)
	addEvent(store, 1, entity.EventCheckOut, ts(2024, 3, 5, 9, 0), entity.ModeOffice)

	svc := NewService(store, &fakeRemoteStore{}, fixedClock(ts(2024, 3, 10, 12, 0)))

	summary, err := svc.SummarizeRange(context.Background(), 1, mkDate(2024, 3, 5), mkDate(2024, 3, 5), 0)
	if err != nil {
		t.Fatalf("SummarizeRange: %v", err)
	}

	if summary.DaysWorked != 1 {
		t.Errorf("days worked = %d, want 1 (complete zero-length pair)", summary.DaysWorked)
	}
	if summary.TotalHours != 0 {
		t.Errorf("total hours = %v, want 0", summary.TotalHours)
	}
}

func TestSummarizeRangeIncludesOpenSessionToday(t *testing.T) {
	store := &fakeEventStore{}
	addEvent(store, 1, entity.EventCheckIn, ts(2024, 3, 5, 9, 0), entity.ModeOffice)

	// Now is 13:00 on the final day of the range.
	svc := NewService(store, &fakeRemoteStore{}, fixedClock(ts(2024, 3, 5, 13, 0)))

	summary, err := svc.SummarizeRange(context.Background(), 1, mkDate(2024, 3, 4), mkDate(2024, 3, 5), 0)
	if err != nil {
		t.Fatalf("SummarizeRange: %v", err)
	}

	if summary.TotalHours != 4.0 {
		t.Errorf("total hours = %v, want 4.0", summary.TotalHours)
	}
	// Open sessions do not count as a worked day yet.
	if summary.DaysWorked != 0 {
		t.Errorf("days worked = %d, want 0", summary.DaysWorked)
	}
}

func TestSummarizeRangeExcludesOpenSessionOnPastDay(t *testing.T) {
	store := &fakeEventStore{}
	// A forgotten check-out three days ago must not inflate the total.
	addEvent(store, 1, entity.EventCheckIn, ts(2024, 3, 2, 9, 0), entity.ModeOffice)

	svc := NewService(store, &fakeRemoteStore{}, fixedClock(ts(2024, 3, 5, 13, 0)))

	summary, err := svc.SummarizeRange(context.Background(), 1, mkDate(2024, 3, 1), mkDate(2024, 3, 5), 0)
	if err != nil {
		t.Fatalf("SummarizeRange: %v", err)
	}
	if summary.TotalHours != 0 {
		t.Errorf("total hours = %v, want 0", summary.TotalHours)
	}
	if summary.CheckInCount != 1 {
		t.Errorf("check-in count = %d, want 1", summary.CheckInCount)
	}
}
