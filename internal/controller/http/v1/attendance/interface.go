package attendance

import (
	"context"
	"time"

	"workforce/backend/internal/entity"
	"workforce/backend/internal/repository/postgres/event"
	"workforce/backend/internal/service/reconciler"

	"github.com/Azure/go-autorest/autorest/date"
)

type Reconciler interface {
	RecordEvent(ctx context.Context, in reconciler.RecordEventInput) (entity.AttendanceEvent, error)
	DailyStatus(ctx context.Context, userID int, day date.Date, tzOffset float64) (reconciler.DayStatus, error)
	SummarizeRange(ctx context.Context, userID int, start, end date.Date, tzOffset float64) (reconciler.RangeSummary, error)
	Today(tzOffset float64) date.Date
}

type EventHistory interface {
	GetList(ctx context.Context, filter event.Filter) ([]event.GetListResponse, int, error)
	CountToday(ctx context.Context, since, until time.Time) (int, error)
	Breakdown(ctx context.Context, since, until, lateCutoff time.Time) (int, int, error)
}

type EmployeeDirectory interface {
	CountActiveEmployees(ctx context.Context) (int, error)
}

type OfficeInfo interface {
	Get(ctx context.Context) (entity.OfficeInfo, error)
}

type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
}
