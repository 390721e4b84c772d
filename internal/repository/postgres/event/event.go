package event

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"workforce/backend/foundation/web"
	"workforce/backend/internal/entity"
	"workforce/backend/internal/pkg/repository/postgresql"

	"github.com/pkg/errors"
	"github.com/uptrace/bun"
)

// Repository is the append-only attendance event store. Rows are inserted
// and read, never updated or deleted.
type Repository struct {
	*postgresql.Database
}

func NewRepository(database *postgresql.Database) *Repository {
	return &Repository{Database: database}
}

// QueryEvents returns a user's events inside [since, until), ascending by
// event time.
func (r Repository) QueryEvents(ctx context.Context, userID int, since, until time.Time) ([]entity.AttendanceEvent, error) {
	var list []entity.AttendanceEvent

	err := r.NewSelect().
		Model(&list).
		Where("user_id = ? AND event_time >= ? AND event_time < ?", userID, since, until).
		Order("event_time ASC", "id ASC").
		Scan(ctx)
	if err != nil {
		return nil, web.NewRequestError(errors.Wrap(err, "selecting attendance events"), http.StatusInternalServerError)
	}

	return list, nil
}

// LastCheckIn returns the user's most recent check-in event across all days,
// or nil when none exists.
func (r Repository) LastCheckIn(ctx context.Context, userID int) (*entity.AttendanceEvent, error) {
	var detail entity.AttendanceEvent

	err := r.NewSelect().
		Model(&detail).
		Where("user_id = ? AND type = ?", userID, entity.EventCheckIn).
		Order("event_time DESC", "id DESC").
		Limit(1).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, web.NewRequestError(errors.Wrap(err, "selecting last check-in"), http.StatusInternalServerError)
	}

	return &detail, nil
}

// InsertEvent appends one event. The guard runs against the latest event of
// the [since, until) window inside a serializable transaction, so two
// concurrent check-ins for the same user cannot both pass.
func (r Repository) InsertEvent(ctx context.Context, event entity.AttendanceEvent, since, until time.Time, guard func(latest *entity.AttendanceEvent) error) (entity.AttendanceEvent, error) {
	txErr := r.RunInTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable}, func(ctx context.Context, tx bun.Tx) error {
		var latestRow entity.AttendanceEvent
		var latest *entity.AttendanceEvent

		err := tx.NewSelect().
			Model(&latestRow).
			Where("user_id = ? AND event_time >= ? AND event_time < ?", event.UserID, since, until).
			Order("event_time DESC", "id DESC").
			Limit(1).
			Scan(ctx)
		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			return errors.Wrap(err, "selecting latest event")
		}
		if err == nil {
			latest = &latestRow
		}

		if err := guard(latest); err != nil {
			return err
		}

		if _, err := tx.NewInsert().Model(&event).Returning("id").Exec(ctx, &event.ID); err != nil {
			return errors.Wrap(err, "inserting attendance event")
		}

		return nil
	})
	if txErr != nil {
		return entity.AttendanceEvent{}, txErr
	}

	return event, nil
}

// GetList returns the event history joined with employee names. Admin view.
func (r Repository) GetList(ctx context.Context, filter Filter) ([]GetListResponse, int, error) {
	_, err := r.CheckClaims(ctx)
	if err != nil {
		return nil, 0, err
	}

	whereQuery := `WHERE u.deleted_at IS NULL`

	args := []interface{}{}
	if filter.UserID != nil {
		whereQuery += ` AND e.user_id = ?`
		args = append(args, *filter.UserID)
	}
	if filter.Type != nil {
		whereQuery += ` AND e.type = ?`
		args = append(args, *filter.Type)
	}
	if filter.Mode != nil {
		whereQuery += ` AND e.mode = ?`
		args = append(args, *filter.Mode)
	}
	if filter.DateFrom != nil {
		whereQuery += ` AND e.event_time >= ?`
		args = append(args, filter.DateFrom.Time)
	}
	if filter.DateTo != nil {
		whereQuery += ` AND e.event_time < ?`
		args = append(args, filter.DateTo.AddDate(0, 0, 1))
	}

	orderQuery := " ORDER BY e.event_time DESC, e.id DESC"

	var limitQuery, offsetQuery string
	if filter.Page != nil && filter.Limit != nil {
		offset := (*filter.Page - 1) * (*filter.Limit)
		filter.Offset = &offset
	}
	if filter.Limit != nil {
		limitQuery = " LIMIT ?"
		args = append(args, *filter.Limit)
	}
	if filter.Offset != nil {
		offsetQuery = " OFFSET ?"
		args = append(args, *filter.Offset)
	}

	query := `
		SELECT
			e.id,
			e.user_id,
			u.employee_id,
			u.full_name,
			e.type,
			e.mode,
			e.event_time,
			e.latitude,
			e.longitude,
			e.address,
			e.notes
		FROM attendance_events e
		LEFT JOIN users u ON u.id = e.user_id
		` + whereQuery + orderQuery + limitQuery + offsetQuery

	rows, err := r.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, web.NewRequestError(errors.Wrap(err, "selecting event history"), http.StatusInternalServerError)
	}
	defer rows.Close()

	var list []GetListResponse
	for rows.Next() {
		var detail GetListResponse
		if err = rows.Scan(
			&detail.ID,
			&detail.UserID,
			&detail.EmployeeID,
			&detail.FullName,
			&detail.Type,
			&detail.Mode,
			&detail.Timestamp,
			&detail.Latitude,
			&detail.Longitude,
			&detail.Address,
			&detail.Notes,
		); err != nil {
			return nil, 0, web.NewRequestError(errors.Wrap(err, "scanning event history"), http.StatusInternalServerError)
		}
		list = append(list, detail)
	}

	count := 0
	countArgs := args
	if filter.Limit != nil {
		countArgs = countArgs[:len(countArgs)-1]
	}
	if filter.Offset != nil {
		countArgs = countArgs[:len(countArgs)-1]
	}
	countQuery := `
		SELECT count(e.id)
		FROM attendance_events e
		LEFT JOIN users u ON u.id = e.user_id
		` + whereQuery
	if err = r.QueryRowContext(ctx, countQuery, countArgs...).Scan(&count); err != nil {
		return nil, 0, web.NewRequestError(errors.Wrap(err, "counting event history"), http.StatusInternalServerError)
	}

	return list, count, nil
}

// CountToday returns how many distinct users have at least one check-in
// event inside the given window. Used by the admin dashboard.
func (r Repository) CountToday(ctx context.Context, since, until time.Time) (int, error) {
	var count int
	err := r.NewSelect().
		Model((*entity.AttendanceEvent)(nil)).
		ColumnExpr("count(DISTINCT user_id)").
		Where("type = ? AND event_time >= ? AND event_time < ?", entity.EventCheckIn, since, until).
		Scan(ctx, &count)
	if err != nil {
		return 0, web.NewRequestError(errors.Wrap(err, "counting checked-in users"), http.StatusInternalServerError)
	}

	return count, nil
}

// Breakdown splits today's checked-in users into on-time and late by their
// first check-in against the office late cutoff.
func (r Repository) Breakdown(ctx context.Context, since, until, lateCutoff time.Time) (int, int, error) {
	query := `
		SELECT
			count(*) FILTER (WHERE first_in <= ?),
			count(*) FILTER (WHERE first_in > ?)
		FROM (
			SELECT user_id, min(event_time) AS first_in
			FROM attendance_events
			WHERE type = ? AND event_time >= ? AND event_time < ?
			GROUP BY user_id
		) t
	`

	var onTime, late int
	row := r.QueryRowContext(ctx, query, lateCutoff, lateCutoff, entity.EventCheckIn, since, until)
	if err := row.Scan(&onTime, &late); err != nil {
		return 0, 0, web.NewRequestError(errors.Wrap(err, "computing attendance breakdown"), http.StatusInternalServerError)
	}

	return onTime, late, nil
}
