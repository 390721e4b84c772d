package remoterequest

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"workforce/backend/foundation/web"
	"workforce/backend/internal/auth"
	"workforce/backend/internal/entity"
	"workforce/backend/internal/pkg/repository/postgresql"

	"github.com/Azure/go-autorest/autorest/date"
	"github.com/pkg/errors"
)

type Repository struct {
	*postgresql.Database
}

func NewRepository(database *postgresql.Database) *Repository {
	return &Repository{Database: database}
}

// FindRequest returns the most relevant remote-work request of a user for
// one day: an approved request beats a pending one, rejected requests are
// ignored. A nil request means none exists.
func (r Repository) FindRequest(ctx context.Context, userID int, day date.Date) (*entity.RemoteWorkRequest, error) {
	var detail entity.RemoteWorkRequest

	err := r.NewSelect().
		Model(&detail).
		Where("user_id = ? AND request_date = ? AND deleted_at IS NULL AND status IN (?, ?)",
			userID, day.String(), entity.RequestApproved, entity.RequestPending).
		OrderExpr("CASE status WHEN ? THEN 0 ELSE 1 END", entity.RequestApproved).
		Limit(1).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, web.NewRequestError(errors.Wrap(err, "selecting remote request"), http.StatusInternalServerError)
	}

	return &detail, nil
}

// Create submits a remote-work request for the signed-in employee. One
// request per user per day.
func (r Repository) Create(ctx context.Context, request CreateRequest) (CreateResponse, error) {
	claims, err := r.CheckClaims(ctx)
	if err != nil {
		return CreateResponse{}, err
	}

	if err := r.ValidateStruct(&request, "RequestDate"); err != nil {
		return CreateResponse{}, err
	}

	requestDate, err := time.Parse("2006-01-02", *request.RequestDate)
	if err != nil {
		return CreateResponse{}, web.NewRequestError(errors.Wrap(err, "parsing request date"), http.StatusBadRequest)
	}

	exists := false
	if err := r.NewSelect().
		Model((*entity.RemoteWorkRequest)(nil)).
		ColumnExpr("count(id) > 0").
		Where("user_id = ? AND request_date = ? AND deleted_at IS NULL AND status != ?",
			claims.UserId, requestDate.Format("2006-01-02"), entity.RequestRejected).
		Scan(ctx, &exists); err != nil {
		return CreateResponse{}, web.NewRequestError(errors.Wrap(err, "checking existing request"), http.StatusInternalServerError)
	}
	if exists {
		return CreateResponse{}, web.NewRequestError(errors.New("a request for this date already exists"), http.StatusBadRequest)
	}

	var response CreateResponse
	response.UserID = claims.UserId
	response.RequestDate = requestDate.Format("2006-01-02")
	response.Status = entity.RequestPending
	response.Reason = request.Reason
	response.CreatedAt = time.Now()
	response.CreatedBy = claims.UserId

	if _, err = r.NewInsert().Model(&response).Returning("id").Exec(ctx, &response.ID); err != nil {
		return CreateResponse{}, web.NewRequestError(errors.Wrap(err, "creating remote request"), http.StatusBadRequest)
	}

	return response, nil
}

// GetList returns requests joined with employee names, newest first.
func (r Repository) GetList(ctx context.Context, filter Filter) ([]GetListResponse, int, error) {
	claims, err := r.CheckClaims(ctx)
	if err != nil {
		return nil, 0, err
	}

	filter = scopeToOwner(claims, filter)

	whereQuery := `WHERE rr.deleted_at IS NULL`
	args := []interface{}{}

	if filter.UserID != nil {
		whereQuery += ` AND rr.user_id = ?`
		args = append(args, *filter.UserID)
	}
	if filter.Status != nil {
		whereQuery += ` AND rr.status = ?`
		args = append(args, *filter.Status)
	}

	orderQuery := " ORDER BY rr.request_date DESC, rr.id DESC"

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
			rr.id,
			rr.user_id,
			u.employee_id,
			u.full_name,
			rr.request_date,
			rr.status,
			rr.reason,
			rr.reviewed_by
		FROM remote_work_requests rr
		LEFT JOIN users u ON u.id = rr.user_id
		` + whereQuery + orderQuery + limitQuery + offsetQuery

	rows, err := r.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, web.NewRequestError(errors.Wrap(err, "selecting remote requests"), http.StatusInternalServerError)
	}
	defer rows.Close()

	var list []GetListResponse
	for rows.Next() {
		var detail GetListResponse
		var requestDateString string
		if err = rows.Scan(
			&detail.ID,
			&detail.UserID,
			&detail.EmployeeID,
			&detail.FullName,
			&requestDateString,
			&detail.Status,
			&detail.Reason,
			&detail.ReviewedBy,
		); err != nil {
			return nil, 0, web.NewRequestError(errors.Wrap(err, "scanning remote requests"), http.StatusInternalServerError)
		}

		requestDate, err := date.ParseDate(requestDateString)
		if err != nil {
			return nil, 0, web.NewRequestError(errors.Wrap(err, "parsing request date"), http.StatusInternalServerError)
		}
		detail.RequestDate = &requestDate

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
	countQuery := `SELECT count(rr.id) FROM remote_work_requests rr ` + whereQuery
	if err = r.QueryRowContext(ctx, countQuery, countArgs...).Scan(&count); err != nil {
		return nil, 0, web.NewRequestError(errors.Wrap(err, "counting remote requests"), http.StatusInternalServerError)
	}

	return list, count, nil
}

// scopeToOwner forces employee callers onto their own rows regardless of
// the requested filter.
func scopeToOwner(claims auth.Claims, filter Filter) Filter {
	if claims.Role == auth.RoleEmployee {
		filter.UserID = &claims.UserId
	}
	return filter
}

// ownerOnly reports whether writes must be constrained to the caller's rows.
func ownerOnly(claims auth.Claims) bool {
	return claims.Role != auth.RoleAdmin
}

// Review approves or rejects a pending request. Only pending requests can
// transition.
func (r Repository) Review(ctx context.Context, request ReviewRequest) error {
	claims, err := r.CheckClaims(ctx, auth.RoleAdmin)
	if err != nil {
		return err
	}

	if err := r.ValidateStruct(&request, "ID", "Status"); err != nil {
		return err
	}

	if request.Status != entity.RequestApproved && request.Status != entity.RequestRejected {
		return web.NewRequestError(errors.New("status should be APPROVED or REJECTED"), http.StatusBadRequest)
	}

	q := r.NewUpdate().Table("remote_work_requests").
		Where("deleted_at IS NULL AND id = ? AND status = ?", request.ID, entity.RequestPending)
	q.Set("status = ?", request.Status)
	q.Set("reviewed_by = ?", claims.UserId)
	q.Set("updated_at = ?", time.Now())
	q.Set("updated_by = ?", claims.UserId)

	result, err := q.Exec(ctx)
	if err != nil {
		return web.NewRequestError(errors.Wrap(err, "reviewing remote request"), http.StatusBadRequest)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return web.NewRequestError(errors.Wrap(err, "checking rows affected"), http.StatusInternalServerError)
	}
	if affected == 0 {
		return web.NewRequestError(errors.New("no pending request with this id"), http.StatusNotFound)
	}

	return nil
}

// Delete withdraws a request (soft delete). Employees may only withdraw
// their own.
func (r Repository) Delete(ctx context.Context, id int) error {
	claims, err := r.CheckClaims(ctx)
	if err != nil {
		return err
	}

	q := r.NewUpdate().Table("remote_work_requests").
		Where("deleted_at IS NULL AND id = ?", id)
	if ownerOnly(claims) {
		q.Where("user_id = ?", claims.UserId)
	}
	q.Set("deleted_at = ?", time.Now())
	q.Set("deleted_by = ?", claims.UserId)

	result, err := q.Exec(ctx)
	if err != nil {
		return web.NewRequestError(errors.Wrap(err, "deleting remote request"), http.StatusBadRequest)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return web.NewRequestError(errors.Wrap(err, "checking rows affected"), http.StatusInternalServerError)
	}
	if affected == 0 {
		return web.NewRequestError(errors.New("row not found in remote_work_requests"), http.StatusNotFound)
	}

	return nil
}
