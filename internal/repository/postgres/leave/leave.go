package leave

import (
	"context"
	"net/http"
	"time"

	"workforce/backend/foundation/web"
	"workforce/backend/internal/auth"
	"workforce/backend/internal/entity"
	"workforce/backend/internal/pkg/repository/postgresql"

	"github.com/pkg/errors"
)

type Repository struct {
	*postgresql.Database
}

func NewRepository(database *postgresql.Database) *Repository {
	return &Repository{Database: database}
}

// Create submits a leave request for the signed-in employee. The range must
// be well formed and free of overlapping non-rejected requests.
func (r Repository) Create(ctx context.Context, request CreateRequest) (CreateResponse, error) {
	claims, err := r.CheckClaims(ctx)
	if err != nil {
		return CreateResponse{}, err
	}

	if err := r.ValidateStruct(&request, "StartDate", "EndDate"); err != nil {
		return CreateResponse{}, err
	}

	startDate, err := time.Parse("2006-01-02", *request.StartDate)
	if err != nil {
		return CreateResponse{}, web.NewRequestError(errors.Wrap(err, "parsing start date"), http.StatusBadRequest)
	}
	endDate, err := time.Parse("2006-01-02", *request.EndDate)
	if err != nil {
		return CreateResponse{}, web.NewRequestError(errors.Wrap(err, "parsing end date"), http.StatusBadRequest)
	}
	if endDate.Before(startDate) {
		return CreateResponse{}, web.NewRequestError(errors.New("end_date is before start_date"), http.StatusBadRequest)
	}

	overlaps := false
	if err := r.NewSelect().
		Model((*entity.LeaveRequest)(nil)).
		ColumnExpr("count(id) > 0").
		Where("user_id = ? AND deleted_at IS NULL AND status != ? AND start_date <= ? AND end_date >= ?",
			claims.UserId, entity.RequestRejected, endDate.Format("2006-01-02"), startDate.Format("2006-01-02")).
		Scan(ctx, &overlaps); err != nil {
		return CreateResponse{}, web.NewRequestError(errors.Wrap(err, "checking overlapping leave"), http.StatusInternalServerError)
	}
	if overlaps {
		return CreateResponse{}, web.NewRequestError(errors.New("an overlapping leave request already exists"), http.StatusBadRequest)
	}

	var response CreateResponse
	response.UserID = claims.UserId
	response.StartDate = startDate.Format("2006-01-02")
	response.EndDate = endDate.Format("2006-01-02")
	response.LeaveType = request.LeaveType
	response.Status = entity.RequestPending
	response.Reason = request.Reason
	response.CreatedAt = time.Now()
	response.CreatedBy = claims.UserId

	if _, err = r.NewInsert().Model(&response).Returning("id").Exec(ctx, &response.ID); err != nil {
		return CreateResponse{}, web.NewRequestError(errors.Wrap(err, "creating leave request"), http.StatusBadRequest)
	}

	return response, nil
}

func (r Repository) GetList(ctx context.Context, filter Filter) ([]GetListResponse, int, error) {
	claims, err := r.CheckClaims(ctx)
	if err != nil {
		return nil, 0, err
	}

	filter = scopeToOwner(claims, filter)

	whereQuery := `WHERE lr.deleted_at IS NULL`
	args := []interface{}{}

	if filter.UserID != nil {
		whereQuery += ` AND lr.user_id = ?`
		args = append(args, *filter.UserID)
	}
	if filter.Status != nil {
		whereQuery += ` AND lr.status = ?`
		args = append(args, *filter.Status)
	}

	orderQuery := " ORDER BY lr.start_date DESC, lr.id DESC"

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
			lr.id,
			lr.user_id,
			u.employee_id,
			u.full_name,
			lr.start_date,
			lr.end_date,
			lr.leave_type,
			lr.status,
			lr.reason,
			lr.reviewed_by
		FROM leave_requests lr
		LEFT JOIN users u ON u.id = lr.user_id
		` + whereQuery + orderQuery + limitQuery + offsetQuery

	rows, err := r.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, web.NewRequestError(errors.Wrap(err, "selecting leave requests"), http.StatusInternalServerError)
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
			&detail.StartDate,
			&detail.EndDate,
			&detail.LeaveType,
			&detail.Status,
			&detail.Reason,
			&detail.ReviewedBy,
		); err != nil {
			return nil, 0, web.NewRequestError(errors.Wrap(err, "scanning leave requests"), http.StatusInternalServerError)
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
	countQuery := `SELECT count(lr.id) FROM leave_requests lr ` + whereQuery
	if err = r.QueryRowContext(ctx, countQuery, countArgs...).Scan(&count); err != nil {
		return nil, 0, web.NewRequestError(errors.Wrap(err, "counting leave requests"), http.StatusInternalServerError)
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

// Review approves or rejects a pending leave request.
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

	q := r.NewUpdate().Table("leave_requests").
		Where("deleted_at IS NULL AND id = ? AND status = ?", request.ID, entity.RequestPending)
	q.Set("status = ?", request.Status)
	q.Set("reviewed_by = ?", claims.UserId)
	q.Set("updated_at = ?", time.Now())
	q.Set("updated_by = ?", claims.UserId)

	result, err := q.Exec(ctx)
	if err != nil {
		return web.NewRequestError(errors.Wrap(err, "reviewing leave request"), http.StatusBadRequest)
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

// Delete withdraws a leave request (soft delete). Employees may only
// withdraw their own.
func (r Repository) Delete(ctx context.Context, id int) error {
	claims, err := r.CheckClaims(ctx)
	if err != nil {
		return err
	}

	q := r.NewUpdate().Table("leave_requests").
		Where("deleted_at IS NULL AND id = ?", id)
	if ownerOnly(claims) {
		q.Where("user_id = ?", claims.UserId)
	}
	q.Set("deleted_at = ?", time.Now())
	q.Set("deleted_by = ?", claims.UserId)

	result, err := q.Exec(ctx)
	if err != nil {
		return web.NewRequestError(errors.Wrap(err, "deleting leave request"), http.StatusBadRequest)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return web.NewRequestError(errors.Wrap(err, "checking rows affected"), http.StatusInternalServerError)
	}
	if affected == 0 {
		return web.NewRequestError(errors.New("row not found in leave_requests"), http.StatusNotFound)
	}

	return nil
}
