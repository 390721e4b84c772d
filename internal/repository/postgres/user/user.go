package user

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"workforce/backend/foundation/web"
	"workforce/backend/internal/auth"
	"workforce/backend/internal/entity"
	"workforce/backend/internal/pkg/repository/postgresql"
	"workforce/backend/internal/repository/postgres"

	"github.com/pkg/errors"
	qrcode "github.com/skip2/go-qrcode"
	"golang.org/x/crypto/bcrypt"
)

type Repository struct {
	*postgresql.Database
}

func NewRepository(database *postgresql.Database) *Repository {
	return &Repository{Database: database}
}

func (r Repository) GetByEmployeeID(ctx context.Context, employeeID string) (entity.User, error) {
	var detail entity.User

	err := r.NewSelect().Model(&detail).Where("employee_id = ? AND deleted_at IS NULL", employeeID).Scan(ctx)
	if err != nil {
		return entity.User{}, &web.Error{
			Err:    errors.New("employee not found"),
			Status: http.StatusUnauthorized,
		}
	}

	return detail, nil
}

func (r Repository) GetList(ctx context.Context, filter Filter) ([]GetListResponse, int, error) {
	_, err := r.CheckClaims(ctx, auth.RoleAdmin)
	if err != nil {
		return nil, 0, err
	}

	whereQuery := `WHERE u.deleted_at IS NULL`
	args := []interface{}{}

	if filter.Search != nil {
		search := strings.Replace(*filter.Search, "'", "", -1)
		whereQuery += ` AND (u.employee_id ilike ? OR u.full_name ilike ?)`
		args = append(args, "%"+search+"%", "%"+search+"%")
	}
	if filter.DepartmentID != nil {
		whereQuery += ` AND u.department_id = ?`
		args = append(args, *filter.DepartmentID)
	}
	if filter.PositionID != nil {
		whereQuery += ` AND u.position_id = ?`
		args = append(args, *filter.PositionID)
	}

	orderQuery := " ORDER BY u.created_at desc"

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
			u.id,
			u.employee_id,
			u.full_name,
			u.department_id,
			d.name,
			u.position_id,
			p.name,
			u.phone,
			u.email
		FROM users u
		LEFT JOIN department d ON d.id = u.department_id
		LEFT JOIN position p ON p.id = u.position_id
		` + whereQuery + orderQuery + limitQuery + offsetQuery

	rows, err := r.QueryContext(ctx, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, 0, web.NewRequestError(postgres.ErrNotFound, http.StatusBadRequest)
	}
	if err != nil {
		return nil, 0, web.NewRequestError(errors.Wrap(err, "selecting users"), http.StatusBadRequest)
	}
	defer rows.Close()

	var list []GetListResponse
	for rows.Next() {
		var detail GetListResponse
		if err = rows.Scan(
			&detail.ID,
			&detail.EmployeeID,
			&detail.FullName,
			&detail.DepartmentID,
			&detail.Department,
			&detail.PositionID,
			&detail.Position,
			&detail.Phone,
			&detail.Email); err != nil {
			return nil, 0, web.NewRequestError(errors.Wrap(err, "scanning user list"), http.StatusBadRequest)
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
	countQuery := `SELECT count(u.id) FROM users u ` + whereQuery
	if err = r.QueryRowContext(ctx, countQuery, countArgs...).Scan(&count); err != nil {
		return nil, 0, web.NewRequestError(errors.Wrap(err, "scanning user count"), http.StatusBadRequest)
	}

	return list, count, nil
}

func (r Repository) GetDetailById(ctx context.Context, id int) (GetDetailByIdResponse, error) {
	_, err := r.CheckClaims(ctx)
	if err != nil {
		return GetDetailByIdResponse{}, err
	}

	query := `
		SELECT
			u.id,
			u.employee_id,
			u.full_name,
			u.department_id,
			d.name,
			u.position_id,
			p.name,
			u.phone,
			u.email,
			u.role
		FROM users u
		LEFT JOIN department d ON u.department_id = d.id
		LEFT JOIN position p ON u.position_id = p.id
		WHERE u.deleted_at IS NULL AND u.id = ?
	`

	var detail GetDetailByIdResponse

	err = r.QueryRowContext(ctx, query, id).Scan(
		&detail.ID,
		&detail.EmployeeID,
		&detail.FullName,
		&detail.DepartmentID,
		&detail.Department,
		&detail.PositionID,
		&detail.Position,
		&detail.Phone,
		&detail.Email,
		&detail.Role,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return GetDetailByIdResponse{}, web.NewRequestError(postgres.ErrNotFound, http.StatusNotFound)
	}
	if err != nil {
		return GetDetailByIdResponse{}, web.NewRequestError(errors.Wrap(err, "selecting user detail"), http.StatusBadRequest)
	}

	return detail, nil
}

func (r Repository) Create(ctx context.Context, request CreateRequest) (CreateResponse, error) {
	claims, err := r.CheckClaims(ctx, auth.RoleAdmin)
	if err != nil {
		return CreateResponse{}, err
	}

	if err := r.ValidateStruct(&request, "EmployeeID", "Password", "FullName", "Role"); err != nil {
		return CreateResponse{}, err
	}

	used := false
	if err := r.NewSelect().
		Model((*entity.User)(nil)).
		ColumnExpr("count(id) > 0").
		Where("employee_id = ? AND deleted_at IS NULL", *request.EmployeeID).
		Scan(ctx, &used); err != nil {
		return CreateResponse{}, web.NewRequestError(errors.Wrap(err, "employee_id check"), http.StatusInternalServerError)
	}
	if used {
		return CreateResponse{}, web.NewRequestError(errors.New("employee_id is used"), http.StatusBadRequest)
	}

	role := strings.ToUpper(*request.Role)
	if role != auth.RoleEmployee && role != auth.RoleAdmin {
		return CreateResponse{}, web.NewRequestError(errors.New("incorrect role. role should be EMPLOYEE or ADMIN"), http.StatusBadRequest)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(*request.Password), bcrypt.DefaultCost)
	if err != nil {
		return CreateResponse{}, web.NewRequestError(errors.Wrap(err, "hashing password"), http.StatusInternalServerError)
	}
	hashedPassword := string(hash)

	var response CreateResponse
	response.Role = &role
	response.FullName = request.FullName
	response.EmployeeID = request.EmployeeID
	response.Password = &hashedPassword
	response.DepartmentID = request.DepartmentID
	response.PositionID = request.PositionID
	response.Phone = request.Phone
	response.Email = request.Email
	response.CreatedAt = time.Now()
	response.CreatedBy = claims.UserId

	_, err = r.NewInsert().Model(&response).Returning("id").Exec(ctx, &response.ID)
	if err != nil {
		return CreateResponse{}, web.NewRequestError(errors.Wrap(err, "creating user"), http.StatusBadRequest)
	}

	response.Password = nil

	return response, nil
}

func (r Repository) UpdateColumns(ctx context.Context, request UpdateRequest) error {
	claims, err := r.CheckClaims(ctx, auth.RoleAdmin)
	if err != nil {
		return err
	}

	if err := r.ValidateStruct(&request, "ID"); err != nil {
		return err
	}

	q := r.NewUpdate().Table("users").Where("deleted_at IS NULL AND id = ?", request.ID)

	if request.EmployeeID != nil {
		used := false
		if err := r.NewSelect().
			Model((*entity.User)(nil)).
			ColumnExpr("count(id) > 0").
			Where("employee_id = ? AND deleted_at IS NULL AND id != ?", *request.EmployeeID, request.ID).
			Scan(ctx, &used); err != nil {
			return web.NewRequestError(errors.Wrap(err, "employee_id check"), http.StatusInternalServerError)
		}
		if used {
			return web.NewRequestError(errors.New("employee_id is used"), http.StatusBadRequest)
		}
		q.Set("employee_id = ?", request.EmployeeID)
	}
	if request.Role != nil {
		role := strings.ToUpper(*request.Role)
		if role != auth.RoleEmployee && role != auth.RoleAdmin {
			return web.NewRequestError(errors.New("incorrect role. role should be EMPLOYEE or ADMIN"), http.StatusBadRequest)
		}
		q.Set("role = ?", role)
	}
	if request.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*request.Password), bcrypt.DefaultCost)
		if err != nil {
			return web.NewRequestError(errors.Wrap(err, "hashing password"), http.StatusInternalServerError)
		}
		q.Set("password = ?", string(hash))
	}
	if request.FullName != nil {
		q.Set("full_name = ?", request.FullName)
	}
	if request.DepartmentID != nil {
		q.Set("department_id = ?", request.DepartmentID)
	}
	if request.PositionID != nil {
		q.Set("position_id = ?", request.PositionID)
	}
	if request.Phone != nil {
		q.Set("phone = ?", request.Phone)
	}
	if request.Email != nil {
		q.Set("email = ?", request.Email)
	}
	q.Set("updated_at = ?", time.Now())
	q.Set("updated_by = ?", claims.UserId)

	_, err = q.Exec(ctx)
	if err != nil {
		return web.NewRequestError(errors.Wrap(err, "updating user"), http.StatusBadRequest)
	}

	return nil
}

func (r Repository) Delete(ctx context.Context, id int) error {
	return r.DeleteRow(ctx, "users", id)
}

// GetQrCodeByEmployeeID renders (and caches on disk) the badge QR of one
// employee. The QR payload is the employee id scanned by the kiosk.
func (r Repository) GetQrCodeByEmployeeID(ctx context.Context, employeeID string) (string, error) {
	if _, err := r.GetByEmployeeID(ctx, employeeID); err != nil {
		return "", err
	}

	dir := filepath.Join("statics", "qrcode")
	if _, err := os.Stat(dir); errors.Is(err, os.ErrNotExist) {
		if err = os.MkdirAll(dir, os.ModePerm); err != nil {
			return "", web.NewRequestError(errors.Wrap(err, "creating qrcode dir"), http.StatusInternalServerError)
		}
	}

	path := filepath.Join(dir, employeeID+".png")
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err = qrcode.WriteFile(employeeID, qrcode.Medium, 256, path); err != nil {
			return "", web.NewRequestError(errors.Wrap(err, "writing qr code"), http.StatusInternalServerError)
		}
	}

	return path, nil
}

// CredentialSets returns the employee ids and emails already in use, for
// validating imported spreadsheets.
func (r Repository) CredentialSets(ctx context.Context) (map[string]struct{}, map[string]struct{}, error) {
	query := `
		SELECT coalesce(employee_id, ''), coalesce(email, '')
		FROM users
		WHERE deleted_at IS NULL
	`

	rows, err := r.QueryContext(ctx, query)
	if err != nil {
		return nil, nil, web.NewRequestError(errors.Wrap(err, "selecting credentials"), http.StatusInternalServerError)
	}
	defer rows.Close()

	employeeIDs := make(map[string]struct{})
	emails := make(map[string]struct{})
	for rows.Next() {
		var employeeID, email string
		if err = rows.Scan(&employeeID, &email); err != nil {
			return nil, nil, web.NewRequestError(errors.Wrap(err, "scanning credentials"), http.StatusInternalServerError)
		}
		if employeeID != "" {
			employeeIDs[employeeID] = struct{}{}
		}
		if email != "" {
			emails[email] = struct{}{}
		}
	}

	return employeeIDs, emails, nil
}

// CountActiveEmployees returns how many employees can check in at all. The
// dashboard derives its absent number from it.
func (r Repository) CountActiveEmployees(ctx context.Context) (int, error) {
	var count int
	err := r.NewSelect().
		Model((*entity.User)(nil)).
		ColumnExpr("count(id)").
		Where("deleted_at IS NULL AND role = ?", auth.RoleEmployee).
		Scan(ctx, &count)
	if err != nil {
		return 0, web.NewRequestError(errors.Wrap(err, "counting employees"), http.StatusInternalServerError)
	}

	return count, nil
}

// ExportRows returns the flat employee sheet used by the Excel export.
func (r Repository) ExportRows(ctx context.Context) ([]ExportRow, error) {
	_, err := r.CheckClaims(ctx, auth.RoleAdmin)
	if err != nil {
		return nil, err
	}

	query := `
		SELECT
			u.employee_id,
			coalesce(u.full_name, ''),
			coalesce(d.name, ''),
			coalesce(p.name, ''),
			coalesce(u.phone, ''),
			coalesce(u.email, '')
		FROM users u
		LEFT JOIN department d ON d.id = u.department_id
		LEFT JOIN position p ON p.id = u.position_id
		WHERE u.deleted_at IS NULL
		ORDER BY u.employee_id
	`

	rows, err := r.QueryContext(ctx, query)
	if err != nil {
		return nil, web.NewRequestError(errors.Wrap(err, "selecting export rows"), http.StatusInternalServerError)
	}
	defer rows.Close()

	var list []ExportRow
	for rows.Next() {
		var row ExportRow
		if err = rows.Scan(&row.EmployeeID, &row.FullName, &row.Department, &row.Position, &row.Phone, &row.Email); err != nil {
			return nil, web.NewRequestError(errors.Wrap(err, "scanning export row"), http.StatusInternalServerError)
		}
		list = append(list, row)
	}

	return list, nil
}
