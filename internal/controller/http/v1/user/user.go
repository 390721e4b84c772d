package user

import (
	"net/http"
	"reflect"

	"workforce/backend/foundation/web"
	"workforce/backend/internal/repository/postgres/user"
	"workforce/backend/internal/service"
	"workforce/backend/internal/service/export"
	"workforce/backend/internal/service/hashing"

	"github.com/pkg/errors"
)

type Controller struct {
	user       User
	department DepartmentDirectory
	position   PositionDirectory
}

func NewController(user User, department DepartmentDirectory, position PositionDirectory) *Controller {
	return &Controller{user: user, department: department, position: position}
}

func (uc Controller) GetList(c *web.Context) error {
	var filter user.Filter

	if limit, ok := c.GetQueryFunc(reflect.Int, "limit").(*int); ok {
		filter.Limit = limit
	}
	if offset, ok := c.GetQueryFunc(reflect.Int, "offset").(*int); ok {
		filter.Offset = offset
	}
	if page, ok := c.GetQueryFunc(reflect.Int, "page").(*int); ok {
		filter.Page = page
	}
	if search, ok := c.GetQueryFunc(reflect.String, "search").(*string); ok {
		filter.Search = search
	}
	if departmentID, ok := c.GetQueryFunc(reflect.Int, "department_id").(*int); ok {
		filter.DepartmentID = departmentID
	}
	if positionID, ok := c.GetQueryFunc(reflect.Int, "position_id").(*int); ok {
		filter.PositionID = positionID
	}

	if err := c.ValidQuery(); err != nil {
		return c.RespondError(err)
	}

	list, count, err := uc.user.GetList(c.Ctx, filter)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data": map[string]interface{}{
			"results": list,
			"count":   count,
		},
		"status": true,
	}, http.StatusOK)
}

func (uc Controller) GetDetailById(c *web.Context) error {
	id := c.GetParam(reflect.Int, "id").(int)

	if err := c.ValidParam(); err != nil {
		return c.RespondError(err)
	}

	response, err := uc.user.GetDetailById(c.Ctx, id)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   response,
		"status": true,
	}, http.StatusOK)
}

func (uc Controller) Create(c *web.Context) error {
	var request user.CreateRequest

	if err := c.BindFunc(&request, "EmployeeID", "Password", "Role", "FullName"); err != nil {
		return c.RespondError(err)
	}

	response, err := uc.user.Create(c.Ctx, request)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   response,
		"status": true,
	}, http.StatusOK)
}

func (uc Controller) UpdateColumns(c *web.Context) error {
	id := c.GetParam(reflect.Int, "id").(int)

	if err := c.ValidParam(); err != nil {
		return c.RespondError(err)
	}

	var request user.UpdateRequest

	if err := c.BindFunc(&request); err != nil {
		return c.RespondError(err)
	}

	request.ID = id

	err := uc.user.UpdateColumns(c.Ctx, request)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   "ok!",
		"status": true,
	}, http.StatusOK)
}

func (uc Controller) Delete(c *web.Context) error {
	id := c.GetParam(reflect.Int, "id").(int)

	if err := c.ValidParam(); err != nil {
		return c.RespondError(err)
	}

	err := uc.user.Delete(c.Ctx, id)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   "ok!",
		"status": true,
	}, http.StatusOK)
}

// GetQrCode returns the badge QR image path for one employee.
func (uc Controller) GetQrCode(c *web.Context) error {
	employeeID := c.GetParam(reflect.String, "employee_id").(string)

	if err := c.ValidParam(); err != nil {
		return c.RespondError(err)
	}

	path, err := uc.user.GetQrCodeByEmployeeID(c.Ctx, employeeID)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data": map[string]interface{}{
			"file": path,
		},
		"status": true,
	}, http.StatusOK)
}

// ExportExcel writes the employee directory into a workbook.
func (uc Controller) ExportExcel(c *web.Context) error {
	rows, err := uc.user.ExportRows(c.Ctx)
	if err != nil {
		return c.RespondError(err)
	}

	sheet := make([]export.EmployeeRow, 0, len(rows))
	for _, row := range rows {
		sheet = append(sheet, export.EmployeeRow{
			EmployeeID: row.EmployeeID,
			FullName:   row.FullName,
			Department: row.Department,
			Position:   row.Position,
			Phone:      row.Phone,
			Email:      row.Email,
		})
	}

	fileName, err := export.EmployeesToExcel(sheet)
	if err != nil {
		return c.RespondError(web.NewRequestError(errors.Wrap(err, "exporting employees"), http.StatusInternalServerError))
	}

	return c.Respond(map[string]interface{}{
		"data": map[string]interface{}{
			"file": fileName,
		},
		"status": true,
	}, http.StatusOK)
}

// ExportBadgesPDF renders the QR badge sheet for every employee.
func (uc Controller) ExportBadgesPDF(c *web.Context) error {
	rows, err := uc.user.ExportRows(c.Ctx)
	if err != nil {
		return c.RespondError(err)
	}

	var badges []export.Badge
	for _, row := range rows {
		qrPath, err := uc.user.GetQrCodeByEmployeeID(c.Ctx, row.EmployeeID)
		if err != nil {
			return c.RespondError(err)
		}
		badges = append(badges, export.Badge{
			EmployeeID: row.EmployeeID,
			FullName:   row.FullName,
			QRPath:     qrPath,
		})
	}

	fileName, err := export.BadgeSheetPDF(badges)
	if err != nil {
		return c.RespondError(web.NewRequestError(errors.Wrap(err, "rendering badge sheet"), http.StatusInternalServerError))
	}

	return c.Respond(map[string]interface{}{
		"data": map[string]interface{}{
			"file": fileName,
		},
		"status": true,
	}, http.StatusOK)
}

// ImportExcel bulk-creates employees from an uploaded workbook. Rows that
// fail validation are reported back by row number.
func (uc Controller) ImportExcel(c *web.Context) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.RespondError(web.NewRequestError(errors.New("file is required"), http.StatusBadRequest))
	}

	filePath, err := service.Upload(fileHeader, "imports")
	if err != nil {
		return c.RespondError(web.NewRequestError(err, http.StatusBadRequest))
	}

	departmentMap, err := uc.department.NameMap(c.Ctx)
	if err != nil {
		return c.RespondError(err)
	}
	positionMap, err := uc.position.NameMap(c.Ctx)
	if err != nil {
		return c.RespondError(err)
	}
	existingIDs, existingEmails, err := uc.user.CredentialSets(c.Ctx)
	if err != nil {
		return c.RespondError(err)
	}

	importRows, badRows, err := hashing.ImportUsersFromExcel(filePath, departmentMap, positionMap, existingIDs, existingEmails)
	if err != nil {
		return c.RespondError(web.NewRequestError(errors.Wrap(err, "reading workbook"), http.StatusBadRequest))
	}

	created := 0
	for _, row := range importRows {
		row := row
		request := user.CreateRequest{
			EmployeeID:   &row.EmployeeID,
			Password:     &row.Password,
			Role:         &row.Role,
			FullName:     &row.FullName,
			DepartmentID: &row.DepartmentID,
			PositionID:   &row.PositionID,
		}
		if row.Phone != "" {
			request.Phone = &row.Phone
		}
		if row.Email != "" {
			request.Email = &row.Email
		}

		if _, err := uc.user.Create(c.Ctx, request); err != nil {
			return c.RespondError(err)
		}
		created++
	}

	return c.Respond(map[string]interface{}{
		"data": map[string]interface{}{
			"created":  created,
			"bad_rows": badRows,
		},
		"status": true,
	}, http.StatusOK)
}
