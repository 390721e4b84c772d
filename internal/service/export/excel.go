package export

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"
)

const exportDir = "statics/exports"

// AttendanceRow is one attendance record flattened for a spreadsheet.
type AttendanceRow struct {
	EmployeeID string
	FullName   string
	Day        string
	CheckIn    string
	CheckOut   string
	Hours      float64
	Mode       string
	Status     string
}

// EmployeeRow is one employee flattened for a spreadsheet.
type EmployeeRow struct {
	EmployeeID string
	FullName   string
	Department string
	Position   string
	Phone      string
	Email      string
}

func ensureExportDir() error {
	if _, err := os.Stat(exportDir); errors.Is(err, os.ErrNotExist) {
		return os.MkdirAll(exportDir, os.ModePerm)
	}
	return nil
}

// AttendanceToExcel writes attendance rows into a new workbook and returns
// the file path.
func AttendanceToExcel(rows []AttendanceRow) (string, error) {
	if err := ensureExportDir(); err != nil {
		return "", err
	}

	f := excelize.NewFile()
	sheet := "Attendance"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"Employee ID", "Full Name", "Date", "Check In", "Check Out", "Hours", "Mode", "Status"}
	for i, header := range headers {
		cell := fmt.Sprintf("%c1", 'A'+i)
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return "", errors.Wrap(err, "writing header")
		}
	}

	for i, row := range rows {
		rowNum := i + 2
		values := []interface{}{row.EmployeeID, row.FullName, row.Day, row.CheckIn, row.CheckOut, row.Hours, row.Mode, row.Status}
		for j, value := range values {
			cell := fmt.Sprintf("%c%d", 'A'+j, rowNum)
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return "", errors.Wrap(err, "writing attendance row")
			}
		}
	}

	fileName := filepath.Join(exportDir, fmt.Sprintf("attendance-%s.xlsx", time.Now().Format("20060102-150405")))
	if err := f.SaveAs(fileName); err != nil {
		return "", errors.Wrap(err, "saving workbook")
	}

	return fileName, nil
}

// EmployeesToExcel writes the employee directory into a new workbook and
// returns the file path.
func EmployeesToExcel(rows []EmployeeRow) (string, error) {
	if err := ensureExportDir(); err != nil {
		return "", err
	}

	f := excelize.NewFile()
	sheet := "Employees"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"Employee ID", "Full Name", "Department", "Position", "Phone", "Email"}
	for i, header := range headers {
		cell := fmt.Sprintf("%c1", 'A'+i)
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return "", errors.Wrap(err, "writing header")
		}
	}

	for i, row := range rows {
		rowNum := i + 2
		values := []interface{}{row.EmployeeID, row.FullName, row.Department, row.Position, row.Phone, row.Email}
		for j, value := range values {
			cell := fmt.Sprintf("%c%d", 'A'+j, rowNum)
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return "", errors.Wrap(err, "writing employee row")
			}
		}
	}

	fileName := filepath.Join(exportDir, fmt.Sprintf("employees-%s.xlsx", time.Now().Format("20060102-150405")))
	if err := f.SaveAs(fileName); err != nil {
		return "", errors.Wrap(err, "saving workbook")
	}

	return fileName, nil
}
