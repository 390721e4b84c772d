package hashing

import (
	"net/http"
	"regexp"
	"strings"

	"workforce/backend/foundation/web"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/unicode/norm"
)

const importSheet = "Employees"

type UserImportRow struct {
	EmployeeID   string
	FullName     string
	Role         string
	Password     string
	DepartmentID int
	PositionID   int
	Phone        string
	Email        string
}

// ImportUsersFromExcel reads the employee sheet of an uploaded workbook and
// returns the valid rows plus the 1-based row numbers that failed validation.
// Department and position names are resolved through the provided maps;
// employee ids and emails already present in the database are rejected.
func ImportUsersFromExcel(filePath string, departmentMap, positionMap map[string]int, existingIDs, existingEmails map[string]struct{}) ([]UserImportRow, []int, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	rows, err := f.GetRows(importSheet)
	if err != nil {
		return nil, nil, err
	}

	emailRegex := regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	phoneRegex := regexp.MustCompile(`^\+?\d+$`)

	var users []UserImportRow
	var badRows []int
	localIDs := make(map[string]int)
	localEmails := make(map[string]int)

	for i, row := range rows {
		rowNumber := i + 1
		if i == 0 {
			continue // header
		}

		if len(row) < 8 {
			badRows = append(badRows, rowNumber)
			continue
		}

		employeeID := strings.TrimSpace(row[0])
		fullName := strings.TrimSpace(row[1])
		role := strings.TrimSpace(row[2])
		password := strings.TrimSpace(row[3])
		department := strings.TrimSpace(row[4])
		position := strings.TrimSpace(row[5])
		phone := strings.TrimSpace(row[6])
		email := strings.TrimSpace(row[7])

		if employeeID == "" || fullName == "" || role == "" || password == "" || department == "" || position == "" {
			badRows = append(badRows, rowNumber)
			continue
		}

		if !IsHalfWidth(employeeID) || !IsHalfWidth(password) || (email != "" && !IsHalfWidth(email)) {
			badRows = append(badRows, rowNumber)
			continue
		}

		if _, exists := existingIDs[employeeID]; exists {
			badRows = append(badRows, rowNumber)
			continue
		}
		if prevRow, exists := localIDs[employeeID]; exists {
			badRows = append(badRows, prevRow, rowNumber)
			continue
		}

		if email != "" {
			if _, exists := existingEmails[email]; exists {
				badRows = append(badRows, rowNumber)
				continue
			}
			if prevRow, exists := localEmails[email]; exists {
				badRows = append(badRows, prevRow, rowNumber)
				continue
			}
			if !emailRegex.MatchString(email) {
				badRows = append(badRows, rowNumber)
				continue
			}
		}

		departmentID, deptOK := departmentMap[department]
		positionID, posOK := positionMap[position]
		if !deptOK || !posOK {
			badRows = append(badRows, rowNumber)
			continue
		}

		if phone != "" && !phoneRegex.MatchString(phone) {
			badRows = append(badRows, rowNumber)
			continue
		}

		localIDs[employeeID] = rowNumber
		if email != "" {
			localEmails[email] = rowNumber
		}

		users = append(users, UserImportRow{
			EmployeeID:   employeeID,
			FullName:     fullName,
			Role:         role,
			Password:     password,
			DepartmentID: departmentID,
			PositionID:   positionID,
			Phone:        phone,
			Email:        email,
		})
	}

	return users, badRows, nil
}

// IsHalfWidth checks if a string contains only half-width characters.
func IsHalfWidth(s string) bool {
	normalized := norm.NFC.String(s)
	for _, r := range normalized {
		// Full-width character detection
		if r >= '\uFF01' && r <= '\uFF60' || r >= '\uFFE0' && r <= '\uFFEF' {
			return false
		}
	}
	return true
}

// ValidateHalfWidthInput rejects form submissions containing full-width
// characters before they reach the handlers.
func ValidateHalfWidthInput() web.Middleware {
	return func(handler web.Handler) web.Handler {
		return func(c *web.Context) error {
			for _, values := range c.Request.Form {
				for _, value := range values {
					if !IsHalfWidth(value) {
						return c.RespondError(web.NewRequestError(
							errors.New("only half-width characters are allowed"), http.StatusBadRequest))
					}
				}
			}

			return handler(c)
		}
	}
}
