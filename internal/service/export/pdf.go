package export

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/jung-kurt/gofpdf/v2"
	"github.com/pkg/errors"
)

// MonthlySummary carries the numbers printed on a monthly report.
type MonthlySummary struct {
	EmployeeID  string
	FullName    string
	Month       string
	DaysWorked  int
	TotalHours  float64
	AverageHour float64
}

// MonthlyReportPDF renders one employee's monthly attendance summary and
// returns the file path.
func MonthlyReportPDF(summary MonthlySummary, company string) (string, error) {
	if err := ensureExportDir(); err != nil {
		return "", err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(40, 10, "Monthly Attendance Report")
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 12)
	if company != "" {
		pdf.Cell(40, 10, fmt.Sprintf("Company: %s", company))
		pdf.Ln(8)
	}
	pdf.Cell(40, 10, fmt.Sprintf("Employee: %s (%s)", summary.FullName, summary.EmployeeID))
	pdf.Ln(8)
	pdf.Cell(40, 10, fmt.Sprintf("Month: %s", summary.Month))
	pdf.Ln(12)

	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(90, 10, "Metric")
	pdf.Cell(90, 10, "Value")
	pdf.Ln(10)

	pdf.SetFont("Arial", "", 11)
	metrics := []struct {
		label string
		value string
	}{
		{"Days Worked", fmt.Sprintf("%d days", summary.DaysWorked)},
		{"Total Hours", fmt.Sprintf("%.2f hours", summary.TotalHours)},
		{"Average Hours", fmt.Sprintf("%.2f hours/day", summary.AverageHour)},
	}
	for _, m := range metrics {
		pdf.Cell(90, 8, m.label)
		pdf.Cell(90, 8, m.value)
		pdf.Ln(8)
	}

	fileName := filepath.Join(exportDir, fmt.Sprintf("report-%s-%s.pdf", summary.EmployeeID, summary.Month))
	if err := pdf.OutputFileAndClose(fileName); err != nil {
		return "", errors.Wrap(err, "writing pdf")
	}

	return fileName, nil
}

// Badge pairs an employee with the QR code image rendered for their id.
type Badge struct {
	EmployeeID string
	FullName   string
	QRPath     string
}

// BadgeSheetPDF lays out employee QR badges four per page and returns the
// file path. Badges without a rendered QR image are skipped.
func BadgeSheetPDF(badges []Badge) (string, error) {
	if err := ensureExportDir(); err != nil {
		return "", err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")

	const (
		badgeWidth  = 90.0
		badgeHeight = 120.0
		marginX     = 10.0
		marginY     = 15.0
	)

	for i, badge := range badges {
		slot := i % 4
		if slot == 0 {
			pdf.AddPage()
		}

		x := marginX + float64(slot%2)*(badgeWidth+10)
		y := marginY + float64(slot/2)*(badgeHeight+10)

		pdf.Rect(x, y, badgeWidth, badgeHeight, "D")
		if badge.QRPath != "" {
			pdf.ImageOptions(badge.QRPath, x+15, y+10, 60, 60, false,
				gofpdf.ImageOptions{ImageType: "PNG"}, 0, "")
		}

		pdf.SetFont("Arial", "B", 13)
		pdf.SetXY(x, y+75)
		pdf.CellFormat(badgeWidth, 8, badge.FullName, "", 0, "C", false, 0, "")
		pdf.SetFont("Arial", "", 11)
		pdf.SetXY(x, y+85)
		pdf.CellFormat(badgeWidth, 8, badge.EmployeeID, "", 0, "C", false, 0, "")
	}

	fileName := filepath.Join(exportDir, fmt.Sprintf("badges-%s.pdf", time.Now().Format("20060102-150405")))
	if err := pdf.OutputFileAndClose(fileName); err != nil {
		return "", errors.Wrap(err, "writing pdf")
	}

	return fileName, nil
}
