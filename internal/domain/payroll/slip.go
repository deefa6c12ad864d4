package payroll

import (
	"fmt"
	"io"
	"time"

	"github.com/jung-kurt/gofpdf"
)

func SlipFilename(employeeID string, year, month int) string {
	return fmt.Sprintf("salary-slip_%s_%04d-%02d.pdf", employeeID, year, month)
}

// WriteSlip renders a one-page salary slip for row.
func WriteSlip(w io.Writer, row Row, year, month int) error {
	period := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Salary slip "+row.ID, false)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Salary Slip")
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Employee: %s (%s)", row.Name, row.ID))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Period: %s", period.Format("January 2006")))
	pdf.Ln(10)

	lines := []struct {
		label string
		value string
	}{
		{"Working days", fmt.Sprintf("%d", row.WorkingDays)},
		{"Allocated leaves", fmt.Sprintf("%d", row.AllocatedLeaves)},
		{"Effective working days", fmt.Sprintf("%d", row.EffectiveWorkingDays)},
		{"Present days", fmt.Sprintf("%d", row.PresentDays)},
		{"Half days", fmt.Sprintf("%d", row.HalfDays)},
		{"Absent days", fmt.Sprintf("%d", row.AbsentDays)},
		{"Leave days", fmt.Sprintf("%d", row.OnLeaveDays)},
		{"Monthly salary", fmt.Sprintf("%.2f", row.Salary)},
		{"Daily rate", fmt.Sprintf("%.2f", row.DailyRate)},
	}
	for _, line := range lines {
		pdf.CellFormat(80, 8, line.label, "1", 0, "L", false, 0, "")
		pdf.CellFormat(50, 8, line.value, "1", 1, "R", false, 0, "")
	}
	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(80, 9, "Net salary", "1", 0, "L", false, 0, "")
	pdf.CellFormat(50, 9, fmt.Sprintf("%.2f", row.NetSalary), "1", 1, "R", false, 0, "")

	return pdf.Output(w)
}
