package payroll

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"time"

	"staffpay/internal/apperr"
)

type Service struct {
	store StoreAPI
}

func NewService(store StoreAPI) *Service {
	return &Service{store: store}
}

// MonthlySalaries computes a row per employee. Inactive employees are
// skipped unless includeInactive is set.
func (s *Service) MonthlySalaries(ctx context.Context, monthRaw, yearRaw string, includeInactive bool) (Report, error) {
	v := apperr.NewValidator()
	month, year, _ := v.MonthYear(monthRaw, yearRaw)
	if err := v.Err(); err != nil {
		return Report{}, err
	}

	employees, err := s.store.Employees(ctx, includeInactive)
	if err != nil {
		return Report{}, err
	}
	start, end := monthRange(year, month)
	records, err := s.store.MonthAttendance(ctx, start, end, "")
	if err != nil {
		return Report{}, err
	}

	byEmployee := map[string][]AttendanceDay{}
	for _, rec := range records {
		byEmployee[rec.EmployeeID] = append(byEmployee[rec.EmployeeID], rec)
	}

	workingDays := WorkingDays(year, month)
	report := Report{Year: year, Month: month, WorkingDays: workingDays, Rows: make([]Row, 0, len(employees))}
	for _, emp := range employees {
		report.Rows = append(report.Rows, s.row(emp, byEmployee[emp.ID], year, month, workingDays))
	}
	return report, nil
}

func (s *Service) EmployeeSalary(ctx context.Context, employeeID, monthRaw, yearRaw string) (Row, error) {
	v := apperr.NewValidator()
	employeeID = strings.TrimSpace(employeeID)
	v.Required("employee_id", employeeID, "is required")
	month, year, _ := v.MonthYear(monthRaw, yearRaw)
	if err := v.Err(); err != nil {
		return Row{}, err
	}
	return s.employeeRow(ctx, employeeID, year, month)
}

// Slip renders the salary slip PDF for one employee and month.
func (s *Service) Slip(ctx context.Context, employeeID, monthRaw, yearRaw string) (SlipFile, error) {
	v := apperr.NewValidator()
	employeeID = strings.TrimSpace(employeeID)
	v.Required("employee_id", employeeID, "is required")
	month, year, _ := v.MonthYear(monthRaw, yearRaw)
	if err := v.Err(); err != nil {
		return SlipFile{}, err
	}

	row, err := s.employeeRow(ctx, employeeID, year, month)
	if err != nil {
		return SlipFile{}, err
	}
	var buf bytes.Buffer
	if err := WriteSlip(&buf, row, year, month); err != nil {
		return SlipFile{}, apperr.Store("render salary slip", err)
	}
	return SlipFile{Name: SlipFilename(employeeID, year, month), Body: buf.Bytes()}, nil
}

func (s *Service) employeeRow(ctx context.Context, employeeID string, year, month int) (Row, error) {
	emp, err := s.store.Employee(ctx, employeeID)
	if err != nil {
		return Row{}, err
	}
	start, end := monthRange(year, month)
	records, err := s.store.MonthAttendance(ctx, start, end, employeeID)
	if err != nil {
		return Row{}, err
	}
	return s.row(emp, records, year, month, WorkingDays(year, month)), nil
}

func (s *Service) row(emp Employee, records []AttendanceDay, year, month, workingDays int) Row {
	counts := Tally(records, year, month)
	if counts.Ignored > 0 {
		slog.Debug("attendance records ignored in salary", "employeeId", emp.ID, "year", year, "month", month, "count", counts.Ignored)
	}
	return ComputeSalary(emp, workingDays, counts)
}

func monthRange(year, month int) (string, string) {
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, -1)
	return start.Format(apperr.DateLayout), end.Format(apperr.DateLayout)
}
