package payroll

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"staffpay/internal/apperr"
	"staffpay/internal/platform/querier"
)

type Store struct {
	DB querier.Querier
}

func NewStore(db querier.Querier) *Store {
	return &Store{DB: db}
}

func scanEmployee(row pgx.Row) (Employee, error) {
	var emp Employee
	var salary string
	if err := row.Scan(&emp.ID, &emp.Name, &salary, &emp.TotalLeaves, &emp.Status); err != nil {
		return Employee{}, err
	}
	parsed, err := decimal.NewFromString(salary)
	if err != nil {
		return Employee{}, err
	}
	emp.Salary = parsed
	return emp, nil
}

func (s *Store) Employees(ctx context.Context, includeInactive bool) ([]Employee, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, name, salary::text, total_leaves, status
    FROM employees
    WHERE $1 OR status = 'active'
    ORDER BY name, id
  `, includeInactive)
	if err != nil {
		return nil, apperr.Store("list payroll employees", err)
	}
	defer rows.Close()

	out := []Employee{}
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, apperr.Store("scan payroll employee", err)
		}
		out = append(out, emp)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Store("list payroll employees", err)
	}
	return out, nil
}

func (s *Store) Employee(ctx context.Context, id string) (Employee, error) {
	row := s.DB.QueryRow(ctx, `SELECT id, name, salary::text, total_leaves, status FROM employees WHERE id = $1`, id)
	emp, err := scanEmployee(row)
	if err != nil {
		return Employee{}, apperr.FromStore("get payroll employee", err, msgEmployeeNotFound, "")
	}
	return emp, nil
}

// MonthAttendance returns records in [start, end]. An empty employeeID
// returns every employee's records.
func (s *Store) MonthAttendance(ctx context.Context, start, end, employeeID string) ([]AttendanceDay, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT employee_id, date, status
    FROM attendance_records
    WHERE date BETWEEN $1::date AND $2::date
      AND ($3 = '' OR employee_id = $3)
  `, start, end, employeeID)
	if err != nil {
		return nil, apperr.Store("list month attendance", err)
	}
	defer rows.Close()

	out := []AttendanceDay{}
	for rows.Next() {
		var rec AttendanceDay
		if err := rows.Scan(&rec.EmployeeID, &rec.Date, &rec.Status); err != nil {
			return nil, apperr.Store("scan month attendance", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Store("list month attendance", err)
	}
	return out, nil
}
