package payroll

import "context"

type StoreAPI interface {
	Employees(ctx context.Context, includeInactive bool) ([]Employee, error)
	Employee(ctx context.Context, id string) (Employee, error)
	MonthAttendance(ctx context.Context, start, end, employeeID string) ([]AttendanceDay, error)
}
