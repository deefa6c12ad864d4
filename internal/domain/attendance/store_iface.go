package attendance

import "context"

// Dates are YYYY-MM-DD strings validated by the service.
type StoreAPI interface {
	EmployeeExists(ctx context.Context, employeeID string) (bool, error)
	Upsert(ctx context.Context, rec Record) (Record, bool, error)
	ListByDate(ctx context.Context, date string) ([]Record, error)
	ListByRange(ctx context.Context, start, end string) ([]Record, error)
	Summary(ctx context.Context, start, end string) ([]SummaryRow, error)
	History(ctx context.Context, q HistoryQuery) ([]Record, int, error)
}
