package export

import (
	"context"

	"staffpay/internal/apperr"
	"staffpay/internal/platform/querier"
)

type StoreAPI interface {
	AttendanceRows(ctx context.Context, start, end string) ([]Row, error)
}

type Store struct {
	DB querier.Querier
}

func NewStore(db querier.Querier) *Store {
	return &Store{DB: db}
}

func (s *Store) AttendanceRows(ctx context.Context, start, end string) ([]Row, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT e.id, e.name, e.place, to_char(a.date, 'YYYY-MM-DD'), a.status,
           a.check_in::text, a.check_out::text, a.notes
    FROM attendance_records a
    JOIN employees e ON e.id = a.employee_id
    WHERE a.date BETWEEN $1::date AND $2::date
    ORDER BY a.date, e.name, e.id
  `, start, end)
	if err != nil {
		return nil, apperr.Store("export attendance", err)
	}
	defer rows.Close()

	out := []Row{}
	for rows.Next() {
		var row Row
		if err := rows.Scan(&row.EmployeeID, &row.EmployeeName, &row.Place, &row.Date, &row.Status, &row.CheckIn, &row.CheckOut, &row.Notes); err != nil {
			return nil, apperr.Store("scan export row", err)
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Store("export attendance", err)
	}
	return out, nil
}
