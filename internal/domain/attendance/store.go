package attendance

import (
	"context"

	"github.com/jackc/pgx/v5"

	"staffpay/internal/apperr"
	"staffpay/internal/platform/querier"
)

const recordColumns = `a.id, a.employee_id, e.name, to_char(a.date, 'YYYY-MM-DD'), a.status,
       a.check_in::text, a.check_out::text, a.notes, a.created_at, a.updated_at`

type Store struct {
	DB querier.Querier
}

func NewStore(db querier.Querier) *Store {
	return &Store{DB: db}
}

func scanRecord(row pgx.Row) (Record, error) {
	var rec Record
	err := row.Scan(
		&rec.ID, &rec.EmployeeID, &rec.EmployeeName, &rec.Date, &rec.Status,
		&rec.CheckIn, &rec.CheckOut, &rec.Notes, &rec.CreatedAt, &rec.UpdatedAt,
	)
	return rec, err
}

func (s *Store) EmployeeExists(ctx context.Context, employeeID string) (bool, error) {
	var count int
	if err := s.DB.QueryRow(ctx, `SELECT COUNT(1) FROM employees WHERE id = $1`, employeeID).Scan(&count); err != nil {
		return false, apperr.Store("lookup employee", err)
	}
	return count > 0, nil
}

// Upsert writes the record for (employee_id, date) in a single statement and
// reports whether a new row was inserted.
func (s *Store) Upsert(ctx context.Context, rec Record) (Record, bool, error) {
	row := s.DB.QueryRow(ctx, `
    INSERT INTO attendance_records (employee_id, date, status, check_in, check_out, notes)
    VALUES ($1, $2::date, $3, $4::time, $5::time, $6)
    ON CONFLICT (employee_id, date) DO UPDATE SET
      status = EXCLUDED.status,
      check_in = EXCLUDED.check_in,
      check_out = EXCLUDED.check_out,
      notes = EXCLUDED.notes,
      updated_at = now()
    RETURNING id, employee_id, to_char(date, 'YYYY-MM-DD'), status,
              check_in::text, check_out::text, notes, created_at, updated_at, (xmax = 0) AS inserted
  `, rec.EmployeeID, rec.Date, rec.Status, rec.CheckIn, rec.CheckOut, rec.Notes)

	var out Record
	var inserted bool
	err := row.Scan(
		&out.ID, &out.EmployeeID, &out.Date, &out.Status,
		&out.CheckIn, &out.CheckOut, &out.Notes, &out.CreatedAt, &out.UpdatedAt, &inserted,
	)
	if err != nil {
		return Record{}, false, apperr.FromStore("upsert attendance", err, msgEmployeeNotFound, msgConflict)
	}
	return out, inserted, nil
}

func (s *Store) ListByDate(ctx context.Context, date string) ([]Record, error) {
	return s.list(ctx, "list attendance by date", `
    SELECT `+recordColumns+`
    FROM attendance_records a
    JOIN employees e ON e.id = a.employee_id
    WHERE a.date = $1::date
    ORDER BY e.name, a.employee_id
  `, date)
}

func (s *Store) ListByRange(ctx context.Context, start, end string) ([]Record, error) {
	return s.list(ctx, "list attendance by range", `
    SELECT `+recordColumns+`
    FROM attendance_records a
    JOIN employees e ON e.id = a.employee_id
    WHERE a.date BETWEEN $1::date AND $2::date
    ORDER BY a.date, e.name, a.employee_id
  `, start, end)
}

func (s *Store) list(ctx context.Context, op, query string, args ...any) ([]Record, error) {
	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, apperr.Store(op, err)
	}
	defer rows.Close()

	out := []Record{}
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, apperr.Store(op, err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Store(op, err)
	}
	return out, nil
}

// Summary counts statuses per employee over the range. Employees without
// records appear with zero counts.
func (s *Store) Summary(ctx context.Context, start, end string) ([]SummaryRow, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT e.id, e.name,
           COUNT(a.id) FILTER (WHERE a.status = 'present'),
           COUNT(a.id) FILTER (WHERE a.status = 'absent'),
           COUNT(a.id) FILTER (WHERE a.status = 'half_day'),
           COUNT(a.id) FILTER (WHERE a.status = 'leave')
    FROM employees e
    LEFT JOIN attendance_records a
      ON a.employee_id = e.id AND a.date BETWEEN $1::date AND $2::date
    GROUP BY e.id, e.name
    ORDER BY e.name, e.id
  `, start, end)
	if err != nil {
		return nil, apperr.Store("attendance summary", err)
	}
	defer rows.Close()

	out := []SummaryRow{}
	for rows.Next() {
		var row SummaryRow
		if err := rows.Scan(&row.EmployeeID, &row.EmployeeName, &row.Present, &row.Absent, &row.HalfDay, &row.Leave); err != nil {
			return nil, apperr.Store("attendance summary", err)
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Store("attendance summary", err)
	}
	return out, nil
}

// History returns one employee's records newest first plus the total count.
// Empty Start or End leaves that side of the range open.
func (s *Store) History(ctx context.Context, q HistoryQuery) ([]Record, int, error) {
	const filter = `
    FROM attendance_records a
    JOIN employees e ON e.id = a.employee_id
    WHERE a.employee_id = $1
      AND a.date >= COALESCE(NULLIF($2, '')::date, a.date)
      AND a.date <= COALESCE(NULLIF($3, '')::date, a.date)`

	var total int
	if err := s.DB.QueryRow(ctx, `SELECT COUNT(1)`+filter, q.EmployeeID, q.Start, q.End).Scan(&total); err != nil {
		return nil, 0, apperr.Store("count attendance history", err)
	}
	records, err := s.list(ctx, "attendance history", `SELECT `+recordColumns+filter+`
    ORDER BY a.date DESC
    LIMIT $4 OFFSET $5`, q.EmployeeID, q.Start, q.End, q.Limit, q.Offset)
	if err != nil {
		return nil, 0, err
	}
	return records, total, nil
}
