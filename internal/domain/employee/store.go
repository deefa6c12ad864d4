package employee

import (
	"context"

	"github.com/jackc/pgx/v5"

	"staffpay/internal/apperr"
	"staffpay/internal/platform/querier"
)

const employeeColumns = `id, name, age, place, contact, image_url, salary::float8,
       job_time_from::text, job_time_to::text, to_char(joining_date, 'YYYY-MM-DD'),
       total_leaves, status, created_at, updated_at`

type Store struct {
	DB querier.TxBeginner
}

func NewStore(db querier.TxBeginner) *Store {
	return &Store{DB: db}
}

func scanEmployee(row pgx.Row) (Employee, error) {
	var emp Employee
	err := row.Scan(
		&emp.ID, &emp.Name, &emp.Age, &emp.Place, &emp.Contact, &emp.ImageURL, &emp.Salary,
		&emp.JobTimeFrom, &emp.JobTimeTo, &emp.JoiningDate,
		&emp.TotalLeaves, &emp.Status, &emp.CreatedAt, &emp.UpdatedAt,
	)
	return emp, err
}

func (s *Store) Create(ctx context.Context, emp Employee) (Employee, error) {
	row := s.DB.QueryRow(ctx, `
    INSERT INTO employees
      (id, name, age, place, contact, image_url, salary, job_time_from, job_time_to, joining_date, total_leaves, status)
    VALUES ($1, $2, $3, $4, $5, $6, $7, $8::time, $9::time, $10::date, $11, $12)
    RETURNING `+employeeColumns,
		emp.ID, emp.Name, emp.Age, emp.Place, emp.Contact, emp.ImageURL, emp.Salary,
		emp.JobTimeFrom, emp.JobTimeTo, emp.JoiningDate, emp.TotalLeaves, emp.Status,
	)
	created, err := scanEmployee(row)
	if err != nil {
		return Employee{}, apperr.FromStore("create employee", err, msgNotFound, msgConflict)
	}
	return created, nil
}

func (s *Store) Get(ctx context.Context, id string) (Employee, error) {
	row := s.DB.QueryRow(ctx, `SELECT `+employeeColumns+` FROM employees WHERE id = $1`, id)
	emp, err := scanEmployee(row)
	if err != nil {
		return Employee{}, apperr.FromStore("get employee", err, msgNotFound, msgConflict)
	}
	return emp, nil
}

func (s *Store) List(ctx context.Context, status string) ([]Employee, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT `+employeeColumns+`
    FROM employees
    WHERE ($1 = '' OR status = $1)
    ORDER BY name, id
  `, status)
	if err != nil {
		return nil, apperr.Store("list employees", err)
	}
	defer rows.Close()

	out := []Employee{}
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, apperr.Store("scan employee", err)
		}
		out = append(out, emp)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Store("list employees", err)
	}
	return out, nil
}

// Update changes only the supplied fields.
func (s *Store) Update(ctx context.Context, id string, patch Input) (Employee, error) {
	row := s.DB.QueryRow(ctx, `
    UPDATE employees SET
      name = COALESCE($2, name),
      age = COALESCE($3, age),
      place = COALESCE($4, place),
      contact = COALESCE($5, contact),
      image_url = COALESCE($6, image_url),
      salary = COALESCE($7, salary),
      job_time_from = COALESCE($8::time, job_time_from),
      job_time_to = COALESCE($9::time, job_time_to),
      joining_date = COALESCE($10::date, joining_date),
      total_leaves = COALESCE($11, total_leaves),
      status = COALESCE($12, status),
      updated_at = now()
    WHERE id = $1
    RETURNING `+employeeColumns,
		id, patch.Name, patch.Age, patch.Place, patch.Contact, patch.ImageURL, patch.Salary,
		patch.JobTimeFrom, patch.JobTimeTo, patch.JoiningDate, patch.TotalLeaves, patch.Status,
	)
	emp, err := scanEmployee(row)
	if err != nil {
		return Employee{}, apperr.FromStore("update employee", err, msgNotFound, msgConflict)
	}
	return emp, nil
}

func (s *Store) SetStatus(ctx context.Context, id, status string) (Employee, error) {
	row := s.DB.QueryRow(ctx, `
    UPDATE employees SET status = $2, updated_at = now()
    WHERE id = $1
    RETURNING `+employeeColumns, id, status)
	emp, err := scanEmployee(row)
	if err != nil {
		return Employee{}, apperr.FromStore("set employee status", err, msgNotFound, msgConflict)
	}
	return emp, nil
}

// Delete removes the employee and its attendance rows in one transaction.
func (s *Store) Delete(ctx context.Context, id string) error {
	tx, err := s.DB.Begin(ctx)
	if err != nil {
		return apperr.Store("begin delete employee", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `DELETE FROM attendance_records WHERE employee_id = $1`, id); err != nil {
		return apperr.Store("delete employee attendance", err)
	}
	tag, err := tx.Exec(ctx, `DELETE FROM employees WHERE id = $1`, id)
	if err != nil {
		return apperr.Store("delete employee", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(msgNotFound)
	}
	if err := tx.Commit(ctx); err != nil {
		return apperr.Store("commit delete employee", err)
	}
	return nil
}
