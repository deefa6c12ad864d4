package testhelpers

import (
	"context"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"

	"staffpay/internal/platform/db"
)

// Pool connects to TEST_DATABASE_URL, applies migrations and empties the
// domain tables. Tests skip when the variable is unset.
func Pool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	return Prepare(t, dsn)
}

func Prepare(t *testing.T, dsn string) *pgxpool.Pool {
	t.Helper()
	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Fatalf("connect test database: %v", err)
	}
	t.Cleanup(pool.Close)

	if err := db.Migrate(ctx, pool); err != nil {
		t.Fatalf("migrate test database: %v", err)
	}
	if _, err := pool.Exec(ctx, "TRUNCATE attendance_records, employees, audit_events RESTART IDENTITY CASCADE"); err != nil {
		t.Fatalf("truncate test database: %v", err)
	}
	return pool
}

// InsertEmployee adds a minimal active employee row.
func InsertEmployee(t *testing.T, pool *pgxpool.Pool, id, name string, salary float64, totalLeaves int) {
	t.Helper()
	_, err := pool.Exec(context.Background(), `
    INSERT INTO employees (id, name, age, place, salary, job_time_from, job_time_to, joining_date, total_leaves)
    VALUES ($1, $2, 30, 'Pune', $3, '09:00', '18:00', '2023-01-02', $4)
  `, id, name, salary, totalLeaves)
	if err != nil {
		t.Fatalf("insert employee %s: %v", id, err)
	}
}
