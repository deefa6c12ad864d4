package db

import (
	"context"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
)

type demoEmployee struct {
	id          string
	name        string
	age         int
	place       string
	contact     string
	salary      string
	jobFrom     string
	jobTo       string
	joiningDate string
	totalLeaves int
}

var demoEmployees = []demoEmployee{
	{"EMP001", "Asha Rao", 29, "Bengaluru", "9800000001", "30000.00", "09:00:00", "18:00:00", "2022-04-01", 2},
	{"EMP002", "Ravi Kumar", 35, "Chennai", "9800000002", "42000.00", "10:00:00", "19:00:00", "2021-08-16", 3},
	{"EMP003", "Meera Nair", 41, "Kochi", "9800000003", "55000.00", "09:30:00", "18:30:00", "2019-01-07", 4},
}

// Seed inserts a few demo employees. Existing rows are left untouched.
func Seed(ctx context.Context, pool *pgxpool.Pool) error {
	inserted := 0
	for _, emp := range demoEmployees {
		tag, err := pool.Exec(ctx, `INSERT INTO employees
			(id, name, age, place, contact, salary, job_time_from, job_time_to, joining_date, total_leaves)
			VALUES ($1, $2, $3, $4, $5, $6::numeric, $7::time, $8::time, $9::date, $10)
			ON CONFLICT (id) DO NOTHING`,
			emp.id, emp.name, emp.age, emp.place, emp.contact, emp.salary, emp.jobFrom, emp.jobTo, emp.joiningDate, emp.totalLeaves)
		if err != nil {
			return err
		}
		inserted += int(tag.RowsAffected())
	}
	slog.Info("demo data seeded", "employees", inserted)
	return nil
}
