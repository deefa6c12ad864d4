package db

import (
	"context"
	"os"
	"testing"
	"testing/fstest"

	"github.com/jackc/pgx/v5/pgxpool"
)

func TestMigrationNamesSortedSQLOnly(t *testing.T) {
	fsys := fstest.MapFS{
		"m/0002_b.sql":   {Data: []byte("SELECT 2")},
		"m/0001_a.sql":   {Data: []byte("SELECT 1")},
		"m/README.md":    {Data: []byte("notes")},
		"m/nested/x.sql": {Data: []byte("SELECT 3")},
	}
	got, err := migrationNames(fsys, "m")
	if err != nil {
		t.Fatalf("migrationNames: %v", err)
	}
	if len(got) != 2 || got[0] != "0001_a.sql" || got[1] != "0002_b.sql" {
		t.Fatalf("unexpected migrations %v", got)
	}
}

func TestEmbeddedMigrationsPresent(t *testing.T) {
	got, err := migrationNames(migrationFiles, "migrations")
	if err != nil {
		t.Fatalf("migrationNames: %v", err)
	}
	if len(got) == 0 || got[0] != "0001_init.sql" {
		t.Fatalf("expected 0001_init.sql first, got %v", got)
	}
}

func TestMigrateAndSeedIdempotent(t *testing.T) {
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	defer pool.Close()

	for i := 0; i < 2; i++ {
		if err := Migrate(ctx, pool); err != nil {
			t.Fatalf("migrate run %d: %v", i+1, err)
		}
		if err := Seed(ctx, pool); err != nil {
			t.Fatalf("seed run %d: %v", i+1, err)
		}
	}

	var count int
	if err := pool.QueryRow(ctx, "SELECT COUNT(1) FROM employees WHERE id = 'EMP001'").Scan(&count); err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected one seeded EMP001, got %d", count)
	}
}
