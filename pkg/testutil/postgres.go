//go:build integration

package testutil

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	pgpkg "github.com/hammadmunir959/Student-Mental-Health-Diagnoser-Using-Gradient-Boosting/pkg/postgres"
)

// Database is a throwaway PostgreSQL instance with an open pool.
type Database struct {
	DSN  string
	Pool *pgxpool.Pool
}

// StartPostgres starts PostgreSQL 16 in a container and connects a small
// pool to it. Both are released when t finishes.
func StartPostgres(ctx context.Context, t *testing.T) *Database {
	t.Helper()

	container, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("mindcheck"),
		postgres.WithUsername("mindcheck"),
		postgres.WithPassword("mindcheck"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		t.Fatalf("start postgres: %v", err)
	}
	t.Cleanup(func() {
		stopCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := container.Terminate(stopCtx); err != nil {
			t.Logf("terminate postgres: %v", err)
		}
	})

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("postgres dsn: %v", err)
	}

	pool, err := pgpkg.NewPool(ctx, pgpkg.Config{URL: dsn, MaxConns: 4})
	if err != nil {
		t.Fatalf("connect postgres: %v", err)
	}
	t.Cleanup(pool.Close)

	return &Database{DSN: dsn, Pool: pool}
}

// Migrate applies every pending migration found in dir.
func (db *Database) Migrate(t *testing.T, dir string) {
	t.Helper()

	version, err := pgpkg.RunMigrations(db.DSN, migrationSource(t, dir))
	if err != nil {
		t.Fatalf("migrate up: %v", err)
	}
	t.Logf("schema at version %d", version)
}

// Rollback reverts every migration found in dir.
func (db *Database) Rollback(t *testing.T, dir string) {
	t.Helper()

	if err := pgpkg.RunMigrationsDown(db.DSN, migrationSource(t, dir)); err != nil {
		t.Fatalf("migrate down: %v", err)
	}
}

func migrationSource(t *testing.T, dir string) string {
	t.Helper()
	abs, err := filepath.Abs(dir)
	if err != nil {
		t.Fatalf("resolve %s: %v", dir, err)
	}
	return "file://" + filepath.ToSlash(abs)
}
