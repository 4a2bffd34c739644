package postgres

import (
	"context"
	"embed"
	"fmt"

	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Migrate applies all pending migrations against the pool's database.
// Migrations are embedded in the binary so deployments need no extra files.
func Migrate(ctx context.Context, pool *Pool) error {
	db := stdlib.OpenDBFromPool(pool.Pool)
	defer func() { _ = db.Close() }()

	goose.SetBaseFS(migrationsFS)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}

	if err := goose.UpContext(ctx, db, "migrations"); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}

	return nil
}

// MigrationStatus returns the current database migration version.
func MigrationStatus(ctx context.Context, pool *Pool) (int64, error) {
	db := stdlib.OpenDBFromPool(pool.Pool)
	defer func() { _ = db.Close() }()

	goose.SetBaseFS(migrationsFS)
	if err := goose.SetDialect("postgres"); err != nil {
		return 0, fmt.Errorf("set goose dialect: %w", err)
	}

	return goose.GetDBVersionContext(ctx, db)
}
