// Package repomanager provides a concrete RepositoryManager for PostgreSQL,
// wiring together repository constructors and database migrations (via goose).
package repomanager

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"

	"github.com/kcaldiary/kcaldiary/internal/dbx"
	"github.com/kcaldiary/kcaldiary/internal/server/migrations"
	"github.com/kcaldiary/kcaldiary/internal/server/repositories/activitylevels"
	"github.com/kcaldiary/kcaldiary/internal/server/repositories/intakerecords"
	"github.com/kcaldiary/kcaldiary/internal/server/repositories/members"
	"github.com/kcaldiary/kcaldiary/internal/server/repositories/nutrientplans"
	"github.com/kcaldiary/kcaldiary/internal/server/repositories/snapshots"
)

// PostgresRepositoryManager vends PostgreSQL-backed repository
// implementations and exposes a schema migration hook.
type PostgresRepositoryManager struct{}

// NewPostgresRepositoryManager constructs a PostgreSQL-backed RepositoryManager.
func NewPostgresRepositoryManager() RepositoryManager {
	return &PostgresRepositoryManager{}
}

// Members returns a members.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) Members(db dbx.DBTX) members.Repository {
	return members.NewPostgresRepository(db)
}

// Snapshots returns a snapshots.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) Snapshots(db dbx.DBTX) snapshots.Repository {
	return snapshots.NewPostgresRepository(db)
}

// ActivityLevels returns an activitylevels.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) ActivityLevels(db dbx.DBTX) activitylevels.Repository {
	return activitylevels.NewPostgresRepository(db)
}

// NutrientPlans returns a nutrientplans.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) NutrientPlans(db dbx.DBTX) nutrientplans.Repository {
	return nutrientplans.NewPostgresRepository(db)
}

// IntakeRecords returns an intakerecords.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) IntakeRecords(db dbx.DBTX) intakerecords.Repository {
	return intakerecords.NewPostgresRepository(db)
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// RunMigrations sets up goose with the embedded migrations and runs them
// against the provided database connection.
func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return err
	}
	return gooseUpContext(ctx, db, ".")
}
