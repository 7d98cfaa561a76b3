package repomanager

import (
	"context"
	"database/sql"

	"github.com/kcaldiary/kcaldiary/internal/dbx"
	"github.com/kcaldiary/kcaldiary/internal/server/repositories/activitylevels"
	"github.com/kcaldiary/kcaldiary/internal/server/repositories/intakerecords"
	"github.com/kcaldiary/kcaldiary/internal/server/repositories/members"
	"github.com/kcaldiary/kcaldiary/internal/server/repositories/nutrientplans"
	"github.com/kcaldiary/kcaldiary/internal/server/repositories/snapshots"
)

// RepositoryManager vends repositories bound to a DBTX, so the same
// constructor serves both plain connections and transactions.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Members(db dbx.DBTX) members.Repository
	Snapshots(db dbx.DBTX) snapshots.Repository
	ActivityLevels(db dbx.DBTX) activitylevels.Repository
	NutrientPlans(db dbx.DBTX) nutrientplans.Repository
	IntakeRecords(db dbx.DBTX) intakerecords.Repository
}
