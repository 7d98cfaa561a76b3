// Package intakerecords persists the one-per-day intake rows that meal
// events fold into.
package intakerecords

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/kcaldiary/kcaldiary/internal/common"
	"github.com/kcaldiary/kcaldiary/internal/dbx"
	"github.com/kcaldiary/kcaldiary/internal/server/models"
)

// PostgresRepository implements record storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// GetByDate returns the single record for one member and day, or
// common.ErrorNotFound when the day has no logged intake.
func (r *PostgresRepository) GetByDate(ctx context.Context, memberID string, day time.Time) (*models.IntakeRecord, error) {
	query :=
		`SELECT id, member_id, date, goal_kcal, consumed_kcal, consumed_carb_g, consumed_protein_g, consumed_fat_g, created_at, updated_at
		 FROM intake_records
		 WHERE member_id = $1 AND date = $2
		 `

	record := &models.IntakeRecord{}
	err := r.db.QueryRowContext(ctx, query, memberID, day).Scan(
		&record.ID, &record.MemberID, &record.Date, &record.GoalKcal,
		&record.ConsumedKcal, &record.ConsumedCarbG, &record.ConsumedProteinG, &record.ConsumedFatG,
		&record.CreatedAt, &record.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return record, nil
}

// FindInRange returns all records with a date inside [from, to], ascending.
// One month has at most 31 rows, so a single query covers a whole
// reconciliation pass.
func (r *PostgresRepository) FindInRange(ctx context.Context, memberID string, from, to time.Time) ([]*models.IntakeRecord, error) {
	query :=
		`SELECT id, member_id, date, goal_kcal, consumed_kcal, consumed_carb_g, consumed_protein_g, consumed_fat_g, created_at, updated_at
		 FROM intake_records
		 WHERE member_id = $1 AND date BETWEEN $2 AND $3
		 ORDER BY date
		 `

	rows, err := r.db.QueryContext(ctx, query, memberID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to select intake records: %w", err)
	}
	defer rows.Close()

	var result []*models.IntakeRecord
	for rows.Next() {
		var item models.IntakeRecord
		if err := rows.Scan(
			&item.ID, &item.MemberID, &item.Date, &item.GoalKcal,
			&item.ConsumedKcal, &item.ConsumedCarbG, &item.ConsumedProteinG, &item.ConsumedFatG,
			&item.CreatedAt, &item.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Create inserts a record with a caller-supplied id; timestamps come from
// the database. The unique (member_id, date) constraint rejects a second
// record for the same day.
func (r *PostgresRepository) Create(ctx context.Context, record *models.IntakeRecord) (*models.IntakeRecord, error) {
	query :=
		`INSERT INTO intake_records (id, member_id, date, goal_kcal, consumed_kcal, consumed_carb_g, consumed_protein_g, consumed_fat_g)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING created_at, updated_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		record.ID, record.MemberID, record.Date, record.GoalKcal,
		record.ConsumedKcal, record.ConsumedCarbG, record.ConsumedProteinG, record.ConsumedFatG,
	).Scan(&record.CreatedAt, &record.UpdatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return record, nil
}

// Update rewrites the consumed figures of an existing record. Returns
// common.ErrorNotFound when the id does not match any row.
func (r *PostgresRepository) Update(ctx context.Context, record *models.IntakeRecord) error {
	query :=
		`UPDATE intake_records
		 SET consumed_kcal = $1, consumed_carb_g = $2, consumed_protein_g = $3, consumed_fat_g = $4, updated_at = now()
		 WHERE id = $5
		 `

	res, err := r.db.ExecContext(ctx, query,
		record.ConsumedKcal, record.ConsumedCarbG, record.ConsumedProteinG, record.ConsumedFatG, record.ID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	switch n {
	case 1:
		return nil
	case 0:
		return common.ErrorNotFound
	default:
		return fmt.Errorf("unexpected rows affected: %d", n)
	}
}
