// Package snapshots reads the append-only profile snapshot history.
package snapshots

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

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// FindInRange orders by (effective_date, created_at) ascending so that for
// snapshots sharing an effective date, the latest-created one comes last.
func (r *PostgresRepository) FindInRange(ctx context.Context, memberID string, from, to time.Time) ([]*models.ProfileSnapshot, error) {
	query :=
		`SELECT id, member_id, effective_date, weight_kg, height_cm, activity_level_id, nutrient_plan_id, created_at
		 FROM profile_snapshots
		 WHERE member_id = $1 AND effective_date BETWEEN $2 AND $3
		 ORDER BY effective_date, created_at
		 `

	rows, err := r.db.QueryContext(ctx, query, memberID, from, to)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.ProfileSnapshot
	for rows.Next() {
		var item models.ProfileSnapshot
		if err := rows.Scan(
			&item.ID, &item.MemberID, &item.EffectiveDate, &item.WeightKg, &item.HeightCm,
			&item.ActivityLevelID, &item.NutrientPlanID, &item.CreatedAt,
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

func (r *PostgresRepository) GetLatest(ctx context.Context, memberID string) (*models.ProfileSnapshot, error) {
	query :=
		`SELECT id, member_id, effective_date, weight_kg, height_cm, activity_level_id, nutrient_plan_id, created_at
		 FROM profile_snapshots
		 WHERE member_id = $1
		 ORDER BY effective_date DESC, created_at DESC
		 LIMIT 1
		 `

	snap := &models.ProfileSnapshot{}
	err := r.db.QueryRowContext(ctx, query, memberID).Scan(
		&snap.ID, &snap.MemberID, &snap.EffectiveDate, &snap.WeightKg, &snap.HeightCm,
		&snap.ActivityLevelID, &snap.NutrientPlanID, &snap.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return snap, nil
}
