// Package nutrientplans reads the nutrient plan reference table.
package nutrientplans

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

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

func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*models.NutrientPlan, error) {
	query :=
		`SELECT id, code, name, carb_ratio, protein_ratio, fat_ratio FROM nutrient_plans
		 WHERE id = $1
		 `

	plan := &models.NutrientPlan{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&plan.ID, &plan.Code, &plan.Name, &plan.CarbRatio, &plan.ProteinRatio, &plan.FatRatio)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return plan, nil
}
