// Package activitylevels reads the activity level reference table.
package activitylevels

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

func (r *PostgresRepository) FindAll(ctx context.Context) ([]*models.ActivityLevel, error) {
	query :=
		`SELECT id, code, name, factor FROM activity_levels
		 ORDER BY id
		 `

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.ActivityLevel
	for rows.Next() {
		var item models.ActivityLevel
		if err := rows.Scan(&item.ID, &item.Code, &item.Name, &item.Factor); err != nil {
			return nil, err
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*models.ActivityLevel, error) {
	query :=
		`SELECT id, code, name, factor FROM activity_levels
		 WHERE id = $1
		 `

	level := &models.ActivityLevel{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&level.ID, &level.Code, &level.Name, &level.Factor)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return level, nil
}
