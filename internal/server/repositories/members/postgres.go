// Package members reads member accounts owned by the identity service.
package members

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

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Member, error) {
	query :=
		`SELECT id, nickname, gender, birth_date, created_at FROM members
		 WHERE id = $1
		 `

	member := &models.Member{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&member.ID, &member.Nickname, &member.Gender, &member.BirthDate, &member.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return member, nil
}
