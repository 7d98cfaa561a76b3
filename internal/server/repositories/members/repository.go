package members

import (
	"context"

	"github.com/kcaldiary/kcaldiary/internal/server/models"
)

type Repository interface {
	GetByID(ctx context.Context, id string) (*models.Member, error)
}
