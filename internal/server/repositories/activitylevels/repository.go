package activitylevels

import (
	"context"

	"github.com/kcaldiary/kcaldiary/internal/server/models"
)

type Repository interface {
	FindAll(ctx context.Context) ([]*models.ActivityLevel, error)
	GetByID(ctx context.Context, id int64) (*models.ActivityLevel, error)
}
