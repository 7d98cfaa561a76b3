package nutrientplans

import (
	"context"

	"github.com/kcaldiary/kcaldiary/internal/server/models"
)

type Repository interface {
	GetByID(ctx context.Context, id int64) (*models.NutrientPlan, error)
}
