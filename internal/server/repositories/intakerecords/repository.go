package intakerecords

import (
	"context"
	"time"

	"github.com/kcaldiary/kcaldiary/internal/server/models"
)

type Repository interface {
	GetByDate(ctx context.Context, memberID string, day time.Time) (*models.IntakeRecord, error)
	FindInRange(ctx context.Context, memberID string, from, to time.Time) ([]*models.IntakeRecord, error)
	Create(ctx context.Context, record *models.IntakeRecord) (*models.IntakeRecord, error)
	Update(ctx context.Context, record *models.IntakeRecord) error
}
