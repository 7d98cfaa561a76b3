package snapshots

import (
	"context"
	"time"

	"github.com/kcaldiary/kcaldiary/internal/server/models"
)

type Repository interface {
	// FindInRange returns snapshots with an effective date inside
	// [from, to], ordered by effective date then creation time ascending.
	FindInRange(ctx context.Context, memberID string, from, to time.Time) ([]*models.ProfileSnapshot, error)

	// GetLatest returns the most recent snapshot by effective date.
	GetLatest(ctx context.Context, memberID string) (*models.ProfileSnapshot, error)
}
