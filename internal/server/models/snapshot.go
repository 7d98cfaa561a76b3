package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProfileSnapshot is an append-only capture of a member's body profile,
// effective from EffectiveDate until superseded by a later snapshot.
type ProfileSnapshot struct {
	ID              string
	MemberID        string
	EffectiveDate   time.Time
	WeightKg        decimal.Decimal
	HeightCm        decimal.Decimal
	ActivityLevelID int64
	NutrientPlanID  int64
	CreatedAt       time.Time
}
