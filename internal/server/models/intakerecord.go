package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// IntakeRecord is the single logged intake row for one member and one
// calendar day. GoalKcal is frozen when the record is created so later
// profile changes do not rewrite history.
type IntakeRecord struct {
	ID               string
	MemberID         string
	Date             time.Time
	GoalKcal         decimal.Decimal
	ConsumedKcal     decimal.Decimal
	ConsumedCarbG    decimal.Decimal
	ConsumedProteinG decimal.Decimal
	ConsumedFatG     decimal.Decimal
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
