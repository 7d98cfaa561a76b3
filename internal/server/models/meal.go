package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Meal is an inbound eating event. It is not stored as such; its
// nutrients are folded into the IntakeRecord of the day it was eaten.
type Meal struct {
	EatenAt  time.Time
	Kcal     decimal.Decimal
	CarbG    decimal.Decimal
	ProteinG decimal.Decimal
	FatG     decimal.Decimal
}
