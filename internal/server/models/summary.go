package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// IntakeSummary is one day's answer: what was consumed if the day has a
// record, otherwise the computed goal. It is the value cached per day in
// the month hash, so the JSON shape must stay stable.
type IntakeSummary struct {
	Date             time.Time       `json:"date"`
	HasRecord        bool            `json:"has_record"`
	GoalKcal         decimal.Decimal `json:"goal_kcal"`
	ConsumedKcal     decimal.Decimal `json:"consumed_kcal"`
	ConsumedCarbG    decimal.Decimal `json:"consumed_carb_g"`
	ConsumedProteinG decimal.Decimal `json:"consumed_protein_g"`
	ConsumedFatG     decimal.Decimal `json:"consumed_fat_g"`
}

// SummaryFromRecord builds the summary for a day with logged intake.
// A record always wins over a computed goal.
func SummaryFromRecord(r *IntakeRecord) IntakeSummary {
	return IntakeSummary{
		Date:             r.Date,
		HasRecord:        true,
		GoalKcal:         r.GoalKcal,
		ConsumedKcal:     r.ConsumedKcal,
		ConsumedCarbG:    r.ConsumedCarbG,
		ConsumedProteinG: r.ConsumedProteinG,
		ConsumedFatG:     r.ConsumedFatG,
	}
}

// SummaryFromGoal builds the summary for a day without a record, carrying
// only the computed goal. Consumed figures stay zero.
func SummaryFromGoal(goalKcal decimal.Decimal, day time.Time) IntakeSummary {
	return IntakeSummary{Date: day, GoalKcal: goalKcal}
}

// IntakeDetail extends the summary with the full macronutrient goal
// breakdown for one day.
type IntakeDetail struct {
	Date             time.Time       `json:"date"`
	HasRecord        bool            `json:"has_record"`
	GoalKcal         decimal.Decimal `json:"goal_kcal"`
	GoalCarbG        decimal.Decimal `json:"goal_carb_g"`
	GoalProteinG     decimal.Decimal `json:"goal_protein_g"`
	GoalFatG         decimal.Decimal `json:"goal_fat_g"`
	ConsumedKcal     decimal.Decimal `json:"consumed_kcal"`
	ConsumedCarbG    decimal.Decimal `json:"consumed_carb_g"`
	ConsumedProteinG decimal.Decimal `json:"consumed_protein_g"`
	ConsumedFatG     decimal.Decimal `json:"consumed_fat_g"`
}
