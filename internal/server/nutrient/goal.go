// Package nutrient computes daily intake targets from a member's profile.
package nutrient

import (
	"github.com/shopspring/decimal"

	"github.com/kcaldiary/kcaldiary/internal/datex"
	"github.com/kcaldiary/kcaldiary/internal/server/models"
)

var (
	kcalPerCarbGram    = decimal.NewFromInt(4)
	kcalPerProteinGram = decimal.NewFromInt(4)
	kcalPerFatGram     = decimal.NewFromInt(9)
)

// Goal is a daily intake target: total kcal plus macronutrient gram targets.
type Goal struct {
	Kcal     decimal.Decimal
	CarbG    decimal.Decimal
	ProteinG decimal.Decimal
	FatG     decimal.Decimal
}

// CalculateGoalKcal returns the daily kcal target for a member under the
// given profile snapshot: Mifflin-St Jeor resting rate scaled by the
// activity factor, rounded to a whole kcal. Age is taken at the snapshot's
// effective date, which keeps the result a pure function of its inputs.
func CalculateGoalKcal(member *models.Member, snap *models.ProfileSnapshot, level *models.ActivityLevel) decimal.Decimal {
	age := decimal.NewFromInt(int64(datex.AgeYears(member.BirthDate, snap.EffectiveDate)))

	bmr := decimal.NewFromInt(10).Mul(snap.WeightKg).
		Add(decimal.NewFromFloat(6.25).Mul(snap.HeightCm)).
		Sub(decimal.NewFromInt(5).Mul(age))

	if member.Gender == models.GenderFemale {
		bmr = bmr.Sub(decimal.NewFromInt(161))
	} else {
		bmr = bmr.Add(decimal.NewFromInt(5))
	}

	return bmr.Mul(level.Factor).Round(0)
}

// GoalFor computes the full daily goal, kcal and macro grams, from scratch.
func GoalFor(member *models.Member, snap *models.ProfileSnapshot, level *models.ActivityLevel, plan *models.NutrientPlan) Goal {
	return GoalFromKcal(CalculateGoalKcal(member, snap, level), plan)
}

// GoalFromKcal splits an already-fixed kcal target into macro gram targets
// using the plan's ratios. Grams are rounded to one decimal place.
func GoalFromKcal(kcal decimal.Decimal, plan *models.NutrientPlan) Goal {
	return Goal{
		Kcal:     kcal,
		CarbG:    grams(kcal, plan.CarbRatio, kcalPerCarbGram),
		ProteinG: grams(kcal, plan.ProteinRatio, kcalPerProteinGram),
		FatG:     grams(kcal, plan.FatRatio, kcalPerFatGram),
	}
}

func grams(kcal, ratio, kcalPerGram decimal.Decimal) decimal.Decimal {
	return kcal.Mul(ratio).Div(kcalPerGram).Round(1)
}
