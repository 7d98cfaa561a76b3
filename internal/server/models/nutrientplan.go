package models

import "github.com/shopspring/decimal"

// NutrientPlan splits a daily kcal goal into macronutrients; the three
// ratios sum to 1.
type NutrientPlan struct {
	ID           int64
	Code         string
	Name         string
	CarbRatio    decimal.Decimal
	ProteinRatio decimal.Decimal
	FatRatio     decimal.Decimal
}
