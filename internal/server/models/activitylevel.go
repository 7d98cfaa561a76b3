package models

import "github.com/shopspring/decimal"

type ActivityLevel struct {
	ID     int64
	Code   string
	Name   string
	Factor decimal.Decimal
}
