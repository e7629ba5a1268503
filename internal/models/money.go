package models

import "github.com/shopspring/decimal"

// Amounts are persisted as float64 and computed with decimal so that sums of
// line totals do not drift.

func Money(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v).Round(2)
}

func ToFloat(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}
