package database

import "github.com/shopspring/decimal"

// NumericScale is the number of decimal places stored for probabilities and prices
const NumericScale = 6

// Numeric rounds a float for a NUMERIC column
func Numeric(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v).Round(NumericScale)
}
