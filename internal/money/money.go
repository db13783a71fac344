// Package money provides rounding helpers for monetary amounts.
// Amounts are stored as plain float64 throughout; rounding to cents is
// applied only at computation and formatting boundaries, never enforced
// on write.
package money

import "math"

// RoundToCents rounds an amount to 2 decimal places, half away from zero.
func RoundToCents(n float64) float64 {
	return math.Round(n*100) / 100
}
