package budget

import (
	"time"

	"pennywise/internal/money"
)

// MonthlyContribution converts a planned lump sum into the equivalent
// monthly amount for the target period. The number of installments shrinks
// as the due date approaches; a due date in the target month or in the past
// yields the full total, so an unpaid planned expense resurfaces at full
// value every month until it is deleted or paid off out-of-band.
func MonthlyContribution(total float64, dueDate time.Time, p Period) float64 {
	due := dueDate.UTC()
	monthsRemaining := (due.Year()-p.Year)*12 + int(due.Month()) - p.Month
	if monthsRemaining > 0 {
		return money.RoundToCents(total / float64(monthsRemaining))
	}
	return total
}
