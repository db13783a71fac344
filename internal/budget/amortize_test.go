package budget

import (
	"testing"
	"time"
)

func TestMonthlyContribution(t *testing.T) {
	jan := Period{Year: 2025, Month: 1}

	t.Run("spreads_total_over_remaining_months", func(t *testing.T) {
		due := time.Date(2026, time.January, 15, 0, 0, 0, 0, time.UTC)
		got := MonthlyContribution(1200, due, jan)
		if got != 100 {
			t.Errorf("expected 100, got %v", got)
		}
	})

	t.Run("grows_as_due_date_approaches", func(t *testing.T) {
		due := time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC)
		got := MonthlyContribution(900, due, jan)
		if got != 300 {
			t.Errorf("expected 300, got %v", got)
		}

		got = MonthlyContribution(900, due, Period{Year: 2025, Month: 3})
		if got != 900 {
			t.Errorf("expected 900 one month out, got %v", got)
		}
	})

	t.Run("due_this_month_returns_full_total", func(t *testing.T) {
		due := time.Date(2025, time.January, 31, 0, 0, 0, 0, time.UTC)
		got := MonthlyContribution(1200, due, jan)
		if got != 1200 {
			t.Errorf("expected full total 1200, got %v", got)
		}
	})

	t.Run("past_due_returns_full_total", func(t *testing.T) {
		due := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
		got := MonthlyContribution(500, due, jan)
		if got != 500 {
			t.Errorf("expected full total 500, got %v", got)
		}
	})

	t.Run("rounds_to_cents", func(t *testing.T) {
		due := time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC)
		got := MonthlyContribution(100, due, jan) // 100/3
		if got != 33.33 {
			t.Errorf("expected 33.33, got %v", got)
		}
	})

	t.Run("day_of_month_is_ignored", func(t *testing.T) {
		early := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)
		late := time.Date(2025, time.June, 30, 23, 59, 0, 0, time.UTC)
		if MonthlyContribution(1000, early, jan) != MonthlyContribution(1000, late, jan) {
			t.Error("expected same contribution regardless of due day within the month")
		}
	})
}
