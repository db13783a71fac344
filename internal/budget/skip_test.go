package budget

import (
	"testing"
	"time"
)

func TestFilterRecurring(t *testing.T) {
	lines := []RecurringLine{
		{Category: "Rent", Amount: 1500},
		{Category: "Gym", Amount: 50},
	}

	t.Run("skip_removes_only_matching_period", func(t *testing.T) {
		skips := []RecurringSkip{{Category: "Gym", Year: 2025, Month: 6}}

		kept := FilterRecurring(lines, skips, Period{Year: 2025, Month: 6})
		if len(kept) != 1 || kept[0].Category != "Rent" {
			t.Fatalf("expected only Rent in skipped month, got %+v", kept)
		}
	})

	t.Run("adjacent_months_unaffected", func(t *testing.T) {
		skips := []RecurringSkip{{Category: "Gym", Year: 2025, Month: 6}}

		for _, p := range []Period{{2025, 5}, {2025, 7}, {2024, 6}} {
			kept := FilterRecurring(lines, skips, p)
			if len(kept) != 2 {
				t.Errorf("period %d-%d: expected both lines, got %+v", p.Year, p.Month, kept)
			}
		}
	})

	t.Run("no_skips_keeps_everything", func(t *testing.T) {
		kept := FilterRecurring(lines, nil, Period{Year: 2025, Month: 6})
		if len(kept) != 2 {
			t.Fatalf("expected both lines, got %+v", kept)
		}
	})
}

func TestFilterPlanned(t *testing.T) {
	due := time.Date(2025, time.December, 1, 0, 0, 0, 0, time.UTC)
	items := []PlannedItem{
		{ID: "pe-1", Name: "Insurance", Total: 1200, DueDate: due},
		{ID: "pe-2", Name: "Vacation", Total: 3000, DueDate: due},
	}

	t.Run("skip_is_keyed_by_id", func(t *testing.T) {
		skips := []PlannedSkip{{PlannedExpenseID: "pe-2", Year: 2025, Month: 3}}

		kept := FilterPlanned(items, skips, Period{Year: 2025, Month: 3})
		if len(kept) != 1 || kept[0].ID != "pe-1" {
			t.Fatalf("expected only pe-1, got %+v", kept)
		}
	})

	t.Run("skip_is_period_local", func(t *testing.T) {
		skips := []PlannedSkip{{PlannedExpenseID: "pe-2", Year: 2025, Month: 3}}

		kept := FilterPlanned(items, skips, Period{Year: 2025, Month: 4})
		if len(kept) != 2 {
			t.Fatalf("expected both items outside skipped month, got %+v", kept)
		}
	})
}
