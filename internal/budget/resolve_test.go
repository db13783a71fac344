package budget

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestResolve(t *testing.T) {
	p := Period{Year: 2025, Month: 1}

	t.Run("orders_saved_then_recurring_then_planned", func(t *testing.T) {
		saved := []SavedLimit{{Category: "Groceries", Limit: 400}}
		recurring := []RecurringLine{{Category: "Rent", Amount: 1500}}
		planned := []PlannedItem{{
			ID: "pe-1", Name: "Insurance", Total: 1200,
			DueDate: time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC),
		}}

		lines := Resolve(p, saved, recurring, nil, planned, nil)
		if len(lines) != 3 {
			t.Fatalf("expected 3 lines, got %d", len(lines))
		}
		if lines[0].Category != "Groceries" || lines[0].Kind != KindNormal {
			t.Errorf("expected saved line first, got %+v", lines[0])
		}
		if lines[1].Category != "Rent" || lines[1].Kind != KindRecurring || lines[1].Limit != 1500 {
			t.Errorf("expected recurring line second, got %+v", lines[1])
		}
		if lines[2].Kind != KindPlanned || lines[2].Limit != 100 {
			t.Errorf("expected amortized planned line third, got %+v", lines[2])
		}
	})

	t.Run("planned_category_falls_back_to_name", func(t *testing.T) {
		planned := []PlannedItem{{
			ID: "pe-1", Name: "New Laptop", Total: 2000,
			DueDate: time.Date(2025, time.May, 1, 0, 0, 0, 0, time.UTC),
		}}

		lines := Resolve(p, nil, nil, nil, planned, nil)
		if len(lines) != 1 || lines[0].Category != "New Laptop" {
			t.Fatalf("expected category to fall back to name, got %+v", lines)
		}
	})

	t.Run("skips_apply_per_source", func(t *testing.T) {
		recurring := []RecurringLine{{Category: "Rent", Amount: 1500}}
		planned := []PlannedItem{{
			ID: "pe-1", Name: "Insurance", Total: 1200,
			DueDate: time.Date(2025, time.December, 1, 0, 0, 0, 0, time.UTC),
		}}
		rSkips := []RecurringSkip{{Category: "Rent", Year: 2025, Month: 1}}
		pSkips := []PlannedSkip{{PlannedExpenseID: "pe-1", Year: 2025, Month: 1}}

		lines := Resolve(p, nil, recurring, rSkips, planned, pSkips)
		if len(lines) != 0 {
			t.Fatalf("expected everything skipped, got %+v", lines)
		}
	})

	t.Run("empty_sources_resolve_to_empty_list", func(t *testing.T) {
		lines := Resolve(p, nil, nil, nil, nil, nil)
		if len(lines) != 0 {
			t.Fatalf("expected empty resolution, got %+v", lines)
		}
	})

	t.Run("duplicate_categories_across_sources_all_survive", func(t *testing.T) {
		saved := []SavedLimit{{Category: "Food", Limit: 300}}
		recurring := []RecurringLine{{Category: "Food", Amount: 100}}

		lines := Resolve(p, saved, recurring, nil, nil, nil)
		if len(lines) != 2 {
			t.Fatalf("expected both Food lines, got %+v", lines)
		}
	})
}

func TestLineMarshalJSON(t *testing.T) {
	t.Run("normal_line_omits_type", func(t *testing.T) {
		b, err := json.Marshal(Line{Category: "Groceries", Limit: 400, Kind: KindNormal})
		if err != nil {
			t.Fatalf("marshal failed: %v", err)
		}
		if strings.Contains(string(b), "\"type\"") {
			t.Errorf("normal line should omit type, got %s", b)
		}
	})

	t.Run("planned_line_carries_type_and_name", func(t *testing.T) {
		b, err := json.Marshal(Line{Category: "Insurance", Limit: 100, Kind: KindPlanned, Name: "Insurance"})
		if err != nil {
			t.Fatalf("marshal failed: %v", err)
		}
		s := string(b)
		if !strings.Contains(s, "\"type\":\"planned\"") || !strings.Contains(s, "\"name\":\"Insurance\"") {
			t.Errorf("expected type and name on planned line, got %s", s)
		}
	})
}
