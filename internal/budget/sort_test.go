package budget

import (
	"reflect"
	"testing"
)

func testLines() []Line {
	return []Line{
		{Category: "Rent", Limit: 1500, Kind: KindNormal},
		{Category: "Coffee", Limit: 60, Kind: KindNormal},
		{Category: "Groceries", Limit: 400, Kind: KindRecurring},
		{Category: "Books", Limit: 60, Kind: KindNormal},
	}
}

func categories(lines []Line) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = l.Category
	}
	return out
}

func TestSortLines(t *testing.T) {
	t.Run("recent_keeps_insertion_order", func(t *testing.T) {
		got := categories(SortLines(testLines(), SortRecent))
		want := []string{"Rent", "Coffee", "Groceries", "Books"}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("expected %v, got %v", want, got)
		}
	})

	t.Run("alpha", func(t *testing.T) {
		got := categories(SortLines(testLines(), SortAlpha))
		want := []string{"Books", "Coffee", "Groceries", "Rent"}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("expected %v, got %v", want, got)
		}
	})

	t.Run("largest_and_smallest_reverse_each_other", func(t *testing.T) {
		largest := categories(SortLines(testLines(), SortLargest))
		if largest[0] != "Rent" {
			t.Errorf("expected Rent first under largest, got %v", largest)
		}
		smallest := categories(SortLines(testLines(), SortSmallest))
		if smallest[len(smallest)-1] != "Rent" {
			t.Errorf("expected Rent last under smallest, got %v", smallest)
		}
	})

	t.Run("ties_keep_relative_order", func(t *testing.T) {
		got := categories(SortLines(testLines(), SortSmallest))
		// Coffee appears before Books in the input; both have limit 60.
		want := []string{"Coffee", "Books", "Groceries", "Rent"}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("expected %v, got %v", want, got)
		}
	})

	t.Run("resort_is_idempotent", func(t *testing.T) {
		once := SortLines(testLines(), SortAlpha)
		twice := SortLines(once, SortAlpha)
		if !reflect.DeepEqual(once, twice) {
			t.Errorf("expected idempotent sort, got %v then %v", once, twice)
		}
	})

	t.Run("input_is_not_mutated", func(t *testing.T) {
		in := testLines()
		SortLines(in, SortAlpha)
		if !reflect.DeepEqual(in, testLines()) {
			t.Errorf("input mutated: %v", in)
		}
	})
}

func TestSortModeValid(t *testing.T) {
	for _, m := range []SortMode{SortRecent, SortAlpha, SortLargest, SortSmallest} {
		if !m.Valid() {
			t.Errorf("expected %q to be valid", m)
		}
	}
	if SortMode("biggest").Valid() {
		t.Error("expected unknown mode to be invalid")
	}
}
