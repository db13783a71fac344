package budget

import "sort"

// SortMode selects the display ordering of resolved budget lines.
type SortMode string

const (
	SortRecent   SortMode = "recent" // insertion order
	SortAlpha    SortMode = "alpha"
	SortLargest  SortMode = "largest"
	SortSmallest SortMode = "smallest"
)

// Valid reports whether the mode is one of the supported orderings.
func (m SortMode) Valid() bool {
	switch m {
	case SortRecent, SortAlpha, SortLargest, SortSmallest:
		return true
	}
	return false
}

// SortLines returns a copy of lines ordered by the given mode. The input is
// never mutated, so repeated re-sorts of a fixed line set are idempotent.
// Ties keep their relative input order.
func SortLines(lines []Line, mode SortMode) []Line {
	sorted := make([]Line, len(lines))
	copy(sorted, lines)

	switch mode {
	case SortAlpha:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].Category < sorted[j].Category
		})
	case SortLargest:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].Limit > sorted[j].Limit
		})
	case SortSmallest:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].Limit < sorted[j].Limit
		})
	}

	return sorted
}
