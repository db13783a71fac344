// Package budget contains the pure budget-resolution and monthly-summary
// logic: amortizing planned expenses, applying per-period skip overlays,
// merging the three budget sources into one resolved line list, and
// reconciling that list against actual transaction activity.
//
// The package is storage-free. Callers load documents, hand them in as plain
// values, and persist nothing from here: a resolved budget is recomputed on
// every read.
package budget

import (
	"encoding/json"
	"time"
)

// Period identifies one calendar month.
type Period struct {
	Year  int `json:"year"`
	Month int `json:"month"`
}

// Bounds returns the inclusive UTC boundaries of the period: day 1
// 00:00:00.000 through the last day 23:59:59.999.
func (p Period) Bounds() (start, end time.Time) {
	start = time.Date(p.Year, time.Month(p.Month), 1, 0, 0, 0, 0, time.UTC)
	end = start.AddDate(0, 1, 0).Add(-time.Millisecond)
	return start, end
}

// Previous returns the preceding calendar month.
func (p Period) Previous() Period {
	if p.Month == 1 {
		return Period{Year: p.Year - 1, Month: 12}
	}
	return Period{Year: p.Year, Month: p.Month - 1}
}

// Kind identifies which source produced a resolved budget line.
type Kind string

const (
	KindNormal    Kind = "normal"
	KindRecurring Kind = "recurring"
	KindPlanned   Kind = "planned"
)

// Line is one resolved budget line. Only normal lines are directly
// editable as rows; recurring and planned lines must be changed at their
// source definition.
type Line struct {
	Category string
	Limit    float64
	Kind     Kind
	Name     string // source expense name, planned lines only
}

// MarshalJSON omits the type field for normal lines, so a plain saved limit
// serializes as {category, limit} while recurring/planned lines carry their
// provenance.
func (l Line) MarshalJSON() ([]byte, error) {
	type row struct {
		Category string  `json:"category"`
		Limit    float64 `json:"limit"`
		Type     Kind    `json:"type,omitempty"`
		Name     string  `json:"name,omitempty"`
	}
	r := row{Category: l.Category, Limit: l.Limit, Name: l.Name}
	if l.Kind != KindNormal {
		r.Type = l.Kind
	}
	return json.Marshal(r)
}

// SavedLimit is one entry of a persisted monthly budget's limits array.
type SavedLimit struct {
	Category string  `json:"category"`
	Limit    float64 `json:"limit"`
}

// RecurringLine is an active recurring budget line, applying to every month
// unless skipped for a specific period.
type RecurringLine struct {
	Category string
	Amount   float64
}

// RecurringSkip suppresses one recurring line for exactly one period.
type RecurringSkip struct {
	Category string
	Year     int
	Month    int
}

// PlannedItem is a future lump-sum obligation amortized monthly until its
// due date.
type PlannedItem struct {
	ID       string
	Name     string
	Category string
	Total    float64
	DueDate  time.Time
}

// PlannedSkip suppresses one planned expense's contribution for exactly one
// period.
type PlannedSkip struct {
	PlannedExpenseID string
	Year             int
	Month            int
}
