package budget

// Skip overlays are additive and period-local: a skip for month N has no
// effect on N-1 or N+1, and never deletes the underlying definition.

// FilterRecurring returns the recurring lines not skipped for the period.
func FilterRecurring(lines []RecurringLine, skips []RecurringSkip, p Period) []RecurringLine {
	skipped := make(map[string]bool, len(skips))
	for _, s := range skips {
		if s.Year == p.Year && s.Month == p.Month {
			skipped[s.Category] = true
		}
	}

	kept := make([]RecurringLine, 0, len(lines))
	for _, l := range lines {
		if !skipped[l.Category] {
			kept = append(kept, l)
		}
	}
	return kept
}

// FilterPlanned returns the planned expenses not skipped for the period.
func FilterPlanned(items []PlannedItem, skips []PlannedSkip, p Period) []PlannedItem {
	skipped := make(map[string]bool, len(skips))
	for _, s := range skips {
		if s.Year == p.Year && s.Month == p.Month {
			skipped[s.PlannedExpenseID] = true
		}
	}

	kept := make([]PlannedItem, 0, len(items))
	for _, it := range items {
		if !skipped[it.ID] {
			kept = append(kept, it)
		}
	}
	return kept
}
