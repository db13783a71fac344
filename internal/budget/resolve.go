package budget

// Resolve merges the three budget sources into the single ordered line list
// visible for one period: saved ad-hoc limits first, then active recurring
// lines minus this period's skips, then planned expenses minus this period's
// skips, each converted to a monthly contribution with the target period as
// "today".
//
// The merge is read-only; an absent or empty saved budget resolves to an
// empty prefix rather than an error.
func Resolve(
	p Period,
	saved []SavedLimit,
	recurring []RecurringLine,
	recurringSkips []RecurringSkip,
	planned []PlannedItem,
	plannedSkips []PlannedSkip,
) []Line {
	lines := make([]Line, 0, len(saved)+len(recurring)+len(planned))

	for _, s := range saved {
		lines = append(lines, Line{Category: s.Category, Limit: s.Limit, Kind: KindNormal})
	}

	for _, r := range FilterRecurring(recurring, recurringSkips, p) {
		lines = append(lines, Line{Category: r.Category, Limit: r.Amount, Kind: KindRecurring})
	}

	for _, it := range FilterPlanned(planned, plannedSkips, p) {
		category := it.Category
		if category == "" {
			category = it.Name
		}
		lines = append(lines, Line{
			Category: category,
			Limit:    MonthlyContribution(it.Total, it.DueDate, p),
			Kind:     KindPlanned,
			Name:     it.Name,
		})
	}

	return lines
}
