package budget

import "sort"

// Tier classifies how much of a category's limit has been consumed.
type Tier string

const (
	TierOK      Tier = "ok"      // under 70%
	TierWarning Tier = "warning" // 70% to under 100%
	TierOver    Tier = "over"    // at or past the limit
)

// Transaction is the slice of a stored transaction the aggregator needs.
// Expenses are negative, income positive; a zero amount counts as income
// here (the non-zero rule applies only at transaction creation).
type Transaction struct {
	Category string
	Amount   float64
}

// CategoryRow is one row of the budget-vs-actual comparison table.
// Limit and Variance are nil for categories with spend but no resolved
// limit.
type CategoryRow struct {
	Category       string   `json:"category"`
	Spent          float64  `json:"spent"`
	Limit          *float64 `json:"limit"`
	Variance       *float64 `json:"variance"`
	PercentOfLimit float64  `json:"percent_of_limit"`
	Tier           Tier     `json:"tier"`
}

// TopCategory is one entry of the previous-month top-spend list.
type TopCategory struct {
	Category string  `json:"category"`
	Spent    float64 `json:"spent"`
}

// Summary is the computed monthly view: totals, the per-category
// comparison, and the previous month's five most-spent categories.
type Summary struct {
	TotalIncome      float64       `json:"total_income"`
	TotalExpenses    float64       `json:"total_expenses"`
	Net              float64       `json:"net"`
	Categories       []CategoryRow `json:"categories"`
	PreviousMonthTop []TopCategory `json:"previous_month_top5"`
}

// Summarize reconciles a period's transactions against its resolved budget
// lines. "No budget" is not an error: with an empty line list every category
// simply has a nil limit. Rows are ordered ascending by signed spend
// (most-spent first); categories with a limit but no spend follow with
// spent 0, in resolved order.
func Summarize(txs, prevTxs []Transaction, lines []Line) Summary {
	spentByCategory, spendOrder := groupExpenses(txs)

	var totalIncome, totalExpenses float64
	for _, t := range txs {
		if t.Amount < 0 {
			totalExpenses += t.Amount
		} else {
			totalIncome += t.Amount
		}
	}

	// Last occurrence wins when the same category appears in more than one
	// source, matching the merged-array view the rows are compared against.
	limits := make(map[string]float64, len(lines))
	for _, l := range lines {
		limits[l.Category] = l.Limit
	}

	rows := make([]CategoryRow, 0, len(spendOrder)+len(lines))
	seen := make(map[string]bool, len(spendOrder))
	for _, category := range spendOrder {
		seen[category] = true
		rows = append(rows, buildRow(category, spentByCategory[category], limits))
	}
	for _, l := range lines {
		if !seen[l.Category] {
			seen[l.Category] = true
			rows = append(rows, buildRow(l.Category, 0, limits))
		}
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Spent < rows[j].Spent
	})

	return Summary{
		TotalIncome:      totalIncome,
		TotalExpenses:    totalExpenses,
		Net:              totalIncome + totalExpenses,
		Categories:       rows,
		PreviousMonthTop: topCategories(prevTxs, 5),
	}
}

func buildRow(category string, spent float64, limits map[string]float64) CategoryRow {
	row := CategoryRow{Category: category, Spent: spent, Tier: TierOK}

	limit, ok := limits[category]
	if !ok {
		return row
	}

	variance := limit + spent // spent <= 0, so negative variance means overspent
	row.Limit = &limit
	row.Variance = &variance

	if limit > 0 {
		pct := -spent / limit * 100
		if pct < 0 {
			pct = 0
		}
		if pct > 100 {
			pct = 100
		}
		row.PercentOfLimit = pct
		switch {
		case pct >= 100:
			row.Tier = TierOver
		case pct >= 70:
			row.Tier = TierWarning
		}
	}

	return row
}

// topCategories returns the n most-negative expense categories from the
// given transactions, independent of any resolved budget.
func topCategories(txs []Transaction, n int) []TopCategory {
	spentByCategory, order := groupExpenses(txs)

	top := make([]TopCategory, 0, len(order))
	for _, category := range order {
		top = append(top, TopCategory{Category: category, Spent: spentByCategory[category]})
	}
	sort.SliceStable(top, func(i, j int) bool {
		return top[i].Spent < top[j].Spent
	})

	if len(top) > n {
		top = top[:n]
	}
	return top
}

// groupExpenses sums expense amounts per category, keeping sign, and
// records categories in first-seen order so output is deterministic.
func groupExpenses(txs []Transaction) (map[string]float64, []string) {
	sums := make(map[string]float64)
	var order []string
	for _, t := range txs {
		if t.Amount >= 0 {
			continue
		}
		if _, ok := sums[t.Category]; !ok {
			order = append(order, t.Category)
		}
		sums[t.Category] += t.Amount
	}
	return sums, order
}
