package analytics

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/sunlightware/data-cleansing-agent/pkg/models"
)

// TotalLabel names the synthetic row appended after the category rows.
const TotalLabel = "TOTAL"

// CategorySummary is one aggregated report row. Budget and Deviation
// are only meaningful when HasBudget is set, i.e. when a budget table
// was supplied for the run.
type CategorySummary struct {
	Category  string
	Count     int
	Total     decimal.Decimal
	Average   decimal.Decimal
	Percent   float64
	Budget    decimal.Decimal
	Deviation decimal.Decimal
	HasBudget bool
}

// OverBudget reports whether the category exceeded its limit. A
// negative deviation means over budget.
func (s CategorySummary) OverBudget() bool {
	return s.HasBudget && s.Deviation.IsNegative()
}

// Summarize groups the non-excluded transactions by category and
// computes count, total, average and share of the grand total, sorted
// descending by total with the TOTAL row appended last. A nil budget
// table skips the budget columns; budget entries for categories that
// never appear stay inert.
func Summarize(ts []models.ClassifiedTransaction, budgets models.Budgets) []CategorySummary {
	groups := make(map[string]*CategorySummary)
	order := make([]string, 0)

	for _, t := range ts {
		if t.Excluded {
			continue
		}
		g, ok := groups[t.Category]
		if !ok {
			g = &CategorySummary{Category: t.Category}
			groups[t.Category] = g
			order = append(order, t.Category)
		}
		g.Count++
		g.Total = g.Total.Add(t.Amount)
	}

	grandTotal := decimal.Zero
	grandCount := 0
	for _, name := range order {
		grandTotal = grandTotal.Add(groups[name].Total)
		grandCount += groups[name].Count
	}

	summaries := make([]CategorySummary, 0, len(order)+1)
	budgetTotal := decimal.Zero
	for _, name := range order {
		g := groups[name]
		g.Average = g.Total.Div(decimal.NewFromInt(int64(g.Count)))
		g.Percent = percentOf(g.Total, grandTotal)
		if budgets != nil {
			g.HasBudget = true
			g.Budget = budgets[name]
			g.Deviation = g.Budget.Sub(g.Total)
			budgetTotal = budgetTotal.Add(g.Budget)
		}
		summaries = append(summaries, *g)
	}

	sort.SliceStable(summaries, func(i, j int) bool {
		return summaries[i].Total.GreaterThan(summaries[j].Total)
	})

	total := CategorySummary{
		Category: TotalLabel,
		Count:    grandCount,
		Total:    grandTotal,
	}
	if grandCount > 0 {
		total.Average = grandTotal.Div(decimal.NewFromInt(int64(grandCount)))
	}
	if !grandTotal.IsZero() {
		total.Percent = 100.0
	}
	if budgets != nil {
		total.HasBudget = true
		total.Budget = budgetTotal
		total.Deviation = budgetTotal.Sub(grandTotal)
	}
	summaries = append(summaries, total)

	return summaries
}

func percentOf(part, whole decimal.Decimal) float64 {
	if whole.IsZero() {
		return 0
	}
	pct, _ := part.Div(whole).Mul(decimal.NewFromInt(100)).Float64()
	return pct
}
