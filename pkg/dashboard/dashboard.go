package dashboard

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/sunlightware/data-cleansing-agent/pkg/analytics"
	"github.com/sunlightware/data-cleansing-agent/pkg/models"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true)
	ruleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	totalStyle  = lipgloss.NewStyle().Bold(true)
	overStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))  // red
	underStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10")) // green
	headerStyle = lipgloss.NewStyle().Underline(true)
)

const width = 92

// Stats is the header line above the summary table.
type Stats struct {
	Transactions  int
	Categories    int
	Uncategorized int
	Excluded      int
}

// Dashboard renders categorization reports to a terminal.
type Dashboard struct {
	w io.Writer
}

func New(w io.Writer) *Dashboard {
	return &Dashboard{w: w}
}

// Summary prints the full report: title, run stats and the per
// category table with the TOTAL row last.
func (d *Dashboard) Summary(summaries []analytics.CategorySummary, stats Stats) {
	rule := ruleStyle.Render(strings.Repeat("=", width))

	fmt.Fprintln(d.w, rule)
	fmt.Fprintln(d.w, titleStyle.Render(center("TRANSACTION CATEGORIZATION REPORT")))
	fmt.Fprintln(d.w, rule)

	pct := 0.0
	if stats.Transactions > 0 {
		pct = float64(stats.Uncategorized) / float64(stats.Transactions) * 100
	}
	fmt.Fprintf(d.w, "Transactions: %d  |  Categories: %d  |  Uncategorized: %d (%.1f%%)  |  Excluded: %d\n\n",
		stats.Transactions, stats.Categories, stats.Uncategorized, pct, stats.Excluded)

	withBudget := len(summaries) > 0 && summaries[0].HasBudget

	header := fmt.Sprintf("%-22s | %5s | %12s | %10s | %9s", "Category", "Count", "Total", "Average", "% Total")
	if withBudget {
		header += fmt.Sprintf(" | %10s | %11s", "Budget", "Deviation")
	}
	fmt.Fprintln(d.w, headerStyle.Render(header))

	for _, s := range summaries {
		line := fmt.Sprintf("%-22s | %5d | %12s | %10s | %8.1f%%",
			s.Category, s.Count, money(s.Total), money(s.Average), s.Percent)
		if withBudget {
			line += fmt.Sprintf(" | %10s | %11s", money(s.Budget), money(s.Deviation))
		}

		switch {
		case s.Category == analytics.TotalLabel:
			fmt.Fprintln(d.w, ruleStyle.Render(strings.Repeat("-", width)))
			fmt.Fprintln(d.w, totalStyle.Render(line))
		case s.OverBudget():
			fmt.Fprintln(d.w, overStyle.Render(line))
		case s.HasBudget:
			fmt.Fprintln(d.w, underStyle.Render(line))
		default:
			fmt.Fprintln(d.w, line)
		}
	}
	fmt.Fprintln(d.w, rule)
}

// Drilldown prints one category's transactions with their total.
func (d *Dashboard) Drilldown(category string, rows []models.Transaction, total decimal.Decimal) {
	fmt.Fprintln(d.w, titleStyle.Render(fmt.Sprintf("Transactions for %q", category)))

	if len(rows) == 0 {
		fmt.Fprintln(d.w, "No transactions found")
		return
	}

	fmt.Fprintln(d.w, headerStyle.Render(fmt.Sprintf("%-12s | %-44s | %12s | %s", "Date", "Description", "Amount", "Source")))
	for _, t := range rows {
		fmt.Fprintf(d.w, "%-12s | %-44s | %12s | %s\n", t.Date, clip(t.Description, 44), money(t.Amount), t.SourceFile)
	}
	fmt.Fprintln(d.w, ruleStyle.Render(strings.Repeat("-", width)))
	fmt.Fprintln(d.w, totalStyle.Render(fmt.Sprintf("%-12s | %-44s | %12s |", "TOTAL", fmt.Sprintf("%d transactions", len(rows)), money(total))))
}

func money(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}

func clip(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-1] + "…"
}

func center(s string) string {
	pad := (width - len(s)) / 2
	if pad <= 0 {
		return s
	}
	return strings.Repeat(" ", pad) + s
}
