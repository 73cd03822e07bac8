package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/sunlightware/data-cleansing-agent/pkg/analytics"
	"github.com/sunlightware/data-cleansing-agent/pkg/models"
)

// Summary renders the aggregated report as CSV bytes. Budget columns
// are included only when the run had a budget table.
func Summary(summaries []analytics.CategorySummary) []byte {
	withBudget := len(summaries) > 0 && summaries[0].HasBudget

	header := []string{"Category", "Count", "Total", "Average", "Percentage"}
	if withBudget {
		header = append(header, "Budget", "Deviation")
	}

	records := [][]string{header}
	for _, s := range summaries {
		record := []string{
			s.Category,
			strconv.Itoa(s.Count),
			s.Total.StringFixed(2),
			s.Average.StringFixed(2),
			fmt.Sprintf("%.1f", s.Percent),
		}
		if withBudget {
			record = append(record, s.Budget.StringFixed(2), s.Deviation.StringFixed(2))
		}
		records = append(records, record)
	}

	return write(records)
}

// Drilldown renders one category's transactions as CSV bytes in their
// original order.
func Drilldown(rows []models.Transaction) []byte {
	records := [][]string{{"Date", "Description", "Amount", "SourceFile"}}
	for _, t := range rows {
		records = append(records, []string{t.Date, t.Description, t.Amount.StringFixed(2), t.SourceFile})
	}
	return write(records)
}

func write(records [][]string) []byte {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	// WriteAll flushes; the only possible error is a write to the
	// buffer, which cannot fail.
	_ = w.WriteAll(records)
	return buf.Bytes()
}
