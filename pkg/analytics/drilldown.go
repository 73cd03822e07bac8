package analytics

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/sunlightware/data-cleansing-agent/pkg/models"
)

// Drilldown returns every non-excluded transaction belonging to the
// named category, in original file/row order, plus their total. The
// lookup is case-insensitive and an unknown category yields an empty
// result, not an error.
func Drilldown(category string, ts []models.ClassifiedTransaction) ([]models.Transaction, decimal.Decimal) {
	rows := make([]models.Transaction, 0)
	total := decimal.Zero

	for _, t := range ts {
		if t.Excluded {
			continue
		}
		if !strings.EqualFold(t.Category, category) {
			continue
		}
		rows = append(rows, t.Transaction)
		total = total.Add(t.Amount)
	}

	return rows, total
}
