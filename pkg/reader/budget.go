package reader

import (
	"fmt"
	"strings"

	"github.com/sunlightware/data-cleansing-agent/pkg/models"
	"github.com/sunlightware/data-cleansing-agent/pkg/normalize"
)

// ReadBudgets loads the optional two-column budget file
// (Category,Budget). Rows with an invalid or negative limit are
// skipped with a warning; an absent category in the category table is
// not checked here, such entries are simply inert.
func (r *Reader) ReadBudgets(path string) (models.Budgets, error) {
	records, err := r.ReadRecords(path)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("budget file %s is empty", path)
	}

	catCol, budgetCol := -1, -1
	for i, header := range records[0] {
		switch strings.TrimSpace(header) {
		case "Category":
			catCol = i
		case "Budget":
			budgetCol = i
		}
	}
	if catCol < 0 || budgetCol < 0 {
		return nil, fmt.Errorf("budget file %s missing Category/Budget columns", path)
	}

	budgets := make(models.Budgets)
	for i, record := range records[1:] {
		if catCol >= len(record) || budgetCol >= len(record) {
			continue
		}
		name := strings.TrimSpace(record[catCol])
		if name == "" {
			continue
		}
		limit, err := normalize.ParseAmount(record[budgetCol])
		if err != nil {
			r.logger.Warn("skipping invalid budget value", "row", i+2, "category", name, "error", err)
			continue
		}
		if limit.IsNegative() {
			r.logger.Warn("skipping negative budget", "row", i+2, "category", name)
			continue
		}
		budgets[name] = limit
	}

	r.logger.Info("loaded budgets", "file", path, "categories", len(budgets), "total", budgets.Total().StringFixed(2))
	return budgets, nil
}
