package category

import (
	"strings"

	"github.com/sunlightware/data-cleansing-agent/pkg/models"
)

// Classifier assigns categories by merchant-pattern matching. It is
// pure: classification depends only on the description and the table.
type Classifier struct {
	table        *models.Table
	defaultLabel string
	ignoreName   string
}

// NewClassifier wires a table with the run's default label (assigned
// when nothing matches) and the reserved ignore-category name.
func NewClassifier(table *models.Table, defaultLabel, ignoreName string) *Classifier {
	return &Classifier{
		table:        table,
		defaultLabel: defaultLabel,
		ignoreName:   ignoreName,
	}
}

// Classify scans categories in column order and each category's
// patterns top to bottom; the first pattern contained in the
// upper-cased description wins. A hit on the reserved ignore category
// flags the transaction excluded instead of assigning it.
func (c *Classifier) Classify(t models.Transaction) models.ClassifiedTransaction {
	desc := strings.ToUpper(t.Description)

	for _, cat := range c.table.Categories {
		for _, pattern := range cat.Patterns {
			if pattern == "" {
				continue
			}
			if strings.Contains(desc, pattern) {
				if strings.EqualFold(cat.Name, c.ignoreName) {
					return models.ClassifiedTransaction{Transaction: t, Category: cat.Name, Excluded: true}
				}
				return models.ClassifiedTransaction{Transaction: t, Category: cat.Name}
			}
		}
	}

	return models.ClassifiedTransaction{Transaction: t, Category: c.defaultLabel}
}

// ClassifyAll classifies a batch, preserving input order.
func (c *Classifier) ClassifyAll(ts []models.Transaction) []models.ClassifiedTransaction {
	out := make([]models.ClassifiedTransaction, 0, len(ts))
	for _, t := range ts {
		out = append(out, c.Classify(t))
	}
	return out
}
