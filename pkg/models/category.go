package models

import "github.com/shopspring/decimal"

// Category is one column of the category definition file: a name and
// its merchant patterns in authored order. Patterns are stored
// upper-cased for matching.
type Category struct {
	Name     string
	Patterns []string
}

// Table holds the categories in the column order they were authored.
// That order defines match precedence and is never re-sorted.
type Table struct {
	Categories []Category
}

// Budgets maps a category name to its monthly limit.
type Budgets map[string]decimal.Decimal

// Total returns the sum of all budget limits.
func (b Budgets) Total() decimal.Decimal {
	total := decimal.Zero
	for _, v := range b {
		total = total.Add(v)
	}
	return total
}
