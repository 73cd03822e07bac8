package models

import "github.com/shopspring/decimal"

// RawRow is a single statement row as read from disk, keyed by the
// original column names. It only lives until normalization.
type RawRow struct {
	Values     map[string]string
	SourceFile string
}

// Transaction is the canonical shape every statement row is normalized
// into. Date is an ISO-8601 string, Amount keeps the sign as given by
// the statement.
type Transaction struct {
	Date        string
	Amount      decimal.Decimal
	Description string
	SourceFile  string
}

// ClassifiedTransaction is a Transaction with its assigned category.
// Excluded transactions matched an ignore pattern and are dropped
// before any aggregation.
type ClassifiedTransaction struct {
	Transaction
	Category string
	Excluded bool
}
