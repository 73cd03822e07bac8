package normalize

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/shopspring/decimal"

	"github.com/sunlightware/data-cleansing-agent/pkg/config"
	"github.com/sunlightware/data-cleansing-agent/pkg/models"
)

// SchemaError means a statement file has no usable date, amount or
// description column. The file is skipped, the run continues.
type SchemaError struct {
	File    string
	Missing string
	Headers []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("no %s column found in %s (headers: %s)",
		e.Missing, e.File, strings.Join(e.Headers, ", "))
}

// Columns is the resolved header mapping for one statement file.
// Either Amount or the Credit/Debit pair is set, never both.
type Columns struct {
	Date        string
	Amount      string
	Credit      string
	Debit       string
	Description string
}

// Merged reports whether the amount is computed from separate
// credit and debit columns.
func (c *Columns) Merged() bool {
	return c.Amount == ""
}

// Normalizer maps heterogeneous statement rows onto the canonical
// transaction shape. Resolution runs per file since every file in a
// batch may use a different export format.
type Normalizer struct {
	columns config.Columns
	logger  *log.Logger
}

func New(columns config.Columns, logger *log.Logger) *Normalizer {
	return &Normalizer{
		columns: columns,
		logger:  logger,
	}
}

// Resolve picks the date, amount and description columns for one file.
// Exact names win over the substring fallback, and ties on the
// fallback go to the first header in declaration order.
func (n *Normalizer) Resolve(headers []string, sourceFile string) (*Columns, error) {
	cols := &Columns{}

	cols.Date = n.resolveDate(headers)
	if cols.Date == "" {
		return nil, &SchemaError{File: sourceFile, Missing: "date", Headers: headers}
	}

	if header := findExact(headers, n.columns.Amount); header != "" {
		cols.Amount = header
	} else {
		credit := findExact(headers, n.columns.Credit)
		debit := findExact(headers, n.columns.Debit)
		if credit == "" || debit == "" {
			return nil, &SchemaError{File: sourceFile, Missing: "amount", Headers: headers}
		}
		cols.Credit = credit
		cols.Debit = debit
	}

	for _, name := range n.columns.Description {
		if header := findExact(headers, name); header != "" {
			cols.Description = header
			break
		}
	}
	if cols.Description == "" {
		return nil, &SchemaError{File: sourceFile, Missing: "description", Headers: headers}
	}

	n.logger.Info("resolved columns",
		"file", sourceFile,
		"date", cols.Date,
		"amount", amountLabel(cols),
		"description", cols.Description)

	return cols, nil
}

func (n *Normalizer) resolveDate(headers []string) string {
	for _, name := range n.columns.Date {
		if header := findExact(headers, name); header != "" {
			return header
		}
	}
	contains := strings.ToLower(n.columns.DateContains)
	if contains == "" {
		return ""
	}
	for _, header := range headers {
		if strings.Contains(strings.ToLower(header), contains) {
			return header
		}
	}
	return ""
}

// Normalize converts raw rows from one file into transactions. Rows
// whose amount fails numeric coercion are skipped and counted, the
// rest of the file is processed normally.
func (n *Normalizer) Normalize(headers []string, rows []models.RawRow, sourceFile string) ([]models.Transaction, int, error) {
	cols, err := n.Resolve(headers, sourceFile)
	if err != nil {
		return nil, 0, err
	}

	transactions := make([]models.Transaction, 0, len(rows))
	skipped := 0

	for i, row := range rows {
		amount, err := rowAmount(cols, row.Values)
		if err != nil {
			n.logger.Warn("skipping row with unparseable amount",
				"file", sourceFile, "row", i+1, "error", err)
			skipped++
			continue
		}

		transactions = append(transactions, models.Transaction{
			Date:        isoDate(row.Values[cols.Date]),
			Amount:      amount,
			Description: strings.TrimSpace(row.Values[cols.Description]),
			SourceFile:  sourceFile,
		})
	}

	n.logger.Debug("normalized file",
		"file", sourceFile, "transactions", len(transactions), "skipped", skipped)

	return transactions, skipped, nil
}

func rowAmount(cols *Columns, values map[string]string) (decimal.Decimal, error) {
	if !cols.Merged() {
		return ParseAmount(values[cols.Amount])
	}

	// Separate credit/debit columns: an empty cell counts as zero so
	// statements that only fill one side per row still merge cleanly.
	credit, err := parseAmountOrZero(values[cols.Credit])
	if err != nil {
		return decimal.Zero, fmt.Errorf("credit: %w", err)
	}
	debit, err := parseAmountOrZero(values[cols.Debit])
	if err != nil {
		return decimal.Zero, fmt.Errorf("debit: %w", err)
	}
	return credit.Sub(debit), nil
}

// amountCleaner strips currency symbols and thousands separators
// before numeric parsing.
var amountCleaner = strings.NewReplacer("$", "", "€", "", "£", "", ",", "", " ", "")

// ParseAmount coerces a statement amount string into a decimal,
// preserving sign. Currency symbols and thousands separators are
// stripped first.
func ParseAmount(s string) (decimal.Decimal, error) {
	cleaned := amountCleaner.Replace(strings.TrimSpace(s))
	if cleaned == "" {
		return decimal.Zero, fmt.Errorf("empty amount %q", s)
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return d, nil
}

func parseAmountOrZero(s string) (decimal.Decimal, error) {
	if strings.TrimSpace(s) == "" {
		return decimal.Zero, nil
	}
	return ParseAmount(s)
}

// dateLayouts are tried in order when coercing statement dates to
// ISO-8601. Unparseable dates pass through trimmed; only amount
// failures reject a row.
var dateLayouts = []string{
	"2006-01-02",
	"01/02/2006",
	"1/2/2006",
	"2006/01/02",
	"01-02-2006",
	"Jan 2, 2006",
}

func isoDate(s string) string {
	trimmed := strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, trimmed); err == nil {
			return t.Format("2006-01-02")
		}
	}
	return trimmed
}

func findExact(headers []string, name string) string {
	if name == "" {
		return ""
	}
	for _, header := range headers {
		if strings.TrimSpace(header) == name {
			return header
		}
	}
	return ""
}

func amountLabel(cols *Columns) string {
	if cols.Merged() {
		return cols.Credit + "-" + cols.Debit
	}
	return cols.Amount
}
