package export

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sunlightware/data-cleansing-agent/pkg/analytics"
	"github.com/sunlightware/data-cleansing-agent/pkg/models"
)

func TestSummaryExport(t *testing.T) {
	summaries := []analytics.CategorySummary{
		{
			Category: "Groceries",
			Count:    2,
			Total:    decimal.RequireFromString("71.25"),
			Average:  decimal.RequireFromString("35.625"),
			Percent:  56.0,
		},
		{
			Category: analytics.TotalLabel,
			Count:    2,
			Total:    decimal.RequireFromString("71.25"),
			Average:  decimal.RequireFromString("35.625"),
			Percent:  100.0,
		},
	}

	lines := strings.Split(strings.TrimSpace(string(Summary(summaries))), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Category,Count,Total,Average,Percentage", lines[0])
	assert.Equal(t, "Groceries,2,71.25,35.63,56.0", lines[1])
	assert.Equal(t, "TOTAL,2,71.25,35.63,100.0", lines[2])
}

func TestSummaryExportWithBudget(t *testing.T) {
	summaries := []analytics.CategorySummary{
		{
			Category:  "Groceries",
			Count:     1,
			Total:     decimal.RequireFromString("2071.74"),
			Average:   decimal.RequireFromString("2071.74"),
			Percent:   100.0,
			Budget:    decimal.RequireFromString("1000.00"),
			Deviation: decimal.RequireFromString("-1071.74"),
			HasBudget: true,
		},
	}

	lines := strings.Split(strings.TrimSpace(string(Summary(summaries))), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "Category,Count,Total,Average,Percentage,Budget,Deviation", lines[0])
	assert.Equal(t, "Groceries,1,2071.74,2071.74,100.0,1000.00,-1071.74", lines[1])
}

func TestDrilldownExportQuotesCommas(t *testing.T) {
	rows := []models.Transaction{
		{
			Date:        "2024-01-15",
			Amount:      decimal.RequireFromString("-45.50"),
			Description: "HARRIS TEETER #1234, CHARLOTTE NC",
			SourceFile:  "checking.csv",
		},
	}

	out := string(Drilldown(rows))
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "Date,Description,Amount,SourceFile", lines[0])
	assert.Contains(t, lines[1], `"HARRIS TEETER #1234, CHARLOTTE NC"`)
	assert.Contains(t, lines[1], "-45.50")
}
