package analytics

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sunlightware/data-cleansing-agent/pkg/models"
)

func classified(category, description, amount string) models.ClassifiedTransaction {
	return models.ClassifiedTransaction{
		Transaction: models.Transaction{
			Date:        "2024-01-15",
			Amount:      decimal.RequireFromString(amount),
			Description: description,
			SourceFile:  "test.csv",
		},
		Category: category,
	}
}

func excluded(description, amount string) models.ClassifiedTransaction {
	t := classified("ignore", description, amount)
	t.Excluded = true
	return t
}

func findSummary(t *testing.T, summaries []CategorySummary, category string) CategorySummary {
	t.Helper()
	for _, s := range summaries {
		if s.Category == category {
			return s
		}
	}
	t.Fatalf("no summary row for category %q", category)
	return CategorySummary{}
}

func TestSummarizeEndToEndScenario(t *testing.T) {
	ts := []models.ClassifiedTransaction{
		classified("Groceries", "HARRIS TEETER #1234", "45.50"),
		classified("Restaurants", "STARBUCKS COFFEE", "25.75"),
		classified("Uncategorized", "UNKNOWN SHOP", "10.00"),
	}

	summaries := Summarize(ts, nil)
	require.Len(t, summaries, 4)

	groceries := findSummary(t, summaries, "Groceries")
	assert.Equal(t, 1, groceries.Count)
	assert.Equal(t, "45.50", groceries.Total.StringFixed(2))
	assert.Equal(t, "45.50", groceries.Average.StringFixed(2))
	assert.InDelta(t, 56.0, groceries.Percent, 0.1)

	restaurants := findSummary(t, summaries, "Restaurants")
	assert.Equal(t, "25.75", restaurants.Total.StringFixed(2))
	assert.InDelta(t, 31.7, restaurants.Percent, 0.1)

	uncategorized := findSummary(t, summaries, "Uncategorized")
	assert.Equal(t, "10.00", uncategorized.Total.StringFixed(2))
	assert.InDelta(t, 12.3, uncategorized.Percent, 0.1)

	total := summaries[len(summaries)-1]
	assert.Equal(t, TotalLabel, total.Category)
	assert.Equal(t, 3, total.Count)
	assert.Equal(t, "81.25", total.Total.StringFixed(2))
	assert.Equal(t, 100.0, total.Percent)
}

func TestSummarizeSortsDescendingByTotal(t *testing.T) {
	ts := []models.ClassifiedTransaction{
		classified("Small", "A", "5.00"),
		classified("Big", "B", "100.00"),
		classified("Mid", "C", "50.00"),
	}

	summaries := Summarize(ts, nil)
	require.Len(t, summaries, 4)
	assert.Equal(t, "Big", summaries[0].Category)
	assert.Equal(t, "Mid", summaries[1].Category)
	assert.Equal(t, "Small", summaries[2].Category)
	assert.Equal(t, TotalLabel, summaries[3].Category)
}

func TestSummarizeConservation(t *testing.T) {
	ts := []models.ClassifiedTransaction{
		classified("Groceries", "A", "12.34"),
		classified("Groceries", "B", "56.78"),
		classified("Restaurants", "C", "-9.01"),
		classified("Uncategorized", "D", "3.50"),
	}

	summaries := Summarize(ts, nil)
	total := summaries[len(summaries)-1]

	sumTotals := decimal.Zero
	sumCounts := 0
	sumPercent := 0.0
	for _, s := range summaries[:len(summaries)-1] {
		sumTotals = sumTotals.Add(s.Total)
		sumCounts += s.Count
		sumPercent += s.Percent
	}

	assert.True(t, sumTotals.Equal(total.Total), "category totals must sum to the grand total")
	assert.Equal(t, total.Count, sumCounts)
	assert.InDelta(t, 100.0, sumPercent, 0.001)
}

func TestSummarizeDropsExcluded(t *testing.T) {
	ts := []models.ClassifiedTransaction{
		classified("Groceries", "HARRIS TEETER", "45.50"),
		excluded("PAYMENT THANK YOU", "500.00"),
	}

	summaries := Summarize(ts, nil)
	require.Len(t, summaries, 2)
	assert.Equal(t, "Groceries", summaries[0].Category)

	total := summaries[1]
	assert.Equal(t, 1, total.Count)
	assert.Equal(t, "45.50", total.Total.StringFixed(2))
}

func TestSummarizeZeroGrandTotal(t *testing.T) {
	ts := []models.ClassifiedTransaction{
		classified("Groceries", "REFUND", "10.00"),
		classified("Groceries", "PURCHASE", "-10.00"),
	}

	summaries := Summarize(ts, nil)
	require.Len(t, summaries, 2)
	assert.Equal(t, 0.0, summaries[0].Percent)
	assert.Equal(t, 0.0, summaries[1].Percent)
	assert.True(t, summaries[1].Total.IsZero())
}

func TestSummarizeEmptyInput(t *testing.T) {
	summaries := Summarize(nil, nil)
	require.Len(t, summaries, 1)

	total := summaries[0]
	assert.Equal(t, TotalLabel, total.Category)
	assert.Zero(t, total.Count)
	assert.True(t, total.Total.IsZero())
	assert.Equal(t, 0.0, total.Percent)
}

func TestSummarizeAverages(t *testing.T) {
	ts := []models.ClassifiedTransaction{
		classified("Groceries", "A", "10.00"),
		classified("Groceries", "B", "20.00"),
		classified("Groceries", "C", "33.00"),
	}

	summaries := Summarize(ts, nil)
	groceries := findSummary(t, summaries, "Groceries")
	assert.Equal(t, 3, groceries.Count)
	assert.Equal(t, "21.00", groceries.Average.StringFixed(2))
}

func TestSummarizeBudgetDeviation(t *testing.T) {
	ts := []models.ClassifiedTransaction{
		classified("Groceries", "A", "2071.74"),
		classified("Restaurants", "B", "100.00"),
	}
	budgets := models.Budgets{
		"Groceries":   decimal.RequireFromString("1000.00"),
		"Restaurants": decimal.RequireFromString("250.00"),
		"Unused":      decimal.RequireFromString("999.00"), // inert: no matching category
	}

	summaries := Summarize(ts, budgets)

	groceries := findSummary(t, summaries, "Groceries")
	assert.True(t, groceries.HasBudget)
	assert.Equal(t, "1000.00", groceries.Budget.StringFixed(2))
	assert.Equal(t, "-1071.74", groceries.Deviation.StringFixed(2))
	assert.True(t, groceries.OverBudget())

	restaurants := findSummary(t, summaries, "Restaurants")
	assert.Equal(t, "150.00", restaurants.Deviation.StringFixed(2))
	assert.False(t, restaurants.OverBudget())

	total := summaries[len(summaries)-1]
	assert.Equal(t, "1250.00", total.Budget.StringFixed(2))
	assert.Equal(t, "-921.74", total.Deviation.StringFixed(2))

	// The inert entry never becomes a row.
	for _, s := range summaries {
		assert.NotEqual(t, "Unused", s.Category)
	}
}

func TestSummarizeMissingBudgetIsZero(t *testing.T) {
	ts := []models.ClassifiedTransaction{
		classified("Groceries", "A", "50.00"),
	}
	budgets := models.Budgets{}

	summaries := Summarize(ts, budgets)
	groceries := findSummary(t, summaries, "Groceries")
	assert.True(t, groceries.HasBudget)
	assert.True(t, groceries.Budget.IsZero())
	assert.Equal(t, "-50.00", groceries.Deviation.StringFixed(2))
}

func TestSummarizeNoBudgetTable(t *testing.T) {
	ts := []models.ClassifiedTransaction{
		classified("Groceries", "A", "50.00"),
	}

	summaries := Summarize(ts, nil)
	for _, s := range summaries {
		assert.False(t, s.HasBudget)
	}
}
