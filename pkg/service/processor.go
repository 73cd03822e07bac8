package service

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/sunlightware/data-cleansing-agent/pkg/analytics"
	"github.com/sunlightware/data-cleansing-agent/pkg/category"
	"github.com/sunlightware/data-cleansing-agent/pkg/config"
	"github.com/sunlightware/data-cleansing-agent/pkg/models"
	"github.com/sunlightware/data-cleansing-agent/pkg/normalize"
	"github.com/sunlightware/data-cleansing-agent/pkg/reader"
)

// Processor wires the pipeline together: discover statement files,
// normalize each one independently, classify against the category
// table and aggregate the result.
type Processor struct {
	cfg        *config.Config
	logger     *log.Logger
	reader     *reader.Reader
	normalizer *normalize.Normalizer
	loader     *category.Loader
}

// Result is everything a run produced, plus the per-file warnings the
// pipeline recovered from.
type Result struct {
	Transactions []models.ClassifiedTransaction
	Summaries    []analytics.CategorySummary
	Budgets      models.Budgets

	FilesProcessed int
	FilesSkipped   int
	RowsSkipped    int
	Excluded       int
	Warnings       []string
}

// Stats counts the non-excluded transactions and distinct categories
// (the default label is not a real category).
func (r *Result) Stats(defaultLabel string) (transactions, categories, uncategorized int) {
	seen := make(map[string]bool)
	for _, t := range r.Transactions {
		if t.Excluded {
			continue
		}
		transactions++
		if t.Category == defaultLabel {
			uncategorized++
			continue
		}
		seen[t.Category] = true
	}
	return transactions, len(seen), uncategorized
}

func NewProcessor(cfg *config.Config, logger *log.Logger) *Processor {
	return &Processor{
		cfg:        cfg,
		logger:     logger,
		reader:     reader.New(logger),
		normalizer: normalize.New(cfg.Columns, logger),
		loader:     category.NewLoader(logger),
	}
}

// Run executes the full pipeline. A broken category table is fatal; a
// statement file with an unusable schema or a row with an unparseable
// amount is skipped, counted and surfaced as a warning.
func (p *Processor) Run() (*Result, error) {
	table, err := p.loadCategories()
	if err != nil {
		return nil, err
	}

	var budgets models.Budgets
	if p.cfg.Budget != "" {
		budgets, err = p.reader.ReadBudgets(p.cfg.Budget)
		if err != nil {
			return nil, fmt.Errorf("failed to load budgets: %w", err)
		}
	}

	paths, err := p.reader.Discover(p.cfg.Input)
	if err != nil {
		return nil, err
	}

	result := &Result{Budgets: budgets}
	classifier := category.NewClassifier(table, p.cfg.DefaultCategory, p.cfg.IgnoreCategory)

	var transactions []models.Transaction
	for _, path := range paths {
		file, err := p.reader.ReadFile(path)
		if err != nil {
			p.warn(result, fmt.Sprintf("skipping %s: %v", filepath.Base(path), err))
			result.FilesSkipped++
			continue
		}

		txs, skipped, err := p.normalizer.Normalize(file.Headers, file.Rows, filepath.Base(path))
		result.RowsSkipped += skipped

		var schemaErr *normalize.SchemaError
		if errors.As(err, &schemaErr) {
			p.warn(result, schemaErr.Error())
			result.FilesSkipped++
			continue
		}
		if err != nil {
			return nil, err
		}

		result.FilesProcessed++
		transactions = append(transactions, txs...)
	}

	result.Transactions = classifier.ClassifyAll(transactions)
	for _, t := range result.Transactions {
		if t.Excluded {
			result.Excluded++
		}
	}

	result.Summaries = analytics.Summarize(result.Transactions, budgets)

	p.logger.Info("run complete",
		"files", result.FilesProcessed,
		"files_skipped", result.FilesSkipped,
		"rows_skipped", result.RowsSkipped,
		"transactions", len(result.Transactions),
		"excluded", result.Excluded)

	return result, nil
}

func (p *Processor) loadCategories() (*models.Table, error) {
	path := p.cfg.Categories

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read category file: %w", err)
		}
		return p.loader.LoadYAML(data)
	default:
		records, err := p.reader.ReadRecords(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read category file: %w", err)
		}
		return p.loader.Load(records)
	}
}

func (p *Processor) warn(result *Result, msg string) {
	p.logger.Warn(msg)
	result.Warnings = append(result.Warnings, msg)
}
