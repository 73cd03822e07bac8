package category

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/sunlightware/data-cleansing-agent/pkg/models"
)

// ErrNoCategories means the category definition file yields zero
// usable categories. Nothing can be classified, so the run stops.
var ErrNoCategories = errors.New("category file has no usable categories")

// Loader builds category tables from column-oriented CSV records or a
// YAML definition file.
type Loader struct {
	logger *log.Logger
}

func NewLoader(logger *log.Logger) *Loader {
	return &Loader{logger: logger}
}

// Load reads a column-oriented definition: the first record holds the
// category names, each cell below a name is a merchant pattern for
// that category. Columns are ragged by nature — an empty cell never
// terminates reading of sibling columns. Patterns are stored
// upper-cased; column order is preserved because it defines match
// precedence.
func (l *Loader) Load(records [][]string) (*models.Table, error) {
	if len(records) == 0 || len(records[0]) == 0 {
		return nil, fmt.Errorf("%w: no columns", ErrNoCategories)
	}

	headers := records[0]
	table := &models.Table{Categories: make([]models.Category, 0, len(headers))}
	patternCount := 0

	for col, header := range headers {
		name := strings.TrimSpace(header)
		if name == "" {
			continue
		}

		patterns := make([]string, 0)
		for _, record := range records[1:] {
			if col >= len(record) {
				continue
			}
			pattern := strings.ToUpper(strings.TrimSpace(record[col]))
			if pattern == "" {
				continue
			}
			patterns = append(patterns, pattern)
		}

		table.Categories = append(table.Categories, models.Category{Name: name, Patterns: patterns})
		patternCount += len(patterns)
		l.logger.Debug("loaded category", "name", name, "patterns", len(patterns))
	}

	if len(table.Categories) == 0 || patternCount == 0 {
		return nil, fmt.Errorf("%w: no non-empty cells", ErrNoCategories)
	}

	l.warnDuplicates(table)
	l.logger.Info("loaded category table", "categories", len(table.Categories), "patterns", patternCount)
	return table, nil
}

// warnDuplicates flags patterns that appear under more than one
// category. First-match-wins makes the later occurrence dead weight.
func (l *Loader) warnDuplicates(table *models.Table) {
	seen := make(map[string]string)
	for _, cat := range table.Categories {
		for _, pattern := range cat.Patterns {
			if first, ok := seen[pattern]; ok && first != cat.Name {
				l.logger.Warn("duplicate merchant pattern",
					"pattern", pattern, "first", first, "also", cat.Name)
				continue
			}
			seen[pattern] = cat.Name
		}
	}
}
