package category

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/sunlightware/data-cleansing-agent/pkg/models"
)

type yamlDefinition struct {
	Categories []struct {
		Name     string   `yaml:"name"`
		Patterns []string `yaml:"patterns"`
	} `yaml:"categories"`
}

// LoadYAML reads the alternative YAML category format:
//
//	categories:
//	  - name: Groceries
//	    patterns: [HARRIS TEETER, COSTCO]
//
// The list order carries the same match precedence as the CSV column
// order.
func (l *Loader) LoadYAML(data []byte) (*models.Table, error) {
	var def yamlDefinition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("failed to parse category yaml: %w", err)
	}
	if len(def.Categories) == 0 {
		return nil, fmt.Errorf("%w: no categories", ErrNoCategories)
	}

	table := &models.Table{Categories: make([]models.Category, 0, len(def.Categories))}
	patternCount := 0

	for _, c := range def.Categories {
		name := strings.TrimSpace(c.Name)
		if name == "" {
			continue
		}
		patterns := make([]string, 0, len(c.Patterns))
		for _, p := range c.Patterns {
			pattern := strings.ToUpper(strings.TrimSpace(p))
			if pattern == "" {
				continue
			}
			patterns = append(patterns, pattern)
		}
		table.Categories = append(table.Categories, models.Category{Name: name, Patterns: patterns})
		patternCount += len(patterns)
	}

	if len(table.Categories) == 0 || patternCount == 0 {
		return nil, fmt.Errorf("%w: no patterns", ErrNoCategories)
	}

	l.warnDuplicates(table)
	l.logger.Info("loaded category table", "categories", len(table.Categories), "patterns", patternCount)
	return table, nil
}
