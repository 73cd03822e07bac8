package config

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Columns configures how raw statement headers are resolved onto the
// canonical transaction fields. The exact-name lists are tried in
// order before any substring fallback kicks in.
type Columns struct {
	Date         []string `mapstructure:"date"`
	DateContains string   `mapstructure:"date_contains"`
	Amount       string   `mapstructure:"amount"`
	Credit       string   `mapstructure:"credit"`
	Debit        string   `mapstructure:"debit"`
	Description  []string `mapstructure:"description"`
}

// Config holds everything a run needs. The categorization defaults
// (default label, ignore marker, column names) are explicit here so the
// core packages stay free of ambient state.
type Config struct {
	Input           string  `mapstructure:"input"`
	Categories      string  `mapstructure:"categories"`
	Budget          string  `mapstructure:"budget"`
	Export          string  `mapstructure:"export"`
	Debug           bool    `mapstructure:"debug"`
	DefaultCategory string  `mapstructure:"default_category"`
	IgnoreCategory  string  `mapstructure:"ignore_category"`
	Columns         Columns `mapstructure:"columns"`
}

// Build assembles the configuration from defaults, an optional config
// file and the command flags, in increasing order of precedence.
func Build(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	v.SetDefault("default_category", "Uncategorized")
	v.SetDefault("ignore_category", "ignore")
	v.SetDefault("columns.date", []string{"Date", "Post Date", "Transaction Date"})
	v.SetDefault("columns.date_contains", "date")
	v.SetDefault("columns.amount", "Amount")
	v.SetDefault("columns.credit", "Credit")
	v.SetDefault("columns.debit", "Debit")
	v.SetDefault("columns.description", []string{"Description", "Desc"})

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		// A missing default config file is fine, an explicit one is not.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && cfgFile != "" {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return nil, fmt.Errorf("failed to bind flags: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if strings.TrimSpace(cfg.DefaultCategory) == "" {
		return nil, fmt.Errorf("default_category must not be empty")
	}
	if strings.TrimSpace(cfg.IgnoreCategory) == "" {
		return nil, fmt.Errorf("ignore_category must not be empty")
	}
	return &cfg, nil
}
