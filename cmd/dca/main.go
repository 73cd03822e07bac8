package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/k0kubun/pp/v3"
	"github.com/spf13/cobra"
	"github.com/subosito/gotenv"

	"github.com/sunlightware/data-cleansing-agent/pkg/analytics"
	"github.com/sunlightware/data-cleansing-agent/pkg/config"
	"github.com/sunlightware/data-cleansing-agent/pkg/dashboard"
	"github.com/sunlightware/data-cleansing-agent/pkg/export"
	"github.com/sunlightware/data-cleansing-agent/pkg/service"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "dca",
	Short: "Categorize bank statement exports by merchant matching",
	RunE: func(cmd *cobra.Command, _ []string) error {
		// Show help when no subcommand is provided
		return cmd.Help()
	},
}

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Categorize statements and print the summary report",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, logger, err := setup(cmd)
		if err != nil {
			return err
		}

		result, err := service.NewProcessor(cfg, logger).Run()
		if err != nil {
			return err
		}

		transactions, categories, uncategorized := result.Stats(cfg.DefaultCategory)
		dashboard.New(os.Stdout).Summary(result.Summaries, dashboard.Stats{
			Transactions:  transactions,
			Categories:    categories,
			Uncategorized: uncategorized,
			Excluded:      result.Excluded,
		})

		if cfg.Export != "" {
			if err := os.WriteFile(cfg.Export, export.Summary(result.Summaries), 0644); err != nil {
				return fmt.Errorf("failed to write export file: %w", err)
			}
			fmt.Printf("\nExported summary to: %s\n", cfg.Export)
		}

		if len(result.Warnings) > 0 {
			logger.Warn("run finished with warnings", "count", len(result.Warnings))
		}
		return nil
	},
}

var drilldownCmd = &cobra.Command{
	Use:   "drilldown <category>",
	Short: "List every transaction assigned to one category",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := setup(cmd)
		if err != nil {
			return err
		}

		result, err := service.NewProcessor(cfg, logger).Run()
		if err != nil {
			return err
		}

		rows, total := analytics.Drilldown(args[0], result.Transactions)
		dashboard.New(os.Stdout).Drilldown(args[0], rows, total)

		if cfg.Export != "" {
			if err := os.WriteFile(cfg.Export, export.Drilldown(rows), 0644); err != nil {
				return fmt.Errorf("failed to write export file: %w", err)
			}
			fmt.Printf("\nExported transactions to: %s\n", cfg.Export)
		}
		return nil
	},
}

func setup(cmd *cobra.Command) (*config.Config, *log.Logger, error) {
	cfg, err := config.Build(cfgFile, cmd.Flags())
	if err != nil {
		return nil, nil, err
	}

	opts := log.Options{
		ReportTimestamp: true,
		Prefix:          "dca",
	}
	if cfg.Debug {
		opts.Level = log.DebugLevel
		opts.ReportCaller = true
	}
	logger := log.NewWithOptions(os.Stderr, opts)

	if cfg.Debug {
		pp.Fprintln(os.Stderr, cfg)
	}

	if cfg.Input == "" {
		return nil, nil, fmt.Errorf("input directory is required (--input)")
	}
	if cfg.Categories == "" {
		return nil, nil, fmt.Errorf("category file is required (--categories)")
	}
	return cfg, logger, nil
}

func init() {
	// Values in .env are visible to viper before config is built.
	_ = gotenv.Load()

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "", "", "Config file (default is config.yaml)")
	rootCmd.PersistentFlags().StringP("input", "i", "", "Directory containing statement files")
	rootCmd.PersistentFlags().StringP("categories", "c", "", "Path to category definition file (csv or yaml)")
	rootCmd.PersistentFlags().StringP("budget", "b", "", "Path to budget file (optional)")
	rootCmd.PersistentFlags().StringP("export", "e", "", "Export results to CSV file (optional)")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging")

	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(drilldownCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
