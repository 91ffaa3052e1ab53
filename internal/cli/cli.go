//-------------------------------------------------------------------------
//
// posmart - Point-of-Sale Analytics Mart
//
// Copyright (c) 2025 - 2026, Beanlake Labs
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package cli implements the command-line interface for posmart.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/beanlake/posmart/internal/config"
	"github.com/beanlake/posmart/internal/logging"
	"github.com/beanlake/posmart/internal/report"
	"github.com/beanlake/posmart/pkg/version"
)

var (
	// Global flags
	cfgFile    string
	connection string
	logLevel   string

	// Global config
	cfg *config.Config

	rootCmd = &cobra.Command{
		Use:   "posmart",
		Short: "Point-of-sale analytics mart builder and reporter",
		Long: `posmart turns raw point-of-sale transaction exports into a validated
star-schema mart in PostgreSQL and computes reporting metrics over it.

The pipeline reads a CSV export, cleans and type-checks every line item,
derives the store and product dimensions, builds the line-level fact table,
and reconstructs orders from the (date, time, store) composite key. Reports
run either against a loaded warehouse or directly off a source file.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default: ./posmart.yaml)")
	rootCmd.PersistentFlags().StringVar(&connection, "connection", "",
		"PostgreSQL connection string")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "",
		"log level (debug, info, warn, error)")

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(ingestCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(sampleCmd)
	rootCmd.AddCommand(metricsCmd)
}

func initConfig() error {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return err
	}

	// Override with CLI flags
	if connection != "" {
		cfg.Connection = connection
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}

	// Reinitialize logger with config
	logging.Init(logging.Config{
		Level:  cfg.LogLevel,
		Pretty: true,
	})

	return nil
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Println(version.Info())
	},
}

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "List available reporting metrics",
	Long: `List all available reporting metrics. Each metric is an independent
aggregate computation over the fact set and the reconstructed orders.`,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Println("Available metrics:")
		cmd.Println()
		for _, m := range report.All() {
			cmd.Printf("  %-24s %s\n", m.Name(), m.Description())
		}
		cmd.Println()
		cmd.Println("Use 'posmart report --metric <name>' to compute one of them.")
	},
}
