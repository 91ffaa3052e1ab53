//-------------------------------------------------------------------------
//
// posmart - Point-of-Sale Analytics Mart
//
// Copyright (c) 2025 - 2026, Beanlake Labs
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package config handles configuration management for posmart.
// Configuration is loaded from config files and CLI flags (no environment variables).
// CLI flags take precedence over config file values.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config holds all configuration for posmart.
type Config struct {
	// Connection is the PostgreSQL connection string.
	Connection string `mapstructure:"connection"`

	// LogLevel controls logging verbosity (debug, info, warn, error).
	LogLevel string `mapstructure:"log_level"`

	// Ingest holds configuration for the ingest subcommand.
	Ingest IngestConfig `mapstructure:"ingest"`

	// Report holds configuration for the report subcommand.
	Report ReportConfig `mapstructure:"report"`

	// Sample holds configuration for the sample subcommand.
	Sample SampleConfig `mapstructure:"sample"`
}

// IngestConfig holds configuration for the ingest pipeline.
type IngestConfig struct {
	// File is the source CSV export to ingest.
	File string `mapstructure:"file"`

	// AbortOnError stops the run on the first malformed row instead of
	// rejecting it and continuing.
	AbortOnError bool `mapstructure:"abort_on_error"`

	// DropExisting drops the star schema before loading.
	DropExisting bool `mapstructure:"drop_existing"`

	// DryRun cleans and validates without touching the database.
	DryRun bool `mapstructure:"dry_run"`
}

// ReportConfig holds configuration for metric reporting.
type ReportConfig struct {
	// Metric is the metric to compute; empty runs all of them.
	Metric string `mapstructure:"metric"`
}

// SampleConfig holds configuration for synthetic export generation.
type SampleConfig struct {
	// Rows is the number of line items to generate.
	Rows int `mapstructure:"rows"`

	// Out is the output file path.
	Out string `mapstructure:"out"`

	// Seed makes the output reproducible (0 = random).
	Seed uint64 `mapstructure:"seed"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		LogLevel: "info",
		Sample: SampleConfig{
			Rows: 10000,
			Out:  "transactions.csv",
		},
	}
}

// Load reads configuration from config files.
// Config file locations (in order of precedence):
// 1. Path specified by configFile parameter
// 2. ./posmart.yaml
// 3. ~/.config/posmart/config.yaml
func Load(configFile string) (*Config, error) {
	v := viper.New()

	// Set config name and type
	v.SetConfigName("posmart")
	v.SetConfigType("yaml")

	// Add config paths
	v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".config", "posmart"))
	}

	// Use specific config file if provided
	if configFile != "" {
		v.SetConfigFile(configFile)
	}

	// Read config file (ignore if not found)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	// Start with defaults
	cfg := DefaultConfig()

	// Unmarshal config file values
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	return cfg, nil
}

// Validate checks that required configuration is present.
func (c *Config) Validate() error {
	if c.Connection == "" {
		return fmt.Errorf("connection string is required")
	}
	return nil
}

// ValidateIngest checks configuration required for the ingest command.
func (c *Config) ValidateIngest() error {
	if c.Ingest.File == "" {
		return fmt.Errorf("source file is required for ingest")
	}
	// A dry run never touches the database.
	if c.Ingest.DryRun {
		return nil
	}
	return c.Validate()
}

// ValidateReport checks configuration required for the report command.
func (c *Config) ValidateReport() error {
	return c.Validate()
}

// ValidateSample checks configuration required for the sample command.
func (c *Config) ValidateSample() error {
	if c.Sample.Rows < 1 {
		return fmt.Errorf("rows must be at least 1")
	}
	if c.Sample.Out == "" {
		return fmt.Errorf("output file is required for sample")
	}
	return nil
}
