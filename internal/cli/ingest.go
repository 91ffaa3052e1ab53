//-------------------------------------------------------------------------
//
// posmart - Point-of-Sale Analytics Mart
//
// Copyright (c) 2025 - 2026, Beanlake Labs
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/beanlake/posmart/internal/ingest"
	"github.com/beanlake/posmart/internal/logging"
	"github.com/beanlake/posmart/internal/mart"
	"github.com/beanlake/posmart/internal/warehouse"
)

var (
	ingestFile         string
	ingestAbortOnError bool
	ingestDropExisting bool
	ingestDryRun       bool
)

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Ingest a point-of-sale export into the warehouse",
	Long: `Ingest reads a raw CSV export, cleans and validates every line item,
builds the star schema dimensions and fact table, and loads the result
into PostgreSQL.

Malformed rows are rejected and logged; use --abort-on-error to fail the
run on the first bad row instead. --dry-run stops after validation without
touching the database.

Example:
  posmart ingest --file transactions.csv --connection "postgres://..."`,
	RunE: runIngest,
}

func init() {
	ingestCmd.Flags().StringVar(&ingestFile, "file", "",
		"source CSV export to ingest")
	ingestCmd.Flags().BoolVar(&ingestAbortOnError, "abort-on-error", false,
		"fail on the first malformed row instead of rejecting it")
	ingestCmd.Flags().BoolVar(&ingestDropExisting, "drop-existing", false,
		"drop the existing star schema before loading")
	ingestCmd.Flags().BoolVar(&ingestDryRun, "dry-run", false,
		"clean and validate without loading the database")
}

func runIngest(cmd *cobra.Command, args []string) error {
	// Override config with CLI flags
	if ingestFile != "" {
		cfg.Ingest.File = ingestFile
	}
	if ingestAbortOnError {
		cfg.Ingest.AbortOnError = true
	}
	if ingestDropExisting {
		cfg.Ingest.DropExisting = true
	}
	if ingestDryRun {
		cfg.Ingest.DryRun = true
	}

	// Validate configuration
	if err := cfg.ValidateIngest(); err != nil {
		return err
	}

	stores, products, facts, err := buildMart(cfg.Ingest.File, cfg.Ingest.AbortOnError)
	if err != nil {
		return err
	}
	orders := mart.ReconstructOrders(facts)

	logging.Info().
		Int("stores", len(stores)).
		Int("products", len(products)).
		Int("facts", facts.Len()).
		Int("orders", len(orders)).
		Msg("Mart built")

	if cfg.Ingest.DryRun {
		logging.Info().Msg("Dry run, skipping database load")
		return nil
	}

	// Connect to database
	ctx := context.Background()
	pool, err := warehouse.Connect(ctx, cfg.Connection)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer pool.Close()

	// Refuse to mix sources: a mart loaded from one export must be dropped
	// before another export goes in.
	existing, err := warehouse.GetMetadataValue(ctx, pool, "source_file")
	if err == nil && existing != "" && !cfg.Ingest.DropExisting {
		return fmt.Errorf(
			"database already holds a mart ingested from '%s'; "+
				"use --drop-existing to replace it", existing)
	}

	if cfg.Ingest.DropExisting {
		logging.Info().Msg("Dropping existing schema")
		if err := warehouse.DropSchema(ctx, pool); err != nil {
			return fmt.Errorf("failed to drop schema: %w", err)
		}
		if err := warehouse.DropMetadata(ctx, pool); err != nil {
			logging.Debug().Err(err).Msg("No metadata table to drop")
		}
	}

	if err := warehouse.CreateSchema(ctx, pool); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	loader := warehouse.NewLoader()
	if err := loader.Load(ctx, pool, stores, products, facts); err != nil {
		return fmt.Errorf("failed to load mart: %w", err)
	}

	info := warehouse.IngestInfo{
		SourceFile: cfg.Ingest.File,
		Stores:     len(stores),
		Products:   len(products),
		Facts:      facts.Len(),
	}
	if err := warehouse.SaveMetadata(ctx, pool, info); err != nil {
		return fmt.Errorf("failed to save metadata: %w", err)
	}

	logging.Info().
		Str("file", cfg.Ingest.File).
		Int("facts", facts.Len()).
		Msg("Ingest complete")

	return nil
}

// buildMart runs the in-memory pipeline: read, clean, dimensions, facts.
func buildMart(path string, abortOnError bool) ([]mart.Store, []mart.Product, *mart.FactSet, error) {
	records, err := ingest.ReadFile(path)
	if err != nil {
		return nil, nil, nil, err
	}

	items, rep, err := mart.Clean(records, mart.CleanOptions{AbortOnError: abortOnError})
	printValidationReport(rep)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("cleaning failed: %w", err)
	}

	stores, err := mart.BuildStoreDimension(items)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("store dimension failed: %w", err)
	}
	products, err := mart.BuildProductDimension(items)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("product dimension failed: %w", err)
	}
	facts, err := mart.BuildFacts(items, stores, products)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("fact build failed: %w", err)
	}

	return stores, products, facts, nil
}

// printValidationReport logs the cleaning outcome. It is emitted on every
// run, aborted ones included.
func printValidationReport(rep *mart.CleanReport) {
	logging.Info().
		Int("total", rep.TotalRows).
		Int("accepted", rep.Accepted).
		Int("rejected", rep.RejectedCount()).
		Msg("Validation report")

	// Stable field order for the missing-value counts.
	for _, field := range mart.FieldNames {
		if n := rep.MissingByField[field]; n > 0 {
			logging.Info().
				Str("field", field).
				Int("missing", n).
				Msg("Missing values")
		}
	}

	for _, row := range rep.Rejected {
		logging.Warn().
			Int("line", row.Line).
			Str("transaction_id", row.TransactionID).
			Int("errors", len(row.Errors)).
			Str("first_error", row.Errors[0].Error()).
			Msg("Rejected row")
	}
}
