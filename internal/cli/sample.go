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
	"github.com/spf13/cobra"

	"github.com/beanlake/posmart/internal/datagen"
)

var (
	sampleRows int
	sampleOut  string
	sampleSeed uint64
)

var sampleCmd = &cobra.Command{
	Use:   "sample",
	Short: "Generate a synthetic point-of-sale export",
	Long: `Sample writes a synthetic CSV export in the same shape a real
point-of-sale system produces: order groups sharing one timestamp and
store, a fixed store and product catalog, and a morning-heavy demand
curve. Useful for demos and for exercising the ingest pipeline.

Example:
  posmart sample --rows 50000 --out transactions.csv --seed 42`,
	RunE: runSample,
}

func init() {
	sampleCmd.Flags().IntVar(&sampleRows, "rows", 0,
		"number of line items to generate (default: 10000)")
	sampleCmd.Flags().StringVar(&sampleOut, "out", "",
		"output file path (default: transactions.csv)")
	sampleCmd.Flags().Uint64Var(&sampleSeed, "seed", 0,
		"random seed for reproducible output (0 = random)")
}

func runSample(cmd *cobra.Command, args []string) error {
	// Override config with CLI flags
	if sampleRows > 0 {
		cfg.Sample.Rows = sampleRows
	}
	if sampleOut != "" {
		cfg.Sample.Out = sampleOut
	}
	if sampleSeed != 0 {
		cfg.Sample.Seed = sampleSeed
	}

	// Validate configuration
	if err := cfg.ValidateSample(); err != nil {
		return err
	}

	gen := datagen.DefaultSampleConfig(cfg.Sample.Rows)
	gen.Seed = cfg.Sample.Seed
	return datagen.WriteSampleFile(cfg.Sample.Out, gen)
}
