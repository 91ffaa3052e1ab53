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

	"github.com/beanlake/posmart/internal/mart"
	"github.com/beanlake/posmart/internal/report"
	"github.com/beanlake/posmart/internal/warehouse"
)

var (
	reportMetric string
	reportFile   string
	reportStore  int
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Compute reporting metrics over the mart",
	Long: `Report computes one or all metrics over the mart. By default it reads
the fact table back from the warehouse; with --file it runs the whole
pipeline off a source export instead, without a database.

Example:
  posmart report --metric stores --connection "postgres://..."
  posmart report --file transactions.csv`,
	RunE: runReport,
}

func init() {
	reportCmd.Flags().StringVar(&reportMetric, "metric", "",
		"metric to compute (default: all; see 'posmart metrics')")
	reportCmd.Flags().StringVar(&reportFile, "file", "",
		"compute directly from a source export instead of the warehouse")
	reportCmd.Flags().IntVar(&reportStore, "store", 0,
		"restrict the report to one store id")
}

func runReport(cmd *cobra.Command, args []string) error {
	if reportMetric != "" {
		cfg.Report.Metric = reportMetric
	}

	var in report.Input
	if reportFile != "" {
		stores, products, facts, err := buildMart(reportFile, false)
		if err != nil {
			return err
		}
		in = report.Input{
			Facts:    facts,
			Orders:   mart.ReconstructOrders(facts),
			Stores:   stores,
			Products: products,
		}
	} else {
		if err := cfg.ValidateReport(); err != nil {
			return err
		}
		var err error
		in, err = loadWarehouseInput()
		if err != nil {
			return err
		}
	}

	if reportStore > 0 {
		filtered, err := filterStore(in, reportStore)
		if err != nil {
			return err
		}
		in = filtered
	}

	var metrics []report.Metric
	if cfg.Report.Metric != "" {
		m, err := report.Get(cfg.Report.Metric)
		if err != nil {
			return err
		}
		metrics = []report.Metric{m}
	} else {
		metrics = report.All()
	}

	for i, m := range metrics {
		table, err := m.Compute(in)
		if err != nil {
			return fmt.Errorf("metric %s failed: %w", m.Name(), err)
		}
		if i > 0 {
			cmd.Println()
		}
		if err := table.Render(cmd.OutOrStdout()); err != nil {
			return err
		}
	}

	return nil
}

// filterStore narrows the input to a single store. Orders are rebuilt from
// the filtered facts so order-level metrics stay consistent.
func filterStore(in report.Input, storeID int) (report.Input, error) {
	var store *mart.Store
	for i := range in.Stores {
		if in.Stores[i].ID == storeID {
			store = &in.Stores[i]
			break
		}
	}
	if store == nil {
		return report.Input{}, fmt.Errorf("unknown store id %d", storeID)
	}

	var filtered []mart.Fact
	for i := 0; i < in.Facts.Len(); i++ {
		if f := in.Facts.At(i); f.StoreID == storeID {
			filtered = append(filtered, f)
		}
	}
	facts, err := mart.NewFactSet(filtered)
	if err != nil {
		return report.Input{}, err
	}

	return report.Input{
		Facts:    facts,
		Orders:   mart.ReconstructOrders(facts),
		Stores:   []mart.Store{*store},
		Products: in.Products,
	}, nil
}

func loadWarehouseInput() (report.Input, error) {
	ctx := context.Background()
	pool, err := warehouse.Connect(ctx, cfg.Connection)
	if err != nil {
		return report.Input{}, fmt.Errorf("failed to connect to database: %w", err)
	}
	defer pool.Close()

	exists, err := warehouse.SchemaExists(ctx, pool)
	if err != nil {
		return report.Input{}, err
	}
	if !exists {
		return report.Input{}, fmt.Errorf("no mart found; run 'posmart ingest' first")
	}

	stores, err := warehouse.LoadStores(ctx, pool)
	if err != nil {
		return report.Input{}, fmt.Errorf("failed to load stores: %w", err)
	}
	products, err := warehouse.LoadProducts(ctx, pool)
	if err != nil {
		return report.Input{}, fmt.Errorf("failed to load products: %w", err)
	}
	facts, err := warehouse.LoadFacts(ctx, pool)
	if err != nil {
		return report.Input{}, fmt.Errorf("failed to load facts: %w", err)
	}

	return report.Input{
		Facts:    facts,
		Orders:   mart.ReconstructOrders(facts),
		Stores:   stores,
		Products: products,
	}, nil
}
