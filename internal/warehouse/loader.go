//-------------------------------------------------------------------------
//
// posmart - Point-of-Sale Analytics Mart
//
// Copyright (c) 2025 - 2026, Beanlake Labs
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package warehouse

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/beanlake/posmart/internal/logging"
	"github.com/beanlake/posmart/internal/mart"
)

// BatchInsertConfig configures batch insert behavior.
type BatchInsertConfig struct {
	// BatchSize is the number of rows per batch insert.
	BatchSize int

	// ProgressInterval is how often to log progress (in rows).
	ProgressInterval int64
}

// DefaultBatchConfig returns default batch insert configuration.
func DefaultBatchConfig() BatchInsertConfig {
	return BatchInsertConfig{
		BatchSize:        1000,
		ProgressInterval: 50000,
	}
}

// ProgressReporter tracks and reports fact loading progress.
type ProgressReporter struct {
	tableName        string
	totalRows        int64
	currentRow       int64
	progressInterval int64
}

// NewProgressReporter creates a new progress reporter.
func NewProgressReporter(tableName string, totalRows int64, interval int64) *ProgressReporter {
	return &ProgressReporter{
		tableName:        tableName,
		totalRows:        totalRows,
		progressInterval: interval,
	}
}

// Update updates the progress and logs if necessary.
func (p *ProgressReporter) Update(rowsInserted int64) {
	oldRow := p.currentRow
	p.currentRow += rowsInserted

	if p.currentRow/p.progressInterval > oldRow/p.progressInterval {
		pct := float64(p.currentRow) / float64(p.totalRows) * 100
		logging.Info().
			Str("table", p.tableName).
			Int64("rows", p.currentRow).
			Int64("total", p.totalRows).
			Float64("percent", pct).
			Msg("Loading facts")
	}
}

// Done logs completion.
func (p *ProgressReporter) Done() {
	logging.Info().
		Str("table", p.tableName).
		Int64("rows", p.currentRow).
		Msg("Table complete")
}

// Loader writes a validated mart into the star schema.
type Loader struct {
	cfg BatchInsertConfig
}

// NewLoader creates a loader with default batch configuration.
func NewLoader() *Loader {
	return &Loader{cfg: DefaultBatchConfig()}
}

// Load inserts the dimensions and then the fact set. Dimensions go first so
// the fact table's foreign keys hold during the load.
func (l *Loader) Load(ctx context.Context, pool *pgxpool.Pool,
	stores []mart.Store, products []mart.Product, facts *mart.FactSet) error {

	if err := l.loadStores(ctx, pool, stores); err != nil {
		return fmt.Errorf("failed to load dim_store: %w", err)
	}
	if err := l.loadProducts(ctx, pool, products); err != nil {
		return fmt.Errorf("failed to load dim_product: %w", err)
	}
	if err := l.loadFacts(ctx, pool, facts); err != nil {
		return fmt.Errorf("failed to load fact_sales: %w", err)
	}
	return nil
}

func (l *Loader) loadStores(ctx context.Context, pool *pgxpool.Pool, stores []mart.Store) error {
	logging.Info().Int("count", len(stores)).Msg("Loading dim_store")

	batch := make([]string, 0, len(stores))
	for _, s := range stores {
		batch = append(batch, fmt.Sprintf("(%d, '%s')",
			s.ID, escapeSingleQuote(s.Location)))
	}
	return l.executeBatchInsert(ctx, pool, "dim_store",
		"(store_id, location)", batch)
}

func (l *Loader) loadProducts(ctx context.Context, pool *pgxpool.Pool, products []mart.Product) error {
	logging.Info().Int("count", len(products)).Msg("Loading dim_product")

	batch := make([]string, 0, len(products))
	for _, p := range products {
		batch = append(batch, fmt.Sprintf("(%d, '%s', '%s', '%s')",
			p.ID,
			escapeSingleQuote(p.Category),
			escapeSingleQuote(p.ProductType),
			escapeSingleQuote(p.Detail)))
	}
	return l.executeBatchInsert(ctx, pool, "dim_product",
		"(product_id, category, product_type, detail)", batch)
}

const factColumns = "(transaction_id, sale_date, sale_time, store_id, product_id, quantity, unit_price, revenue)"

func (l *Loader) loadFacts(ctx context.Context, pool *pgxpool.Pool, facts *mart.FactSet) error {
	progress := NewProgressReporter("fact_sales", int64(facts.Len()), l.cfg.ProgressInterval)
	batch := make([]string, 0, l.cfg.BatchSize)

	for i := 0; i < facts.Len(); i++ {
		f := facts.At(i)
		batch = append(batch, fmt.Sprintf("(%d, '%s', '%s', %d, %d, %d, %s, %s)",
			f.TransactionID,
			f.Date.Format(mart.DateFormat),
			f.Time.String(),
			f.StoreID,
			f.ProductID,
			f.Quantity,
			f.UnitPrice.StringFixed(2),
			f.Revenue.StringFixed(2)))

		if len(batch) >= l.cfg.BatchSize {
			if err := l.executeBatchInsert(ctx, pool, "fact_sales", factColumns, batch); err != nil {
				return err
			}
			progress.Update(int64(len(batch)))
			batch = batch[:0]
		}
	}

	if len(batch) > 0 {
		if err := l.executeBatchInsert(ctx, pool, "fact_sales", factColumns, batch); err != nil {
			return err
		}
		progress.Update(int64(len(batch)))
	}

	progress.Done()
	return nil
}

func (l *Loader) executeBatchInsert(ctx context.Context, pool *pgxpool.Pool, table, columns string, values []string) error {
	if len(values) == 0 {
		return nil
	}
	sql := fmt.Sprintf("INSERT INTO %s %s VALUES %s", table, columns, strings.Join(values, ", "))
	_, err := pool.Exec(ctx, sql)
	return err
}

func escapeSingleQuote(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}
