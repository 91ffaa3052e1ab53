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

	"github.com/jackc/pgx/v5/pgxpool"
)

// Star schema DDL. Dimensions carry the natural keys from the source data;
// the fact table enforces line-item uniqueness and referential integrity at
// the database level as well, so a loaded mart stays consistent even when
// other tools write to it.
const createSchemaSQL = `
-- Store Dimension
CREATE TABLE IF NOT EXISTS dim_store (
    store_id INTEGER PRIMARY KEY,
    location TEXT NOT NULL
);

-- Product Dimension
CREATE TABLE IF NOT EXISTS dim_product (
    product_id   INTEGER PRIMARY KEY,
    category     TEXT NOT NULL,
    product_type TEXT NOT NULL,
    detail       TEXT NOT NULL
);

-- Sales Fact
CREATE TABLE IF NOT EXISTS fact_sales (
    transaction_id BIGINT PRIMARY KEY,
    sale_date      DATE NOT NULL,
    sale_time      TIME NOT NULL,
    store_id       INTEGER NOT NULL REFERENCES dim_store(store_id),
    product_id     INTEGER NOT NULL REFERENCES dim_product(product_id),
    quantity       INTEGER NOT NULL CHECK (quantity > 0),
    unit_price     NUMERIC(7,2) NOT NULL CHECK (unit_price >= 0),
    revenue        NUMERIC(12,2) NOT NULL
);

-- Orders are not stored; they are a grouping of the fact table by the
-- composite natural key (sale_date, sale_time, store_id).
CREATE OR REPLACE VIEW order_summary AS
SELECT sale_date,
       sale_time,
       store_id,
       SUM(revenue)  AS order_revenue,
       SUM(quantity) AS order_units,
       COUNT(*)      AS line_items
FROM fact_sales
GROUP BY sale_date, sale_time, store_id;

-- Indexes for the reporting queries
CREATE INDEX IF NOT EXISTS idx_fact_sales_date ON fact_sales(sale_date);
CREATE INDEX IF NOT EXISTS idx_fact_sales_store ON fact_sales(store_id);
CREATE INDEX IF NOT EXISTS idx_fact_sales_product ON fact_sales(product_id);
`

const dropSchemaSQL = `
DROP VIEW IF EXISTS order_summary;
DROP TABLE IF EXISTS fact_sales CASCADE;
DROP TABLE IF EXISTS dim_product CASCADE;
DROP TABLE IF EXISTS dim_store CASCADE;
`

// CreateSchema creates the star schema.
func CreateSchema(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, createSchemaSQL)
	return err
}

// DropSchema drops the star schema.
func DropSchema(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, dropSchemaSQL)
	return err
}

// SchemaExists checks whether the fact table is present.
func SchemaExists(ctx context.Context, pool *pgxpool.Pool) (bool, error) {
	var exists bool
	err := pool.QueryRow(ctx, `
        SELECT EXISTS (
            SELECT FROM information_schema.tables
            WHERE table_name = 'fact_sales'
        )
    `).Scan(&exists)
	return exists, err
}
