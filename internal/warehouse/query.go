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
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/beanlake/posmart/internal/mart"
)

// LoadStores reads the store dimension back, ordered by id.
func LoadStores(ctx context.Context, pool *pgxpool.Pool) ([]mart.Store, error) {
	rows, err := pool.Query(ctx, `
        SELECT store_id, location FROM dim_store ORDER BY store_id
    `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stores []mart.Store
	for rows.Next() {
		var s mart.Store
		if err := rows.Scan(&s.ID, &s.Location); err != nil {
			return nil, err
		}
		stores = append(stores, s)
	}
	return stores, rows.Err()
}

// LoadProducts reads the product dimension back, ordered by id.
func LoadProducts(ctx context.Context, pool *pgxpool.Pool) ([]mart.Product, error) {
	rows, err := pool.Query(ctx, `
        SELECT product_id, category, product_type, detail
        FROM dim_product ORDER BY product_id
    `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []mart.Product
	for rows.Next() {
		var p mart.Product
		if err := rows.Scan(&p.ID, &p.Category, &p.ProductType, &p.Detail); err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

// LoadFacts reads the fact table back into an in-memory fact set. Dates,
// times and money cross the wire as text so the same parsers that validated
// the source file interpret them.
func LoadFacts(ctx context.Context, pool *pgxpool.Pool) (*mart.FactSet, error) {
	rows, err := pool.Query(ctx, `
        SELECT transaction_id,
               sale_date::text,
               sale_time::text,
               store_id,
               product_id,
               quantity,
               unit_price::text,
               revenue::text
        FROM fact_sales
    `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var facts []mart.Fact
	for rows.Next() {
		var f mart.Fact
		var date, clock, price, revenue string
		if err := rows.Scan(&f.TransactionID, &date, &clock,
			&f.StoreID, &f.ProductID, &f.Quantity, &price, &revenue); err != nil {
			return nil, err
		}

		f.Date, err = time.ParseInLocation(mart.DateFormat, date, time.UTC)
		if err != nil {
			return nil, fmt.Errorf("fact %d: bad sale_date %q: %w", f.TransactionID, date, err)
		}
		f.Time, err = mart.ParseTimeOfDay(clock)
		if err != nil {
			return nil, fmt.Errorf("fact %d: bad sale_time %q: %w", f.TransactionID, clock, err)
		}
		f.UnitPrice, err = decimal.NewFromString(price)
		if err != nil {
			return nil, fmt.Errorf("fact %d: bad unit_price %q: %w", f.TransactionID, price, err)
		}
		f.Revenue, err = decimal.NewFromString(revenue)
		if err != nil {
			return nil, fmt.Errorf("fact %d: bad revenue %q: %w", f.TransactionID, revenue, err)
		}
		facts = append(facts, f)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return mart.NewFactSet(facts)
}

// CountFacts returns the number of rows in the fact table.
func CountFacts(ctx context.Context, pool *pgxpool.Pool) (int64, error) {
	var n int64
	err := pool.QueryRow(ctx, `SELECT count(*) FROM fact_sales`).Scan(&n)
	return n, err
}
