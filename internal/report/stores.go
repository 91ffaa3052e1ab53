//-------------------------------------------------------------------------
//
// posmart - Point-of-Sale Analytics Mart
//
// Copyright (c) 2025 - 2026, Beanlake Labs
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package report

import (
	"strconv"

	"github.com/shopspring/decimal"
)

type storesMetric struct{}

func (storesMetric) Name() string { return "stores" }

func (storesMetric) Description() string {
	return "Per-store revenue, revenue and order shares, average order value"
}

func (storesMetric) Compute(in Input) (*Table, error) {
	type storeAgg struct {
		revenue      decimal.Decimal
		units        int64
		orders       int64
		orderRevenue decimal.Decimal
	}

	aggs := make(map[int]*storeAgg, len(in.Stores))
	for _, s := range in.Stores {
		aggs[s.ID] = &storeAgg{}
	}
	for i := 0; i < in.Facts.Len(); i++ {
		f := in.Facts.At(i)
		a := aggs[f.StoreID]
		a.revenue = a.revenue.Add(f.Revenue)
		a.units += int64(f.Quantity)
	}
	for _, o := range in.Orders {
		a := aggs[o.StoreID]
		a.orders++
		a.orderRevenue = a.orderRevenue.Add(o.Revenue)
	}

	// Grand totals computed once and passed into each row's share
	// calculation, instead of a per-row recomputation.
	g := sumFacts(in)
	totalOrders := decimal.NewFromInt(int64(len(in.Orders)))

	t := &Table{
		Title: "Store breakdown",
		Columns: []string{
			"store_id", "location", "revenue", "revenue_share_pct",
			"orders", "order_share_pct", "avg_order_value",
		},
	}
	for _, s := range in.Stores {
		a := aggs[s.ID]
		t.AddRow(
			strconv.Itoa(s.ID),
			s.Location,
			money(a.revenue),
			percent(a.revenue, g.revenue),
			strconv.FormatInt(a.orders, 10),
			percent(decimal.NewFromInt(a.orders), totalOrders),
			ratio(a.orderRevenue, a.orders),
		)
	}
	return t, nil
}

func init() {
	Register(storesMetric{})
}
