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

// grandTotals sums the fact set once. Metrics needing a grand total share
// this instead of recomputing it per group row.
type grandTotals struct {
	revenue decimal.Decimal
	units   int64
	lines   int64
}

func sumFacts(in Input) grandTotals {
	var g grandTotals
	for i := 0; i < in.Facts.Len(); i++ {
		f := in.Facts.At(i)
		g.revenue = g.revenue.Add(f.Revenue)
		g.units += int64(f.Quantity)
		g.lines++
	}
	return g
}

type totalsMetric struct{}

func (totalsMetric) Name() string { return "totals" }

func (totalsMetric) Description() string {
	return "Total revenue, units sold, orders and line items"
}

func (totalsMetric) Compute(in Input) (*Table, error) {
	g := sumFacts(in)

	t := &Table{
		Title:   "Totals",
		Columns: []string{"measure", "value"},
	}
	t.AddRow("total_revenue", money(g.revenue))
	t.AddRow("total_units", strconv.FormatInt(g.units, 10))
	t.AddRow("total_orders", strconv.Itoa(len(in.Orders)))
	t.AddRow("total_line_items", strconv.FormatInt(g.lines, 10))
	return t, nil
}

type averagesMetric struct{}

func (averagesMetric) Name() string { return "averages" }

func (averagesMetric) Description() string {
	return "Weighted average unit price, average order value, average units per order"
}

func (averagesMetric) Compute(in Input) (*Table, error) {
	g := sumFacts(in)

	orderRevenue := decimal.Zero
	orderUnits := int64(0)
	for _, o := range in.Orders {
		orderRevenue = orderRevenue.Add(o.Revenue)
		orderUnits += int64(o.Units)
	}
	orderCount := int64(len(in.Orders))

	t := &Table{
		Title:   "Averages",
		Columns: []string{"measure", "value"},
	}
	// Weighted by units sold, not a simple mean of unit prices.
	t.AddRow("avg_price_per_unit", ratio(g.revenue, g.units))
	t.AddRow("avg_order_value", ratio(orderRevenue, orderCount))
	t.AddRow("avg_units_per_order", ratio(decimal.NewFromInt(orderUnits), orderCount))
	return t, nil
}

func init() {
	Register(totalsMetric{})
	Register(averagesMetric{})
}
