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

type basketsMetric struct{}

func (basketsMetric) Name() string { return "baskets" }

func (basketsMetric) Description() string {
	return "Single-item vs multi-item order counts and shares"
}

// Compute partitions orders by basket size. The partition is exhaustive and
// disjoint: order_units is at least 1 by construction, so every order is
// either single-item (= 1) or multi-item (> 1).
func (basketsMetric) Compute(in Input) (*Table, error) {
	var single, multi int64
	for _, o := range in.Orders {
		if o.Units == 1 {
			single++
		} else {
			multi++
		}
	}
	total := decimal.NewFromInt(single + multi)

	t := &Table{
		Title:   "Basket size",
		Columns: []string{"basket", "orders", "share_pct"},
	}
	t.AddRow("single item", strconv.FormatInt(single, 10),
		percent(decimal.NewFromInt(single), total))
	t.AddRow("multiple items", strconv.FormatInt(multi, 10),
		percent(decimal.NewFromInt(multi), total))
	return t, nil
}

func init() {
	Register(basketsMetric{})
}
