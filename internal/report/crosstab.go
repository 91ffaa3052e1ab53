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
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
)

type storeHoursMetric struct{}

func (storeHoursMetric) Name() string { return "store-hours" }

func (storeHoursMetric) Description() string {
	return "Store x hour cross-tab of revenue and order counts"
}

// Compute pivots per-hour revenue and order counts by store. The store set
// is small and fixed, so the pivot is a conditional sum over the enumerated
// dimension rather than anything dynamic.
func (storeHoursMetric) Compute(in Input) (*Table, error) {
	col := make(map[int]int, len(in.Stores))
	for i, s := range in.Stores {
		col[s.ID] = i
	}

	revenue := make([][24]decimal.Decimal, len(in.Stores))
	orders := make([][24]int64, len(in.Stores))

	for i := 0; i < in.Facts.Len(); i++ {
		f := in.Facts.At(i)
		c := col[f.StoreID]
		h := f.Time.Hour()
		revenue[c][h] = revenue[c][h].Add(f.Revenue)
	}
	for _, o := range in.Orders {
		orders[col[o.StoreID]][o.Time.Hour()]++
	}

	columns := []string{"hour"}
	for _, s := range in.Stores {
		columns = append(columns,
			s.Location+" revenue",
			s.Location+" orders",
		)
	}

	t := &Table{
		Title:   "Store x hour",
		Columns: columns,
	}
	for h := 0; h < 24; h++ {
		row := []string{fmt.Sprintf("%02d", h)}
		for c := range in.Stores {
			row = append(row,
				money(revenue[c][h]),
				strconv.FormatInt(orders[c][h], 10),
			)
		}
		t.AddRow(row...)
	}
	return t, nil
}

func init() {
	Register(storeHoursMetric{})
}
