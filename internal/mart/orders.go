//-------------------------------------------------------------------------
//
// posmart - Point-of-Sale Analytics Mart
//
// Copyright (c) 2025 - 2026, Beanlake Labs
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package mart

import "sort"

// ReconstructOrders groups line-level facts into inferred customer orders.
// The source data carries no order key, so the composite natural key
// (date, time, store) stands in for one: all line items sharing an identical
// timestamp and store are assumed to belong to a single order. Two distinct
// real orders placed at the same second in the same store are
// indistinguishable and merge silently; that is a documented limitation of
// the reconstruction, not something this function tries to compensate for.
//
// The result is a pure function of the fact set: no state is kept, and the
// returned slice is sorted by (date, time, store) so repeated invocations
// yield identical output.
func ReconstructOrders(facts *FactSet) []Order {
	type key struct {
		date    int64
		time    TimeOfDay
		storeID int
	}

	groups := make(map[key]*Order)
	for i := 0; i < facts.Len(); i++ {
		f := facts.At(i)
		k := key{date: f.Date.Unix(), time: f.Time, storeID: f.StoreID}
		o, ok := groups[k]
		if !ok {
			o = &Order{Date: f.Date, Time: f.Time, StoreID: f.StoreID}
			groups[k] = o
		}
		o.Revenue = o.Revenue.Add(f.Revenue)
		o.Units += f.Quantity
		o.Lines++
	}

	orders := make([]Order, 0, len(groups))
	for _, o := range groups {
		orders = append(orders, *o)
	}
	sort.Slice(orders, func(i, j int) bool {
		a, b := orders[i], orders[j]
		if !a.Date.Equal(b.Date) {
			return a.Date.Before(b.Date)
		}
		if a.Time != b.Time {
			return a.Time < b.Time
		}
		return a.StoreID < b.StoreID
	})
	return orders
}
