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
	"sort"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/beanlake/posmart/internal/mart"
)

// productAgg is a per-product revenue/unit rollup used by the ranked
// product metrics.
type productAgg struct {
	product mart.Product
	revenue decimal.Decimal
	units   int64
}

// rankProducts sorts aggregates by revenue descending. Ties are broken by
// product detail ascending so every ranking is deterministic.
func rankProducts(aggs []productAgg) {
	sort.Slice(aggs, func(i, j int) bool {
		cmp := aggs[i].revenue.Cmp(aggs[j].revenue)
		if cmp != 0 {
			return cmp > 0
		}
		return aggs[i].product.Detail < aggs[j].product.Detail
	})
}

func aggregateProducts(in Input, keep func(f mart.Fact) bool) []productAgg {
	byID := make(map[int]*productAgg, len(in.Products))
	for _, p := range in.Products {
		byID[p.ID] = &productAgg{product: p}
	}
	for i := 0; i < in.Facts.Len(); i++ {
		f := in.Facts.At(i)
		if keep != nil && !keep(f) {
			continue
		}
		a := byID[f.ProductID]
		a.revenue = a.revenue.Add(f.Revenue)
		a.units += int64(f.Quantity)
	}

	aggs := make([]productAgg, 0, len(byID))
	for _, a := range byID {
		aggs = append(aggs, *a)
	}
	return aggs
}

type categoriesMetric struct{}

func (categoriesMetric) Name() string { return "categories" }

func (categoriesMetric) Description() string {
	return "Revenue and units sold per product category"
}

func (categoriesMetric) Compute(in Input) (*Table, error) {
	type catAgg struct {
		revenue decimal.Decimal
		units   int64
	}
	categoryOf := make(map[int]string, len(in.Products))
	for _, p := range in.Products {
		categoryOf[p.ID] = p.Category
	}

	aggs := make(map[string]*catAgg)
	for i := 0; i < in.Facts.Len(); i++ {
		f := in.Facts.At(i)
		cat := categoryOf[f.ProductID]
		a, ok := aggs[cat]
		if !ok {
			a = &catAgg{}
			aggs[cat] = a
		}
		a.revenue = a.revenue.Add(f.Revenue)
		a.units += int64(f.Quantity)
	}

	names := make([]string, 0, len(aggs))
	for name := range aggs {
		names = append(names, name)
	}
	sort.Strings(names)

	g := sumFacts(in)
	t := &Table{
		Title:   "Category breakdown",
		Columns: []string{"category", "revenue", "revenue_share_pct", "units"},
	}
	for _, name := range names {
		a := aggs[name]
		t.AddRow(name, money(a.revenue), percent(a.revenue, g.revenue),
			strconv.FormatInt(a.units, 10))
	}
	return t, nil
}

type topProductsMetric struct {
	limit int
}

func (topProductsMetric) Name() string { return "top-products" }

func (m topProductsMetric) Description() string {
	return "Top " + strconv.Itoa(m.limit) + " products by total revenue"
}

func (m topProductsMetric) Compute(in Input) (*Table, error) {
	aggs := aggregateProducts(in, nil)
	rankProducts(aggs)
	if len(aggs) > m.limit {
		aggs = aggs[:m.limit]
	}

	t := &Table{
		Title:   "Top products",
		Columns: []string{"rank", "product_id", "detail", "category", "revenue", "units"},
	}
	for i, a := range aggs {
		t.AddRow(
			strconv.Itoa(i+1),
			strconv.Itoa(a.product.ID),
			a.product.Detail,
			a.product.Category,
			money(a.revenue),
			strconv.FormatInt(a.units, 10),
		)
	}
	return t, nil
}

type topProductsPerStoreMetric struct {
	limit int
}

func (topProductsPerStoreMetric) Name() string { return "top-products-per-store" }

func (m topProductsPerStoreMetric) Description() string {
	return "Top " + strconv.Itoa(m.limit) + " products by revenue within each store"
}

func (m topProductsPerStoreMetric) Compute(in Input) (*Table, error) {
	t := &Table{
		Title:   "Top products per store",
		Columns: []string{"store_id", "location", "rank", "product_id", "detail", "revenue"},
	}
	for _, s := range in.Stores {
		storeID := s.ID
		aggs := aggregateProducts(in, func(f mart.Fact) bool { return f.StoreID == storeID })
		rankProducts(aggs)

		n := 0
		for _, a := range aggs {
			if n >= m.limit || a.revenue.IsZero() {
				break
			}
			n++
			t.AddRow(
				strconv.Itoa(s.ID),
				s.Location,
				strconv.Itoa(n),
				strconv.Itoa(a.product.ID),
				a.product.Detail,
				money(a.revenue),
			)
		}
	}
	return t, nil
}

func init() {
	Register(categoriesMetric{})
	Register(topProductsMetric{limit: 10})
	Register(topProductsPerStoreMetric{limit: 3})
}
