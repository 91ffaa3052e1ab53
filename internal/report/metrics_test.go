//-------------------------------------------------------------------------
//
// posmart - Point-of-Sale Analytics Mart
//
// Copyright (c) 2025 - 2026, Beanlake Labs
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package report_test

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/beanlake/posmart/internal/mart"
	"github.com/beanlake/posmart/internal/report"
)

// li builds one clean line item for metric tests.
func li(t *testing.T, tx int64, date, clock string, storeID int, location string,
	productID int, category, productType, detail string, qty int, price string) mart.LineItem {
	t.Helper()

	d, err := time.ParseInLocation(mart.DateFormat, date, time.UTC)
	if err != nil {
		t.Fatalf("Failed to parse date '%s': %v", date, err)
	}
	tod, err := mart.ParseTimeOfDay(clock)
	if err != nil {
		t.Fatalf("Failed to parse time '%s': %v", clock, err)
	}
	p, err := decimal.NewFromString(price)
	if err != nil {
		t.Fatalf("Failed to parse price '%s': %v", price, err)
	}
	return mart.LineItem{
		TransactionID: tx,
		Date:          d,
		Time:          tod,
		StoreID:       storeID,
		StoreLocation: location,
		ProductID:     productID,
		Quantity:      qty,
		UnitPrice:     p,
		Category:      category,
		ProductType:   productType,
		Detail:        detail,
	}
}

// buildInput runs the mart pipeline over the items and packages the result
// as metric input.
func buildInput(t *testing.T, items []mart.LineItem) report.Input {
	t.Helper()

	stores, err := mart.BuildStoreDimension(items)
	if err != nil {
		t.Fatalf("Failed to build store dimension: %v", err)
	}
	products, err := mart.BuildProductDimension(items)
	if err != nil {
		t.Fatalf("Failed to build product dimension: %v", err)
	}
	facts, err := mart.BuildFacts(items, stores, products)
	if err != nil {
		t.Fatalf("Failed to build facts: %v", err)
	}
	return report.Input{
		Facts:    facts,
		Orders:   mart.ReconstructOrders(facts),
		Stores:   stores,
		Products: products,
	}
}

// threeStoreInput: two line items share (date, time, store) and so collapse
// into one order; the third is a separate order at another store.
//
//	tx 1  2023-06-05 08:10:00  store 3  product 32  2 x 3.00 =  6.00
//	tx 2  2023-06-05 08:10:00  store 3  product 57  1 x 4.25 =  4.25
//	tx 3  2023-06-10 15:30:00  store 5  product 32  3 x 3.00 =  9.00
func threeStoreInput(t *testing.T) report.Input {
	t.Helper()
	return buildInput(t, []mart.LineItem{
		li(t, 1, "2023-06-05", "08:10:00", 3, "Astoria",
			32, "Coffee", "Gourmet brewed coffee", "Ethiopia Rg", 2, "3.00"),
		li(t, 2, "2023-06-05", "08:10:00", 3, "Astoria",
			57, "Tea", "Brewed Chai tea", "Spicy Eye Opener Chai Lg", 1, "4.25"),
		li(t, 3, "2023-06-10", "15:30:00", 5, "Hell's Kitchen",
			32, "Coffee", "Gourmet brewed coffee", "Ethiopia Rg", 3, "3.00"),
	})
}

func computeTable(t *testing.T, name string, in report.Input) *report.Table {
	t.Helper()
	m, err := report.Get(name)
	if err != nil {
		t.Fatalf("Failed to get metric '%s': %v", name, err)
	}
	tbl, err := m.Compute(in)
	if err != nil {
		t.Fatalf("Metric '%s' failed: %v", name, err)
	}
	if tbl == nil {
		t.Fatalf("Metric '%s' returned nil table", name)
	}
	return tbl
}

// findRow returns the first row whose first cell matches key.
func findRow(t *testing.T, tbl *report.Table, key string) []string {
	t.Helper()
	for _, row := range tbl.Rows {
		if len(row) > 0 && row[0] == key {
			return row
		}
	}
	t.Fatalf("No row with key '%s' in table '%s'", key, tbl.Title)
	return nil
}

func TestTotals(t *testing.T) {
	in := threeStoreInput(t)
	tbl := computeTable(t, "totals", in)

	expected := map[string]string{
		"total_revenue":    "19.25",
		"total_units":      "6",
		"total_orders":     "2",
		"total_line_items": "3",
	}
	for measure, want := range expected {
		row := findRow(t, tbl, measure)
		if row[1] != want {
			t.Errorf("%s: expected %s, got %s", measure, want, row[1])
		}
	}
}

func TestAveragesWeightedByUnits(t *testing.T) {
	in := threeStoreInput(t)
	tbl := computeTable(t, "averages", in)

	// 19.25 / 6 units = 3.2083...; a naive mean of the two distinct unit
	// prices (3.00, 4.25) would give 3.63 instead.
	row := findRow(t, tbl, "avg_price_per_unit")
	if row[1] != "3.21" {
		t.Errorf("avg_price_per_unit: expected 3.21, got %s", row[1])
	}

	// 19.25 over 2 orders.
	row = findRow(t, tbl, "avg_order_value")
	if row[1] != "9.63" {
		t.Errorf("avg_order_value: expected 9.63, got %s", row[1])
	}

	// 6 units over 2 orders.
	row = findRow(t, tbl, "avg_units_per_order")
	if row[1] != "3.00" {
		t.Errorf("avg_units_per_order: expected 3.00, got %s", row[1])
	}
}

func TestStoreShares(t *testing.T) {
	in := threeStoreInput(t)
	tbl := computeTable(t, "stores", in)

	if len(tbl.Rows) != 2 {
		t.Fatalf("Expected 2 store rows, got %d", len(tbl.Rows))
	}

	astoria := findRow(t, tbl, "3")
	if astoria[1] != "Astoria" {
		t.Errorf("Expected location Astoria, got %s", astoria[1])
	}
	if astoria[2] != "10.25" {
		t.Errorf("Astoria revenue: expected 10.25, got %s", astoria[2])
	}
	// 10.25 / 19.25 = 53.2467...%
	if astoria[3] != "53.25" {
		t.Errorf("Astoria revenue share: expected 53.25, got %s", astoria[3])
	}

	hellsKitchen := findRow(t, tbl, "5")
	if hellsKitchen[2] != "9.00" {
		t.Errorf("Hell's Kitchen revenue: expected 9.00, got %s", hellsKitchen[2])
	}
	if hellsKitchen[3] != "46.75" {
		t.Errorf("Hell's Kitchen revenue share: expected 46.75, got %s", hellsKitchen[3])
	}

	// The two rounded shares happen to sum to exactly 100 here.
	if astoria[5] != "50.00" || hellsKitchen[5] != "50.00" {
		t.Errorf("Order shares: expected 50.00/50.00, got %s/%s",
			astoria[5], hellsKitchen[5])
	}
}

func TestCategories(t *testing.T) {
	in := threeStoreInput(t)
	tbl := computeTable(t, "categories", in)

	coffee := findRow(t, tbl, "Coffee")
	if coffee[1] != "15.00" {
		t.Errorf("Coffee revenue: expected 15.00, got %s", coffee[1])
	}
	tea := findRow(t, tbl, "Tea")
	if tea[1] != "4.25" {
		t.Errorf("Tea revenue: expected 4.25, got %s", tea[1])
	}
	if len(tbl.Rows) != 2 {
		t.Errorf("Expected 2 category rows, got %d", len(tbl.Rows))
	}
	// Categories are presented in name order.
	if tbl.Rows[0][0] != "Coffee" || tbl.Rows[1][0] != "Tea" {
		t.Errorf("Expected Coffee before Tea, got %s, %s",
			tbl.Rows[0][0], tbl.Rows[1][0])
	}
}

func TestTopProductsTieBreak(t *testing.T) {
	// Two products with identical revenue; ranking must fall back to
	// product detail ascending.
	in := buildInput(t, []mart.LineItem{
		li(t, 1, "2023-06-05", "09:00:00", 3, "Astoria",
			70, "Coffee beans", "Organic Beans", "Colombian", 1, "5.00"),
		li(t, 2, "2023-06-05", "10:00:00", 3, "Astoria",
			71, "Coffee beans", "Organic Beans", "Brazilian", 1, "5.00"),
		li(t, 3, "2023-06-05", "11:00:00", 3, "Astoria",
			72, "Tea", "Herbal tea", "Peppermint", 1, "2.00"),
	})
	tbl := computeTable(t, "top-products", in)

	if len(tbl.Rows) != 3 {
		t.Fatalf("Expected 3 product rows, got %d", len(tbl.Rows))
	}
	if tbl.Rows[0][2] != "Brazilian" {
		t.Errorf("Rank 1: expected Brazilian, got %s", tbl.Rows[0][2])
	}
	if tbl.Rows[1][2] != "Colombian" {
		t.Errorf("Rank 2: expected Colombian, got %s", tbl.Rows[1][2])
	}
	if tbl.Rows[2][2] != "Peppermint" {
		t.Errorf("Rank 3: expected Peppermint, got %s", tbl.Rows[2][2])
	}
}

func TestTopProductsPerStoreSkipsZeroRevenue(t *testing.T) {
	// Product 72 never sells at store 5, so it must not appear in that
	// store's ranking.
	in := buildInput(t, []mart.LineItem{
		li(t, 1, "2023-06-05", "09:00:00", 3, "Astoria",
			70, "Coffee beans", "Organic Beans", "Colombian", 1, "5.00"),
		li(t, 2, "2023-06-05", "10:00:00", 3, "Astoria",
			72, "Tea", "Herbal tea", "Peppermint", 1, "2.00"),
		li(t, 3, "2023-06-05", "11:00:00", 5, "Hell's Kitchen",
			70, "Coffee beans", "Organic Beans", "Colombian", 2, "5.00"),
	})
	tbl := computeTable(t, "top-products-per-store", in)

	for _, row := range tbl.Rows {
		if row[0] == "5" && row[4] == "Peppermint" {
			t.Error("Zero-revenue product listed for store 5")
		}
	}
	// Store 3 ranks both of its products, store 5 only its one.
	var store3, store5 int
	for _, row := range tbl.Rows {
		switch row[0] {
		case "3":
			store3++
		case "5":
			store5++
		}
	}
	if store3 != 2 || store5 != 1 {
		t.Errorf("Expected 2 rows for store 3 and 1 for store 5, got %d and %d",
			store3, store5)
	}
}

func TestWeekdays(t *testing.T) {
	in := threeStoreInput(t)
	tbl := computeTable(t, "weekdays", in)

	if len(tbl.Rows) != 7 {
		t.Fatalf("Expected 7 weekday rows, got %d", len(tbl.Rows))
	}
	if tbl.Rows[0][0] != "Monday" || tbl.Rows[6][0] != "Sunday" {
		t.Errorf("Expected Monday-first ordering, got %s .. %s",
			tbl.Rows[0][0], tbl.Rows[6][0])
	}

	// 2023-06-05 is a Monday, 2023-06-10 a Saturday.
	monday := findRow(t, tbl, "Monday")
	if monday[1] != "weekday" || monday[2] != "10.25" {
		t.Errorf("Monday: expected weekday/10.25, got %s/%s", monday[1], monday[2])
	}
	saturday := findRow(t, tbl, "Saturday")
	if saturday[1] != "weekend" || saturday[2] != "9.00" {
		t.Errorf("Saturday: expected weekend/9.00, got %s/%s", saturday[1], saturday[2])
	}
	tuesday := findRow(t, tbl, "Tuesday")
	if tuesday[2] != "0.00" {
		t.Errorf("Tuesday: expected 0.00 revenue, got %s", tuesday[2])
	}
}

func TestMonthly(t *testing.T) {
	in := buildInput(t, []mart.LineItem{
		li(t, 1, "2023-01-15", "09:00:00", 3, "Astoria",
			32, "Coffee", "Gourmet brewed coffee", "Ethiopia Rg", 1, "3.00"),
		li(t, 2, "2023-02-01", "09:00:00", 3, "Astoria",
			32, "Coffee", "Gourmet brewed coffee", "Ethiopia Rg", 2, "3.00"),
		li(t, 3, "2023-02-20", "09:00:00", 3, "Astoria",
			32, "Coffee", "Gourmet brewed coffee", "Ethiopia Rg", 1, "3.00"),
	})
	tbl := computeTable(t, "monthly", in)

	if len(tbl.Rows) != 2 {
		t.Fatalf("Expected 2 month rows, got %d", len(tbl.Rows))
	}
	if tbl.Rows[0][0] != "2023-01" || tbl.Rows[1][0] != "2023-02" {
		t.Errorf("Expected chronological months, got %s, %s",
			tbl.Rows[0][0], tbl.Rows[1][0])
	}
	feb := findRow(t, tbl, "2023-02")
	if feb[1] != "9.00" || feb[2] != "3" || feb[3] != "2" {
		t.Errorf("February: expected 9.00/3/2, got %s/%s/%s", feb[1], feb[2], feb[3])
	}
}

func TestHourlyAverageNormalizesPerDay(t *testing.T) {
	// Hour 08 trades on two days (10.00 and 20.00), hour 09 on one day
	// (30.00). Averaging per (date, hour) first must yield 15.00 and 30.00
	// rather than anything skewed by line counts.
	in := buildInput(t, []mart.LineItem{
		li(t, 1, "2023-06-05", "08:00:00", 3, "Astoria",
			32, "Coffee", "Gourmet brewed coffee", "Ethiopia Rg", 2, "5.00"),
		li(t, 2, "2023-06-06", "08:30:00", 3, "Astoria",
			32, "Coffee", "Gourmet brewed coffee", "Ethiopia Rg", 4, "5.00"),
		li(t, 3, "2023-06-06", "09:15:00", 3, "Astoria",
			32, "Coffee", "Gourmet brewed coffee", "Ethiopia Rg", 6, "5.00"),
	})
	tbl := computeTable(t, "hourly-average", in)

	if len(tbl.Rows) != 24 {
		t.Fatalf("Expected 24 hour rows, got %d", len(tbl.Rows))
	}

	h8 := findRow(t, tbl, "08")
	if h8[1] != "2" {
		t.Errorf("Hour 08 days: expected 2, got %s", h8[1])
	}
	if h8[2] != "15.00" {
		t.Errorf("Hour 08 avg revenue: expected 15.00, got %s", h8[2])
	}
	if h8[3] != "1.00" {
		t.Errorf("Hour 08 avg orders: expected 1.00, got %s", h8[3])
	}

	h9 := findRow(t, tbl, "09")
	if h9[1] != "1" || h9[2] != "30.00" {
		t.Errorf("Hour 09: expected 1 day / 30.00, got %s / %s", h9[1], h9[2])
	}

	// Hours with no trade have no days to average over.
	h0 := findRow(t, tbl, "00")
	if h0[2] != report.NullCell || h0[3] != report.NullCell {
		t.Errorf("Hour 00: expected %s cells, got %s / %s",
			report.NullCell, h0[2], h0[3])
	}
}

func TestHourly(t *testing.T) {
	in := threeStoreInput(t)
	tbl := computeTable(t, "hourly", in)

	if len(tbl.Rows) != 24 {
		t.Fatalf("Expected 24 hour rows, got %d", len(tbl.Rows))
	}
	h8 := findRow(t, tbl, "08")
	if h8[1] != "10.25" || h8[3] != "1" {
		t.Errorf("Hour 08: expected 10.25 revenue / 1 order, got %s / %s",
			h8[1], h8[3])
	}
	h15 := findRow(t, tbl, "15")
	if h15[1] != "9.00" {
		t.Errorf("Hour 15: expected 9.00 revenue, got %s", h15[1])
	}
}

func TestStoreHoursCrosstab(t *testing.T) {
	in := threeStoreInput(t)
	tbl := computeTable(t, "store-hours", in)

	// hour + (revenue, orders) per store.
	if len(tbl.Columns) != 1+2*len(in.Stores) {
		t.Fatalf("Expected %d columns, got %d", 1+2*len(in.Stores), len(tbl.Columns))
	}
	if len(tbl.Rows) != 24 {
		t.Fatalf("Expected 24 rows, got %d", len(tbl.Rows))
	}

	// Store 3 (Astoria) is the first store column pair.
	h8 := findRow(t, tbl, "08")
	if h8[1] != "10.25" || h8[2] != "1" {
		t.Errorf("Astoria hour 08: expected 10.25 / 1, got %s / %s", h8[1], h8[2])
	}
	if h8[3] != "0.00" || h8[4] != "0" {
		t.Errorf("Hell's Kitchen hour 08: expected 0.00 / 0, got %s / %s",
			h8[3], h8[4])
	}
	h15 := findRow(t, tbl, "15")
	if h15[3] != "9.00" || h15[4] != "1" {
		t.Errorf("Hell's Kitchen hour 15: expected 9.00 / 1, got %s / %s",
			h15[3], h15[4])
	}
}

func TestBaskets(t *testing.T) {
	// Order 1 has 3 units, order 2 has 3 units; add a third order with a
	// single unit so both partitions are non-empty.
	items := []mart.LineItem{
		li(t, 1, "2023-06-05", "08:10:00", 3, "Astoria",
			32, "Coffee", "Gourmet brewed coffee", "Ethiopia Rg", 2, "3.00"),
		li(t, 2, "2023-06-05", "08:10:00", 3, "Astoria",
			57, "Tea", "Brewed Chai tea", "Spicy Eye Opener Chai Lg", 1, "4.25"),
		li(t, 3, "2023-06-10", "15:30:00", 5, "Hell's Kitchen",
			32, "Coffee", "Gourmet brewed coffee", "Ethiopia Rg", 3, "3.00"),
		li(t, 4, "2023-06-10", "16:00:00", 5, "Hell's Kitchen",
			32, "Coffee", "Gourmet brewed coffee", "Ethiopia Rg", 1, "3.00"),
	}
	in := buildInput(t, items)
	tbl := computeTable(t, "baskets", in)

	single := findRow(t, tbl, "single item")
	multi := findRow(t, tbl, "multiple items")
	if single[1] != "1" {
		t.Errorf("Single-item orders: expected 1, got %s", single[1])
	}
	if multi[1] != "2" {
		t.Errorf("Multi-item orders: expected 2, got %s", multi[1])
	}
	if single[2] != "33.33" || multi[2] != "66.67" {
		t.Errorf("Shares: expected 33.33/66.67, got %s/%s", single[2], multi[2])
	}
}

func TestAllMetricsOnEmptyInput(t *testing.T) {
	facts, err := mart.BuildFacts(nil, nil, nil)
	if err != nil {
		t.Fatalf("Failed to build empty fact set: %v", err)
	}
	in := report.Input{Facts: facts}

	for _, m := range report.All() {
		tbl, err := m.Compute(in)
		if err != nil {
			t.Errorf("Metric '%s' failed on empty input: %v", m.Name(), err)
			continue
		}
		if tbl == nil {
			t.Errorf("Metric '%s' returned nil table on empty input", m.Name())
		}
	}

	// Every average is undefined over an empty mart.
	tbl := computeTable(t, "averages", in)
	for _, row := range tbl.Rows {
		if row[1] != report.NullCell {
			t.Errorf("%s: expected %s on empty input, got %s",
				row[0], report.NullCell, row[1])
		}
	}
}

func TestTableRender(t *testing.T) {
	tbl := &report.Table{
		Title:   "Example",
		Columns: []string{"name", "value"},
	}
	tbl.AddRow("revenue", "19.25")
	tbl.AddRow("orders", "2")

	var b strings.Builder
	if err := tbl.Render(&b); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	out := b.String()

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 5 {
		t.Fatalf("Expected 5 lines, got %d:\n%s", len(lines), out)
	}
	if lines[0] != "Example" {
		t.Errorf("Expected title line, got '%s'", lines[0])
	}
	if !strings.HasPrefix(lines[1], "name") {
		t.Errorf("Expected header line, got '%s'", lines[1])
	}
	if !strings.Contains(lines[2], "---") {
		t.Errorf("Expected separator line, got '%s'", lines[2])
	}
	// Cells are padded so columns align.
	if !strings.HasPrefix(lines[3], "revenue  ") {
		t.Errorf("Expected padded first cell, got '%s'", lines[3])
	}
}
