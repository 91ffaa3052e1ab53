//-------------------------------------------------------------------------
//
// posmart - Point-of-Sale Analytics Mart
//
// Copyright (c) 2025 - 2026, Beanlake Labs
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package report implements the read-only metric layer: pure aggregate
// computations over the fact set and the reconstructed orders, each exposed
// as an independently invocable metric returning a tabular result.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"
)

// NullCell marks an undefined value in a rendered table, e.g. a ratio over
// an empty group. Metrics yield it instead of failing.
const NullCell = "n/a"

// Table is a metric result: a header and rows of formatted cells.
type Table struct {
	Title   string
	Columns []string
	Rows    [][]string
}

// AddRow appends one row of cells.
func (t *Table) AddRow(cells ...string) {
	t.Rows = append(t.Rows, cells)
}

// Render writes the table as aligned plain text.
func (t *Table) Render(w io.Writer) error {
	widths := make([]int, len(t.Columns))
	for i, c := range t.Columns {
		widths[i] = len(c)
	}
	for _, row := range t.Rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	var b strings.Builder
	if t.Title != "" {
		fmt.Fprintf(&b, "%s\n", t.Title)
	}
	writeRow := func(cells []string) {
		for i, cell := range cells {
			if i > 0 {
				b.WriteString("  ")
			}
			fmt.Fprintf(&b, "%-*s", widths[i], cell)
		}
		b.WriteString("\n")
	}
	writeRow(t.Columns)
	for i, w := range widths {
		if i > 0 {
			b.WriteString("  ")
		}
		b.WriteString(strings.Repeat("-", w))
	}
	b.WriteString("\n")
	for _, row := range t.Rows {
		writeRow(row)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// money formats a decimal at 2-place presentation precision.
func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// percent formats a share of a total as a percentage rounded to 2 decimals.
// The rounding happens here, at presentation time only.
func percent(part, total decimal.Decimal) string {
	if total.IsZero() {
		return NullCell
	}
	return part.Mul(decimal.NewFromInt(100)).Div(total).StringFixed(2)
}

// ratio formats part/total at 2-place presentation precision, NullCell when
// the denominator is an empty group.
func ratio(part decimal.Decimal, total int64) string {
	if total == 0 {
		return NullCell
	}
	return part.Div(decimal.NewFromInt(total)).StringFixed(2)
}
