//-------------------------------------------------------------------------
//
// posmart - Point-of-Sale Analytics Mart
//
// Copyright (c) 2025 - 2026, Beanlake Labs
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package mart

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// FieldNames lists the source fields in file order. Used by the validation
// report so missing-value counts come out in a stable order.
var FieldNames = []string{
	"transaction_id",
	"transaction_date",
	"transaction_time",
	"transaction_qty",
	"store_id",
	"store_location",
	"product_id",
	"unit_price",
	"product_category",
	"product_type",
	"product_detail",
}

// CleanOptions controls how the cleaner handles bad rows.
type CleanOptions struct {
	// AbortOnError stops at the first row that fails to parse instead of
	// collecting it into the report.
	AbortOnError bool
}

// RejectedRow identifies one rejected input row.
type RejectedRow struct {
	Line          int
	TransactionID string // raw value, may itself be malformed
	Errors        []*ParseError
}

// CleanReport summarizes a cleaning pass. It is always produced, even when
// the pipeline aborts, so a validation report can be printed regardless.
type CleanReport struct {
	TotalRows int
	Accepted  int
	Rejected  []RejectedRow

	// MissingByField counts blank values per source field across all rows,
	// accepted or not.
	MissingByField map[string]int
}

// RejectedCount returns the number of rejected rows.
func (r *CleanReport) RejectedCount() int {
	return len(r.Rejected)
}

// Clean casts, trims and validates raw records into typed line items.
// Input cardinality is preserved except for explicitly rejected rows, which
// are reported in the returned CleanReport rather than silently dropped.
// With AbortOnError set, the first bad row fails the stage; the report still
// covers everything seen up to that point.
func Clean(records []RawRecord, opts CleanOptions) ([]LineItem, *CleanReport, error) {
	items := make([]LineItem, 0, len(records))
	report := &CleanReport{MissingByField: make(map[string]int, len(FieldNames))}

	for _, rec := range records {
		report.TotalRows++
		countMissing(report, rec)

		item, errs := cleanRow(rec)
		if len(errs) > 0 {
			rejected := RejectedRow{
				Line:          rec.Line,
				TransactionID: strings.TrimSpace(rec.TransactionID),
				Errors:        errs,
			}
			report.Rejected = append(report.Rejected, rejected)
			if opts.AbortOnError {
				return nil, report, errs[0]
			}
			continue
		}
		report.Accepted++
		items = append(items, item)
	}

	return items, report, nil
}

func countMissing(report *CleanReport, rec RawRecord) {
	raw := []string{
		rec.TransactionID, rec.TransactionDate, rec.TransactionTime,
		rec.Quantity, rec.StoreID, rec.StoreLocation, rec.ProductID,
		rec.UnitPrice, rec.ProductCategory, rec.ProductType, rec.ProductDetail,
	}
	for i, v := range raw {
		if strings.TrimSpace(v) == "" {
			report.MissingByField[FieldNames[i]]++
		}
	}
}

func cleanRow(rec RawRecord) (LineItem, []*ParseError) {
	var item LineItem
	var errs []*ParseError

	fail := func(field, value, reason string) {
		errs = append(errs, &ParseError{
			Line:   rec.Line,
			Field:  field,
			Value:  value,
			Reason: reason,
		})
	}

	if v, err := strconv.ParseInt(strings.TrimSpace(rec.TransactionID), 10, 64); err != nil {
		fail("transaction_id", rec.TransactionID, "not an integer")
	} else {
		item.TransactionID = v
	}

	if v, err := time.ParseInLocation(DateFormat, strings.TrimSpace(rec.TransactionDate), time.UTC); err != nil {
		fail("transaction_date", rec.TransactionDate, "not a calendar date")
	} else {
		item.Date = v
	}

	if v, err := ParseTimeOfDay(strings.TrimSpace(rec.TransactionTime)); err != nil {
		fail("transaction_time", rec.TransactionTime, "not a time of day")
	} else {
		item.Time = v
	}

	if v, err := strconv.Atoi(strings.TrimSpace(rec.Quantity)); err != nil {
		fail("transaction_qty", rec.Quantity, "not an integer")
	} else if v <= 0 {
		fail("transaction_qty", rec.Quantity, "must be positive")
	} else {
		item.Quantity = v
	}

	if v, err := strconv.Atoi(strings.TrimSpace(rec.StoreID)); err != nil {
		fail("store_id", rec.StoreID, "not an integer")
	} else {
		item.StoreID = v
	}

	item.StoreLocation = strings.TrimSpace(rec.StoreLocation)
	if item.StoreLocation == "" {
		fail("store_location", rec.StoreLocation, "must not be blank")
	}

	if v, err := strconv.Atoi(strings.TrimSpace(rec.ProductID)); err != nil {
		fail("product_id", rec.ProductID, "not an integer")
	} else {
		item.ProductID = v
	}

	if v, err := parsePrice(strings.TrimSpace(rec.UnitPrice)); err != nil {
		fail("unit_price", rec.UnitPrice, err.Error())
	} else {
		item.UnitPrice = v
	}

	item.Category = strings.TrimSpace(rec.ProductCategory)
	item.ProductType = strings.TrimSpace(rec.ProductType)
	item.Detail = strings.TrimSpace(rec.ProductDetail)

	return item, errs
}

// parsePrice validates a non-negative decimal with at most 2 fractional
// digits. Prices never get rounded during cleaning: a value with more
// precision than the source format allows is rejected, not truncated.
func parsePrice(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, errNotDecimal
	}
	if d.IsNegative() {
		return decimal.Decimal{}, errNegativePrice
	}
	if !d.Round(2).Equal(d) {
		return decimal.Decimal{}, errTooPrecise
	}
	// Trailing zeroes beyond 2 places ("3.500") are harmless; normalize them.
	if d.Exponent() < -2 {
		d = d.Round(2)
	}
	return d, nil
}

type priceError string

func (e priceError) Error() string { return string(e) }

const (
	errNotDecimal    = priceError("not a decimal number")
	errNegativePrice = priceError("must be non-negative")
	errTooPrecise    = priceError("more than 2 fractional digits")
)
