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
	"sort"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

type bucketAgg struct {
	revenue decimal.Decimal
	units   int64
	orders  int64
}

type monthlyMetric struct{}

func (monthlyMetric) Name() string { return "monthly" }

func (monthlyMetric) Description() string {
	return "Revenue, units and orders per calendar month"
}

func (monthlyMetric) Compute(in Input) (*Table, error) {
	aggs := make(map[string]*bucketAgg)
	bucket := func(d time.Time) *bucketAgg {
		key := d.Format("2006-01")
		a, ok := aggs[key]
		if !ok {
			a = &bucketAgg{}
			aggs[key] = a
		}
		return a
	}

	for i := 0; i < in.Facts.Len(); i++ {
		f := in.Facts.At(i)
		a := bucket(f.Date)
		a.revenue = a.revenue.Add(f.Revenue)
		a.units += int64(f.Quantity)
	}
	for _, o := range in.Orders {
		bucket(o.Date).orders++
	}

	keys := make([]string, 0, len(aggs))
	for k := range aggs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	t := &Table{
		Title:   "Monthly revenue",
		Columns: []string{"month", "revenue", "units", "orders"},
	}
	for _, k := range keys {
		a := aggs[k]
		t.AddRow(k, money(a.revenue), strconv.FormatInt(a.units, 10),
			strconv.FormatInt(a.orders, 10))
	}
	return t, nil
}

type weekdayMetric struct{}

func (weekdayMetric) Name() string { return "weekdays" }

func (weekdayMetric) Description() string {
	return "Revenue, units and orders per weekday with weekend classification"
}

// Weekend is Saturday and Sunday.
func isWeekend(d time.Weekday) bool {
	return d == time.Saturday || d == time.Sunday
}

func (weekdayMetric) Compute(in Input) (*Table, error) {
	var aggs [7]bucketAgg
	for i := 0; i < in.Facts.Len(); i++ {
		f := in.Facts.At(i)
		a := &aggs[int(f.Date.Weekday())]
		a.revenue = a.revenue.Add(f.Revenue)
		a.units += int64(f.Quantity)
	}
	for _, o := range in.Orders {
		aggs[int(o.Date.Weekday())].orders++
	}

	t := &Table{
		Title:   "Weekday revenue",
		Columns: []string{"weekday", "day_type", "revenue", "units", "orders"},
	}
	// Monday-first presentation order.
	for offset := 0; offset < 7; offset++ {
		wd := time.Weekday((offset + 1) % 7)
		a := aggs[int(wd)]
		dayType := "weekday"
		if isWeekend(wd) {
			dayType = "weekend"
		}
		t.AddRow(wd.String(), dayType, money(a.revenue),
			strconv.FormatInt(a.units, 10), strconv.FormatInt(a.orders, 10))
	}
	return t, nil
}

type hourlyMetric struct{}

func (hourlyMetric) Name() string { return "hourly" }

func (hourlyMetric) Description() string {
	return "Revenue, units and orders per hour of day"
}

func (hourlyMetric) Compute(in Input) (*Table, error) {
	var aggs [24]bucketAgg
	for i := 0; i < in.Facts.Len(); i++ {
		f := in.Facts.At(i)
		a := &aggs[f.Time.Hour()]
		a.revenue = a.revenue.Add(f.Revenue)
		a.units += int64(f.Quantity)
	}
	for _, o := range in.Orders {
		aggs[o.Time.Hour()].orders++
	}

	t := &Table{
		Title:   "Hourly revenue",
		Columns: []string{"hour", "revenue", "units", "orders"},
	}
	for h := 0; h < 24; h++ {
		a := aggs[h]
		t.AddRow(fmt.Sprintf("%02d", h), money(a.revenue),
			strconv.FormatInt(a.units, 10), strconv.FormatInt(a.orders, 10))
	}
	return t, nil
}

type hourlyAverageMetric struct{}

func (hourlyAverageMetric) Name() string { return "hourly-average" }

func (hourlyAverageMetric) Description() string {
	return "Average revenue and orders per hour across days, normalized per (date, hour)"
}

// Compute first aggregates per (date, hour) and then averages those values
// across the distinct dates carrying each hour. A single flat group-by hour
// would skew hours that appear on fewer days; the two-stage aggregation
// keeps every day's contribution equal.
func (hourlyAverageMetric) Compute(in Input) (*Table, error) {
	type dayHour struct {
		day  int64
		hour int
	}

	perDayHour := make(map[dayHour]*bucketAgg)
	bucket := func(day time.Time, hour int) *bucketAgg {
		k := dayHour{day: day.Unix(), hour: hour}
		a, ok := perDayHour[k]
		if !ok {
			a = &bucketAgg{}
			perDayHour[k] = a
		}
		return a
	}

	for i := 0; i < in.Facts.Len(); i++ {
		f := in.Facts.At(i)
		a := bucket(f.Date, f.Time.Hour())
		a.revenue = a.revenue.Add(f.Revenue)
		a.units += int64(f.Quantity)
	}
	for _, o := range in.Orders {
		bucket(o.Date, o.Time.Hour()).orders++
	}

	var revenueSum [24]decimal.Decimal
	var orderSum [24]int64
	var days [24]int64
	for k, a := range perDayHour {
		revenueSum[k.hour] = revenueSum[k.hour].Add(a.revenue)
		orderSum[k.hour] += a.orders
		days[k.hour]++
	}

	t := &Table{
		Title:   "Average hourly performance per day",
		Columns: []string{"hour", "days", "avg_revenue", "avg_orders"},
	}
	for h := 0; h < 24; h++ {
		t.AddRow(
			fmt.Sprintf("%02d", h),
			strconv.FormatInt(days[h], 10),
			ratio(revenueSum[h], days[h]),
			ratio(decimal.NewFromInt(orderSum[h]), days[h]),
		)
	}
	return t, nil
}

func init() {
	Register(monthlyMetric{})
	Register(weekdayMetric{})
	Register(hourlyMetric{})
	Register(hourlyAverageMetric{})
}
