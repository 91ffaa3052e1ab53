//-------------------------------------------------------------------------
//
// posmart - Point-of-Sale Analytics Mart
//
// Copyright (c) 2025 - 2026, Beanlake Labs
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package mart implements the transformation core of posmart: cleaning raw
// point-of-sale records into typed line items, deriving the store and product
// dimensions, building the immutable line-level fact set, and reconstructing
// order-level aggregates from it.
package mart

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// RawRecord is one untyped line-level record as read from the source file.
// All fields are raw strings; no validation has happened yet.
type RawRecord struct {
	// Line is the 1-based line number in the source file, header included.
	Line int

	TransactionID   string
	TransactionDate string
	TransactionTime string
	Quantity        string
	StoreID         string
	StoreLocation   string
	ProductID       string
	UnitPrice       string
	ProductCategory string
	ProductType     string
	ProductDetail   string
}

// TimeOfDay is a clock time with second resolution, stored as seconds after
// midnight (0 .. 86399).
type TimeOfDay int

// TimeFormat is the clock-time layout used by the source files.
const TimeFormat = "15:04:05"

// ParseTimeOfDay parses a "HH:MM:SS" clock time. The whole string must be
// consumed; anything after the seconds field is an error, not truncated.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	t, err := time.Parse(TimeFormat, s)
	if err != nil {
		return 0, fmt.Errorf("invalid time %q", s)
	}
	return TimeOfDay(t.Hour()*3600 + t.Minute()*60 + t.Second()), nil
}

// Hour returns the hour-of-day component (0-23).
func (t TimeOfDay) Hour() int {
	return int(t) / 3600
}

// String formats the time as "HH:MM:SS".
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", int(t)/3600, int(t)%3600/60, int(t)%60)
}

// DateFormat is the calendar date layout used by the source files.
const DateFormat = "2006-01-02"

// LineItem is one cleaned, well-typed line-level record: one product sold
// within one transaction.
type LineItem struct {
	TransactionID int64
	Date          time.Time // calendar day, midnight UTC
	Time          TimeOfDay
	StoreID       int
	StoreLocation string
	ProductID     int
	Quantity      int
	UnitPrice     decimal.Decimal
	Category      string
	ProductType   string
	Detail        string
}

// Store is one row of the store dimension.
type Store struct {
	ID       int
	Location string
}

// Product is one row of the product dimension.
type Product struct {
	ID          int
	Category    string
	ProductType string
	Detail      string
}

// Fact is one row of the line-level fact set. Revenue is computed once at
// build time and never re-derived downstream.
type Fact struct {
	TransactionID int64
	Date          time.Time
	Time          TimeOfDay
	StoreID       int
	ProductID     int
	Quantity      int
	UnitPrice     decimal.Decimal
	Revenue       decimal.Decimal
}

// FactSet is the canonical, immutable line-level fact set. Facts are ordered
// by transaction id and indexed by it; the set is created once by BuildFacts
// and only ever queried afterwards.
type FactSet struct {
	facts []Fact
	byTx  map[int64]int
}

// Len returns the number of facts in the set.
func (s *FactSet) Len() int {
	return len(s.facts)
}

// At returns the fact at position i.
func (s *FactSet) At(i int) Fact {
	return s.facts[i]
}

// Lookup returns the fact with the given transaction id.
func (s *FactSet) Lookup(transactionID int64) (Fact, bool) {
	i, ok := s.byTx[transactionID]
	if !ok {
		return Fact{}, false
	}
	return s.facts[i], true
}

// Facts returns a copy of the fact slice.
func (s *FactSet) Facts() []Fact {
	out := make([]Fact, len(s.facts))
	copy(out, s.facts)
	return out
}

// NewFactSet assembles a fact set from already-built facts, e.g. rows read
// back from the warehouse. Transaction ids must be unique.
func NewFactSet(facts []Fact) (*FactSet, error) {
	seen := make(map[int64]bool, len(facts))
	var dups []int64
	for _, f := range facts {
		if seen[f.TransactionID] {
			dups = append(dups, f.TransactionID)
		}
		seen[f.TransactionID] = true
	}
	if len(dups) > 0 {
		sort.Slice(dups, func(i, j int) bool { return dups[i] < dups[j] })
		return nil, &UniquenessError{Column: "transaction_id", Keys: dups}
	}
	return newFactSet(facts), nil
}

func newFactSet(facts []Fact) *FactSet {
	// The set owns its own copy; the caller's slice is never reordered.
	owned := make([]Fact, len(facts))
	copy(owned, facts)
	sort.Slice(owned, func(i, j int) bool {
		return owned[i].TransactionID < owned[j].TransactionID
	})
	byTx := make(map[int64]int, len(owned))
	for i, f := range owned {
		byTx[f.TransactionID] = i
	}
	return &FactSet{facts: owned, byTx: byTx}
}

// Order is one reconstructed order: all line items sharing the same
// (date, time, store) composite key.
type Order struct {
	Date    time.Time
	Time    TimeOfDay
	StoreID int
	Revenue decimal.Decimal
	Units   int
	Lines   int
}
