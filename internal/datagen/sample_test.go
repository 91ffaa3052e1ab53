//-------------------------------------------------------------------------
//
// posmart - Point-of-Sale Analytics Mart
//
// Copyright (c) 2025 - 2026, Beanlake Labs
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package datagen_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/beanlake/posmart/internal/datagen"
	"github.com/beanlake/posmart/internal/ingest"
	"github.com/beanlake/posmart/internal/mart"
)

func generate(t *testing.T, rows int, seed uint64) string {
	t.Helper()

	cfg := datagen.DefaultSampleConfig(rows)
	cfg.Seed = seed

	var b bytes.Buffer
	if err := datagen.WriteSample(&b, cfg); err != nil {
		t.Fatalf("WriteSample failed: %v", err)
	}
	return b.String()
}

func TestSampleRoundTripsThroughPipeline(t *testing.T) {
	out := generate(t, 500, 42)

	records, err := ingest.Read(strings.NewReader(out))
	if err != nil {
		t.Fatalf("Generated output failed to read back: %v", err)
	}
	if len(records) != 500 {
		t.Fatalf("Expected 500 records, got %d", len(records))
	}

	// Every generated row must survive cleaning untouched.
	items, rep, err := mart.Clean(records, mart.CleanOptions{})
	if err != nil {
		t.Fatalf("Clean failed: %v", err)
	}
	if rep.RejectedCount() != 0 {
		t.Fatalf("Expected no rejects, got %d", rep.RejectedCount())
	}
	if len(items) != 500 {
		t.Fatalf("Expected 500 clean items, got %d", len(items))
	}

	// And the dimensions and facts must build: consistent dimension tuples,
	// unique transaction ids.
	stores, err := mart.BuildStoreDimension(items)
	if err != nil {
		t.Fatalf("Store dimension failed: %v", err)
	}
	products, err := mart.BuildProductDimension(items)
	if err != nil {
		t.Fatalf("Product dimension failed: %v", err)
	}
	if len(stores) != 3 {
		t.Errorf("Expected 3 stores, got %d", len(stores))
	}
	facts, err := mart.BuildFacts(items, stores, products)
	if err != nil {
		t.Fatalf("Facts failed: %v", err)
	}

	// Order groups share timestamps, so reconstruction must find fewer
	// orders than line items.
	orders := mart.ReconstructOrders(facts)
	if len(orders) == 0 || len(orders) >= facts.Len() {
		t.Errorf("Expected 0 < orders < %d, got %d", facts.Len(), len(orders))
	}
}

func TestSampleSequentialTransactionIDs(t *testing.T) {
	out := generate(t, 100, 7)

	records, err := ingest.Read(strings.NewReader(out))
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	items, _, err := mart.Clean(records, mart.CleanOptions{})
	if err != nil {
		t.Fatalf("Clean failed: %v", err)
	}
	for i, item := range items {
		if item.TransactionID != int64(i+1) {
			t.Fatalf("Row %d: expected transaction id %d, got %d",
				i, i+1, item.TransactionID)
		}
	}
}

func TestSampleDeterministicWithSeed(t *testing.T) {
	a := generate(t, 200, 99)
	b := generate(t, 200, 99)
	if a != b {
		t.Error("Same seed should produce identical output")
	}

	c := generate(t, 200, 100)
	if a == c {
		t.Error("Different seeds should produce different output")
	}
}

func TestSampleZeroRows(t *testing.T) {
	out := generate(t, 0, 1)

	// Header only.
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 1 {
		t.Errorf("Expected header only, got %d lines", len(lines))
	}
}

func TestSampleInvalidRows(t *testing.T) {
	cfg := datagen.DefaultSampleConfig(-1)
	var b bytes.Buffer
	if err := datagen.WriteSample(&b, cfg); err == nil {
		t.Error("Expected error for negative row count, got nil")
	}
}

func TestDemandProfile(t *testing.T) {
	p := datagen.DemandProfile{}

	tests := []struct {
		hour int
		min  float64
		max  float64
	}{
		{8, 1.0, 1.0},   // morning rush
		{13, 0.8, 0.8},  // lunch
		{18, 0.3, 0.3},  // evening
		{3, 0.0, 0.0},   // closed
		{23, 0.0, 0.0},  // closed
	}
	for _, tt := range tests {
		got := p.ActivityLevel(tt.hour, 1) // Monday
		if got < tt.min || got > tt.max {
			t.Errorf("Hour %d: expected [%v, %v], got %v", tt.hour, tt.min, tt.max, got)
		}
	}

	// Weekends trade lighter.
	weekday := p.ActivityLevel(8, 1) // Monday
	weekend := p.ActivityLevel(8, 6) // Saturday
	if weekend >= weekday {
		t.Errorf("Expected weekend < weekday at hour 8, got %v >= %v", weekend, weekday)
	}

	weights := p.HourWeights(1)
	if len(weights) != 24 {
		t.Fatalf("Expected 24 hour weights, got %d", len(weights))
	}
	if weights[8] != 100 || weights[3] != 0 {
		t.Errorf("Expected weights 100/0 for hours 8/3, got %d/%d", weights[8], weights[3])
	}
}
