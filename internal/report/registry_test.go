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
	"sort"
	"testing"

	"github.com/beanlake/posmart/internal/report"
)

var knownMetrics = []string{
	"totals",
	"averages",
	"stores",
	"categories",
	"top-products",
	"top-products-per-store",
	"monthly",
	"weekdays",
	"hourly",
	"hourly-average",
	"store-hours",
	"baskets",
}

func TestGet(t *testing.T) {
	for _, name := range knownMetrics {
		t.Run(name, func(t *testing.T) {
			m, err := report.Get(name)
			if err != nil {
				t.Fatalf("Failed to get metric '%s': %v", name, err)
			}
			if m == nil {
				t.Fatalf("Get('%s') returned nil", name)
			}
			if m.Name() != name {
				t.Errorf("Metric name mismatch: expected '%s', got '%s'", name, m.Name())
			}
			if m.Description() == "" {
				t.Error("Metric description should not be empty")
			}
		})
	}
}

func TestGetInvalidMetric(t *testing.T) {
	_, err := report.Get("nonexistent")
	if err == nil {
		t.Error("Expected error for nonexistent metric, got nil")
	}
}

func TestGetEmptyName(t *testing.T) {
	_, err := report.Get("")
	if err == nil {
		t.Error("Expected error for empty metric name, got nil")
	}
}

func TestList(t *testing.T) {
	names := report.List()

	if len(names) != len(knownMetrics) {
		t.Errorf("Expected %d metrics, got %d: %v", len(knownMetrics), len(names), names)
	}
	if !sort.StringsAreSorted(names) {
		t.Errorf("List should be sorted, got %v", names)
	}
	for _, expected := range knownMetrics {
		found := false
		for _, n := range names {
			if n == expected {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("Expected metric '%s' not found in List()", expected)
		}
	}
}

func TestAll(t *testing.T) {
	metrics := report.All()
	if len(metrics) != len(report.List()) {
		t.Errorf("All() and List() disagree: %d vs %d", len(metrics), len(report.List()))
	}
	for _, m := range metrics {
		if m.Name() == "" {
			t.Error("Name() should not be empty")
		}
	}
}

func BenchmarkGet(b *testing.B) {
	for i := 0; i < b.N; i++ {
		report.Get("totals")
	}
}
