package report

import (
	"fmt"
	"sort"
	"sync"

	"github.com/beanlake/posmart/internal/mart"
)

// Input is the read-only data every metric computes over. Metrics never
// mutate it and never depend on another metric's output, so they can run in
// any order.
type Input struct {
	Facts    *mart.FactSet
	Orders   []mart.Order
	Stores   []mart.Store
	Products []mart.Product
}

// Metric is one independently invocable aggregate computation.
type Metric interface {
	// Name returns the metric identifier used on the command line.
	Name() string

	// Description returns a human-readable description.
	Description() string

	// Compute runs the metric over the input and returns its table.
	Compute(in Input) (*Table, error)
}

var (
	registry = make(map[string]Metric)
	mu       sync.RWMutex
)

// Register adds a metric to the registry.
func Register(m Metric) {
	mu.Lock()
	defer mu.Unlock()
	registry[m.Name()] = m
}

// Get retrieves a metric by name.
func Get(name string) (Metric, error) {
	mu.RLock()
	defer mu.RUnlock()

	m, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown metric: %s", name)
	}
	return m, nil
}

// List returns all registered metric names, sorted.
func List() []string {
	mu.RLock()
	defer mu.RUnlock()

	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// All returns all registered metrics in name order.
func All() []Metric {
	metrics := make([]Metric, 0)
	for _, name := range List() {
		m, _ := Get(name)
		metrics = append(metrics, m)
	}
	return metrics
}
