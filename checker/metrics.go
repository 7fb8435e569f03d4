package checker

import (
	"fmt"
	"sort"
	"strings"
)

// Metric is a single named observability counter, adapted from the
// teacher's MetricsCollector (originally used to instrument a simulated
// actor system) to instead count checker-internal events: labels
// allocated, memoization hits, and worklist activity.
type Metric struct {
	Name        string
	Value       float64
	Description string
}

// Metrics tracks the counters a CheckSession accumulates over one or more
// Check calls.
type Metrics struct {
	counters map[string]*Metric
}

// NewMetrics constructs an empty counter set.
func NewMetrics() *Metrics {
	return &Metrics{counters: make(map[string]*Metric)}
}

func (ms *Metrics) counter(name, desc string) *Metric {
	if m, ok := ms.counters[name]; ok {
		return m
	}
	m := &Metric{Name: name, Description: desc}
	ms.counters[name] = m
	return m
}

func (ms *Metrics) inc(name, desc string) {
	ms.counter(name, desc).Value++
}

// Table renders the counters as a markdown table, sorted by name, in the
// same shape the teacher's GenerateMetricsTable produced.
func (ms *Metrics) Table() string {
	var sb strings.Builder
	sb.WriteString("| Metric | Value | Description |\n")
	sb.WriteString("|--------|-------|-------------|\n")

	names := make([]string, 0, len(ms.counters))
	for name := range ms.counters {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		m := ms.counters[name]
		sb.WriteString(fmt.Sprintf("| %s | %.0f | %s |\n", m.Name, m.Value, m.Description))
	}
	return sb.String()
}
