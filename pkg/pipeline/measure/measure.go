package measure

import (
	"sort"
	"sync"
)

// DefaultMeasure is an in-memory Measure safe for concurrent use.
type DefaultMeasure struct {
	mu    sync.RWMutex
	steps map[string]Metric
	order []string
}

// NewDefaultMeasure creates an empty measure.
func NewDefaultMeasure() *DefaultMeasure {
	return &DefaultMeasure{
		steps: make(map[string]Metric),
	}
}

// AddMetric registers a step. Registering a name twice returns the existing metric.
func (m *DefaultMeasure) AddMetric(name string, concurrent int) Metric {
	m.mu.Lock()
	defer m.mu.Unlock()

	if mt, ok := m.steps[name]; ok {
		return mt
	}

	mt := &DefaultMetric{
		allTransports: make(map[string]*transportInfo),
		concurrent:    concurrent,
	}
	m.steps[name] = mt
	m.order = append(m.order, name)

	return mt
}

// GetMetric returns the metric of a step, nil when the step is unknown.
func (m *DefaultMeasure) GetMetric(name string) Metric {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.steps[name]
}

// AllMetrics returns every metric keyed by step name.
func (m *DefaultMeasure) AllMetrics() map[string]Metric {
	m.mu.RLock()
	defer m.mu.RUnlock()

	res := make(map[string]Metric, len(m.steps))
	for k, v := range m.steps {
		res[k] = v
	}

	return res
}

// Names returns the step names in registration order.
func (m *DefaultMeasure) Names() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return append([]string(nil), m.order...)
}

// SortedNames returns the step names alphabetically.
func (m *DefaultMeasure) SortedNames() []string {
	names := m.Names()
	sort.Strings(names)

	return names
}

var _ Measure = (*DefaultMeasure)(nil)
