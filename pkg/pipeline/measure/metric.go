package measure

import (
	"sync"
	"time"
)

type transportInfo struct {
	elapsed time.Duration
	total   int64
}

// DefaultMetric is an in-memory Metric safe for concurrent use.
type DefaultMetric struct {
	mu            sync.Mutex
	allTransports map[string]*transportInfo
	endDuration   time.Duration
	stepElapsed   time.Duration
	total         int64
	concurrent    int
}

// AddDuration records the computation time of one value.
func (mt *DefaultMetric) AddDuration(elapsed time.Duration) {
	mt.mu.Lock()
	defer mt.mu.Unlock()

	mt.total++
	mt.stepElapsed += elapsed
}

// SetTotalDuration records when the step finished, relative to the pipeline start.
func (mt *DefaultMetric) SetTotalDuration(endDuration time.Duration) {
	mt.mu.Lock()
	defer mt.mu.Unlock()

	mt.endDuration = endDuration
}

// GetTotalDuration returns what SetTotalDuration recorded.
func (mt *DefaultMetric) GetTotalDuration() time.Duration {
	mt.mu.Lock()
	defer mt.mu.Unlock()

	return mt.endDuration
}

// AddTransportDuration records how long the step waited on its input.
func (mt *DefaultMetric) AddTransportDuration(inputStepName string, elapsed time.Duration) {
	mt.mu.Lock()
	defer mt.mu.Unlock()

	if mt.allTransports[inputStepName] == nil {
		mt.allTransports[inputStepName] = &transportInfo{}
	}

	ch := mt.allTransports[inputStepName]
	ch.elapsed += elapsed
	ch.total++
}

// Count returns how many values were recorded.
func (mt *DefaultMetric) Count() int64 {
	mt.mu.Lock()
	defer mt.mu.Unlock()

	return mt.total
}

// AVGDuration is the mean computation time per value.
func (mt *DefaultMetric) AVGDuration() time.Duration {
	mt.mu.Lock()
	defer mt.mu.Unlock()

	if mt.total == 0 {
		return time.Duration(0)
	}

	return round(time.Duration(float64(mt.stepElapsed) / float64(mt.total)))
}

// AVGTransportDuration is the mean wait per value on each input, divided by the step
// concurrency.
func (mt *DefaultMetric) AVGTransportDuration() map[string]time.Duration {
	mt.mu.Lock()
	defer mt.mu.Unlock()

	concurrent := max(mt.concurrent, 1)
	res := make(map[string]time.Duration, len(mt.allTransports))

	for name, ch := range mt.allTransports {
		if ch.total == 0 {
			continue
		}

		res[name] = round(time.Duration(float64(ch.elapsed) / float64(ch.total) / float64(concurrent)))
	}

	return res
}

func round(d time.Duration) time.Duration {
	switch {
	case d > time.Hour:
		d = d.Round(time.Hour)
	case d > time.Minute:
		d = d.Round(time.Minute)
	case d > time.Second:
		d = d.Round(time.Second)
	case d > time.Millisecond:
		d = d.Round(time.Millisecond)
	case d > time.Microsecond:
		d = d.Round(time.Microsecond)
	}

	return d
}
