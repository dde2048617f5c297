package stats

import (
	"math"
	"sort"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Mean returns the arithmetic mean of xs, NaN when xs is empty.
func Mean(xs []float64) float64 {
	if len(xs) == 0 {
		return math.NaN()
	}

	return stat.Mean(xs, nil)
}

// StdDev returns the unbiased sample standard deviation of xs.
func StdDev(xs []float64) float64 {
	if len(xs) < 2 {
		return math.NaN()
	}

	return stat.StdDev(xs, nil)
}

// Correlation returns the Pearson correlation of x and y.
func Correlation(x, y []float64) (float64, error) {
	if len(x) != len(y) {
		return 0, errors.Wrapf(ErrLengthMismatch, "%d and %d", len(x), len(y))
	}

	if len(x) < 2 {
		return 0, errors.Wrapf(ErrTooFewSamples, "%d", len(x))
	}

	r := stat.Correlation(x, y, nil)
	if math.IsNaN(r) {
		return 0, ErrDegenerate
	}

	return r, nil
}

// Summary describes a sample.
type Summary struct {
	N      int
	Mean   float64
	StdDev float64
	Min    float64
	Q25    float64
	Median float64
	Q75    float64
	Max    float64
}

// Describe summarises xs.
func Describe(xs []float64) (Summary, error) {
	if len(xs) == 0 {
		return Summary{}, errors.Wrap(ErrTooFewSamples, "empty sample")
	}

	sorted := append([]float64(nil), xs...)
	sort.Float64s(sorted)

	return Summary{
		N:      len(xs),
		Mean:   stat.Mean(xs, nil),
		StdDev: StdDev(xs),
		Min:    sorted[0],
		Q25:    stat.Quantile(0.25, stat.Empirical, sorted, nil),
		Median: stat.Quantile(0.5, stat.Empirical, sorted, nil),
		Q75:    stat.Quantile(0.75, stat.Empirical, sorted, nil),
		Max:    sorted[len(sorted)-1],
	}, nil
}

// Hist is a histogram. Edges has one more element than Counts; bin i covers
// [Edges[i], Edges[i+1]).
type Hist struct {
	Edges  []float64
	Counts []float64
}

// Histogram bins xs into bins equal width bins spanning the sample range.
func Histogram(xs []float64, bins int) (Hist, error) {
	if bins < 1 {
		return Hist{}, errors.Errorf("stats: invalid bin count %d", bins)
	}

	if len(xs) == 0 {
		return Hist{}, errors.Wrap(ErrTooFewSamples, "empty sample")
	}

	sorted := append([]float64(nil), xs...)
	sort.Float64s(sorted)

	lo, hi := sorted[0], sorted[len(sorted)-1]
	if lo == hi {
		lo, hi = lo-0.5, hi+0.5
	}

	edges := floats.Span(make([]float64, bins+1), lo, hi)
	// the top divider is exclusive.
	edges[bins] = math.Nextafter(hi, math.Inf(1))

	return Hist{Edges: edges, Counts: stat.Histogram(nil, edges, sorted, nil)}, nil
}
