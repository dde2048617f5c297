package stats_test

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askiada/go-causality/pkg/stats"
)

func TestDescribe(t *testing.T) {
	s, err := stats.Describe([]float64{5, 1, 4, 2, 3})
	require.NoError(t, err)

	assert.Equal(t, 5, s.N)
	assert.InDelta(t, 3, s.Mean, 1e-12)
	assert.InDelta(t, math.Sqrt(2.5), s.StdDev, 1e-12)
	assert.Equal(t, []float64{1, 2, 3, 4, 5}, []float64{s.Min, s.Q25, s.Median, s.Q75, s.Max})

	_, err = stats.Describe(nil)
	assert.ErrorIs(t, err, stats.ErrTooFewSamples)
}

func TestCorrelation(t *testing.T) {
	r, err := stats.Correlation([]float64{1, 2, 3}, []float64{-2, -4, -6})
	require.NoError(t, err)
	assert.InDelta(t, -1, r, 1e-12)

	_, err = stats.Correlation([]float64{1, 2}, []float64{1})
	assert.ErrorIs(t, err, stats.ErrLengthMismatch)

	_, err = stats.Correlation([]float64{1, 1, 1}, []float64{1, 2, 3})
	assert.ErrorIs(t, err, stats.ErrDegenerate)
}

func TestOLS(t *testing.T) {
	x := []float64{0, 1, 2, 3, 4}
	z := []float64{1, 0, 1, 0, 1}
	y := make([]float64, len(x))

	for i := range x {
		y[i] = 1 + 2*x[i] - 3*z[i]
	}

	fit, err := stats.OLS(y, x, z)
	require.NoError(t, err)

	assert.InDelta(t, 1, fit.Intercept, 1e-9)
	assert.InDelta(t, 2, fit.Coefs[0], 1e-9)
	assert.InDelta(t, -3, fit.Coefs[1], 1e-9)
	assert.InDelta(t, 1, fit.R2, 1e-9)
	assert.InDelta(t, 6, fit.Predict(4, 1), 1e-9)

	for _, r := range fit.Residuals {
		assert.InDelta(t, 0, r, 1e-9)
	}
}

func TestOLSErrors(t *testing.T) {
	x := []float64{1, 2, 3, 4}

	_, err := stats.OLS([]float64{1, 2, 3, 4}, []float64{0, 0, 0, 0})
	assert.ErrorIs(t, err, stats.ErrSingular)

	_, err = stats.OLS([]float64{1, 2, 3}, x)
	assert.ErrorIs(t, err, stats.ErrLengthMismatch)

	_, err = stats.OLS([]float64{1}, []float64{1})
	assert.ErrorIs(t, err, stats.ErrTooFewSamples)
}

func TestPValue(t *testing.T) {
	assert.InDelta(t, 1, stats.PValue(0, 10), 1e-12)
	assert.InDelta(t, 0, stats.PValue(1, 10), 1e-12)
	assert.InDelta(t, 0.09785, stats.PValue(0.5, 10), 1e-4)
	assert.InDelta(t, stats.PValue(0.5, 10), stats.PValue(-0.5, 10), 1e-12)
}

func TestPartialCorrTest(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	n := 2000

	z := make([]float64, n)
	x := make([]float64, n)
	y := make([]float64, n)

	for i := range n {
		z[i] = rng.NormFloat64()
		x[i] = 2*z[i] + rng.NormFloat64()
		y[i] = -z[i] + rng.NormFloat64()
	}

	marginal, err := stats.PartialCorrTest(x, y, nil, 0.05)
	require.NoError(t, err)
	assert.False(t, marginal.Independent)
	assert.Less(t, marginal.PValue, 1e-6)
	assert.Equal(t, n-2, marginal.Dof)

	conditional, err := stats.PartialCorrTest(x, y, [][]float64{z}, 0.05)
	require.NoError(t, err)
	assert.Equal(t, n-3, conditional.Dof)
	assert.Less(t, math.Abs(conditional.R), 0.1)
}

func TestPartialCorrTestSkipped(t *testing.T) {
	res, err := stats.PartialCorrTest([]float64{1, 2, 3}, []float64{3, 1, 2}, [][]float64{{1, 1, 2}}, 0.05)
	require.NoError(t, err)

	assert.True(t, res.Skipped)
	assert.False(t, res.Independent)
}

func TestHistogram(t *testing.T) {
	h, err := stats.Histogram([]float64{4, 0, 3, 1, 2}, 2)
	require.NoError(t, err)

	assert.Equal(t, []float64{2, 3}, h.Counts)
	assert.Len(t, h.Edges, 3)
	assert.InDelta(t, 2, h.Edges[1], 1e-12)

	flat, err := stats.Histogram([]float64{7, 7}, 4)
	require.NoError(t, err)
	assert.InDelta(t, 2, flat.Counts[0]+flat.Counts[1]+flat.Counts[2]+flat.Counts[3], 1e-12)

	_, err = stats.Histogram(nil, 3)
	assert.ErrorIs(t, err, stats.ErrTooFewSamples)
}

func TestResidualDependence(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 4))
	n := 5000

	x := make([]float64, n)
	indep := make([]float64, n)
	dep := make([]float64, n)

	for i := range n {
		x[i] = rng.Float64()*4 - 2
		indep[i] = rng.NormFloat64()
		dep[i] = x[i]*x[i] + 0.1*rng.NormFloat64()
	}

	low, err := stats.ResidualDependence(x, indep)
	require.NoError(t, err)
	assert.Less(t, low, 0.1)

	high, err := stats.ResidualDependence(x, dep)
	require.NoError(t, err)
	assert.Greater(t, high, 0.9)
}
