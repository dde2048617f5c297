package stats

import (
	"math"

	"github.com/pkg/errors"
)

// ResidualDependence scores how much a regression residual still depends on the regressor.
//
// OLS residuals are uncorrelated with the regressor by construction, so the score looks at
// nonlinear moments: it is the largest absolute correlation among (x, r), (x², r), (x, r²) and
// (x², r²), computed on centered values. It stays near zero when the residual is independent of
// the cause, and grows when regressing in the anti-causal direction with non-Gaussian noise.
func ResidualDependence(cause, residual []float64) (float64, error) {
	if len(cause) != len(residual) {
		return 0, errors.Wrapf(ErrLengthMismatch, "%d and %d", len(cause), len(residual))
	}

	x := center(cause)
	r := center(residual)
	x2 := center(square(x))
	r2 := center(square(r))

	best := 0.0

	for _, pair := range [][2][]float64{{x, r}, {x2, r}, {x, r2}, {x2, r2}} {
		c, err := Correlation(pair[0], pair[1])
		if err != nil {
			return 0, err
		}

		best = math.Max(best, math.Abs(c))
	}

	return best, nil
}

func center(xs []float64) []float64 {
	m := Mean(xs)
	res := make([]float64, len(xs))

	for i, x := range xs {
		res[i] = x - m
	}

	return res
}

func square(xs []float64) []float64 {
	res := make([]float64, len(xs))
	for i, x := range xs {
		res[i] = x * x
	}

	return res
}
