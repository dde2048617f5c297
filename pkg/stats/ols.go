package stats

import (
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// Fit is the result of an ordinary least squares regression.
type Fit struct {
	Intercept float64
	// Coefs holds one slope per regressor, in the order they were given.
	Coefs     []float64
	R2        float64
	Residuals []float64
}

// Predict evaluates the fitted line at one point.
func (f Fit) Predict(xs ...float64) float64 {
	res := f.Intercept
	for i, x := range xs {
		res += f.Coefs[i] * x
	}

	return res
}

// OLS regresses y on an intercept and the regressors xs.
func OLS(y []float64, xs ...[]float64) (Fit, error) {
	n, p := len(y), len(xs)+1

	for i, x := range xs {
		if len(x) != n {
			return Fit{}, errors.Wrapf(ErrLengthMismatch, "regressor %d has %d rows, expected %d", i, len(x), n)
		}
	}

	if n < p {
		return Fit{}, errors.Wrapf(ErrTooFewSamples, "%d rows for %d parameters", n, p)
	}

	design := mat.NewDense(n, p, nil)
	for i := range n {
		design.Set(i, 0, 1)

		for j, x := range xs {
			design.Set(i, j+1, x[i])
		}
	}

	var beta mat.VecDense
	if err := beta.SolveVec(design, mat.NewVecDense(n, append([]float64(nil), y...))); err != nil {
		return Fit{}, errors.Wrap(ErrSingular, err.Error())
	}

	fit := Fit{
		Intercept: beta.AtVec(0),
		Coefs:     make([]float64, len(xs)),
		Residuals: make([]float64, n),
	}

	for j := range xs {
		fit.Coefs[j] = beta.AtVec(j + 1)
	}

	mean := Mean(y)

	var ssRes, ssTot float64

	for i := range n {
		pred := fit.Intercept
		for j, x := range xs {
			pred += fit.Coefs[j] * x[i]
		}

		fit.Residuals[i] = y[i] - pred
		ssRes += fit.Residuals[i] * fit.Residuals[i]
		ssTot += (y[i] - mean) * (y[i] - mean)
	}

	if ssTot > 0 {
		fit.R2 = 1 - ssRes/ssTot
	}

	return fit, nil
}

// Residuals returns what is left of y once its linear dependence on xs is removed.
func Residuals(y []float64, xs ...[]float64) ([]float64, error) {
	fit, err := OLS(y, xs...)
	if err != nil {
		return nil, err
	}

	return fit.Residuals, nil
}
