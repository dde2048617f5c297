package stats

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/stat/distuv"
)

// PartialCorrelation returns the correlation of x and y once both are adjusted for z. With an
// empty z it is the Pearson correlation.
func PartialCorrelation(x, y []float64, z ...[]float64) (float64, error) {
	if len(z) == 0 {
		return Correlation(x, y)
	}

	rx, err := Residuals(x, z...)
	if err != nil {
		return 0, errors.Wrap(err, "unable to adjust x")
	}

	ry, err := Residuals(y, z...)
	if err != nil {
		return 0, errors.Wrap(err, "unable to adjust y")
	}

	return Correlation(rx, ry)
}

// CIResult is the outcome of a conditional independence test.
type CIResult struct {
	R      float64
	PValue float64
	Dof    int
	// Independent is true when independence cannot be rejected, that is PValue > alpha.
	Independent bool
	// Skipped is true when the sample was too small to run the test. A skipped test counts as
	// dependent.
	Skipped bool
}

// PartialCorrTest tests x ⊥ y | z with a partial correlation t-test at level alpha.
//
// With n samples and |z| conditioning variables the statistic r·sqrt(dof/(1-r²)), dof = n-|z|-2,
// follows a Student t distribution under independence. The p-value is two-sided. When
// n < |z|+3 the test is skipped and reported as dependent.
func PartialCorrTest(x, y []float64, z [][]float64, alpha float64) (CIResult, error) {
	n := len(x)
	if n < len(z)+3 {
		return CIResult{Skipped: true, Dof: n - len(z) - 2, PValue: math.NaN(), R: math.NaN()}, nil
	}

	r, err := PartialCorrelation(x, y, z...)
	if err != nil {
		return CIResult{R: math.NaN(), PValue: math.NaN()}, err
	}

	dof := n - len(z) - 2
	res := CIResult{R: r, Dof: dof, PValue: PValue(r, dof)}
	res.Independent = res.PValue > alpha

	return res, nil
}

// PValue is the two-sided p-value of a correlation r estimated with dof degrees of freedom.
func PValue(r float64, dof int) float64 {
	if 1-r*r <= 0 {
		return 0
	}

	t := r * math.Sqrt(float64(dof)/(1-r*r))
	dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: float64(dof)}

	return math.Min(1, 2*dist.Survival(math.Abs(t)))
}
