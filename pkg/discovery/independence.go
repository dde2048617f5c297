package discovery

import (
	"context"

	"github.com/pkg/errors"

	"github.com/askiada/go-causality/pkg/cgraph"
	"github.com/askiada/go-causality/pkg/dataset"
	"github.com/askiada/go-causality/pkg/stats"
)

// TestResult is the answer to x ⊥ y | z.
type TestResult struct {
	// PValue of the test. The oracle answers 1 for independent and 0 for dependent.
	PValue float64
	// Alpha is the significance level the p-value was compared to, 0 for the oracle.
	Alpha float64
	// Independent is true when independence could not be rejected.
	Independent bool
	// Skipped is true when the test could not run. It then counts as dependent.
	Skipped bool
	// N is the number of samples behind the test.
	N int
}

//go:generate mockgen -package mockdiscovery -source=independence.go -destination=mock/mockdiscovery.go

// IndependenceTest answers conditional independence queries.
type IndependenceTest interface {
	// Name identifies the kind of test in metrics and logs.
	Name() string
	Test(ctx context.Context, x, y string, z []string) (TestResult, error)
}

// PartialCorrelation tests independence on Data with a partial correlation t-test at level Alpha.
type PartialCorrelation struct {
	Data  *dataset.Dataset
	Alpha float64
}

func (pc PartialCorrelation) Name() string { return "partial-correlation" }

func (pc PartialCorrelation) Test(_ context.Context, x, y string, z []string) (TestResult, error) {
	res := TestResult{Alpha: pc.Alpha, N: pc.Data.Len()}

	xs, err := pc.Data.Column(x)
	if err != nil {
		return res, err
	}

	ys, err := pc.Data.Column(y)
	if err != nil {
		return res, err
	}

	zs := make([][]float64, 0, len(z))

	for _, name := range z {
		col, err := pc.Data.Column(name)
		if err != nil {
			return res, err
		}

		zs = append(zs, col)
	}

	ci, err := stats.PartialCorrTest(xs, ys, zs, pc.Alpha)
	if err != nil {
		return res, errors.Wrapf(err, "%s _||_ %s", x, y)
	}

	res.PValue = ci.PValue
	res.Independent = ci.Independent
	res.Skipped = ci.Skipped

	return res, nil
}

// Oracle answers with d-separation in DAG. Hidden nodes of the DAG take part in the paths but
// are never queried.
type Oracle struct {
	DAG *cgraph.DAG
}

func (o Oracle) Name() string { return "oracle" }

func (o Oracle) Test(_ context.Context, x, y string, z []string) (TestResult, error) {
	sep, err := o.DAG.DSeparated(x, y, z)
	if err != nil {
		return TestResult{}, err
	}

	res := TestResult{Independent: sep}
	if sep {
		res.PValue = 1
	}

	return res, nil
}

var (
	_ IndependenceTest = PartialCorrelation{}
	_ IndependenceTest = Oracle{}
)
