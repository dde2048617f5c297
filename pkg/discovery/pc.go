package discovery

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/askiada/go-causality/pkg/cgraph"
	"github.com/askiada/go-causality/pkg/dataset"
	"github.com/askiada/go-causality/pkg/logger"
)

// Result is everything a PC run produced.
type Result struct {
	Nodes     []string
	Skeleton  *cgraph.Mixed
	SepSets   SepSets
	Colliders []cgraph.VStructure
	// CPDAG is the skeleton with colliders and Meek orientations applied.
	CPDAG *cgraph.Mixed
	Trace Trace
	// Tests counts the independence tests that were run.
	Tests    int
	Duration time.Duration
}

// PC runs the PC algorithm over nodes with test.
func PC(ctx context.Context, nodes []string, test IndependenceTest, opts ...Option) (*Result, error) {
	start := time.Now()
	cfg := newConfig(opts...)

	ctx = logger.WithFields(ctx, zap.String("test", test.Name()))

	skel, err := FindSkeleton(ctx, nodes, test, opts...)
	if err != nil {
		return nil, err
	}

	cpdag, colliders, colliderTrace := OrientColliders(skel.Graph, skel.SepSets)
	meekTrace := ApplyMeekRules(cpdag)

	trace := make(Trace, 0, len(skel.Trace)+len(colliderTrace)+len(meekTrace))
	trace = append(trace, skel.Trace...)
	trace = append(trace, colliderTrace...)
	trace = append(trace, meekTrace...)

	res := &Result{
		Nodes:     append([]string(nil), nodes...),
		Skeleton:  skel.Graph,
		SepSets:   skel.SepSets,
		Colliders: colliders,
		CPDAG:     cpdag,
		Trace:     trace,
		Tests:     skel.Tests,
		Duration:  time.Since(start),
	}

	if cfg.collectors != nil {
		cfg.collectors.Discovery.WithLabelValues(test.Name()).Observe(res.Duration.Seconds())
	}

	logger.Debug(ctx, "pc done",
		zap.Int("tests", res.Tests),
		zap.Int("colliders", len(colliders)),
		zap.String("cpdag", cpdag.String()),
		zap.Duration("duration", res.Duration),
	)

	return res, nil
}

// Discover runs PC on every column of data with a partial correlation test at level alpha.
func Discover(ctx context.Context, data *dataset.Dataset, alpha float64, opts ...Option) (*Result, error) {
	return PC(ctx, data.Names(), PartialCorrelation{Data: data, Alpha: alpha}, opts...)
}
