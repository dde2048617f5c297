package discovery

import (
	"context"
	"io"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/askiada/go-causality/pkg/cgraph"
	"github.com/askiada/go-causality/pkg/dataset"
	"github.com/askiada/go-causality/pkg/logger"
	"github.com/askiada/go-causality/pkg/pipeline"
	"github.com/askiada/go-causality/pkg/pipeline/drawer"
	"github.com/askiada/go-causality/pkg/pipeline/measure"
	"github.com/askiada/go-causality/pkg/pipeline/model"
	"github.com/askiada/go-causality/pkg/scm"
)

// Regimes a replicate samples from.
const (
	Observational  = "observational"
	Interventional = "interventional"
)

// SweepConfig describes a replicate study: Replicates runs of PC on Samples rows drawn from
// Model, and from Model under Shift when it is set.
type SweepConfig struct {
	Model      *scm.Model
	Shift      *scm.Intervention
	Replicates int
	Samples    int
	Alpha      float64
	Seed       uint64
	// Concurrency is the number of PC runs in flight.
	Concurrency int
	// Options are passed to every PC run.
	Options []Option
	// PipelineOptions observe the sweep pipeline, for example metrics.Collectors.PipelineSteps.
	PipelineOptions []model.PipelineOption
	// Graph receives the DOT rendering of the sweep pipeline when set.
	Graph io.Writer
}

// Replicate is one PC run of a sweep.
type Replicate struct {
	ID     string
	Index  int
	Seed   uint64
	Regime string
	Result *Result
	Score  Score
}

// SweepReport aggregates a sweep.
type SweepReport struct {
	Replicates []Replicate
	// Mean is keyed by regime.
	Mean map[string]MeanScore
	// StepDurations is the mean computation time of every pipeline step.
	StepDurations map[string]time.Duration
	Duration      time.Duration
}

type sample struct {
	index  int
	seed   uint64
	regime string
	data   *dataset.Dataset
	truth  *cgraph.Mixed
}

type discovered struct {
	sample
	result *Result
}

// Sweep runs the replicate study as a pipeline: seeds, sample (one dataset per regime),
// discover, then score.
func Sweep(ctx context.Context, cfg SweepConfig) (*SweepReport, error) {
	if cfg.Model == nil {
		return nil, ErrModelMustBeSet
	}

	if cfg.Replicates < 1 {
		return nil, errors.Wrapf(ErrInvalidReplicates, "got %d", cfg.Replicates)
	}

	regimes, err := sweepRegimes(cfg)
	if err != nil {
		return nil, err
	}

	m := measure.NewDefaultMeasure()
	opts := append([]model.PipelineOption{measure.PipelineMeasure(m)}, cfg.PipelineOptions...)

	if cfg.Graph != nil {
		opts = append(opts, drawer.PipelineDrawer(drawer.NewDOTDrawer(cfg.Graph), m))
	}

	pipe, err := pipeline.New(ctx, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "unable to create sweep pipeline")
	}

	seeds, err := pipeline.AddRootStep(pipe, "seeds", func(ctx context.Context, out chan<- int) error {
		for i := range cfg.Replicates {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case out <- i:
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	samples, err := pipeline.AddStepOneToMany(pipe, "sample", seeds, func(_ context.Context, idx int) ([]sample, error) {
		seed := cfg.Seed + uint64(idx) //nolint: gosec // idx is a small positive counter
		res := make([]sample, 0, len(regimes))

		for i, r := range regimes {
			data, err := r.model.Sample(scm.NewRand(seed+uint64(i)<<32), cfg.Samples) //nolint: gosec
			if err != nil {
				return nil, errors.Wrapf(err, "replicate %d %s", idx, r.name)
			}

			res = append(res, sample{index: idx, seed: seed, regime: r.name, data: data, truth: r.truth})
		}

		return res, nil
	})
	if err != nil {
		return nil, err
	}

	results, err := pipeline.AddStepOneToOne(pipe, "discover", samples, func(ctx context.Context, s sample) (discovered, error) {
		res, err := Discover(ctx, s.data, cfg.Alpha, cfg.Options...)
		if err != nil {
			return discovered{}, errors.Wrapf(err, "replicate %d %s", s.index, s.regime)
		}

		return discovered{sample: s, result: res}, nil
	}, pipeline.StepConcurrency[discovered](cfg.Concurrency))
	if err != nil {
		return nil, err
	}

	report := &SweepReport{Mean: make(map[string]MeanScore)}

	err = pipeline.AddSink(pipe, "score", results, func(ctx context.Context, d discovered) error {
		rep := Replicate{
			ID:     uuid.NewString(),
			Index:  d.index,
			Seed:   d.seed,
			Regime: d.regime,
			Result: d.result,
			Score:  Compare(d.truth, d.result.CPDAG),
		}

		logger.Debug(ctx, "replicate scored",
			zap.String("id", rep.ID),
			zap.Int("index", rep.Index),
			zap.String("regime", rep.Regime),
			zap.Int("shd", rep.Score.SHD),
		)

		report.Replicates = append(report.Replicates, rep)

		return nil
	})
	if err != nil {
		return nil, err
	}

	start := time.Now()

	if err := pipe.Run(); err != nil {
		return nil, errors.Wrap(err, "sweep failed")
	}

	report.Duration = time.Since(start)

	sort.Slice(report.Replicates, func(i, j int) bool {
		a, b := report.Replicates[i], report.Replicates[j]
		if a.Index != b.Index {
			return a.Index < b.Index
		}

		return a.Regime < b.Regime
	})

	byRegime := make(map[string][]Score)
	for _, rep := range report.Replicates {
		byRegime[rep.Regime] = append(byRegime[rep.Regime], rep.Score)
	}

	for regime, scores := range byRegime {
		report.Mean[regime] = Mean(scores...)
	}

	report.StepDurations = make(map[string]time.Duration)
	for _, name := range m.Names() {
		if mt := m.GetMetric(name); mt.Count() > 0 {
			report.StepDurations[name] = mt.AVGDuration()
		}
	}

	return report, nil
}

type regime struct {
	name  string
	model *scm.Model
	truth *cgraph.Mixed
}

func sweepRegimes(cfg SweepConfig) ([]regime, error) {
	res := []regime{{name: Observational, model: cfg.Model, truth: cgraph.CPDAG(cfg.Model.DAG())}}

	if cfg.Shift == nil {
		return res, nil
	}

	shifted, err := cfg.Model.Intervene(*cfg.Shift)
	if err != nil {
		return nil, errors.Wrap(err, "unable to apply shift")
	}

	return append(res, regime{name: Interventional, model: shifted, truth: cgraph.CPDAG(shifted.DAG())}), nil
}
