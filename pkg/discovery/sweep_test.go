package discovery_test

import (
	"bytes"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askiada/go-causality/pkg/discovery"
	"github.com/askiada/go-causality/pkg/metrics"
	"github.com/askiada/go-causality/pkg/pipeline/model"
	"github.com/askiada/go-causality/pkg/scm"
)

func TestSweep(t *testing.T) {
	t.Parallel()

	shift := scm.DiamondShift()
	collectors := metrics.New(prometheus.NewRegistry())
	graph := &bytes.Buffer{}

	report, err := discovery.Sweep(t.Context(), discovery.SweepConfig{
		Model:           scm.Diamond(),
		Shift:           &shift,
		Replicates:      3,
		Samples:         1000,
		Alpha:           0.05,
		Seed:            42,
		Concurrency:     2,
		Options:         []discovery.Option{discovery.WithMetrics(collectors)},
		PipelineOptions: []model.PipelineOption{collectors.PipelineSteps()},
		Graph:           graph,
	})
	require.NoError(t, err)

	require.Len(t, report.Replicates, 6)

	for i, rep := range report.Replicates {
		assert.Equal(t, i/2, rep.Index)
		assert.Equal(t, uint64(42+i/2), rep.Seed)
		assert.NotEmpty(t, rep.ID)
		assert.Len(t, rep.Result.Nodes, 4)
		assert.Equal(t, 4, rep.Score.TruePositives)
	}

	assert.Equal(t, discovery.Interventional, report.Replicates[0].Regime)
	assert.Equal(t, discovery.Observational, report.Replicates[1].Regime)

	require.Contains(t, report.Mean, discovery.Observational)
	require.Contains(t, report.Mean, discovery.Interventional)
	assert.Equal(t, 3, report.Mean[discovery.Observational].Runs)
	assert.InDelta(t, 1, report.Mean[discovery.Observational].Recall, 0)

	assert.Contains(t, report.StepDurations, "discover")
	assert.Contains(t, report.StepDurations, "score")
	assert.Positive(t, report.Duration)

	assert.Contains(t, graph.String(), `"sample" -> "discover"`)
	assert.Equal(t, 3, testutil.CollectAndCount(collectors.Steps), "sample, discover and score are observed")
	assert.Equal(t, 1, testutil.CollectAndCount(collectors.Discovery))
}

func TestSweepErrors(t *testing.T) {
	t.Parallel()

	_, err := discovery.Sweep(t.Context(), discovery.SweepConfig{Replicates: 1, Samples: 10})
	require.ErrorIs(t, err, discovery.ErrModelMustBeSet)

	_, err = discovery.Sweep(t.Context(), discovery.SweepConfig{Model: scm.Diamond(), Samples: 10})
	require.ErrorIs(t, err, discovery.ErrInvalidReplicates)

	bad := scm.Hard("Q", 1)
	_, err = discovery.Sweep(t.Context(), discovery.SweepConfig{Model: scm.Diamond(), Shift: &bad, Replicates: 1, Samples: 10})
	require.ErrorIs(t, err, scm.ErrUnknownVariable)

	_, err = discovery.Sweep(t.Context(), discovery.SweepConfig{Model: scm.Diamond(), Replicates: 2, Samples: 0})
	require.ErrorIs(t, err, scm.ErrInvalidSampleSize)
}
