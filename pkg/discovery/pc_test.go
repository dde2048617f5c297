package discovery_test

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/askiada/go-causality/pkg/cgraph"
	"github.com/askiada/go-causality/pkg/discovery"
	mockdiscovery "github.com/askiada/go-causality/pkg/discovery/mock"
	"github.com/askiada/go-causality/pkg/metrics"
	"github.com/askiada/go-causality/pkg/scm"
)

func TestPCOracleDiamond(t *testing.T) {
	t.Parallel()

	dag := scm.Diamond().DAG()

	for _, concurrency := range []int{1, 4} {
		res, err := discovery.PC(t.Context(), dag.Observed(), discovery.Oracle{DAG: dag}, discovery.WithConcurrency(concurrency))
		require.NoError(t, err)

		assert.True(t, cgraph.CPDAG(dag).Equal(res.CPDAG))
		assert.Equal(t, "A --- B; A --- C; B --> D; C --> D", res.CPDAG.String())
		assert.Equal(t, "A --- B; A --- C; B --- D; C --- D", res.Skeleton.String())
		assert.Equal(t, []cgraph.VStructure{{Left: "B", Collider: "D", Right: "C"}}, res.Colliders)

		sep, ok := res.SepSets.Get("D", "A")
		require.True(t, ok)
		assert.Equal(t, []string{"B", "C"}, sep)

		sep, ok = res.SepSets.Get("B", "C")
		require.True(t, ok)
		assert.Equal(t, []string{"A"}, sep)

		assert.Equal(t, []string{
			"REMOVING edge B -- C based on S = {A}",
			"REMOVING edge A -- D based on S = {B, C}",
		}, res.Trace.Filter(discovery.KindRemove).Lines())

		lines := res.Trace.Lines()
		assert.Equal(t, "--- Testing with conditioning set size k = 0 ---", lines[0])
		assert.Equal(t, "Test: A _||_ B | {}?  d-separated: false.  Verdict: Dependent", lines[1])
		assert.Contains(t, lines, "Stopping: No node has 3 neighbors left.")
		assert.Contains(t, lines, "--- Skeleton search complete ---")
		assert.Contains(t, lines, "COLLIDER: B -> D <- C (D not in S = {A})")
		assert.Len(t, res.Trace.Filter(discovery.KindTest), res.Tests)
	}
}

func TestPCOracleMGraph(t *testing.T) {
	t.Parallel()

	dag := scm.MGraph().DAG()

	res, err := discovery.PC(t.Context(), dag.Observed(), discovery.Oracle{DAG: dag})
	require.NoError(t, err)

	assert.Equal(t, "A --- B; B --- C; C --> E; D --> E", res.CPDAG.String())
	assert.Contains(t, res.Trace.Lines(), "Stopping: No node has 2 neighbors left.")

	diag := discovery.Diagnose(res.CPDAG, discovery.ReferencePAG())
	require.Len(t, diag, 4)

	kinds := make([]discovery.DisagreementKind, 0, len(diag))
	for _, d := range diag {
		kinds = append(kinds, d.Kind)
	}

	assert.Equal(t, []discovery.DisagreementKind{
		discovery.Undecided,
		discovery.Undecided,
		discovery.OverClaimed,
		discovery.MissedConfounding,
	}, kinds)
	assert.Equal(t, `missed confounding: PC has "D --> E", PAG has "D <-> E"`, diag[3].String())
}

func TestPCMeekPropagation(t *testing.T) {
	t.Parallel()

	// X -> Z <- Y, Z -> W: the collider at Z forces Z -> W by R1.
	dag := cgraph.NewDAG()
	for _, n := range []string{"X", "Y", "Z", "W"} {
		require.NoError(t, dag.AddNode(n))
	}

	require.NoError(t, dag.AddEdge("X", "Z"))
	require.NoError(t, dag.AddEdge("Y", "Z"))
	require.NoError(t, dag.AddEdge("Z", "W"))

	res, err := discovery.PC(t.Context(), dag.Nodes(), discovery.Oracle{DAG: dag})
	require.NoError(t, err)

	assert.Equal(t, "X --> Z; Y --> Z; Z --> W", res.CPDAG.String())
	assert.Equal(t, []string{"MEEK R1: orienting Z -> W"}, res.Trace.Filter(discovery.KindMeek).Lines())
}

func TestPCMaxConditioningSize(t *testing.T) {
	t.Parallel()

	dag := scm.Diamond().DAG()

	res, err := discovery.PC(t.Context(), dag.Nodes(), discovery.Oracle{DAG: dag}, discovery.WithMaxConditioningSize(0))
	require.NoError(t, err)

	assert.Len(t, res.Skeleton.Edges(), 6)

	lines := res.Trace.Lines()
	assert.Equal(t, "Stopping: conditioning set size limit 0 reached.", lines[len(lines)-2])
}

func TestOrientColliders(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		nodes     []string
		edges     [][2]string
		sepsets   map[[2]string][]string
		cpdag     string
		colliders []cgraph.VStructure
		trace     []string
	}{
		"unshielded collider": {
			nodes:     []string{"X", "C", "Y"},
			edges:     [][2]string{{"X", "C"}, {"C", "Y"}},
			sepsets:   map[[2]string][]string{{"X", "Y"}: {}},
			cpdag:     "X --> C; C <-- Y",
			colliders: []cgraph.VStructure{{Left: "X", Collider: "C", Right: "Y"}},
			trace:     []string{"COLLIDER: X -> C <- Y (C not in S = {})"},
		},
		"separated through the middle node": {
			nodes:   []string{"X", "C", "Y"},
			edges:   [][2]string{{"X", "C"}, {"C", "Y"}},
			sepsets: map[[2]string][]string{{"X", "Y"}: {"C"}},
			cpdag:   "X --- C; C --- Y",
			trace:   []string{},
		},
		"conflicting colliders keep the first orientation": {
			nodes: []string{"X", "C", "Y", "W"},
			edges: [][2]string{{"X", "C"}, {"C", "Y"}, {"Y", "W"}},
			cpdag: "X --> C; C <-- Y; Y <-- W",
			colliders: []cgraph.VStructure{
				{Left: "X", Collider: "C", Right: "Y"},
				{Left: "C", Collider: "Y", Right: "W"},
			},
			trace: []string{
				"COLLIDER: X -> C <- Y (C not in S = {})",
				"COLLIDER: C -> Y <- W (Y not in S = {})",
				"CONFLICT: keeping Y -> C over collider C -> Y <- W",
			},
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			skeleton := cgraph.NewMixed(tc.nodes...)
			for _, e := range tc.edges {
				require.NoError(t, skeleton.AddEdge(e[0], e[1], cgraph.Tail, cgraph.Tail))
			}

			sepsets := discovery.NewSepSets()
			for p, set := range tc.sepsets {
				sepsets.Set(p[0], p[1], set)
			}

			cpdag, colliders, trace := discovery.OrientColliders(skeleton, sepsets)

			assert.Equal(t, tc.cpdag, cpdag.String())
			assert.Equal(t, tc.colliders, colliders)
			assert.Equal(t, tc.trace, trace.Lines())
			// the skeleton itself is left undirected
			for _, e := range skeleton.Edges() {
				assert.True(t, skeleton.IsUndirected(e.A, e.B))
			}
		})
	}
}

func TestPCErrors(t *testing.T) {
	t.Parallel()

	dag := scm.Diamond().DAG()
	oracle := discovery.Oracle{DAG: dag}

	_, err := discovery.PC(t.Context(), []string{"A"}, oracle)
	assert.ErrorIs(t, err, discovery.ErrNoNodes)

	_, err = discovery.PC(t.Context(), []string{"A", "B", "A"}, oracle)
	assert.ErrorIs(t, err, discovery.ErrDuplicateNode)

	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	_, err = discovery.PC(ctx, dag.Nodes(), oracle)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPCTestFailures(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	test := mockdiscovery.NewMockIndependenceTest(ctrl)

	dependent := discovery.TestResult{PValue: 0.01, Alpha: 0.05, N: 50}

	test.EXPECT().Name().Return("mock").AnyTimes()
	test.EXPECT().Test(gomock.Any(), "X", "Y", []string{}).Return(discovery.TestResult{}, errors.New("singular matrix"))
	test.EXPECT().Test(gomock.Any(), "X", "Z", []string{}).Return(discovery.TestResult{Skipped: true, N: 2}, nil)
	test.EXPECT().Test(gomock.Any(), "Y", "Z", []string{}).Return(discovery.TestResult{PValue: 0.5, Alpha: 0.05, Independent: true, N: 50}, nil)
	test.EXPECT().Test(gomock.Any(), "X", "Y", []string{"Z"}).Return(dependent, nil)
	test.EXPECT().Test(gomock.Any(), "X", "Z", []string{"Y"}).Return(dependent, nil)

	reg := prometheus.NewRegistry()
	collectors := metrics.New(reg)

	res, err := discovery.PC(t.Context(), []string{"X", "Y", "Z"}, test, discovery.WithMetrics(collectors), discovery.WithConcurrency(2))
	require.NoError(t, err)

	assert.Equal(t, []string{
		"--- Testing with conditioning set size k = 0 ---",
		"ERROR: X _||_ Y | {}. Error: singular matrix",
		"SKIPPED: X _||_ Z | {} (n_samples=2 is too small for |S|=0)",
		"Test: Y _||_ Z | {}?  p-val: 0.5000 > 0.05.  Verdict: INDEPENDENT",
		"REMOVING edge Y -- Z based on S = {}",
		"--- Testing with conditioning set size k = 1 ---",
		"Test: X _||_ Y | {Z}?  p-val: 0.0100 <= 0.05.  Verdict: Dependent",
		"Test: X _||_ Z | {Y}?  p-val: 0.0100 <= 0.05.  Verdict: Dependent",
		"Stopping: No node has 2 neighbors left.",
		"--- Skeleton search complete ---",
		"COLLIDER: Y -> X <- Z (X not in S = {})",
	}, res.Trace.Lines())
	assert.Equal(t, 5, res.Tests)
	assert.Equal(t, "X <-- Y; X <-- Z", res.CPDAG.String())

	for verdict, expected := range map[string]float64{
		metrics.VerdictError:       1,
		metrics.VerdictSkipped:     1,
		metrics.VerdictIndependent: 1,
		metrics.VerdictDependent:   2,
	} {
		assert.InDelta(t, expected, testutil.ToFloat64(collectors.CITests.WithLabelValues("mock", verdict)), 0, verdict)
	}

	assert.Equal(t, 1, testutil.CollectAndCount(collectors.Discovery))
}

func TestDiscoverPartialCorrelation(t *testing.T) {
	t.Parallel()

	model := scm.Diamond()

	data, err := model.Sample(scm.NewRand(7), 2000)
	require.NoError(t, err)

	res, err := discovery.Discover(t.Context(), data, 0.05)
	require.NoError(t, err)

	score := discovery.Compare(cgraph.CPDAG(model.DAG()), res.CPDAG)
	assert.Equal(t, 4, score.TruePositives)
	assert.InDelta(t, 1, score.Recall, 0)

	for _, e := range res.Trace.Filter(discovery.KindTest) {
		assert.Equal(t, 2000, e.Result.N)
		assert.InDelta(t, 0.05, e.Result.Alpha, 0)
	}
}
