package cgraph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func diamond(t *testing.T) *DAG {
	t.Helper()

	d := NewDAG()
	for _, n := range []string{"A", "B", "C", "D"} {
		require.NoError(t, d.AddNode(n))
	}

	require.NoError(t, d.AddEdge("A", "B"))
	require.NoError(t, d.AddEdge("A", "C"))
	require.NoError(t, d.AddEdge("B", "D"))
	require.NoError(t, d.AddEdge("C", "D"))

	return d
}

func TestDAGAddEdgeErrors(t *testing.T) {
	d := diamond(t)

	assert.ErrorIs(t, d.AddEdge("D", "A"), ErrCycle)
	assert.ErrorIs(t, d.AddEdge("A", "B"), ErrDuplicateEdge)
	assert.ErrorIs(t, d.AddEdge("A", "Z"), ErrUnknownNode)
	assert.ErrorIs(t, d.AddEdge("A", "A"), ErrSelfLoop)
	assert.ErrorIs(t, d.AddNode("A"), ErrDuplicateNode)
}

func TestDAGRelations(t *testing.T) {
	d := diamond(t)

	assert.Equal(t, []string{"B", "C"}, d.Parents("D"))
	assert.Equal(t, []string{"B", "C"}, d.Children("A"))
	assert.Equal(t, []string{"A", "B", "C"}, d.Ancestors("D"))
	assert.Equal(t, []string{"B", "C", "D"}, d.Descendants("A"))
	assert.Empty(t, d.Parents("A"))
	assert.Equal(t, []Edge{{"A", "B"}, {"A", "C"}, {"B", "D"}, {"C", "D"}}, d.Edges())

	order, err := d.TopologicalOrder()
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B", "C", "D"}, order)
}

func TestDAGHidden(t *testing.T) {
	d := NewDAG()
	require.NoError(t, d.AddHidden("H"))
	require.NoError(t, d.AddNode("X"))
	require.NoError(t, d.AddNode("Y"))
	require.NoError(t, d.AddEdge("H", "X"))
	require.NoError(t, d.AddEdge("H", "Y"))

	assert.True(t, d.IsHidden("H"))
	assert.False(t, d.IsHidden("X"))
	assert.Equal(t, []string{"X", "Y"}, d.Observed())
	assert.Equal(t, []string{"H", "X", "Y"}, d.Nodes())
}

func TestVStructures(t *testing.T) {
	d := diamond(t)

	assert.Equal(t, []VStructure{{Left: "B", Collider: "D", Right: "C"}}, d.VStructures())
}

func TestDSeparated(t *testing.T) {
	d := diamond(t)

	tcs := map[string]struct {
		x, y     string
		z        []string
		expected bool
	}{
		"A and D marginally":    {x: "A", y: "D", expected: false},
		"A and D given B, C":    {x: "A", y: "D", z: []string{"B", "C"}, expected: true},
		"A and D given B":       {x: "A", y: "D", z: []string{"B"}, expected: false},
		"B and C marginally":    {x: "B", y: "C", expected: false},
		"B and C given A":       {x: "B", y: "C", z: []string{"A"}, expected: true},
		"B and C given A and D": {x: "B", y: "C", z: []string{"A", "D"}, expected: false},
		"adjacent nodes never":  {x: "A", y: "B", z: []string{"C", "D"}, expected: false},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			got, err := d.DSeparated(tc.x, tc.y, tc.z)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestDSeparatedJunctions(t *testing.T) {
	build := func(edges ...Edge) *DAG {
		d := NewDAG()
		for _, n := range []string{"X", "Y", "Z"} {
			require.NoError(t, d.AddNode(n))
		}

		for _, e := range edges {
			require.NoError(t, d.AddEdge(e.From, e.To))
		}

		return d
	}

	chain := build(Edge{"X", "Z"}, Edge{"Z", "Y"})
	fork := build(Edge{"Z", "X"}, Edge{"Z", "Y"})
	collider := build(Edge{"X", "Z"}, Edge{"Y", "Z"})

	for name, d := range map[string]*DAG{"chain": chain, "fork": fork} {
		open, err := d.DSeparated("X", "Y", nil)
		require.NoError(t, err)
		assert.False(t, open, name)

		blocked, err := d.DSeparated("X", "Y", []string{"Z"})
		require.NoError(t, err)
		assert.True(t, blocked, name)
	}

	sep, err := collider.DSeparated("X", "Y", nil)
	require.NoError(t, err)
	assert.True(t, sep)

	sep, err = collider.DSeparated("X", "Y", []string{"Z"})
	require.NoError(t, err)
	assert.False(t, sep)
}

func TestDSeparatedErrors(t *testing.T) {
	d := diamond(t)

	_, err := d.DSeparated("A", "Q", nil)
	assert.ErrorIs(t, err, ErrUnknownNode)

	_, err = d.DSeparated("A", "D", []string{"A"})
	assert.ErrorIs(t, err, ErrBadQuery)
}
