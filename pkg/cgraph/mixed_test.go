package cgraph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMixedMarks(t *testing.T) {
	m := NewMixed("A", "B", "C", "D", "E")
	require.NoError(t, m.AddEdge("A", "B", Tail, Arrow))
	require.NoError(t, m.AddEdge("B", "C", Tail, Tail))
	require.NoError(t, m.AddEdge("D", "E", Arrow, Arrow))
	require.NoError(t, m.AddEdge("C", "E", Circle, Arrow))

	assert.True(t, m.IsDirected("A", "B"))
	assert.False(t, m.IsDirected("B", "A"))
	assert.True(t, m.IsUndirected("C", "B"))
	assert.True(t, m.IsBidirected("E", "D"))
	assert.False(t, m.Adjacent("A", "C"))

	mk, ok := m.MarkAt("E", "C")
	require.True(t, ok)
	assert.Equal(t, Circle, mk)

	assert.Equal(t, "A --> B; B --- C; C o-> E; D <-> E", m.String())
	assert.Equal(t, []string{"C", "D"}, m.Neighbors("E"))
}

func TestMixedOrientAndClone(t *testing.T) {
	m := NewComplete("A", "B", "C")
	assert.Len(t, m.Edges(), 3)

	c := m.Clone()
	require.NoError(t, c.Orient("B", "A"))
	assert.True(t, c.IsDirected("B", "A"))
	assert.True(t, m.IsUndirected("A", "B"))
	assert.False(t, m.Equal(c))

	m.RemoveEdge("A", "C")
	assert.False(t, m.Adjacent("C", "A"))
	assert.ErrorIs(t, m.Orient("A", "C"), ErrNotAdjacent)
	assert.ErrorIs(t, m.AddEdge("A", "Q", Tail, Tail), ErrUnknownNode)
	assert.ErrorIs(t, m.AddEdge("A", "A", Tail, Tail), ErrSelfLoop)
}

func TestMixedEqual(t *testing.T) {
	a := NewMixed("X", "Y")
	b := NewMixed("X", "Y")
	require.NoError(t, a.AddEdge("X", "Y", Tail, Arrow))
	require.NoError(t, b.AddEdge("Y", "X", Arrow, Tail))

	assert.True(t, a.Equal(b))
}
