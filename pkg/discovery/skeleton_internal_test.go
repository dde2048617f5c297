package discovery

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/askiada/go-causality/pkg/cgraph"
)

func TestForEachSubset(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		items    []string
		k        int
		expected [][]string
	}{
		"empty subset": {items: []string{"a", "b"}, k: 0, expected: [][]string{{}}},
		"pairs": {
			items:    []string{"a", "b", "c", "d"},
			k:        2,
			expected: [][]string{{"a", "b"}, {"a", "c"}, {"a", "d"}, {"b", "c"}, {"b", "d"}, {"c", "d"}},
		},
		"whole set": {items: []string{"a", "b", "c"}, k: 3, expected: [][]string{{"a", "b", "c"}}},
		"too large": {items: []string{"a"}, k: 2, expected: nil},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			var got [][]string

			forEachSubset(tc.items, tc.k, func(s []string) bool {
				got = append(got, s)

				return true
			})

			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestForEachSubsetStops(t *testing.T) {
	t.Parallel()

	calls := 0

	forEachSubset([]string{"a", "b", "c"}, 1, func(s []string) bool {
		calls++

		return s[0] != "b"
	})

	assert.Equal(t, 2, calls)
}

func TestHasCandidates(t *testing.T) {
	t.Parallel()

	g := cgraph.NewMixed("A", "B", "C")
	assert.False(t, hasCandidates(g, 0))

	_ = g.AddEdge("A", "B", cgraph.Tail, cgraph.Tail)
	assert.True(t, hasCandidates(g, 0))
	assert.False(t, hasCandidates(g, 1))

	_ = g.AddEdge("B", "C", cgraph.Tail, cgraph.Tail)
	assert.True(t, hasCandidates(g, 1))
	assert.False(t, hasCandidates(g, 2))
}

func TestSepSets(t *testing.T) {
	t.Parallel()

	s := NewSepSets()
	input := []string{"C"}
	s.Set("B", "A", input)
	input[0] = "changed"

	got, ok := s.Get("A", "B")
	assert.True(t, ok)
	assert.Equal(t, []string{"C"}, got)
	assert.True(t, s.Contains("B", "A", "C"))
	assert.False(t, s.Contains("A", "B", "D"))

	_, ok = s.Get("A", "C")
	assert.False(t, ok)
	assert.Equal(t, 1, s.Len())
}
