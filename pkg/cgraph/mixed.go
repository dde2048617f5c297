package cgraph

import (
	"sort"
	"strings"

	"github.com/pkg/errors"
)

// MixedEdge is an edge of a Mixed graph. A always precedes B in node order.
type MixedEdge struct {
	A     string
	B     string
	MarkA Mark
	MarkB Mark
}

func (e MixedEdge) String() string {
	return e.A + " " + e.MarkA.left() + "-" + e.MarkB.right() + " " + e.B
}

// Mixed is a graph whose edges carry a mark at each end. It holds at most one edge per pair of
// nodes. The zero value is not usable, create one with NewMixed or NewComplete.
type Mixed struct {
	nodes []string
	index map[string]int
	// marks[a][b] is the mark at b on the edge between a and b.
	marks map[string]map[string]Mark
}

// NewMixed creates a graph with the given nodes and no edges.
func NewMixed(nodes ...string) *Mixed {
	m := &Mixed{
		index: make(map[string]int, len(nodes)),
		marks: make(map[string]map[string]Mark, len(nodes)),
	}

	for _, n := range nodes {
		if _, ok := m.index[n]; ok {
			continue
		}

		m.index[n] = len(m.nodes)
		m.nodes = append(m.nodes, n)
		m.marks[n] = make(map[string]Mark)
	}

	return m
}

// NewComplete creates a graph where every pair of nodes is joined by an undirected edge.
func NewComplete(nodes ...string) *Mixed {
	m := NewMixed(nodes...)

	for i, a := range m.nodes {
		for _, b := range m.nodes[i+1:] {
			m.marks[a][b] = Tail
			m.marks[b][a] = Tail
		}
	}

	return m
}

// Nodes returns the nodes in creation order.
func (m *Mixed) Nodes() []string {
	return append([]string(nil), m.nodes...)
}

// Has reports whether the node exists.
func (m *Mixed) Has(n string) bool {
	_, ok := m.index[n]

	return ok
}

// AddEdge joins a and b, with markA drawn at a and markB drawn at b. An existing edge between
// them is replaced.
func (m *Mixed) AddEdge(a, b string, markA, markB Mark) error {
	if err := m.check(a, b); err != nil {
		return err
	}

	m.marks[b][a] = markA
	m.marks[a][b] = markB

	return nil
}

// RemoveEdge deletes the edge between a and b if there is one.
func (m *Mixed) RemoveEdge(a, b string) {
	if !m.Has(a) || !m.Has(b) {
		return
	}

	delete(m.marks[a], b)
	delete(m.marks[b], a)
}

// Orient turns the edge between a and b into a --> b.
func (m *Mixed) Orient(a, b string) error {
	if !m.Adjacent(a, b) {
		return errors.Wrapf(ErrNotAdjacent, "%s, %s", a, b)
	}

	m.marks[a][b] = Arrow
	m.marks[b][a] = Tail

	return nil
}

// Adjacent reports whether a and b share an edge.
func (m *Mixed) Adjacent(a, b string) bool {
	if !m.Has(a) {
		return false
	}

	_, ok := m.marks[a][b]

	return ok
}

// MarkAt returns the mark at b on the edge between a and b.
func (m *Mixed) MarkAt(a, b string) (Mark, bool) {
	if !m.Has(a) {
		return Tail, false
	}

	mk, ok := m.marks[a][b]

	return mk, ok
}

// IsDirected reports whether the graph has a --> b.
func (m *Mixed) IsDirected(a, b string) bool {
	return m.has(a, b, Tail, Arrow)
}

// IsUndirected reports whether the graph has a --- b.
func (m *Mixed) IsUndirected(a, b string) bool {
	return m.has(a, b, Tail, Tail)
}

// IsBidirected reports whether the graph has a <-> b.
func (m *Mixed) IsBidirected(a, b string) bool {
	return m.has(a, b, Arrow, Arrow)
}

func (m *Mixed) has(a, b string, markA, markB Mark) bool {
	atB, ok := m.MarkAt(a, b)
	if !ok {
		return false
	}

	atA, _ := m.MarkAt(b, a)

	return atA == markA && atB == markB
}

// Neighbors returns every node adjacent to n, in node order.
func (m *Mixed) Neighbors(n string) []string {
	if !m.Has(n) {
		return nil
	}

	res := make([]string, 0, len(m.marks[n]))
	for other := range m.marks[n] {
		res = append(res, other)
	}

	return m.sorted(res)
}

// Degree returns the number of edges touching n.
func (m *Mixed) Degree(n string) int {
	if !m.Has(n) {
		return 0
	}

	return len(m.marks[n])
}

// Edges lists every edge, ordered by the position of A then B.
func (m *Mixed) Edges() []MixedEdge {
	var res []MixedEdge

	for i, a := range m.nodes {
		for _, b := range m.nodes[i+1:] {
			atB, ok := m.marks[a][b]
			if !ok {
				continue
			}

			res = append(res, MixedEdge{A: a, B: b, MarkA: m.marks[b][a], MarkB: atB})
		}
	}

	return res
}

// Edge returns the edge between a and b oriented so that A == a.
func (m *Mixed) Edge(a, b string) (MixedEdge, bool) {
	atB, ok := m.MarkAt(a, b)
	if !ok {
		return MixedEdge{}, false
	}

	atA, _ := m.MarkAt(b, a)

	return MixedEdge{A: a, B: b, MarkA: atA, MarkB: atB}, true
}

// Clone returns a deep copy.
func (m *Mixed) Clone() *Mixed {
	c := NewMixed(m.nodes...)

	for a, marks := range m.marks {
		for b, mk := range marks {
			c.marks[a][b] = mk
		}
	}

	return c
}

// Equal reports whether both graphs have the same nodes, adjacencies and marks.
func (m *Mixed) Equal(other *Mixed) bool {
	if len(m.nodes) != len(other.nodes) {
		return false
	}

	for _, n := range m.nodes {
		if !other.Has(n) || len(m.marks[n]) != len(other.marks[n]) {
			return false
		}

		for b, mk := range m.marks[n] {
			if om, ok := other.marks[n][b]; !ok || om != mk {
				return false
			}
		}
	}

	return true
}

func (m *Mixed) String() string {
	edges := m.Edges()
	parts := make([]string, 0, len(edges))

	for _, e := range edges {
		parts = append(parts, e.String())
	}

	return strings.Join(parts, "; ")
}

func (m *Mixed) check(a, b string) error {
	if a == b {
		return errors.Wrap(ErrSelfLoop, a)
	}

	if !m.Has(a) {
		return errors.Wrap(ErrUnknownNode, a)
	}

	if !m.Has(b) {
		return errors.Wrap(ErrUnknownNode, b)
	}

	return nil
}

func (m *Mixed) sorted(names []string) []string {
	sort.Slice(names, func(i, j int) bool {
		return m.index[names[i]] < m.index[names[j]]
	})

	return names
}
