package cgraph

import (
	"sort"

	"github.com/dominikbraun/graph"
	"github.com/pkg/errors"

	"github.com/askiada/go-causality/internal/store"
)

const hiddenAttribute = "hidden"

// Edge is a directed edge of a DAG.
type Edge struct {
	From string
	To   string
}

// DAG is a directed acyclic graph over named variables. Some variables can be hidden (latent):
// they take part in the causal structure but never show up in sampled data.
type DAG struct {
	store *store.OrderedStore[string, string]
	graph graph.Graph[string, string]
}

// NewDAG creates an empty DAG.
func NewDAG() *DAG {
	st := store.NewOrdered[string, string]()

	return &DAG{
		store: st,
		graph: graph.NewWithStore(graph.StringHash, graph.Store[string, string](st),
			graph.Directed(), graph.Acyclic(), graph.PreventCycles()),
	}
}

// AddNode adds an observed variable.
func (d *DAG) AddNode(name string) error {
	err := d.graph.AddVertex(name)
	if errors.Is(err, graph.ErrVertexAlreadyExists) {
		return errors.Wrap(ErrDuplicateNode, name)
	}

	return errors.Wrapf(err, "unable to add node %s", name)
}

// AddHidden adds a latent variable.
func (d *DAG) AddHidden(name string) error {
	err := d.graph.AddVertex(name, graph.VertexAttribute(hiddenAttribute, "true"))
	if errors.Is(err, graph.ErrVertexAlreadyExists) {
		return errors.Wrap(ErrDuplicateNode, name)
	}

	return errors.Wrapf(err, "unable to add hidden node %s", name)
}

// AddEdge adds the edge from -> to. It fails when a node is unknown or when the edge would close
// a directed cycle.
func (d *DAG) AddEdge(from, to string) error {
	if from == to {
		return errors.Wrap(ErrSelfLoop, from)
	}

	err := d.graph.AddEdge(from, to)

	switch {
	case err == nil:
		return nil
	case errors.Is(err, graph.ErrVertexNotFound):
		return errors.Wrapf(ErrUnknownNode, "%s -> %s", from, to)
	case errors.Is(err, graph.ErrEdgeAlreadyExists):
		return errors.Wrapf(ErrDuplicateEdge, "%s -> %s", from, to)
	case errors.Is(err, graph.ErrEdgeCreatesCycle):
		return errors.Wrapf(ErrCycle, "%s -> %s", from, to)
	default:
		return errors.Wrapf(err, "unable to add edge %s -> %s", from, to)
	}
}

// Has reports whether the node exists.
func (d *DAG) Has(name string) bool {
	return d.store.Position(name) >= 0
}

// IsHidden reports whether the node is latent.
func (d *DAG) IsHidden(name string) bool {
	_, props, err := d.graph.VertexWithProperties(name)
	if err != nil {
		return false
	}

	return props.Attributes[hiddenAttribute] == "true"
}

// Nodes returns every node in insertion order.
func (d *DAG) Nodes() []string {
	nodes, _ := d.store.ListVertices()

	return nodes
}

// Observed returns the nodes that are not hidden, in insertion order.
func (d *DAG) Observed() []string {
	var res []string

	for _, n := range d.Nodes() {
		if !d.IsHidden(n) {
			res = append(res, n)
		}
	}

	return res
}

// Edges returns every edge ordered by source then target insertion order.
func (d *DAG) Edges() []Edge {
	edges, _ := d.store.ListEdges()
	res := make([]Edge, 0, len(edges))

	for _, e := range edges {
		res = append(res, Edge{From: e.Source, To: e.Target})
	}

	return res
}

// HasEdge reports whether from -> to exists.
func (d *DAG) HasEdge(from, to string) bool {
	_, err := d.store.Edge(from, to)

	return err == nil
}

// Adjacent reports whether a and b are joined by an edge in either direction.
func (d *DAG) Adjacent(a, b string) bool {
	return d.HasEdge(a, b) || d.HasEdge(b, a)
}

// Parents returns the direct causes of name.
func (d *DAG) Parents(name string) []string {
	var res []string

	for _, e := range d.Edges() {
		if e.To == name {
			res = append(res, e.From)
		}
	}

	return d.sorted(res)
}

// Children returns the direct effects of name.
func (d *DAG) Children(name string) []string {
	var res []string

	for _, e := range d.Edges() {
		if e.From == name {
			res = append(res, e.To)
		}
	}

	return d.sorted(res)
}

// Ancestors returns every node with a directed path into one of names. The names themselves are
// not included unless one is an ancestor of another.
func (d *DAG) Ancestors(names ...string) []string {
	return d.sorted(setToSlice(d.reach(names, d.Parents)))
}

// Descendants returns every node reachable from one of names.
func (d *DAG) Descendants(names ...string) []string {
	return d.sorted(setToSlice(d.reach(names, d.Children)))
}

func (d *DAG) reach(start []string, next func(string) []string) map[string]struct{} {
	seen := make(map[string]struct{})
	queue := append([]string(nil), start...)

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		for _, n := range next(cur) {
			if _, ok := seen[n]; ok {
				continue
			}

			seen[n] = struct{}{}
			queue = append(queue, n)
		}
	}

	return seen
}

// TopologicalOrder returns the nodes so that every parent comes before its children. Ties are
// broken by insertion order.
func (d *DAG) TopologicalOrder() ([]string, error) {
	order, err := graph.StableTopologicalSort(d.graph, func(a, b string) bool {
		return d.store.Position(a) < d.store.Position(b)
	})
	if err != nil {
		return nil, errors.Wrap(err, "unable to sort graph")
	}

	return order, nil
}

// Skeleton returns the undirected version of the DAG.
func (d *DAG) Skeleton() *Mixed {
	m := NewMixed(d.Nodes()...)

	for _, e := range d.Edges() {
		_ = m.AddEdge(e.From, e.To, Tail, Tail)
	}

	return m
}

// VStructure is an unshielded collider Left -> Collider <- Right.
type VStructure struct {
	Left     string
	Collider string
	Right    string
}

// VStructures lists every unshielded collider. Left always precedes Right in insertion order.
func (d *DAG) VStructures() []VStructure {
	var res []VStructure

	for _, c := range d.Nodes() {
		parents := d.Parents(c)
		for i := 0; i < len(parents); i++ {
			for j := i + 1; j < len(parents); j++ {
				if d.Adjacent(parents[i], parents[j]) {
					continue
				}

				res = append(res, VStructure{Left: parents[i], Collider: c, Right: parents[j]})
			}
		}
	}

	return res
}

// Index returns the insertion index of name, or -1.
func (d *DAG) Index(name string) int {
	return d.store.Position(name)
}

func (d *DAG) sorted(names []string) []string {
	sort.Slice(names, func(i, j int) bool {
		return d.store.Position(names[i]) < d.store.Position(names[j])
	})

	return names
}

func setToSlice(set map[string]struct{}) []string {
	res := make([]string, 0, len(set))
	for k := range set {
		res = append(res, k)
	}

	return res
}
