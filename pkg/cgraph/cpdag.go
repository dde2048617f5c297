package cgraph

// CPDAG returns the completed partially directed graph of the Markov equivalence class of d:
// its skeleton, its unshielded colliders and every orientation Meek's rules can add.
func CPDAG(d *DAG) *Mixed {
	g := d.Skeleton()

	for _, v := range d.VStructures() {
		_ = g.Orient(v.Left, v.Collider)
		_ = g.Orient(v.Right, v.Collider)
	}

	ApplyMeek(g, nil)

	return g
}

// AsMixed returns the DAG as a fully directed Mixed graph.
func AsMixed(d *DAG) *Mixed {
	g := NewMixed(d.Nodes()...)

	for _, e := range d.Edges() {
		_ = g.AddEdge(e.From, e.To, Tail, Arrow)
	}

	return g
}
