package discovery

import "github.com/askiada/go-causality/pkg/cgraph"

// OrientColliders returns a copy of skeleton where every unshielded triple a -- c -- b whose
// separating set misses c is oriented a --> c <-- b. When an earlier collider already oriented
// one of the edges out of c, that orientation is kept and a conflict entry is logged.
func OrientColliders(skeleton *cgraph.Mixed, sepsets SepSets) (*cgraph.Mixed, []cgraph.VStructure, Trace) {
	g := skeleton.Clone()

	var (
		found []cgraph.VStructure
		trace Trace
	)

	for _, c := range skeleton.Nodes() {
		nb := skeleton.Neighbors(c)

		for i, a := range nb {
			for _, b := range nb[i+1:] {
				if skeleton.Adjacent(a, b) || sepsets.Contains(a, b, c) {
					continue
				}

				set, _ := sepsets.Get(a, b)
				found = append(found, cgraph.VStructure{Left: a, Collider: c, Right: b})
				trace = append(trace, Entry{Kind: KindCollider, X: a, Collider: c, Y: b, Z: set})

				for _, side := range []string{a, b} {
					if g.IsDirected(c, side) {
						trace = append(trace, Entry{Kind: KindConflict, X: a, Collider: c, Y: b, From: c, To: side})

						continue
					}

					_ = g.Orient(side, c)
				}
			}
		}
	}

	return g, found, trace
}

// ApplyMeekRules orients g in place with Meek's rules and returns one entry per orientation.
func ApplyMeekRules(g *cgraph.Mixed) Trace {
	var trace Trace

	cgraph.ApplyMeek(g, func(rule cgraph.MeekRule, from, to string) {
		trace = append(trace, Entry{Kind: KindMeek, Rule: rule, From: from, To: to})
	})

	return trace
}
