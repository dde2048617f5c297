package cgraph

// MeekRule identifies one of Meek's four orientation rules.
type MeekRule int

const (
	// MeekR1 orients b --- c into b --> c when a --> b and a, c are not adjacent.
	MeekR1 MeekRule = iota + 1
	// MeekR2 orients a --- b into a --> b when a --> c --> b.
	MeekR2
	// MeekR3 orients a --- b into a --> b when a --- c --> b, a --- d --> b and c, d are not
	// adjacent.
	MeekR3
	// MeekR4 orients a --- b into a --> b when a --- c --> d --> b, c and b are not adjacent and a
	// is adjacent to d.
	MeekR4
)

func (r MeekRule) String() string {
	switch r {
	case MeekR1:
		return "R1"
	case MeekR2:
		return "R2"
	case MeekR3:
		return "R3"
	case MeekR4:
		return "R4"
	default:
		return "R?"
	}
}

// MeekHook is called every time a rule orients an edge from --> to.
type MeekHook func(rule MeekRule, from, to string)

// ApplyMeek orients undirected edges of a partially directed graph with Meek's rules until none
// applies anymore. Rules are tried in order R1..R4 and the scan restarts after every orientation,
// so the outcome does not depend on map iteration.
func ApplyMeek(g *Mixed, hook MeekHook) {
	rules := []struct {
		rule  MeekRule
		match func(g *Mixed, a, b string) bool
	}{
		{MeekR1, meekR1},
		{MeekR2, meekR2},
		{MeekR3, meekR3},
		{MeekR4, meekR4},
	}

	for {
		changed := false

	search:
		for _, r := range rules {
			for _, e := range g.Edges() {
				if !g.IsUndirected(e.A, e.B) {
					continue
				}

				for _, dir := range [2][2]string{{e.A, e.B}, {e.B, e.A}} {
					if !r.match(g, dir[0], dir[1]) {
						continue
					}

					_ = g.Orient(dir[0], dir[1])
					if hook != nil {
						hook(r.rule, dir[0], dir[1])
					}

					changed = true

					break search
				}
			}
		}

		if !changed {
			return
		}
	}
}

// meekR1 checks for c --> a --- b with c, b not adjacent.
func meekR1(g *Mixed, a, b string) bool {
	for _, c := range g.Neighbors(a) {
		if c == b {
			continue
		}

		if g.IsDirected(c, a) && !g.Adjacent(c, b) {
			return true
		}
	}

	return false
}

// meekR2 checks for a --> c --> b.
func meekR2(g *Mixed, a, b string) bool {
	for _, c := range g.Neighbors(a) {
		if c == b {
			continue
		}

		if g.IsDirected(a, c) && g.IsDirected(c, b) {
			return true
		}
	}

	return false
}

// meekR3 checks for two non-adjacent c, d with a --- c --> b and a --- d --> b.
func meekR3(g *Mixed, a, b string) bool {
	var candidates []string

	for _, c := range g.Neighbors(a) {
		if c == b {
			continue
		}

		if g.IsUndirected(a, c) && g.IsDirected(c, b) {
			candidates = append(candidates, c)
		}
	}

	for i, c := range candidates {
		for _, d := range candidates[i+1:] {
			if !g.Adjacent(c, d) {
				return true
			}
		}
	}

	return false
}

// meekR4 checks for a --- c --> d --> b with c, b not adjacent and a adjacent to d.
func meekR4(g *Mixed, a, b string) bool {
	for _, c := range g.Neighbors(a) {
		if c == b || !g.IsUndirected(a, c) || g.Adjacent(c, b) {
			continue
		}

		for _, d := range g.Neighbors(c) {
			if d == a || d == b {
				continue
			}

			if g.IsDirected(c, d) && g.IsDirected(d, b) && g.Adjacent(a, d) {
				return true
			}
		}
	}

	return false
}
