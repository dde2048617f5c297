package cgraph

import "github.com/pkg/errors"

// DSeparated reports whether x and y are d-separated by the conditioning set z.
//
// It uses the ancestral moral graph criterion: keep x, y, z and their ancestors, marry parents
// that share a child, drop directions, delete z. x and y are d-separated exactly when no path
// joins them in what remains.
func (d *DAG) DSeparated(x, y string, z []string) (bool, error) {
	for _, n := range append([]string{x, y}, z...) {
		if !d.Has(n) {
			return false, errors.Wrap(ErrUnknownNode, n)
		}
	}

	cond := make(map[string]struct{}, len(z))
	for _, n := range z {
		if n == x || n == y {
			return false, errors.Wrapf(ErrBadQuery, "%s in conditioning set", n)
		}

		cond[n] = struct{}{}
	}

	if x == y {
		return false, nil
	}

	keep := d.reach(append([]string{x, y}, z...), d.Parents)
	keep[x] = struct{}{}
	keep[y] = struct{}{}

	for n := range cond {
		keep[n] = struct{}{}
	}

	moral := make(map[string]map[string]struct{}, len(keep))
	link := func(a, b string) {
		if moral[a] == nil {
			moral[a] = make(map[string]struct{})
		}

		if moral[b] == nil {
			moral[b] = make(map[string]struct{})
		}

		moral[a][b] = struct{}{}
		moral[b][a] = struct{}{}
	}

	for n := range keep {
		parents := d.Parents(n)
		for i, p := range parents {
			link(p, n)

			for _, q := range parents[i+1:] {
				link(p, q)
			}
		}
	}

	seen := map[string]struct{}{x: {}}
	queue := []string{x}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		for next := range moral[cur] {
			if _, blocked := cond[next]; blocked {
				continue
			}

			if next == y {
				return false, nil
			}

			if _, ok := seen[next]; ok {
				continue
			}

			seen[next] = struct{}{}
			queue = append(queue, next)
		}
	}

	return true, nil
}
