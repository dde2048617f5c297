package discovery

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/askiada/go-causality/pkg/cgraph"
	"github.com/askiada/go-causality/pkg/logger"
	"github.com/askiada/go-causality/pkg/metrics"
)

// Skeleton is the outcome of the first phase of PC.
type Skeleton struct {
	Graph   *cgraph.Mixed
	SepSets SepSets
	Trace   Trace
	// Tests counts the independence tests that were run, skipped ones included.
	Tests int
}

// FindSkeleton removes from the complete graph over nodes every edge whose endpoints some
// conditioning set makes independent.
//
// At level k the adjacencies are frozen, then every remaining edge i -- j is tested against the
// subsets of size k of adj(i)\{j}, then of adj(j)\{i}, in lexical order. The first independent
// subset removes the edge and becomes its separating set. Edges of a level are tested
// concurrently but their outcomes are applied and logged in edge order, so the result does not
// depend on scheduling. The search stops once no edge has k+1 candidate neighbours on a side.
func FindSkeleton(ctx context.Context, nodes []string, test IndependenceTest, opts ...Option) (*Skeleton, error) {
	if err := checkNodes(nodes); err != nil {
		return nil, err
	}

	cfg := newConfig(opts...)
	g := cgraph.NewComplete(nodes...)
	res := &Skeleton{Graph: g, SepSets: NewSepSets()}

	for k := 0; ; k++ {
		if cfg.maxCondSize >= 0 && k > cfg.maxCondSize {
			res.Trace = append(res.Trace, Entry{Kind: KindLimit, Level: cfg.maxCondSize})

			break
		}

		res.Trace = append(res.Trace, Entry{Kind: KindLevel, Level: k})

		removed, err := runLevel(ctx, cfg, test, k, res)
		if err != nil {
			return nil, errors.Wrapf(err, "level %d", k)
		}

		logger.Debug(ctx, "pc skeleton level done",
			zap.Int("k", k),
			zap.Int("removed", removed),
			zap.Int("edges_left", len(g.Edges())),
		)

		if !hasCandidates(g, k+1) {
			res.Trace = append(res.Trace, Entry{Kind: KindStop, Level: k + 1})

			break
		}
	}

	res.Trace = append(res.Trace, Entry{Kind: KindComplete})

	return res, nil
}

type edgeOutcome struct {
	entries []Entry
	sepset  []string
	removed bool
	tests   int
}

func runLevel(ctx context.Context, cfg config, test IndependenceTest, k int, res *Skeleton) (int, error) {
	g := res.Graph

	adj := make(map[string][]string)
	for _, n := range g.Nodes() {
		adj[n] = g.Neighbors(n)
	}

	edges := g.Edges()
	outcomes := make([]edgeOutcome, len(edges))

	errGrp, dCtx := errgroup.WithContext(ctx)
	errGrp.SetLimit(cfg.concurrency)

	for idx, e := range edges {
		adjA := without(adj[e.A], e.B)
		adjB := without(adj[e.B], e.A)

		if len(adjA) < k && len(adjB) < k {
			continue
		}

		errGrp.Go(func() error {
			out, err := testEdge(dCtx, cfg, test, k, e.A, e.B, adjA, adjB)
			outcomes[idx] = out

			return err
		})
	}

	if err := errGrp.Wait(); err != nil {
		return 0, err
	}

	removed := 0

	for idx, e := range edges {
		out := outcomes[idx]
		res.Trace = append(res.Trace, out.entries...)
		res.Tests += out.tests

		if !out.removed {
			continue
		}

		g.RemoveEdge(e.A, e.B)
		res.SepSets.Set(e.A, e.B, out.sepset)
		res.Trace = append(res.Trace, Entry{Kind: KindRemove, Level: k, X: e.A, Y: e.B, Z: out.sepset})
		removed++
	}

	return removed, nil
}

func testEdge(ctx context.Context, cfg config, test IndependenceTest, k int, x, y string, sides ...[]string) (edgeOutcome, error) {
	var out edgeOutcome

	seen := make(map[string]struct{})

	for _, candidates := range sides {
		if len(candidates) < k {
			continue
		}

		var err error

		forEachSubset(candidates, k, func(s []string) bool {
			key := strings.Join(s, "\x00")
			if _, ok := seen[key]; ok {
				return true
			}

			seen[key] = struct{}{}

			if err = ctx.Err(); err != nil {
				return false
			}

			out.tests++

			res, testErr := test.Test(ctx, x, y, s)

			switch {
			case testErr != nil:
				out.entries = append(out.entries, Entry{Kind: KindError, Level: k, X: x, Y: y, Z: s, Err: testErr.Error()})
				count(cfg, test, metrics.VerdictError)

				return true
			case res.Skipped:
				out.entries = append(out.entries, Entry{Kind: KindSkip, Level: k, X: x, Y: y, Z: s, Result: res})
				count(cfg, test, metrics.VerdictSkipped)

				return true
			}

			out.entries = append(out.entries, Entry{Kind: KindTest, Level: k, X: x, Y: y, Z: s, Result: res})

			if !res.Independent {
				count(cfg, test, metrics.VerdictDependent)

				return true
			}

			count(cfg, test, metrics.VerdictIndependent)

			out.removed = true
			out.sepset = s

			return false
		})

		if err != nil {
			return out, errors.Wrapf(err, "%s -- %s", x, y)
		}

		if out.removed {
			break
		}
	}

	return out, nil
}

func count(cfg config, test IndependenceTest, verdict string) {
	if cfg.collectors == nil {
		return
	}

	cfg.collectors.CITests.WithLabelValues(test.Name(), verdict).Inc()
}

// forEachSubset calls fn with every k-subset of items in lexical order of positions until fn
// returns false. Each call gets a fresh slice.
func forEachSubset(items []string, k int, fn func([]string) bool) {
	if k > len(items) {
		return
	}

	idx := make([]int, k)
	for i := range idx {
		idx[i] = i
	}

	for {
		subset := make([]string, k)
		for i, p := range idx {
			subset[i] = items[p]
		}

		if !fn(subset) {
			return
		}

		// advance to the next combination
		i := k - 1
		for i >= 0 && idx[i] == len(items)-k+i {
			i--
		}

		if i < 0 {
			return
		}

		idx[i]++
		for j := i + 1; j < k; j++ {
			idx[j] = idx[j-1] + 1
		}
	}
}

func without(items []string, n string) []string {
	res := make([]string, 0, len(items))

	for _, it := range items {
		if it != n {
			res = append(res, it)
		}
	}

	return res
}

// hasCandidates reports whether some edge has at least k neighbours besides its partner on one
// side.
func hasCandidates(g *cgraph.Mixed, k int) bool {
	for _, e := range g.Edges() {
		if g.Degree(e.A)-1 >= k || g.Degree(e.B)-1 >= k {
			return true
		}
	}

	return false
}

func checkNodes(nodes []string) error {
	if len(nodes) < 2 {
		return ErrNoNodes
	}

	seen := make(map[string]struct{}, len(nodes))

	for _, n := range nodes {
		if _, ok := seen[n]; ok {
			return errors.Wrap(ErrDuplicateNode, n)
		}

		seen[n] = struct{}{}
	}

	return nil
}
