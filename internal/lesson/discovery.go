package lesson

import (
	"bytes"
	"context"
	"sort"
	"strconv"

	"github.com/pkg/errors"

	"github.com/askiada/go-causality/pkg/cgraph"
	"github.com/askiada/go-causality/pkg/discovery"
	"github.com/askiada/go-causality/pkg/scm"
	"github.com/askiada/go-causality/pkg/stats"
)

const maxReplicates = 20

var pcAlgorithm = Lesson{
	Slug:    "pc-algorithm",
	Title:   "The PC Algorithm",
	Icon:    "🧭",
	Summary: "Recovering a graph from conditional independence tests.",
	run:     runPC,
}

var hiddenConfounding = Lesson{
	Slug:    "hidden-confounding",
	Title:   "Hidden Confounding and FCI",
	Icon:    "👻",
	Summary: "What PC gets wrong when a common cause is not measured.",
	run:     runHiddenConfounding,
}

func scoreTable(caption string, s discovery.Score) Table {
	return Table{
		Caption: caption,
		Header:  []string{"True positives", "False positives", "False negatives", "Precision", "Recall", "SHD", "Orientation"},
		Rows: [][]string{{
			strconv.Itoa(s.TruePositives), strconv.Itoa(s.FalsePositives), strconv.Itoa(s.FalseNegatives),
			f2(s.Precision), f2(s.Recall), strconv.Itoa(s.SHD), f2(s.Orientation),
		}},
	}
}

func runPC(ctx context.Context, b *Book, p *Params, v *View) error {
	n := p.Int("n", "Number of samples", 2000, 200, 5000)
	alpha := p.Float("alpha", "Significance level", b.cfg.Alpha, 0.001, 0.2, 0.001)
	regime := p.Choice("regime", "Data", discovery.Observational, discovery.Observational, discovery.Interventional)
	replicates := p.Int("replicates", "Replicates", 0, 0, maxReplicates)
	seed := v.seed(p)

	if err := p.Err(); err != nil {
		return err
	}

	truthModel := scm.Diamond()
	shift := scm.DiamondShift()

	model := truthModel
	if regime == discovery.Interventional {
		var err error
		if model, err = truthModel.Intervene(shift); err != nil {
			return err
		}
	}

	data, err := model.Sample(scm.NewRand(seed), n)
	if err != nil {
		return errors.Wrap(err, "unable to sample")
	}

	res, err := discovery.Discover(ctx, data, alpha, b.cfg.Discovery...)
	if err != nil {
		return errors.Wrap(err, "unable to run pc")
	}

	truth := cgraph.CPDAG(model.DAG())

	graphs := make([]Graph, 0, 4)

	for _, g := range []struct {
		title string
		build func() (Graph, error)
	}{
		{"True graph", func() (Graph, error) { return dagGraph("True graph", model.DAG()) }},
		{"Skeleton", func() (Graph, error) { return mixedGraph("Skeleton", res.Skeleton) }},
		{"PC output", func() (Graph, error) { return mixedGraph("PC output", res.CPDAG) }},
		{"True CPDAG", func() (Graph, error) { return mixedGraph("True CPDAG", truth) }},
	} {
		graph, err := g.build()
		if err != nil {
			return errors.Wrapf(err, "unable to draw %s", g.title)
		}

		graphs = append(graphs, graph)
	}

	v.add(Section{
		Heading:   "Running PC on the " + regime + " data",
		Equations: model.Equations(),
		Graphs:    graphs,
		Tables:    []Table{scoreTable("PC output against the true CPDAG", discovery.Compare(truth, res.CPDAG))},
		Paragraphs: []string{
			strconv.Itoa(res.Tests) + " independence tests in " + res.Duration.String() + ".",
			"A --- B and A --- C stay undirected: A → B → D and A ← B → D imply the same " +
				"independences, so no test can orient them. B → D ← C is a v-structure and is oriented.",
		},
	})

	v.add(Section{
		Heading: "Trace",
		Trace:   res.Trace.Lines(),
	})

	if err := orientationCheck(v, truthModel, shift, n, seed); err != nil {
		return err
	}

	if replicates > 0 {
		if err := sweepSection(ctx, b, v, truthModel, shift, replicates, n, alpha, seed); err != nil {
			return err
		}
	}

	v.Data = data

	return nil
}

// orientationCheck shows how an intervention on A orients A --- B: the slope of B ~ A is
// invariant, the one of A ~ B is not.
func orientationCheck(v *View, model *scm.Model, shift scm.Intervention, n int, seed uint64) error {
	shifted, err := model.Intervene(shift)
	if err != nil {
		return err
	}

	table := Table{Header: []string{"Regime", "corr(A, B)", "B ~ A", "A ~ B"}}

	for i, regime := range []struct {
		name  string
		model *scm.Model
	}{{discovery.Observational, model}, {discovery.Interventional, shifted}} {
		data, err := regime.model.Sample(scm.NewRand(seed+uint64(i)+1), n)
		if err != nil {
			return errors.Wrapf(err, "unable to sample %s data", regime.name)
		}

		a, bcol := data.MustColumn("A"), data.MustColumn("B")

		corr, err := stats.Correlation(a, bcol)
		if err != nil {
			return err
		}

		ba, err := stats.OLS(bcol, a)
		if err != nil {
			return err
		}

		ab, err := stats.OLS(a, bcol)
		if err != nil {
			return err
		}

		table.Rows = append(table.Rows, []string{regime.name, f3(corr), f3(ba.Coefs[0]), f3(ab.Coefs[0])})
	}

	v.add(Section{
		Heading: "Orienting A --- B with an intervention",
		Tables:  []Table{table},
		Notes: []Note{{
			Level: NoteSuccess,
			Text: "Under " + shift.String() + " the mechanism B ~ A keeps its slope while A ~ B changes: " +
				"the invariant direction is the causal one, A → B.",
		}},
	})

	return nil
}

func sweepSection(
	ctx context.Context, b *Book, v *View, model *scm.Model, shift scm.Intervention, replicates, n int, alpha float64,
	seed uint64,
) error {
	var graph bytes.Buffer

	report, err := discovery.Sweep(ctx, discovery.SweepConfig{
		Model:           model,
		Shift:           &shift,
		Replicates:      replicates,
		Samples:         n,
		Alpha:           alpha,
		Seed:            seed,
		Options:         b.cfg.Discovery,
		PipelineOptions: b.cfg.Pipeline,
		Graph:           &graph,
	})
	if err != nil {
		return errors.Wrap(err, "unable to run sweep")
	}

	scores := Table{
		Caption: "Mean scores over " + strconv.Itoa(replicates) + " replicates",
		Header:  []string{"Regime", "Runs", "Exact", "SHD", "Precision", "Recall", "Orientation"},
	}

	regimes := make([]string, 0, len(report.Mean))
	for r := range report.Mean {
		regimes = append(regimes, r)
	}

	sort.Strings(regimes)

	for _, r := range regimes {
		m := report.Mean[r]
		scores.Rows = append(scores.Rows, []string{
			r, strconv.Itoa(m.Runs), strconv.Itoa(m.Exact), f2(m.SHD), f2(m.Precision), f2(m.Recall), f2(m.Orientation),
		})
	}

	steps := Table{Caption: "Mean step durations", Header: []string{"Step", "Duration"}}

	names := make([]string, 0, len(report.StepDurations))
	for name := range report.StepDurations {
		names = append(names, name)
	}

	sort.Strings(names)

	for _, name := range names {
		steps.Rows = append(steps.Rows, []string{name, report.StepDurations[name].String()})
	}

	v.add(Section{
		Heading: "Replicates",
		Tables:  []Table{scores, steps},
		Graphs:  []Graph{{Title: "Sweep pipeline", DOT: graph.String()}},
		Paragraphs: []string{
			"Every replicate draws a fresh sample from the observational model and from the model under " +
				shift.String() + ", runs PC on both and scores the output. Total time " + report.Duration.String() + ".",
		},
	})

	return nil
}

func runHiddenConfounding(ctx context.Context, b *Book, p *Params, v *View) error {
	n := p.Int("n", "Number of samples", 2000, 200, 5000)
	alpha := p.Float("alpha", "Significance level", b.cfg.Alpha, 0.001, 0.2, 0.001)
	seed := v.seed(p)

	if err := p.Err(); err != nil {
		return err
	}

	model := scm.MGraph()

	data, err := model.Sample(scm.NewRand(seed), n)
	if err != nil {
		return errors.Wrap(err, "unable to sample")
	}

	res, err := discovery.Discover(ctx, data, alpha, b.cfg.Discovery...)
	if err != nil {
		return errors.Wrap(err, "unable to run pc")
	}

	pag := discovery.ReferencePAG()

	truth, err := dagGraph("True graph (hidden variables dashed)", model.DAG())
	if err != nil {
		return err
	}

	found, err := mixedGraph("PC output on A to E", res.CPDAG)
	if err != nil {
		return err
	}

	reference, err := mixedGraph("Reference PAG", pag)
	if err != nil {
		return err
	}

	v.add(Section{
		Heading:   "The M-graph",
		Equations: model.Equations(),
		Graphs:    []Graph{truth},
		Paragraphs: []string{
			"H1 and H2 are never measured. PC assumes every common cause is observed, so it has to " +
				"explain the dependence between D and E with a directed edge.",
		},
	})

	disagreements := discovery.Diagnose(res.CPDAG, pag)
	table := Table{Header: []string{"Pair", "Kind", "PC", "PAG"}}
	missed := 0

	for _, d := range disagreements {
		table.Rows = append(table.Rows, []string{d.A + ", " + d.B, string(d.Kind), orDash(d.PC), orDash(d.PAG)})

		if d.Kind == discovery.MissedConfounding {
			missed++
		}
	}

	section := Section{
		Heading: "PC against the partial ancestral graph",
		Graphs:  []Graph{found, reference},
		Tables:  []Table{table},
		Paragraphs: []string{
			"In a PAG an arrowhead means \"is not a cause of\", a tail means \"is a cause of\" and a circle " +
				"means the data cannot decide. D <-> E says D and E share a hidden cause.",
		},
		Trace: res.Trace.Lines(),
	}

	if missed > 0 {
		section.Notes = append(section.Notes, Note{
			Level: NoteWarning,
			Text:  strconv.Itoa(missed) + " hidden common cause(s) were turned into a causal arrow by PC.",
		})
	} else {
		section.Notes = append(section.Notes, Note{
			Level: NoteInfo,
			Text:  "This sample did not expose the hidden common cause to PC. Try another seed or more samples.",
		})
	}

	v.add(section)
	v.Data = data

	return nil
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}

	return s
}
