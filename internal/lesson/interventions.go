package lesson

import (
	"context"
	"fmt"
	"math"

	"github.com/pkg/errors"

	"github.com/askiada/go-causality/pkg/scm"
	"github.com/askiada/go-causality/pkg/stats"
)

const histogramBins = 30

var interventions = Lesson{
	Slug:    "interventions",
	Title:   "The Asymmetry of Interventions",
	Icon:    "🔬",
	Summary: "do(X) moves Y but do(Y) leaves X alone.",
	run:     runInterventions,
}

func runInterventions(_ context.Context, _ *Book, p *Params, v *View) error {
	n := p.Int("n", "Number of samples", 1000, 100, 5000)
	slope := p.Float("slope", "Slope (b)", 2, -5, 5, 0.1)
	target := p.Choice("target", "Intervene on", "X", "X", "Y")
	value := p.Float("value", "Intervention value", 2, -10, 10, 0.5)
	seed := v.seed(p)

	if err := p.Err(); err != nil {
		return err
	}

	model := scm.LinearPair(slope)

	obs, err := model.Sample(scm.NewRand(seed), n)
	if err != nil {
		return errors.Wrap(err, "unable to sample observational data")
	}

	iv := scm.Hard(target, value)

	world, err := model.Intervene(iv)
	if err != nil {
		return errors.Wrap(err, "unable to intervene")
	}

	post, err := world.Sample(scm.NewRand(seed+1), n)
	if err != nil {
		return errors.Wrap(err, "unable to sample interventional data")
	}

	before, err := dagGraph("Observational graph", model.DAG())
	if err != nil {
		return err
	}

	after, err := dagGraph("Graph under "+iv.String(), world.DAG())
	if err != nil {
		return err
	}

	varY := slope*slope + scm.PairNoiseSigma*scm.PairNoiseSigma

	v.add(Section{
		Heading: "The ground truth model",
		Equations: append(model.Equations(),
			fmt.Sprintf("X ~ N(0, 1) and Y ~ N(0, %s) since Var(Y) = b²·Var(X) + Var(N_Y)", f2(varY))),
		Graphs: []Graph{before},
	})

	summary := Table{
		Caption: "Empirical distributions",
		Header:  []string{"Variable", "Observational mean", "Observational sd", "Mean after " + iv.String(), "Sd after " + iv.String(), "Expected mean", "Expected sd"},
	}

	expected := map[string][2]float64{}

	switch target {
	case "X":
		expected["X"] = [2]float64{value, 0}
		expected["Y"] = [2]float64{slope * value, scm.PairNoiseSigma}
	default:
		expected["X"] = [2]float64{0, 1}
		expected["Y"] = [2]float64{value, 0}
	}

	for _, name := range model.Names() {
		o, err := stats.Describe(obs.MustColumn(name))
		if err != nil {
			return err
		}

		i, err := stats.Describe(post.MustColumn(name))
		if err != nil {
			return err
		}

		summary.Rows = append(summary.Rows, []string{
			name, f2(o.Mean), f2(o.StdDev), f2(i.Mean), f2(i.StdDev),
			f2(expected[name][0]), f2(expected[name][1]),
		})
	}

	other := "Y"
	if target == "Y" {
		other = "X"
	}

	hObs, err := newHistogram("Original "+other, obs.MustColumn(other), histogramBins)
	if err != nil {
		return err
	}

	hPost, err := newHistogram(other+" after "+iv.String(), post.MustColumn(other), histogramBins)
	if err != nil {
		return err
	}

	section := Section{
		Heading:    "Perform an intervention",
		Equations:  world.Equations(),
		Tables:     []Table{summary},
		Graphs:     []Graph{after},
		Histograms: []Histogram{hObs, hPost},
	}

	if target == "X" {
		section.Notes = append(section.Notes, Note{
			Level: NoteSuccess,
			Text: fmt.Sprintf("Intervening on the cause moves the effect: Y ~ N(%s, %s) instead of N(0, %s).",
				f2(slope*value), f2(scm.PairNoiseSigma*scm.PairNoiseSigma), f2(varY)),
		})
	} else {
		section.Notes = append(section.Notes, Note{
			Level: NoteSuccess,
			Text:  "Intervening on the effect cuts X → Y and leaves the mechanism of X untouched: X ~ N(0, 1) as before.",
		})
	}

	if math.Abs(slope) < 0.05 {
		section.Notes = append(section.Notes, Note{
			Level: NoteWarning,
			Text:  "With a slope this close to zero X barely acts on Y and both interventions look alike.",
		})
	}

	v.add(section)

	v.add(Section{
		Heading: "Intervening is not conditioning",
		Paragraphs: []string{
			"Seeing Y = y tells us something about X, because X is one of its causes. Setting Y = y " +
				"breaks the assignment of Y and tells us nothing about X: P(X | do(Y := y)) = P(X) " +
				"while P(X | Y = y) ≠ P(X).",
		},
	})

	v.Data = obs

	return nil
}
