package lesson

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/askiada/go-causality/pkg/cgraph"
	"github.com/askiada/go-causality/pkg/scm"
	"github.com/askiada/go-causality/pkg/stats"
)

const markovAlpha = 0.05

var markov = Lesson{
	Slug:    "causal-markov",
	Title:   "The Causal Markov Property & d-Separation",
	Icon:    "🗺️",
	Summary: "Chains, forks and colliders, and what conditioning does to each.",
	run:     runMarkov,
}

var junctionNotes = map[string]map[bool]Note{ //nolint: gochecknoglobals
	scm.Chain: {
		false: {Level: NoteInfo, Text: "X and Y are correlated: information flows X → Z → Y."},
		true:  {Level: NoteSuccess, Text: "The correlation vanishes: conditioning on the mediator Z blocks the chain."},
	},
	scm.Fork: {
		false: {Level: NoteInfo, Text: "X and Y are correlated through their common cause Z."},
		true:  {Level: NoteSuccess, Text: "The spurious correlation vanishes: conditioning on the confounder Z blocks the fork."},
	},
	scm.Collider: {
		false: {Level: NoteInfo, Text: "X and Y are independent: they are two separate causes of Z."},
		true:  {Level: NoteError, Text: "A correlation appears: conditioning on the collider Z opens the path (Berkson's paradox)."},
	},
}

func runMarkov(_ context.Context, _ *Book, p *Params, v *View) error {
	structure := p.Choice("structure", "Structure", scm.Chain, scm.Chain, scm.Fork, scm.Collider)
	n := p.Int("n", "Number of samples", 500, 100, 2000)
	condition := p.Bool("condition", "Condition on Z")
	seed := v.seed(p)

	if err := p.Err(); err != nil {
		return err
	}

	model, err := scm.Junction(structure)
	if err != nil {
		return err
	}

	data, err := model.Sample(scm.NewRand(seed), n)
	if err != nil {
		return errors.Wrap(err, "unable to sample")
	}

	x, y, z := data.MustColumn("X"), data.MustColumn("Y"), data.MustColumn("Z")

	graph, err := dagGraph("The "+structure, model.DAG())
	if err != nil {
		return err
	}

	title := "X vs. Y"
	if condition {
		title = "X vs. Y conditioned on Z"

		if x, err = stats.Residuals(x, z); err != nil {
			return err
		}

		if y, err = stats.Residuals(y, z); err != nil {
			return err
		}
	}

	r, err := stats.Correlation(x, y)
	if err != nil {
		return err
	}

	hx, err := newHistogram(residualTitle("X", condition), x, histogramBins)
	if err != nil {
		return err
	}

	hy, err := newHistogram(residualTitle("Y", condition), y, histogramBins)
	if err != nil {
		return err
	}

	v.add(Section{
		Heading:    title,
		Equations:  model.Equations(),
		Graphs:     []Graph{graph},
		Paragraphs: []string{"Correlation: " + f3(r) + "."},
		Histograms: []Histogram{hx, hy},
		Notes:      []Note{junctionNotes[structure][condition]},
	})

	table, err := separationTable(model.DAG(), data.Names(), func(a, b string, given []string) (stats.CIResult, error) {
		cond := make([][]float64, 0, len(given))
		for _, g := range given {
			cond = append(cond, data.MustColumn(g))
		}

		return stats.PartialCorrTest(data.MustColumn(a), data.MustColumn(b), cond, markovAlpha)
	})
	if err != nil {
		return err
	}

	v.add(Section{
		Heading: "d-separation against the data",
		Paragraphs: []string{
			"The causal Markov property says that d-separated variables are conditionally " +
				"independent. Faithfulness adds the converse. Every pair of the graph is checked with " +
				"and without the third variable, at level " + f2(markovAlpha) + ".",
		},
		Tables: []Table{table},
	})

	v.Data = data

	return nil
}

func residualTitle(name string, condition bool) string {
	if condition {
		return name + " residuals given Z"
	}

	return name
}

type ciFunc func(a, b string, given []string) (stats.CIResult, error)

// separationTable confronts d-separation in d with a test on the data for every pair of nodes,
// unconditionally then given each remaining node.
func separationTable(d *cgraph.DAG, nodes []string, test ciFunc) (Table, error) {
	table := Table{Header: []string{"Query", "d-separated", "Partial correlation", "p-value", "Test verdict", "Agree"}}

	for i, a := range nodes {
		for _, b := range nodes[i+1:] {
			sets := [][]string{{}}

			for _, c := range nodes {
				if c != a && c != b {
					sets = append(sets, []string{c})
				}
			}

			for _, given := range sets {
				sep, err := d.DSeparated(a, b, given)
				if err != nil {
					return Table{}, err
				}

				res, err := test(a, b, given)
				if err != nil {
					return Table{}, err
				}

				verdict := "dependent"
				if res.Independent {
					verdict = "independent"
				}

				table.Rows = append(table.Rows, []string{
					fmt.Sprintf("%s ⊥ %s | {%s}", a, b, strings.Join(given, ", ")),
					strconv.FormatBool(sep),
					f3(res.R),
					f4(res.PValue),
					verdict,
					strconv.FormatBool(sep == res.Independent),
				})
			}
		}
	}

	return table, nil
}
