package lesson

import (
	"context"
	"fmt"
	"strconv"

	"github.com/pkg/errors"

	"github.com/askiada/go-causality/pkg/scm"
)

var counterfactuals = Lesson{
	Slug:    "counterfactuals",
	Title:   "Simulating Counterfactuals",
	Icon:    "💡",
	Summary: "Abduction, action and prediction on a single patient.",
	run:     runCounterfactuals,
}

const linearUnitSlope = 2

func outcomeLabel(b int) string {
	if b == 0 {
		return "cured (B = 0)"
	}

	return "blind (B = 1)"
}

func runCounterfactuals(_ context.Context, _ *Book, p *Params, v *View) error {
	t := p.Binary("t", "Observed treatment T", 1)
	b := p.Binary("b", "Observed outcome B", 1)
	cf := p.Binary("cf", "Counterfactual treatment T'", 0)
	measured := p.Binary("lab", "Lab measurement of N_B", -1)
	rate := p.Float("rate", "P(N_B = 1)", scm.DefaultConditionRate, 0, 1, 0.01)
	x := p.Float("x", "Observed X", 1, -10, 10, 0.5)
	y := p.Float("y", "Observed Y", 3, -50, 50, 0.5)
	xcf := p.Float("xcf", "Counterfactual X", 0, -10, 10, 0.5)

	if err := p.Err(); err != nil {
		return err
	}

	nb, err := scm.SolveNB(t, b)
	if err != nil {
		return err
	}

	cfB, err := scm.CounterfactualB(nb, cf)
	if err != nil {
		return err
	}

	treated, err := scm.ExpectedB(1, rate)
	if err != nil {
		return err
	}

	untreated, err := scm.ExpectedB(0, rate)
	if err != nil {
		return err
	}

	v.add(Section{
		Heading: "The model",
		Paragraphs: []string{
			"A treatment T cures an eye disease for most patients. A rare condition N_B reverses its " +
				"effect: for those patients the treatment causes blindness and no treatment cures them.",
		},
		Equations: []string{
			"N_B ~ Bern(" + f2(rate) + ")",
			"B := T·N_B + (1-T)·(1-N_B)",
		},
	})

	v.add(Section{
		Heading: "Abduction, action, prediction",
		Equations: []string{
			fmt.Sprintf("Abduction: T = %d and B = %d force N_B = %d", t, b, nb),
			fmt.Sprintf("Action: do(T := %d)", cf),
			fmt.Sprintf("Prediction: B' = %d·%d + (1-%d)·(1-%d) = %d", cf, nb, cf, nb, cfB),
		},
		Notes: []Note{{
			Level: NoteInfo,
			Text:  fmt.Sprintf("Had this patient received T = %d, they would have been %s.", cf, outcomeLabel(cfB)),
		}},
	})

	v.add(Section{
		Heading: "Population versus individual",
		Tables: []Table{{
			Header: []string{"Query", "Level", "Value"},
			Rows: [][]string{
				{"E[B | do(T := 1)]", "population", f3(treated)},
				{"E[B | do(T := 0)]", "population", f3(untreated)},
				{fmt.Sprintf("B under do(T := %d) given T = %d, B = %d", cf, t, b), "individual", strconv.Itoa(cfB)},
			},
		}},
		Paragraphs: []string{
			"An intervention averages the outcome over every possible noise value. A counterfactual " +
				"first narrows the noise down to the one value compatible with what was observed.",
		},
	})

	if measured >= 0 {
		confirmed, err := scm.CheckLab(nb, measured)
		if err != nil {
			return err
		}

		note := Note{Level: NoteSuccess, Text: fmt.Sprintf("Model confirmed: the lab measured N_B = %d as deduced.", measured)}
		if !confirmed {
			expected, err := scm.OutcomeB(t, measured)
			if err != nil {
				return err
			}

			note = Note{
				Level: NoteError,
				Text: fmt.Sprintf("Model falsified: with N_B = %d and T = %d the model predicts B = %d, "+
					"but B = %d was observed.", measured, t, expected, b),
			}
		}

		v.add(Section{Heading: "Are counterfactuals falsifiable?", Notes: []Note{note}})
	}

	return linearUnit(v, x, y, xcf)
}

func linearUnit(v *View, x, y, xcf float64) error {
	model := scm.LinearPair(linearUnitSlope)
	observed := map[string]float64{"X": x, "Y": y}

	noise, err := model.Abduct(observed)
	if err != nil {
		return errors.Wrap(err, "unable to abduct")
	}

	iv := scm.Hard("X", xcf)

	world, err := model.Counterfactual(observed, iv)
	if err != nil {
		return errors.Wrap(err, "unable to compute counterfactual")
	}

	table := Table{Header: []string{"Variable", "Observed", "Abducted noise", "Under " + iv.String()}}
	for _, name := range model.Names() {
		table.Rows = append(table.Rows, []string{name, f2(observed[name]), f2(noise[name]), f2(world[name])})
	}

	v.add(Section{
		Heading:   "The same recipe on a continuous model",
		Equations: model.Equations(),
		Tables:    []Table{table},
		Paragraphs: []string{
			fmt.Sprintf("The unit keeps its own noise N_Y = %s, so its counterfactual effect is Y' = %d·%s + %s = %s.",
				f2(noise["Y"]), linearUnitSlope, f2(xcf), f2(noise["Y"]), f2(world["Y"])),
		},
	})

	return nil
}
