package lesson

import (
	"context"

	"github.com/pkg/errors"

	"github.com/askiada/go-causality/pkg/scm"
	"github.com/askiada/go-causality/pkg/stats"
)

var confounding = Lesson{
	Slug:    "confounding-vs-mediation",
	Title:   "Confounding vs. Mediation",
	Icon:    "🔗",
	Summary: "When adjusting for a third variable helps, and when it hurts.",
	run:     runConfounding,
}

type adjustmentScenario struct {
	model  func() *scm.Model
	third  string
	total  float64
	direct float64
	advice string
}

var adjustmentScenarios = map[string]adjustmentScenario{ //nolint: gochecknoglobals
	"confounding": {
		model:  scm.Confounding,
		third:  "Holiday_Season",
		total:  2,
		direct: 2,
		advice: "Holiday_Season drives both ad spend and sales. The naive slope mixes the seasonal " +
			"boost into the effect of ads, adjusting for the confounder recovers the true effect 2.",
	},
	"mediation": {
		model:  scm.Mediation,
		third:  "Website_Clicks",
		total:  50,
		direct: 0,
		advice: "Ads act on sales only through clicks. The naive slope is the total effect 10·5 = 50, " +
			"adjusting for the mediator blocks the causal path and wrongly reports no effect.",
	},
}

func runConfounding(_ context.Context, _ *Book, p *Params, v *View) error {
	name := p.Choice("scenario", "Scenario", "confounding", "confounding", "mediation")
	n := p.Int("n", "Number of samples", 500, 100, 5000)
	seed := v.seed(p)

	if err := p.Err(); err != nil {
		return err
	}

	sc := adjustmentScenarios[name]
	model := sc.model()

	data, err := model.Sample(scm.NewRand(seed), n)
	if err != nil {
		return errors.Wrap(err, "unable to sample")
	}

	ads, sales, third := data.MustColumn("Ad_Spend"), data.MustColumn("Sales"), data.MustColumn(sc.third)

	naive, err := stats.OLS(sales, ads)
	if err != nil {
		return err
	}

	adjusted, err := stats.OLS(sales, ads, third)
	if err != nil {
		return err
	}

	corr, err := stats.Correlation(ads, sales)
	if err != nil {
		return err
	}

	graph, err := dagGraph("Causal graph", model.DAG())
	if err != nil {
		return err
	}

	v.add(Section{
		Heading:   "The model",
		Equations: model.Equations(),
		Graphs:    []Graph{graph},
	})

	v.add(Section{
		Heading: "Two regressions",
		Tables: []Table{{
			Header: []string{"Regression", "Coefficient of Ad_Spend", "Causal quantity", "True value"},
			Rows: [][]string{
				{"Sales ~ Ad_Spend", f2(naive.Coefs[0]), "total effect", f2(sc.total)},
				{"Sales ~ Ad_Spend + " + sc.third, f2(adjusted.Coefs[0]), "direct effect", f2(sc.direct)},
			},
		}},
		Paragraphs: []string{"corr(Ad_Spend, Sales) = " + f3(corr) + "."},
		Notes:      []Note{{Level: NoteInfo, Text: sc.advice}},
	})

	v.add(Section{
		Heading: "The rule",
		Paragraphs: []string{
			"Adjust for a variable when it opens a back-door path into the treatment (a confounder). " +
				"Do not adjust for a variable on the causal path (a mediator) when the total effect is " +
				"the target. The data alone cannot tell the two situations apart: the graph decides.",
		},
	})

	v.Data = data

	return nil
}
