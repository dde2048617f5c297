package lesson

import (
	"context"
)

var introduction = Lesson{
	Slug:    "introduction",
	Title:   "From Association to Causation",
	Icon:    "📖",
	Summary: "Why correlations are not enough and what a structural causal model adds.",
	run:     runIntroduction,
}

var conclusion = Lesson{
	Slug:    "conclusion",
	Title:   "Final Thoughts",
	Icon:    "🏁",
	Summary: "What each page showed, and where to go next.",
	run:     runConclusion,
}

func runIntroduction(_ context.Context, _ *Book, _ *Params, v *View) error {
	v.add(Section{
		Heading: "Seeing is not doing",
		Paragraphs: []string{
			"Statistics describes the joint distribution of what we observe. Causal questions ask what " +
				"happens when we change the system: what if we raised the price, gave the treatment, " +
				"removed the confounder. Two very different systems can produce the same observational " +
				"distribution and still react in opposite ways to the same action.",
			"A structural causal model (SCM) answers both kinds of questions. Every variable is assigned " +
				"by a mechanism of its direct causes and an independent noise term. The mechanisms induce a " +
				"directed acyclic graph, and the noise distribution induces the observational distribution.",
		},
		Equations: []string{
			"C := N_C",
			"E := 4·C + N_E",
			"N_C, N_E ~ N(0, 1) independent",
		},
	})

	v.add(Section{
		Heading: "The ladder of causation",
		Tables: []Table{{
			Header: []string{"Rung", "Question", "Needs", "Page"},
			Rows: [][]string{
				{"Association", "What does observing X tell me about Y?", "P(Y | X)", "Confounding vs. Mediation"},
				{"Intervention", "What happens to Y if I set X?", "P(Y | do(X))", "The Asymmetry of Interventions"},
				{"Counterfactual", "What would Y have been had X been different for this unit?", "the SCM itself", "Counterfactuals"},
			},
		}},
		Paragraphs: []string{
			"The do-operator replaces one assignment by a constant and leaves every other mechanism " +
				"untouched. That locality is what makes interventions predictable from the model.",
		},
	})

	v.add(Section{
		Heading: "Learning the graph",
		Paragraphs: []string{
			"The last pages turn the question around: given only data, which graphs are compatible " +
				"with it? The causal Markov property links d-separation in the graph to conditional " +
				"independence in the data. The PC algorithm exploits it to recover the graph up to its " +
				"Markov equivalence class, and hidden common causes show where that assumption breaks.",
		},
	})

	return nil
}

func runConclusion(_ context.Context, b *Book, _ *Params, v *View) error {
	recap := Table{Header: []string{"Page", "Takeaway"}}

	takeaways := map[string]string{
		interventions.Slug:     "Intervening on a cause moves its effect, intervening on an effect leaves its cause alone.",
		counterfactuals.Slug:   "Abduction pins the noise of one unit, so the model can replay its history under another action.",
		mechanisms.Slug:        "The mechanism of an effect is invariant when the distribution of its cause changes.",
		confounding.Slug:       "Adjust for confounders, never for mediators when the total effect is the target.",
		markov.Slug:            "Chains and forks are blocked by conditioning, colliders are opened by it.",
		pcAlgorithm.Slug:       "Independence tests recover the skeleton and the v-structures, Meek's rules do the rest.",
		hiddenConfounding.Slug: "A hidden common cause makes PC draw arrows that are not there, a PAG says so.",
	}

	for _, l := range b.lessons {
		if t, ok := takeaways[l.Slug]; ok {
			recap.Rows = append(recap.Rows, []string{l.Icon + " " + l.Title, t})
		}
	}

	v.add(Section{
		Heading: "What we saw",
		Tables:  []Table{recap},
	})

	v.add(Section{
		Heading: "Assumptions to keep in mind",
		Paragraphs: []string{
			"Every result of the course rests on assumptions that data alone cannot check: acyclic " +
				"mechanisms, independent noises, faithfulness of the distribution to the graph, and " +
				"for PC causal sufficiency. When they fail the algorithms still return an answer, " +
				"which is why the last pages compare it with the truth.",
		},
		Notes: []Note{{
			Level: NoteInfo,
			Text:  "Every sampling page reports its seed. Send it back to reproduce the exact same run.",
		}},
	})

	return nil
}
