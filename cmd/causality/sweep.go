package main

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"text/tabwriter"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/askiada/go-causality/internal/config"
	"github.com/askiada/go-causality/pkg/discovery"
	"github.com/askiada/go-causality/pkg/scm"
)

// shifts are the interventional regimes a scenario can be swept with.
var shifts = map[string]func() scm.Intervention{ //nolint: gochecknoglobals
	"diamond":       scm.DiamondShift,
	"gaussian-pair": scm.GaussianPairShift,
}

func sweepCommand(cfg *config.Config) *cobra.Command {
	var (
		scenario    string
		replicates  int
		samples     int
		alpha       float64
		seed        uint64
		shift       bool
		concurrency int
		graphPath   string
	)

	cmd := &cobra.Command{
		Use:     "sweep",
		Short:   "Runs PC on many replicates of a scenario and prints mean scores",
		Example: "  causality sweep --scenario diamond --replicates 20 -n 1000",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !cmd.Flags().Changed("alpha") {
				alpha = cfg.Discovery.Alpha
			}

			model, err := scm.Lookup(scenario)
			if err != nil {
				return err
			}

			sc := discovery.SweepConfig{
				Model:       model,
				Replicates:  replicates,
				Samples:     samples,
				Alpha:       alpha,
				Seed:        seed,
				Concurrency: concurrency,
				Options:     discoveryOptions(cfg, nil),
			}

			if shift {
				build, ok := shifts[scenario]
				if !ok {
					return errors.Wrapf(errBadFlag, "--shift: scenario %s has no interventional regime", scenario)
				}

				iv := build()
				sc.Shift = &iv
			}

			if graphPath != "" {
				f, err := os.Create(graphPath)
				if err != nil {
					return errors.Wrap(err, "unable to create graph file")
				}
				defer f.Close()

				sc.Graph = f
			}

			report, err := discovery.Sweep(cmd.Context(), sc)
			if err != nil {
				return err
			}

			return writeReport(cmd, report)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&scenario, "scenario", "diamond", "catalog model to sample")
	flags.IntVar(&replicates, "replicates", 10, "number of replicates")
	flags.IntVarP(&samples, "samples", "n", 1000, "rows per replicate")
	flags.Float64Var(&alpha, "alpha", 0.05, "significance level, defaults to the configured one")
	flags.Uint64Var(&seed, "seed", 1, "seed of the first replicate")
	flags.BoolVar(&shift, "shift", false, "also sample the scenario under its intervention")
	flags.IntVar(&concurrency, "concurrency", 1, "PC runs in flight")
	flags.StringVar(&graphPath, "graph", "", "write the DOT rendering of the sweep pipeline to this file")

	return cmd
}

func writeReport(cmd *cobra.Command, report *discovery.SweepReport) error {
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)

	regimes := make([]string, 0, len(report.Mean))
	for r := range report.Mean {
		regimes = append(regimes, r)
	}

	sort.Strings(regimes)

	fmt.Fprintln(tw, "REGIME\tRUNS\tEXACT\tSHD\tPRECISION\tRECALL\tORIENTATION")

	for _, r := range regimes {
		m := report.Mean[r]
		fmt.Fprintf(tw, "%s\t%d\t%d\t%.2f\t%.2f\t%.2f\t%.2f\n",
			r, m.Runs, m.Exact, m.SHD, m.Precision, m.Recall, m.Orientation)
	}

	steps := make([]string, 0, len(report.StepDurations))
	for s := range report.StepDurations {
		steps = append(steps, s)
	}

	sort.Strings(steps)

	fmt.Fprintln(tw)
	fmt.Fprintln(tw, "STEP\tMEAN DURATION")

	for _, s := range steps {
		fmt.Fprintf(tw, "%s\t%s\n", s, report.StepDurations[s])
	}

	fmt.Fprintf(tw, "\ntotal\t%s\t%s replicates\n", report.Duration, strconv.Itoa(len(report.Replicates)))

	return errors.Wrap(tw.Flush(), "unable to write report")
}
