package main

import (
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/askiada/go-causality/internal/config"
	"github.com/askiada/go-causality/pkg/cgraph"
	"github.com/askiada/go-causality/pkg/dataset"
	"github.com/askiada/go-causality/pkg/discovery"
	"github.com/askiada/go-causality/pkg/logger"
)

func readDataset(cmd *cobra.Command, path string) (*dataset.Dataset, error) {
	var r io.Reader = cmd.InOrStdin()

	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, errors.Wrap(err, "unable to open csv")
		}
		defer f.Close()

		r = f
	}

	return dataset.ReadCSV(r)
}

func discoverCommand(cfg *config.Config) *cobra.Command {
	var (
		csvPath string
		alpha   float64
		columns []string
		edges   bool
		trace   bool
	)

	cmd := &cobra.Command{
		Use:   "discover",
		Short: "Runs the PC algorithm on a CSV file and prints the CPDAG",
		Example: "  causality simulate --scenario diamond -n 2000 --seed 1 > diamond.csv\n" +
			"  causality discover --csv diamond.csv --trace",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !cmd.Flags().Changed("alpha") {
				alpha = cfg.Discovery.Alpha
			}

			if alpha <= 0 || alpha >= 1 {
				return errors.Wrapf(errBadFlag, "--alpha must be in (0, 1), got %g", alpha)
			}

			data, err := readDataset(cmd, csvPath)
			if err != nil {
				return err
			}

			if len(columns) > 0 {
				if data, err = data.Select(columns...); err != nil {
					return err
				}
			}

			res, err := discovery.Discover(cmd.Context(), data, alpha, discoveryOptions(cfg, nil)...)
			if err != nil {
				return err
			}

			logger.Info(cmd.Context(), "discovery done",
				zap.Int("rows", data.Len()),
				zap.Int("tests", res.Tests),
				zap.Duration("duration", res.Duration),
			)

			out := cmd.OutOrStdout()

			if edges {
				_, err = fmt.Fprintln(out, res.CPDAG.String())
			} else {
				err = cgraph.WriteMixed(out, res.CPDAG)
			}

			if err != nil {
				return errors.Wrap(err, "unable to write cpdag")
			}

			if !trace {
				return nil
			}

			_, err = fmt.Fprintln(out, res.Trace.String())

			return errors.Wrap(err, "unable to write trace")
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&csvPath, "csv", "-", "CSV file to read, - for stdin")
	flags.Float64Var(&alpha, "alpha", 0.05, "significance level, defaults to the configured one")
	flags.StringSliceVar(&columns, "columns", nil, "only use these columns")
	flags.BoolVar(&edges, "edges", false, "print the edge list instead of DOT")
	flags.BoolVar(&trace, "trace", false, "print the independence test log")

	return cmd
}
