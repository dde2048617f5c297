package main

import (
	"math/rand/v2"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/askiada/go-causality/internal/config"
	"github.com/askiada/go-causality/internal/scmfile"
	"github.com/askiada/go-causality/pkg/logger"
	"github.com/askiada/go-causality/pkg/scm"
)

var errBadFlag = errors.New("bad flag")

// parseDo reads hard interventions written as NAME=VALUE.
func parseDo(values []string) ([]scm.Intervention, error) {
	res := make([]scm.Intervention, 0, len(values))

	for _, raw := range values {
		name, value, ok := strings.Cut(raw, "=")
		if !ok || strings.TrimSpace(name) == "" {
			return nil, errors.Wrapf(errBadFlag, "--do %q: want NAME=VALUE", raw)
		}

		x, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return nil, errors.Wrapf(errBadFlag, "--do %q: %v", raw, err)
		}

		res = append(res, scm.Hard(strings.TrimSpace(name), x))
	}

	return res, nil
}

// loadModel returns the model of an SCM file, or a catalog scenario when path is empty. The
// interventions declared by the file are returned separately.
func loadModel(path, scenario string) (*scm.Model, []scm.Intervention, error) {
	if path == "" {
		model, err := scm.Lookup(scenario)

		return model, nil, err
	}

	file, err := scmfile.Load(path)
	if err != nil {
		return nil, nil, err
	}

	return file.Model, file.Interventions, nil
}

func simulateCommand(_ *config.Config) *cobra.Command {
	var (
		scmPath       string
		scenario      string
		samples       int
		seed          uint64
		interventions bool
		do            []string
		hidden        bool
	)

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Samples a structural causal model and writes the data as CSV",
		Example: "  causality simulate --scenario diamond -n 500 --seed 7\n" +
			"  causality simulate --scm model.yaml --interventions --do A=1",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if samples < 1 {
				return errors.Wrapf(errBadFlag, "-n must be positive, got %d", samples)
			}

			model, fileInterventions, err := loadModel(scmPath, scenario)
			if err != nil {
				return err
			}

			ivs, err := parseDo(do)
			if err != nil {
				return err
			}

			if interventions {
				ivs = append(fileInterventions, ivs...)
			}

			if len(ivs) > 0 {
				if model, err = model.Intervene(ivs...); err != nil {
					return err
				}
			}

			if !cmd.Flags().Changed("seed") {
				seed = rand.Uint64() //nolint: gosec // a seed, not a secret
			}

			logger.Info(cmd.Context(), "sampling",
				zap.Strings("variables", model.Names()),
				zap.Int("interventions", len(ivs)),
				zap.Int("samples", samples),
				zap.Uint64("seed", seed),
			)

			sample := model.Sample
			if hidden {
				sample = model.SampleAll
			}

			data, err := sample(scm.NewRand(seed), samples)
			if err != nil {
				return err
			}

			return data.WriteCSV(cmd.OutOrStdout())
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&scmPath, "scm", "", "YAML file describing the model")
	flags.StringVar(&scenario, "scenario", "diamond", "catalog model used when --scm is not set: "+
		strings.Join(scm.Scenarios(), ", "))
	flags.IntVarP(&samples, "samples", "n", 1000, "number of rows")
	flags.Uint64Var(&seed, "seed", 0, "random seed, random when not set")
	flags.BoolVar(&interventions, "interventions", false, "apply the interventions declared in the --scm file")
	flags.StringSliceVar(&do, "do", nil, "hard intervention NAME=VALUE, can be repeated")
	flags.BoolVar(&hidden, "hidden", false, "include hidden variables in the output")

	return cmd
}
