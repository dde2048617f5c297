// Package main provides the CLI entrypoint of the causality course.
// It wires subcommands (serve, simulate, discover, sweep), loads configuration, and initializes logging.
package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/askiada/go-causality/internal/config"
	"github.com/askiada/go-causality/pkg/discovery"
	"github.com/askiada/go-causality/pkg/logger"
	"github.com/askiada/go-causality/pkg/metrics"
)

// discoveryOptions turns the discovery section of cfg into PC options.
func discoveryOptions(cfg *config.Config, collectors *metrics.Collectors) []discovery.Option {
	opts := []discovery.Option{discovery.WithMaxConditioningSize(cfg.Discovery.MaxConditioningSize)}

	// zero keeps the GOMAXPROCS default
	if cfg.Discovery.Concurrency > 0 {
		opts = append(opts, discovery.WithConcurrency(cfg.Discovery.Concurrency))
	}

	if collectors != nil {
		opts = append(opts, discovery.WithMetrics(collectors))
	}

	return opts
}

func newRootCommand() *cobra.Command {
	var (
		configPath string
		cfg        = new(config.Config)
	)

	rootCmd := &cobra.Command{
		Use:           "causality",
		Short:         "An interactive causal inference course and its engine",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			loaded, err := config.Load(configPath)
			if err != nil {
				return err
			}

			*cfg = *loaded

			logger.Setup(cfg.Environment)
			logger.Debug(cmd.Context(), "config loaded", zap.String("path", configPath))

			return nil
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "config.yml", "Config File Path")

	rootCmd.AddCommand(
		serveCommand(cfg),
		simulateCommand(cfg),
		discoverCommand(cfg),
		sweepCommand(cfg),
	)

	return rootCmd
}

// main sets up the root Cobra command and executes the CLI.
func main() {
	ctx := context.Background()

	defer func() {
		if p := recover(); p != nil {
			logger.Error(ctx, "captured panic, exiting...", zap.Any("panic", p))
			logger.Sync()

			panic(p)
		}
	}()

	err := newRootCommand().ExecuteContext(ctx)
	if err != nil {
		logger.Error(ctx, "command failed", zap.Error(err))
	}

	logger.Sync()

	if err != nil {
		os.Exit(1) //nolint: gocritic
	}
}
