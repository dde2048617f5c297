package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/askiada/go-causality/internal/api"
	"github.com/askiada/go-causality/internal/config"
	"github.com/askiada/go-causality/internal/lesson"
	"github.com/askiada/go-causality/internal/web"
	"github.com/askiada/go-causality/pkg/logger"
	"github.com/askiada/go-causality/pkg/metrics"
	"github.com/askiada/go-causality/pkg/pipeline/model"
)

func setupServer(ctx context.Context, cfg *config.Config) (func(ctx context.Context), error) {
	renderer, err := web.New()
	if err != nil {
		return nil, err
	}

	collectors := metrics.Default()

	book := lesson.New(lesson.Config{
		Alpha:     cfg.Discovery.Alpha,
		Discovery: discoveryOptions(cfg, collectors),
		Pipeline:  []model.PipelineOption{collectors.PipelineSteps()},
	})

	server := api.NewServer(api.Deps{
		Book:     book,
		Renderer: renderer,
		Metrics:  collectors,
		Gatherer: prometheus.DefaultGatherer,
	}, api.NewOptions(cfg))

	go func() {
		logger.Info(ctx, "starting webserver...", zap.String("addr", cfg.HTTP.Addr))
		if err := server.ListenAndServe(); err != nil {
			if !errors.Is(err, http.ErrServerClosed) {
				logger.Error(ctx, "could not start webserver", zap.Error(err))
			}
		}
	}()

	return func(ctx context.Context) {
		logger.Info(ctx, "stopping webserver...")
		if err := server.Shutdown(ctx); err != nil {
			logger.Error(ctx, "could not stop webserver", zap.Error(err))
		}
	}, nil
}

func serveCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serves the course on the configured address",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			stopWebserver, err := setupServer(ctx, cfg)
			if err != nil {
				return err
			}

			// wait for interrupt
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.GracefulShutdownTimeout)
			defer cancel()

			stopWebserver(shutdownCtx)

			return nil
		},
	}

	return cmd
}
