package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/askiada/go-causality/pkg/pipeline/model"
)

type stepObserver struct {
	steps *prometheus.HistogramVec
}

func (so *stepObserver) New() error { return nil }

func (so *stepObserver) PrepareStep(_, _ *model.StepInfo) error { return nil }

func (so *stepObserver) PrepareSink(_, _ *model.StepInfo) error { return nil }

func (so *stepObserver) OnStepOutput(_, step *model.StepInfo, _, computationDuration time.Duration) error {
	so.steps.WithLabelValues(step.Name).Observe(computationDuration.Seconds())

	return nil
}

func (so *stepObserver) OnSinkOutput(_, step *model.StepInfo, _, computationDuration time.Duration) error {
	so.steps.WithLabelValues(step.Name).Observe(computationDuration.Seconds())

	return nil
}

func (so *stepObserver) AfterSink(_ *model.StepInfo, _ time.Duration) error { return nil }

func (so *stepObserver) Finish() error { return nil }

// PipelineSteps returns a pipeline option observing every step computation into c.Steps.
func (c *Collectors) PipelineSteps() model.PipelineOption {
	return &stepObserver{steps: c.Steps}
}
