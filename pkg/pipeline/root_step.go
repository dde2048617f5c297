package pipeline

import (
	"context"

	"github.com/pkg/errors"

	"github.com/askiada/go-causality/pkg/pipeline/model"
)

// AddRootStep adds the stage that feeds the pipeline. stepFn pushes values to rootChan; the
// channel is closed once stepFn returns.
func AddRootStep[O any](p *Pipeline, name string, stepFn func(ctx context.Context, rootChan chan<- O) error, opts ...StepOption[O]) (*model.Step[O], error) {
	if p == nil {
		return nil, ErrPipelineMustBeSet
	}

	step := newStep(name, model.RootStepType, opts...)

	for _, opt := range p.opts {
		err := opt.PrepareStep(model.StartStep.Details, step.Details)
		if err != nil {
			return nil, errors.Wrap(err, "unable to run before step function")
		}
	}

	p.start(name, func(ctx context.Context) error {
		return stepFn(ctx, step.Output)
	}, func() {
		close(step.Output)
	})

	return step, nil
}
