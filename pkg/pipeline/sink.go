package pipeline

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/askiada/go-causality/pkg/pipeline/model"
)

// AddSink adds a final stage that consumes every value of input, one at a time.
func AddSink[I any](pipe *Pipeline, name string, input *model.Step[I], sinkFn func(ctx context.Context, input I) error) error {
	if pipe == nil {
		return ErrPipelineMustBeSet
	}

	if input == nil {
		return ErrInputMustBeSet
	}

	step := &model.StepInfo{
		Type:       model.SinkStepType,
		Name:       name,
		Concurrent: 1,
	}
	parent := details(input)

	for _, opt := range pipe.opts {
		err := opt.PrepareSink(parent, step)
		if err != nil {
			return errors.Wrap(err, "unable to run before sink function")
		}
	}

	pipe.start(name, func(ctx context.Context) error {
		for {
			startInputChan := time.Now()

			select {
			case <-ctx.Done():
				return ctx.Err()
			case in, ok := <-input.Output:
				if !ok {
					return pipe.afterSink(step)
				}

				endInputChan := time.Since(startInputChan)
				startFn := time.Now()

				if err := sinkFn(ctx, in); err != nil {
					return err
				}

				endFn := time.Since(startFn)

				for _, opt := range pipe.opts {
					err := opt.OnSinkOutput(parent, step, endInputChan, endFn)
					if err != nil {
						return errors.Wrap(err, "unable to run sink output function")
					}
				}
			}
		}
	}, func() {})

	return nil
}

func (p *Pipeline) afterSink(step *model.StepInfo) error {
	total := time.Since(p.startTime)

	for _, opt := range p.opts {
		if err := opt.AfterSink(step, total); err != nil {
			return errors.Wrap(err, "unable to run after sink function")
		}
	}

	return nil
}
