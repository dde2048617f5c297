package pipeline

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/askiada/go-causality/pkg/pipeline/model"
)

type outputHook func(iterationDuration, computationDuration time.Duration) error

func sequentialOneToManyFn[I any, O any](ctx context.Context, goIdx int, input *model.Step[I], output *model.Step[O], oneToManyFn func(context.Context, I) ([]O, error), hook outputHook) error {
	for {
		start := time.Now()

		select {
		case <-ctx.Done():
			return errors.Wrapf(ctx.Err(), "go routine %d:", goIdx)
		case in, ok := <-input.Output:
			if !ok {
				return nil
			}

			startFn := time.Now()

			outs, err := oneToManyFn(ctx, in)
			if err != nil {
				return errors.Wrapf(err, "go routine %d:", goIdx)
			}

			endFn := time.Since(startFn)

			for _, out := range outs {
				// check the context again so running goroutines stop feeding the pipeline
				select {
				case <-ctx.Done():
					return errors.Wrapf(ctx.Err(), "go routine %d:", goIdx)
				case output.Output <- out:
				}
			}

			if hook != nil {
				if err := hook(time.Since(start)-endFn, endFn); err != nil {
					return errors.Wrapf(err, "go routine %d:", goIdx)
				}
			}
		}
	}
}

func runOneToMany[I any, O any](ctx context.Context, input *model.Step[I], output *model.Step[O], oneToManyFn func(context.Context, I) ([]O, error), hook outputHook) error {
	concurrent := output.Details.Concurrent
	if concurrent <= 1 {
		return sequentialOneToManyFn(ctx, 0, input, output, oneToManyFn, hook)
	}

	errGrp, dCtx := errgroup.WithContext(ctx)
	errGrp.SetLimit(concurrent)

	// every consumer stops as soon as one of them fails
	for goIdx := range concurrent {
		errGrp.Go(func() error {
			return sequentialOneToManyFn(dCtx, goIdx, input, output, oneToManyFn, hook)
		})
	}

	return errGrp.Wait()
}

func runOneToOne[I any, O any](ctx context.Context, input *model.Step[I], output *model.Step[O], oneToOneFn func(context.Context, I) (O, error), hook outputHook) error {
	return runOneToMany(ctx, input, output, func(ctx context.Context, in I) ([]O, error) {
		out, err := oneToOneFn(ctx, in)
		if err != nil {
			return nil, err
		}

		return []O{out}, nil
	}, hook)
}

func prepareStep[I any, O any](p *Pipeline, name string, input *model.Step[I], opts ...StepOption[O]) (*model.Step[O], outputHook, error) {
	if p == nil {
		return nil, nil, ErrPipelineMustBeSet
	}

	if input == nil {
		return nil, nil, ErrInputMustBeSet
	}

	step := newStep(name, model.NormalStepType, opts...)
	parent := details(input)

	for _, opt := range p.opts {
		err := opt.PrepareStep(parent, step.Details)
		if err != nil {
			return nil, nil, errors.Wrap(err, "unable to run before step function")
		}
	}

	if len(p.opts) == 0 {
		return step, nil, nil
	}

	hook := func(iterationDuration, computationDuration time.Duration) error {
		for _, opt := range p.opts {
			err := opt.OnStepOutput(parent, step.Details, iterationDuration, computationDuration)
			if err != nil {
				return errors.Wrap(err, "unable to run step output function")
			}
		}

		return nil
	}

	return step, hook, nil
}

// AddStepOneToOne adds a stage that maps every input value to exactly one output value.
func AddStepOneToOne[I any, O any](p *Pipeline, name string, input *model.Step[I], oneToOneFn func(context.Context, I) (O, error), opts ...StepOption[O]) (*model.Step[O], error) {
	step, hook, err := prepareStep(p, name, input, opts...)
	if err != nil {
		return nil, err
	}

	p.start(name, func(ctx context.Context) error {
		return runOneToOne(ctx, input, step, oneToOneFn, hook)
	}, func() {
		close(step.Output)
	})

	return step, nil
}

// AddStepOneToMany adds a stage that maps every input value to zero or more output values.
func AddStepOneToMany[I any, O any](p *Pipeline, name string, input *model.Step[I], oneToManyFn func(context.Context, I) ([]O, error), opts ...StepOption[O]) (*model.Step[O], error) {
	step, hook, err := prepareStep(p, name, input, opts...)
	if err != nil {
		return nil, err
	}

	p.start(name, func(ctx context.Context) error {
		return runOneToMany(ctx, input, step, oneToManyFn, hook)
	}, func() {
		close(step.Output)
	})

	return step, nil
}
