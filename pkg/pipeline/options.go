package pipeline

import "github.com/askiada/go-causality/pkg/pipeline/model"

// StepOption configures a step.
type StepOption[O any] func(s *model.Step[O])

// StepConcurrency sets how many goroutines process the input of the step.
func StepConcurrency[O any](concurrent int) StepOption[O] {
	return func(s *model.Step[O]) {
		s.Details.Concurrent = concurrent
	}
}

// StepBufferSize sets the capacity of the output channel of the step.
func StepBufferSize[O any](size int) StepOption[O] {
	return func(s *model.Step[O]) {
		s.Details.BufferSize = size
	}
}

func newStep[O any](name string, typ model.StepType, opts ...StepOption[O]) *model.Step[O] {
	step := &model.Step[O]{
		Details: &model.StepInfo{
			Type:       typ,
			Name:       name,
			Concurrent: 1,
		},
	}

	for _, opt := range opts {
		opt(step)
	}

	if step.Details.Concurrent < 1 {
		step.Details.Concurrent = 1
	}

	step.Output = make(chan O, step.Details.BufferSize)

	return step
}

// details returns the step info of input, or the shared start step for inputs built by hand.
func details[I any](input *model.Step[I]) *model.StepInfo {
	if input.Details == nil {
		return model.StartStep.Details
	}

	return input.Details
}
