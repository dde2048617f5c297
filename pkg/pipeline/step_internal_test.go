package pipeline

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/askiada/go-causality/pkg/pipeline/model"
)

func TestOneToOne(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		concurrent int
	}{
		"sequential":     {concurrent: 1},
		"sequential v2":  {concurrent: 0},
		"concurrent 2":   {concurrent: 2},
		"concurrent 100": {concurrent: 100},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			ctx, cancel := context.WithCancel(t.Context())
			defer cancel()

			input := &model.Step[int]{Output: createInputChan(t, 10)}
			got := make(chan []int, 1)
			output := &model.Step[int]{Output: make(chan int), Details: &model.StepInfo{Concurrent: tc.concurrent}}

			go func() {
				got <- processOutputChan(t, output.Output)
			}()

			go func() {
				defer close(output.Output)

				err := runOneToOne(ctx, input, output, func(_ context.Context, i int) (int, error) {
					return i * 2, nil
				}, nil)
				assert.NoError(t, err)
			}()

			assert.ElementsMatch(t, []int{0, 2, 4, 6, 8, 10, 12, 14, 16, 18}, <-got)
		})
	}
}

func TestOneToOneCancel(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		concurrent int
	}{
		"sequential":   {concurrent: 1},
		"concurrent 2": {concurrent: 2},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			ctx, cancel := context.WithCancel(t.Context())
			defer cancel()

			// nothing is ever sent so only the cancellation can stop the step
			input := &model.Step[int]{Output: make(chan int)}
			output := &model.Step[int]{Output: make(chan int, 10), Details: &model.StepInfo{Concurrent: tc.concurrent}}

			cancel()

			err := runOneToOne(ctx, input, output, func(_ context.Context, i int) (int, error) {
				return i, nil
			}, nil)
			assert.ErrorIs(t, err, context.Canceled)
		})
	}
}

func TestOneToOneError(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		concurrent int
	}{
		"sequential":   {concurrent: 1},
		"concurrent 3": {concurrent: 3},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			expectedErr := errors.New("odd value")
			input := &model.Step[int]{Output: createInputChan(t, 10)}
			output := &model.Step[int]{Output: make(chan int, 10), Details: &model.StepInfo{Concurrent: tc.concurrent}}

			err := runOneToOne(t.Context(), input, output, func(_ context.Context, i int) (int, error) {
				if i == 3 {
					return 0, expectedErr
				}

				return i, nil
			}, nil)
			assert.ErrorIs(t, err, expectedErr)
		})
	}
}

func TestOneToMany(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		concurrent int
	}{
		"sequential":   {concurrent: 1},
		"concurrent 4": {concurrent: 4},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			input := &model.Step[int]{Output: createInputChan(t, 4)}
			got := make(chan []int, 1)
			output := &model.Step[int]{Output: make(chan int), Details: &model.StepInfo{Concurrent: tc.concurrent}}

			go func() {
				got <- processOutputChan(t, output.Output)
			}()

			var hookCalls atomic.Int64

			go func() {
				defer close(output.Output)

				err := runOneToMany(t.Context(), input, output, func(_ context.Context, i int) ([]int, error) {
					res := make([]int, 0, i)
					for range i {
						res = append(res, i)
					}

					return res, nil
				}, func(_, _ time.Duration) error {
					hookCalls.Add(1)

					return nil
				})
				assert.NoError(t, err)
			}()

			assert.ElementsMatch(t, []int{1, 2, 2, 3, 3, 3}, <-got)
			assert.Equal(t, int64(4), hookCalls.Load())
		})
	}
}

func TestOneToManyHookError(t *testing.T) {
	t.Parallel()

	expectedErr := errors.New("hook failed")
	input := &model.Step[int]{Output: createInputChan(t, 3)}
	output := &model.Step[int]{Output: make(chan int, 10), Details: &model.StepInfo{Concurrent: 1}}

	err := runOneToMany(t.Context(), input, output, func(_ context.Context, i int) ([]int, error) {
		return []int{i}, nil
	}, func(_, _ time.Duration) error {
		return expectedErr
	})
	assert.ErrorIs(t, err, expectedErr)
}
