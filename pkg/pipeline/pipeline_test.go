package pipeline_test

import (
	"bytes"
	"context"
	"errors"
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askiada/go-causality/pkg/pipeline"
	"github.com/askiada/go-causality/pkg/pipeline/drawer"
	"github.com/askiada/go-causality/pkg/pipeline/measure"
	"github.com/askiada/go-causality/pkg/pipeline/model"
)

func emit(total int) func(ctx context.Context, rootChan chan<- int) error {
	return func(ctx context.Context, rootChan chan<- int) error {
		for i := range total {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case rootChan <- i:
			}
		}

		return nil
	}
}

func TestAddStepOneToOneNilPipe(t *testing.T) {
	t.Parallel()

	_, err := pipeline.AddStepOneToOne(nil, "step", &model.Step[int]{}, func(_ context.Context, i int) (int, error) {
		return i, nil
	})
	assert.ErrorIs(t, err, pipeline.ErrPipelineMustBeSet)
}

func TestAddStepOneToOneNilInput(t *testing.T) {
	t.Parallel()

	pipe, err := pipeline.New(t.Context())
	require.NoError(t, err)

	_, err = pipeline.AddStepOneToOne[int, int](pipe, "step", nil, func(_ context.Context, i int) (int, error) {
		return i, nil
	})
	assert.ErrorIs(t, err, pipeline.ErrInputMustBeSet)
}

func TestAddRootStepNilPipe(t *testing.T) {
	t.Parallel()

	_, err := pipeline.AddRootStep(nil, "root", emit(1))
	assert.ErrorIs(t, err, pipeline.ErrPipelineMustBeSet)
}

func TestAddSinkNil(t *testing.T) {
	t.Parallel()

	sinkFn := func(_ context.Context, _ int) error { return nil }

	err := pipeline.AddSink(nil, "sink", &model.Step[int]{}, sinkFn)
	assert.ErrorIs(t, err, pipeline.ErrPipelineMustBeSet)

	pipe, err := pipeline.New(t.Context())
	require.NoError(t, err)

	err = pipeline.AddSink[int](pipe, "sink", nil, sinkFn)
	assert.ErrorIs(t, err, pipeline.ErrInputMustBeSet)
}

func TestPipeline(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		concurrent int
	}{
		"sequential":   {concurrent: 1},
		"concurrent 5": {concurrent: 5},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			pipe, err := pipeline.New(t.Context())
			require.NoError(t, err)

			root, err := pipeline.AddRootStep(pipe, "root", emit(10))
			require.NoError(t, err)

			double, err := pipeline.AddStepOneToOne(pipe, "double", root, func(_ context.Context, i int) (int, error) {
				return i * 2, nil
			}, pipeline.StepConcurrency[int](tc.concurrent))
			require.NoError(t, err)

			split, err := pipeline.AddStepOneToMany(pipe, "split", double, func(_ context.Context, i int) ([]string, error) {
				return []string{strconv.Itoa(i), strconv.Itoa(-i)}, nil
			}, pipeline.StepBufferSize[string](4))
			require.NoError(t, err)

			var (
				mu  sync.Mutex
				got []string
			)

			err = pipeline.AddSink(pipe, "sink", split, func(_ context.Context, s string) error {
				mu.Lock()
				defer mu.Unlock()

				got = append(got, s)

				return nil
			})
			require.NoError(t, err)

			require.NoError(t, pipe.Run())

			expected := make([]string, 0, 20)
			for i := range 10 {
				expected = append(expected, strconv.Itoa(i*2), strconv.Itoa(-i*2))
			}

			assert.ElementsMatch(t, expected, got)
		})
	}
}

func TestPipelineError(t *testing.T) {
	t.Parallel()

	expectedErr := errors.New("bad value")

	pipe, err := pipeline.New(t.Context())
	require.NoError(t, err)

	root, err := pipeline.AddRootStep(pipe, "root", emit(100))
	require.NoError(t, err)

	step, err := pipeline.AddStepOneToOne(pipe, "step", root, func(_ context.Context, i int) (int, error) {
		if i == 7 {
			return 0, expectedErr
		}

		return i, nil
	})
	require.NoError(t, err)

	err = pipeline.AddSink(pipe, "sink", step, func(_ context.Context, _ int) error { return nil })
	require.NoError(t, err)

	err = pipe.Run()
	require.ErrorIs(t, err, expectedErr)
	assert.Contains(t, err.Error(), "step")
}

func TestPipelineCancel(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(t.Context())

	pipe, err := pipeline.New(ctx)
	require.NoError(t, err)

	root, err := pipeline.AddRootStep(pipe, "root", func(ctx context.Context, _ chan<- int) error {
		<-ctx.Done()

		return ctx.Err()
	})
	require.NoError(t, err)

	err = pipeline.AddSink(pipe, "sink", root, func(_ context.Context, _ int) error { return nil })
	require.NoError(t, err)

	cancel()

	assert.ErrorIs(t, pipe.Run(), context.Canceled)
}

func TestPipelineMeasureAndDrawer(t *testing.T) {
	t.Parallel()

	m := measure.NewDefaultMeasure()
	buf := &bytes.Buffer{}

	pipe, err := pipeline.New(t.Context(), measure.PipelineMeasure(m), drawer.PipelineDrawer(drawer.NewDOTDrawer(buf), m))
	require.NoError(t, err)

	root, err := pipeline.AddRootStep(pipe, "seeds", emit(5))
	require.NoError(t, err)

	step, err := pipeline.AddStepOneToOne(pipe, "square", root, func(_ context.Context, i int) (int, error) {
		return i * i, nil
	}, pipeline.StepConcurrency[int](2))
	require.NoError(t, err)

	sum := 0
	err = pipeline.AddSink(pipe, "sum", step, func(_ context.Context, i int) error {
		sum += i

		return nil
	})
	require.NoError(t, err)

	require.NoError(t, pipe.Run())
	assert.Equal(t, 30, sum)

	assert.Equal(t, []string{"start", "end", "seeds", "square", "sum"}, m.Names())
	assert.Equal(t, int64(5), m.GetMetric("square").Count())
	assert.Equal(t, int64(5), m.GetMetric("sum").Count())
	assert.Positive(t, m.GetMetric("end").GetTotalDuration())
	assert.Contains(t, m.GetMetric("square").AVGTransportDuration(), "seeds")

	dot := buf.String()
	assert.Contains(t, dot, `"start" -> "seeds"`)
	assert.Contains(t, dot, `"seeds" -> "square"`)
	assert.Contains(t, dot, `"square" -> "sum"`)
	assert.Contains(t, dot, `"sum" -> "end"`)
	assert.Contains(t, dot, `label="square\navg`)
}
