package pipeline

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorChans(t *testing.T) {
	t.Parallel()

	ecs := errorChans{}
	ec1 := &errorChan{}
	ec2 := &errorChan{}
	doneChan := make(chan struct{}, 2)

	go func() {
		ecs.add(ec1)
		doneChan <- struct{}{}
	}()
	go func() {
		ecs.add(ec2)
		doneChan <- struct{}{}
	}()

	<-doneChan
	<-doneChan

	assert.ElementsMatch(t, []*errorChan{ec1, ec2}, ecs.all())
}

func TestNewErrorChan(t *testing.T) {
	t.Parallel()

	ec1 := newErrorChan("error chan", nil)
	assert.Equal(t, &errorChan{name: "error chan"}, ec1)

	c2 := make(chan error)
	ec2 := newErrorChan("error chan 2", c2)
	assert.Equal(t, &errorChan{name: "error chan 2", c: c2}, ec2)
}

func TestMergeErrorsAllNil(t *testing.T) {
	t.Parallel()

	outErrorChan := mergeErrors(newErrorChan("error chan", nil), newErrorChan("error chan 2", nil))

	gotErr, open := <-outErrorChan
	assert.False(t, open)
	assert.NoError(t, gotErr)
}

func TestMergeErrors(t *testing.T) {
	t.Parallel()

	chan1 := make(chan error, 1)
	chan2 := make(chan error, 1)
	expectedError1 := errors.New("error 1")
	expectedError2 := errors.New("error 2")

	chan1 <- expectedError1
	chan2 <- expectedError2

	close(chan1)
	close(chan2)

	var got []string
	for err := range mergeErrors(newErrorChan("first", chan1), newErrorChan("second", chan2), newErrorChan("none", nil)) {
		got = append(got, err.Error())
	}

	require.Len(t, got, 2)
	assert.ElementsMatch(t, []string{"first: error 1", "second: error 2"}, got)
}

func TestWaitForPipelineFirstError(t *testing.T) {
	t.Parallel()

	chan1 := make(chan error, 1)
	expectedError := errors.New("boom")
	chan1 <- expectedError
	close(chan1)

	chan2 := make(chan error)
	close(chan2)

	err := waitForPipeline(newErrorChan("failing", chan1), newErrorChan("ok", chan2))
	assert.ErrorIs(t, err, expectedError)
}
