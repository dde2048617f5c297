package model

import "time"

// PipelineOption observes a pipeline.
type PipelineOption interface {
	// New initialises the pipeline option.
	New() error

	pipelineStepOption
	pipelineSinkOption

	// Finish runs after the pipeline is finished.
	Finish() error
}

// pipelineStepOption defines the interface for step options at the pipeline level.
type pipelineStepOption interface {
	// PrepareStep runs when a root or intermediate step is added.
	PrepareStep(parentStep, step *StepInfo) error
	// OnStepOutput runs every time a step finished processing one input value.
	OnStepOutput(parentStep, step *StepInfo, iterationDuration, computationDuration time.Duration) error
}

// pipelineSinkOption defines the interface for sink options at the pipeline level.
type pipelineSinkOption interface {
	// PrepareSink runs when the sink is added.
	PrepareSink(parentStep, step *StepInfo) error
	// OnSinkOutput runs every time the sink consumed a value.
	OnSinkOutput(parentStep, step *StepInfo, iterationDuration, computationDuration time.Duration) error
	// AfterSink runs once the input of the sink is exhausted.
	AfterSink(step *StepInfo, totalDuration time.Duration) error
}
