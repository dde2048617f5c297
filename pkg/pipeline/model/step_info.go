package model

// StepType tells which kind of stage a step is.
type StepType string

const (
	RootStepType   StepType = "root"
	NormalStepType StepType = "step"
	SinkStepType   StepType = "sink"
)

// StepInfo describes a stage of the pipeline.
type StepInfo struct {
	Type       StepType
	Name       string
	Concurrent int
	BufferSize int
}

var (
	// StartStep is the virtual parent of root steps and of hand-made input steps.
	StartStep = &Step[any]{Details: &StepInfo{Name: "start"}} //nolint: gochecknoglobals
	// EndStep is the virtual child of every sink.
	EndStep = &Step[any]{Details: &StepInfo{Name: "end"}} //nolint: gochecknoglobals
)

// Step is the output side of a stage. Downstream stages read Output.
type Step[O any] struct {
	Output  chan O
	Details *StepInfo
}
