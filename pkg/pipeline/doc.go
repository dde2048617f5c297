// Package pipeline runs typed processing stages connected by channels.
//
// A pipeline starts with a root step that emits values, goes through any number of one-to-one or
// one-to-many steps, each optionally running several goroutines, and ends with sinks. Every
// stage runs in its own goroutine as soon as it is added; Run waits for all of them and returns
// the first error. On error the shared context is cancelled, so the remaining stages drain and
// stop.
//
// Options implementing model.PipelineOption observe the pipeline: they are told about every
// step when it is added and about every value it emits. The measure package records timings,
// the drawer package renders the step graph.
package pipeline
