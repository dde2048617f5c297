package scm

import "github.com/pkg/errors"

var (
	// ErrUnknownVariable is returned when a name does not refer to a model variable.
	ErrUnknownVariable = errors.New("scm: unknown variable")
	// ErrDuplicateVariable is returned when two variables share a name.
	ErrDuplicateVariable = errors.New("scm: duplicate variable")
	// ErrCycle is returned when the assignments form a directed cycle.
	ErrCycle = errors.New("scm: cyclic assignments")
	// ErrMissingNoise is returned when a variable has no noise distribution.
	ErrMissingNoise = errors.New("scm: missing noise")
	// ErrIncompleteObservation is returned when abduction lacks the value of a variable.
	ErrIncompleteObservation = errors.New("scm: incomplete observation")
	// ErrSoftCounterfactual is returned when a counterfactual query uses a soft intervention.
	ErrSoftCounterfactual = errors.New("scm: counterfactuals need hard interventions")
	// ErrNotBinary is returned when a binary model receives a value other than 0 or 1.
	ErrNotBinary = errors.New("scm: value must be 0 or 1")
	// ErrUnknownScenario is returned by the catalog for unknown names.
	ErrUnknownScenario = errors.New("scm: unknown scenario")
	// ErrInvalidSampleSize is returned when sampling fewer than one row.
	ErrInvalidSampleSize = errors.New("scm: invalid sample size")
)
