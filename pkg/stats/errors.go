package stats

import "github.com/pkg/errors"

var (
	// ErrLengthMismatch is returned when samples that must be paired have different sizes.
	ErrLengthMismatch = errors.New("stats: length mismatch")
	// ErrTooFewSamples is returned when there is not enough data for the requested computation.
	ErrTooFewSamples = errors.New("stats: too few samples")
	// ErrSingular is returned when a regression design matrix does not have full rank.
	ErrSingular = errors.New("stats: singular design matrix")
	// ErrDegenerate is returned when a sample has zero variance.
	ErrDegenerate = errors.New("stats: zero variance")
)
