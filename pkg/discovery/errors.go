package discovery

import "github.com/pkg/errors"

var (
	ErrNoNodes           = errors.New("at least two nodes are required")
	ErrDuplicateNode     = errors.New("node listed twice")
	ErrInvalidReplicates = errors.New("replicates must be positive")
	ErrModelMustBeSet    = errors.New("model must be set")
)
