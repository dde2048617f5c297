package cgraph

import "github.com/pkg/errors"

var (
	ErrUnknownNode   = errors.New("unknown node")
	ErrDuplicateNode = errors.New("node already exists")
	ErrDuplicateEdge = errors.New("edge already exists")
	ErrCycle         = errors.New("edge would create a cycle")
	ErrNotAdjacent   = errors.New("nodes are not adjacent")
	ErrSelfLoop      = errors.New("self loops are not allowed")
	ErrBadQuery      = errors.New("query nodes must not be part of the conditioning set")
)
