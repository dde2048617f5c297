package cgraph

// Mark is the symbol at one end of an edge.
type Mark int

const (
	// Tail is the plain end of an edge: A -- B or the start of A --> B.
	Tail Mark = iota
	// Arrow is an arrowhead.
	Arrow
	// Circle means the end is undetermined. Only partial ancestral graphs use it.
	Circle
)

func (m Mark) String() string {
	switch m {
	case Tail:
		return "tail"
	case Arrow:
		return "arrow"
	case Circle:
		return "circle"
	default:
		return "unknown"
	}
}

// left renders the mark as it appears on the left side of an edge string.
func (m Mark) left() string {
	switch m {
	case Arrow:
		return "<"
	case Circle:
		return "o"
	default:
		return "-"
	}
}

// right renders the mark as it appears on the right side of an edge string.
func (m Mark) right() string {
	switch m {
	case Arrow:
		return ">"
	case Circle:
		return "o"
	default:
		return "-"
	}
}
