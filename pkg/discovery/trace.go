package discovery

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/go-faster/jx"

	"github.com/askiada/go-causality/pkg/cgraph"
)

// EntryKind tells what a trace entry records.
type EntryKind string

const (
	KindLevel    EntryKind = "level"
	KindTest     EntryKind = "test"
	KindSkip     EntryKind = "skip"
	KindError    EntryKind = "error"
	KindRemove   EntryKind = "remove"
	KindStop     EntryKind = "stop"
	KindLimit    EntryKind = "limit"
	KindComplete EntryKind = "complete"
	KindCollider EntryKind = "collider"
	KindConflict EntryKind = "conflict"
	KindMeek     EntryKind = "meek"
)

// Entry is one line of the CI test log.
type Entry struct {
	Kind  EntryKind
	Level int
	// X and Y are the tested pair, or the two sides of a collider.
	X string
	Y string
	Z []string
	// Collider is the middle node of a collider entry.
	Collider string
	// From and To give the orientation of meek and conflict entries.
	From   string
	To     string
	Rule   cgraph.MeekRule
	Result TestResult
	Err    string
}

func (e Entry) String() string {
	switch e.Kind {
	case KindLevel:
		return fmt.Sprintf("--- Testing with conditioning set size k = %d ---", e.Level)
	case KindTest:
		if e.Result.Alpha > 0 {
			cmp := "<="
			if e.Result.Independent {
				cmp = ">"
			}

			return fmt.Sprintf("Test: %s _||_ %s | %s?  p-val: %.4f %s %s.  Verdict: %s",
				e.X, e.Y, formatSet(e.Z), e.Result.PValue, cmp, num(e.Result.Alpha), verdict(e.Result))
		}

		return fmt.Sprintf("Test: %s _||_ %s | %s?  d-separated: %t.  Verdict: %s",
			e.X, e.Y, formatSet(e.Z), e.Result.Independent, verdict(e.Result))
	case KindSkip:
		return fmt.Sprintf("SKIPPED: %s _||_ %s | %s (n_samples=%d is too small for |S|=%d)",
			e.X, e.Y, formatSet(e.Z), e.Result.N, len(e.Z))
	case KindError:
		return fmt.Sprintf("ERROR: %s _||_ %s | %s. Error: %s", e.X, e.Y, formatSet(e.Z), e.Err)
	case KindRemove:
		return fmt.Sprintf("REMOVING edge %s -- %s based on S = %s", e.X, e.Y, formatSet(e.Z))
	case KindStop:
		return fmt.Sprintf("Stopping: No node has %d neighbors left.", e.Level)
	case KindLimit:
		return fmt.Sprintf("Stopping: conditioning set size limit %d reached.", e.Level)
	case KindComplete:
		return "--- Skeleton search complete ---"
	case KindCollider:
		return fmt.Sprintf("COLLIDER: %s -> %s <- %s (%s not in S = %s)", e.X, e.Collider, e.Y, e.Collider, formatSet(e.Z))
	case KindConflict:
		return fmt.Sprintf("CONFLICT: keeping %s -> %s over collider %s -> %s <- %s", e.From, e.To, e.X, e.Collider, e.Y)
	case KindMeek:
		return fmt.Sprintf("MEEK %s: orienting %s -> %s", e.Rule, e.From, e.To)
	default:
		return string(e.Kind)
	}
}

func verdict(res TestResult) string {
	if res.Independent {
		return "INDEPENDENT"
	}

	return "Dependent"
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func formatSet(s []string) string {
	return "{" + strings.Join(s, ", ") + "}"
}

// Trace is the ordered log of a PC run.
type Trace []Entry

// Lines renders every entry.
func (t Trace) Lines() []string {
	res := make([]string, 0, len(t))
	for _, e := range t {
		res = append(res, e.String())
	}

	return res
}

func (t Trace) String() string {
	return strings.Join(t.Lines(), "\n")
}

// Filter keeps the entries of the given kinds.
func (t Trace) Filter(kinds ...EntryKind) Trace {
	var res Trace

	for _, e := range t {
		for _, k := range kinds {
			if e.Kind == k {
				res = append(res, e)

				break
			}
		}
	}

	return res
}

// Encode writes the trace as an array of {"kind", "line"} objects.
func (t Trace) Encode(e *jx.Encoder) {
	e.ArrStart()

	for _, entry := range t {
		e.ObjStart()
		e.FieldStart("kind")
		e.Str(string(entry.Kind))
		e.FieldStart("line")
		e.Str(entry.String())
		e.ObjEnd()
	}

	e.ArrEnd()
}
