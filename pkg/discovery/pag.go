package discovery

import (
	"fmt"

	"github.com/askiada/go-causality/pkg/cgraph"
)

// ReferencePAG is the partial ancestral graph of the M-graph scenario over its observed
// variables: A --> B --> C, C o-> E and D <-> E. D <-> E records the hidden common cause of D
// and E, and the circle at C says the data cannot tell whether C causes E or shares a hidden
// cause with it.
func ReferencePAG() *cgraph.Mixed {
	g := cgraph.NewMixed("A", "B", "C", "D", "E")

	_ = g.AddEdge("A", "B", cgraph.Tail, cgraph.Arrow)
	_ = g.AddEdge("B", "C", cgraph.Tail, cgraph.Arrow)
	_ = g.AddEdge("C", "E", cgraph.Circle, cgraph.Arrow)
	_ = g.AddEdge("D", "E", cgraph.Arrow, cgraph.Arrow)

	return g
}

// DisagreementKind classifies how a PC output departs from a PAG.
type DisagreementKind string

const (
	// MissingEdge is an adjacency of the PAG that PC removed.
	MissingEdge DisagreementKind = "missing edge"
	// ExtraEdge is an adjacency PC kept that the PAG does not have.
	ExtraEdge DisagreementKind = "extra edge"
	// MissedConfounding is a PAG edge A <-> B that PC did not draw as bidirected.
	MissedConfounding DisagreementKind = "missed confounding"
	// OverClaimed is a PAG circle mark where PC committed to a tail or an arrow.
	OverClaimed DisagreementKind = "over-claimed"
	// WrongMark is a definite PAG mark PC contradicts.
	WrongMark DisagreementKind = "wrong mark"
	// Undecided is a definite PAG mark PC left undirected.
	Undecided DisagreementKind = "undecided"
)

// Disagreement is an edge where a PC output and a PAG differ.
type Disagreement struct {
	Kind DisagreementKind
	A    string
	B    string
	// PC and PAG render the edge in each graph, empty when absent.
	PC  string
	PAG string
}

func (d Disagreement) String() string {
	return fmt.Sprintf("%s: PC has %q, PAG has %q", d.Kind, orNone(d.PC), orNone(d.PAG))
}

func orNone(s string) string {
	if s == "" {
		return "no edge"
	}

	return s
}

// Diagnose lists the pairs of nodes of pag where pc disagrees with it, one entry per pair.
func Diagnose(pc, pag *cgraph.Mixed) []Disagreement {
	var res []Disagreement

	nodes := pag.Nodes()

	for i, a := range nodes {
		for _, b := range nodes[i+1:] {
			pcEdge, inPC := pc.Edge(a, b)
			pagEdge, inPAG := pag.Edge(a, b)

			d := Disagreement{A: a, B: b}
			if inPC {
				d.PC = pcEdge.String()
			}

			if inPAG {
				d.PAG = pagEdge.String()
			}

			switch {
			case !inPC && !inPAG:
				continue
			case !inPC:
				d.Kind = MissingEdge
			case !inPAG:
				d.Kind = ExtraEdge
			default:
				kind, ok := compareMarks(pcEdge, pagEdge)
				if !ok {
					continue
				}

				d.Kind = kind
			}

			res = append(res, d)
		}
	}

	return res
}

func compareMarks(pc, pag cgraph.MixedEdge) (DisagreementKind, bool) {
	if pag.MarkA == cgraph.Arrow && pag.MarkB == cgraph.Arrow {
		if pc.MarkA == cgraph.Arrow && pc.MarkB == cgraph.Arrow {
			return "", false
		}

		return MissedConfounding, true
	}

	var kind DisagreementKind

	for _, marks := range [2][2]cgraph.Mark{{pc.MarkA, pag.MarkA}, {pc.MarkB, pag.MarkB}} {
		got, want := marks[0], marks[1]

		switch {
		case got == want:
		case want == cgraph.Circle:
			kind = worst(kind, OverClaimed)
		case got == cgraph.Tail && want == cgraph.Arrow && pc.MarkA == cgraph.Tail && pc.MarkB == cgraph.Tail:
			kind = worst(kind, Undecided)
		default:
			kind = worst(kind, WrongMark)
		}
	}

	return kind, kind != ""
}

var severity = map[DisagreementKind]int{ //nolint: gochecknoglobals
	"":          0,
	OverClaimed: 1,
	Undecided:   2,
	WrongMark:   3,
}

func worst(a, b DisagreementKind) DisagreementKind {
	if severity[b] > severity[a] {
		return b
	}

	return a
}
