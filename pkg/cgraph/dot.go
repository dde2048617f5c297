package cgraph

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/pkg/errors"
	"gopkg.in/go-playground/colors.v1" //nolint
)

//nolint:lll //this is a template
const dotTemplate = `strict {{.GraphType}} {
	{{range $k, $v := .Attributes}}
		{{$k}}="{{esc $v}}";
	{{end}}
	node [ {{range $k, $v := .NodeDefaults}}{{$k}}="{{esc $v}}", {{end}}];
	{{range $s := .Statements}}
		"{{esc .Source}}" {{if .Target}}{{$.EdgeOperator}} "{{esc .Target}}" [ {{range $k, $v := .EdgeAttributes}}{{$k}}="{{esc $v}}", {{end}}]{{else}}[ {{range $k, $v := .SourceAttributes}}{{$k}}="{{esc $v}}", {{end}}]{{end}};
	{{end}}
	}
	`

// escaper protects quoted DOT identifiers and attribute values.
var escaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`) //nolint: gochecknoglobals

type description struct {
	GraphType    string
	EdgeOperator string
	Attributes   map[string]string
	NodeDefaults map[string]string
	Labels       map[string]string
	Statements   []statement
}

type statement struct {
	Source           string
	Target           string
	SourceAttributes map[string]string
	EdgeAttributes   map[string]string
}

// DOTOption customises the rendered graph.
type DOTOption func(*description)

// GraphAttribute sets a graph level attribute such as rankdir.
func GraphAttribute(key, value string) DOTOption {
	return func(d *description) {
		d.Attributes[key] = value
	}
}

// NodeLabels overrides the label of some nodes. Nodes not in labels show their name.
func NodeLabels(labels map[string]string) DOTOption {
	return func(d *description) {
		for k, v := range labels {
			d.Labels[k] = v
		}
	}
}

// edge palette, shared with the lesson pages.
var (
	directedColor   = mustHex(31, 119, 180)
	undirectedColor = mustHex(127, 127, 127)
	bidirectedColor = mustHex(214, 39, 40)
	circleColor     = mustHex(255, 127, 14)
)

func mustHex(r, g, b uint8) string {
	c, err := colors.RGB(r, g, b)
	if err != nil {
		panic(err)
	}

	return c.ToHEX().String()
}

func newDescription(options ...DOTOption) description {
	desc := description{
		GraphType:    "digraph",
		EdgeOperator: "->",
		Attributes:   map[string]string{"rankdir": "LR"},
		NodeDefaults: map[string]string{"shape": "circle", "style": "filled", "fillcolor": "lightblue"},
		Labels:       make(map[string]string),
		Statements:   make([]statement, 0),
	}

	for _, option := range options {
		option(&desc)
	}

	return desc
}

// WriteDAG renders d as DOT. Hidden nodes are dashed and grey.
func WriteDAG(wrt io.Writer, d *DAG, options ...DOTOption) error {
	desc := newDescription(options...)

	for _, n := range d.Nodes() {
		attrs := map[string]string{}
		if d.IsHidden(n) {
			attrs["style"] = "filled,dashed"
			attrs["fillcolor"] = "lightgrey"
			attrs["fontcolor"] = "darkgrey"
		}

		if label, ok := desc.Labels[n]; ok {
			attrs["label"] = label
		}

		desc.Statements = append(desc.Statements, statement{Source: n, SourceAttributes: attrs})
	}

	for _, e := range d.Edges() {
		desc.Statements = append(desc.Statements, statement{
			Source:         e.From,
			Target:         e.To,
			EdgeAttributes: map[string]string{"color": directedColor},
		})
	}

	return renderDOT(wrt, desc)
}

// WriteMixed renders m as DOT. Every edge is drawn with dir=both and the arrowhead/arrowtail set
// from its marks: arrow -> normal, tail -> none, circle -> odot.
func WriteMixed(wrt io.Writer, m *Mixed, options ...DOTOption) error {
	desc := newDescription(options...)

	for _, n := range m.Nodes() {
		attrs := map[string]string{}
		if label, ok := desc.Labels[n]; ok {
			attrs["label"] = label
		}

		desc.Statements = append(desc.Statements, statement{Source: n, SourceAttributes: attrs})
	}

	for _, e := range m.Edges() {
		desc.Statements = append(desc.Statements, statement{
			Source: e.A,
			Target: e.B,
			EdgeAttributes: map[string]string{
				"dir":       "both",
				"arrowtail": arrowShape(e.MarkA),
				"arrowhead": arrowShape(e.MarkB),
				"color":     edgeColor(e),
			},
		})
	}

	return renderDOT(wrt, desc)
}

// DAGString is WriteDAG into a string.
func DAGString(d *DAG, options ...DOTOption) (string, error) {
	var buf bytes.Buffer
	if err := WriteDAG(&buf, d, options...); err != nil {
		return "", err
	}

	return buf.String(), nil
}

// MixedString is WriteMixed into a string.
func MixedString(m *Mixed, options ...DOTOption) (string, error) {
	var buf bytes.Buffer
	if err := WriteMixed(&buf, m, options...); err != nil {
		return "", err
	}

	return buf.String(), nil
}

func arrowShape(m Mark) string {
	switch m {
	case Arrow:
		return "normal"
	case Circle:
		return "odot"
	default:
		return "none"
	}
}

func edgeColor(e MixedEdge) string {
	switch {
	case e.MarkA == Circle || e.MarkB == Circle:
		return circleColor
	case e.MarkA == Arrow && e.MarkB == Arrow:
		return bidirectedColor
	case e.MarkA == Tail && e.MarkB == Tail:
		return undirectedColor
	default:
		return directedColor
	}
}

func renderDOT(wrt io.Writer, desc description) error {
	tpl, err := template.New("dotTemplate").Funcs(template.FuncMap{"esc": escaper.Replace}).Parse(dotTemplate)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	err = tpl.Execute(wrt, desc)
	if err != nil {
		return errors.Wrap(err, "unable to execute template")
	}

	return nil
}
