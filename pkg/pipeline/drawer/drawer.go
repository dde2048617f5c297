// Package drawer renders the step graph of a pipeline as DOT, annotated with step timings.
package drawer

import (
	"io"

	"github.com/pkg/errors"

	"github.com/askiada/go-causality/pkg/cgraph"
)

// Drawer collects the steps and links of a pipeline and draws them.
type Drawer interface {
	// AddStep adds a step to the pipeline drawer.
	AddStep(stepName string) error
	// AddLink adds a link between parent and children steps.
	AddLink(parentStepName, childStepName string) error
	// SetLabel replaces the text shown for a step.
	SetLabel(stepName, label string)
	// Draw writes the pipeline graph.
	Draw() error
}

// DOTDrawer writes the pipeline as a DOT digraph.
type DOTDrawer struct {
	w      io.Writer
	dag    *cgraph.DAG
	labels map[string]string
}

// NewDOTDrawer creates a drawer writing to w.
func NewDOTDrawer(w io.Writer) *DOTDrawer {
	return &DOTDrawer{
		w:      w,
		dag:    cgraph.NewDAG(),
		labels: make(map[string]string),
	}
}

func (d *DOTDrawer) AddStep(stepName string) error {
	err := d.dag.AddNode(stepName)
	if err != nil && !errors.Is(err, cgraph.ErrDuplicateNode) {
		return errors.Wrapf(err, "unable to add step %s", stepName)
	}

	return nil
}

func (d *DOTDrawer) AddLink(parentStepName, childStepName string) error {
	err := d.dag.AddEdge(parentStepName, childStepName)
	if err != nil && !errors.Is(err, cgraph.ErrDuplicateEdge) {
		return errors.Wrapf(err, "unable to link %s to %s", parentStepName, childStepName)
	}

	return nil
}

func (d *DOTDrawer) SetLabel(stepName, label string) {
	d.labels[stepName] = label
}

func (d *DOTDrawer) Draw() error {
	return cgraph.WriteDAG(d.w, d.dag,
		cgraph.GraphAttribute("rankdir", "TB"),
		cgraph.NodeLabels(d.labels),
	)
}

var _ Drawer = (*DOTDrawer)(nil)
