package scm

import (
	"math/rand/v2"
	"sort"
	"strings"

	"github.com/pkg/errors"

	"github.com/askiada/go-causality/pkg/cgraph"
	"github.com/askiada/go-causality/pkg/dataset"
)

// Variable is one structural assignment Name := Intercept + Σ Coefs[p]·p + Noise.
type Variable struct {
	Name      string
	Intercept float64
	Coefs     map[string]float64
	Noise     Noise
	// Hidden variables drive the model but are left out of observed samples.
	Hidden bool
}

// Parents returns the variables with a non-zero coefficient, sorted by name.
func (v Variable) Parents() []string {
	res := make([]string, 0, len(v.Coefs))

	for p, c := range v.Coefs {
		if c != 0 {
			res = append(res, p)
		}
	}

	sort.Strings(res)

	return res
}

// Equation renders the assignment, for example "Y := 2·X + N(0, 1.5)".
func (v Variable) Equation() string {
	terms := make([]string, 0, len(v.Coefs)+2)

	if v.Intercept != 0 {
		terms = append(terms, num(v.Intercept))
	}

	for _, p := range v.Parents() {
		switch c := v.Coefs[p]; c {
		case 1:
			terms = append(terms, p)
		default:
			terms = append(terms, num(c)+"·"+p)
		}
	}

	if c, ok := v.Noise.(Constant); !ok || c.Value != 0 || len(terms) == 0 {
		terms = append(terms, v.Noise.String())
	}

	return v.Name + " := " + strings.Join(terms, " + ")
}

func (v Variable) clone() Variable {
	coefs := make(map[string]float64, len(v.Coefs))
	for k, c := range v.Coefs {
		coefs[k] = c
	}

	v.Coefs = coefs

	return v
}

// Model is a validated structural causal model. It is immutable: interventions return a new
// Model.
type Model struct {
	names []string
	vars  map[string]Variable
	order []string
	dag   *cgraph.DAG
}

// NewModel validates the variables and builds the causal graph implied by their coefficients.
// Variables may reference parents declared after them.
func NewModel(vars ...Variable) (*Model, error) {
	m := &Model{
		names: make([]string, 0, len(vars)),
		vars:  make(map[string]Variable, len(vars)),
		dag:   cgraph.NewDAG(),
	}

	for _, v := range vars {
		if _, ok := m.vars[v.Name]; ok {
			return nil, errors.Wrap(ErrDuplicateVariable, v.Name)
		}

		if v.Noise == nil {
			return nil, errors.Wrap(ErrMissingNoise, v.Name)
		}

		add := m.dag.AddNode
		if v.Hidden {
			add = m.dag.AddHidden
		}

		if err := add(v.Name); err != nil {
			return nil, errors.Wrapf(err, "unable to add %s", v.Name)
		}

		m.names = append(m.names, v.Name)
		m.vars[v.Name] = v.clone()
	}

	for _, name := range m.names {
		for _, p := range m.vars[name].Parents() {
			if _, ok := m.vars[p]; !ok {
				return nil, errors.Wrapf(ErrUnknownVariable, "%s is a parent of %s", p, name)
			}

			if err := m.dag.AddEdge(p, name); err != nil {
				if errors.Is(err, cgraph.ErrCycle) || errors.Is(err, cgraph.ErrSelfLoop) {
					return nil, errors.Wrapf(ErrCycle, "%s -> %s", p, name)
				}

				return nil, errors.Wrapf(err, "unable to add edge %s -> %s", p, name)
			}
		}
	}

	order, err := m.dag.TopologicalOrder()
	if err != nil {
		return nil, errors.Wrap(err, "unable to order variables")
	}

	m.order = order

	return m, nil
}

// MustModel is NewModel for definitions known to be valid. It panics otherwise.
func MustModel(vars ...Variable) *Model {
	m, err := NewModel(vars...)
	if err != nil {
		panic(err)
	}

	return m
}

// Names returns every variable in declaration order.
func (m *Model) Names() []string {
	return append([]string(nil), m.names...)
}

// Observed returns the variables that are not hidden, in declaration order.
func (m *Model) Observed() []string {
	return m.dag.Observed()
}

// Variable returns the assignment of name.
func (m *Model) Variable(name string) (Variable, bool) {
	v, ok := m.vars[name]
	if !ok {
		return Variable{}, false
	}

	return v.clone(), true
}

// DAG returns the causal graph of the model. It must not be modified.
func (m *Model) DAG() *cgraph.DAG {
	return m.dag
}

// Equations lists every assignment in declaration order.
func (m *Model) Equations() []string {
	res := make([]string, 0, len(m.names))
	for _, name := range m.names {
		res = append(res, m.vars[name].Equation())
	}

	return res
}

// Sample draws n rows of the observed variables.
func (m *Model) Sample(rng *rand.Rand, n int) (*dataset.Dataset, error) {
	return m.sample(rng, n, m.Observed())
}

// SampleAll draws n rows of every variable, hidden ones included.
func (m *Model) SampleAll(rng *rand.Rand, n int) (*dataset.Dataset, error) {
	return m.sample(rng, n, m.names)
}

// sample evaluates the assignments in topological order. Noise is drawn one variable at a time,
// so a seed always yields the same data for the same model.
func (m *Model) sample(rng *rand.Rand, n int, keep []string) (*dataset.Dataset, error) {
	if n < 1 {
		return nil, errors.Wrapf(ErrInvalidSampleSize, "%d", n)
	}

	values := make(map[string][]float64, len(m.order))

	for _, name := range m.order {
		v := m.vars[name]
		col := make([]float64, n)

		for i := range col {
			col[i] = v.Intercept + v.Noise.Rand(rng)
		}

		for _, p := range v.Parents() {
			c, parent := v.Coefs[p], values[p]
			for i := range col {
				col[i] += c * parent[i]
			}
		}

		values[name] = col
	}

	cols := make([][]float64, 0, len(keep))
	for _, name := range keep {
		cols = append(cols, values[name])
	}

	return dataset.New(keep, cols)
}
