package scm

import "github.com/pkg/errors"

type interventionKind int

const (
	hardIntervention interventionKind = iota
	softIntervention
)

// Intervention replaces part of one structural assignment.
type Intervention struct {
	Target string
	Value  float64
	Noise  Noise
	kind   interventionKind
}

// Hard is do(name := value): the assignment becomes a constant and every incoming edge is cut.
func Hard(name string, value float64) Intervention {
	return Intervention{Target: name, Value: value, kind: hardIntervention}
}

// Soft swaps the noise distribution of name and keeps its mechanism, so its parents still
// act on it.
func Soft(name string, noise Noise) Intervention {
	return Intervention{Target: name, Noise: noise, kind: softIntervention}
}

// IsHard reports whether the intervention fixes the variable to a constant.
func (iv Intervention) IsHard() bool {
	return iv.kind == hardIntervention
}

func (iv Intervention) String() string {
	if iv.IsHard() {
		return "do(" + iv.Target + " := " + num(iv.Value) + ")"
	}

	return "do(" + iv.Target + " ~ " + iv.Noise.String() + ")"
}

func (iv Intervention) apply(v Variable) Variable {
	if iv.IsHard() {
		v.Intercept = 0
		v.Coefs = map[string]float64{}
		v.Noise = Constant{Value: iv.Value}

		return v
	}

	v.Noise = iv.Noise

	return v
}

// Intervene returns the model obtained by applying every intervention. The receiver is left
// untouched.
func (m *Model) Intervene(ivs ...Intervention) (*Model, error) {
	vars := make([]Variable, 0, len(m.names))
	for _, name := range m.names {
		vars = append(vars, m.vars[name].clone())
	}

	for _, iv := range ivs {
		found := false

		for i := range vars {
			if vars[i].Name == iv.Target {
				vars[i] = iv.apply(vars[i])
				found = true

				break
			}
		}

		if !found {
			return nil, errors.Wrapf(ErrUnknownVariable, "cannot intervene on %s", iv.Target)
		}

		if !iv.IsHard() && iv.Noise == nil {
			return nil, errors.Wrap(ErrMissingNoise, iv.Target)
		}
	}

	return NewModel(vars...)
}
