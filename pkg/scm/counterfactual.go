package scm

import "github.com/pkg/errors"

// Abduct recovers the noise value of every variable from one fully observed unit:
// N = x - c - Σ βᵢ·paᵢ.
func (m *Model) Abduct(observed map[string]float64) (map[string]float64, error) {
	noise := make(map[string]float64, len(m.names))

	for _, name := range m.names {
		x, ok := observed[name]
		if !ok {
			return nil, errors.Wrap(ErrIncompleteObservation, name)
		}

		v := m.vars[name]
		n := x - v.Intercept

		for _, p := range v.Parents() {
			n -= v.Coefs[p] * observed[p]
		}

		noise[name] = n
	}

	return noise, nil
}

// Counterfactual answers "what would the unit have looked like had ivs been applied?": the unit's
// noise is abducted from observed, the interventions are applied, and the modified model is
// evaluated with the same noise.
func (m *Model) Counterfactual(observed map[string]float64, ivs ...Intervention) (map[string]float64, error) {
	for _, iv := range ivs {
		if !iv.IsHard() {
			return nil, errors.Wrap(ErrSoftCounterfactual, iv.String())
		}
	}

	noise, err := m.Abduct(observed)
	if err != nil {
		return nil, err
	}

	world, err := m.Intervene(ivs...)
	if err != nil {
		return nil, err
	}

	fixed := make(map[string]float64, len(ivs))
	for _, iv := range ivs {
		fixed[iv.Target] = iv.Value
	}

	res := make(map[string]float64, len(m.names))

	for _, name := range world.order {
		if x, ok := fixed[name]; ok {
			res[name] = x

			continue
		}

		v := world.vars[name]
		x := v.Intercept + noise[name]

		for _, p := range v.Parents() {
			x += v.Coefs[p] * res[p]
		}

		res[name] = x
	}

	return res, nil
}
