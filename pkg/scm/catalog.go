package scm

import (
	"sort"

	"github.com/pkg/errors"
)

// PairNoiseSigma is the standard deviation of the effect noise in LinearPair.
const PairNoiseSigma = 1.5

// LinearPair is X → Y with X ~ N(0, 1) and Y := slope·X + N(0, 1.5).
func LinearPair(slope float64) *Model {
	return MustModel(
		Variable{Name: "X", Noise: Normal{Mu: 0, Sigma: 1}},
		Variable{Name: "Y", Coefs: map[string]float64{"X": slope}, Noise: Normal{Mu: 0, Sigma: PairNoiseSigma}},
	)
}

// Confounding has a holiday season driving both ad spend and sales.
func Confounding() *Model {
	return MustModel(
		Variable{Name: "Ad_Spend", Coefs: map[string]float64{"Holiday_Season": 20}, Noise: Normal{Mu: 5, Sigma: 2}},
		Variable{
			Name:  "Sales",
			Coefs: map[string]float64{"Holiday_Season": 50, "Ad_Spend": 2},
			Noise: Normal{Mu: 50, Sigma: 5},
		},
		Variable{Name: "Holiday_Season", Noise: Bernoulli{P: 0.2}},
	)
}

// Mediation has ad spend acting on sales only through website clicks.
func Mediation() *Model {
	return MustModel(
		Variable{Name: "Ad_Spend", Noise: Uniform{Min: 1, Max: 10}},
		Variable{Name: "Website_Clicks", Coefs: map[string]float64{"Ad_Spend": 10}, Noise: Normal{Mu: 10, Sigma: 5}},
		Variable{Name: "Sales", Coefs: map[string]float64{"Website_Clicks": 5}, Noise: Normal{Mu: 20, Sigma: 10}},
	)
}

// Environments of the fertilizer model.
const (
	SmallFarms      = "Small Farms"
	IndustrialFarms = "Industrial Farms"
)

// Fertilizer is Fertilizer → Crop_Yield. The environment only changes how fertilizer is
// distributed, the yield mechanism Crop_Yield := 5·Fertilizer + 20 + N(0, 8) stays the same.
func Fertilizer(environment string) (*Model, error) {
	var cause Noise

	switch environment {
	case SmallFarms:
		cause = Uniform{Min: 1, Max: 4}
	case IndustrialFarms:
		cause = Uniform{Min: 5, Max: 10}
	default:
		return nil, errors.Wrapf(ErrUnknownScenario, "environment %q", environment)
	}

	return NewModel(
		Variable{Name: "Fertilizer", Noise: cause},
		Variable{Name: "Crop_Yield", Intercept: 20, Coefs: map[string]float64{"Fertilizer": 5}, Noise: Normal{Mu: 0, Sigma: 8}},
	)
}

// LiNGAM is X → Y with non-Gaussian noises: X ~ U(-2, 2), Y := 2·X + Exp(1).
func LiNGAM() *Model {
	return MustModel(
		Variable{Name: "X", Noise: Uniform{Min: -2, Max: 2}},
		Variable{Name: "Y", Coefs: map[string]float64{"X": 2}, Noise: Exponential{Rate: 1}},
	)
}

// GaussianPair is A → B with Gaussian noises, where the direction cannot be read from the noise.
func GaussianPair() *Model {
	return MustModel(
		Variable{Name: "A", Noise: Normal{Mu: 0, Sigma: 1}},
		Variable{Name: "B", Coefs: map[string]float64{"A": 1.5}, Noise: Normal{Mu: 0, Sigma: 1}},
	)
}

// GaussianPairShift is the soft intervention applied to GaussianPair on the lesson pages.
func GaussianPairShift() Intervention {
	return Soft("A", Normal{Mu: 5, Sigma: 1})
}

// Three node structures.
const (
	Chain    = "chain"
	Fork     = "fork"
	Collider = "collider"
)

// Junction builds one of the three elementary structures over X, Y and Z with uniform noises:
// chain X → Z → Y, fork X ← Z → Y or collider X → Z ← Y.
func Junction(structure string) (*Model, error) {
	switch structure {
	case Chain:
		return NewModel(
			Variable{Name: "X", Noise: Uniform{Min: -2, Max: 2}},
			Variable{Name: "Y", Coefs: map[string]float64{"Z": 1.5}, Noise: Uniform{Min: -1, Max: 1}},
			Variable{Name: "Z", Coefs: map[string]float64{"X": 1.5}, Noise: Uniform{Min: -1, Max: 1}},
		)
	case Fork:
		return NewModel(
			Variable{Name: "X", Coefs: map[string]float64{"Z": 1.5}, Noise: Uniform{Min: -1, Max: 1}},
			Variable{Name: "Y", Coefs: map[string]float64{"Z": 1.5}, Noise: Uniform{Min: -1, Max: 1}},
			Variable{Name: "Z", Noise: Uniform{Min: -2, Max: 2}},
		)
	case Collider:
		return NewModel(
			Variable{Name: "X", Noise: Uniform{Min: -2, Max: 2}},
			Variable{Name: "Y", Noise: Uniform{Min: -2, Max: 2}},
			Variable{Name: "Z", Coefs: map[string]float64{"X": 1.5, "Y": 1.5}, Noise: Uniform{Min: -1, Max: 1}},
		)
	default:
		return nil, errors.Wrapf(ErrUnknownScenario, "structure %q", structure)
	}
}

// Diamond is A → B, A → C, B → D, C → D with standard Gaussian noises.
func Diamond() *Model {
	return MustModel(
		Variable{Name: "A", Noise: Normal{Mu: 0, Sigma: 1}},
		Variable{Name: "B", Coefs: map[string]float64{"A": 1}, Noise: Normal{Mu: 0, Sigma: 1}},
		Variable{Name: "C", Coefs: map[string]float64{"A": -1.5}, Noise: Normal{Mu: 0, Sigma: 1}},
		Variable{Name: "D", Coefs: map[string]float64{"B": 2, "C": -1}, Noise: Normal{Mu: 0, Sigma: 1}},
	)
}

// DiamondShift is the soft intervention on the root of Diamond: A ~ U(3, 7).
func DiamondShift() Intervention {
	return Soft("A", Uniform{Min: 3, Max: 7})
}

// MGraph has two hidden variables: H1 → A → B → C → E and D ← H2 → E. Only A to E are observed.
func MGraph() *Model {
	small := Normal{Mu: 0, Sigma: 0.5}

	return MustModel(
		Variable{Name: "H1", Noise: Normal{Mu: 0, Sigma: 1}, Hidden: true},
		Variable{Name: "H2", Noise: Normal{Mu: 0, Sigma: 1}, Hidden: true},
		Variable{Name: "A", Coefs: map[string]float64{"H1": 2}, Noise: small},
		Variable{Name: "B", Coefs: map[string]float64{"A": 1.5}, Noise: small},
		Variable{Name: "C", Coefs: map[string]float64{"B": 1}, Noise: small},
		Variable{Name: "D", Coefs: map[string]float64{"H2": 1.5}, Noise: small},
		Variable{Name: "E", Coefs: map[string]float64{"H2": 1.5, "C": 2}, Noise: small},
	)
}

var scenarios = map[string]func() (*Model, error){ //nolint: gochecknoglobals
	"linear-pair":      func() (*Model, error) { return LinearPair(2), nil },
	"confounding":      func() (*Model, error) { return Confounding(), nil },
	"mediation":        func() (*Model, error) { return Mediation(), nil },
	"small-farms":      func() (*Model, error) { return Fertilizer(SmallFarms) },
	"industrial-farms": func() (*Model, error) { return Fertilizer(IndustrialFarms) },
	"lingam":           func() (*Model, error) { return LiNGAM(), nil },
	"gaussian-pair":    func() (*Model, error) { return GaussianPair(), nil },
	"gaussian-shifted": func() (*Model, error) { return GaussianPair().Intervene(GaussianPairShift()) },
	"chain":            func() (*Model, error) { return Junction(Chain) },
	"fork":             func() (*Model, error) { return Junction(Fork) },
	"collider":         func() (*Model, error) { return Junction(Collider) },
	"diamond":          func() (*Model, error) { return Diamond(), nil },
	"diamond-shifted":  func() (*Model, error) { return Diamond().Intervene(DiamondShift()) },
	"m-graph":          func() (*Model, error) { return MGraph(), nil },
}

// Lookup returns a catalog model by name.
func Lookup(name string) (*Model, error) {
	build, ok := scenarios[name]
	if !ok {
		return nil, errors.Wrap(ErrUnknownScenario, name)
	}

	return build()
}

// Scenarios lists the catalog names.
func Scenarios() []string {
	res := make([]string, 0, len(scenarios))
	for name := range scenarios {
		res = append(res, name)
	}

	sort.Strings(res)

	return res
}
