package scmfile

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"github.com/askiada/go-causality/pkg/scm"
)

// ErrInvalidFile is wrapped by every validation error of this package.
var ErrInvalidFile = errors.New("scmfile: invalid model file")

// Supported values of YAMLNoise.Dist.
const (
	DistNormal      = "normal"
	DistUniform     = "uniform"
	DistExponential = "exponential"
	DistBernoulli   = "bernoulli"
	DistConstant    = "constant"
)

func invalidField(path, field, msg string) error {
	if field == "" {
		return errors.Wrapf(ErrInvalidFile, "%s: %s", path, msg)
	}

	return errors.Wrapf(ErrInvalidFile, "%s: %s: %s", path, field, msg)
}

// MapModel validates dto and builds the model it describes.
func MapModel(path string, dto YAMLModel) (*File, error) {
	if len(dto.Variables) == 0 {
		return nil, invalidField(path, "variables", "at least one variable is required")
	}

	vars := make([]scm.Variable, 0, len(dto.Variables))

	for i, v := range dto.Variables {
		prefix := fmt.Sprintf("variables[%d]", i)

		if strings.TrimSpace(v.Name) == "" {
			return nil, invalidField(path, prefix+".name", "name is required")
		}

		if v.Noise == nil {
			return nil, invalidField(path, prefix+".noise", "noise is required")
		}

		noise, err := mapNoise(*v.Noise)
		if err != nil {
			return nil, invalidField(path, prefix+".noise", err.Error())
		}

		vars = append(vars, scm.Variable{
			Name:      v.Name,
			Intercept: v.Intercept,
			Coefs:     v.Parents,
			Noise:     noise,
			Hidden:    v.Hidden,
		})
	}

	model, err := scm.NewModel(vars...)
	if err != nil {
		return nil, errors.Wrapf(ErrInvalidFile, "%s: %s", path, err)
	}

	file := &File{
		Name:          dto.Name,
		Description:   dto.Description,
		Model:         model,
		Interventions: make([]scm.Intervention, 0, len(dto.Interventions)),
	}

	for i, iv := range dto.Interventions {
		prefix := fmt.Sprintf("interventions[%d]", i)

		mapped, err := mapIntervention(model, iv)
		if err != nil {
			return nil, invalidField(path, prefix, err.Error())
		}

		file.Interventions = append(file.Interventions, mapped)
	}

	return file, nil
}

func mapIntervention(model *scm.Model, iv YAMLIntervention) (scm.Intervention, error) {
	if _, ok := model.Variable(iv.Target); !ok {
		return scm.Intervention{}, errors.Errorf("unknown target %q", iv.Target)
	}

	switch {
	case iv.Value != nil && iv.Noise != nil:
		return scm.Intervention{}, errors.New("value and noise are exclusive")
	case iv.Value != nil:
		return scm.Hard(iv.Target, *iv.Value), nil
	case iv.Noise != nil:
		noise, err := mapNoise(*iv.Noise)
		if err != nil {
			return scm.Intervention{}, errors.Wrap(err, "noise")
		}

		return scm.Soft(iv.Target, noise), nil
	default:
		return scm.Intervention{}, errors.New("value or noise is required")
	}
}

func mapNoise(n YAMLNoise) (scm.Noise, error) {
	switch strings.ToLower(strings.TrimSpace(n.Dist)) {
	case DistNormal:
		sigma := 1.0
		if n.Sigma != nil {
			sigma = *n.Sigma
		}

		if sigma <= 0 {
			return nil, errors.New("sigma must be positive")
		}

		return scm.Normal{Mu: n.Mu, Sigma: sigma}, nil
	case DistUniform:
		if n.Max <= n.Min {
			return nil, errors.New("max must be greater than min")
		}

		return scm.Uniform{Min: n.Min, Max: n.Max}, nil
	case DistExponential:
		if n.Rate <= 0 {
			return nil, errors.New("rate must be positive")
		}

		return scm.Exponential{Rate: n.Rate}, nil
	case DistBernoulli:
		if n.P < 0 || n.P > 1 {
			return nil, errors.New("p must be in [0, 1]")
		}

		return scm.Bernoulli{P: n.P}, nil
	case DistConstant:
		return scm.Constant{Value: n.Value}, nil
	case "":
		return nil, errors.New("dist is required")
	default:
		return nil, errors.Errorf("unsupported dist %q", n.Dist)
	}
}
