// Package scmfile reads structural causal models written in YAML.
package scmfile

import (
	"bytes"
	"io"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/askiada/go-causality/pkg/scm"
)

// File is a decoded model together with the interventions it declares.
type File struct {
	Name          string
	Description   string
	Model         *scm.Model
	Interventions []scm.Intervention
}

// Load reads and validates the model at path.
func Load(path string) (*File, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to read %s", path)
	}

	return Decode(path, bytes.NewReader(b))
}

// Decode reads a model from r. path only appears in error messages. Unknown keys are rejected.
func Decode(path string, r io.Reader) (*File, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var dto YAMLModel
	if err := dec.Decode(&dto); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, invalidField(path, "", "empty document")
		}

		return nil, errors.Wrapf(ErrInvalidFile, "%s: %s", path, err)
	}

	return MapModel(path, dto)
}
