package scmfile_test

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askiada/go-causality/internal/scmfile"
	"github.com/askiada/go-causality/pkg/scm"
)

func TestLoad(t *testing.T) {
	t.Parallel()

	file, err := scmfile.Load(filepath.Join("testdata", "diamond.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "diamond", file.Name)
	assert.Equal(t, []string{"A", "B", "C", "D", "L"}, file.Model.Names())
	assert.Equal(t, []string{"A", "B", "C", "D"}, file.Model.Observed())

	d, ok := file.Model.Variable("D")
	require.True(t, ok)
	assert.Equal(t, []string{"B", "C"}, d.Parents())
	assert.InDelta(t, 2, d.Intercept, 0)
	assert.Equal(t, scm.Uniform{Min: -1, Max: 1}, d.Noise)

	require.Len(t, file.Interventions, 2)
	assert.True(t, file.Interventions[0].IsHard())
	assert.Equal(t, "do(A := 2)", file.Interventions[0].String())
	assert.False(t, file.Interventions[1].IsHard())
	assert.Equal(t, scm.Exponential{Rate: 2}, file.Interventions[1].Noise)

	assert.True(t, file.Model.DAG().HasEdge("A", "B"))
	assert.True(t, file.Model.DAG().IsHidden("L"))
}

func TestLoadMissingFile(t *testing.T) {
	t.Parallel()

	_, err := scmfile.Load(filepath.Join("testdata", "missing.yaml"))
	require.Error(t, err)
	assert.NotErrorIs(t, err, scmfile.ErrInvalidFile)
}

func TestDecodeErrors(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		doc   string
		field string
	}{
		"empty": {
			doc:   "",
			field: "empty document",
		},
		"no variables": {
			doc:   "name: x\n",
			field: "variables",
		},
		"unknown key": {
			doc:   "name: x\ncolour: red\n",
			field: "colour",
		},
		"missing name": {
			doc:   "variables:\n  - noise: {dist: normal}\n",
			field: "variables[0].name",
		},
		"missing noise": {
			doc:   "variables:\n  - name: X\n",
			field: "variables[0].noise",
		},
		"bad dist": {
			doc:   "variables:\n  - name: X\n    noise: {dist: cauchy}\n",
			field: `variables[0].noise: unsupported dist "cauchy"`,
		},
		"bad sigma": {
			doc:   "variables:\n  - name: X\n    noise: {dist: normal, sigma: 0}\n",
			field: "sigma must be positive",
		},
		"unknown parent": {
			doc:   "variables:\n  - name: X\n    parents: {Z: 1}\n    noise: {dist: normal}\n",
			field: "unknown variable",
		},
		"cycle": {
			doc: "variables:\n  - name: X\n    parents: {Y: 1}\n    noise: {dist: normal}\n" +
				"  - name: Y\n    parents: {X: 1}\n    noise: {dist: normal}\n",
			field: "cyclic",
		},
		"unknown target": {
			doc:   "variables:\n  - name: X\n    noise: {dist: normal}\ninterventions:\n  - target: Y\n    value: 1\n",
			field: `interventions[0]: unknown target "Y"`,
		},
		"exclusive intervention": {
			doc: "variables:\n  - name: X\n    noise: {dist: normal}\ninterventions:\n" +
				"  - target: X\n    value: 1\n    noise: {dist: constant}\n",
			field: "exclusive",
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			_, err := scmfile.Decode("model.yaml", strings.NewReader(tc.doc))
			require.ErrorIs(t, err, scmfile.ErrInvalidFile)
			assert.Contains(t, err.Error(), tc.field)
		})
	}
}

func TestDecodeDefaultSigma(t *testing.T) {
	t.Parallel()

	file, err := scmfile.Decode("model.yaml", strings.NewReader("variables:\n  - name: X\n    noise: {dist: normal, mu: 3}\n"))
	require.NoError(t, err)

	x, ok := file.Model.Variable("X")
	require.True(t, ok)
	assert.Equal(t, scm.Normal{Mu: 3, Sigma: 1}, x.Noise)
	assert.Empty(t, file.Interventions)
}
