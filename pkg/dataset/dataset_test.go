package dataset_test

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askiada/go-causality/pkg/dataset"
)

func sample(t *testing.T) *dataset.Dataset {
	t.Helper()

	d, err := dataset.New([]string{"X", "Y"}, [][]float64{{1, 2, 3}, {2.5, -1, 0}})
	require.NoError(t, err)

	return d
}

func TestNew(t *testing.T) {
	tcs := map[string]struct {
		names       []string
		cols        [][]float64
		expectedErr error
	}{
		"valid": {
			names: []string{"A", "B"},
			cols:  [][]float64{{1}, {2}},
		},
		"row mismatch": {
			names:       []string{"A", "B"},
			cols:        [][]float64{{1}, {2, 3}},
			expectedErr: dataset.ErrLengthMismatch,
		},
		"name count mismatch": {
			names:       []string{"A"},
			cols:        [][]float64{{1}, {2}},
			expectedErr: dataset.ErrLengthMismatch,
		},
		"duplicate": {
			names:       []string{"A", "A"},
			cols:        [][]float64{{1}, {2}},
			expectedErr: dataset.ErrDuplicateColumn,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			_, err := dataset.New(tc.names, tc.cols)
			if tc.expectedErr != nil {
				assert.ErrorIs(t, err, tc.expectedErr)

				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestColumnSelectWith(t *testing.T) {
	d := sample(t)

	assert.Equal(t, 3, d.Len())
	assert.Equal(t, []string{"X", "Y"}, d.Names())

	_, err := d.Column("Z")
	assert.ErrorIs(t, err, dataset.ErrUnknownColumn)

	sel, err := d.Select("Y")
	require.NoError(t, err)
	assert.Equal(t, []string{"Y"}, sel.Names())
	assert.Equal(t, []float64{2.5, -1, 0}, sel.MustColumn("Y"))

	with, err := d.With("Z", []float64{7, 8, 9})
	require.NoError(t, err)
	assert.Equal(t, []string{"X", "Y", "Z"}, with.Names())
	assert.False(t, d.Has("Z"))

	replaced, err := d.With("X", []float64{0, 0, 0})
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0, 0}, replaced.MustColumn("X"))
	assert.Equal(t, []float64{1, 2, 3}, d.MustColumn("X"))

	_, err = d.With("W", []float64{1})
	assert.ErrorIs(t, err, dataset.ErrLengthMismatch)

	assert.Equal(t, map[string]float64{"X": 2, "Y": -1}, d.Row(1))
}

func TestCSVRoundTrip(t *testing.T) {
	d := sample(t)

	var buf bytes.Buffer
	require.NoError(t, d.WriteCSV(&buf))
	assert.Equal(t, "X,Y\n1,2.5\n2,-1\n3,0\n", buf.String())

	back, err := dataset.ReadCSV(&buf)
	require.NoError(t, err)
	assert.Equal(t, d.Names(), back.Names())
	assert.Equal(t, d.MustColumn("Y"), back.MustColumn("Y"))
}

func TestReadCSVErrors(t *testing.T) {
	tcs := map[string]string{
		"empty":      "",
		"not number": "A,B\n1,x\n",
		"ragged":     "A,B\n1,2\n3\n",
	}

	for name, input := range tcs {
		t.Run(name, func(t *testing.T) {
			_, err := dataset.ReadCSV(strings.NewReader(input))
			assert.ErrorIs(t, err, dataset.ErrMalformedCSV)
		})
	}
}

func TestWriteJSON(t *testing.T) {
	d, err := dataset.New([]string{"X", "Y"}, [][]float64{{1, 2}, {0.5, math.NaN()}})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, d.WriteJSON(&buf))
	assert.JSONEq(t, `{"columns":["X","Y"],"rows":2,"data":{"X":[1,2],"Y":[0.5,null]}}`, buf.String())
}
