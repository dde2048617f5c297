package lesson_test

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askiada/go-causality/internal/lesson"
)

func TestParamsDefaultsAndClamping(t *testing.T) {
	t.Parallel()

	p := lesson.NewParams(url.Values{
		"n":     {"99999"},
		"slope": {"-7.5"},
		"seed":  {"42"},
	})

	assert.Equal(t, 5000, p.Int("n", "Samples", 1000, 100, 5000))
	assert.InDelta(t, -5, p.Float("slope", "Slope", 2, -5, 5, 0.1), 0)
	assert.InDelta(t, 0.05, p.Float("alpha", "Alpha", 0.05, 0.001, 0.2, 0.001), 0)
	assert.Equal(t, "X", p.Choice("target", "Target", "X", "X", "Y"))
	assert.False(t, p.Bool("condition", "Condition"))
	assert.Equal(t, uint64(42), p.Seed())
	require.NoError(t, p.Err())

	fields := p.Fields()
	require.Len(t, fields, 6)
	assert.Equal(t, lesson.Field{
		Name: "n", Label: "Samples", Kind: lesson.FieldNumber, Value: "5000", Min: "100", Max: "5000", Step: "1",
	}, fields[0])
	assert.Equal(t, "-5", fields[1].Value)
	assert.Equal(t, []string{"X", "Y"}, fields[3].Options)
	assert.Equal(t, "42", fields[5].Value)
}

func TestParamsBool(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		raw      string
		expected bool
		fails    bool
	}{
		"checked":   {raw: "on", expected: true},
		"true":      {raw: "true", expected: true},
		"one":       {raw: "1", expected: true},
		"false":     {raw: "false"},
		"missing":   {raw: ""},
		"gibberish": {raw: "maybe", fails: true},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			p := lesson.NewParams(url.Values{"condition": {tc.raw}})
			assert.Equal(t, tc.expected, p.Bool("condition", "Condition"))

			if tc.fails {
				require.ErrorIs(t, p.Err(), lesson.ErrBadParameter)
			} else {
				require.NoError(t, p.Err())
			}
		})
	}
}

func TestParamsErrors(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		values url.Values
		read   func(p *lesson.Params)
		msg    string
	}{
		"int": {
			values: url.Values{"n": {"many"}},
			read:   func(p *lesson.Params) { p.Int("n", "Samples", 1, 0, 10) },
			msg:    `n: "many" is not an integer`,
		},
		"float": {
			values: url.Values{"alpha": {"abc"}},
			read:   func(p *lesson.Params) { p.Float("alpha", "Alpha", 0.05, 0, 1, 0.01) },
			msg:    `alpha: "abc" is not a number`,
		},
		"infinite": {
			values: url.Values{"alpha": {"Inf"}},
			read:   func(p *lesson.Params) { p.Float("alpha", "Alpha", 0.05, 0, 1, 0.01) },
			msg:    "is not finite",
		},
		"choice": {
			values: url.Values{"target": {"Z"}},
			read:   func(p *lesson.Params) { p.Choice("target", "Target", "X", "X", "Y") },
			msg:    `target: "Z" is not one of X, Y`,
		},
		"seed": {
			values: url.Values{"seed": {"-1"}},
			read:   func(p *lesson.Params) { p.Seed() },
			msg:    "seed",
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			p := lesson.NewParams(tc.values)
			tc.read(p)

			require.ErrorIs(t, p.Err(), lesson.ErrBadParameter)
			assert.Contains(t, p.Err().Error(), tc.msg)
		})
	}
}

func TestParamsBinary(t *testing.T) {
	t.Parallel()

	p := lesson.NewParams(url.Values{"t": {"0"}, "lab": {"1"}})

	assert.Equal(t, 0, p.Binary("t", "T", 1))
	assert.Equal(t, 1, p.Binary("b", "B", 1))
	assert.Equal(t, 1, p.Binary("lab", "Lab", -1))
	assert.Equal(t, -1, p.Binary("missing", "Missing", -1))
	require.NoError(t, p.Err())

	fields := p.Fields()
	require.Len(t, fields, 4)
	assert.Equal(t, "1", fields[1].Value)
	assert.Equal(t, "", fields[3].Value)
	assert.Equal(t, []string{"0", "1"}, fields[3].Options)

	p = lesson.NewParams(url.Values{"t": {"2"}})
	assert.Equal(t, 1, p.Binary("t", "T", 1))
	require.ErrorIs(t, p.Err(), lesson.ErrBadParameter)
	assert.Contains(t, p.Err().Error(), `t: "2" is not one of 0, 1`)
}

func TestParamsFirstErrorWins(t *testing.T) {
	t.Parallel()

	p := lesson.NewParams(url.Values{"a": {"x"}, "b": {"y"}})
	p.Int("a", "A", 0, 0, 1)
	p.Int("b", "B", 0, 0, 1)

	require.ErrorIs(t, p.Err(), lesson.ErrBadParameter)
	assert.Contains(t, p.Err().Error(), "a:")
}
