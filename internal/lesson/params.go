package lesson

import (
	"math"
	"math/rand/v2"
	"net/url"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Field kinds.
const (
	FieldNumber = "number"
	FieldSelect = "select"
	FieldCheck  = "checkbox"
)

// Field describes one form input of a page, with the value that was actually used.
type Field struct {
	Name    string
	Label   string
	Kind    string
	Value   string
	Min     string
	Max     string
	Step    string
	Options []string
}

// Params reads form values. The getters never fail: they return the default and remember the
// first error, which Err reports.
type Params struct {
	values url.Values
	fields []Field
	err    error
}

// NewParams wraps form values.
func NewParams(values url.Values) *Params {
	if values == nil {
		values = url.Values{}
	}

	return &Params{values: values}
}

// Err returns the first parsing error.
func (p *Params) Err() error {
	return p.err
}

// Fields returns the inputs read so far, in reading order.
func (p *Params) Fields() []Field {
	return append([]Field(nil), p.fields...)
}

func (p *Params) fail(err error) {
	if p.err == nil {
		p.err = err
	}
}

func (p *Params) raw(name string) string {
	return strings.TrimSpace(p.values.Get(name))
}

// Int reads an integer clamped to [lo, hi].
func (p *Params) Int(name, label string, def, lo, hi int) int {
	v := def

	if raw := p.raw(name); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			p.fail(errors.Wrapf(ErrBadParameter, "%s: %q is not an integer", name, raw))
		} else {
			v = min(max(parsed, lo), hi)
		}
	}

	p.fields = append(p.fields, Field{
		Name: name, Label: label, Kind: FieldNumber,
		Value: strconv.Itoa(v), Min: strconv.Itoa(lo), Max: strconv.Itoa(hi), Step: "1",
	})

	return v
}

// Float reads a finite number clamped to [lo, hi].
func (p *Params) Float(name, label string, def, lo, hi, step float64) float64 {
	v := def

	if raw := p.raw(name); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)

		switch {
		case err != nil:
			p.fail(errors.Wrapf(ErrBadParameter, "%s: %q is not a number", name, raw))
		case math.IsNaN(parsed) || math.IsInf(parsed, 0):
			p.fail(errors.Wrapf(ErrBadParameter, "%s: %q is not finite", name, raw))
		default:
			v = math.Min(math.Max(parsed, lo), hi)
		}
	}

	p.fields = append(p.fields, Field{
		Name: name, Label: label, Kind: FieldNumber,
		Value: formatFloat(v), Min: formatFloat(lo), Max: formatFloat(hi), Step: formatFloat(step),
	})

	return v
}

// Choice reads one of options. An empty value selects def.
func (p *Params) Choice(name, label, def string, options ...string) string {
	v := def

	if raw := p.raw(name); raw != "" {
		found := false

		for _, o := range options {
			if o == raw {
				found = true

				break
			}
		}

		if found {
			v = raw
		} else {
			p.fail(errors.Wrapf(ErrBadParameter, "%s: %q is not one of %s", name, raw, strings.Join(options, ", ")))
		}
	}

	p.fields = append(p.fields, Field{Name: name, Label: label, Kind: FieldSelect, Value: v, Options: options})

	return v
}

// Binary reads a 0 or 1 choice. A negative def leaves the field empty and returns -1 until a
// value is sent.
func (p *Params) Binary(name, label string, def int) int {
	value := ""
	if def >= 0 {
		value = strconv.Itoa(def)
	}

	switch p.Choice(name, label, value, "0", "1") {
	case "0":
		return 0
	case "1":
		return 1
	default:
		return -1
	}
}

// Bool reads a checkbox. Browsers send "on" for a checked box and nothing otherwise.
func (p *Params) Bool(name, label string) bool {
	v := false

	switch raw := strings.ToLower(p.raw(name)); raw {
	case "":
	case "on", "yes":
		v = true
	default:
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			p.fail(errors.Wrapf(ErrBadParameter, "%s: %q is not a boolean", name, raw))
		}

		v = parsed
	}

	p.fields = append(p.fields, Field{Name: name, Label: label, Kind: FieldCheck, Value: strconv.FormatBool(v)})

	return v
}

// Seed reads the "seed" field. A missing seed is drawn at random, so a page can be reproduced by
// sending back the seed it reports.
func (p *Params) Seed() uint64 {
	v := rand.Uint64() //nolint: gosec

	if raw := p.raw("seed"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			p.fail(errors.Wrapf(ErrBadParameter, "seed: %q is not an unsigned integer", raw))
		} else {
			v = parsed
		}
	}

	p.fields = append(p.fields, Field{Name: "seed", Label: "Seed", Kind: FieldNumber, Value: strconv.FormatUint(v, 10), Min: "0", Step: "1"})

	return v
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
