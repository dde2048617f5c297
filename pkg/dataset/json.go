package dataset

import (
	"io"

	"github.com/go-faster/jx"
	"github.com/pkg/errors"
)

// Encode writes the dataset as {"columns":[...],"rows":n,"data":{"name":[...]}}.
func (d *Dataset) Encode(e *jx.Encoder) {
	e.Obj(func(e *jx.Encoder) {
		e.Field("columns", func(e *jx.Encoder) {
			e.Arr(func(e *jx.Encoder) {
				for _, name := range d.names {
					e.Str(name)
				}
			})
		})
		e.Field("rows", func(e *jx.Encoder) {
			e.Int(d.rows)
		})
		e.Field("data", func(e *jx.Encoder) {
			e.Obj(func(e *jx.Encoder) {
				for j, name := range d.names {
					e.Field(name, func(e *jx.Encoder) {
						EncodeFloats(e, d.columns[j])
					})
				}
			})
		})
	})
}

// WriteJSON encodes the dataset to w.
func (d *Dataset) WriteJSON(w io.Writer) error {
	var e jx.Encoder
	d.Encode(&e)

	_, err := e.WriteTo(w)

	return errors.Wrap(err, "unable to write json")
}

// EncodeFloats writes xs as a JSON array. NaN and infinities become null.
func EncodeFloats(e *jx.Encoder, xs []float64) {
	e.Arr(func(e *jx.Encoder) {
		for _, x := range xs {
			e.Float64(x)
		}
	})
}
