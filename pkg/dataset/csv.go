package dataset

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/pkg/errors"
)

// ErrMalformedCSV is returned when a CSV input cannot be read as a dataset.
var ErrMalformedCSV = errors.New("dataset: malformed csv")

// WriteCSV writes a header row followed by one line per row.
func (d *Dataset) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(d.names); err != nil {
		return errors.Wrap(err, "unable to write header")
	}

	record := make([]string, len(d.names))

	for i := range d.rows {
		for j := range d.columns {
			record[j] = strconv.FormatFloat(d.columns[j][i], 'g', -1, 64)
		}

		if err := cw.Write(record); err != nil {
			return errors.Wrapf(err, "unable to write row %d", i)
		}
	}

	cw.Flush()

	return errors.Wrap(cw.Error(), "unable to flush csv")
}

// ReadCSV reads a dataset written by WriteCSV, or any CSV file whose first row names the columns and
// whose cells are all numbers.
func ReadCSV(r io.Reader) (*Dataset, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, errors.Wrap(ErrMalformedCSV, "missing header")
	}

	cols := make([][]float64, len(header))
	line := 1

	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}

		line++

		if err != nil {
			return nil, errors.Wrapf(ErrMalformedCSV, "line %d: %s", line, err)
		}

		for j, cell := range record {
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return nil, errors.Wrapf(ErrMalformedCSV, "line %d column %s: %q is not a number", line, header[j], cell)
			}

			cols[j] = append(cols[j], v)
		}
	}

	return New(header, cols)
}
