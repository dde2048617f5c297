// Package dataset holds sampled data: named float64 columns of equal length.
package dataset

import (
	"github.com/pkg/errors"
)

var (
	// ErrLengthMismatch is returned when columns do not have the same number of rows.
	ErrLengthMismatch = errors.New("dataset: columns have different lengths")
	// ErrDuplicateColumn is returned when two columns share a name.
	ErrDuplicateColumn = errors.New("dataset: duplicate column")
	// ErrUnknownColumn is returned when a column is not part of the dataset.
	ErrUnknownColumn = errors.New("dataset: unknown column")
)

// Dataset is an immutable column-oriented table of float64 values.
type Dataset struct {
	names   []string
	index   map[string]int
	columns [][]float64
	rows    int
}

// New builds a dataset. names and cols are paired by position. The slices are copied.
func New(names []string, cols [][]float64) (*Dataset, error) {
	if len(names) != len(cols) {
		return nil, errors.Wrapf(ErrLengthMismatch, "%d names for %d columns", len(names), len(cols))
	}

	d := &Dataset{
		names:   make([]string, 0, len(names)),
		index:   make(map[string]int, len(names)),
		columns: make([][]float64, 0, len(cols)),
	}

	for i, name := range names {
		if _, ok := d.index[name]; ok {
			return nil, errors.Wrap(ErrDuplicateColumn, name)
		}

		if i == 0 {
			d.rows = len(cols[i])
		} else if len(cols[i]) != d.rows {
			return nil, errors.Wrapf(ErrLengthMismatch, "column %s has %d rows, expected %d", name, len(cols[i]), d.rows)
		}

		d.index[name] = i
		d.names = append(d.names, name)
		d.columns = append(d.columns, append([]float64(nil), cols[i]...))
	}

	return d, nil
}

// Names returns the column names in order.
func (d *Dataset) Names() []string {
	return append([]string(nil), d.names...)
}

// Len returns the number of rows.
func (d *Dataset) Len() int {
	return d.rows
}

// Has reports whether the column exists.
func (d *Dataset) Has(name string) bool {
	_, ok := d.index[name]

	return ok
}

// Column returns the values of a column. The returned slice must not be modified.
func (d *Dataset) Column(name string) ([]float64, error) {
	i, ok := d.index[name]
	if !ok {
		return nil, errors.Wrap(ErrUnknownColumn, name)
	}

	return d.columns[i], nil
}

// MustColumn is Column for names known to exist. It panics otherwise.
func (d *Dataset) MustColumn(name string) []float64 {
	col, err := d.Column(name)
	if err != nil {
		panic(err)
	}

	return col
}

// Select returns a dataset restricted to names, in the given order.
func (d *Dataset) Select(names ...string) (*Dataset, error) {
	cols := make([][]float64, 0, len(names))

	for _, name := range names {
		col, err := d.Column(name)
		if err != nil {
			return nil, err
		}

		cols = append(cols, col)
	}

	return New(names, cols)
}

// With returns a copy of the dataset with col added, or replaced when name already exists.
func (d *Dataset) With(name string, col []float64) (*Dataset, error) {
	names := d.Names()
	cols := append([][]float64(nil), d.columns...)

	if i, ok := d.index[name]; ok {
		cols[i] = col
	} else {
		names = append(names, name)
		cols = append(cols, col)
	}

	return New(names, cols)
}

// Row returns the values of row i keyed by column name.
func (d *Dataset) Row(i int) map[string]float64 {
	row := make(map[string]float64, len(d.names))
	for j, name := range d.names {
		row[name] = d.columns[j][i]
	}

	return row
}
