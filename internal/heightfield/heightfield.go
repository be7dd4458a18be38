// Package heightfield stores dense toroidal elevation grids, generates them
// from warped fractal noise and persists them in a small binary cache.
package heightfield

import (
	"errors"
	"fmt"
	"math"
)

// ErrDimensions reports a non-positive or mismatched grid size.
var ErrDimensions = errors.New("heightfield: invalid dimensions")

// Heightfield is a rows x cols grid of samples stored row-major in one
// contiguous buffer. It is not modified after construction.
type Heightfield struct {
	rows int
	cols int
	data []float32
}

func newField(rows, cols int) (*Heightfield, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrDimensions, rows, cols)
	}
	return &Heightfield{rows: rows, cols: cols, data: make([]float32, rows*cols)}, nil
}

// FromValues copies values into a new rows x cols field.
func FromValues(rows, cols int, values []float32) (*Heightfield, error) {
	f, err := newField(rows, cols)
	if err != nil {
		return nil, err
	}
	if len(values) != rows*cols {
		return nil, fmt.Errorf("%w: %d values for %dx%d", ErrDimensions, len(values), rows, cols)
	}
	copy(f.data, values)
	return f, nil
}

// Rows returns the number of rows.
func (f *Heightfield) Rows() int { return f.rows }

// Cols returns the number of columns.
func (f *Heightfield) Cols() int { return f.cols }

// Len returns rows*cols.
func (f *Heightfield) Len() int { return len(f.data) }

func (f *Heightfield) index(row, col int) int {
	if row < 0 || row >= f.rows || col < 0 || col >= f.cols {
		panic(fmt.Sprintf("heightfield: (%d,%d) outside %dx%d", row, col, f.rows, f.cols))
	}
	return row*f.cols + col
}

// At returns the sample at (row, col). It panics when the index is outside
// the grid.
func (f *Heightfield) At(row, col int) float32 {
	return f.data[f.index(row, col)]
}

// WrapAt returns the sample at (row, col) after wrapping both indices into
// range, treating the grid as a torus.
func (f *Heightfield) WrapAt(row, col int) float32 {
	return f.data[Wrap(row, f.rows)*f.cols+Wrap(col, f.cols)]
}

// Values returns a copy of the row-major samples.
func (f *Heightfield) Values() []float32 {
	out := make([]float32, len(f.data))
	copy(out, f.data)
	return out
}

// MinMax returns the smallest and largest sample.
func (f *Heightfield) MinMax() (lo, hi float32) {
	lo, hi = f.data[0], f.data[0]
	for _, v := range f.data[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi
}

// Equal reports whether both fields have the same shape and bit-identical
// samples.
func (f *Heightfield) Equal(other *Heightfield) bool {
	if other == nil || f.rows != other.rows || f.cols != other.cols {
		return false
	}
	for i, v := range f.data {
		if math.Float32bits(v) != math.Float32bits(other.data[i]) {
			return false
		}
	}
	return true
}

// Wrap reduces i into [0, n) with floor semantics for negative values.
func Wrap(i, n int) int {
	i %= n
	if i < 0 {
		i += n
	}
	return i
}
