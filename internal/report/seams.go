package report

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"torus-rally/internal/heightfield"
)

// Seams compares the height steps across the wrap seams with the steps
// between interior neighbours.
type Seams struct {
	// Interior is the mean absolute difference between adjacent samples
	// that do not straddle a seam.
	Interior float64
	// Seam is the same measure across the last row/column and the first.
	Seam float64
}

// Ratio returns Seam / Interior. Values near 1 mean the seams are invisible.
// A flat field reports 1.
func (s Seams) Ratio() float64 {
	if s.Interior == 0 {
		if s.Seam == 0 {
			return 1
		}
		return math.Inf(1)
	}
	return s.Seam / s.Interior
}

// MeasureSeams computes Seams for f. Fields with a single row or column have
// no interior steps along that axis.
func MeasureSeams(f *heightfield.Heightfield) Seams {
	rows, cols := f.Rows(), f.Cols()
	var interior, seam []float64
	for r := range rows {
		for c := range cols {
			h := float64(f.At(r, c))
			right := math.Abs(h - float64(f.WrapAt(r, c+1)))
			down := math.Abs(h - float64(f.WrapAt(r+1, c)))
			if c == cols-1 {
				seam = append(seam, right)
			} else {
				interior = append(interior, right)
			}
			if r == rows-1 {
				seam = append(seam, down)
			} else {
				interior = append(interior, down)
			}
		}
	}
	var s Seams
	if len(interior) > 0 {
		s.Interior = stat.Mean(interior, nil)
	}
	if len(seam) > 0 {
		s.Seam = stat.Mean(seam, nil)
	}
	return s
}
