package heightfield

import (
	"errors"
	"fmt"
	"math"
	"runtime"
	"sync"
	"time"

	"torus-rally/internal/fractal"
	"torus-rally/internal/monitoring"
	"torus-rally/internal/noise"
	"torus-rally/internal/torus"
)

// DefaultScale sets the feature size of the 4D embedding.
const DefaultScale = 0.005

// ErrNoKernel is returned when a generator has no noise kernel.
var ErrNoKernel = errors.New("heightfield: generator has no kernel")

// Generator fills heightfields with warped fractal noise sampled on a 4D
// torus, which makes the grid periodic in both directions.
type Generator struct {
	Kernel   noise.Kernel
	Warp     fractal.Warp
	Geometry torus.Geometry
	Scale    float32
	// Workers bounds the number of goroutines; values <= 0 use GOMAXPROCS.
	Workers int
}

// Embed maps grid cell (row, col) of a rows x cols grid onto the 4D torus
// (R cos au, R sin au, r cos av, r sin av) * Scale. Indices are wrapped
// first, so col == cols embeds exactly like col == 0.
func (g *Generator) Embed(row, col, rows, cols int) (x, y, z, w float32) {
	au := 2 * math.Pi * float64(Wrap(col, cols)) / float64(cols)
	av := 2 * math.Pi * float64(Wrap(row, rows)) / float64(rows)
	R := float64(g.Geometry.Major)
	r := float64(g.Geometry.Minor)
	s := float64(g.Scale)
	su, cu := math.Sincos(au)
	sv, cv := math.Sincos(av)
	return float32(R * cu * s), float32(R * su * s), float32(r * cv * s), float32(r * sv * s)
}

// Sample returns the height for one cell.
func (g *Generator) Sample(row, col, rows, cols int) float32 {
	x, y, z, w := g.Embed(row, col, rows, cols)
	return g.Warp.Sample4(g.Kernel, x, y, z, w)
}

func (g *Generator) validate() error {
	if g.Kernel == nil {
		return ErrNoKernel
	}
	if err := g.Warp.Validate(); err != nil {
		return err
	}
	if err := g.Geometry.Validate(); err != nil {
		return err
	}
	if !(g.Scale > 0) {
		return fmt.Errorf("heightfield: scale %v must be positive", g.Scale)
	}
	return nil
}

// Generate builds a rows x cols field. Rows are split into contiguous bands,
// one per worker; every cell is computed independently, so the result does
// not depend on the worker count.
func (g *Generator) Generate(rows, cols int) (*Heightfield, error) {
	if err := g.validate(); err != nil {
		return nil, err
	}
	f, err := newField(rows, cols)
	if err != nil {
		return nil, err
	}

	workers := g.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > rows {
		workers = rows
	}

	start := time.Now()
	band := (rows + workers - 1) / workers
	var wg sync.WaitGroup
	for lo := 0; lo < rows; lo += band {
		hi := min(lo+band, rows)
		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			for row := lo; row < hi; row++ {
				line := f.data[row*cols : (row+1)*cols]
				for col := range line {
					line[col] = g.Sample(row, col, rows, cols)
				}
			}
		}(lo, hi)
	}
	wg.Wait()

	monitoring.Logf("heightfield: generated %dx%d with %d workers in %s", rows, cols, workers, time.Since(start).Round(time.Millisecond))
	return f, nil
}
