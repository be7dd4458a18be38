package heightfield

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"torus-rally/internal/fsutil"
	"torus-rally/internal/noise"
)

func TestEmbedIsPeriodic(t *testing.T) {
	g := testGenerator(t, noise.Perlin, 1)
	const rows, cols = 32, 64
	for row := 0; row < rows; row++ {
		x0, y0, z0, w0 := g.Embed(row, 0, rows, cols)
		x1, y1, z1, w1 := g.Embed(row, cols, rows, cols)
		require.Equal(t, [4]float32{x0, y0, z0, w0}, [4]float32{x1, y1, z1, w1})
	}
	for col := 0; col < cols; col++ {
		a := [4]float32{}
		b := [4]float32{}
		a[0], a[1], a[2], a[3] = g.Embed(0, col, rows, cols)
		b[0], b[1], b[2], b[3] = g.Embed(rows, col, rows, cols)
		require.Equal(t, a, b)
		b[0], b[1], b[2], b[3] = g.Embed(-rows, col-cols, rows, cols)
		require.Equal(t, a, b)
	}
}

func TestEmbedRadii(t *testing.T) {
	g := testGenerator(t, noise.Perlin, 1)
	x, y, z, w := g.Embed(3, 5, 16, 24)
	assert.InDelta(t, 100*DefaultScale, float64(x*x+y*y)/(100*DefaultScale), 1e-4)
	assert.InDelta(t, 20*DefaultScale, float64(z*z+w*w)/(20*DefaultScale), 1e-4)
}

func TestGenerateIsIndependentOfWorkerCount(t *testing.T) {
	muteLogs(t)
	serial, err := testGenerator(t, noise.Simplex, 1).Generate(24, 20)
	require.NoError(t, err)
	parallel, err := testGenerator(t, noise.Simplex, 7).Generate(24, 20)
	require.NoError(t, err)
	wide, err := testGenerator(t, noise.Simplex, 100).Generate(24, 20)
	require.NoError(t, err)

	if diff := cmp.Diff(serial.Values(), parallel.Values()); diff != "" {
		t.Fatalf("parallel generation differs (-serial +parallel):\n%s", diff)
	}
	assert.True(t, serial.Equal(wide))
}

func TestGenerateValidates(t *testing.T) {
	muteLogs(t)
	g := testGenerator(t, noise.Perlin, 1)

	_, err := g.Generate(0, 4)
	assert.ErrorIs(t, err, ErrDimensions)

	bad := *g
	bad.Kernel = nil
	_, err = bad.Generate(4, 4)
	assert.ErrorIs(t, err, ErrNoKernel)

	bad = *g
	bad.Scale = 0
	_, err = bad.Generate(4, 4)
	assert.Error(t, err)
}

func TestGenerateRangeForAllKernels(t *testing.T) {
	muteLogs(t)
	for _, alg := range noise.Algorithms() {
		t.Run(string(alg), func(t *testing.T) {
			f, err := testGenerator(t, alg, 4).Generate(16, 16)
			require.NoError(t, err)
			for _, v := range f.Values() {
				require.True(t, v >= 0 && v <= 1, "sample %v outside [0,1]", v)
			}
		})
	}
}

func TestEndToEndPerlinExample(t *testing.T) {
	muteLogs(t)
	g := testGenerator(t, noise.Perlin, 0)
	f, err := g.Generate(64, 32)
	require.NoError(t, err)
	require.Equal(t, 64, f.Rows())
	require.Equal(t, 32, f.Cols())
	for _, v := range f.Values() {
		require.True(t, v >= 0 && v <= 1)
	}

	again, err := testGenerator(t, noise.Perlin, 3).Generate(64, 32)
	require.NoError(t, err)
	assert.True(t, f.Equal(again), "generation must be deterministic")

	c := NewCache(fsutil.NewMemoryFileSystem(), "")
	require.NoError(t, c.Save("heightmap.bin", f))
	loaded, err := c.Load("heightmap.bin")
	require.NoError(t, err)
	assert.True(t, f.Equal(loaded))
}
