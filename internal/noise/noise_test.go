package noise

import (
	"math"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"torus-rally/internal/core"
)

type point4 struct{ x, y, z, w float32 }

func samplePoints(seed int64, n int, span float32) []point4 {
	rng := core.NewRNG(seed).Source()
	pts := make([]point4, n)
	for i := range pts {
		pts[i] = point4{
			x: (rng.Float32()*2 - 1) * span,
			y: (rng.Float32()*2 - 1) * span,
			z: (rng.Float32()*2 - 1) * span,
			w: (rng.Float32()*2 - 1) * span,
		}
	}
	return pts
}

func mustKernel(t *testing.T, alg Algorithm, seed int64) Kernel {
	t.Helper()
	k, err := New(alg, seed)
	require.NoError(t, err)
	return k
}

func TestRegistryListsAllAlgorithms(t *testing.T) {
	want := []Algorithm{OpenSimplex, Perlin, Simplex, Value}
	if diff := cmp.Diff(want, Algorithms()); diff != "" {
		t.Fatalf("algorithms mismatch (-want +got):\n%s", diff)
	}
}

func TestParseAlgorithm(t *testing.T) {
	alg, err := ParseAlgorithm("  Perlin ")
	require.NoError(t, err)
	assert.Equal(t, Perlin, alg)

	_, err = ParseAlgorithm("worley")
	assert.ErrorIs(t, err, ErrUnknownAlgorithm)

	_, err = New("worley", 1)
	assert.ErrorIs(t, err, ErrUnknownAlgorithm)
}

func TestPermutationIsSeededShuffle(t *testing.T) {
	a := NewPermutation(42)
	b := NewPermutation(42)
	c := NewPermutation(43)

	seen := make(map[int]bool)
	differs := false
	for i := 0; i < 256; i++ {
		seen[a.At(i)] = true
		assert.Equal(t, a.At(i), a.At(i+256), "index %d not mirrored", i)
		assert.Equal(t, a.At(i), b.At(i))
		if a.At(i) != c.At(i) {
			differs = true
		}
	}
	assert.Len(t, seen, 256)
	assert.True(t, differs, "different seeds produced the same table")
}

func TestKernelsAreDeterministic(t *testing.T) {
	pts := samplePoints(1, 256, 40)
	for _, alg := range Algorithms() {
		t.Run(string(alg), func(t *testing.T) {
			a := mustKernel(t, alg, 1234)
			b := mustKernel(t, alg, 1234)
			for _, p := range pts {
				require.Equal(t, a.Sample3(p.x, p.y, p.z), b.Sample3(p.x, p.y, p.z))
				require.Equal(t, a.Sample4(p.x, p.y, p.z, p.w), b.Sample4(p.x, p.y, p.z, p.w))
				require.Equal(t, a.Sample4(p.x, p.y, p.z, p.w), a.Sample4(p.x, p.y, p.z, p.w))
			}
		})
	}
}

func TestSeedChangesOutput(t *testing.T) {
	pts := samplePoints(2, 64, 20)
	for _, alg := range []Algorithm{Perlin, Simplex, OpenSimplex} {
		t.Run(string(alg), func(t *testing.T) {
			a := mustKernel(t, alg, 1)
			b := mustKernel(t, alg, 2)
			differs := 0
			for _, p := range pts {
				if a.Sample4(p.x, p.y, p.z, p.w) != b.Sample4(p.x, p.y, p.z, p.w) {
					differs++
				}
			}
			assert.Greater(t, differs, len(pts)/2)
		})
	}
}

func TestValueNoiseRange(t *testing.T) {
	k := ValueNoise{}
	for _, p := range samplePoints(3, 4000, 100) {
		v3 := k.Sample3(p.x, p.y, p.z)
		v4 := k.Sample4(p.x, p.y, p.z, p.w)
		require.True(t, v3 >= 0 && v3 <= 1, "3D value %v out of range at %+v", v3, p)
		require.True(t, v4 >= 0 && v4 <= 1, "4D value %v out of range at %+v", v4, p)
	}
	lo, hi := Range(k)
	assert.Equal(t, float32(0), lo)
	assert.Equal(t, float32(1), hi)
}

func TestSignedKernelsAreBounded(t *testing.T) {
	// Corner alignments can overshoot the nominal [-1, 1] range slightly, so
	// the hard limit is looser than the bulk check.
	const hardLimit = 1.5
	pts := samplePoints(4, 4000, 60)
	for _, alg := range []Algorithm{Perlin, Simplex, OpenSimplex} {
		t.Run(string(alg), func(t *testing.T) {
			k := mustKernel(t, alg, 42)
			lo, hi := Range(k)
			require.Equal(t, float32(-1), lo)
			require.Equal(t, float32(1), hi)

			inside := 0
			for _, p := range pts {
				v3 := k.Sample3(p.x, p.y, p.z)
				v4 := k.Sample4(p.x, p.y, p.z, p.w)
				require.False(t, math.IsNaN(float64(v3)) || math.IsNaN(float64(v4)))
				require.LessOrEqual(t, math.Abs(float64(v3)), hardLimit)
				require.LessOrEqual(t, math.Abs(float64(v4)), hardLimit)
				if v3 >= -1 && v3 <= 1 && v4 >= -1 && v4 <= 1 {
					inside++
				}
			}
			assert.GreaterOrEqual(t, float64(inside)/float64(len(pts)), 0.99)
		})
	}
}

func TestGradientNoiseVanishesOnLattice(t *testing.T) {
	k := NewPerlin(5)
	for i := -3; i <= 3; i++ {
		f := float32(i)
		assert.Zero(t, k.Sample2(f, f+1))
		assert.Zero(t, k.Sample3(f, f+1, f-2))
		assert.Zero(t, k.Sample4(f, f+1, f-2, f+3))
	}
}

func TestSimplexHandlesTiedOffsets(t *testing.T) {
	k := NewSimplex(11)
	for _, c := range []float32{0, 0.25, 0.5, 1, -0.75} {
		v := k.Sample4(c, c, c, c)
		assert.False(t, math.IsNaN(float64(v)))
		assert.Equal(t, v, k.Sample4(c, c, c, c))
		assert.False(t, math.IsNaN(float64(k.Sample3(c, c, c))))
	}
}

func TestContinuity(t *testing.T) {
	pts := samplePoints(6, 500, 30)
	for _, alg := range Algorithms() {
		t.Run(string(alg), func(t *testing.T) {
			k := mustKernel(t, alg, 77)
			meanDiff := func(eps float32) (mean, max float64) {
				for _, p := range pts {
					d := math.Abs(float64(k.Sample4(p.x+eps, p.y, p.z, p.w) - k.Sample4(p.x, p.y, p.z, p.w)))
					mean += d
					if d > max {
						max = d
					}
				}
				return mean / float64(len(pts)), max
			}
			coarse, _ := meanDiff(1e-2)
			fine, fineMax := meanDiff(1e-3)
			assert.Less(t, fine, coarse)
			assert.Less(t, fineMax, 0.1)
		})
	}
}

func TestConcurrentSamplingMatchesSerial(t *testing.T) {
	pts := samplePoints(7, 512, 25)
	for _, alg := range Algorithms() {
		k := mustKernel(t, alg, 99)
		want := make([]float32, len(pts))
		for i, p := range pts {
			want[i] = k.Sample4(p.x, p.y, p.z, p.w)
		}

		got := make([]float32, len(pts))
		var wg sync.WaitGroup
		const workers = 8
		for wkr := 0; wkr < workers; wkr++ {
			wg.Add(1)
			go func(offset int) {
				defer wg.Done()
				for i := offset; i < len(pts); i += workers {
					p := pts[i]
					got[i] = k.Sample4(p.x, p.y, p.z, p.w)
				}
			}(wkr)
		}
		wg.Wait()

		if diff := cmp.Diff(want, got); diff != "" {
			t.Fatalf("%s: concurrent samples differ (-want +got):\n%s", alg, diff)
		}
	}
}
