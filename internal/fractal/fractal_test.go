package fractal

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"torus-rally/internal/noise"
)

// constKernel returns the same value everywhere, which makes the octave
// arithmetic easy to check by hand.
type constKernel struct{ v float32 }

func (c constKernel) Sample3(_, _, _ float32) float32    { return c.v }
func (c constKernel) Sample4(_, _, _, _ float32) float32 { return c.v }

// scaleProbe records the frequencies it is sampled at.
type scaleProbe struct{ seen []float32 }

func (p *scaleProbe) Sample3(x, _, _ float32) float32 {
	p.seen = append(p.seen, x)
	return 0
}

func (p *scaleProbe) Sample4(x, _, _, _ float32) float32 {
	p.seen = append(p.seen, x)
	return 0
}

func TestParamsValidate(t *testing.T) {
	cases := []struct {
		name string
		p    Params
		ok   bool
	}{
		{"default", DefaultParams(), true},
		{"zero octaves", Params{Octaves: 0, Lacunarity: 2, Gain: 0.5}, false},
		{"lacunarity one", Params{Octaves: 3, Lacunarity: 1, Gain: 0.5}, false},
		{"gain one", Params{Octaves: 3, Lacunarity: 2, Gain: 1}, false},
		{"gain zero", Params{Octaves: 3, Lacunarity: 2, Gain: 0}, false},
		{"nan lacunarity", Params{Octaves: 3, Lacunarity: float32(math.NaN()), Gain: 0.5}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.p.Validate()
			if tc.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalidParams)
			}
		})
	}
}

func TestFBMFrequencySeries(t *testing.T) {
	probe := &scaleProbe{}
	FBM4(probe, 1, 0, 0, 0, Params{Octaves: 4, Lacunarity: 3, Gain: 0.5})
	assert.Equal(t, []float32{1, 3, 9, 27}, probe.seen)

	probe.seen = nil
	FBM3(probe, 1, 0, 0, Params{Octaves: 2, Lacunarity: 2, Gain: 0.5})
	assert.Equal(t, []float32{1, 2}, probe.seen)
}

func TestFBMRemapsSignedRange(t *testing.T) {
	p := DefaultParams()
	assert.InDelta(t, 0.0, FBM4(constKernel{-1}, 0, 0, 0, 0, p), 1e-6)
	assert.InDelta(t, 0.5, FBM4(constKernel{0}, 0, 0, 0, 0, p), 1e-6)
	assert.InDelta(t, 1.0, FBM4(constKernel{1}, 0, 0, 0, 0, p), 1e-6)
	assert.InDelta(t, 0.75, FBM3(constKernel{0.5}, 0, 0, 0, p), 1e-6)
}

func TestFBMKeepsValueNoiseInUnitRange(t *testing.T) {
	k := noise.ValueNoise{}
	p := DefaultParams()
	for i := 0; i < 500; i++ {
		f := float32(i) * 0.37
		v := FBM4(k, f, f*0.5, -f, f*1.3, p)
		require.True(t, v >= 0 && v <= 1+1e-6, "fbm %v at step %d", v, i)
	}
}

func TestWarpIsClampedAndDeterministic(t *testing.T) {
	w := DefaultWarp()
	require.NoError(t, w.Validate())
	for _, alg := range noise.Algorithms() {
		t.Run(string(alg), func(t *testing.T) {
			k, err := noise.New(alg, 42)
			require.NoError(t, err)
			for i := 0; i < 300; i++ {
				f := float32(i) * 0.013
				v := w.Sample4(k, f, -f, f*0.7, 0.4-f)
				require.True(t, v >= 0 && v <= 1, "warp %v at step %d", v, i)
				require.Equal(t, v, w.Sample4(k, f, -f, f*0.7, 0.4-f))
			}
		})
	}
}

func TestWarpClampsOutOfRangeKernels(t *testing.T) {
	w := DefaultWarp()
	assert.Equal(t, float32(1), w.Sample4(constKernel{3}, 0, 0, 0, 0))
	assert.Equal(t, float32(0), w.Sample4(constKernel{-3}, 0, 0, 0, 0))
}

func TestWarpAppliesContrast(t *testing.T) {
	w := Warp{Params: DefaultParams(), Offset: 0.1, Strength: 1, Contrast: 2}
	// A constant kernel of 0 maps to 0.5 before contrast.
	assert.InDelta(t, 0.25, w.Sample4(constKernel{0}, 1, 2, 3, 4), 1e-6)

	w.Contrast = 0
	assert.ErrorIs(t, w.Validate(), ErrInvalidParams)
}
