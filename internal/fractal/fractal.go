// Package fractal composes noise kernels into multi-octave fractal sums and
// domain-warped fields.
package fractal

import (
	"errors"
	"fmt"
	"math"

	"torus-rally/internal/noise"
)

// ErrInvalidParams reports octave settings that cannot produce a fractal sum.
var ErrInvalidParams = errors.New("fractal: invalid parameters")

// Params controls the octave series of a fractal sum.
type Params struct {
	Octaves    int
	Lacunarity float32
	Gain       float32
}

// DefaultParams returns six octaves doubling in frequency and halving in
// amplitude.
func DefaultParams() Params {
	return Params{Octaves: 6, Lacunarity: 2, Gain: 0.5}
}

// Validate checks octaves >= 1, lacunarity > 1 and gain in (0, 1).
func (p Params) Validate() error {
	switch {
	case p.Octaves < 1:
		return fmt.Errorf("%w: octaves %d < 1", ErrInvalidParams, p.Octaves)
	case !(p.Lacunarity > 1):
		return fmt.Errorf("%w: lacunarity %v must exceed 1", ErrInvalidParams, p.Lacunarity)
	case !(p.Gain > 0 && p.Gain < 1):
		return fmt.Errorf("%w: gain %v outside (0,1)", ErrInvalidParams, p.Gain)
	}
	return nil
}

// normalize maps the amplitude-weighted mean of the octaves from the kernel's
// declared range onto [0, 1].
func normalize(k noise.Kernel, total, maxAmp float32) float32 {
	lo, hi := noise.Range(k)
	return (total/maxAmp - lo) / (hi - lo)
}

// FBM3 sums p.Octaves samples of k in three dimensions.
func FBM3(k noise.Kernel, x, y, z float32, p Params) float32 {
	var total, maxAmp float32
	freq, amp := float32(1), float32(1)
	for i := 0; i < p.Octaves; i++ {
		total += k.Sample3(x*freq, y*freq, z*freq) * amp
		maxAmp += amp
		amp *= p.Gain
		freq *= p.Lacunarity
	}
	return normalize(k, total, maxAmp)
}

// FBM4 sums p.Octaves samples of k in four dimensions.
func FBM4(k noise.Kernel, x, y, z, w float32, p Params) float32 {
	var total, maxAmp float32
	freq, amp := float32(1), float32(1)
	for i := 0; i < p.Octaves; i++ {
		total += k.Sample4(x*freq, y*freq, z*freq, w*freq) * amp
		maxAmp += amp
		amp *= p.Gain
		freq *= p.Lacunarity
	}
	return normalize(k, total, maxAmp)
}

// Warp displaces the sample point by a field of fbm evaluations before the
// final lookup and sharpens the result with a contrast exponent.
type Warp struct {
	Params   Params
	Offset   float32
	Strength float32
	Contrast float32
}

// DefaultWarp returns the terrain warp: offset 0.1, unit strength and
// contrast 1.5 over DefaultParams.
func DefaultWarp() Warp {
	return Warp{Params: DefaultParams(), Offset: 0.1, Strength: 1, Contrast: 1.5}
}

// Validate checks the octave parameters and a positive contrast.
func (w Warp) Validate() error {
	if err := w.Params.Validate(); err != nil {
		return err
	}
	if !(w.Contrast > 0) {
		return fmt.Errorf("%w: contrast %v must be positive", ErrInvalidParams, w.Contrast)
	}
	return nil
}

// Sample4 evaluates the warped field at (x, y, z, w). The result is clamped
// into [0, 1].
func (wp Warp) Sample4(k noise.Kernel, x, y, z, w float32) float32 {
	o := wp.Offset
	dx := FBM4(k, x+o, y, z, w, wp.Params)
	dy := FBM4(k, x, y+o, z, w, wp.Params)
	dz := FBM4(k, x, y, z+o, w, wp.Params)
	dw := FBM4(k, x, y, z, w+o, wp.Params)

	s := wp.Strength
	v := FBM4(k, x+s*dx, y+s*dy, z+s*dz, w+s*dw, wp.Params)
	return clamp01(float32(math.Pow(float64(clamp01(v)), float64(wp.Contrast))))
}

func clamp01(v float32) float32 {
	switch {
	case v < 0 || v != v:
		return 0
	case v > 1:
		return 1
	}
	return v
}
