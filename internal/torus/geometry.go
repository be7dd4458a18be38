// Package torus evaluates points, normals and tangents on a ring torus and
// caches the trigonometry of one surface coordinate for repeated queries.
package torus

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"torus-rally/internal/monitoring"
)

// ErrInvalidGeometry reports non-positive radii.
var ErrInvalidGeometry = errors.New("torus: invalid geometry")

// Geometry holds the major (ring) and minor (tube) radii.
type Geometry struct {
	Major float32
	Minor float32
}

// Validate requires both radii to be positive. A major radius that does not
// exceed the minor radius produces a self-intersecting torus; it is logged
// but allowed.
func (g Geometry) Validate() error {
	if !(g.Major > 0) || !(g.Minor > 0) {
		return fmt.Errorf("%w: major=%v minor=%v", ErrInvalidGeometry, g.Major, g.Minor)
	}
	if g.Major <= g.Minor {
		monitoring.Logf("torus: major radius %v does not exceed minor radius %v", g.Major, g.Minor)
	}
	return nil
}

// Frame carries the two surface angles and their sines and cosines.
type Frame struct {
	Theta, Phi         float32
	SinTheta, CosTheta float32
	SinPhi, CosPhi     float32
}

// FrameAt evaluates the trigonometry for the ring angle theta and the tube
// angle phi.
func FrameAt(theta, phi float32) Frame {
	st, ct := math.Sincos(float64(theta))
	sp, cp := math.Sincos(float64(phi))
	return Frame{
		Theta:    theta,
		Phi:      phi,
		SinTheta: float32(st),
		CosTheta: float32(ct),
		SinPhi:   float32(sp),
		CosPhi:   float32(cp),
	}
}

// PositionAt returns the surface point for f.
func (g Geometry) PositionAt(f Frame) mgl32.Vec3 {
	ring := g.Major + g.Minor*f.CosPhi
	return mgl32.Vec3{ring * f.CosTheta, g.Minor * f.SinPhi, ring * f.SinTheta}
}

// NormalAt returns the outward unit normal for f.
func NormalAt(f Frame) mgl32.Vec3 {
	return mgl32.Vec3{f.CosPhi * f.CosTheta, f.SinPhi, f.CosPhi * f.SinTheta}
}

// TangentThetaAt returns the unit tangent along the ring direction.
func TangentThetaAt(f Frame) mgl32.Vec3 {
	return mgl32.Vec3{-f.SinTheta, 0, f.CosTheta}
}

// TangentPhiAt returns the unit tangent around the tube.
func TangentPhiAt(f Frame) mgl32.Vec3 {
	return mgl32.Vec3{-f.SinPhi * f.CosTheta, f.CosPhi, -f.SinPhi * f.SinTheta}
}

// Surface maps a width x height parameter rectangle onto the torus so that
// u in [0, Width) covers one full ring turn and v in [0, Height) one full tube
// turn.
type Surface struct {
	Geometry
	Width  float32
	Height float32
}

// Theta converts u to the ring angle.
func (s Surface) Theta(u float32) float32 {
	return 2 * math.Pi * u / s.Width
}

// Phi converts v to the tube angle.
func (s Surface) Phi(v float32) float32 {
	return 2 * math.Pi * v / s.Height
}

// Frame evaluates the trigonometry at (u, v).
func (s Surface) Frame(u, v float32) Frame {
	return FrameAt(s.Theta(u), s.Phi(v))
}

// Position returns the surface point at (u, v).
func (s Surface) Position(u, v float32) mgl32.Vec3 {
	return s.PositionAt(s.Frame(u, v))
}

// Normal returns the unit normal at (u, v).
func (s Surface) Normal(u, v float32) mgl32.Vec3 {
	return NormalAt(s.Frame(u, v))
}

// TangentTheta returns the ring tangent at (u, v).
func (s Surface) TangentTheta(u, v float32) mgl32.Vec3 {
	return TangentThetaAt(s.Frame(u, v))
}

// TangentPhi returns the tube tangent at (u, v).
func (s Surface) TangentPhi(u, v float32) mgl32.Vec3 {
	return TangentPhiAt(s.Frame(u, v))
}
