package torus

import "github.com/go-gl/mathgl/mgl32"

// Coords memoizes one surface coordinate so position, normal and tangents
// can be queried repeatedly without recomputing the trigonometry. Results
// equal the corresponding Surface methods bit for bit.
type Coords struct {
	surface Surface
	frame   Frame
}

// NewCoords returns a cache positioned at (0, 0).
func NewCoords(s Surface) *Coords {
	c := &Coords{surface: s}
	c.Set(0, 0)
	return c
}

// Set moves the cache to (u, v).
func (c *Coords) Set(u, v float32) {
	c.frame = c.surface.Frame(u, v)
}

// Frame returns the cached angles and trigonometry.
func (c *Coords) Frame() Frame { return c.frame }

func (c *Coords) Position() mgl32.Vec3     { return c.surface.PositionAt(c.frame) }
func (c *Coords) Normal() mgl32.Vec3       { return NormalAt(c.frame) }
func (c *Coords) TangentTheta() mgl32.Vec3 { return TangentThetaAt(c.frame) }
func (c *Coords) TangentPhi() mgl32.Vec3   { return TangentPhiAt(c.frame) }
