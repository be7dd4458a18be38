// Package viewer displays a terrain mesh in an orbiting 3D view. The window
// needs the raylib build tag; the camera math here is shared and headless.
package viewer

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"torus-rally/internal/mesh"
)

const (
	minPitch    = -1.5
	maxPitch    = 1.5
	minDistance = 1
	zoomFactor  = 0.1
	orbitSpeed  = 0.005
)

// Orbit is a camera circling Target at Distance, looking at it from the
// angles Yaw (around +Y) and Pitch (above the XZ plane), in radians.
type Orbit struct {
	Target   mgl32.Vec3
	Distance float32
	Yaw      float32
	Pitch    float32
}

// Frame returns an orbit centred on the mesh's bounding box and far enough
// back to see all of it.
func Frame(m *mesh.Mesh) Orbit {
	lo, hi := Bounds(m)
	radius := hi.Sub(lo).Len() / 2
	return Orbit{
		Target:   lo.Add(hi).Mul(0.5),
		Distance: max(radius*2, minDistance),
		Yaw:      math.Pi / 4,
		Pitch:    0.6,
	}
}

// Bounds returns the axis-aligned bounding box of the mesh positions. An
// empty mesh yields two zero vectors.
func Bounds(m *mesh.Mesh) (lo, hi mgl32.Vec3) {
	if m == nil || len(m.Positions) == 0 {
		return lo, hi
	}
	lo, hi = m.Positions[0], m.Positions[0]
	for _, p := range m.Positions[1:] {
		for i := range 3 {
			lo[i] = min(lo[i], p[i])
			hi[i] = max(hi[i], p[i])
		}
	}
	return lo, hi
}

// Rotate turns the camera by a mouse drag of (dx, dy) pixels.
func (o *Orbit) Rotate(dx, dy float32) {
	o.Yaw -= dx * orbitSpeed
	o.Pitch = mgl32.Clamp(o.Pitch+dy*orbitSpeed, minPitch, maxPitch)
}

// Zoom moves the camera toward the target for positive wheel steps.
func (o *Orbit) Zoom(steps float32) {
	o.Distance = max(o.Distance*(1-steps*zoomFactor), minDistance)
}

// Pan shifts the target within the view plane.
func (o *Orbit) Pan(dx, dy float32) {
	forward := o.Target.Sub(o.Eye()).Normalize()
	right := forward.Cross(mgl32.Vec3{0, 1, 0}).Normalize()
	up := right.Cross(forward)
	scale := o.Distance * 0.002
	o.Target = o.Target.Sub(right.Mul(dx * scale)).Add(up.Mul(dy * scale))
}

// Eye returns the camera position.
func (o *Orbit) Eye() mgl32.Vec3 {
	sy, cy := math.Sincos(float64(o.Yaw))
	sp, cp := math.Sincos(float64(o.Pitch))
	dir := mgl32.Vec3{float32(cp * sy), float32(sp), float32(cp * cy)}
	return o.Target.Add(dir.Mul(o.Distance))
}

// View returns the look-at matrix of the camera.
func (o *Orbit) View() mgl32.Mat4 {
	return mgl32.LookAtV(o.Eye(), o.Target, mgl32.Vec3{0, 1, 0})
}
