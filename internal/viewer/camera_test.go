package viewer

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"torus-rally/internal/mesh"
)

func TestBounds(t *testing.T) {
	m := &mesh.Mesh{Positions: []mgl32.Vec3{{1, -2, 3}, {-4, 5, 0}, {2, 0, -1}}}
	lo, hi := Bounds(m)
	assert.Equal(t, mgl32.Vec3{-4, -2, -1}, lo)
	assert.Equal(t, mgl32.Vec3{2, 5, 3}, hi)

	lo, hi = Bounds(&mesh.Mesh{})
	assert.Equal(t, mgl32.Vec3{}, lo)
	assert.Equal(t, mgl32.Vec3{}, hi)
}

func TestFrameCentresTarget(t *testing.T) {
	m := &mesh.Mesh{Positions: []mgl32.Vec3{{-10, 0, -10}, {10, 4, 10}}}
	o := Frame(m)
	assert.True(t, o.Target.ApproxEqual(mgl32.Vec3{0, 2, 0}))
	assert.Greater(t, o.Distance, float32(14))
}

func TestEyeKeepsDistance(t *testing.T) {
	o := Orbit{Target: mgl32.Vec3{1, 2, 3}, Distance: 50, Yaw: 0.3, Pitch: -0.7}
	assert.InDelta(t, 50, o.Eye().Sub(o.Target).Len(), 1e-3)

	o = Orbit{Distance: 10}
	assert.True(t, o.Eye().ApproxEqualThreshold(mgl32.Vec3{0, 0, 10}, 1e-5))
}

func TestRotateClampsPitch(t *testing.T) {
	o := Orbit{Distance: 10}
	o.Rotate(0, 10000)
	assert.Equal(t, float32(maxPitch), o.Pitch)
	o.Rotate(0, -100000)
	assert.Equal(t, float32(minPitch), o.Pitch)
	o.Rotate(100, 0)
	assert.InDelta(t, -0.5, o.Yaw, 1e-6)
}

func TestZoomStopsAtMinimum(t *testing.T) {
	o := Orbit{Distance: 10}
	o.Zoom(1)
	assert.InDelta(t, 9, o.Distance, 1e-5)
	for range 200 {
		o.Zoom(5)
	}
	assert.Equal(t, float32(minDistance), o.Distance)
	o.Zoom(-1)
	assert.Greater(t, o.Distance, float32(minDistance))
}

func TestPanMovesTargetSideways(t *testing.T) {
	o := Orbit{Distance: 100}
	eyeBefore := o.Eye().Sub(o.Target)
	o.Pan(10, 0)
	require.NotEqual(t, mgl32.Vec3{}, o.Target)
	assert.InDelta(t, 0, o.Target.Y(), 1e-5)
	assert.True(t, o.Eye().Sub(o.Target).ApproxEqualThreshold(eyeBefore, 1e-4))
}

func TestViewLooksAtTarget(t *testing.T) {
	o := Orbit{Target: mgl32.Vec3{5, 0, 0}, Distance: 20, Pitch: 0.4}
	v := o.View()
	p := v.Mul4x1(o.Target.Vec4(1))
	assert.InDelta(t, 0, p.X(), 1e-4)
	assert.InDelta(t, 0, p.Y(), 1e-4)
	assert.InDelta(t, -20, p.Z(), 1e-3)
}
