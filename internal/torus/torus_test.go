package torus

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"torus-rally/internal/monitoring"
)

func testSurface() Surface {
	return Surface{Geometry: Geometry{Major: 100, Minor: 20}, Width: 640, Height: 320}
}

func TestGeometryValidate(t *testing.T) {
	var logged []string
	monitoring.SetLogger(func(format string, _ ...any) { logged = append(logged, format) })
	t.Cleanup(func() { monitoring.SetLogger(nil) })

	assert.NoError(t, Geometry{Major: 100, Minor: 20}.Validate())
	assert.Empty(t, logged)

	assert.ErrorIs(t, Geometry{Major: 0, Minor: 20}.Validate(), ErrInvalidGeometry)
	assert.ErrorIs(t, Geometry{Major: 10, Minor: -1}.Validate(), ErrInvalidGeometry)

	assert.NoError(t, Geometry{Major: 10, Minor: 20}.Validate())
	assert.Len(t, logged, 1)
}

func TestCoordsMatchSurfaceBitForBit(t *testing.T) {
	s := testSurface()
	c := NewCoords(s)
	for _, uv := range [][2]float32{{0, 0}, {13.5, 7.25}, {639.9, 319.9}, {-40, 500}, {160, 80}} {
		c.Set(uv[0], uv[1])
		assert.Equal(t, s.Position(uv[0], uv[1]), c.Position())
		assert.Equal(t, s.Normal(uv[0], uv[1]), c.Normal())
		assert.Equal(t, s.TangentTheta(uv[0], uv[1]), c.TangentTheta())
		assert.Equal(t, s.TangentPhi(uv[0], uv[1]), c.TangentPhi())
	}
}

func TestFrameIsOrthonormal(t *testing.T) {
	s := testSurface()
	for u := float32(0); u < s.Width; u += 37 {
		for v := float32(0); v < s.Height; v += 23 {
			n := s.Normal(u, v)
			tt := s.TangentTheta(u, v)
			tp := s.TangentPhi(u, v)
			require.InDelta(t, 1, n.Len(), 1e-5)
			require.InDelta(t, 1, tt.Len(), 1e-5)
			require.InDelta(t, 1, tp.Len(), 1e-5)
			require.InDelta(t, 0, n.Dot(tt), 1e-5)
			require.InDelta(t, 0, n.Dot(tp), 1e-5)
			require.InDelta(t, 0, tt.Dot(tp), 1e-5)
		}
	}
}

func TestPositionLiesOnTube(t *testing.T) {
	s := testSurface()
	for u := float32(0); u < s.Width; u += 53 {
		for v := float32(0); v < s.Height; v += 31 {
			p := s.Position(u, v)
			f := s.Frame(u, v)
			center := mgl32.Vec3{s.Major * f.CosTheta, 0, s.Major * f.SinTheta}
			require.InDelta(t, s.Minor, p.Sub(center).Len(), 1e-3)
			// The offset from the tube center points along the normal.
			require.InDelta(t, 1, p.Sub(center).Normalize().Dot(s.Normal(u, v)), 1e-5)
		}
	}
}

func TestTangentsFollowFiniteDifferences(t *testing.T) {
	s := testSurface()
	const h = 1e-2
	u, v := float32(100), float32(50)

	du := s.Position(u+h, v).Sub(s.Position(u-h, v)).Normalize()
	dv := s.Position(u, v+h).Sub(s.Position(u, v-h)).Normalize()

	assert.InDelta(t, 1, du.Dot(s.TangentTheta(u, v)), 1e-3)
	assert.InDelta(t, 1, dv.Dot(s.TangentPhi(u, v)), 1e-3)
}

func TestSurfaceIsPeriodic(t *testing.T) {
	s := testSurface()
	a := s.Position(10, 20)
	b := s.Position(10+s.Width, 20+s.Height)
	for i := 0; i < 3; i++ {
		assert.InDelta(t, a[i], b[i], 1e-3)
	}
	assert.InDelta(t, 2*math.Pi, s.Theta(s.Width), 1e-6)
	assert.InDelta(t, 2*math.Pi, s.Phi(s.Height), 1e-6)
}
