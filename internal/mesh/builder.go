package mesh

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/go-gl/mathgl/mgl32"

	"torus-rally/internal/heightfield"
	"torus-rally/internal/monitoring"
	"torus-rally/internal/torus"
)

// ErrResolution is returned for grids with fewer than three rings or sides.
var ErrResolution = errors.New("mesh: rings and sides must be at least 3")

// ErrUnknownVariant is returned for unrecognized variant names.
var ErrUnknownVariant = errors.New("mesh: unknown variant")

// Variant selects how grid vertices are embedded in space.
type Variant string

const (
	// Curved wraps the grid around the torus and closes it in both
	// directions.
	Curved Variant = "curved"
	// Flattened unrolls the torus onto the x-z plane with height on y. The
	// last ring and side are not joined back to the first.
	Flattened Variant = "flattened"
)

// ParseVariant resolves a case-insensitive variant name.
func ParseVariant(name string) (Variant, error) {
	switch v := Variant(strings.ToLower(strings.TrimSpace(name))); v {
	case Curved, Flattened:
		return v, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownVariant, name)
}

// HeightRange is the interval heights are rescaled into before they displace
// the surface.
type HeightRange struct {
	Lower float32
	Upper float32
}

// DefaultHeightRange maps the field onto 0..400 world units.
func DefaultHeightRange() HeightRange {
	return HeightRange{Lower: 0, Upper: 400}
}

// Builder constructs meshes for one torus geometry.
type Builder struct {
	Geometry torus.Geometry
	Range    HeightRange
}

// Build dispatches to Curved or Flattened.
func (b Builder) Build(v Variant, f *heightfield.Heightfield, rings, sides int) (*Mesh, error) {
	switch v {
	case Curved:
		return b.Curved(f, rings, sides)
	case Flattened:
		return b.Flattened(f, rings, sides)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownVariant, string(v))
}

// rescaler maps samples linearly from the field's own min..max onto the
// builder's height range.
type rescaler struct {
	lo, lower, gradient float32
}

func (b Builder) heightScale(f *heightfield.Heightfield) rescaler {
	lo, hi := f.MinMax()
	r := rescaler{lo: lo, lower: b.Range.Lower}
	if hi > lo {
		r.gradient = (b.Range.Upper - b.Range.Lower) / (hi - lo)
	}
	monitoring.Logf("mesh: height min %.4f max %.4f gradient %.4f", lo, hi, r.gradient)
	return r
}

func (r rescaler) apply(h float32) float32 {
	return r.lower + (h-r.lo)*r.gradient
}

func (b Builder) check(f *heightfield.Heightfield, rings, sides int) error {
	if f == nil {
		return errors.New("mesh: nil heightfield")
	}
	if rings < 3 || sides < 3 {
		return fmt.Errorf("%w: got %dx%d", ErrResolution, rings, sides)
	}
	return b.Geometry.Validate()
}

// gridAngles returns the ring and tube angles of vertex (i, j).
func gridAngles(i, j, rings, sides int) (theta, phi float32) {
	theta = float32(i) / float32(rings) * 2 * math.Pi
	phi = float32(j) / float32(sides) * 2 * math.Pi
	return theta, phi
}

// Curved builds a closed torus. Each vertex starts on the torus surface and
// is pushed outward along the surface normal by its rescaled height.
func (b Builder) Curved(f *heightfield.Heightfield, rings, sides int) (*Mesh, error) {
	if err := b.check(f, rings, sides); err != nil {
		return nil, err
	}
	scale := b.heightScale(f)
	rows, cols := f.Rows(), f.Cols()

	m := newMesh(rings, sides)
	surface := make([]mgl32.Vec3, rings*sides)
	for i := 0; i < rings; i++ {
		for j := 0; j < sides; j++ {
			theta, phi := gridAngles(i, j, rings, sides)
			frame := torus.FrameAt(theta, phi)
			base := b.Geometry.PositionAt(frame)
			normal := torus.NormalAt(frame)

			sx := heightfield.Wrap(int(base.Z()), cols)
			sy := heightfield.Wrap(int(float32(rows)-base.X()), rows)
			h := scale.apply(f.At(sy, sx))

			idx := i*sides + j
			m.Positions[idx] = base.Add(normal.Mul(h))
			surface[idx] = normal
		}
	}

	m.Indices = quadIndices(rings, sides, true)
	smoothNormals(m, surface)
	return m, nil
}

// Flattened builds an open sheet: x runs along the tube angle, z along the
// ring angle and y carries the rescaled height.
func (b Builder) Flattened(f *heightfield.Heightfield, rings, sides int) (*Mesh, error) {
	if err := b.check(f, rings, sides); err != nil {
		return nil, err
	}
	scale := b.heightScale(f)
	rows, cols := f.Rows(), f.Cols()
	halfRows, halfCols := float32(rows)/2, float32(cols)/2

	m := newMesh(rings, sides)
	up := make([]mgl32.Vec3, rings*sides)
	for i := 0; i < rings; i++ {
		for j := 0; j < sides; j++ {
			theta, phi := gridAngles(i, j, rings, sides)
			x := halfRows - phi*b.Geometry.Minor
			z := b.Geometry.Major*theta - halfCols

			sx := heightfield.Wrap(int(z+halfCols), cols)
			sy := heightfield.Wrap(int(halfRows-x), rows)

			idx := i*sides + j
			m.Positions[idx] = mgl32.Vec3{x, scale.apply(f.At(sy, sx)), z}
			up[idx] = mgl32.Vec3{0, 1, 0}
		}
	}

	m.Indices = quadIndices(rings, sides, false)
	smoothNormals(m, up)
	return m, nil
}

func newMesh(rings, sides int) *Mesh {
	n := rings * sides
	m := &Mesh{
		Positions: make([]mgl32.Vec3, n),
		Normals:   make([]mgl32.Vec3, n),
		Texcoords: make([]mgl32.Vec2, n),
	}
	for i := 0; i < rings; i++ {
		for j := 0; j < sides; j++ {
			m.Texcoords[i*sides+j] = mgl32.Vec2{float32(j) / float32(sides), float32(i) / float32(rings)}
		}
	}
	return m
}

// quadIndices emits two triangles per grid quad, (v00, v01, v10) and
// (v10, v01, v11). With wrap set the last ring and side connect back to the
// first, giving rings*sides quads; otherwise (rings-1)*(sides-1).
func quadIndices(rings, sides int, wrap bool) []uint32 {
	qr, qs := rings-1, sides-1
	if wrap {
		qr, qs = rings, sides
	}
	out := make([]uint32, 0, qr*qs*6)
	for i := 0; i < qr; i++ {
		i1 := (i + 1) % rings
		for j := 0; j < qs; j++ {
			j1 := (j + 1) % sides
			v00 := uint32(i*sides + j)
			v01 := uint32(i*sides + j1)
			v10 := uint32(i1*sides + j)
			v11 := uint32(i1*sides + j1)
			out = append(out, v00, v01, v10, v10, v01, v11)
		}
	}
	return out
}

// smoothNormals accumulates the unnormalized face normal of every triangle
// into its three vertices and normalizes each vertex once at the end.
// Vertices whose sum vanishes take the matching fallback direction.
func smoothNormals(m *Mesh, fallback []mgl32.Vec3) {
	acc := make([]mgl32.Vec3, len(m.Positions))
	for t := 0; t+2 < len(m.Indices); t += 3 {
		a, b, c := m.Indices[t], m.Indices[t+1], m.Indices[t+2]
		pa := m.Positions[a]
		n := m.Positions[b].Sub(pa).Cross(m.Positions[c].Sub(pa))
		acc[a] = acc[a].Add(n)
		acc[b] = acc[b].Add(n)
		acc[c] = acc[c].Add(n)
	}
	for i, n := range acc {
		if l := n.Len(); l > 0 && !math.IsInf(float64(l), 0) {
			m.Normals[i] = n.Mul(1 / l)
		} else {
			m.Normals[i] = fallback[i]
		}
	}
}
