// Package mesh turns heightfields into indexed triangle meshes wrapped around
// a torus or laid out flat, for the renderer and the physics engine.
package mesh

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

var (
	// ErrInvalidMesh reports mismatched attribute arrays or dangling indices.
	ErrInvalidMesh = errors.New("mesh: invalid mesh")
	// ErrIndexOverflow is returned when a mesh has too many vertices for
	// 16-bit indices.
	ErrIndexOverflow = errors.New("mesh: too many vertices for 16-bit indices")
)

// Mesh holds parallel per-vertex attributes and a triangle list.
type Mesh struct {
	Positions []mgl32.Vec3
	Normals   []mgl32.Vec3
	Texcoords []mgl32.Vec2
	Indices   []uint32
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int { return len(m.Positions) }

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int { return len(m.Indices) / 3 }

// Validate checks that the attribute arrays line up and every index refers
// to a vertex.
func (m *Mesh) Validate() error {
	n := len(m.Positions)
	if len(m.Normals) != n || len(m.Texcoords) != n {
		return fmt.Errorf("%w: %d positions, %d normals, %d texcoords", ErrInvalidMesh, n, len(m.Normals), len(m.Texcoords))
	}
	if len(m.Indices)%3 != 0 {
		return fmt.Errorf("%w: %d indices is not a triangle list", ErrInvalidMesh, len(m.Indices))
	}
	for i, idx := range m.Indices {
		if int(idx) >= n {
			return fmt.Errorf("%w: index %d at %d exceeds %d vertices", ErrInvalidMesh, idx, i, n)
		}
	}
	return nil
}

// Indices16 narrows the index list for renderers that take 16-bit indices.
func (m *Mesh) Indices16() ([]uint16, error) {
	if len(m.Positions) > math.MaxUint16 {
		return nil, fmt.Errorf("%w: %d vertices", ErrIndexOverflow, len(m.Positions))
	}
	out := make([]uint16, len(m.Indices))
	for i, idx := range m.Indices {
		out[i] = uint16(idx)
	}
	return out, nil
}

// Indices32 returns a copy of the index list for collision-mesh builders.
func (m *Mesh) Indices32() []uint32 {
	out := make([]uint32, len(m.Indices))
	copy(out, m.Indices)
	return out
}

// FlatPositions returns positions as x, y, z triples.
func (m *Mesh) FlatPositions() []float32 { return flatten3(m.Positions) }

// FlatNormals returns normals as x, y, z triples.
func (m *Mesh) FlatNormals() []float32 { return flatten3(m.Normals) }

// FlatTexcoords returns texture coordinates as u, v pairs.
func (m *Mesh) FlatTexcoords() []float32 {
	out := make([]float32, 0, 2*len(m.Texcoords))
	for _, t := range m.Texcoords {
		out = append(out, t[0], t[1])
	}
	return out
}

func flatten3(vs []mgl32.Vec3) []float32 {
	out := make([]float32, 0, 3*len(vs))
	for _, v := range vs {
		out = append(out, v[0], v[1], v[2])
	}
	return out
}
