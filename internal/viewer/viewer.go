//go:build raylib

package viewer

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"torus-rally/internal/mesh"
	"torus-rally/internal/monitoring"
)

// upload copies m into a raylib mesh on the GPU. The returned arrays back the
// mesh's CPU side and must outlive it.
type upload struct {
	mesh      rl.Mesh
	positions []float32
	normals   []float32
	texcoords []float32
	indices   []uint16
}

func newUpload(m *mesh.Mesh) (*upload, error) {
	idx, err := m.Indices16()
	if err != nil {
		return nil, err
	}
	u := &upload{
		positions: m.FlatPositions(),
		normals:   m.FlatNormals(),
		texcoords: m.FlatTexcoords(),
		indices:   idx,
	}
	if len(u.positions) == 0 || len(u.indices) == 0 {
		return nil, fmt.Errorf("%w: empty mesh", mesh.ErrInvalidMesh)
	}
	u.mesh = rl.Mesh{
		VertexCount:   int32(m.VertexCount()),
		TriangleCount: int32(m.TriangleCount()),
		Vertices:      &u.positions[0],
		Normals:       &u.normals[0],
		Texcoords:     &u.texcoords[0],
		Indices:       &u.indices[0],
	}
	rl.UploadMesh(&u.mesh, false)
	return u, nil
}

// Run opens a window and orbits the mesh until it is closed.
// Right drag orbits, middle drag pans, the wheel zooms, W toggles wireframe.
func Run(m *mesh.Mesh, opts Options) error {
	if err := m.Validate(); err != nil {
		return err
	}
	rl.InitWindow(opts.Width, opts.Height, opts.Title)
	defer rl.CloseWindow()
	rl.SetTargetFPS(opts.FPS)

	u, err := newUpload(m)
	if err != nil {
		return err
	}
	// The vertex arrays are Go memory, so the model is never unloaded;
	// closing the window releases its GPU buffers.
	model := rl.LoadModelFromMesh(u.mesh)
	monitoring.Logf("viewer: uploaded %d vertices, %d triangles", m.VertexCount(), m.TriangleCount())

	orbit := Frame(m)
	wire := false
	for !rl.WindowShouldClose() {
		delta := rl.GetMouseDelta()
		switch {
		case rl.IsMouseButtonDown(rl.MouseButtonRight):
			orbit.Rotate(delta.X, delta.Y)
		case rl.IsMouseButtonDown(rl.MouseButtonMiddle):
			orbit.Pan(delta.X, delta.Y)
		}
		orbit.Zoom(rl.GetMouseWheelMove())
		if rl.IsKeyPressed(rl.KeyW) {
			wire = !wire
		}

		rl.BeginDrawing()
		rl.ClearBackground(rl.NewColor(16, 16, 20, 255))
		rl.BeginMode3D(camera(orbit))
		if wire {
			rl.DrawModelWires(model, rl.NewVector3(0, 0, 0), 1, rl.LightGray)
		} else {
			rl.DrawModel(model, rl.NewVector3(0, 0, 0), 1, rl.Beige)
		}
		rl.EndMode3D()
		rl.DrawText(fmt.Sprintf("%d tris  dist %.0f", m.TriangleCount(), orbit.Distance), 10, 10, 16, rl.RayWhite)
		rl.EndDrawing()
	}
	return nil
}

func camera(o Orbit) rl.Camera3D {
	eye := o.Eye()
	return rl.Camera3D{
		Position:   rl.NewVector3(eye.X(), eye.Y(), eye.Z()),
		Target:     rl.NewVector3(o.Target.X(), o.Target.Y(), o.Target.Z()),
		Up:         rl.NewVector3(0, 1, 0),
		Fovy:       45,
		Projection: rl.CameraPerspective,
	}
}
