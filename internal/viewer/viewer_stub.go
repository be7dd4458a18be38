//go:build !raylib

package viewer

import "torus-rally/internal/mesh"

// Run reports that the window is unavailable in headless builds.
func Run(*mesh.Mesh, Options) error { return ErrNoWindow }
