// Package terrain runs the full synthesis pipeline: validate the
// configuration, load or generate the heightfield and build the mesh.
package terrain

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"torus-rally/internal/config"
	"torus-rally/internal/fsutil"
	"torus-rally/internal/heightfield"
	"torus-rally/internal/mesh"
	"torus-rally/internal/monitoring"
	"torus-rally/internal/report"
)

// Result is everything one pipeline run produced.
type Result struct {
	// RunID tags the log lines of one run.
	RunID  uuid.UUID
	Field  *heightfield.Heightfield
	Source heightfield.Source
	Stats  report.Stats
	Mesh   *mesh.Mesh
	// CacheErr is set when the field was generated but could not be saved.
	CacheErr error
}

// Pipeline binds a configuration to the filesystem holding its cache.
type Pipeline struct {
	Config config.Config
	FS     fsutil.FileSystem
}

// New returns a pipeline over the OS filesystem.
func New(cfg config.Config) *Pipeline {
	return &Pipeline{Config: cfg, FS: fsutil.OSFileSystem{}}
}

// Cache returns the heightfield cache described by the configuration.
func (p *Pipeline) Cache() *heightfield.Cache {
	return heightfield.NewCache(p.FS, p.Config.Cache.Root)
}

// Field loads the cached heightfield or generates and caches a new one.
// A failed save is reported through the returned cache error while the
// field itself remains usable.
func (p *Pipeline) Field() (f *heightfield.Heightfield, src heightfield.Source, cacheErr error, err error) {
	if err := p.Config.Validate(); err != nil {
		return nil, heightfield.SourceNone, nil, err
	}
	gen, err := p.Config.Generator()
	if err != nil {
		return nil, heightfield.SourceNone, nil, err
	}
	f, src, err = p.Cache().LoadOrGenerate(p.Config.Cache.Name, p.Config.Grid.Rows, p.Config.Grid.Cols, gen)
	if err != nil && f != nil {
		monitoring.Logf("terrain: heightfield not cached: %v", err)
		return f, src, err, nil
	}
	return f, src, nil, err
}

// Run executes the pipeline and returns the mesh with the field it was
// built from.
func (p *Pipeline) Run() (*Result, error) {
	id := uuid.New()
	f, src, cacheErr, err := p.Field()
	if err != nil {
		return nil, fmt.Errorf("terrain: heightfield: %w", err)
	}
	stats := report.Summarize(f)
	monitoring.Logf("terrain[%s]: heightfield %dx%d from %s: %s", id, f.Rows(), f.Cols(), src, stats)

	b, variant, err := p.Config.Builder()
	if err != nil {
		return nil, err
	}
	m, err := b.Build(variant, f, p.Config.Grid.Rings, p.Config.Grid.Sides)
	if err != nil {
		return nil, fmt.Errorf("terrain: mesh: %w", err)
	}
	if err := m.Validate(); err != nil {
		return nil, errors.Join(errors.New("terrain: built mesh failed validation"), err)
	}
	monitoring.Logf("terrain[%s]: %s mesh with %d vertices, %d triangles", id, variant, m.VertexCount(), m.TriangleCount())
	return &Result{RunID: id, Field: f, Source: src, Stats: stats, Mesh: m, CacheErr: cacheErr}, nil
}
