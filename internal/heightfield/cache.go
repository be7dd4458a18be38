package heightfield

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"torus-rally/internal/fsutil"
	"torus-rally/internal/monitoring"
)

// Dir is the cache directory relative to the cache root.
const Dir = "resources/heightmaps"

// ErrDimensionMismatch is returned when a cached field does not have the
// requested resolution.
var ErrDimensionMismatch = errors.New("heightfield: dimension mismatch")

// Source describes where LoadOrGenerate obtained its field.
type Source int

const (
	// SourceNone accompanies errors that produced no field.
	SourceNone Source = iota
	// SourceCache means the field was read from disk.
	SourceCache
	// SourceGenerated means no cached file existed.
	SourceGenerated
	// SourceRegenerated means a cached file was rejected and replaced.
	SourceRegenerated
)

func (s Source) String() string {
	switch s {
	case SourceCache:
		return "cache"
	case SourceGenerated:
		return "generated"
	case SourceRegenerated:
		return "regenerated"
	default:
		return "none"
	}
}

// Cache reads and writes heightfields under <root>/resources/heightmaps.
type Cache struct {
	fs  fsutil.FileSystem
	dir string
}

// NewCache returns a cache rooted at root. A nil filesystem selects the OS.
func NewCache(fsys fsutil.FileSystem, root string) *Cache {
	if fsys == nil {
		fsys = fsutil.OSFileSystem{}
	}
	return &Cache{fs: fsys, dir: filepath.Join(root, Dir)}
}

// Path returns the file path used for name.
func (c *Cache) Path(name string) string {
	return filepath.Join(c.dir, name)
}

// Exists reports whether a cached file is present for name.
func (c *Cache) Exists(name string) bool {
	return c.fs.Exists(c.Path(name))
}

func classify(op, path string, err error) error {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("%s %s: %w", op, path, ErrNotFound)
	case errors.Is(err, fs.ErrPermission):
		return fmt.Errorf("%s %s: %w", op, path, ErrPermission)
	default:
		return fmt.Errorf("%s %s: %w", op, path, err)
	}
}

// Load reads and decodes the field cached under name.
func (c *Cache) Load(name string) (*Heightfield, error) {
	path := c.Path(name)
	data, err := c.fs.ReadFile(path)
	if err != nil {
		return nil, classify("load", path, err)
	}
	f, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return f, nil
}

// Save encodes f under name, creating the cache directory if needed.
func (c *Cache) Save(name string, f *Heightfield) error {
	data, err := f.MarshalBinary()
	if err != nil {
		return err
	}
	if err := c.fs.MkdirAll(c.dir, 0o755); err != nil {
		return classify("mkdir", c.dir, err)
	}
	path := c.Path(name)
	if err := c.fs.WriteFile(path, data, 0o644); err != nil {
		return classify("save", path, err)
	}
	return nil
}

// LoadOrGenerate returns the cached field for name when it exists and has
// the requested shape. Otherwise it generates a new field and caches it.
// Missing, truncated, malformed or mismatched files lead to regeneration;
// permission failures on read are returned. When the generated field cannot
// be saved the field is still returned together with the save error.
func (c *Cache) LoadOrGenerate(name string, rows, cols int, gen *Generator) (*Heightfield, Source, error) {
	source := SourceGenerated
	if c.Exists(name) {
		f, err := c.Load(name)
		if err == nil {
			err = checkShape(f, rows, cols)
		}
		switch {
		case err == nil:
			monitoring.Logf("heightfield: loaded %s (%dx%d)", c.Path(name), rows, cols)
			return f, SourceCache, nil
		case errors.Is(err, ErrPermission):
			return nil, SourceNone, err
		default:
			monitoring.Logf("heightfield: rejecting cached %s: %v", c.Path(name), err)
			source = SourceRegenerated
		}
	} else {
		monitoring.Logf("heightfield: no cached field at %s, generating", c.Path(name))
	}

	f, err := gen.Generate(rows, cols)
	if err != nil {
		return nil, SourceNone, err
	}
	if err := c.Save(name, f); err != nil {
		return f, source, err
	}
	monitoring.Logf("heightfield: saved %s", c.Path(name))
	return f, source, nil
}

func checkShape(f *Heightfield, rows, cols int) error {
	if f.Rows() != rows || f.Cols() != cols {
		return fmt.Errorf("%w: cached %dx%d, want %dx%d", ErrDimensionMismatch, f.Rows(), f.Cols(), rows, cols)
	}
	return nil
}
