package heightfield

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"torus-rally/internal/fractal"
	"torus-rally/internal/fsutil"
	"torus-rally/internal/monitoring"
	"torus-rally/internal/noise"
	"torus-rally/internal/torus"
)

func muteLogs(t *testing.T) {
	t.Helper()
	monitoring.SetLogger(nil)
	t.Cleanup(func() { monitoring.SetLogger(nil) })
}

func testGenerator(t *testing.T, alg noise.Algorithm, workers int) *Generator {
	t.Helper()
	k, err := noise.New(alg, 42)
	require.NoError(t, err)
	return &Generator{
		Kernel:   k,
		Warp:     fractal.DefaultWarp(),
		Geometry: torus.Geometry{Major: 100, Minor: 20},
		Scale:    DefaultScale,
		Workers:  workers,
	}
}

func sampleField(t *testing.T) *Heightfield {
	t.Helper()
	f, err := FromValues(2, 2, []float32{0.1, 0.2, 0.3, 0.4})
	require.NoError(t, err)
	return f
}

func TestCachePaths(t *testing.T) {
	c := NewCache(fsutil.NewMemoryFileSystem(), "data")
	assert.Equal(t, filepath.Join("data", "resources", "heightmaps", "heightmap.bin"), c.Path("heightmap.bin"))
}

func TestCacheSaveLoadOnDisk(t *testing.T) {
	root := t.TempDir()
	c := NewCache(nil, root)
	assert.False(t, c.Exists("a.bin"))

	f := sampleField(t)
	require.NoError(t, c.Save("a.bin", f))
	require.NoError(t, c.Save("a.bin", f), "saving twice must be idempotent")
	assert.True(t, c.Exists("a.bin"))

	got, err := c.Load("a.bin")
	require.NoError(t, err)
	assert.True(t, f.Equal(got))
}

func TestCacheLoadErrors(t *testing.T) {
	mfs := fsutil.NewMemoryFileSystem()
	c := NewCache(mfs, "")

	_, err := c.Load("missing.bin")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, mfs.MkdirAll(Dir, 0o755))
	require.NoError(t, mfs.WriteFile(c.Path("short.bin"), header(4, 4), 0o644))
	_, err = c.Load("short.bin")
	assert.ErrorIs(t, err, ErrTruncated)

	require.NoError(t, mfs.WriteFile(c.Path("bad.bin"), header(-1, 4), 0o644))
	_, err = c.Load("bad.bin")
	assert.ErrorIs(t, err, ErrMalformedHeader)

	require.NoError(t, c.Save("locked.bin", sampleField(t)))
	mfs.Deny(c.Path("locked.bin"))
	_, err = c.Load("locked.bin")
	assert.ErrorIs(t, err, ErrPermission)
}

func TestCacheSavePermissionDenied(t *testing.T) {
	mfs := fsutil.NewMemoryFileSystem()
	mfs.Deny("resources")
	c := NewCache(mfs, "")
	assert.ErrorIs(t, c.Save("x.bin", sampleField(t)), ErrPermission)
}

func TestLoadOrGenerate(t *testing.T) {
	muteLogs(t)
	mfs := fsutil.NewMemoryFileSystem()
	c := NewCache(mfs, "")
	gen := testGenerator(t, noise.Perlin, 2)

	first, src, err := c.LoadOrGenerate("hm.bin", 8, 6, gen)
	require.NoError(t, err)
	assert.Equal(t, SourceGenerated, src)
	assert.True(t, c.Exists("hm.bin"))

	second, src, err := c.LoadOrGenerate("hm.bin", 8, 6, gen)
	require.NoError(t, err)
	assert.Equal(t, SourceCache, src)
	assert.True(t, first.Equal(second))

	third, src, err := c.LoadOrGenerate("hm.bin", 4, 6, gen)
	require.NoError(t, err)
	assert.Equal(t, SourceRegenerated, src)
	assert.Equal(t, 4, third.Rows())

	reloaded, err := c.Load("hm.bin")
	require.NoError(t, err)
	assert.True(t, third.Equal(reloaded), "regenerated field must replace the cached one")
}

func TestLoadOrGenerateReplacesCorruptFile(t *testing.T) {
	muteLogs(t)
	mfs := fsutil.NewMemoryFileSystem()
	c := NewCache(mfs, "")
	require.NoError(t, mfs.MkdirAll(Dir, 0o755))
	require.NoError(t, mfs.WriteFile(c.Path("hm.bin"), []byte{1, 2, 3}, 0o644))

	f, src, err := c.LoadOrGenerate("hm.bin", 4, 4, testGenerator(t, noise.Value, 1))
	require.NoError(t, err)
	assert.Equal(t, SourceRegenerated, src)
	assert.Equal(t, 16, f.Len())
}

func TestLoadOrGeneratePermission(t *testing.T) {
	muteLogs(t)

	t.Run("unreadable cache", func(t *testing.T) {
		mfs := fsutil.NewMemoryFileSystem()
		c := NewCache(mfs, "")
		require.NoError(t, c.Save("hm.bin", sampleField(t)))
		mfs.Deny(Dir)

		f, src, err := c.LoadOrGenerate("hm.bin", 2, 2, testGenerator(t, noise.Value, 1))
		assert.ErrorIs(t, err, ErrPermission)
		assert.Equal(t, SourceNone, src)
		assert.Nil(t, f)
	})

	t.Run("unwritable cache", func(t *testing.T) {
		mfs := fsutil.NewMemoryFileSystem()
		mfs.Deny("resources")
		c := NewCache(mfs, "")

		f, src, err := c.LoadOrGenerate("hm.bin", 2, 2, testGenerator(t, noise.Value, 1))
		assert.ErrorIs(t, err, ErrPermission)
		assert.Equal(t, SourceGenerated, src)
		require.NotNil(t, f)
		assert.Equal(t, 4, f.Len())
	})
}
