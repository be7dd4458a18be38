// Package config collects every tunable of the terrain pipeline in one
// explicit object that can be loaded from JSON, overridden with key=value
// pairs and bound to command-line flags.
package config

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"sort"
	"strconv"
	"strings"

	"torus-rally/internal/core"
	"torus-rally/internal/fractal"
	"torus-rally/internal/fsutil"
	"torus-rally/internal/heightfield"
	"torus-rally/internal/mesh"
	"torus-rally/internal/monitoring"
	"torus-rally/internal/noise"
	"torus-rally/internal/torus"
)

// ErrInvalid reports a configuration that fails validation.
var ErrInvalid = errors.New("config: invalid configuration")

// ErrUnknownKey reports an override key that names no setting.
var ErrUnknownKey = errors.New("config: unknown key")

// NoiseConfig selects the kernel and its octave series.
type NoiseConfig struct {
	Algorithm  string  `json:"algorithm"`
	Seed       int64   `json:"seed"`
	Octaves    int     `json:"octaves"`
	Lacunarity float64 `json:"lacunarity"`
	Gain       float64 `json:"gain"`
}

// WarpConfig controls domain warping and contrast.
type WarpConfig struct {
	Offset   float64 `json:"offset"`
	Strength float64 `json:"strength"`
	Contrast float64 `json:"contrast"`
}

// TorusConfig holds the torus radii.
type TorusConfig struct {
	Major float64 `json:"major"`
	Minor float64 `json:"minor"`
}

// GridConfig sets the heightfield and mesh resolutions and the noise feature
// scale.
type GridConfig struct {
	Rows  int     `json:"rows"`
	Cols  int     `json:"cols"`
	Rings int     `json:"rings"`
	Sides int     `json:"sides"`
	Scale float64 `json:"scale"`
}

// MeshConfig selects the embedding and the displacement range.
type MeshConfig struct {
	Variant     string  `json:"variant"`
	HeightLower float64 `json:"heightLower"`
	HeightUpper float64 `json:"heightUpper"`
}

// CacheConfig locates the heightfield cache.
type CacheConfig struct {
	Root string `json:"root"`
	Name string `json:"name"`
}

// Config is the complete pipeline configuration.
type Config struct {
	Noise   NoiseConfig `json:"noise"`
	Warp    WarpConfig  `json:"warp"`
	Torus   TorusConfig `json:"torus"`
	Grid    GridConfig  `json:"grid"`
	Mesh    MeshConfig  `json:"mesh"`
	Cache   CacheConfig `json:"cache"`
	Workers int         `json:"workers"`
}

// DefaultConfig returns the stock terrain: six octaves of seed-42 Perlin
// noise on a 100/20 torus sampled at 64x32.
func DefaultConfig() Config {
	return Config{
		Noise: NoiseConfig{
			Algorithm:  string(noise.Perlin),
			Seed:       42,
			Octaves:    6,
			Lacunarity: 2,
			Gain:       0.5,
		},
		Warp:  WarpConfig{Offset: 0.1, Strength: 1, Contrast: 1.5},
		Torus: TorusConfig{Major: 100, Minor: 20},
		Grid:  GridConfig{Rows: 64, Cols: 32, Rings: 64, Sides: 32, Scale: heightfield.DefaultScale},
		Mesh: MeshConfig{
			Variant:     string(mesh.Flattened),
			HeightLower: 0,
			HeightUpper: 400,
		},
		Cache: CacheConfig{Root: ".", Name: "heightmap.bin"},
	}
}

// Load reads a JSON settings file over the defaults. A missing file yields
// the defaults unchanged.
func Load(fsys fsutil.FileSystem, path string) (Config, error) {
	c := DefaultConfig()
	if fsys == nil {
		fsys = fsutil.OSFileSystem{}
	}
	data, err := fsys.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			monitoring.Logf("config: no settings at %s, using defaults", path)
			return c, nil
		}
		return c, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, &c); err != nil {
		return c, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return c, nil
}

// Save writes c as indented JSON.
func (c Config) Save(fsys fsutil.FileSystem, path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return fsys.WriteFile(path, append(data, '\n'), 0o644)
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...)
}

// Validate checks every setting before any generation work starts.
func (c Config) Validate() error {
	if _, err := noise.ParseAlgorithm(c.Noise.Algorithm); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if err := c.FractalWarp().Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if _, err := mesh.ParseVariant(c.Mesh.Variant); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	switch {
	case !(c.Torus.Major > 0) || !(c.Torus.Minor > 0):
		return invalid("torus radii %v/%v must be positive", c.Torus.Major, c.Torus.Minor)
	case c.Grid.Rows <= 0 || c.Grid.Cols <= 0:
		return invalid("heightfield %dx%d must be positive", c.Grid.Rows, c.Grid.Cols)
	case c.Grid.Rings < 3 || c.Grid.Sides < 3:
		return invalid("mesh %dx%d needs at least 3 rings and sides", c.Grid.Rings, c.Grid.Sides)
	case !(c.Grid.Scale > 0):
		return invalid("scale %v must be positive", c.Grid.Scale)
	case !(c.Mesh.HeightUpper >= c.Mesh.HeightLower):
		return invalid("height range %v..%v is inverted", c.Mesh.HeightLower, c.Mesh.HeightUpper)
	case c.Cache.Name == "":
		return invalid("cache name is empty")
	case c.Workers < 0:
		return invalid("workers %d is negative", c.Workers)
	}
	return nil
}

// Algorithm returns the parsed noise algorithm.
func (c Config) Algorithm() (noise.Algorithm, error) {
	return noise.ParseAlgorithm(c.Noise.Algorithm)
}

// Kernel constructs the configured noise kernel.
func (c Config) Kernel() (noise.Kernel, error) {
	alg, err := c.Algorithm()
	if err != nil {
		return nil, err
	}
	return noise.New(alg, c.Noise.Seed)
}

// FractalWarp returns the warp settings.
func (c Config) FractalWarp() fractal.Warp {
	return fractal.Warp{
		Params: fractal.Params{
			Octaves:    c.Noise.Octaves,
			Lacunarity: float32(c.Noise.Lacunarity),
			Gain:       float32(c.Noise.Gain),
		},
		Offset:   float32(c.Warp.Offset),
		Strength: float32(c.Warp.Strength),
		Contrast: float32(c.Warp.Contrast),
	}
}

// Geometry returns the torus radii.
func (c Config) Geometry() torus.Geometry {
	return torus.Geometry{Major: float32(c.Torus.Major), Minor: float32(c.Torus.Minor)}
}

// Generator returns a heightfield generator for the configured kernel.
func (c Config) Generator() (*heightfield.Generator, error) {
	k, err := c.Kernel()
	if err != nil {
		return nil, err
	}
	return &heightfield.Generator{
		Kernel:   k,
		Warp:     c.FractalWarp(),
		Geometry: c.Geometry(),
		Scale:    float32(c.Grid.Scale),
		Workers:  c.Workers,
	}, nil
}

// Builder returns the mesh builder and the selected variant.
func (c Config) Builder() (mesh.Builder, mesh.Variant, error) {
	v, err := mesh.ParseVariant(c.Mesh.Variant)
	if err != nil {
		return mesh.Builder{}, "", err
	}
	b := mesh.Builder{
		Geometry: c.Geometry(),
		Range:    mesh.HeightRange{Lower: float32(c.Mesh.HeightLower), Upper: float32(c.Mesh.HeightUpper)},
	}
	return b, v, nil
}

type setter func(c *Config, v string) error

func intSetter(field func(*Config) *int) setter {
	return func(c *Config, v string) error {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			return err
		}
		*field(c) = parsed
		return nil
	}
}

func floatSetter(field func(*Config) *float64) setter {
	return func(c *Config, v string) error {
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return err
		}
		*field(c) = parsed
		return nil
	}
}

func stringSetter(field func(*Config) *string) setter {
	return func(c *Config, v string) error {
		*field(c) = v
		return nil
	}
}

var setters = map[string]setter{
	"noise.algorithm": stringSetter(func(c *Config) *string { return &c.Noise.Algorithm }),
	"noise.seed": func(c *Config, v string) error {
		parsed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return err
		}
		c.Noise.Seed = parsed
		return nil
	},
	"noise.octaves":     intSetter(func(c *Config) *int { return &c.Noise.Octaves }),
	"noise.lacunarity":  floatSetter(func(c *Config) *float64 { return &c.Noise.Lacunarity }),
	"noise.gain":        floatSetter(func(c *Config) *float64 { return &c.Noise.Gain }),
	"warp.offset":       floatSetter(func(c *Config) *float64 { return &c.Warp.Offset }),
	"warp.strength":     floatSetter(func(c *Config) *float64 { return &c.Warp.Strength }),
	"warp.contrast":     floatSetter(func(c *Config) *float64 { return &c.Warp.Contrast }),
	"torus.major":       floatSetter(func(c *Config) *float64 { return &c.Torus.Major }),
	"torus.minor":       floatSetter(func(c *Config) *float64 { return &c.Torus.Minor }),
	"grid.rows":         intSetter(func(c *Config) *int { return &c.Grid.Rows }),
	"grid.cols":         intSetter(func(c *Config) *int { return &c.Grid.Cols }),
	"grid.rings":        intSetter(func(c *Config) *int { return &c.Grid.Rings }),
	"grid.sides":        intSetter(func(c *Config) *int { return &c.Grid.Sides }),
	"grid.scale":        floatSetter(func(c *Config) *float64 { return &c.Grid.Scale }),
	"mesh.variant":      stringSetter(func(c *Config) *string { return &c.Mesh.Variant }),
	"mesh.height_lower": floatSetter(func(c *Config) *float64 { return &c.Mesh.HeightLower }),
	"mesh.height_upper": floatSetter(func(c *Config) *float64 { return &c.Mesh.HeightUpper }),
	"cache.root":        stringSetter(func(c *Config) *string { return &c.Cache.Root }),
	"cache.name":        stringSetter(func(c *Config) *string { return &c.Cache.Name }),
	"workers":           intSetter(func(c *Config) *int { return &c.Workers }),
}

// Keys lists the override keys accepted by Apply.
func Keys() []string {
	keys := make([]string, 0, len(setters))
	for k := range setters {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Apply sets fields from key=value overrides such as "noise.seed" -> "7".
// Keys are applied in sorted order so errors are reported deterministically.
func (c *Config) Apply(overrides map[string]string) error {
	keys := make([]string, 0, len(overrides))
	for k := range overrides {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		set, ok := setters[strings.ToLower(k)]
		if !ok {
			return fmt.Errorf("%w: %q", ErrUnknownKey, k)
		}
		if err := set(c, strings.TrimSpace(overrides[k])); err != nil {
			return fmt.Errorf("config: %s=%q: %w", k, overrides[k], err)
		}
	}
	return nil
}

// FromMap returns the defaults with overrides applied.
func FromMap(overrides map[string]string) (Config, error) {
	c := DefaultConfig()
	if err := c.Apply(overrides); err != nil {
		return c, err
	}
	return c, nil
}

// Bind attaches the most common settings to the provided FlagSet.
func (c *Config) Bind(flags *flag.FlagSet) {
	flags.StringVar(&c.Noise.Algorithm, "noise", c.Noise.Algorithm, "noise algorithm (value, perlin, simplex, opensimplex)")
	flags.Int64Var(&c.Noise.Seed, "seed", c.Noise.Seed, "noise seed")
	flags.IntVar(&c.Noise.Octaves, "octaves", c.Noise.Octaves, "fbm octave count")
	flags.Float64Var(&c.Noise.Lacunarity, "lacunarity", c.Noise.Lacunarity, "frequency multiplier per octave")
	flags.Float64Var(&c.Noise.Gain, "gain", c.Noise.Gain, "amplitude multiplier per octave")
	flags.Float64Var(&c.Torus.Major, "major", c.Torus.Major, "torus major radius")
	flags.Float64Var(&c.Torus.Minor, "minor", c.Torus.Minor, "torus minor radius")
	flags.IntVar(&c.Grid.Rings, "rings", c.Grid.Rings, "mesh rings")
	flags.IntVar(&c.Grid.Sides, "sides", c.Grid.Sides, "mesh sides")
	flags.StringVar(&c.Mesh.Variant, "variant", c.Mesh.Variant, "mesh variant (curved, flattened)")
	flags.StringVar(&c.Cache.Root, "cache-root", c.Cache.Root, "directory holding resources/heightmaps")
	flags.StringVar(&c.Cache.Name, "cache-name", c.Cache.Name, "heightfield cache file name")
	flags.IntVar(&c.Workers, "workers", c.Workers, "generation goroutines (0 = GOMAXPROCS)")
}

// Parameters exposes the configuration as a grouped snapshot for display.
func (c Config) Parameters() core.ParameterSnapshot {
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{
		{
			Name: "Noise",
			Params: []core.Parameter{
				core.StringParam("noise.algorithm", "Algorithm", c.Noise.Algorithm),
				core.Int64Param("noise.seed", "Seed", c.Noise.Seed),
				core.IntParam("noise.octaves", "Octaves", c.Noise.Octaves),
				core.FloatParam("noise.lacunarity", "Lacunarity", c.Noise.Lacunarity),
				core.FloatParam("noise.gain", "Gain", c.Noise.Gain),
			},
		},
		{
			Name: "Warp",
			Params: []core.Parameter{
				core.FloatParam("warp.offset", "Offset", c.Warp.Offset),
				core.FloatParam("warp.strength", "Strength", c.Warp.Strength),
				core.FloatParam("warp.contrast", "Contrast", c.Warp.Contrast),
			},
		},
		{
			Name: "Torus",
			Params: []core.Parameter{
				core.FloatParam("torus.major", "Major radius", c.Torus.Major),
				core.FloatParam("torus.minor", "Minor radius", c.Torus.Minor),
			},
		},
		{
			Name: "Grid",
			Params: []core.Parameter{
				core.IntParam("grid.rows", "Field rows", c.Grid.Rows),
				core.IntParam("grid.cols", "Field cols", c.Grid.Cols),
				core.IntParam("grid.rings", "Rings", c.Grid.Rings),
				core.IntParam("grid.sides", "Sides", c.Grid.Sides),
				core.FloatParam("grid.scale", "Scale", c.Grid.Scale),
			},
		},
		{
			Name: "Mesh",
			Params: []core.Parameter{
				core.StringParam("mesh.variant", "Variant", c.Mesh.Variant),
				core.FloatParam("mesh.height_lower", "Height lower", c.Mesh.HeightLower),
				core.FloatParam("mesh.height_upper", "Height upper", c.Mesh.HeightUpper),
			},
		},
	}}
}
