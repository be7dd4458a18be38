package app

import (
	"fmt"
	"strconv"

	"torus-rally/internal/config"
	"torus-rally/internal/core"
	"torus-rally/internal/heightfield"
	"torus-rally/internal/monitoring"
	"torus-rally/internal/noise"
)

// Session owns the preview's configuration and the heightfield generated
// from it. Every accepted parameter change regenerates the field.
type Session struct {
	cfg   config.Config
	field *heightfield.Heightfield
}

// NewSession validates cfg and generates its first heightfield.
func NewSession(cfg config.Config) (*Session, error) {
	s := &Session{cfg: cfg}
	if err := s.Regenerate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Name identifies the current noise algorithm.
func (s *Session) Name() string { return s.cfg.Noise.Algorithm }

// Config returns a copy of the current configuration.
func (s *Session) Config() config.Config { return s.cfg }

// Field returns the current heightfield.
func (s *Session) Field() *heightfield.Heightfield { return s.field }

// Size reports the heightfield width (columns) and height (rows).
func (s *Session) Size() core.Size {
	return core.Size{W: s.cfg.Grid.Cols, H: s.cfg.Grid.Rows}
}

// Heights returns the row-major heightfield values.
func (s *Session) Heights() []float32 {
	if s.field == nil {
		return nil
	}
	return s.field.Values()
}

// Regenerate rebuilds the heightfield from the current configuration. On
// failure the previous field is kept.
func (s *Session) Regenerate() error {
	if err := s.cfg.Validate(); err != nil {
		return err
	}
	gen, err := s.cfg.Generator()
	if err != nil {
		return err
	}
	f, err := gen.Generate(s.cfg.Grid.Rows, s.cfg.Grid.Cols)
	if err != nil {
		return err
	}
	s.field = f
	return nil
}

// Reseed switches to a new seed and regenerates.
func (s *Session) Reseed(seed int64) error {
	return s.update(func(c *config.Config) { c.Noise.Seed = seed })
}

// CycleAlgorithm advances to the next registered noise algorithm.
func (s *Session) CycleAlgorithm() error {
	algs := noise.Algorithms()
	if len(algs) == 0 {
		return noise.ErrUnknownAlgorithm
	}
	next := algs[0]
	for i, a := range algs {
		if string(a) == s.cfg.Noise.Algorithm {
			next = algs[(i+1)%len(algs)]
			break
		}
	}
	return s.update(func(c *config.Config) { c.Noise.Algorithm = string(next) })
}

// update applies change to a copy of the configuration and commits it only
// when the regenerated field succeeds.
func (s *Session) update(change func(*config.Config)) error {
	prev := s.cfg
	change(&s.cfg)
	if err := s.Regenerate(); err != nil {
		s.cfg = prev
		return err
	}
	monitoring.Logf("preview: %s seed %d", s.cfg.Noise.Algorithm, s.cfg.Noise.Seed)
	return nil
}

// Parameters exposes the configuration for display.
func (s *Session) Parameters() core.ParameterSnapshot {
	return s.cfg.Parameters()
}

// ParameterControls lists the settings adjustable from the panel.
func (s *Session) ParameterControls() []core.ParameterControl {
	return []core.ParameterControl{
		{Key: "noise.seed", Label: "Seed", Type: core.ParamTypeInt, Step: 1},
		{Key: "noise.octaves", Label: "Octaves", Type: core.ParamTypeInt, Step: 1, Min: 1, Max: 12, HasMin: true, HasMax: true},
		{Key: "noise.lacunarity", Label: "Lacunarity", Type: core.ParamTypeFloat, Step: 0.1, Min: 1.1, Max: 4, HasMin: true, HasMax: true},
		{Key: "noise.gain", Label: "Gain", Type: core.ParamTypeFloat, Step: 0.05, Min: 0.05, Max: 0.95, HasMin: true, HasMax: true},
		{Key: "warp.offset", Label: "Warp offset", Type: core.ParamTypeFloat, Step: 0.05, Min: 0, Max: 2, HasMin: true, HasMax: true},
		{Key: "warp.strength", Label: "Warp strength", Type: core.ParamTypeFloat, Step: 0.1, Min: 0, Max: 4, HasMin: true, HasMax: true},
		{Key: "warp.contrast", Label: "Contrast", Type: core.ParamTypeFloat, Step: 0.1, Min: 0.1, Max: 4, HasMin: true, HasMax: true},
		{Key: "grid.scale", Label: "Scale", Type: core.ParamTypeFloat, Step: 0.001, Min: 0.001, Max: 0.05, HasMin: true, HasMax: true},
	}
}

func (s *Session) control(key string) (core.ParameterControl, bool) {
	for _, c := range s.ParameterControls() {
		if c.Key == key {
			return c, true
		}
	}
	return core.ParameterControl{}, false
}

// SetIntParameter applies an integer control. It reports whether the value
// was accepted.
func (s *Session) SetIntParameter(key string, value int) bool {
	ctrl, ok := s.control(key)
	if !ok || ctrl.Type != core.ParamTypeInt {
		return false
	}
	value = int(ctrl.Clamp(float64(value)))
	return s.set(key, strconv.Itoa(value))
}

// SetFloatParameter applies a float control. It reports whether the value
// was accepted.
func (s *Session) SetFloatParameter(key string, value float64) bool {
	ctrl, ok := s.control(key)
	if !ok || ctrl.Type != core.ParamTypeFloat {
		return false
	}
	value = ctrl.Clamp(value)
	return s.set(key, strconv.FormatFloat(value, 'g', -1, 64))
}

func (s *Session) set(key, value string) bool {
	next := s.cfg
	err := next.Apply(map[string]string{key: value})
	if err == nil {
		err = s.update(func(c *config.Config) { *c = next })
	}
	if err != nil {
		monitoring.Logf("preview: %s=%s rejected: %v", key, value, err)
		return false
	}
	return true
}

// String summarizes the session for the window title.
func (s *Session) String() string {
	return fmt.Sprintf("%s seed %d (%dx%d)", s.cfg.Noise.Algorithm, s.cfg.Noise.Seed, s.cfg.Grid.Cols, s.cfg.Grid.Rows)
}
