package config

import (
	"fmt"
	"os"

	"github.com/san-kum/marblebox/internal/physics"
	"gopkg.in/yaml.v3"
)

const (
	DefaultMinRadius = 5.0
	DefaultMaxRadius = 20.0
	DefaultFPS       = 60
	DefaultFrames    = 600
	DefaultTheme     = "classic"
)

type Config struct {
	World WorldConfig `yaml:"world"`
	Spawn SpawnConfig `yaml:"spawn"`
	Loop  LoopConfig  `yaml:"loop"`
	Seed  int64       `yaml:"seed"`
	Theme string      `yaml:"theme"`
}

type WorldConfig struct {
	Width          float64 `yaml:"width"`
	Height         float64 `yaml:"height"`
	Gravity        float64 `yaml:"gravity"`
	Elasticity     float64 `yaml:"elasticity"`
	FloatDamping   float64 `yaml:"float_damping"`
	GravityEnabled bool    `yaml:"gravity_enabled"`
}

// SpawnConfig bounds the random radius and seeds the initial scene.
type SpawnConfig struct {
	MinRadius float64 `yaml:"min_radius"`
	MaxRadius float64 `yaml:"max_radius"`
	Bodies    int     `yaml:"bodies"`
	Obstacles int     `yaml:"obstacles"`
}

type LoopConfig struct {
	FPS    int `yaml:"fps"`
	Frames int `yaml:"frames"`
}

func DefaultConfig() *Config {
	return &Config{
		World: WorldConfig{
			Width:          physics.DefaultWidth,
			Height:         physics.DefaultHeight,
			Gravity:        physics.DefaultGravity,
			Elasticity:     physics.DefaultElasticity,
			FloatDamping:   physics.DefaultFloatDamping,
			GravityEnabled: true,
		},
		Spawn: SpawnConfig{
			MinRadius: DefaultMinRadius,
			MaxRadius: DefaultMaxRadius,
		},
		Loop: LoopConfig{
			FPS:    DefaultFPS,
			Frames: DefaultFrames,
		},
		Theme: DefaultTheme,
	}
}

func Load(path string) (*Config, error) {
	return LoadOver(path, DefaultConfig())
}

// LoadOver overlays the YAML at path on a copy of base; keys absent from
// the file keep base's values.
func LoadOver(path string, base *Config) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := base.Clone()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	w := c.World
	if w.Width <= 0 || w.Height <= 0 {
		return fmt.Errorf("%w: %gx%g", ErrInvalidBounds, w.Width, w.Height)
	}
	if w.Elasticity < 0 || w.Elasticity > 1 {
		return fmt.Errorf("%w: %g", ErrInvalidElasticity, w.Elasticity)
	}
	if w.FloatDamping < 0 || w.FloatDamping > 1 {
		return fmt.Errorf("%w: float_damping %g", ErrInvalidElasticity, w.FloatDamping)
	}
	s := c.Spawn
	if s.MinRadius <= 0 || s.MaxRadius < s.MinRadius {
		return fmt.Errorf("%w: [%g, %g)", ErrInvalidRadius, s.MinRadius, s.MaxRadius)
	}
	if 2*s.MaxRadius > w.Width || 2*s.MaxRadius > w.Height {
		return fmt.Errorf("%w: max radius %g does not fit %gx%g", ErrInvalidRadius, s.MaxRadius, w.Width, w.Height)
	}
	if s.Bodies < 0 || s.Obstacles < 0 {
		return fmt.Errorf("%w: negative initial population", ErrInvalidRadius)
	}
	if c.Loop.FPS <= 0 || c.Loop.Frames < 0 {
		return fmt.Errorf("%w: fps=%d frames=%d", ErrInvalidRate, c.Loop.FPS, c.Loop.Frames)
	}
	return nil
}

// Tunable world parameters, by their yaml key.
const (
	ParamElasticity = "elasticity"
	ParamGravity    = "gravity"
	ParamDamping    = "float_damping"
)

// SetParam sets one tunable world parameter by name. It does not validate
// the value; call Validate afterwards.
func (c *Config) SetParam(name string, v float64) error {
	switch name {
	case ParamElasticity:
		c.World.Elasticity = v
	case ParamGravity:
		c.World.Gravity = v
	case ParamDamping:
		c.World.FloatDamping = v
	default:
		return fmt.Errorf("%w: %s", ErrUnknownParam, name)
	}
	return nil
}

// Settings converts the world section into physics constants.
func (c *Config) Settings() physics.Settings {
	return physics.Settings{
		Width:        c.World.Width,
		Height:       c.World.Height,
		Gravity:      c.World.Gravity,
		Elasticity:   c.World.Elasticity,
		FloatDamping: c.World.FloatDamping,
	}
}

// NewWorld builds an empty world honouring the gravity_enabled flag.
func (c *Config) NewWorld() *physics.World {
	w := physics.NewWorld(c.Settings())
	w.SetGravityEnabled(c.World.GravityEnabled)
	return w
}

// Clone returns a copy, so presets are never mutated by callers.
func (c *Config) Clone() *Config {
	cp := *c
	return &cp
}
