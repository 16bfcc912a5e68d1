package config

import "sort"

var Presets = map[string]*Config{
	"default": DefaultConfig(),
	"zero_g": func() *Config {
		c := DefaultConfig()
		c.World.GravityEnabled = false
		c.Spawn.Bodies = 12
		return c
	}(),
	"pegboard": func() *Config {
		c := DefaultConfig()
		c.Spawn.Bodies = 20
		c.Spawn.Obstacles = 15
		c.Spawn.MinRadius, c.Spawn.MaxRadius = 6, 10
		return c
	}(),
	"superball": func() *Config {
		c := DefaultConfig()
		c.World.Elasticity = 1.0
		c.Spawn.Bodies = 8
		return c
	}(),
	"crowd": func() *Config {
		c := DefaultConfig()
		c.Spawn.Bodies = 150
		c.Spawn.MinRadius, c.Spawn.MaxRadius = 4, 8
		return c
	}(),
}

// GetPreset returns a copy of the named preset or nil.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg.Clone()
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
