package config

import "sort"

var Presets = map[string]*Config{
	"reference": DefaultConfig(),
	"coarse": modify(func(c *Config) {
		c.Assembly.MagnetFilaments = 200
	}),
	"fine": modify(func(c *Config) {
		c.Assembly.MagnetFilaments = 5000
		c.Summation = "kahan"
	}),
	"multilayer": modify(func(c *Config) {
		c.Assembly.CoilLayers = 4
		c.Assembly.MagnetFilaments = 500
	}),
	"quick": modify(func(c *Config) {
		c.Assembly.MagnetFilaments = 50
		c.Sweep.Samples = 10
		c.Sweep.Step = 0.04
		c.Height.Stop = 10
	}),
}

func modify(fn func(*Config)) *Config {
	c := DefaultConfig()
	fn(c)
	return c
}

// GetPreset returns a copy of the named preset, or nil.
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
