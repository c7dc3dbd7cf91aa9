package config

import (
	"fmt"
	"os"

	"github.com/san-kum/coilforce/internal/analysis"
	"github.com/san-kum/coilforce/internal/compute"
	"github.com/san-kum/coilforce/internal/dynamo"
	"gopkg.in/yaml.v3"
)

const (
	DefaultCurrent = 1.0
	DefaultGap     = 0.0
)

type Config struct {
	Assembly  AssemblyConfig `yaml:"assembly"`
	Sweep     SweepConfig    `yaml:"sweep"`
	Height    HeightConfig   `yaml:"height"`
	Summation string         `yaml:"summation"`
}

type AssemblyConfig struct {
	CoilInnerRadius float64 `yaml:"coil_inner_radius"`
	CoilOuterRadius float64 `yaml:"coil_outer_radius"`
	MagnetRadius    float64 `yaml:"magnet_radius"`
	MagnetLength    float64 `yaml:"magnet_length"`
	CoilLength      float64 `yaml:"coil_length"`
	CoilLayers      int     `yaml:"coil_layers"`
	CoilTurns       int     `yaml:"coil_turns"`
	MagnetFilaments int     `yaml:"magnet_filaments"`
	Remanence       float64 `yaml:"remanence"`
	Permeability    float64 `yaml:"permeability"`
}

type SweepConfig struct {
	Samples int     `yaml:"samples"`
	Step    float64 `yaml:"step"`
	Current float64 `yaml:"current"`
	Gap     float64 `yaml:"gap"`
}

type HeightConfig struct {
	Start   int     `yaml:"start"`
	Stop    int     `yaml:"stop"`
	Divisor float64 `yaml:"divisor"`
}

func DefaultConfig() *Config {
	a := dynamo.DefaultAssembly()
	return &Config{
		Assembly: AssemblyConfig{
			CoilInnerRadius: a.CoilInnerRadius,
			CoilOuterRadius: a.CoilOuterRadius,
			MagnetRadius:    a.MagnetRadius,
			MagnetLength:    a.MagnetLength,
			CoilLength:      a.CoilLength,
			CoilLayers:      a.CoilLayers,
			CoilTurns:       a.CoilTurns,
			MagnetFilaments: a.MagnetFilaments,
			Remanence:       a.Remanence,
			Permeability:    a.Permeability,
		},
		Sweep: SweepConfig{
			Samples: analysis.DefaultCurrentSamples,
			Step:    analysis.DefaultCurrentStep,
			Current: DefaultCurrent,
			Gap:     DefaultGap,
		},
		Height: HeightConfig{
			Start:   analysis.DefaultHeightStart,
			Stop:    analysis.DefaultHeightStop,
			Divisor: analysis.DefaultHeightDivisor,
		},
		Summation: compute.Default,
	}
}

// Load reads a YAML file over the defaults; keys absent from the file keep
// their default value.
func Load(path string) (*Config, error) {
	return Overlay(path, DefaultConfig())
}

// Overlay reads a YAML file over a copy of base.
func Overlay(path string, base *Config) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := base.Clone()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
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

func (c *Config) Clone() *Config {
	cp := *c
	return &cp
}

func (c *Config) ToAssembly() dynamo.Assembly {
	a := c.Assembly
	return dynamo.Assembly{
		CoilInnerRadius: a.CoilInnerRadius,
		CoilOuterRadius: a.CoilOuterRadius,
		MagnetRadius:    a.MagnetRadius,
		MagnetLength:    a.MagnetLength,
		CoilLength:      a.CoilLength,
		CoilLayers:      a.CoilLayers,
		CoilTurns:       a.CoilTurns,
		MagnetFilaments: a.MagnetFilaments,
		Remanence:       a.Remanence,
		Permeability:    a.Permeability,
	}
}

func (c *Config) CurrentSweep() analysis.CurrentSweepConfig {
	return analysis.CurrentSweepConfig{Samples: c.Sweep.Samples, Step: c.Sweep.Step}
}

func (c *Config) HeightSweep() analysis.HeightSweepConfig {
	return analysis.HeightSweepConfig{
		Start:   c.Height.Start,
		Stop:    c.Height.Stop,
		Divisor: c.Height.Divisor,
		Current: c.CurrentSweep(),
	}
}

func (c *Config) Validate() error {
	if err := c.ToAssembly().Validate(); err != nil {
		return err
	}
	if _, err := compute.New(c.Summation); err != nil {
		return fmt.Errorf("%w: %v", dynamo.ErrConfiguration, err)
	}
	return nil
}
