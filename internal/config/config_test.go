package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/coilforce/internal/dynamo"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.ToAssembly() != dynamo.DefaultAssembly() {
		t.Errorf("default assembly mismatch: %+v", cfg.ToAssembly())
	}
	if cfg.Sweep.Samples != 40 {
		t.Errorf("expected 40 samples, got %d", cfg.Sweep.Samples)
	}
	if cfg.Sweep.Step != 0.01 {
		t.Errorf("expected step 0.01, got %f", cfg.Sweep.Step)
	}
	if cfg.Height.Start != 0 || cfg.Height.Stop != 30 || cfg.Height.Divisor != 6000 {
		t.Errorf("unexpected height range: %+v", cfg.Height)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoad_PartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "coil.yaml")
	data := "assembly:\n  magnet_filaments: 300\n  coil_turns: 30\nsummation: pairwise\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Assembly.MagnetFilaments != 300 || cfg.Assembly.CoilTurns != 30 {
		t.Errorf("file values not applied: %+v", cfg.Assembly)
	}
	if cfg.Assembly.MagnetRadius != dynamo.DefaultMagnetRadius {
		t.Errorf("expected default magnet radius, got %v", cfg.Assembly.MagnetRadius)
	}
	if cfg.Summation != "pairwise" {
		t.Errorf("expected pairwise summation, got %s", cfg.Summation)
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "coil.yaml")
	cfg := DefaultConfig()
	cfg.Assembly.CoilLayers = 3
	cfg.Height.Stop = 12

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if *loaded != *cfg {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", loaded, cfg)
	}
}

func TestLoad_Errors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	os.WriteFile(path, []byte("assembly: [1, 2"), 0644)
	if _, err := Load(path); err == nil {
		t.Error("expected error for malformed yaml")
	}
}

func TestValidate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Assembly.CoilTurns = 1
	if err := cfg.Validate(); !errors.Is(err, dynamo.ErrConfiguration) {
		t.Errorf("expected ErrConfiguration, got %v", err)
	}

	cfg = DefaultConfig()
	cfg.Summation = "simd"
	if err := cfg.Validate(); !errors.Is(err, dynamo.ErrConfiguration) {
		t.Errorf("expected ErrConfiguration for unknown summation, got %v", err)
	}
}

func TestHeightSweep(t *testing.T) {
	cfg := DefaultConfig()
	hs := cfg.HeightSweep()
	if hs.Start != 0 || hs.Stop != 30 || hs.Divisor != 6000 {
		t.Errorf("unexpected height sweep: %+v", hs)
	}
	if hs.Current.Samples != 40 || hs.Current.Step != 0.01 {
		t.Errorf("unexpected current sweep: %+v", hs.Current)
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("coarse")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Assembly.MagnetFilaments != 200 {
		t.Errorf("expected 200 magnet filaments, got %d", cfg.Assembly.MagnetFilaments)
	}

	cfg.Assembly.MagnetFilaments = 7
	if Presets["coarse"].Assembly.MagnetFilaments != 200 {
		t.Error("GetPreset returned a shared pointer")
	}

	for _, name := range ListPresets() {
		if err := GetPreset(name).Validate(); err != nil {
			t.Errorf("preset %s invalid: %v", name, err)
		}
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if cfg := GetPreset("nonexistent"); cfg != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestListPresets(t *testing.T) {
	presets := ListPresets()
	if len(presets) != len(Presets) {
		t.Errorf("expected %d presets, got %d", len(Presets), len(presets))
	}
	for i := 1; i < len(presets); i++ {
		if presets[i-1] > presets[i] {
			t.Errorf("presets not sorted: %v", presets)
		}
	}
}

func TestOverlay_KeepsBase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "coil.yaml")
	if err := os.WriteFile(path, []byte("sweep:\n  samples: 12\n"), 0644); err != nil {
		t.Fatal(err)
	}

	base := GetPreset("quick")
	cfg, err := Overlay(path, base)
	if err != nil {
		t.Fatalf("overlay failed: %v", err)
	}
	if cfg.Sweep.Samples != 12 {
		t.Errorf("expected 12 samples from file, got %d", cfg.Sweep.Samples)
	}
	if cfg.Assembly.MagnetFilaments != 50 {
		t.Errorf("expected preset Nm 50 to survive, got %d", cfg.Assembly.MagnetFilaments)
	}
	if base.Sweep.Samples != 10 {
		t.Errorf("base was modified: samples %d", base.Sweep.Samples)
	}
}
