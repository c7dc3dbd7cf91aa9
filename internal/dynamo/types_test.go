package dynamo

import (
	"errors"
	"math"
	"testing"
)

func TestDefaultAssembly_Valid(t *testing.T) {
	if err := DefaultAssembly().Validate(); err != nil {
		t.Fatalf("default assembly should validate: %v", err)
	}
}

func TestAssembly_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(a *Assembly)
	}{
		{"zero coil inner radius", func(a *Assembly) { a.CoilInnerRadius = 0 }},
		{"negative coil outer radius", func(a *Assembly) { a.CoilOuterRadius = -1e-2 }},
		{"zero magnet radius", func(a *Assembly) { a.MagnetRadius = 0 }},
		{"zero magnet length", func(a *Assembly) { a.MagnetLength = 0 }},
		{"NaN coil length", func(a *Assembly) { a.CoilLength = math.NaN() }},
		{"zero remanence", func(a *Assembly) { a.Remanence = 0 }},
		{"zero permeability", func(a *Assembly) { a.Permeability = 0 }},
		{"one coil layer", func(a *Assembly) { a.CoilLayers = 1 }},
		{"one coil turn", func(a *Assembly) { a.CoilTurns = 1 }},
		{"zero magnet filaments", func(a *Assembly) { a.MagnetFilaments = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := DefaultAssembly()
			tt.mutate(&a)
			err := a.Validate()
			if !errors.Is(err, ErrConfiguration) {
				t.Errorf("Validate() = %v, want ErrConfiguration", err)
			}
		})
	}
}

func TestAssembly_FilamentCurrent(t *testing.T) {
	a := DefaultAssembly()
	want := 0.2 * 3e-3 / (1.25664e-6 * 2000)
	if got := a.FilamentCurrent(); math.Abs(got-want) > 1e-12 {
		t.Errorf("FilamentCurrent() = %v, want %v", got, want)
	}
}

func TestAssembly_CenterDistance(t *testing.T) {
	a := DefaultAssembly()
	if got := a.CenterDistance(0); math.Abs(got-0.008) > 1e-15 {
		t.Errorf("CenterDistance(0) = %v, want 0.008", got)
	}
	if got := a.CenterDistance(1e-3); math.Abs(got-0.009) > 1e-15 {
		t.Errorf("CenterDistance(1e-3) = %v, want 0.009", got)
	}
}

func TestSweepResult_Series(t *testing.T) {
	r := &SweepResult{Samples: []Sample{{0, 0}, {0.01, 5}, {0.02, 10}}}
	c, f := r.Currents(), r.Forces()
	if len(c) != 3 || len(f) != 3 {
		t.Fatalf("expected 3 points, got %d and %d", len(c), len(f))
	}
	if c[2] != 0.02 || f[1] != 5 {
		t.Errorf("unexpected series: %v %v", c, f)
	}
}

func TestHeightSweepResult_Decays(t *testing.T) {
	tests := []struct {
		name   string
		coeffs []float64
		from   int
		want   bool
	}{
		{"strictly decaying", []float64{5, 4, 3, 2}, 0, true},
		{"rise before reference", []float64{3, 5, 4, 2}, 1, true},
		{"rise after reference", []float64{5, 4, 4.5, 2}, 0, false},
		{"negative coefficients", []float64{-5, -4, -3}, 0, true},
		{"empty", nil, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &HeightSweepResult{}
			for i, c := range tt.coeffs {
				r.Points = append(r.Points, HeightPoint{Height: i, Coefficient: c})
			}
			if got := r.Decays(tt.from); got != tt.want {
				t.Errorf("Decays(%d) = %v, want %v", tt.from, got, tt.want)
			}
		})
	}
}
