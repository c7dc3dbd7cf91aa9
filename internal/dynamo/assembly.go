package dynamo

import "fmt"

// Reference voice coil and ferrite magnet.
const (
	DefaultCoilInnerRadius = 1.25e-2
	DefaultCoilOuterRadius = 1.29e-2
	DefaultMagnetRadius    = 4.5e-3
	DefaultMagnetLength    = 3e-3
	DefaultCoilLength      = 1.3e-2
	DefaultCoilLayers      = 2
	DefaultCoilTurns       = 55
	DefaultMagnetFilaments = 2000
	DefaultRemanence       = 0.2
	VacuumPermeability     = 1.25664e-6
)

// Assembly describes a permanent magnet facing a voice coil. It is passed by
// value and never mutated during a computation.
type Assembly struct {
	CoilInnerRadius float64 // rc
	CoilOuterRadius float64 // Rc
	MagnetRadius    float64 // Rm
	MagnetLength    float64 // lm
	CoilLength      float64 // lc
	CoilLayers      int     // Nr
	CoilTurns       int     // Nz
	MagnetFilaments int     // Nm
	Remanence       float64 // Br
	Permeability    float64 // u0
}

func DefaultAssembly() Assembly {
	return Assembly{
		CoilInnerRadius: DefaultCoilInnerRadius,
		CoilOuterRadius: DefaultCoilOuterRadius,
		MagnetRadius:    DefaultMagnetRadius,
		MagnetLength:    DefaultMagnetLength,
		CoilLength:      DefaultCoilLength,
		CoilLayers:      DefaultCoilLayers,
		CoilTurns:       DefaultCoilTurns,
		MagnetFilaments: DefaultMagnetFilaments,
		Remanence:       DefaultRemanence,
		Permeability:    VacuumPermeability,
	}
}

// Validate rejects assemblies the discretization cannot handle. Every count
// must be at least 2 because sample positions divide by N-1.
func (a Assembly) Validate() error {
	lengths := []struct {
		name  string
		value float64
	}{
		{"coil inner radius", a.CoilInnerRadius},
		{"coil outer radius", a.CoilOuterRadius},
		{"magnet radius", a.MagnetRadius},
		{"magnet length", a.MagnetLength},
		{"coil length", a.CoilLength},
		{"remanence", a.Remanence},
		{"permeability", a.Permeability},
	}
	for _, l := range lengths {
		if !(l.value > 0) {
			return fmt.Errorf("%w: %s must be positive, got %g", ErrConfiguration, l.name, l.value)
		}
	}

	counts := []struct {
		name  string
		value int
	}{
		{"coil layers", a.CoilLayers},
		{"coil turns", a.CoilTurns},
		{"magnet filaments", a.MagnetFilaments},
	}
	for _, c := range counts {
		if c.value < 2 {
			return fmt.Errorf("%w: %s must be at least 2, got %d", ErrConfiguration, c.name, c.value)
		}
	}
	return nil
}

// FilamentCurrent is the equivalent current I2 = Br·lm/(u0·Nm) carried by
// each magnet filament.
func (a Assembly) FilamentCurrent() float64 {
	return a.Remanence * a.MagnetLength / (a.Permeability * float64(a.MagnetFilaments))
}

// CenterDistance converts the gap between the coil edge and the magnet
// surface into the distance between their centers.
func (a Assembly) CenterDistance(gap float64) float64 {
	return (a.MagnetLength+a.CoilLength)/2 + gap
}

// Params returns the assembly as a flat name/value map, in the form stored
// alongside archived runs.
func (a Assembly) Params() map[string]float64 {
	return map[string]float64{
		"rc": a.CoilInnerRadius,
		"Rc": a.CoilOuterRadius,
		"Rm": a.MagnetRadius,
		"lm": a.MagnetLength,
		"lc": a.CoilLength,
		"Nr": float64(a.CoilLayers),
		"Nz": float64(a.CoilTurns),
		"Nm": float64(a.MagnetFilaments),
		"Br": a.Remanence,
		"u0": a.Permeability,
	}
}
