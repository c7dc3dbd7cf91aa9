package dynamo

// FilamentPair places one coil filament against one magnet filament. Offset
// is the axial position of the coil loop relative to the magnet filament,
// before the center distance is added.
type FilamentPair struct {
	NM, NR, NZ   int
	CoilRadius   float64
	MagnetRadius float64
	Offset       float64
}

// Sample is one point of a current sweep. Force is in micronewtons.
type Sample struct {
	Current float64
	Force   float64
}

// SweepResult holds a current sweep at a fixed center distance Z.
//
// Forces are the negated integrator output. Min skips the zero-current
// sample; Max covers every sample.
type SweepResult struct {
	Z       float64
	Samples []Sample
	Slope   float64
	Min     float64
	Max     float64
	Metrics map[string]float64
}

func (r *SweepResult) Currents() []float64 {
	out := make([]float64, len(r.Samples))
	for i, s := range r.Samples {
		out[i] = s.Current
	}
	return out
}

func (r *SweepResult) Forces() []float64 {
	out := make([]float64, len(r.Samples))
	for i, s := range r.Samples {
		out[i] = s.Force
	}
	return out
}

// HeightPoint is the force constant measured at one gap step.
type HeightPoint struct {
	Height      int
	Gap         float64
	Z           float64
	Coefficient float64
}

type HeightSweepResult struct {
	Points []HeightPoint
}

func (r *HeightSweepResult) Heights() []float64 {
	out := make([]float64, len(r.Points))
	for i, p := range r.Points {
		out[i] = float64(p.Height)
	}
	return out
}

func (r *HeightSweepResult) Coefficients() []float64 {
	out := make([]float64, len(r.Points))
	for i, p := range r.Points {
		out[i] = p.Coefficient
	}
	return out
}

// Decays reports whether the coefficient magnitude never increases from
// height `from` onwards.
func (r *HeightSweepResult) Decays(from int) bool {
	prev := -1.0
	for _, p := range r.Points {
		if p.Height < from {
			continue
		}
		mag := p.Coefficient
		if mag < 0 {
			mag = -mag
		}
		if prev >= 0 && mag > prev {
			return false
		}
		prev = mag
	}
	return true
}
