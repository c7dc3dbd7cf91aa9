package metrics

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// series buffers the observed samples for metrics that need the whole sweep.
type series struct {
	currents []float64
	forces   []float64
}

func (s *series) observe(current, force float64) {
	s.currents = append(s.currents, current)
	s.forces = append(s.forces, force)
}

func (s *series) reset() {
	s.currents = s.currents[:0]
	s.forces = s.forces[:0]
}

// FitSlope is the least-squares force constant in µN/A. Unlike the
// endpoint slope it uses every sample.
type FitSlope struct {
	name string
	series
}

func NewFitSlope() *FitSlope {
	return &FitSlope{name: "fit_slope"}
}

func (f *FitSlope) Name() string { return f.name }

func (f *FitSlope) Observe(current, force float64) {
	f.observe(current, force)
}

func (f *FitSlope) Value() float64 {
	if len(f.currents) < 2 {
		return 0
	}
	_, beta := stat.LinearRegression(f.currents, f.forces, nil, false)
	return beta
}

func (f *FitSlope) Reset() { f.reset() }

// RSquared is the coefficient of determination of the least-squares line.
type RSquared struct {
	name string
	series
}

func NewRSquared() *RSquared {
	return &RSquared{name: "r_squared"}
}

func (r *RSquared) Name() string { return r.name }

func (r *RSquared) Observe(current, force float64) {
	r.observe(current, force)
}

func (r *RSquared) Value() float64 {
	if len(r.currents) < 2 {
		return 0
	}
	alpha, beta := stat.LinearRegression(r.currents, r.forces, nil, false)
	r2 := stat.RSquared(r.currents, r.forces, nil, alpha, beta)
	if math.IsNaN(r2) {
		// constant forces: the fitted line is exact
		return 1
	}
	return r2
}

func (r *RSquared) Reset() { r.reset() }
