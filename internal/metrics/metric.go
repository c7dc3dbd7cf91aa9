// Package metrics summarizes current-vs-force sweeps.
package metrics

// Metric observes the samples of one sweep in order.
type Metric interface {
	Name() string
	Observe(current, force float64)
	Value() float64
	Reset()
}

// Default returns a fresh set of the metrics attached to every sweep.
func Default() []Metric {
	return []Metric{
		NewFitSlope(),
		NewRSquared(),
		NewNonlinearity(),
		NewPeakForce(),
	}
}
