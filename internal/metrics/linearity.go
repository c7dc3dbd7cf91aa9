package metrics

import "math"

// Nonlinearity is the largest deviation from the line through the first
// and last samples, as a fraction of the force span.
type Nonlinearity struct {
	name string
	series
}

func NewNonlinearity() *Nonlinearity {
	return &Nonlinearity{name: "nonlinearity"}
}

func (n *Nonlinearity) Name() string {
	return n.name
}

func (n *Nonlinearity) Observe(current, force float64) {
	n.observe(current, force)
}

func (n *Nonlinearity) Value() float64 {
	k := len(n.currents)
	if k < 3 {
		return 0
	}

	c0, f0 := n.currents[0], n.forces[0]
	dc := n.currents[k-1] - c0
	if dc == 0 {
		return 0
	}
	slope := (n.forces[k-1] - f0) / dc

	lo, hi := f0, f0
	worst := 0.0
	for i := range n.currents {
		f := n.forces[i]
		lo = math.Min(lo, f)
		hi = math.Max(hi, f)
		worst = math.Max(worst, math.Abs(f-(f0+slope*(n.currents[i]-c0))))
	}

	if hi == lo {
		return 0
	}
	return worst / (hi - lo)
}

func (n *Nonlinearity) Reset() {
	n.reset()
}
