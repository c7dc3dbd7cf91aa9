package metrics

import "math"

type PeakForce struct {
	name string
	peak float64
}

func NewPeakForce() *PeakForce {
	return &PeakForce{
		name: "peak_force",
	}
}

func (p *PeakForce) Name() string {
	return p.name
}

func (p *PeakForce) Observe(current, force float64) {
	p.peak = math.Max(p.peak, math.Abs(force))
}

func (p *PeakForce) Value() float64 {
	return p.peak
}

func (p *PeakForce) Reset() {
	p.peak = 0
}
