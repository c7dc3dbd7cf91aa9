package dynamo

// Series is an ordered (x, y) sequence handed to plotting and export code.
type Series struct {
	Name   string
	XLabel string
	YLabel string
	X      []float64
	Y      []float64
}

func (s Series) Len() int { return len(s.X) }

// Series returns current (A) against force (µN).
func (r *SweepResult) Series() Series {
	return Series{
		Name:   "current_sweep",
		XLabel: "current_A",
		YLabel: "force_uN",
		X:      r.Currents(),
		Y:      r.Forces(),
	}
}

// Series returns height step against force constant (µN/A).
func (r *HeightSweepResult) Series() Series {
	return Series{
		Name:   "height_sweep",
		XLabel: "height",
		YLabel: "coefficient_uN_per_A",
		X:      r.Heights(),
		Y:      r.Coefficients(),
	}
}
