// Package compute provides the accumulation strategies used to reduce
// per-filament forces into a total.
//
// Integration order is fixed by the discretizer; the strategy only changes
// how rounding error accumulates:
//
//   - naive: left-to-right, bit-compatible with the reference summation
//   - kahan: Neumaier compensated summation
//   - pairwise: recursive halving over buffered terms
//
// Select a strategy by name:
//
//	s, err := compute.New("kahan")
//	for _, v := range terms {
//	    s.Add(v)
//	}
//	total := s.Sum()
package compute
