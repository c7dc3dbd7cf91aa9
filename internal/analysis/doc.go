// Package analysis derives force constants from repeated force integrations.
//
// The package provides the two sweeps of the filament study:
//
//   - [Analyzer.CurrentSweep]: force against drive current at a fixed center
//     distance, reduced to an endpoint slope and extrema
//   - [Analyzer.HeightSweep]: that slope as a function of the air gap
//
// # Conventions
//
// Reported forces are the negated integrator output, and the reported
// minimum skips the zero-current sample. Both are kept so that archived
// coefficients stay comparable across runs:
//
//	a := analysis.New(integ)
//	res, err := a.CurrentSweep(ctx, asm.CenterDistance(0), analysis.DefaultCurrentSweep())
//	fmt.Printf("y = %.3fx\n", res.Slope)
package analysis
