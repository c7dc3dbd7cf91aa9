// Package dynamo provides the core value types shared by the force model.
//
// The package defines the immutable inputs and outputs of a computation:
//
//   - [Assembly]: magnet and voice coil geometry, discretization counts and
//     material constants
//   - [FilamentPair]: one coil-filament/magnet-filament placement
//   - [SweepResult]: current-vs-force samples at a fixed center distance
//   - [HeightSweepResult]: force constant as a function of the air gap
//
// # Example
//
//	asm := dynamo.DefaultAssembly()
//	if err := asm.Validate(); err != nil {
//	    return err
//	}
//	z := asm.CenterDistance(0)
//
// # Units
//
// Lengths are meters, currents amperes and forces micronewtons unless a
// function documents otherwise. Nothing in this package performs I/O.
package dynamo
