// Package physics provides the closed-form force law of the filament method.
//
// Two coaxial circular current loops of radii r1 and r2, separated axially
// by z, attract or repel along their common axis with
//
//	m = 4·r1·r2 / ((r1+r2)² + z²)
//	F = u0·I1·I2·z·sqrt(m/(4·r1·r2))·(K(m) − ((m/2−1)/(m−1))·E(m))
//
// where K and E are the complete elliptic integrals of the first and second
// kind in the m = k² parameterization. The second loop stands for one
// magnet filament, so its current is the assembly's equivalent filament
// current rather than a free parameter.
//
// The law is odd in both I1 and z and is undefined when m reaches 1
// (coincident loops); [Law.Force] reports that case as
// [dynamo.ErrNumericDomain] instead of returning NaN or Inf.
package physics
