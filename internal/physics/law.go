package physics

import (
	"fmt"
	"math"

	"github.com/san-kum/coilforce/internal/dynamo"
	"gonum.org/v1/gonum/mathext"
)

// singularTolerance bounds how close m may come to 1 before (m-1) is
// treated as vanishing.
const singularTolerance = 1e-15

// Law evaluates the force between a coil loop and a magnet filament.
type Law struct {
	Permeability    float64
	FilamentCurrent float64
}

func NewLaw(asm dynamo.Assembly) Law {
	return Law{
		Permeability:    asm.Permeability,
		FilamentCurrent: asm.FilamentCurrent(),
	}
}

// Modulus returns the elliptic parameter m for two loops.
func Modulus(r1, r2, z float64) float64 {
	s := r1 + r2
	return 4 * r1 * r2 / (s*s + z*z)
}

// Force returns the axial force in newtons between a loop of radius r1
// carrying current and a filament of radius r2 at axial separation z.
func (l Law) Force(r1, r2, z, current float64) (float64, error) {
	if !(r1 > 0) || !(r2 > 0) {
		return 0, fmt.Errorf("%w: radii must be positive, got r1=%g r2=%g", dynamo.ErrNumericDomain, r1, r2)
	}

	m := Modulus(r1, r2, z)
	if math.IsNaN(m) || m < 0 || 1-m < singularTolerance {
		return 0, fmt.Errorf("%w: m=%g for r1=%g r2=%g z=%g", dynamo.ErrNumericDomain, m, r1, r2, z)
	}

	k := mathext.CompleteK(m)
	e := mathext.CompleteE(m)

	f := l.Permeability * current * l.FilamentCurrent * z *
		math.Sqrt(m/(4*r1*r2)) * (k - ((m/2-1)/(m-1))*e)

	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%w: non-finite force for r1=%g r2=%g z=%g", dynamo.ErrNumericDomain, r1, r2, z)
	}
	return f, nil
}
