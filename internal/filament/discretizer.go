// Package filament enumerates the coil/magnet filament pairs of an assembly.
//
// The coil is a grid of loops over radial layers nr ∈ [1, Nr-1] and axial
// turns nz ∈ [1, Nz-1]; the magnet is a stack of Nm-1 filaments of radius
// Rm whose axial position nm is folded into each pair's offset. Geometry is
// a pure function of the indices, so enumeration can be restarted and
// repeated without shared iterator state.
package filament

import (
	"fmt"
	"iter"

	"github.com/san-kum/coilforce/internal/dynamo"
)

type Discretizer struct {
	asm dynamo.Assembly
}

func New(asm dynamo.Assembly) (*Discretizer, error) {
	if err := asm.Validate(); err != nil {
		return nil, err
	}
	return &Discretizer{asm: asm}, nil
}

// CoilRadius returns x = Rc + ((nr-1)/(Nr-1))·(Rc-rc).
//
// The formula is kept as written in the filament-method derivation it comes
// from: it starts at Rc and steps outward, it does not interpolate between
// rc and Rc. See RadialExtrapolates.
func (d *Discretizer) CoilRadius(nr int) float64 {
	a := d.asm
	return a.CoilOuterRadius + float64(nr-1)/float64(a.CoilLayers-1)*(a.CoilOuterRadius-a.CoilInnerRadius)
}

// AxialOffset returns y = -(lm+lc)/2 + ((nz-1)/(Nz-1))·lc + ((nm-1)/(Nm-1))·lm.
func (d *Discretizer) AxialOffset(nm, nz int) float64 {
	a := d.asm
	return -0.5*(a.MagnetLength+a.CoilLength) +
		float64(nz-1)/float64(a.CoilTurns-1)*a.CoilLength +
		float64(nm-1)/float64(a.MagnetFilaments-1)*a.MagnetLength
}

// Count is the number of pairs Pairs yields.
func (d *Discretizer) Count() int {
	a := d.asm
	return (a.MagnetFilaments - 1) * (a.CoilLayers - 1) * (a.CoilTurns - 1)
}

// Layers returns the radius of every coil layer in index order.
func (d *Discretizer) Layers() []float64 {
	out := make([]float64, 0, d.asm.CoilLayers-1)
	for nr := 1; nr < d.asm.CoilLayers; nr++ {
		out = append(out, d.CoilRadius(nr))
	}
	return out
}

// Pairs yields every filament pair, nm outermost and nz innermost.
func (d *Discretizer) Pairs() iter.Seq[dynamo.FilamentPair] {
	a := d.asm
	return func(yield func(dynamo.FilamentPair) bool) {
		for nm := 1; nm < a.MagnetFilaments; nm++ {
			for nr := 1; nr < a.CoilLayers; nr++ {
				x := d.CoilRadius(nr)
				for nz := 1; nz < a.CoilTurns; nz++ {
					p := dynamo.FilamentPair{
						NM: nm, NR: nr, NZ: nz,
						CoilRadius:   x,
						MagnetRadius: a.MagnetRadius,
						Offset:       d.AxialOffset(nm, nz),
					}
					if !yield(p) {
						return
					}
				}
			}
		}
	}
}

// RadialExtrapolates reports whether any coil layer lies beyond the outer
// coil radius. With Nr = 2 the single layer sits exactly at Rc.
func (d *Discretizer) RadialExtrapolates() bool {
	a := d.asm
	return d.CoilRadius(a.CoilLayers-1) > a.CoilOuterRadius
}

// Warnings lists geometry issues worth surfacing to the user.
func (d *Discretizer) Warnings() []string {
	var out []string
	a := d.asm
	if d.RadialExtrapolates() {
		out = append(out, fmt.Sprintf(
			"coil layers extend outward from Rc=%g to %g instead of spanning rc=%g..Rc",
			a.CoilOuterRadius, d.CoilRadius(a.CoilLayers-1), a.CoilInnerRadius))
	}
	if a.CoilInnerRadius > a.CoilOuterRadius {
		out = append(out, fmt.Sprintf("coil inner radius %g exceeds outer radius %g", a.CoilInnerRadius, a.CoilOuterRadius))
	}
	for _, x := range d.Layers() {
		if x == a.MagnetRadius {
			out = append(out, fmt.Sprintf("coil layer radius %g equals magnet radius; coincident filaments are singular", x))
			break
		}
	}
	return out
}
