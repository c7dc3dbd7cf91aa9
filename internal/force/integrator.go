// Package force sums the coaxial-loop law over every filament pair of an
// assembly.
package force

import (
	"fmt"
	"log/slog"

	"github.com/san-kum/coilforce/internal/compute"
	"github.com/san-kum/coilforce/internal/dynamo"
	"github.com/san-kum/coilforce/internal/filament"
	"github.com/san-kum/coilforce/internal/physics"
)

// MicroNewtons converts the summed force from N to µN.
const MicroNewtons = 1e6

// EvaluationError reports the filament pair whose evaluation aborted an
// integration.
type EvaluationError struct {
	Pair    dynamo.FilamentPair
	Z       float64
	Wrapped error
}

func (e *EvaluationError) Error() string {
	return fmt.Sprintf("filament (nm=%d, nr=%d, nz=%d) at z=%g: %v",
		e.Pair.NM, e.Pair.NR, e.Pair.NZ, e.Z, e.Wrapped)
}

func (e *EvaluationError) Unwrap() error {
	return e.Wrapped
}

type Option func(*Integrator)

// WithSummation selects a compute summer by name.
func WithSummation(name string) Option {
	return func(i *Integrator) { i.summation = name }
}

func WithLogger(l *slog.Logger) Option {
	return func(i *Integrator) {
		if l != nil {
			i.log = l
		}
	}
}

// Integrator is safe to reuse across calls; each Compute builds its own
// accumulator.
type Integrator struct {
	asm       dynamo.Assembly
	disc      *filament.Discretizer
	law       physics.Law
	summation string
	log       *slog.Logger
}

func New(asm dynamo.Assembly, opts ...Option) (*Integrator, error) {
	disc, err := filament.New(asm)
	if err != nil {
		return nil, err
	}

	i := &Integrator{
		asm:       asm,
		disc:      disc,
		law:       physics.NewLaw(asm),
		summation: compute.Default,
		log:       slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(i)
	}

	if _, err := compute.New(i.summation); err != nil {
		return nil, err
	}
	return i, nil
}

func (i *Integrator) Assembly() dynamo.Assembly          { return i.asm }
func (i *Integrator) Discretizer() *filament.Discretizer { return i.disc }
func (i *Integrator) Summation() string                  { return i.summation }

// Evaluations is the number of law evaluations per Compute call.
func (i *Integrator) Evaluations() int { return i.disc.Count() }

// Compute returns the raw summed force in µN for a coil current and a
// center distance z. The first failing pair aborts the sum.
func (i *Integrator) Compute(current, z float64) (float64, error) {
	sum, err := compute.New(i.summation)
	if err != nil {
		return 0, err
	}

	for p := range i.disc.Pairs() {
		f, err := i.law.Force(p.CoilRadius, p.MagnetRadius, z+p.Offset, current)
		if err != nil {
			return 0, &EvaluationError{Pair: p, Z: z, Wrapped: err}
		}
		sum.Add(f)
	}

	total := sum.Sum() * MicroNewtons
	i.log.Debug("force computed", "current", current, "z", z, "force_uN", total, "pairs", i.disc.Count())
	return total, nil
}

// Compute is a one-shot helper around New and Integrator.Compute.
func Compute(asm dynamo.Assembly, current, z float64) (float64, error) {
	i, err := New(asm)
	if err != nil {
		return 0, err
	}
	return i.Compute(current, z)
}
