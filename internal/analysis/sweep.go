package analysis

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/san-kum/coilforce/internal/dynamo"
	"github.com/san-kum/coilforce/internal/force"
	"github.com/san-kum/coilforce/internal/metrics"
	"gonum.org/v1/gonum/floats"
)

const (
	DefaultCurrentSamples = 40
	DefaultCurrentStep    = 0.01
	DefaultHeightStart    = 0
	DefaultHeightStop     = 30
	DefaultHeightDivisor  = 6000
)

// CurrentSweepConfig samples currents i·Step for i in [0, Samples).
type CurrentSweepConfig struct {
	Samples int
	Step    float64
}

func DefaultCurrentSweep() CurrentSweepConfig {
	return CurrentSweepConfig{Samples: DefaultCurrentSamples, Step: DefaultCurrentStep}
}

// HeightSweepConfig walks integer heights h in [Start, Stop); the gap added
// to the center distance is h/Divisor meters.
type HeightSweepConfig struct {
	Start   int
	Stop    int
	Divisor float64
	Current CurrentSweepConfig

	// OnPoint, if set, is called after each height completes.
	OnPoint func(p dynamo.HeightPoint, done, total int)
}

func DefaultHeightSweep() HeightSweepConfig {
	return HeightSweepConfig{
		Start:   DefaultHeightStart,
		Stop:    DefaultHeightStop,
		Divisor: DefaultHeightDivisor,
		Current: DefaultCurrentSweep(),
	}
}

// Gap returns the air gap in meters for height h.
func (c HeightSweepConfig) Gap(h int) float64 {
	return float64(h) / c.Divisor
}

type Analyzer struct {
	integ   *force.Integrator
	log     *slog.Logger
	metrics func() []metrics.Metric
}

type Option func(*Analyzer)

func WithLogger(l *slog.Logger) Option {
	return func(a *Analyzer) {
		if l != nil {
			a.log = l
		}
	}
}

// WithMetrics replaces the default sweep metrics. The factory is called
// once per sweep so no state leaks between sweeps.
func WithMetrics(fn func() []metrics.Metric) Option {
	return func(a *Analyzer) { a.metrics = fn }
}

func New(integ *force.Integrator, opts ...Option) *Analyzer {
	a := &Analyzer{
		integ:   integ,
		log:     slog.New(slog.DiscardHandler),
		metrics: metrics.Default,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func (a *Analyzer) Integrator() *force.Integrator { return a.integ }

// CurrentSweep integrates the force at each sampled current for center
// distance z.
func (a *Analyzer) CurrentSweep(ctx context.Context, z float64, cfg CurrentSweepConfig) (*dynamo.SweepResult, error) {
	if cfg.Samples < 2 {
		return nil, fmt.Errorf("%w: current sweep needs at least 2 samples, got %d", dynamo.ErrDegenerateSweep, cfg.Samples)
	}
	if !(cfg.Step > 0) {
		return nil, fmt.Errorf("%w: current step must be positive, got %g", dynamo.ErrDegenerateSweep, cfg.Step)
	}

	res := &dynamo.SweepResult{
		Z:       z,
		Samples: make([]dynamo.Sample, 0, cfg.Samples),
		Metrics: make(map[string]float64),
	}

	ms := a.metrics()
	for _, m := range ms {
		m.Reset()
	}

	for i := 0; i < cfg.Samples; i++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		c := float64(i) * cfg.Step
		raw, err := a.integ.Compute(c, z)
		if err != nil {
			return nil, fmt.Errorf("current sweep at I=%g: %w", c, err)
		}
		f := -raw

		res.Samples = append(res.Samples, dynamo.Sample{Current: c, Force: f})
		for _, m := range ms {
			m.Observe(c, f)
		}
	}

	first, last := res.Samples[0], res.Samples[len(res.Samples)-1]
	res.Slope = (last.Force - first.Force) / (last.Current - first.Current)

	forces := res.Forces()
	res.Min = floats.Min(forces[1:])
	res.Max = floats.Max(forces)

	for _, m := range ms {
		res.Metrics[m.Name()] = m.Value()
	}

	a.log.Debug("current sweep done", "z", z, "slope", res.Slope, "min", res.Min, "max", res.Max)
	return res, nil
}

// HeightSweep runs a current sweep per height and records its slope.
func (a *Analyzer) HeightSweep(ctx context.Context, cfg HeightSweepConfig) (*dynamo.HeightSweepResult, error) {
	total := cfg.Stop - cfg.Start
	if total < 1 {
		return nil, fmt.Errorf("%w: empty height range [%d, %d)", dynamo.ErrDegenerateSweep, cfg.Start, cfg.Stop)
	}
	if !(cfg.Divisor > 0) {
		return nil, fmt.Errorf("%w: height divisor must be positive, got %g", dynamo.ErrDegenerateSweep, cfg.Divisor)
	}

	asm := a.integ.Assembly()
	res := &dynamo.HeightSweepResult{Points: make([]dynamo.HeightPoint, 0, total)}

	for h := cfg.Start; h < cfg.Stop; h++ {
		gap := cfg.Gap(h)
		z := asm.CenterDistance(gap)

		sweep, err := a.CurrentSweep(ctx, z, cfg.Current)
		if err != nil {
			return nil, fmt.Errorf("height %d: %w", h, err)
		}

		p := dynamo.HeightPoint{Height: h, Gap: gap, Z: z, Coefficient: sweep.Slope}
		res.Points = append(res.Points, p)
		a.log.Debug("height point", "height", h, "gap", gap, "coefficient", p.Coefficient)

		if cfg.OnPoint != nil {
			cfg.OnPoint(p, len(res.Points), total)
		}
	}

	return res, nil
}
