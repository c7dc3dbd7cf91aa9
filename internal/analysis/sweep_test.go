package analysis_test

import (
	"context"
	"errors"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/coilforce/internal/analysis"
	"github.com/san-kum/coilforce/internal/dynamo"
	"github.com/san-kum/coilforce/internal/force"
	"github.com/san-kum/coilforce/internal/metrics"
)

func newAnalyzer(asm dynamo.Assembly, opts ...analysis.Option) *analysis.Analyzer {
	integ, err := force.New(asm)
	Expect(err).NotTo(HaveOccurred())
	return analysis.New(integ, opts...)
}

func coarse() dynamo.Assembly {
	a := dynamo.DefaultAssembly()
	a.MagnetFilaments = 50
	return a
}

var _ = Describe("CurrentSweep", func() {
	ctx := context.Background()

	Context("with the reference assembly at zero gap", Ordered, func() {
		var res *dynamo.SweepResult

		BeforeAll(func() {
			asm := dynamo.DefaultAssembly()
			var err error
			res, err = newAnalyzer(asm).CurrentSweep(ctx, asm.CenterDistance(0), analysis.DefaultCurrentSweep())
			Expect(err).NotTo(HaveOccurred())
		})

		It("samples 40 currents in 0.01 A steps", func() {
			Expect(res.Samples).To(HaveLen(40))
			for i, s := range res.Samples {
				Expect(s.Current).To(Equal(float64(i) * 0.01))
			}
			Expect(res.Samples[0].Force).To(BeZero())
		})

		It("reports the negated raw force", func() {
			raw, err := force.Compute(dynamo.DefaultAssembly(), 0.39, res.Z)
			Expect(err).NotTo(HaveOccurred())
			Expect(raw).To(BeNumerically("<", 0))
			Expect(res.Samples[39].Force).To(Equal(-raw))
		})

		It("varies monotonically with a finite endpoint slope", func() {
			forces := res.Forces()
			for i := 1; i < len(forces); i++ {
				Expect(forces[i]).To(BeNumerically(">", forces[i-1]))
			}
			Expect(math.IsInf(res.Slope, 0) || math.IsNaN(res.Slope)).To(BeFalse())
			Expect(res.Slope).To(BeNumerically("~", 4495.3306, 1e-3))
		})

		It("skips the zero-current sample for the minimum", func() {
			Expect(res.Min).To(Equal(res.Samples[1].Force))
			Expect(res.Max).To(Equal(res.Samples[39].Force))
		})

		It("attaches the sweep metrics", func() {
			Expect(res.Metrics).To(HaveKey("fit_slope"))
			Expect(res.Metrics["fit_slope"]).To(BeNumerically("~", res.Slope, 1e-6*res.Slope))
			Expect(res.Metrics["r_squared"]).To(BeNumerically("~", 1, 1e-12))
			Expect(res.Metrics["nonlinearity"]).To(BeNumerically("<", 1e-9))
			Expect(res.Metrics["peak_force"]).To(Equal(res.Max))
		})
	})

	It("rejects sweeps with fewer than two samples", func() {
		a := newAnalyzer(coarse())
		for _, n := range []int{-1, 0, 1} {
			_, err := a.CurrentSweep(ctx, 0.008, analysis.CurrentSweepConfig{Samples: n, Step: 0.01})
			Expect(errors.Is(err, dynamo.ErrDegenerateSweep)).To(BeTrue())
		}
	})

	It("rejects a non-positive current step", func() {
		_, err := newAnalyzer(coarse()).CurrentSweep(ctx, 0.008, analysis.CurrentSweepConfig{Samples: 10, Step: 0})
		Expect(errors.Is(err, dynamo.ErrDegenerateSweep)).To(BeTrue())
	})

	It("propagates filament failures without partial results", func() {
		asm := coarse()
		asm.MagnetRadius = asm.CoilOuterRadius
		res, err := newAnalyzer(asm).CurrentSweep(ctx, asm.CenterDistance(0), analysis.DefaultCurrentSweep())
		Expect(err).To(MatchError(dynamo.ErrNumericDomain))
		Expect(res).To(BeNil())

		var evalErr *force.EvaluationError
		Expect(errors.As(err, &evalErr)).To(BeTrue())
	})

	It("stops when the context is canceled", func() {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		_, err := newAnalyzer(coarse()).CurrentSweep(cctx, 0.008, analysis.DefaultCurrentSweep())
		Expect(err).To(MatchError(context.Canceled))
	})

	It("uses fresh metrics for every sweep", func() {
		a := newAnalyzer(coarse(), analysis.WithMetrics(func() []metrics.Metric {
			return []metrics.Metric{metrics.NewPeakForce()}
		}))
		cfg := analysis.CurrentSweepConfig{Samples: 5, Step: 0.1}

		big, err := a.CurrentSweep(ctx, 0.008, cfg)
		Expect(err).NotTo(HaveOccurred())
		small, err := a.CurrentSweep(ctx, 0.008, analysis.CurrentSweepConfig{Samples: 2, Step: 0.01})
		Expect(err).NotTo(HaveOccurred())

		Expect(small.Metrics["peak_force"]).To(BeNumerically("<", big.Metrics["peak_force"]))
		Expect(small.Metrics).NotTo(HaveKey("fit_slope"))
	})
})

var _ = Describe("HeightSweep", func() {
	ctx := context.Background()

	It("records one coefficient per height and decays with the gap", func() {
		asm := coarse()
		var progress []int
		cfg := analysis.DefaultHeightSweep()
		cfg.OnPoint = func(p dynamo.HeightPoint, done, total int) {
			Expect(total).To(Equal(30))
			progress = append(progress, done)
		}

		res, err := newAnalyzer(asm).HeightSweep(ctx, cfg)
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Points).To(HaveLen(30))
		Expect(progress).To(HaveLen(30))
		Expect(progress[29]).To(Equal(30))

		for i, p := range res.Points {
			Expect(p.Height).To(Equal(i))
			Expect(p.Gap).To(Equal(float64(i) / 6000))
			Expect(p.Z).To(Equal(asm.CenterDistance(p.Gap)))
			Expect(p.Coefficient).To(BeNumerically(">", 0))
		}

		Expect(res.Decays(5)).To(BeTrue())
		Expect(res.Points[29].Coefficient).To(BeNumerically("<", 0.8*res.Points[0].Coefficient))
		Expect(res.Points[0].Coefficient).To(BeNumerically("~", 4406.82, 0.05))
	})

	It("matches a direct current sweep at the same height", func() {
		asm := coarse()
		a := newAnalyzer(asm)
		cfg := analysis.HeightSweepConfig{Start: 12, Stop: 13, Divisor: 6000, Current: analysis.DefaultCurrentSweep()}

		hs, err := a.HeightSweep(ctx, cfg)
		Expect(err).NotTo(HaveOccurred())
		cs, err := a.CurrentSweep(ctx, asm.CenterDistance(12.0/6000), analysis.DefaultCurrentSweep())
		Expect(err).NotTo(HaveOccurred())

		Expect(hs.Points).To(HaveLen(1))
		Expect(hs.Points[0].Coefficient).To(Equal(cs.Slope))
	})

	DescribeTable("rejects degenerate ranges",
		func(cfg analysis.HeightSweepConfig) {
			_, err := newAnalyzer(coarse()).HeightSweep(ctx, cfg)
			Expect(errors.Is(err, dynamo.ErrDegenerateSweep)).To(BeTrue())
		},
		Entry("empty range", analysis.HeightSweepConfig{Start: 5, Stop: 5, Divisor: 6000, Current: analysis.DefaultCurrentSweep()}),
		Entry("reversed range", analysis.HeightSweepConfig{Start: 5, Stop: 2, Divisor: 6000, Current: analysis.DefaultCurrentSweep()}),
		Entry("zero divisor", analysis.HeightSweepConfig{Start: 0, Stop: 2, Divisor: 0, Current: analysis.DefaultCurrentSweep()}),
		Entry("degenerate current sweep", analysis.HeightSweepConfig{Start: 0, Stop: 2, Divisor: 6000, Current: analysis.CurrentSweepConfig{Samples: 1, Step: 0.01}}),
	)
})
