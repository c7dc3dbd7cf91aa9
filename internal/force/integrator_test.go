package force

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/coilforce/internal/dynamo"
)

func coarseAssembly() dynamo.Assembly {
	a := dynamo.DefaultAssembly()
	a.MagnetFilaments = 100
	return a
}

func TestNew_Invalid(t *testing.T) {
	a := dynamo.DefaultAssembly()
	a.MagnetFilaments = 1
	if _, err := New(a); !errors.Is(err, dynamo.ErrConfiguration) {
		t.Errorf("New() error = %v, want ErrConfiguration", err)
	}

	if _, err := New(dynamo.DefaultAssembly(), WithSummation("bogus")); err == nil {
		t.Error("expected error for unknown summation")
	}
}

func TestCompute_ReferenceValue(t *testing.T) {
	a := dynamo.DefaultAssembly()
	f, err := Compute(a, 1.0, a.CenterDistance(0))
	if err != nil {
		t.Fatalf("compute failed: %v", err)
	}

	want := -4495.330604982427
	if math.Abs(f-want) > 1e-8*math.Abs(want) {
		t.Errorf("Compute() = %.9f µN, want %.9f", f, want)
	}
}

func TestCompute_ZeroCurrent(t *testing.T) {
	a := coarseAssembly()
	f, err := Compute(a, 0, a.CenterDistance(0))
	if err != nil {
		t.Fatal(err)
	}
	if f != 0 {
		t.Errorf("expected zero force at zero current, got %g", f)
	}
}

func TestCompute_LinearInCurrent(t *testing.T) {
	a := coarseAssembly()
	integ, err := New(a)
	if err != nil {
		t.Fatal(err)
	}

	for _, z := range []float64{a.CenterDistance(0), a.CenterDistance(2e-3)} {
		for _, current := range []float64{0.01, 0.13, 0.39} {
			f1, err := integ.Compute(current, z)
			if err != nil {
				t.Fatal(err)
			}
			f2, err := integ.Compute(2*current, z)
			if err != nil {
				t.Fatal(err)
			}
			if math.Abs(f2-2*f1) > 1e-12*math.Abs(f2) {
				t.Errorf("z=%g I=%g: F(2I)=%g, 2F(I)=%g", z, current, f2, 2*f1)
			}
		}
	}
}

func TestCompute_SummationsAgree(t *testing.T) {
	a := coarseAssembly()
	z := a.CenterDistance(1e-3)

	var ref float64
	for i, name := range []string{"naive", "kahan", "pairwise"} {
		integ, err := New(a, WithSummation(name))
		if err != nil {
			t.Fatal(err)
		}
		if integ.Summation() != name {
			t.Errorf("Summation() = %q, want %q", integ.Summation(), name)
		}
		f, err := integ.Compute(0.2, z)
		if err != nil {
			t.Fatal(err)
		}
		if i == 0 {
			ref = f
			continue
		}
		if math.Abs(f-ref) > 1e-10*math.Abs(ref) {
			t.Errorf("%s: %g differs from naive %g", name, f, ref)
		}
	}
}

func TestCompute_Deterministic(t *testing.T) {
	a := coarseAssembly()
	integ, _ := New(a)
	z := a.CenterDistance(0)

	f1, _ := integ.Compute(0.25, z)
	f2, _ := integ.Compute(0.25, z)
	if math.Float64bits(f1) != math.Float64bits(f2) {
		t.Errorf("repeated computation differs: %v vs %v", f1, f2)
	}
}

func TestCompute_AbortsOnSingularPair(t *testing.T) {
	a := coarseAssembly()
	a.MagnetRadius = a.CoilOuterRadius

	integ, err := New(a)
	if err != nil {
		t.Fatal(err)
	}

	f, err := integ.Compute(1.0, a.CenterDistance(0))
	if !errors.Is(err, dynamo.ErrNumericDomain) {
		t.Fatalf("Compute() error = %v, want ErrNumericDomain", err)
	}
	if f != 0 {
		t.Errorf("expected no partial sum, got %g", f)
	}

	var evalErr *EvaluationError
	if !errors.As(err, &evalErr) {
		t.Fatalf("expected *EvaluationError, got %T", err)
	}
	if evalErr.Pair.NM != 1 || evalErr.Pair.NZ != 1 {
		t.Errorf("expected failure at the first pair, got %+v", evalErr.Pair)
	}
}

func TestIntegrator_Evaluations(t *testing.T) {
	integ, _ := New(dynamo.DefaultAssembly())
	if got := integ.Evaluations(); got != 1999*54 {
		t.Errorf("Evaluations() = %d, want %d", got, 1999*54)
	}
}

func BenchmarkCompute_Reference(b *testing.B) {
	a := dynamo.DefaultAssembly()
	integ, _ := New(a)
	z := a.CenterDistance(0)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = integ.Compute(0.2, z)
	}
}
