package mathutil

import (
	"math"
	"testing"
)

func TestLogspace(t *testing.T) {
	g := Logspace(0, 2, 3)
	want := []float64{1, 10, 100}
	if len(g) != len(want) {
		t.Fatalf("expected %d values, got %d", len(want), len(g))
	}
	for i := range want {
		if math.Abs(g[i]-want[i])/want[i] > 1e-12 {
			t.Errorf("index %d: expected %g, got %g", i, want[i], g[i])
		}
	}
}

func TestLogspaceEndpoints(t *testing.T) {
	g := Logspace(-20, 2, 99)
	if len(g) != 99 {
		t.Fatalf("expected 99 values, got %d", len(g))
	}
	if math.Abs(g[0]-1e-20)/1e-20 > 1e-12 {
		t.Errorf("first value: expected 1e-20, got %g", g[0])
	}
	if math.Abs(g[98]-100)/100 > 1e-12 {
		t.Errorf("last value: expected 100, got %g", g[98])
	}
	for i := 1; i < len(g); i++ {
		if g[i] <= g[i-1] {
			t.Fatalf("grid not ascending at %d", i)
		}
	}
}

func TestInterp1D(t *testing.T) {
	p, err := NewInterp1D([]float64{0, 1, 2}, []float64{0, 10, 0}, ZeroFill)
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}

	tests := []struct {
		x, want float64
	}{
		{0, 0},
		{0.5, 5},
		{1, 10},
		{1.25, 7.5},
		{2, 0},
		{-1, 0},  // below domain, zero fill
		{2.5, 0}, // above domain, zero fill
	}
	for _, tt := range tests {
		if got := p.At(tt.x); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("At(%g): expected %g, got %g", tt.x, tt.want, got)
		}
	}
}

func TestInterp1DClamp(t *testing.T) {
	p, err := NewInterp1D([]float64{0, 1}, []float64{3, 7}, Clamp)
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	if got := p.At(-5); got != 3 {
		t.Errorf("clamp below: expected 3, got %g", got)
	}
	if got := p.At(5); got != 7 {
		t.Errorf("clamp above: expected 7, got %g", got)
	}
}

func TestInterp1DInvalid(t *testing.T) {
	if _, err := NewInterp1D([]float64{0, 1}, []float64{0}, ZeroFill); err == nil {
		t.Error("expected error for length mismatch")
	}
	if _, err := NewInterp1D([]float64{0}, []float64{0}, ZeroFill); err == nil {
		t.Error("expected error for single point")
	}
	if _, err := NewInterp1D([]float64{0, 0, 1}, []float64{1, 2, 3}, ZeroFill); err == nil {
		t.Error("expected error for non-ascending abscissae")
	}
}

func TestAdaptiveSimpson(t *testing.T) {
	tests := []struct {
		name string
		f    func(float64) float64
		a, b float64
		want float64
	}{
		{"polynomial", func(x float64) float64 { return x * x }, 0, 3, 9},
		{"sine", math.Sin, 0, math.Pi, 2},
		{"exponential", math.Exp, 0, 1, math.E - 1},
		{"decaying", func(x float64) float64 { return math.Exp(-x) }, 0, 50, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AdaptiveSimpson(tt.f, tt.a, tt.b, 1e-10)
			if math.Abs(got-tt.want) > 1e-8*math.Max(math.Abs(tt.want), 1) {
				t.Errorf("expected %.12g, got %.12g", tt.want, got)
			}
		})
	}
}

// Reference values computed independently from the integral
// representation K_nu(x) = int_0^inf exp(-x cosh t) cosh(nu t) dt.
func TestBesselK53(t *testing.T) {
	tests := []struct {
		x, want, tol float64
	}{
		{1e-3, 1.4330182903e+05, 1e-10},
		{1e-2, 3.0872298703e+03, 1e-10},
		{0.1, 6.6272663683e+01, 1e-10},
		{0.3, 1.0338531107e+01, 1e-10},
		{1.0, 1.0977307162e+00, 1e-10},
		{3.0, 5.1775715789e-02, 1e-9},
		{5.0, 4.7540549986e-03, 1e-9},
		{5.9, 1.7225122562e-03, 1e-9}, // series side of the cutoff
		{6.5, 8.8548050115e-04, 1e-5}, // asymptotic side of the cutoff
		{10.0, 2.0296099947e-05, 1e-8},
		{30.0, 2.2318364988e-14, 1e-10},
	}
	for _, tt := range tests {
		got := BesselK(5.0/3.0, tt.x)
		rel := math.Abs(got-tt.want) / tt.want
		if rel > tt.tol {
			t.Errorf("BesselK(5/3, %g): expected %.10e, got %.10e (rel %.2e)", tt.x, tt.want, got, rel)
		}
	}
}

func TestBesselKInvalid(t *testing.T) {
	if !math.IsNaN(BesselK(5.0/3.0, 0)) {
		t.Error("expected NaN for x=0")
	}
	if !math.IsNaN(BesselK(5.0/3.0, -1)) {
		t.Error("expected NaN for negative x")
	}
}

func TestBesselKMonotoneDecreasing(t *testing.T) {
	prev := math.Inf(1)
	for _, x := range Logspace(-6, 1.5, 40) {
		v := BesselK(5.0/3.0, x)
		if v <= 0 || v >= prev {
			t.Fatalf("K_5/3 not positive strictly decreasing at x=%g: %g (prev %g)", x, v, prev)
		}
		prev = v
	}
}
