package synchrotron

import (
	"math"
	"testing"

	"github.com/astrosim/pulsarsed/internal/distribution"
	"github.com/astrosim/pulsarsed/internal/mathutil"
	"github.com/astrosim/pulsarsed/internal/obsdata"
	"github.com/astrosim/pulsarsed/internal/params"
)

func tableKernel(t *testing.T) *Kernel {
	t.Helper()
	log10X, log10F, err := obsdata.KernelTable()
	if err != nil {
		t.Fatalf("loading kernel table: %v", err)
	}
	k, err := FromTable(log10X, log10F)
	if err != nil {
		t.Fatalf("building kernel from table: %v", err)
	}
	return k
}

func TestKernelDomainMask(t *testing.T) {
	k := tableKernel(t)
	if got := k.F(1e-21); got != 0 {
		t.Errorf("F below domain: expected 0, got %g", got)
	}
	if got := k.F(101); got != 0 {
		t.Errorf("F above domain: expected 0, got %g", got)
	}
	if got := k.F(0.29); got <= 0 {
		t.Errorf("F inside domain should be positive, got %g", got)
	}
}

// F rises from ~0 at small x to a single peak near x ~ 0.29 and falls
// off exponentially beyond.
func TestKernelShape(t *testing.T) {
	k := tableKernel(t)

	xs := mathutil.Logspace(-19.5, 1.9, 200)
	peakIdx := 0
	peak := 0.0
	for i, x := range xs {
		v := k.F(x)
		if v < 0 {
			t.Fatalf("F(%g) negative: %g", x, v)
		}
		if v > peak {
			peak, peakIdx = v, i
		}
	}
	px := xs[peakIdx]
	if px < 0.15 || px > 0.45 {
		t.Errorf("kernel peak at x=%g, expected near 0.29", px)
	}
	if peak < 0.85 || peak > 0.95 {
		t.Errorf("kernel peak value %g, expected near 0.918", peak)
	}

	// Rise then fall: monotone on each side of the peak.
	for i := 1; i <= peakIdx; i++ {
		if k.F(xs[i]) < k.F(xs[i-1]) {
			t.Fatalf("kernel not rising at x=%g", xs[i])
		}
	}
	for i := peakIdx + 1; i < len(xs); i++ {
		if k.F(xs[i]) > k.F(xs[i-1]) {
			t.Fatalf("kernel not falling at x=%g", xs[i])
		}
	}

	// Vanishing limits within the tabulated domain.
	if k.F(1.1e-20) > 1e-5 {
		t.Errorf("F near lower edge should be tiny, got %g", k.F(1.1e-20))
	}
	if k.F(99) > 1e-30 {
		t.Errorf("F near upper edge should be tiny, got %g", k.F(99))
	}
}

// Rebuilding the table by direct integration must agree with the
// shipped precomputed table to within 1% everywhere.
func TestKernelBuildMatchesTable(t *testing.T) {
	if testing.Short() {
		t.Skip("kernel integration is slow")
	}
	built := Build()
	fromFile := tableKernel(t)

	bx, bf := built.Table()
	fx, ff := fromFile.Table()
	if len(bx) != len(fx) {
		t.Fatalf("table sizes differ: %d vs %d", len(bx), len(fx))
	}
	for i := range bx {
		if math.Abs(bx[i]-fx[i]) > 1e-9 {
			t.Fatalf("x grids differ at %d: %g vs %g", i, bx[i], fx[i])
		}
		relF := math.Abs(math.Pow(10, bf[i])-math.Pow(10, ff[i])) / math.Pow(10, ff[i])
		if relF > 0.01 {
			t.Errorf("F differs by %.3f%% at log10 x = %g", 100*relF, bx[i])
		}
	}
}

func TestFreqGrid(t *testing.T) {
	f := FreqGrid()
	if len(f) != FreqGridSize {
		t.Fatalf("expected %d frequencies, got %d", FreqGridSize, len(f))
	}
	if math.Abs(f[0]-1e7)/1e7 > 1e-12 || math.Abs(f[98]-1e28)/1e28 > 1e-12 {
		t.Errorf("frequency grid endpoints: got [%g, %g]", f[0], f[98])
	}
}

func crossingTable(t *testing.T) (params.Params, params.Derived, *distribution.Table) {
	t.Helper()
	p, _ := params.GetPreset("ir-flare")
	d := p.Derive()
	gamma := distribution.GammaGrid(d.GammaMax)
	tbl, err := distribution.Evolve(p, d, gamma, distribution.TimeGrid(distribution.TimeGridPericenter, d))
	if err != nil {
		t.Fatalf("evolve failed: %v", err)
	}
	return p, d, tbl
}

func TestSpectrumReference(t *testing.T) {
	_, d, tbl := crossingTable(t)
	k := tableKernel(t)

	pow := Spectrum(tbl, FreqGrid(), d.MagField, k)

	// Row 3 is t = t_p. Reference values computed independently for
	// the ir-flare parameter set against the shipped kernel table.
	checks := []struct {
		idx  int
		want float64
	}{
		{20, 5.8364548671e+30},
		{40, 2.2479793284e+32},
		{60, 1.1210115019e+32},
	}
	for _, c := range checks {
		got := pow.Power[3][c.idx]
		if math.Abs(got-c.want)/c.want > 1e-6 {
			t.Errorf("power(tp, freq[%d]): expected %.8e, got %.8e", c.idx, c.want, got)
		}
	}
}

func TestSpectrumNonNegative(t *testing.T) {
	_, d, tbl := crossingTable(t)
	pow := Spectrum(tbl, FreqGrid(), d.MagField, tableKernel(t))

	for i := range pow.Times {
		for j, v := range pow.Power[i] {
			if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
				t.Fatalf("power(t=%g, nu=%g) = %g", pow.Times[i], pow.Freqs[j], v)
			}
		}
	}
}

// Above the synchrotron cutoff the spectrum falls strictly until it
// leaves the kernel domain entirely.
func TestSpectrumDecreasingAboveCutoff(t *testing.T) {
	_, d, tbl := crossingTable(t)
	pow := Spectrum(tbl, FreqGrid(), d.MagField, tableKernel(t))

	row := pow.Power[len(pow.Power)-1]
	peak := 0
	for i, v := range row {
		if v > row[peak] {
			peak = i
		}
	}
	if row[peak] <= 0 {
		t.Fatal("spectrum has no positive peak")
	}
	for i := peak + 1; i < len(row); i++ {
		if row[i] == 0 {
			break
		}
		if row[i] >= row[i-1] {
			t.Fatalf("power not strictly decreasing at freq index %d", i)
		}
	}
}
