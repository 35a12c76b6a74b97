package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"math"
	"testing"

	"github.com/astrosim/pulsarsed/internal/pipeline"
)

func testResult(t *testing.T) *pipeline.Result {
	t.Helper()
	res, err := pipeline.Run(context.Background(), pipeline.DefaultConfig())
	if err != nil {
		t.Fatalf("pipeline run failed: %v", err)
	}
	return res
}

func TestSaveLoadRoundtrip(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	res := testResult(t)
	runID, err := st.Save(res)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if meta.ID != runID {
		t.Errorf("expected ID %s, got %s", runID, meta.ID)
	}
	if meta.Params != res.Config.Params {
		t.Errorf("params mismatch: %+v vs %+v", meta.Params, res.Config.Params)
	}
	if meta.Summary.TotalParticles != res.Summary.TotalParticles {
		t.Errorf("summary mismatch")
	}

	gamma, dist, err := st.LoadDistribution(runID)
	if err != nil {
		t.Fatalf("load distribution failed: %v", err)
	}
	if len(gamma) != len(res.Dist.Gamma) || len(dist) != len(res.Dist.N) {
		t.Fatalf("distribution shape mismatch: %dx%d", len(dist), len(gamma))
	}
	for i := range dist {
		for j := range dist[i] {
			if relDiff(dist[i][j], res.Dist.N[i][j]) > 1e-9 {
				t.Fatalf("distribution value (%d,%d) mismatch: %g vs %g", i, j, dist[i][j], res.Dist.N[i][j])
			}
		}
	}

	freq, power, err := st.LoadSpectrum(runID)
	if err != nil {
		t.Fatalf("load spectrum failed: %v", err)
	}
	if len(freq) != len(res.Power.Freqs) || len(power) != len(res.Power.Power) {
		t.Fatalf("spectrum shape mismatch")
	}
}

func relDiff(a, b float64) float64 {
	if a == b {
		return 0
	}
	return math.Abs(a-b) / math.Max(math.Abs(a), math.Abs(b))
}

func TestList(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatal(err)
	}

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 0 {
		t.Fatalf("expected no runs, got %d", len(runs))
	}

	res := testResult(t)
	if _, err := st.Save(res); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	runs, err = st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected 1 run, got %d", len(runs))
	}
}

func TestListMissingDir(t *testing.T) {
	st := New(t.TempDir() + "/nonexistent")
	runs, err := st.List()
	if err != nil {
		t.Fatalf("list should tolerate a missing dir: %v", err)
	}
	if len(runs) != 0 {
		t.Fatalf("expected no runs, got %d", len(runs))
	}
}

func TestLoadMissingRun(t *testing.T) {
	st := New(t.TempDir())
	if _, err := st.Load("flare_0"); err == nil {
		t.Error("expected error for missing run")
	}
}

func TestExportJSON(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatal(err)
	}
	runID, err := st.Save(testResult(t))
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	var buf bytes.Buffer
	if err := st.ExportJSON(runID, &buf); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	var data ExportData
	if err := json.Unmarshal(buf.Bytes(), &data); err != nil {
		t.Fatalf("export is not valid JSON: %v", err)
	}
	if data.Meta.ID != runID {
		t.Errorf("expected ID %s, got %s", runID, data.Meta.ID)
	}
	if len(data.Gamma) == 0 || len(data.Power) == 0 {
		t.Error("export missing table data")
	}
}
