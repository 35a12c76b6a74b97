// Package storage persists model runs under a data directory: one
// subdirectory per run holding metadata plus the distribution and
// spectrum tables as CSV.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/astrosim/pulsarsed/internal/distribution"
	"github.com/astrosim/pulsarsed/internal/params"
	"github.com/astrosim/pulsarsed/internal/pipeline"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID        string                    `json:"id"`
	Timestamp time.Time                 `json:"timestamp"`
	TimeGrid  distribution.TimeGridMode `json:"time_grid"`
	Kernel    pipeline.KernelSource     `json:"kernel"`
	Overlay   pipeline.Overlay          `json:"overlay"`
	Params    params.Params             `json:"params"`
	Derived   params.Derived            `json:"derived"`
	Times     []float64                 `json:"times"`
	Summary   pipeline.Summary          `json:"summary"`
}

// Save writes one run to disk and returns its ID.
func (s *Store) Save(res *pipeline.Result) (string, error) {
	runID := fmt.Sprintf("flare_%d", time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:        runID,
		Timestamp: time.Now(),
		TimeGrid:  res.Config.TimeGrid,
		Kernel:    res.Config.Kernel,
		Overlay:   res.Config.Overlay,
		Params:    res.Config.Params,
		Derived:   res.Derived,
		Times:     res.Dist.Times,
		Summary:   res.Summary,
	}
	if err := writeJSON(filepath.Join(runDir, "metadata.json"), meta); err != nil {
		return "", err
	}

	if err := writeTable(filepath.Join(runDir, "distribution.csv"), "gamma", res.Dist.Gamma, res.Dist.N); err != nil {
		return "", err
	}
	if err := writeTable(filepath.Join(runDir, "spectrum.csv"), "frequency", res.Power.Freqs, res.Power.Power); err != nil {
		return "", err
	}
	return runID, nil
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// writeTable stores a 2D table with the abscissa grid as the first
// column and one column per time step.
func writeTable(path, axisName string, axis []float64, rows [][]float64) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)

	header := []string{axisName}
	for i := range rows {
		header = append(header, fmt.Sprintf("t%d", i))
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for j, x := range axis {
		record := []string{strconv.FormatFloat(x, 'e', 10, 64)}
		for i := range rows {
			record = append(record, strconv.FormatFloat(rows[i][j], 'e', 10, 64))
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, meta)
	}
	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return RunMetadata{}, err
	}
	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return RunMetadata{}, err
	}
	return meta, nil
}

// LoadDistribution reads back the gamma grid and per-time-step rows.
func (s *Store) LoadDistribution(runID string) (axis []float64, rows [][]float64, err error) {
	return readTable(filepath.Join(s.baseDir, runID, "distribution.csv"))
}

// LoadSpectrum reads back the frequency grid and per-time-step rows.
func (s *Store) LoadSpectrum(runID string) (axis []float64, rows [][]float64, err error) {
	return readTable(filepath.Join(s.baseDir, runID, "spectrum.csv"))
}

func readTable(path string) ([]float64, [][]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, nil, err
	}
	if len(records) < 2 {
		return nil, nil, fmt.Errorf("%s: no data rows", path)
	}

	numSteps := len(records[0]) - 1
	axis := make([]float64, 0, len(records)-1)
	rows := make([][]float64, numSteps)
	for i := range rows {
		rows[i] = make([]float64, 0, len(records)-1)
	}

	for _, record := range records[1:] {
		if len(record) != numSteps+1 {
			return nil, nil, fmt.Errorf("%s: ragged row with %d fields", path, len(record))
		}
		x, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			return nil, nil, err
		}
		axis = append(axis, x)
		for i := 0; i < numSteps; i++ {
			v, err := strconv.ParseFloat(record[i+1], 64)
			if err != nil {
				return nil, nil, err
			}
			rows[i] = append(rows[i], v)
		}
	}
	return axis, rows, nil
}
