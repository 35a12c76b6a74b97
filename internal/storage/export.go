package storage

import (
	"encoding/json"
	"io"
	"os"
)

// ExportData is the machine-readable form of a saved run: metadata
// plus both full tables.
type ExportData struct {
	Meta      RunMetadata `json:"meta"`
	Gamma     []float64   `json:"gamma"`
	Frequency []float64   `json:"frequency"`
	Dist      [][]float64 `json:"distribution"`
	Power     [][]float64 `json:"power"`
}

// ExportJSON writes a saved run as indented JSON.
func (s *Store) ExportJSON(runID string, w io.Writer) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}
	gamma, dist, err := s.LoadDistribution(runID)
	if err != nil {
		return err
	}
	freq, power, err := s.LoadSpectrum(runID)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(ExportData{
		Meta:      meta,
		Gamma:     gamma,
		Frequency: freq,
		Dist:      dist,
		Power:     power,
	})
}

// ExportJSONStdout writes a saved run as JSON to standard output.
func (s *Store) ExportJSONStdout(runID string) error {
	return s.ExportJSON(runID, os.Stdout)
}
