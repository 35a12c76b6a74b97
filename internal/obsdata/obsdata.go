// Package obsdata loads the flat numeric tables shipped with the tool:
// the precomputed synchrotron kernel and the observed Sgr A* spectral
// energy distribution (radio and IR points, Chandra X-ray box).
package obsdata

import (
	"bufio"
	"embed"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

//go:embed tables/*.txt
var tablesFS embed.FS

// Dataset is a set of observed points in log10 space: frequency in Hz
// against nu*L_nu in erg/s.
type Dataset struct {
	Log10Freq []float64
	Log10Lum  []float64
}

// LoadColumn reads whitespace/line-delimited float64 values from a
// file. Malformed content fails immediately; there is no recovery.
func LoadColumn(path string) ([]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	vals, err := readColumn(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return vals, nil
}

func readColumn(r io.Reader) ([]float64, error) {
	var vals []float64
	sc := bufio.NewScanner(r)
	sc.Split(bufio.ScanWords)
	for sc.Scan() {
		tok := strings.TrimSpace(sc.Text())
		if tok == "" {
			continue
		}
		v, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			return nil, fmt.Errorf("value %d: %w", len(vals), err)
		}
		vals = append(vals, v)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if len(vals) == 0 {
		return nil, fmt.Errorf("no values found")
	}
	return vals, nil
}

func embeddedColumn(name string) ([]float64, error) {
	f, err := tablesFS.Open("tables/" + name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	vals, err := readColumn(f)
	if err != nil {
		return nil, fmt.Errorf("embedded table %s: %w", name, err)
	}
	return vals, nil
}

func dataset(freqFile, lumFile string) (Dataset, error) {
	freq, err := embeddedColumn(freqFile)
	if err != nil {
		return Dataset{}, err
	}
	lum, err := embeddedColumn(lumFile)
	if err != nil {
		return Dataset{}, err
	}
	if len(freq) != len(lum) {
		return Dataset{}, fmt.Errorf("%s/%s: %d frequencies vs %d luminosities", freqFile, lumFile, len(freq), len(lum))
	}
	return Dataset{Log10Freq: freq, Log10Lum: lum}, nil
}

// KernelTable returns the precomputed synchrotron kernel columns
// log10(x), log10(F(x)).
func KernelTable() (log10X, log10F []float64, err error) {
	log10X, err = embeddedColumn("synchrotron_kernel_log10_x.txt")
	if err != nil {
		return nil, nil, err
	}
	log10F, err = embeddedColumn("synchrotron_kernel_log10_f.txt")
	if err != nil {
		return nil, nil, err
	}
	if len(log10X) != len(log10F) {
		return nil, nil, fmt.Errorf("kernel table: %d x values vs %d F values", len(log10X), len(log10F))
	}
	return log10X, log10F, nil
}

// Radio returns the observed Sgr A* radio points.
func Radio() (Dataset, error) {
	return dataset("sgr_a_radio_log10_frequency.txt", "sgr_a_radio_log10_luminosity.txt")
}

// IR returns the observed Sgr A* infrared points.
func IR() (Dataset, error) {
	return dataset("sgr_a_ir_log10_frequency.txt", "sgr_a_ir_log10_luminosity.txt")
}

// XRayBox returns the two corners of the Chandra X-ray band box.
func XRayBox() (Dataset, error) {
	ds, err := dataset("sgr_a_xray_log10_frequency.txt", "sgr_a_xray_log10_luminosity.txt")
	if err != nil {
		return Dataset{}, err
	}
	if len(ds.Log10Freq) != 2 {
		return Dataset{}, fmt.Errorf("x-ray box: expected 2 corners, got %d", len(ds.Log10Freq))
	}
	return ds, nil
}
