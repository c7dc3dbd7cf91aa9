// Package storage archives sweep runs as plain files: one directory per run
// holding metadata.json and samples.csv.
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

	"github.com/san-kum/coilforce/internal/dynamo"
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
	ID        string             `json:"id"`
	Kind      string             `json:"kind"`
	Timestamp time.Time          `json:"timestamp"`
	Summation string             `json:"summation"`
	Assembly  map[string]float64 `json:"assembly"`
	Summary   map[string]float64 `json:"summary"`
	XLabel    string             `json:"x_label"`
	YLabel    string             `json:"y_label"`
	Samples   int                `json:"samples"`
}

// Run is what a command hands to Save.
type Run struct {
	Kind      string
	Summation string
	Assembly  dynamo.Assembly
	Summary   map[string]float64
	Series    dynamo.Series
}

func (s *Store) Save(run Run) (string, error) {
	now := time.Now()
	runID := fmt.Sprintf("%s_%d", run.Kind, now.UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:        runID,
		Kind:      run.Kind,
		Timestamp: now,
		Summation: run.Summation,
		Assembly:  run.Assembly.Params(),
		Summary:   run.Summary,
		XLabel:    run.Series.XLabel,
		YLabel:    run.Series.YLabel,
		Samples:   run.Series.Len(),
	}

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, "samples.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	if err := w.Write([]string{run.Series.XLabel, run.Series.YLabel}); err != nil {
		return "", err
	}
	for i := range run.Series.X {
		row := []string{
			strconv.FormatFloat(run.Series.X[i], 'g', -1, 64),
			strconv.FormatFloat(run.Series.Y[i], 'g', -1, 64),
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}

	return runID, nil
}

// List returns archived runs, oldest first. Directories without readable
// metadata are skipped.
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
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.Before(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// LoadSeries reads back the samples of a run.
func (s *Store) LoadSeries(runID string) (dynamo.Series, error) {
	meta, err := s.Load(runID)
	if err != nil {
		return dynamo.Series{}, err
	}

	file, err := os.Open(filepath.Join(s.baseDir, runID, "samples.csv"))
	if err != nil {
		return dynamo.Series{}, err
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return dynamo.Series{}, err
	}

	series := dynamo.Series{Name: meta.Kind, XLabel: meta.XLabel, YLabel: meta.YLabel}
	if len(records) < 2 {
		return series, nil
	}

	series.X = make([]float64, 0, len(records)-1)
	series.Y = make([]float64, 0, len(records)-1)
	for i, record := range records[1:] {
		if len(record) != 2 {
			return dynamo.Series{}, fmt.Errorf("samples.csv row %d: expected 2 fields, got %d", i+2, len(record))
		}
		x, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			return dynamo.Series{}, fmt.Errorf("samples.csv row %d: %w", i+2, err)
		}
		y, err := strconv.ParseFloat(record[1], 64)
		if err != nil {
			return dynamo.Series{}, fmt.Errorf("samples.csv row %d: %w", i+2, err)
		}
		series.X = append(series.X, x)
		series.Y = append(series.Y, y)
	}

	return series, nil
}
