// Package export writes sweep series to CSV, JSON and plot image files.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/san-kum/coilforce/internal/dynamo"
)

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Document is the JSON shape of an exported series.
type Document struct {
	Name    string             `json:"name"`
	XLabel  string             `json:"x_label"`
	YLabel  string             `json:"y_label"`
	Summary map[string]float64 `json:"summary,omitempty"`
	Points  []Point            `json:"points"`
}

func checkSeries(s dynamo.Series) error {
	if len(s.X) != len(s.Y) {
		return fmt.Errorf("export: series %q has %d x values and %d y values", s.Name, len(s.X), len(s.Y))
	}
	return nil
}

func WriteCSV(w io.Writer, s dynamo.Series) error {
	if err := checkSeries(s); err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{s.XLabel, s.YLabel}); err != nil {
		return err
	}
	for i := range s.X {
		row := []string{
			strconv.FormatFloat(s.X[i], 'g', -1, 64),
			strconv.FormatFloat(s.Y[i], 'g', -1, 64),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func WriteJSON(w io.Writer, s dynamo.Series, summary map[string]float64) error {
	if err := checkSeries(s); err != nil {
		return err
	}

	doc := Document{
		Name:    s.Name,
		XLabel:  s.XLabel,
		YLabel:  s.YLabel,
		Summary: summary,
		Points:  make([]Point, len(s.X)),
	}
	for i := range s.X {
		doc.Points[i] = Point{X: s.X[i], Y: s.Y[i]}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

// CSVFile and JSONFile create parent directories as needed.
func CSVFile(path string, s dynamo.Series) error {
	return writeFile(path, func(w io.Writer) error { return WriteCSV(w, s) })
}

func JSONFile(path string, s dynamo.Series, summary map[string]float64) error {
	return writeFile(path, func(w io.Writer) error { return WriteJSON(w, s, summary) })
}

func writeFile(path string, write func(io.Writer) error) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("cannot create directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
