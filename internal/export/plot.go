package export

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/san-kum/coilforce/internal/dynamo"
)

const (
	PlotWidth  = 8 * vg.Inch
	PlotHeight = 6 * vg.Inch
)

var palette = []color.Color{
	color.RGBA{R: 0x1f, G: 0x77, B: 0xb4, A: 0xff},
	color.RGBA{R: 0xd6, G: 0x27, B: 0x28, A: 0xff},
	color.RGBA{R: 0x2c, G: 0xa0, B: 0x2c, A: 0xff},
	color.RGBA{R: 0xff, G: 0x7f, B: 0x0e, A: 0xff},
}

var plotFormats = map[string]bool{".png": true, ".svg": true, ".pdf": true}

// SavePlot renders one line-and-marker trace per series. The file format
// follows the extension of path (.png, .svg or .pdf). Axis labels come from
// the first series.
func SavePlot(path, title string, series ...dynamo.Series) error {
	ext := strings.ToLower(filepath.Ext(path))
	if !plotFormats[ext] {
		return fmt.Errorf("export: unsupported plot format %q", ext)
	}
	if len(series) == 0 {
		return fmt.Errorf("export: nothing to plot")
	}

	p, err := newPlot(title, series)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("cannot create directory: %w", err)
	}
	return p.Save(PlotWidth, PlotHeight, path)
}

func newPlot(title string, series []dynamo.Series) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = series[0].XLabel
	p.Y.Label.Text = series[0].YLabel
	p.Add(plotter.NewGrid())

	for i, s := range series {
		if err := checkSeries(s); err != nil {
			return nil, err
		}
		if s.Len() == 0 {
			return nil, fmt.Errorf("export: series %q is empty", s.Name)
		}

		pts := make(plotter.XYs, s.Len())
		for j := range s.X {
			pts[j].X = s.X[j]
			pts[j].Y = s.Y[j]
		}

		line, points, err := plotter.NewLinePoints(pts)
		if err != nil {
			return nil, err
		}
		c := palette[i%len(palette)]
		line.LineStyle.Width = vg.Points(1.5)
		line.LineStyle.Color = c
		points.Color = c
		points.Radius = vg.Points(2)

		p.Add(line, points)
		if len(series) > 1 {
			p.Legend.Add(s.Name, line, points)
		}
	}
	p.Legend.Top = true
	return p, nil
}
