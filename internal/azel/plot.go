package azel

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// 8x6 inch figure.
const (
	plotWidth  = 8 * vg.Inch
	plotHeight = 6 * vg.Inch
)

// Plot draws azimuth against elevation and saves it to path. The image
// format follows the file extension (png, svg, pdf, ...).
func Plot(samples []Sample, path string) (err error) {
	if len(samples) == 0 {
		return ErrNoSamples
	}
	format := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	if format == "" {
		return fmt.Errorf("plot path %s has no image extension", path)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating plot file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing plot file: %w", cerr)
		}
	}()

	return WritePlot(f, samples, format)
}

// WritePlot renders the plot in the given format to w.
func WritePlot(w io.Writer, samples []Sample, format string) error {
	p, err := newPlot(samples)
	if err != nil {
		return err
	}
	wt, err := p.WriterTo(plotWidth, plotHeight, format)
	if err != nil {
		return fmt.Errorf("rendering %s plot: %w", format, err)
	}
	_, err = wt.WriteTo(w)
	return err
}

func newPlot(samples []Sample) (*plot.Plot, error) {
	if len(samples) == 0 {
		return nil, ErrNoSamples
	}

	p := plot.New()
	p.Title.Text = "Azimuth vs Elevation"
	p.X.Label.Text = "Azimuth (degrees)"
	p.Y.Label.Text = "Elevation (degrees)"
	p.Add(plotter.NewGrid())

	pts := make(plotter.XYs, len(samples))
	for i, s := range samples {
		pts[i].X = s.AzimuthDeg
		pts[i].Y = s.ElevationDeg
	}

	line, points, err := plotter.NewLinePoints(pts)
	if err != nil {
		return nil, fmt.Errorf("building plot data: %w", err)
	}
	p.Add(line, points)

	return p, nil
}
