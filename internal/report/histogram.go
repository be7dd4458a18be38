package report

import (
	"bytes"
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"torus-rally/internal/fsutil"
	"torus-rally/internal/heightfield"
)

// Histogram plots the sample distribution of f with the given bin count.
func Histogram(f *heightfield.Heightfield, bins int, title string) (*plot.Plot, error) {
	if bins <= 0 {
		bins = 32
	}
	h, err := plotter.NewHist(plotter.Values(toFloat64(f.Values())), bins)
	if err != nil {
		return nil, fmt.Errorf("report: histogram: %w", err)
	}
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "height"
	p.Y.Label.Text = "cells"
	p.Add(h)
	return p, nil
}

// WriteHistogram renders the histogram of f as a PNG at path.
func WriteHistogram(fsys fsutil.FileSystem, path string, f *heightfield.Heightfield, bins int, title string) error {
	p, err := Histogram(f, bins, title)
	if err != nil {
		return err
	}
	w, err := p.WriterTo(8*vg.Inch, 4*vg.Inch, "png")
	if err != nil {
		return fmt.Errorf("report: render histogram: %w", err)
	}
	var buf bytes.Buffer
	if _, err := w.WriteTo(&buf); err != nil {
		return fmt.Errorf("report: render histogram: %w", err)
	}
	if err := fsys.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("report: write %s: %w", path, err)
	}
	return nil
}
