// Package report renders sampled primary vertices as PNG histograms and an
// interactive HTML scatter chart.
package report

import (
	"fmt"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/bhackett1/OptSimple/internal/fsutil"
	"github.com/bhackett1/OptSimple/internal/store"
	"github.com/bhackett1/OptSimple/internal/units"
)

// ErrNoVertices is returned when there is nothing to plot.
var ErrNoVertices = fmt.Errorf("no vertices to plot")

// DefaultBins is the histogram bin count.
const DefaultBins = 50

type quantity struct {
	file  string
	title string
	label string
	value func(store.Vertex) float64
}

var quantities = []quantity{
	{"vertex_x.png", "Primary vertex X", "x (cm)", func(v store.Vertex) float64 { return v.X / units.Centimeter }},
	{"vertex_y.png", "Primary vertex Y", "y (cm)", func(v store.Vertex) float64 { return v.Y / units.Centimeter }},
	{"vertex_z.png", "Primary vertex Z", "z (cm)", func(v store.Vertex) float64 { return v.Z / units.Centimeter }},
	{"vertex_phi.png", "Azimuth draw", "phi (deg)", func(v store.Vertex) float64 { return v.Phi / units.Degree }},
}

// Histograms writes one PNG histogram per vertex quantity into dir and
// returns the written paths.
func Histograms(fsys fsutil.FileSystem, vertices []store.Vertex, dir string, bins int) ([]string, error) {
	if len(vertices) == 0 {
		return nil, ErrNoVertices
	}
	if bins <= 0 {
		bins = DefaultBins
	}
	if err := fsys.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create report dir: %w", err)
	}

	var written []string
	for _, q := range quantities {
		values := make(plotter.Values, len(vertices))
		for i, v := range vertices {
			values[i] = q.value(v)
		}

		p := plot.New()
		p.Title.Text = fmt.Sprintf("%s (%d events)", q.title, len(vertices))
		p.X.Label.Text = q.label
		p.Y.Label.Text = "Events"

		h, err := plotter.NewHist(values, bins)
		if err != nil {
			return written, fmt.Errorf("%s: %w", q.file, err)
		}
		h.LineStyle.Width = vg.Points(1)
		p.Add(h)

		path := filepath.Join(dir, q.file)
		if err := savePNG(fsys, p, path); err != nil {
			return written, fmt.Errorf("failed to save %s: %w", path, err)
		}
		written = append(written, path)
	}
	return written, nil
}

func savePNG(fsys fsutil.FileSystem, p *plot.Plot, path string) error {
	wt, err := p.WriterTo(8*vg.Inch, 5*vg.Inch, "png")
	if err != nil {
		return err
	}
	f, err := fsys.Create(path)
	if err != nil {
		return err
	}
	if _, err := wt.WriteTo(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
