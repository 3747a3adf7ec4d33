package report

import (
	"bytes"
	"fmt"
	"io"
	"math"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/bhackett1/OptSimple/internal/fsutil"
	"github.com/bhackett1/OptSimple/internal/store"
	"github.com/bhackett1/OptSimple/internal/units"
)

// MaxScatterPoints caps the points drawn; larger runs are strided.
const MaxScatterPoints = 20000

// Scatter renders an x-y scatter of vertices coloured by z.
func Scatter(w io.Writer, runID string, vertices []store.Vertex) error {
	if len(vertices) == 0 {
		return ErrNoVertices
	}
	stride := 1
	if len(vertices) > MaxScatterPoints {
		stride = (len(vertices) + MaxScatterPoints - 1) / MaxScatterPoints
	}

	data := make([]opts.ScatterData, 0, len(vertices)/stride+1)
	var pad, minZ, maxZ float64
	minZ, maxZ = math.Inf(1), math.Inf(-1)
	for i := 0; i < len(vertices); i += stride {
		v := vertices[i]
		x, y, z := v.X/units.Centimeter, v.Y/units.Centimeter, v.Z/units.Centimeter
		pad = math.Max(pad, math.Max(math.Abs(x), math.Abs(y)))
		minZ, maxZ = math.Min(minZ, z), math.Max(maxZ, z)
		data = append(data, opts.ScatterData{Value: []interface{}{x, y, z}})
	}
	pad = math.Ceil(pad*1.05 + 1)

	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "Primary vertices", Width: "900px", Height: "900px"}),
		charts.WithTitleOpts(opts.Title{Title: "Primary vertices (x-y)", Subtitle: fmt.Sprintf("run=%s points=%d stride=%d", runID, len(data), stride)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Min: -pad, Max: pad, Name: "X (cm)", NameLocation: "middle", NameGap: 25}),
		charts.WithYAxisOpts(opts.YAxis{Min: -pad, Max: pad, Name: "Y (cm)", NameLocation: "middle", NameGap: 30}),
		charts.WithVisualMapOpts(opts.VisualMap{
			Show:       opts.Bool(true),
			Calculable: opts.Bool(true),
			Min:        float32(minZ),
			Max:        float32(maxZ),
			Dimension:  "2",
			InRange:    &opts.VisualMapInRange{Color: []string{"#440154", "#3e4989", "#26828e", "#35b779", "#fde725"}},
		}),
	)
	scatter.AddSeries("vertices", data, charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 3}))

	var buf bytes.Buffer
	if err := scatter.Render(&buf); err != nil {
		return fmt.Errorf("failed to render scatter: %w", err)
	}
	_, err := w.Write(buf.Bytes())
	return err
}

// WriteScatter renders Scatter into a file at path.
func WriteScatter(fsys fsutil.FileSystem, path, runID string, vertices []store.Vertex) error {
	f, err := fsys.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := Scatter(f, runID, vertices); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
