// Package chart draws report results as PNG images.
package chart

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"

	gochart "github.com/wcharczuk/go-chart/v2"

	"github.com/okian/iplstats/internal/domain/report"
)

const (
	defaultOutputDir = "."
	defaultWidth     = 1200
	defaultHeight    = 700

	// horizontal room kept free of bars for the y axis and margins.
	axisMargin = 160
	topPadding = 50

	// NotAvailable labels a scalar that has no value.
	NotAvailable = "n/a"
)

// renderable is satisfied by every go-chart chart type.
type renderable interface {
	Render(rp gochart.RendererProvider, w io.Writer) error
}

// Renderer writes one PNG file per published result.
type Renderer struct {
	outputDir string
	width     int
	height    int
}

// New creates a renderer.
func New(opts ...Option) *Renderer {
	r := &Renderer{
		outputDir: defaultOutputDir,
		width:     defaultWidth,
		height:    defaultHeight,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Path returns the file a report is written to.
func (r *Renderer) Path(def report.Definition) string {
	return filepath.Join(r.outputDir, def.OutputName+".png")
}

// Publish renders res and writes it to Path(def), replacing any earlier file.
// It returns the written path.
func (r *Renderer) Publish(ctx context.Context, def report.Definition, res report.Result) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if def.OutputName == "" {
		return "", fmt.Errorf("%w: report %d has no output name", ErrRender, int(def.ID))
	}

	var buf bytes.Buffer
	if err := r.Render(def, res, &buf); err != nil {
		return "", err
	}

	path := r.Path(def)
	if err := writeFile(path, buf.Bytes()); err != nil {
		return "", fmt.Errorf("%w: %s: %w", ErrRender, path, err)
	}
	return path, nil
}

// Render draws res as PNG into w.
func (r *Renderer) Render(def report.Definition, res report.Result, w io.Writer) error {
	if res == nil || res.Empty() {
		return fmt.Errorf("%w: %s", ErrEmptyResult, def.OutputName)
	}

	graph, err := r.build(def, res)
	if err != nil {
		return err
	}
	if err := graph.Render(gochart.PNG, w); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrRender, def.OutputName, err)
	}
	return nil
}

func (r *Renderer) build(def report.Definition, res report.Result) (renderable, error) {
	switch v := res.(type) {
	case report.LabeledCounts:
		if def.Chart == report.ChartPie {
			return r.pie(def, v.Entries)
		}
		return r.bars(def, toValues(v.Entries), false), nil
	case report.ScalarPair:
		return r.bars(def, scalarValues(v), false), nil
	case report.GroupedTrend:
		return r.lines(def, v), nil
	case report.Distribution:
		return r.bars(def, binValues(v.Bins), true), nil
	default:
		return nil, fmt.Errorf("%w: unsupported result %T", ErrRender, res)
	}
}

func (r *Renderer) bars(def report.Definition, values []gochart.Value, contiguous bool) gochart.BarChart {
	spacing, width := r.barGeometry(len(values), contiguous)
	return gochart.BarChart{
		Title:      def.Title,
		Width:      r.width,
		Height:     r.height,
		Background: gochart.Style{Padding: gochart.Box{Top: topPadding}},
		BarWidth:   width,
		BarSpacing: spacing,
		YAxis: gochart.YAxis{
			Name:  def.YLabel,
			Range: &gochart.ContinuousRange{Min: 0, Max: ceiling(values)},
		},
		Bars: values,
	}
}

// barGeometry splits the usable width across n bars. Histogram bars sit
// next to each other with a one pixel gap.
func (r *Renderer) barGeometry(n int, contiguous bool) (spacing, width int) {
	slot := max((r.width-axisMargin)/max(n, 1), 4)
	if contiguous {
		return 1, max(slot-1, 2)
	}
	spacing = max(slot/4, 1)
	return spacing, max(slot-spacing, 2)
}

func (r *Renderer) pie(def report.Definition, entries []report.Entry) (gochart.PieChart, error) {
	values := make([]gochart.Value, 0, len(entries))
	for _, e := range entries {
		if e.Value <= 0 || !finite(e.Value) {
			continue
		}
		values = append(values, gochart.Value{
			Value: e.Value,
			Label: fmt.Sprintf("%s (%s)", e.Label, formatNumber(e.Value)),
		})
	}
	if len(values) == 0 {
		return gochart.PieChart{}, fmt.Errorf("%w: %s has no positive slices", ErrEmptyResult, def.OutputName)
	}
	return gochart.PieChart{
		Title:  def.Title,
		Width:  r.width,
		Height: r.height,
		Values: values,
	}, nil
}

func (r *Renderer) lines(def report.Definition, trend report.GroupedTrend) gochart.Chart {
	xs := make([]float64, len(trend.Rows))
	ticks := make([]gochart.Tick, len(trend.Rows))
	for i, row := range trend.Rows {
		xs[i] = float64(i)
		ticks[i] = gochart.Tick{Value: float64(i), Label: row}
	}

	series := make([]gochart.Series, len(trend.Columns))
	top := 0.0
	for j, team := range trend.Columns {
		ys := trend.Column(j)
		for _, y := range ys {
			top = math.Max(top, y)
		}
		series[j] = gochart.ContinuousSeries{
			Name:    team,
			XValues: xs,
			YValues: ys,
		}
	}
	if top <= 0 {
		top = 1
	}

	graph := gochart.Chart{
		Title:      def.Title,
		Width:      r.width,
		Height:     r.height,
		Background: gochart.Style{Padding: gochart.Box{Top: topPadding, Left: 20}},
		XAxis: gochart.XAxis{
			Name:  def.XLabel,
			Range: &gochart.ContinuousRange{Min: -0.5, Max: float64(len(trend.Rows)) - 0.5},
			Ticks: ticks,
		},
		YAxis: gochart.YAxis{
			Name:  def.YLabel,
			Range: &gochart.ContinuousRange{Min: 0, Max: top * 1.1},
		},
		Series: series,
	}
	graph.Elements = []gochart.Renderable{gochart.Legend(&graph)}
	return graph
}

func toValues(entries []report.Entry) []gochart.Value {
	out := make([]gochart.Value, len(entries))
	for i, e := range entries {
		out[i] = gochart.Value{Value: e.Value, Label: e.Label}
	}
	return out
}

// scalarValues draws an absent scalar as a zero bar labeled n/a.
func scalarValues(p report.ScalarPair) []gochart.Value {
	out := make([]gochart.Value, 0, 2)
	for _, s := range []report.NamedScalar{p.First, p.Second} {
		v, ok := s.Value.Get()
		if !ok {
			out = append(out, gochart.Value{Value: 0, Label: fmt.Sprintf("%s (%s)", s.Name, NotAvailable)})
			continue
		}
		out = append(out, gochart.Value{Value: v, Label: fmt.Sprintf("%s (%s)", s.Name, formatNumber(v))})
	}
	return out
}

func binValues(bins []report.Bin) []gochart.Value {
	out := make([]gochart.Value, len(bins))
	for i, b := range bins {
		out[i] = gochart.Value{Value: float64(b.Count), Label: formatNumber(b.Lower)}
	}
	return out
}

// ceiling returns the y axis maximum: 10% above the tallest bar, at least 1.
func ceiling(values []gochart.Value) float64 {
	top := 0.0
	for _, v := range values {
		if finite(v.Value) {
			top = math.Max(top, v.Value)
		}
	}
	if top <= 0 {
		return 1
	}
	return top * 1.1
}

func formatNumber(v float64) string {
	if v == math.Trunc(v) {
		return fmt.Sprintf("%.0f", v)
	}
	return fmt.Sprintf("%.2f", v)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// writeFile replaces path with data. The handle is closed on every path.
func writeFile(path string, data []byte) (err error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, f.Close())
	}()
	_, err = f.Write(data)
	return err
}
