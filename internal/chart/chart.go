// Package chart renders strike sweeps as PNG charts.
package chart

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	pricer "github.com/jwaldner/optionpricer/pricer_lib"
	"github.com/jwaldner/optionpricer/internal/logger"
)

const (
	gridRows = 3
	gridCols = 2
)

// Renderer draws the price and Greeks charts for a sweep.
type Renderer struct {
	Width  vg.Length
	Height vg.Length
}

// NewRenderer sizes the price chart; the Greeks grid is drawn 20% wider and
// a third taller so five panels stay readable.
func NewRenderer(widthInches, heightInches float64) *Renderer {
	if widthInches <= 0 {
		widthInches = 10
	}
	if heightInches <= 0 {
		heightInches = 6
	}
	return &Renderer{
		Width:  vg.Length(widthInches) * vg.Inch,
		Height: vg.Length(heightInches) * vg.Inch,
	}
}

func (r *Renderer) greeksSize() (vg.Length, vg.Length) {
	return r.Width * 1.2, r.Height * 4 / 3
}

// WritePriceChart writes the option price against strike as PNG.
func (r *Renderer) WritePriceChart(w io.Writer, s *pricer.StrikeSweep) error {
	label := s.Base.Type.Title()

	p := plot.New()
	p.Title.Text = fmt.Sprintf("Black-Scholes %s Price v Strike", label)
	p.X.Label.Text = "Strike Price (K)"
	p.Y.Label.Text = "Option Price"

	line, err := plotter.NewLine(series(s.Strikes, s.Prices))
	if err != nil {
		return fmt.Errorf("price line: %w", err)
	}
	line.Color = plotutil.Color(0)

	p.Add(plotter.NewGrid(), line)
	p.Legend.Add(fmt.Sprintf("%s Option Price", label), line)
	p.Legend.Top = true

	wt, err := p.WriterTo(r.Width, r.Height, "png")
	if err != nil {
		return fmt.Errorf("price chart: %w", err)
	}
	_, err = wt.WriteTo(w)
	return err
}

// WriteGreeksChart writes one panel per Greek in a 3x2 grid as PNG.
func (r *Renderer) WriteGreeksChart(w io.Writer, s *pricer.StrikeSweep) error {
	plots := make([][]*plot.Plot, gridRows)
	for i := range plots {
		plots[i] = make([]*plot.Plot, gridCols)
	}

	for i, name := range pricer.GreekNames {
		p := plot.New()
		p.Title.Text = fmt.Sprintf("%s vs Strike Price", name)
		p.X.Label.Text = "Strike Price (K)"
		p.Y.Label.Text = name

		line, err := plotter.NewLine(series(s.Strikes, s.Series(name)))
		if err != nil {
			return fmt.Errorf("%s line: %w", name, err)
		}
		line.Color = plotutil.Color(i)

		p.Add(plotter.NewGrid(), line)
		p.Legend.Add(name, line)
		p.Legend.Top = true

		plots[i/gridCols][i%gridCols] = p
	}

	width, height := r.greeksSize()
	img := vgimg.New(width, height)
	dc := draw.New(img)

	tiles := draw.Tiles{
		Rows:      gridRows,
		Cols:      gridCols,
		PadX:      vg.Millimeter * 4,
		PadY:      vg.Millimeter * 4,
		PadTop:    vg.Millimeter * 2,
		PadBottom: vg.Millimeter * 2,
		PadLeft:   vg.Millimeter * 2,
		PadRight:  vg.Millimeter * 2,
	}

	canvases := plot.Align(plots, tiles, dc)
	for row := range plots {
		for col := range plots[row] {
			if plots[row][col] != nil {
				plots[row][col].Draw(canvases[row][col])
			}
		}
	}

	png := vgimg.PngCanvas{Canvas: img}
	_, err := png.WriteTo(w)
	return err
}

// SaveCharts writes both charts, creating parent directories as needed.
// It returns the paths written.
func (r *Renderer) SaveCharts(s *pricer.StrikeSweep, pricePath, greeksPath string) ([]string, error) {
	start := time.Now()

	if err := writeFile(pricePath, func(w io.Writer) error { return r.WritePriceChart(w, s) }); err != nil {
		return nil, err
	}
	if err := writeFile(greeksPath, func(w io.Writer) error { return r.WriteGreeksChart(w, s) }); err != nil {
		return nil, err
	}

	logger.Info.Printf("📊 CHARTS: %d strikes → %s, %s in %v", len(s.Strikes), pricePath, greeksPath, time.Since(start))
	return []string{pricePath, greeksPath}, nil
}

func writeFile(path string, render func(io.Writer) error) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := render(f); err != nil {
		f.Close()
		return fmt.Errorf("rendering %s: %w", path, err)
	}
	return f.Close()
}

func series(xs, ys []float64) plotter.XYs {
	pts := make(plotter.XYs, len(xs))
	for i := range xs {
		pts[i].X = xs[i]
		pts[i].Y = ys[i]
	}
	return pts
}
