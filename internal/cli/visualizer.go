package cli

import (
	"context"

	pricer "github.com/jwaldner/optionpricer/pricer_lib"
	"github.com/jwaldner/optionpricer/internal/chart"
)

// Sweeper runs a strike sweep; *pricer.Engine and the perf wrapper both fit.
type Sweeper interface {
	SweepStrikes(ctx context.Context, base pricer.OptionParams) (*pricer.StrikeSweep, error)
}

// ChartVisualizer sweeps strikes on the engine and saves both PNG charts.
type ChartVisualizer struct {
	Engine     Sweeper
	Renderer   *chart.Renderer
	PricePath  string
	GreeksPath string
}

// Visualize implements Visualizer
func (v *ChartVisualizer) Visualize(ctx context.Context, params pricer.OptionParams) ([]string, error) {
	sweep, err := v.Engine.SweepStrikes(ctx, params)
	if err != nil {
		return nil, err
	}
	return v.Renderer.SaveCharts(sweep, v.PricePath, v.GreeksPath)
}
