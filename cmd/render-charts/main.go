package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	pricer "github.com/jwaldner/optionpricer/pricer_lib"
	"github.com/jwaldner/optionpricer/internal/chart"
	"github.com/jwaldner/optionpricer/internal/config"
	"github.com/jwaldner/optionpricer/internal/logger"
)

type chartFlags struct {
	spot       float64
	maturity   float64
	rate       float64
	volatility float64
	optionType string
	out        string
}

func newRootCmd() *cobra.Command {
	cfg := config.Load()
	flags := chartFlags{out: cfg.Charts.OutputDir}

	cmd := &cobra.Command{
		Use:   "render-charts",
		Short: "Render price and Greeks vs strike charts",
		Long: `render-charts sweeps integer strikes from half to one and a half times the
spot price and writes two PNG charts: the option price against strike and a
grid with one panel per Greek.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), cfg, flags)
		},
	}

	f := cmd.Flags()
	f.Float64Var(&flags.spot, "spot", 100, "current stock price (S)")
	f.Float64Var(&flags.maturity, "maturity", 1, "time to maturity in years (T)")
	f.Float64Var(&flags.rate, "rate", 0.05, "risk-free rate as a decimal (r)")
	f.Float64Var(&flags.volatility, "volatility", 0.2, "volatility as a decimal (σ)")
	f.StringVar(&flags.optionType, "type", "call", "option type: call or put")
	f.StringVar(&flags.out, "out", flags.out, "output directory")
	return cmd
}

func run(ctx context.Context, cfg *config.Config, f chartFlags) error {
	optionType, err := pricer.ParseOptionType(f.optionType)
	if err != nil {
		return err
	}
	base := pricer.OptionParams{
		Spot:       f.spot,
		Strike:     f.spot,
		Maturity:   f.maturity,
		Rate:       f.rate,
		Volatility: f.volatility,
		Type:       optionType,
	}
	if err := base.Validate(); err != nil {
		return err
	}

	engine := pricer.NewEngineForced(cfg.Engine.ExecutionMode, cfg.Engine.Workers)
	sweep, err := engine.SweepStrikes(ctx, base)
	if err != nil {
		return err
	}

	renderer := chart.NewRenderer(cfg.Charts.WidthInches, cfg.Charts.HeightInches)
	paths, err := renderer.SaveCharts(sweep,
		filepath.Join(f.out, cfg.Charts.PriceFile),
		filepath.Join(f.out, cfg.Charts.GreeksFile))
	if err != nil {
		return err
	}

	fmt.Printf("📊 %d strikes swept in %v\n", len(sweep.Strikes), sweep.Duration)
	for _, p := range paths {
		fmt.Printf("   %s\n", p)
	}
	return nil
}

func main() {
	logger.InitWithWriter("warn", os.Stderr)

	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
