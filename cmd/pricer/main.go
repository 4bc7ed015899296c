package main

import (
	"context"
	"log"
	"os"

	pricer "github.com/jwaldner/optionpricer/pricer_lib"
	"github.com/jwaldner/optionpricer/internal/chart"
	"github.com/jwaldner/optionpricer/internal/cli"
	"github.com/jwaldner/optionpricer/internal/config"
	"github.com/jwaldner/optionpricer/internal/logger"
	"github.com/jwaldner/optionpricer/internal/perf"
)

func main() {
	cfg := config.Load()

	// Only errors reach the terminal alongside the menu; the rest goes to the log file.
	if err := logger.InitWithConfig(cfg.Logging.LogLevel, cfg.Logging.LogFile); err != nil {
		log.Fatalf("Failed to initialize logging: %v", err)
	}

	engine := pricer.NewEngineForced(cfg.Engine.ExecutionMode, cfg.Engine.Workers)
	logger.Info.Printf("🚀 Interactive pricer started | mode %s | %d workers", engine.ExecutionMode(), engine.Workers())

	monitored := perf.NewPerformanceWrapper(engine)

	viz := &cli.ChartVisualizer{
		Engine:     monitored,
		Renderer:   chart.NewRenderer(cfg.Charts.WidthInches, cfg.Charts.HeightInches),
		PricePath:  cfg.Charts.PricePath(),
		GreeksPath: cfg.Charts.GreeksPath(),
	}

	err := cli.NewMenu(os.Stdin, os.Stdout, viz).Run(context.Background())
	monitored.Close()
	if err != nil {
		logger.Error.Printf("❌ Menu stopped: %v", err)
		os.Exit(1)
	}
}
