package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	pricer "github.com/jwaldner/optionpricer/pricer_lib"
	"github.com/jwaldner/optionpricer/internal/chart"
	"github.com/jwaldner/optionpricer/internal/config"
	"github.com/jwaldner/optionpricer/internal/handlers"
	"github.com/jwaldner/optionpricer/internal/logger"
	"github.com/jwaldner/optionpricer/internal/perf"
	"github.com/jwaldner/optionpricer/internal/services"
)

func main() {
	cfg := config.Load()

	if err := logger.InitWithConfig(cfg.Logging.LogLevel, cfg.Logging.LogFile); err != nil {
		log.Fatalf("Failed to initialize logging: %v", err)
	}
	logger.Always.Printf("🚀 Option Pricing Engine starting - Port: %s", cfg.Port)

	if cfg.Logging.LogLevel == "verbose" {
		fmt.Printf("⚠️  VERBOSE LOGGING ENABLED - every calculation will be logged to %s\n", cfg.Logging.LogFile)
	}

	engine := pricer.NewEngineForced(cfg.Engine.ExecutionMode, cfg.Engine.Workers)
	logger.Always.Printf("🔧 EXECUTION MODE: %s (%d workers)", engine.ExecutionMode(), engine.Workers())

	monitored := perf.NewPerformanceWrapper(engine)

	renderer := chart.NewRenderer(cfg.Charts.WidthInches, cfg.Charts.HeightInches)
	pricingHandler := handlers.NewPricingHandler(monitored, services.NewRequestService(), renderer)

	r := handlers.NewRouter(pricingHandler)

	fmt.Printf("🌐 Server starting on http://localhost:%s\n", cfg.Port)
	logger.Always.Printf("🌐 Server starting on http://localhost:%s", cfg.Port)

	srv := &http.Server{Addr: "0.0.0.0:" + cfg.Port, Handler: r}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error.Printf("❌ Shutdown failed: %v", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal("Server failed to start:", err)
	}

	monitored.Close()
	logger.Always.Printf("👋 Server stopped")
}
