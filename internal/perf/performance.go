// Package perf wraps the pricing engine with run timing statistics.
package perf

import (
	"context"
	"fmt"
	"sync"
	"time"

	pricer "github.com/jwaldner/optionpricer/pricer_lib"
	"github.com/jwaldner/optionpricer/internal/logger"
)

// SlowRunThreshold marks a batch or sweep as slow
const SlowRunThreshold = time.Second

// Stats is a snapshot of the wrapper counters
type Stats struct {
	Runs          int64
	Contracts     int64
	SlowRuns      int64
	TotalDuration time.Duration
}

// AverageDuration is the mean run time, zero before the first run
func (s Stats) AverageDuration() time.Duration {
	if s.Runs == 0 {
		return 0
	}
	return time.Duration(int64(s.TotalDuration) / s.Runs)
}

// PerformanceWrapper wraps the engine with performance monitoring.
// It is safe for concurrent use.
type PerformanceWrapper struct {
	engine *pricer.Engine

	mu    sync.Mutex
	stats Stats
}

// NewPerformanceWrapper creates a wrapper around an engine
func NewPerformanceWrapper(engine *pricer.Engine) *PerformanceWrapper {
	return &PerformanceWrapper{engine: engine}
}

// Engine returns the wrapped engine
func (pw *PerformanceWrapper) Engine() *pricer.Engine {
	return pw.engine
}

// CalculateBlackScholes wraps the engine batch with timing
func (pw *PerformanceWrapper) CalculateBlackScholes(ctx context.Context, contracts []pricer.OptionContract) ([]pricer.OptionContract, error) {
	start := time.Now()
	results, err := pw.engine.CalculateBlackScholes(ctx, contracts)
	duration := time.Since(start)

	if err == nil {
		pw.record(len(contracts), duration)
	}

	logger.Debug.Printf("⚡ ENGINE: CalculateBlackScholes(%d contracts) took %v", len(contracts), duration)
	if duration > SlowRunThreshold {
		logger.Warn.Printf("⚠️  SLOW ENGINE RUN: CalculateBlackScholes(%d contracts) took %v", len(contracts), duration)
	}
	return results, err
}

// SweepStrikes wraps the engine sweep with timing
func (pw *PerformanceWrapper) SweepStrikes(ctx context.Context, base pricer.OptionParams) (*pricer.StrikeSweep, error) {
	sweep, err := pw.engine.SweepStrikes(ctx, base)
	if err != nil {
		return nil, err
	}

	pw.record(len(sweep.Strikes), sweep.Duration)

	logger.Debug.Printf("⚡ ENGINE: SweepStrikes(%s S=%.2f, %d strikes) took %v", base.Type, base.Spot, len(sweep.Strikes), sweep.Duration)
	if sweep.Duration > SlowRunThreshold {
		logger.Warn.Printf("⚠️  SLOW ENGINE RUN: SweepStrikes(%d strikes) took %v", len(sweep.Strikes), sweep.Duration)
	}
	return sweep, nil
}

func (pw *PerformanceWrapper) record(contracts int, duration time.Duration) {
	pw.mu.Lock()
	defer pw.mu.Unlock()

	pw.stats.Runs++
	pw.stats.Contracts += int64(contracts)
	pw.stats.TotalDuration += duration
	if duration > SlowRunThreshold {
		pw.stats.SlowRuns++
	}
}

// Stats returns a snapshot of the counters
func (pw *PerformanceWrapper) Stats() Stats {
	pw.mu.Lock()
	defer pw.mu.Unlock()
	return pw.stats
}

// GetPerformanceStats returns current performance statistics
func (pw *PerformanceWrapper) GetPerformanceStats() string {
	s := pw.Stats()
	return fmt.Sprintf(`
📊 Engine Performance Stats
===========================
Execution Mode:    %s (%d workers)
Total Runs:        %d
Contracts Priced:  %d
Average Duration:  %v
Total Time:        %v
Slow Runs:         %d (>%v)
`,
		pw.engine.ExecutionMode(), pw.engine.Workers(),
		s.Runs,
		s.Contracts,
		s.AverageDuration(),
		s.TotalDuration,
		s.SlowRuns, SlowRunThreshold,
	)
}

// Close logs a final report when anything ran
func (pw *PerformanceWrapper) Close() {
	if pw.Stats().Runs > 0 {
		logger.Info.Printf("📊 Engine Performance Report:%s", pw.GetPerformanceStats())
	}
}
