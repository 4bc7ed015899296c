package pricer

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// ExecutionMode defines how batch calculations are performed
type ExecutionMode string

const (
	ExecutionModeAuto       ExecutionMode = "auto"
	ExecutionModeParallel   ExecutionMode = "parallel"
	ExecutionModeSequential ExecutionMode = "sequential"
)

// parallelThreshold is the batch size below which auto mode stays sequential.
const parallelThreshold = 64

// Engine runs the closed-form calculations over batches of contracts.
// It holds no per-call state and is safe for concurrent use.
type Engine struct {
	executionMode ExecutionMode
	workers       int
}

// NewEngine creates an engine in auto mode with one worker per CPU
func NewEngine() *Engine {
	return &Engine{
		executionMode: ExecutionModeAuto,
		workers:       runtime.NumCPU(),
	}
}

// NewEngineForced creates engine with forced execution mode and worker count.
// Unknown modes fall back to auto; workers <= 0 means one per CPU.
func NewEngineForced(mode string, workers int) *Engine {
	e := NewEngine()

	switch ExecutionMode(mode) {
	case ExecutionModeParallel:
		e.executionMode = ExecutionModeParallel
	case ExecutionModeSequential:
		e.executionMode = ExecutionModeSequential
	default:
		e.executionMode = ExecutionModeAuto
	}
	if workers > 0 {
		e.workers = workers
	}

	return e
}

// ExecutionMode returns the configured mode
func (e *Engine) ExecutionMode() ExecutionMode {
	return e.executionMode
}

// Workers returns the parallel worker limit
func (e *Engine) Workers() int {
	return e.workers
}

// modeFor resolves auto mode for a batch of n contracts
func (e *Engine) modeFor(n int) ExecutionMode {
	if e.executionMode != ExecutionModeAuto {
		return e.executionMode
	}
	if n >= parallelThreshold && e.workers > 1 {
		return ExecutionModeParallel
	}
	return ExecutionModeSequential
}

// CalculateBlackScholes prices every contract and fills in its Greeks.
// The input slice is not modified. The first failing contract aborts the
// batch and its index is reported in the error.
func (e *Engine) CalculateBlackScholes(ctx context.Context, contracts []OptionContract) ([]OptionContract, error) {
	if len(contracts) == 0 {
		return contracts, nil
	}

	results := make([]OptionContract, len(contracts))
	copy(results, contracts)

	if e.modeFor(len(contracts)) == ExecutionModeSequential {
		for i := range results {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			if err := calculateContract(&results[i]); err != nil {
				return nil, fmt.Errorf("contract %d (%s): %w", i, results[i].Symbol, err)
			}
		}
		return results, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)
	for i := range results {
		if gctx.Err() != nil {
			break
		}
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if err := calculateContract(&results[i]); err != nil {
				return fmt.Errorf("contract %d (%s): %w", i, results[i].Symbol, err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	// errgroup only reports goroutine errors; a parent cancelled before
	// any work started still has to surface.
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return results, nil
}

func calculateContract(c *OptionContract) error {
	p := c.Params()
	price, err := Price(p)
	if err != nil {
		return err
	}
	greeks, err := CalculateGreeks(p)
	if err != nil {
		return err
	}
	c.TheoreticalPrice = price
	c.Delta = greeks.Delta
	c.Gamma = greeks.Gamma
	c.Theta = greeks.Theta
	c.Vega = greeks.Vega
	c.Rho = greeks.Rho
	return nil
}
