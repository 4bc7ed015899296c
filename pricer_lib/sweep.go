package pricer

import (
	"context"
	"fmt"
	"math"
	"time"
)

// StrikeSweep holds prices and Greeks over a range of strikes with every
// other input fixed. All slices are parallel to Strikes.
type StrikeSweep struct {
	Base     OptionParams
	Strikes  []float64
	Prices   []float64
	Greeks   map[string][]float64
	Duration time.Duration
}

// Series returns the values for a greek name, or the prices for "Price".
func (s *StrikeSweep) Series(name string) []float64 {
	if name == "Price" {
		return s.Prices
	}
	return s.Greeks[name]
}

// MaxSweepPoints bounds the number of strikes in one sweep.
const MaxSweepPoints = 100000

// SweepSize returns how many strikes StrikeRange(spot) would produce, or a
// ParamError when that exceeds MaxSweepPoints.
func SweepSize(spot float64) (int, error) {
	if math.IsNaN(spot) || math.IsInf(spot, 0) {
		return 0, &ParamError{Field: "spot", Value: spot, Reason: "must be a finite number"}
	}
	lo, hi := sweepBounds(spot)
	if hi <= lo {
		return 0, nil
	}
	if hi-lo > MaxSweepPoints {
		return 0, &ParamError{Field: "spot", Value: spot, Reason: fmt.Sprintf("gives more than %d sweep strikes", MaxSweepPoints)}
	}
	return int(hi - lo), nil
}

func sweepBounds(spot float64) (lo, hi float64) {
	lo = math.Floor(0.5 * spot)
	hi = math.Ceil(1.5 * spot)
	if lo < 1 {
		lo = 1
	}
	return lo, hi
}

// StrikeRange returns the integer strikes in [floor(0.5*spot), ceil(1.5*spot)),
// dropping any that are not positive. Spots whose range exceeds
// MaxSweepPoints are refused.
func StrikeRange(spot float64) ([]float64, error) {
	n, err := SweepSize(spot)
	if err != nil {
		return nil, err
	}

	lo, _ := sweepBounds(spot)
	strikes := make([]float64, n)
	for i := range strikes {
		strikes[i] = lo + float64(i)
	}
	return strikes, nil
}

// SweepStrikes evaluates base at every strike of StrikeRange(base.Spot).
// base.Strike is ignored.
func (e *Engine) SweepStrikes(ctx context.Context, base OptionParams) (*StrikeSweep, error) {
	if !base.Type.Valid() {
		return nil, fmt.Errorf("%w: got %v", ErrInvalidOptionType, base.Type)
	}
	if err := base.validateMarket(); err != nil {
		return nil, err
	}

	strikes, err := StrikeRange(base.Spot)
	if err != nil {
		return nil, err
	}
	if len(strikes) == 0 {
		return nil, fmt.Errorf("%w: spot %v", ErrEmptySweep, base.Spot)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := time.Now()

	contracts := make([]OptionContract, len(strikes))
	for i, k := range strikes {
		contracts[i] = OptionContract{
			Symbol:           fmt.Sprintf("K%.0f", k),
			StrikePrice:      k,
			UnderlyingPrice:  base.Spot,
			TimeToExpiration: base.Maturity,
			RiskFreeRate:     base.Rate,
			Volatility:       base.Volatility,
			OptionType:       base.Type,
		}
	}

	results, err := e.CalculateBlackScholes(ctx, contracts)
	if err != nil {
		return nil, err
	}

	sweep := &StrikeSweep{
		Base:    base,
		Strikes: strikes,
		Prices:  make([]float64, len(results)),
		Greeks:  make(map[string][]float64, len(GreekNames)),
	}
	for _, name := range GreekNames {
		sweep.Greeks[name] = make([]float64, len(results))
	}
	for i, c := range results {
		sweep.Prices[i] = c.TheoreticalPrice
		sweep.Greeks["Delta"][i] = c.Delta
		sweep.Greeks["Gamma"][i] = c.Gamma
		sweep.Greeks["Vega"][i] = c.Vega
		sweep.Greeks["Theta"][i] = c.Theta
		sweep.Greeks["Rho"][i] = c.Rho
	}
	sweep.Duration = time.Since(start)

	return sweep, nil
}
