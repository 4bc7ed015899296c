package pricer

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

var (
	// ErrInvalidOptionType is returned when an option type is neither Call nor Put.
	ErrInvalidOptionType = errors.New("option type must be 'call' or 'put'")
	// ErrInvalidParameter is returned when a market input breaks its invariant.
	ErrInvalidParameter = errors.New("invalid parameter")
	// ErrEmptySweep is returned when a strike sweep would contain no positive strike.
	ErrEmptySweep = errors.New("strike sweep range is empty")
)

// OptionType selects the payoff. Only Call and Put are valid.
type OptionType byte

const (
	Call OptionType = 'C'
	Put  OptionType = 'P'
)

// ParseOptionType accepts "call", "put", "c" or "p" in any case.
func ParseOptionType(s string) (OptionType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "call", "c":
		return Call, nil
	case "put", "p":
		return Put, nil
	default:
		return 0, fmt.Errorf("%w: got %q", ErrInvalidOptionType, s)
	}
}

// Valid reports whether t is one of the two option types.
func (t OptionType) Valid() bool {
	return t == Call || t == Put
}

func (t OptionType) String() string {
	switch t {
	case Call:
		return "call"
	case Put:
		return "put"
	default:
		return fmt.Sprintf("OptionType(%d)", byte(t))
	}
}

// Title returns "Call" or "Put" for display.
func (t OptionType) Title() string {
	switch t {
	case Call:
		return "Call"
	case Put:
		return "Put"
	default:
		return t.String()
	}
}

// ParamError names the input that failed validation. Value is nil when the
// input was missing or unparsable.
type ParamError struct {
	Field  string
	Value  any
	Reason string
}

func (e *ParamError) Error() string {
	if e.Value == nil {
		return fmt.Sprintf("%s %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("%s %s (got %v)", e.Field, e.Reason, e.Value)
}

func (e *ParamError) Unwrap() error {
	return ErrInvalidParameter
}

// OptionParams is the full set of Black-Scholes inputs for one contract.
type OptionParams struct {
	Spot       float64 // S
	Strike     float64 // K
	Maturity   float64 // T, years
	Rate       float64 // r, annualised, may be zero or negative
	Volatility float64 // sigma, annualised
	Type       OptionType
}

// Validate checks the positivity invariants and the option type.
// It is the boundary check callers run before handing params to the engine.
func (p OptionParams) Validate() error {
	if !p.Type.Valid() {
		return fmt.Errorf("%w: got %v", ErrInvalidOptionType, p.Type)
	}
	if err := p.validateMarket(); err != nil {
		return err
	}
	return positive("strike", p.Strike)
}

// validateMarket checks everything except the strike, which a sweep varies.
func (p OptionParams) validateMarket() error {
	if err := positive("spot", p.Spot); err != nil {
		return err
	}
	if err := positive("maturity", p.Maturity); err != nil {
		return err
	}
	if err := positive("volatility", p.Volatility); err != nil {
		return err
	}
	if math.IsNaN(p.Rate) || math.IsInf(p.Rate, 0) {
		return &ParamError{Field: "rate", Value: p.Rate, Reason: "must be a finite number"}
	}
	return nil
}

func positive(field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return &ParamError{Field: field, Value: v, Reason: "must be a finite number"}
	}
	if v <= 0 {
		return &ParamError{Field: field, Value: v, Reason: "must be greater than zero"}
	}
	return nil
}

// GreekNames is the fixed display order of the Greeks.
var GreekNames = []string{"Delta", "Gamma", "Vega", "Theta", "Rho"}

// Greeks holds the five sensitivities. Vega and Rho are per 1 percentage
// point, Theta is per calendar day.
type Greeks struct {
	Delta float64
	Gamma float64
	Vega  float64
	Theta float64
	Rho   float64
}

// Map returns the Greeks keyed by name. It always has exactly five entries.
func (g Greeks) Map() map[string]float64 {
	return map[string]float64{
		"Delta": g.Delta,
		"Gamma": g.Gamma,
		"Vega":  g.Vega,
		"Theta": g.Theta,
		"Rho":   g.Rho,
	}
}

// Quote is a validated price together with its Greeks.
type Quote struct {
	Params OptionParams
	Price  float64
	Greeks Greeks
}

// OptionContract is the unit of work for batch calculations.
type OptionContract struct {
	Symbol           string
	StrikePrice      float64
	UnderlyingPrice  float64
	TimeToExpiration float64
	RiskFreeRate     float64
	Volatility       float64
	OptionType       OptionType

	// Output Greeks
	Delta            float64
	Gamma            float64
	Theta            float64
	Vega             float64
	Rho              float64
	TheoreticalPrice float64
}

// Params extracts the pricing inputs of the contract.
func (c OptionContract) Params() OptionParams {
	return OptionParams{
		Spot:       c.UnderlyingPrice,
		Strike:     c.StrikePrice,
		Maturity:   c.TimeToExpiration,
		Rate:       c.RiskFreeRate,
		Volatility: c.Volatility,
		Type:       c.OptionType,
	}
}
