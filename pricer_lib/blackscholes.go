package pricer

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

const (
	daysPerYear  = 365.0
	percentPoint = 100.0
)

// terms are the standardized log-moneyness values shared by Price and
// CalculateGreeks.
type terms struct {
	d1, d2   float64
	sqrtT    float64
	discount float64 // exp(-rT)
}

// moneyness computes d1 and d2. It only refuses inputs that would make them
// undefined; the positivity invariants are enforced by Validate.
func moneyness(p OptionParams) (terms, error) {
	for _, v := range []struct {
		name  string
		value float64
	}{
		{"spot", p.Spot}, {"strike", p.Strike}, {"maturity", p.Maturity},
		{"rate", p.Rate}, {"volatility", p.Volatility},
	} {
		if math.IsNaN(v.value) || math.IsInf(v.value, 0) {
			return terms{}, &ParamError{Field: v.name, Value: v.value, Reason: "must be a finite number"}
		}
	}

	ratio := p.Spot / p.Strike
	if !(ratio > 0) || math.IsInf(ratio, 0) {
		return terms{}, &ParamError{Field: "spot/strike", Value: ratio, Reason: "must be a positive finite ratio"}
	}
	if p.Maturity <= 0 {
		return terms{}, &ParamError{Field: "maturity", Value: p.Maturity, Reason: "must be greater than zero"}
	}

	sqrtT := math.Sqrt(p.Maturity)
	volT := p.Volatility * sqrtT
	if !(volT > 0) {
		return terms{}, &ParamError{Field: "volatility", Value: p.Volatility, Reason: "must be greater than zero"}
	}

	d1 := (math.Log(ratio) + (p.Rate+0.5*p.Volatility*p.Volatility)*p.Maturity) / volT
	return terms{
		d1:       d1,
		d2:       d1 - volT,
		sqrtT:    sqrtT,
		discount: math.Exp(-p.Rate * p.Maturity),
	}, nil
}

func cdf(x float64) float64 { return distuv.UnitNormal.CDF(x) }

func pdf(x float64) float64 { return distuv.UnitNormal.Prob(x) }

func checkType(t OptionType) error {
	if !t.Valid() {
		return fmt.Errorf("%w: got %v", ErrInvalidOptionType, t)
	}
	return nil
}

// Price returns the Black-Scholes value of a European option.
//
// The result may be zero or marginally negative for deep out-of-the-money
// contracts; that is floating-point rounding, not an error.
func Price(p OptionParams) (float64, error) {
	if err := checkType(p.Type); err != nil {
		return 0, err
	}
	t, err := moneyness(p)
	if err != nil {
		return 0, err
	}

	switch p.Type {
	case Call:
		return p.Spot*cdf(t.d1) - p.Strike*t.discount*cdf(t.d2), nil
	case Put:
		return p.Strike*t.discount*cdf(-t.d2) - p.Spot*cdf(-t.d1), nil
	default:
		return 0, fmt.Errorf("%w: got %v", ErrInvalidOptionType, p.Type)
	}
}

// CalculateGreeks returns Delta, Gamma, Vega, Theta and Rho for p.
func CalculateGreeks(p OptionParams) (Greeks, error) {
	if err := checkType(p.Type); err != nil {
		return Greeks{}, err
	}
	t, err := moneyness(p)
	if err != nil {
		return Greeks{}, err
	}

	S, K, r, sigma := p.Spot, p.Strike, p.Rate, p.Volatility
	nd1 := pdf(t.d1)

	g := Greeks{
		Gamma: nd1 / (S * sigma * t.sqrtT),
		Vega:  S * nd1 * t.sqrtT / percentPoint,
	}
	decay := -S * nd1 * sigma / (2 * t.sqrtT)

	switch p.Type {
	case Call:
		g.Delta = cdf(t.d1)
		g.Theta = (decay - r*K*t.discount*cdf(t.d2)) / daysPerYear
		g.Rho = K * p.Maturity * t.discount * cdf(t.d2) / percentPoint
	case Put:
		g.Delta = cdf(t.d1) - 1
		g.Theta = (decay + r*K*t.discount*cdf(-t.d2)) / daysPerYear
		g.Rho = -K * p.Maturity * t.discount * cdf(-t.d2) / percentPoint
	default:
		return Greeks{}, fmt.Errorf("%w: got %v", ErrInvalidOptionType, p.Type)
	}
	return g, nil
}

// QuoteOption validates p and returns its price and Greeks.
func QuoteOption(p OptionParams) (Quote, error) {
	if err := p.Validate(); err != nil {
		return Quote{}, err
	}
	price, err := Price(p)
	if err != nil {
		return Quote{}, err
	}
	greeks, err := CalculateGreeks(p)
	if err != nil {
		return Quote{}, err
	}
	return Quote{Params: p, Price: price, Greeks: greeks}, nil
}
