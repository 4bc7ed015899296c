package pricer

import (
	"errors"
	"math"
	"testing"
)

func referenceParams(t OptionType) OptionParams {
	return OptionParams{Spot: 100, Strike: 100, Maturity: 1, Rate: 0.05, Volatility: 0.2, Type: t}
}

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func TestPriceReferenceCase(t *testing.T) {
	call, err := Price(referenceParams(Call))
	if err != nil {
		t.Fatalf("call err: %v", err)
	}
	put, err := Price(referenceParams(Put))
	if err != nil {
		t.Fatalf("put err: %v", err)
	}

	if !almostEqual(call, 10.450583572185565, 1e-9) {
		t.Errorf("call price mismatch: got=%v", call)
	}
	if !almostEqual(put, 5.573526022256971, 1e-9) {
		t.Errorf("put price mismatch: got=%v", put)
	}
	t.Logf("✅ Call %.4f | Put %.4f", call, put)
}

func TestGreeksReferenceCase(t *testing.T) {
	tests := []struct {
		name string
		typ  OptionType
		want Greeks
	}{
		{"call", Call, Greeks{Delta: 0.6368, Gamma: 0.0188, Vega: 0.3752, Theta: -0.0176, Rho: 0.5323}},
		{"put", Put, Greeks{Delta: -0.3632, Gamma: 0.0188, Vega: 0.3752, Theta: -0.0045, Rho: -0.4189}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CalculateGreeks(referenceParams(tt.typ))
			if err != nil {
				t.Fatalf("CalculateGreeks: %v", err)
			}
			gotMap, wantMap := got.Map(), tt.want.Map()
			for _, name := range GreekNames {
				if !almostEqual(gotMap[name], wantMap[name], 5e-5) {
					t.Errorf("%s mismatch: got=%.6f want=%.4f", name, gotMap[name], wantMap[name])
				}
			}
		})
	}
}

func TestPutCallParity(t *testing.T) {
	cases := []OptionParams{
		{Spot: 100, Strike: 100, Maturity: 1, Rate: 0.05, Volatility: 0.2},
		{Spot: 50, Strike: 80, Maturity: 0.25, Rate: 0.01, Volatility: 0.45},
		{Spot: 250, Strike: 120, Maturity: 3, Rate: -0.005, Volatility: 0.1},
		{Spot: 10, Strike: 10.5, Maturity: 1.0 / 365.0, Rate: 0, Volatility: 0.9},
		{Spot: 188.36, Strike: 166, Maturity: 0.0575, Rate: 0.03983, Volatility: 0.3996},
	}

	for _, p := range cases {
		p.Type = Call
		call, err := Price(p)
		if err != nil {
			t.Fatalf("call %+v: %v", p, err)
		}
		p.Type = Put
		put, err := Price(p)
		if err != nil {
			t.Fatalf("put %+v: %v", p, err)
		}

		left := call - put
		right := p.Spot - p.Strike*math.Exp(-p.Rate*p.Maturity)
		tol := 1e-6 * math.Max(1, math.Max(math.Abs(left), p.Spot))
		if !almostEqual(left, right, tol) {
			t.Errorf("parity mismatch for %+v: left=%v right=%v", p, left, right)
		}
	}
}

func TestDeltaBoundsAndNonNegativeGammaVega(t *testing.T) {
	for _, spot := range []float64{20, 80, 100, 140, 400} {
		for _, vol := range []float64{0.05, 0.3, 1.2} {
			for _, typ := range []OptionType{Call, Put} {
				p := OptionParams{Spot: spot, Strike: 100, Maturity: 0.5, Rate: 0.03, Volatility: vol, Type: typ}
				g, err := CalculateGreeks(p)
				if err != nil {
					t.Fatalf("%+v: %v", p, err)
				}
				switch typ {
				case Call:
					if g.Delta < 0 || g.Delta > 1 {
						t.Errorf("call delta out of [0,1]: %v for %+v", g.Delta, p)
					}
				case Put:
					if g.Delta < -1 || g.Delta > 0 {
						t.Errorf("put delta out of [-1,0]: %v for %+v", g.Delta, p)
					}
				}
				if g.Gamma < 0 || g.Vega < 0 {
					t.Errorf("gamma/vega negative: gamma=%v vega=%v for %+v", g.Gamma, g.Vega, p)
				}
			}
		}
	}
}

func TestDeepMoneynessLimits(t *testing.T) {
	base := OptionParams{Spot: 100, Maturity: 1, Rate: 0.05, Volatility: 0.2}

	t.Run("strike to zero", func(t *testing.T) {
		p := base
		p.Strike = 1e-6

		p.Type = Call
		call, _ := Price(p)
		cg, _ := CalculateGreeks(p)
		if want := p.Spot - p.Strike*math.Exp(-p.Rate*p.Maturity); !almostEqual(call, want, 1e-9) {
			t.Errorf("call price: got=%v want=%v", call, want)
		}
		if !almostEqual(cg.Delta, 1, 1e-12) {
			t.Errorf("call delta: got=%v want=1", cg.Delta)
		}

		p.Type = Put
		put, _ := Price(p)
		pg, _ := CalculateGreeks(p)
		if !almostEqual(put, 0, 1e-12) {
			t.Errorf("put price: got=%v want=0", put)
		}
		if !almostEqual(pg.Delta, 0, 1e-12) {
			t.Errorf("put delta: got=%v want=0", pg.Delta)
		}
	})

	t.Run("strike to infinity", func(t *testing.T) {
		p := base
		p.Strike = 1e6

		p.Type = Call
		call, _ := Price(p)
		cg, _ := CalculateGreeks(p)
		if !almostEqual(call, 0, 1e-12) {
			t.Errorf("call price: got=%v want=0", call)
		}
		if !almostEqual(cg.Delta, 0, 1e-12) {
			t.Errorf("call delta: got=%v want=0", cg.Delta)
		}

		p.Type = Put
		put, _ := Price(p)
		pg, _ := CalculateGreeks(p)
		want := p.Strike*math.Exp(-p.Rate*p.Maturity) - p.Spot
		if !almostEqual(put, want, 1e-6*want) {
			t.Errorf("put price: got=%v want=%v", put, want)
		}
		if !almostEqual(pg.Delta, -1, 1e-12) {
			t.Errorf("put delta: got=%v want=-1", pg.Delta)
		}
	})
}

func TestAtTheMoneyZeroRateSymmetry(t *testing.T) {
	for _, p := range []OptionParams{
		{Spot: 100, Strike: 100, Maturity: 1, Volatility: 0.2},
		{Spot: 42.5, Strike: 42.5, Maturity: 0.1, Volatility: 0.65},
	} {
		p.Type = Call
		call, _ := Price(p)
		p.Type = Put
		put, _ := Price(p)
		if !almostEqual(call, put, 1e-12) {
			t.Errorf("ATM zero-rate call %v != put %v", call, put)
		}
	}
}

func TestInvalidOptionTypeRejected(t *testing.T) {
	p := referenceParams(OptionType('X'))

	price, err := Price(p)
	if !errors.Is(err, ErrInvalidOptionType) {
		t.Fatalf("Price: expected ErrInvalidOptionType, got %v", err)
	}
	if price != 0 {
		t.Errorf("Price returned a value with an error: %v", price)
	}

	g, err := CalculateGreeks(p)
	if !errors.Is(err, ErrInvalidOptionType) {
		t.Fatalf("CalculateGreeks: expected ErrInvalidOptionType, got %v", err)
	}
	if g != (Greeks{}) {
		t.Errorf("CalculateGreeks returned values with an error: %+v", g)
	}

	// type is checked before any numeric input
	p.Spot = -1
	if _, err := Price(p); !errors.Is(err, ErrInvalidOptionType) {
		t.Errorf("expected type error to win over bad spot, got %v", err)
	}
}

func TestEngineRefusesUndefinedTerms(t *testing.T) {
	cases := map[string]OptionParams{
		"negative spot":   {Spot: -100, Strike: 100, Maturity: 1, Rate: 0.05, Volatility: 0.2, Type: Call},
		"zero strike":     {Spot: 100, Strike: 0, Maturity: 1, Rate: 0.05, Volatility: 0.2, Type: Call},
		"zero maturity":   {Spot: 100, Strike: 100, Maturity: 0, Rate: 0.05, Volatility: 0.2, Type: Put},
		"zero vol":        {Spot: 100, Strike: 100, Maturity: 1, Rate: 0.05, Volatility: 0, Type: Put},
		"nan rate":        {Spot: 100, Strike: 100, Maturity: 1, Rate: math.NaN(), Volatility: 0.2, Type: Call},
		"infinite strike": {Spot: 100, Strike: math.Inf(1), Maturity: 1, Rate: 0.05, Volatility: 0.2, Type: Call},
	}

	for name, p := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := Price(p); !errors.Is(err, ErrInvalidParameter) {
				t.Errorf("Price: expected ErrInvalidParameter, got %v", err)
			}
			if _, err := CalculateGreeks(p); !errors.Is(err, ErrInvalidParameter) {
				t.Errorf("CalculateGreeks: expected ErrInvalidParameter, got %v", err)
			}
		})
	}
}

func TestGreeksShareMoneynessWithPrice(t *testing.T) {
	for _, p := range []OptionParams{
		referenceParams(Call),
		{Spot: 73.2, Strike: 91, Maturity: 0.37, Rate: 0.021, Volatility: 0.33, Type: Call},
	} {
		terms, err := moneyness(p)
		if err != nil {
			t.Fatalf("moneyness: %v", err)
		}
		g, err := CalculateGreeks(p)
		if err != nil {
			t.Fatalf("CalculateGreeks: %v", err)
		}
		if g.Delta != cdf(terms.d1) {
			t.Errorf("call delta %v != N(d1) %v", g.Delta, cdf(terms.d1))
		}

		price, _ := Price(p)
		want := p.Spot*cdf(terms.d1) - p.Strike*terms.discount*cdf(terms.d2)
		if !almostEqual(price, want, 1e-12) {
			t.Errorf("price %v not built from the same d1/d2 (%v)", price, want)
		}
	}
}

func TestNumericSaturationIsNotAnError(t *testing.T) {
	p := OptionParams{Spot: 100, Strike: 50, Maturity: 1e-6, Rate: 0.05, Volatility: 1e-4, Type: Call}
	g, err := CalculateGreeks(p)
	if err != nil {
		t.Fatalf("extreme but valid inputs should not fail: %v", err)
	}
	if g.Delta != 1 {
		t.Errorf("expected saturated delta 1, got %v", g.Delta)
	}
}

func TestValidate(t *testing.T) {
	valid := referenceParams(Call)
	if err := valid.Validate(); err != nil {
		t.Fatalf("reference params should validate: %v", err)
	}

	bad := valid
	bad.Volatility = -0.2
	err := bad.Validate()
	var pe *ParamError
	if !errors.As(err, &pe) || pe.Field != "volatility" {
		t.Fatalf("expected volatility ParamError, got %v", err)
	}
	if !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("ParamError should unwrap to ErrInvalidParameter")
	}

	bad = valid
	bad.Type = 0
	if err := bad.Validate(); !errors.Is(err, ErrInvalidOptionType) {
		t.Errorf("expected ErrInvalidOptionType, got %v", err)
	}
}

func TestParseOptionType(t *testing.T) {
	for in, want := range map[string]OptionType{"call": Call, " PUT ": Put, "c": Call, "P": Put} {
		got, err := ParseOptionType(in)
		if err != nil || got != want {
			t.Errorf("ParseOptionType(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
	if _, err := ParseOptionType("straddle"); !errors.Is(err, ErrInvalidOptionType) {
		t.Errorf("expected ErrInvalidOptionType, got %v", err)
	}
}

func TestQuoteOption(t *testing.T) {
	q, err := QuoteOption(referenceParams(Put))
	if err != nil {
		t.Fatalf("QuoteOption: %v", err)
	}
	if !almostEqual(q.Price, 5.5735, 5e-5) || !almostEqual(q.Greeks.Delta, -0.3632, 5e-5) {
		t.Errorf("unexpected quote: %+v", q)
	}
	if len(q.Greeks.Map()) != 5 {
		t.Errorf("expected exactly five greeks, got %d", len(q.Greeks.Map()))
	}

	p := referenceParams(Put)
	p.Maturity = -1
	if _, err := QuoteOption(p); !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("expected ErrInvalidParameter, got %v", err)
	}
}
