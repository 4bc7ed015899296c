package main

import (
	"fmt"
	"math"
	"os"

	pricer "github.com/jwaldner/optionpricer/pricer_lib"
)

const tolerance = 0.0001

type check struct {
	name     string
	got      float64
	expected float64
}

// Checks the engine against published values for S=100 K=100 T=1 r=5% σ=20%
func main() {
	fmt.Println("🎯 Verifying Black-Scholes reference case")
	fmt.Println("=========================================")

	base := pricer.OptionParams{Spot: 100, Strike: 100, Maturity: 1, Rate: 0.05, Volatility: 0.2}
	fmt.Printf("📊 Input Parameters:\n")
	fmt.Printf("   Stock Price (S): $%.2f\n", base.Spot)
	fmt.Printf("   Strike Price (K): $%.2f\n", base.Strike)
	fmt.Printf("   Time to Exp (T): %.4f years\n", base.Maturity)
	fmt.Printf("   Risk-free Rate (r): %.4f\n", base.Rate)
	fmt.Printf("   Volatility (σ): %.4f\n", base.Volatility)
	fmt.Println()

	call, put := base, base
	call.Type = pricer.Call
	put.Type = pricer.Put

	callQuote, err := pricer.QuoteOption(call)
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ call quote failed: %v\n", err)
		os.Exit(1)
	}
	putQuote, err := pricer.QuoteOption(put)
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ put quote failed: %v\n", err)
		os.Exit(1)
	}

	checks := []check{
		{"Call price", callQuote.Price, 10.4506},
		{"Put price", putQuote.Price, 5.5735},
		{"Call delta", callQuote.Greeks.Delta, 0.6368},
		{"Call gamma", callQuote.Greeks.Gamma, 0.0188},
		{"Call vega", callQuote.Greeks.Vega, 0.3752},
		{"Call theta", callQuote.Greeks.Theta, -0.0176},
		{"Call rho", callQuote.Greeks.Rho, 0.5323},
		{"Put delta", putQuote.Greeks.Delta, -0.3632},
		{"Put theta", putQuote.Greeks.Theta, -0.0045},
		{"Put rho", putQuote.Greeks.Rho, -0.4189},
	}

	failed := 0
	for _, c := range checks {
		status := "✅"
		if math.Abs(c.got-c.expected) > tolerance {
			status = "❌"
			failed++
		}
		fmt.Printf("%s %-11s got %10.6f expected %8.4f\n", status, c.name, c.got, c.expected)
	}

	parity := callQuote.Price - putQuote.Price - (base.Spot - base.Strike*math.Exp(-base.Rate*base.Maturity))
	fmt.Printf("\n⚖️  Put-call parity residual: %.2e\n", parity)
	if math.Abs(parity) > 1e-9 {
		failed++
	}

	if failed > 0 {
		fmt.Printf("\n❌ %d checks outside tolerance\n", failed)
		os.Exit(1)
	}
	fmt.Println("\n🎉 All values match within ±0.0001")
}
