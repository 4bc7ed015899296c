package models

// FieldValue represents a field with both raw data and formatted display
type FieldValue struct {
	Raw     interface{} `json:"raw"`     // For sorting/charting: 10.450583572185565
	Display string      `json:"display"` // For UI: "$10.45"
	Type    string      `json:"type"`    // For CSS: "currency"
}

// PricingRequest carries one set of Black-Scholes inputs.
// Either Maturity (years) or ExpirationDate (YYYY-MM-DD) must be given.
type PricingRequest struct {
	StockPrice     float64 `json:"stock_price"`
	StrikePrice    float64 `json:"strike_price"`
	Maturity       float64 `json:"maturity"`
	ExpirationDate string  `json:"expiration_date,omitempty"`
	RiskFreeRate   float64 `json:"risk_free_rate"`
	Volatility     float64 `json:"volatility"`
	OptionType     string  `json:"option_type"` // "call" or "put"
	Symbol         string  `json:"symbol,omitempty"`
}

// PriceResponse is returned by /api/price
type PriceResponse struct {
	Success    bool       `json:"success"`
	OptionType string     `json:"option_type"`
	Price      FieldValue `json:"price"`
}

// GreeksResponse is returned by /api/greeks
type GreeksResponse struct {
	Success    bool                  `json:"success"`
	OptionType string                `json:"option_type"`
	Greeks     map[string]FieldValue `json:"greeks"`
}

// QuoteResponse is returned by /api/quote
type QuoteResponse struct {
	Success    bool                  `json:"success"`
	OptionType string                `json:"option_type"`
	Price      FieldValue            `json:"price"`
	Greeks     map[string]FieldValue `json:"greeks"`
}

// BatchCalculationRequest for multiple calculations
type BatchCalculationRequest struct {
	Calculations []PricingRequest `json:"calculations"`
}

// CalculationResult is one priced contract in a batch response
type CalculationResult struct {
	Symbol      string  `json:"symbol,omitempty"`
	OptionType  string  `json:"option_type"`
	StrikePrice float64 `json:"strike_price"`
	OptionPrice float64 `json:"option_price"`
	Delta       float64 `json:"delta"`
	Gamma       float64 `json:"gamma"`
	Theta       float64 `json:"theta"`
	Vega        float64 `json:"vega"`
	Rho         float64 `json:"rho"`
}

// BatchCalculationResponse for multiple results
type BatchCalculationResponse struct {
	Success           bool                `json:"success"`
	Results           []CalculationResult `json:"results"`
	ProcessedIn       float64             `json:"processed_in_ms"`
	ExecutionMode     string              `json:"execution_mode"`
	Workers           int                 `json:"workers"`
	TotalCalculations int                 `json:"total_calculations"`
}

// ErrorResponse is written for any rejected request
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// HealthResponse reports engine settings and run counters
type HealthResponse struct {
	Status           string  `json:"status"`
	ExecutionMode    string  `json:"execution_mode"`
	Workers          int     `json:"workers"`
	EngineRuns       int64   `json:"engine_runs"`
	ContractsPriced  int64   `json:"contracts_priced"`
	AverageRunMillis float64 `json:"average_run_ms"`
	Timestamp        int64   `json:"timestamp"`
}
