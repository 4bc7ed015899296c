package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	pricer "github.com/jwaldner/optionpricer/pricer_lib"
	"github.com/jwaldner/optionpricer/internal/chart"
	"github.com/jwaldner/optionpricer/internal/logger"
	"github.com/jwaldner/optionpricer/internal/models"
	"github.com/jwaldner/optionpricer/internal/perf"
	"github.com/jwaldner/optionpricer/internal/services"
	"github.com/jwaldner/optionpricer/internal/utils"
)

// PricingHandler handles pricing requests - DUMB HTTP layer only
type PricingHandler struct {
	engine   *perf.PerformanceWrapper
	requests *services.RequestService
	renderer *chart.Renderer
}

// NewPricingHandler creates a new pricing handler
func NewPricingHandler(engine *perf.PerformanceWrapper, requests *services.RequestService, renderer *chart.Renderer) *PricingHandler {
	return &PricingHandler{
		engine:   engine,
		requests: requests,
		renderer: renderer,
	}
}

// PriceHandler prices one option
func (h *PricingHandler) PriceHandler(w http.ResponseWriter, r *http.Request) {
	_, params, err := h.requests.ParsePricingRequest(r)
	if err != nil {
		h.writeError(w, err)
		return
	}

	price, err := pricer.Price(params)
	if err != nil {
		h.writeError(w, err)
		return
	}

	logger.Verbose.Printf("💲 PRICE: %s S=%.2f K=%.2f T=%.4f r=%.4f σ=%.4f → %.6f",
		params.Type, params.Spot, params.Strike, params.Maturity, params.Rate, params.Volatility, price)

	writeJSON(w, http.StatusOK, models.PriceResponse{
		Success:    true,
		OptionType: params.Type.String(),
		Price:      h.formatCurrency(price),
	})
}

// GreeksHandler returns the five Greeks for one option
func (h *PricingHandler) GreeksHandler(w http.ResponseWriter, r *http.Request) {
	_, params, err := h.requests.ParsePricingRequest(r)
	if err != nil {
		h.writeError(w, err)
		return
	}

	greeks, err := pricer.CalculateGreeks(params)
	if err != nil {
		h.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, models.GreeksResponse{
		Success:    true,
		OptionType: params.Type.String(),
		Greeks:     h.formatGreeks(greeks),
	})
}

// QuoteHandler returns price and Greeks together
func (h *PricingHandler) QuoteHandler(w http.ResponseWriter, r *http.Request) {
	_, params, err := h.requests.ParsePricingRequest(r)
	if err != nil {
		h.writeError(w, err)
		return
	}

	quote, err := pricer.QuoteOption(params)
	if err != nil {
		h.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, models.QuoteResponse{
		Success:    true,
		OptionType: params.Type.String(),
		Price:      h.formatCurrency(quote.Price),
		Greeks:     h.formatGreeks(quote.Greeks),
	})
}

// BatchHandler prices a list of contracts through the engine
func (h *PricingHandler) BatchHandler(w http.ResponseWriter, r *http.Request) {
	contracts, err := h.requests.ParseBatchRequest(r)
	if err != nil {
		h.writeError(w, err)
		return
	}

	start := time.Now()
	results, err := h.engine.CalculateBlackScholes(r.Context(), contracts)
	duration := time.Since(start)
	if err != nil {
		h.writeError(w, err)
		return
	}

	engine := h.engine.Engine()
	logger.Info.Printf("⚡ BATCH: %d contracts in %.3fms | mode %s | %d workers",
		len(results), float64(duration.Nanoseconds())/1e6, engine.ExecutionMode(), engine.Workers())

	response := models.BatchCalculationResponse{
		Success:           true,
		Results:           make([]models.CalculationResult, len(results)),
		ProcessedIn:       float64(duration.Nanoseconds()) / 1e6,
		ExecutionMode:     string(engine.ExecutionMode()),
		Workers:           engine.Workers(),
		TotalCalculations: len(results),
	}
	for i, c := range results {
		response.Results[i] = models.CalculationResult{
			Symbol:      c.Symbol,
			OptionType:  c.OptionType.String(),
			StrikePrice: c.StrikePrice,
			OptionPrice: c.TheoreticalPrice,
			Delta:       c.Delta,
			Gamma:       c.Gamma,
			Theta:       c.Theta,
			Vega:        c.Vega,
			Rho:         c.Rho,
		}
	}

	writeJSON(w, http.StatusOK, response)
}

// HealthHandler reports engine settings and counters
func (h *PricingHandler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	engine := h.engine.Engine()
	stats := h.engine.Stats()
	writeJSON(w, http.StatusOK, models.HealthResponse{
		Status:           "healthy",
		ExecutionMode:    string(engine.ExecutionMode()),
		Workers:          engine.Workers(),
		EngineRuns:       stats.Runs,
		ContractsPriced:  stats.Contracts,
		AverageRunMillis: float64(stats.AverageDuration().Nanoseconds()) / 1e6,
		Timestamp:        time.Now().Unix(),
	})
}

// writeError maps input errors to 400 and everything else to 500
func (h *PricingHandler) writeError(w http.ResponseWriter, err error) {
	status := http.StatusBadRequest
	switch {
	case errors.Is(err, pricer.ErrInvalidOptionType), errors.Is(err, pricer.ErrInvalidParameter), errors.Is(err, pricer.ErrEmptySweep):
		logger.Warn.Printf("⚠️ Rejected request: %v", err)
	case errors.Is(err, services.ErrBadRequest):
		logger.Warn.Printf("⚠️ Bad request: %v", err)
	default:
		status = http.StatusInternalServerError
		logger.Error.Printf("❌ Request failed: %v", err)
	}
	writeJSON(w, status, models.ErrorResponse{Success: false, Error: err.Error()})
}

func (h *PricingHandler) formatCurrency(value float64) models.FieldValue {
	return models.FieldValue{
		Raw:     value,
		Display: utils.FormatCurrency(value),
		Type:    "currency",
	}
}

func (h *PricingHandler) formatGreeks(g pricer.Greeks) map[string]models.FieldValue {
	values := g.Map()
	out := make(map[string]models.FieldValue, len(values))
	for _, name := range pricer.GreekNames {
		out[name] = models.FieldValue{
			Raw:     values[name],
			Display: utils.FormatGreek(values[name]),
			Type:    "greek",
		}
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error.Printf("❌ Failed to write JSON response: %v", err)
	}
}
