package handlers

import (
	"bytes"
	"io"
	"net/http"
	"strconv"

	pricer "github.com/jwaldner/optionpricer/pricer_lib"
	"github.com/jwaldner/optionpricer/internal/logger"
)

// PriceChartHandler renders the price v strike sweep as PNG
func (h *PricingHandler) PriceChartHandler(w http.ResponseWriter, r *http.Request) {
	h.serveChart(w, r, "price", h.renderer.WritePriceChart)
}

// GreeksChartHandler renders the 3x2 Greeks grid as PNG
func (h *PricingHandler) GreeksChartHandler(w http.ResponseWriter, r *http.Request) {
	h.serveChart(w, r, "greeks", h.renderer.WriteGreeksChart)
}

func (h *PricingHandler) serveChart(w http.ResponseWriter, r *http.Request, kind string, render func(io.Writer, *pricer.StrikeSweep) error) {
	params, err := h.requests.ParseSweepQuery(r.URL.Query())
	if err != nil {
		h.writeError(w, err)
		return
	}

	sweep, err := h.engine.SweepStrikes(r.Context(), params)
	if err != nil {
		h.writeError(w, err)
		return
	}

	// Render fully before writing headers so a failure still yields JSON.
	var buf bytes.Buffer
	if err := render(&buf, sweep); err != nil {
		h.writeError(w, err)
		return
	}

	logger.Debug.Printf("📊 %s chart: %s S=%.2f, %d bytes", kind, params.Type, params.Spot, buf.Len())

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		logger.Error.Printf("❌ Failed to write %s chart: %v", kind, err)
	}
}
