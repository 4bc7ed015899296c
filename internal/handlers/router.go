package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
)

// NewRouter wires the pricing API routes
func NewRouter(h *PricingHandler) *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/api/price", h.PriceHandler).Methods(http.MethodPost)
	r.HandleFunc("/api/greeks", h.GreeksHandler).Methods(http.MethodPost)
	r.HandleFunc("/api/quote", h.QuoteHandler).Methods(http.MethodPost)
	r.HandleFunc("/api/batch", h.BatchHandler).Methods(http.MethodPost)

	// Chart endpoints read their inputs from the query string
	r.HandleFunc("/api/charts/price.png", h.PriceChartHandler).Methods(http.MethodGet)
	r.HandleFunc("/api/charts/greeks.png", h.GreeksChartHandler).Methods(http.MethodGet)

	r.HandleFunc("/api/health", h.HealthHandler).Methods(http.MethodGet)
	return r
}
