package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	pricer "github.com/jwaldner/optionpricer/pricer_lib"
	"github.com/jwaldner/optionpricer/internal/models"
	"github.com/jwaldner/optionpricer/internal/utils"
)

const (
	// MaxRequestBytes bounds any JSON request body.
	MaxRequestBytes = 1 << 20
	// MaxBatchSize bounds the calculations in one batch request.
	MaxBatchSize = 10000
)

// ErrBadRequest marks requests that are malformed before any field is checked.
var ErrBadRequest = errors.New("bad request")

// RequestService handles HTTP request parsing and boundary validation
type RequestService struct {
	now func() time.Time
}

// NewRequestService creates a new request service
func NewRequestService() *RequestService {
	return &RequestService{now: time.Now}
}

// NewRequestServiceAt fixes the clock used to resolve expiration dates
func NewRequestServiceAt(now func() time.Time) *RequestService {
	return &RequestService{now: now}
}

// ParsePricingRequest decodes a JSON pricing request and validates it
func (s *RequestService) ParsePricingRequest(r *http.Request) (*models.PricingRequest, pricer.OptionParams, error) {
	if r.Method != http.MethodPost {
		return nil, pricer.OptionParams{}, fmt.Errorf("%w: method not allowed: %s", ErrBadRequest, r.Method)
	}

	var req models.PricingRequest
	if err := decodeBody(r, &req); err != nil {
		return nil, pricer.OptionParams{}, err
	}

	params, err := s.ToParams(req)
	if err != nil {
		return nil, pricer.OptionParams{}, err
	}
	return &req, params, nil
}

// ParseBatchRequest decodes and validates every calculation in a batch
func (s *RequestService) ParseBatchRequest(r *http.Request) ([]pricer.OptionContract, error) {
	if r.Method != http.MethodPost {
		return nil, fmt.Errorf("%w: method not allowed: %s", ErrBadRequest, r.Method)
	}

	var req models.BatchCalculationRequest
	if err := decodeBody(r, &req); err != nil {
		return nil, err
	}
	if len(req.Calculations) == 0 {
		return nil, fmt.Errorf("%w: calculations are required", ErrBadRequest)
	}
	if len(req.Calculations) > MaxBatchSize {
		return nil, fmt.Errorf("%w: %d calculations exceeds the limit of %d", ErrBadRequest, len(req.Calculations), MaxBatchSize)
	}

	contracts := make([]pricer.OptionContract, 0, len(req.Calculations))
	for i, calc := range req.Calculations {
		params, err := s.ToParams(calc)
		if err != nil {
			return nil, fmt.Errorf("calculation %d: %w", i, err)
		}
		contracts = append(contracts, pricer.OptionContract{
			Symbol:           strings.TrimSpace(strings.ToUpper(calc.Symbol)),
			StrikePrice:      params.Strike,
			UnderlyingPrice:  params.Spot,
			TimeToExpiration: params.Maturity,
			RiskFreeRate:     params.Rate,
			Volatility:       params.Volatility,
			OptionType:       params.Type,
		})
	}
	return contracts, nil
}

// ToParams converts a request into engine parameters, rejecting anything
// that breaks the input invariants.
func (s *RequestService) ToParams(req models.PricingRequest) (pricer.OptionParams, error) {
	optionType, err := pricer.ParseOptionType(req.OptionType)
	if err != nil {
		return pricer.OptionParams{}, err
	}

	maturity, err := s.resolveMaturity(req.Maturity, req.ExpirationDate)
	if err != nil {
		return pricer.OptionParams{}, err
	}

	params := pricer.OptionParams{
		Spot:       req.StockPrice,
		Strike:     req.StrikePrice,
		Maturity:   maturity,
		Rate:       req.RiskFreeRate,
		Volatility: req.Volatility,
		Type:       optionType,
	}
	if err := params.Validate(); err != nil {
		return pricer.OptionParams{}, err
	}
	return params, nil
}

// ParseSweepQuery reads spot, maturity (or expiration_date), rate, volatility
// and option_type from a chart URL query. Strike is not part of a sweep.
func (s *RequestService) ParseSweepQuery(q url.Values) (pricer.OptionParams, error) {
	optionType, err := pricer.ParseOptionType(q.Get("option_type"))
	if err != nil {
		return pricer.OptionParams{}, err
	}

	spot, err := requiredFloat(q, "spot")
	if err != nil {
		return pricer.OptionParams{}, err
	}
	if _, err := pricer.SweepSize(spot); err != nil {
		return pricer.OptionParams{}, err
	}
	volatility, err := requiredFloat(q, "volatility")
	if err != nil {
		return pricer.OptionParams{}, err
	}
	rate, err := requiredFloat(q, "rate")
	if err != nil {
		return pricer.OptionParams{}, err
	}

	var maturity float64
	if raw := q.Get("maturity"); raw != "" {
		if maturity, err = parseFloatField("maturity", raw); err != nil {
			return pricer.OptionParams{}, err
		}
	}
	maturity, err = s.resolveMaturity(maturity, q.Get("expiration_date"))
	if err != nil {
		return pricer.OptionParams{}, err
	}

	params := pricer.OptionParams{
		Spot:       spot,
		Strike:     spot, // placeholder so Validate can run; the sweep replaces it
		Maturity:   maturity,
		Rate:       rate,
		Volatility: volatility,
		Type:       optionType,
	}
	if err := params.Validate(); err != nil {
		return pricer.OptionParams{}, err
	}
	return params, nil
}

// decodeBody reads at most MaxRequestBytes of JSON into v
func decodeBody(r *http.Request, v interface{}) error {
	body := http.MaxBytesReader(nil, r.Body, MaxRequestBytes)
	if err := json.NewDecoder(body).Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return fmt.Errorf("%w: request body exceeds %d bytes", ErrBadRequest, MaxRequestBytes)
		}
		return fmt.Errorf("%w: failed to decode request: %v", ErrBadRequest, err)
	}
	return nil
}

func (s *RequestService) resolveMaturity(maturity float64, expirationDate string) (float64, error) {
	if maturity != 0 || expirationDate == "" {
		return maturity, nil
	}
	years, err := utils.YearsToExpiration(expirationDate, s.now())
	if err != nil {
		return 0, &pricer.ParamError{Field: "expiration_date", Reason: err.Error()}
	}
	return years, nil
}

func requiredFloat(q url.Values, field string) (float64, error) {
	raw := q.Get(field)
	if raw == "" {
		return 0, &pricer.ParamError{Field: field, Reason: "is required"}
	}
	return parseFloatField(field, raw)
}

func parseFloatField(field, raw string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, &pricer.ParamError{Field: field, Reason: fmt.Sprintf("must be a number (got %q)", raw)}
	}
	return v, nil
}
