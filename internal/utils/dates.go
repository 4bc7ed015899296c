package utils

import (
	"fmt"
	"time"
)

const (
	dateLayout  = "2006-01-02"
	daysPerYear = 365.0
)

// YearsToExpiration converts an expiration date (YYYY-MM-DD) into a
// maturity in years using the same 365-day year as the engine's Theta.
// The option is taken to expire at the end of the expiration day in now's
// location.
func YearsToExpiration(expiration string, now time.Time) (float64, error) {
	exp, err := time.ParseInLocation(dateLayout, expiration, now.Location())
	if err != nil {
		return 0, fmt.Errorf("invalid expiration date format: %w", err)
	}
	exp = exp.AddDate(0, 0, 1)

	remaining := exp.Sub(now)
	if remaining <= 0 {
		return 0, fmt.Errorf("expiration date %s is in the past", expiration)
	}

	return remaining.Hours() / 24 / daysPerYear, nil
}
