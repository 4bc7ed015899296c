package utils

import (
	"math"
	"strconv"

	"github.com/shopspring/decimal"
)

const (
	PricePlaces = 2
	GreekPlaces = 4
)

// FormatPrice renders an option price to two decimal places.
func FormatPrice(v float64) string {
	return fixed(v, PricePlaces)
}

// FormatCurrency renders a price as "$10.45".
func FormatCurrency(v float64) string {
	s := FormatPrice(v)
	if len(s) > 0 && s[0] == '-' {
		return "-$" + s[1:]
	}
	return "$" + s
}

// FormatGreek renders a sensitivity to four decimal places.
func FormatGreek(v float64) string {
	return fixed(v, GreekPlaces)
}

func fixed(v float64, places int32) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return decimal.NewFromFloat(v).StringFixed(places)
}
