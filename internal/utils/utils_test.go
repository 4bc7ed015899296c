package utils

import (
	"math"
	"testing"
	"time"
)

func TestFormatting(t *testing.T) {
	tests := []struct {
		name string
		got  string
		want string
	}{
		{"price", FormatPrice(10.450583572185565), "10.45"},
		{"price rounds half up", FormatPrice(5.575), "5.58"},
		{"currency", FormatCurrency(5.573526022256971), "$5.57"},
		{"negative currency", FormatCurrency(-1.5), "-$1.50"},
		{"tiny negative price", FormatCurrency(-1e-12), "$0.00"},
		{"delta", FormatGreek(0.6368306511756191), "0.6368"},
		{"theta", FormatGreek(-0.017572678), "-0.0176"},
		{"nan", FormatGreek(math.NaN()), "NaN"},
	}

	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s: got %q want %q", tt.name, tt.got, tt.want)
		}
	}
}

func TestYearsToExpiration(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	years, err := YearsToExpiration("2026-12-31", now)
	if err != nil {
		t.Fatalf("YearsToExpiration: %v", err)
	}
	if math.Abs(years-1) > 1e-12 {
		t.Errorf("a full calendar year should be 1.0, got %v", years)
	}

	years, err = YearsToExpiration("2026-01-01", now.Add(12*time.Hour))
	if err != nil {
		t.Fatalf("same-day expiry: %v", err)
	}
	if math.Abs(years-0.5/365) > 1e-12 {
		t.Errorf("half a day left should be %v, got %v", 0.5/365, years)
	}

	if _, err := YearsToExpiration("2025-12-30", now); err == nil {
		t.Error("expected error for past expiration")
	}
	if _, err := YearsToExpiration("01/16/2026", now); err == nil {
		t.Error("expected error for bad format")
	}
}
