package billing

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"boardbill-be-svc/internal/config"
)

// internetDeadlineDay is the fixed day of month the internet bill is due
const internetDeadlineDay = 17

// Rates holds the fixed amounts and head counts a cycle is apportioned with
type Rates struct {
	FixedInternetBill  decimal.Decimal
	TotalRentBill      decimal.Decimal
	TotalBoarders      decimal.Decimal
	TotalInternetUsers decimal.Decimal
}

// RatesFromConfig converts the integer env configuration into decimal rates
func RatesFromConfig(cfg config.BillingConfig) Rates {
	return Rates{
		FixedInternetBill:  decimal.NewFromInt(int64(cfg.FixedInternetBill)),
		TotalRentBill:      decimal.NewFromInt(int64(cfg.TotalRentBill)),
		TotalBoarders:      decimal.NewFromInt(int64(cfg.TotalBoarders)),
		TotalInternetUsers: decimal.NewFromInt(int64(cfg.TotalInternetUsers)),
	}
}

// Shares is one boarder's portion of each utility for a cycle
type Shares struct {
	Rent        decimal.Decimal
	Internet    decimal.Decimal
	Electricity decimal.Decimal
	Water       decimal.Decimal
}

// Total sums the four shares
func (s Shares) Total() decimal.Decimal {
	return s.Rent.Add(s.Internet).Add(s.Electricity).Add(s.Water)
}

// ComputeShares splits the cycle totals into per-boarder shares. A nil total
// means the utility was not submitted and divides as zero. Division stays at
// full decimal precision; rounding to two places happens at display time only,
// so repeated partial updates never compound rounding error.
func ComputeShares(r Rates, electricityTotal, waterTotal *decimal.Decimal) Shares {
	elec := decimal.Zero
	if electricityTotal != nil {
		elec = *electricityTotal
	}
	water := decimal.Zero
	if waterTotal != nil {
		water = *waterTotal
	}

	return Shares{
		Rent:        r.TotalRentBill.Div(r.TotalBoarders),
		Internet:    r.FixedInternetBill.Div(r.TotalInternetUsers),
		Electricity: elec.Div(r.TotalBoarders),
		Water:       water.Div(r.TotalBoarders),
	}
}

// ParseMonthKey validates a "YYYY-MM" month key and returns the first day of
// that month
func ParseMonthKey(monthKey string) (time.Time, error) {
	t, err := time.Parse("2006-01", monthKey)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid month key %q: %w", monthKey, err)
	}
	return t, nil
}

// MonthName derives the display label for a month key, e.g. "March 2025"
func MonthName(monthKey string) (string, error) {
	t, err := ParseMonthKey(monthKey)
	if err != nil {
		return "", err
	}
	return t.Format("January 2006"), nil
}

// InternetDeadline derives the internet due date for a month key. It is
// always the 17th of the cycle's month and never taken from input.
func InternetDeadline(monthKey string) (time.Time, error) {
	t, err := ParseMonthKey(monthKey)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(t.Year(), t.Month(), internetDeadlineDay, 0, 0, 0, 0, time.UTC), nil
}
