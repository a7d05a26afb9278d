package billing

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRates() Rates {
	return Rates{
		FixedInternetBill:  decimal.NewFromInt(2220),
		TotalRentBill:      decimal.NewFromInt(5000),
		TotalBoarders:      decimal.NewFromInt(8),
		TotalInternetUsers: decimal.NewFromInt(12),
	}
}

func dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestComputeShares(t *testing.T) {
	shares := ComputeShares(testRates(), dec("2000"), dec("900"))

	assert.True(t, shares.Rent.Equal(decimal.RequireFromString("625")), "rent share: %s", shares.Rent)
	assert.True(t, shares.Internet.Equal(decimal.RequireFromString("185")), "internet share: %s", shares.Internet)
	assert.True(t, shares.Electricity.Equal(decimal.RequireFromString("250")), "electricity share: %s", shares.Electricity)
	assert.True(t, shares.Water.Equal(decimal.RequireFromString("112.5")), "water share: %s", shares.Water)
	assert.True(t, shares.Total().Equal(decimal.RequireFromString("1172.5")), "total: %s", shares.Total())
}

func TestComputeSharesNilTotalsDivideAsZero(t *testing.T) {
	shares := ComputeShares(testRates(), nil, nil)

	assert.True(t, shares.Electricity.IsZero())
	assert.True(t, shares.Water.IsZero())
	assert.True(t, shares.Rent.Equal(decimal.RequireFromString("625")))
	assert.True(t, shares.Internet.Equal(decimal.RequireFromString("185")))
}

func TestComputeSharesKeepsFullPrecision(t *testing.T) {
	// 1000 / 8 = 125 exactly, but 100 / 8 * 8 must round-trip too.
	shares := ComputeShares(testRates(), dec("100"), nil)
	back := shares.Electricity.Mul(decimal.NewFromInt(8))
	assert.True(t, back.Equal(decimal.RequireFromString("100")), "division must not lose precision: %s", back)
}

func TestParseMonthKey(t *testing.T) {
	parsed, err := ParseMonthKey("2025-03")
	require.NoError(t, err)
	assert.Equal(t, 2025, parsed.Year())
	assert.Equal(t, time.March, parsed.Month())

	for _, bad := range []string{"", "2025", "2025-13", "March 2025", "2025-03-01"} {
		_, err := ParseMonthKey(bad)
		assert.Error(t, err, "month key %q should not parse", bad)
	}
}

func TestMonthName(t *testing.T) {
	name, err := MonthName("2025-03")
	require.NoError(t, err)
	assert.Equal(t, "March 2025", name)

	_, err = MonthName("not-a-month")
	assert.Error(t, err)
}

func TestInternetDeadlineIsAlwaysTheSeventeenth(t *testing.T) {
	deadline, err := InternetDeadline("2025-03")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, time.March, 17, 0, 0, 0, 0, time.UTC), deadline)

	deadline, err = InternetDeadline("2026-02")
	require.NoError(t, err)
	assert.Equal(t, 17, deadline.Day())
	assert.Equal(t, time.February, deadline.Month())
}
