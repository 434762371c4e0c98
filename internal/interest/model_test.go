package interest

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(v string) decimal.Decimal {
	d, _ := decimal.NewFromString(v)
	return d
}

func TestValidate(t *testing.T) {
	model := Model{
		OptimalUtilization: dec("0.8"),
		Base:               dec("0.02"),
		Slope1:             dec("0.1"),
		Slope2:             dec("0.45"),
	}
	require.Nil(t, model.Validate())

	bad := model
	bad.OptimalUtilization = dec("1.1")
	assert.NotNil(t, bad.Validate())

	bad = model
	bad.Slope2 = dec("-0.1")
	assert.NotNil(t, bad.Validate())

	assert.Nil(t, ValidateReserveFactor(dec("0.2")))
	assert.NotNil(t, ValidateReserveFactor(dec("1")))
	assert.NotNil(t, ValidateReserveFactor(dec("-0.1")))
}

func TestBorrowRateBelowKink(t *testing.T) {
	model := Model{
		OptimalUtilization: dec("0.8"),
		Base:               dec("0.02"),
		Slope1:             dec("0.1"),
		Slope2:             dec("0.45"),
	}

	// u = 0 -> base
	assert.Equal(t, "0.02", model.BorrowRate(decimal.Zero).String())

	// u = 0.4 -> base + slope1 * 0.4 / 0.8 = 0.02 + 0.05
	assert.Equal(t, "0.07", model.BorrowRate(dec("0.4")).String())

	// u = optimal -> base + slope1
	assert.Equal(t, "0.12", model.BorrowRate(dec("0.8")).String())
}

func TestBorrowRateAboveKink(t *testing.T) {
	model := Model{
		OptimalUtilization: dec("0.8"),
		Base:               dec("0.02"),
		Slope1:             dec("0.1"),
		Slope2:             dec("0.45"),
	}

	// u = 0.9 -> base + slope1 + slope2 * 0.1 / 0.2 = 0.12 + 0.225
	assert.Equal(t, "0.345", model.BorrowRate(dec("0.9")).String())

	// u = 1 -> base + slope1 + slope2
	assert.Equal(t, "0.57", model.BorrowRate(dec("1")).String())
}

func TestBorrowRateDegenerateShapes(t *testing.T) {
	// optimal = 0: u = 0 yields base
	flat := Model{Base: dec("0.03")}
	assert.Equal(t, "0.03", flat.BorrowRate(decimal.Zero).String())

	// optimal = 0, u > 0: the excess branch with a zero kink
	flat.Slope1 = dec("0.1")
	flat.Slope2 = dec("0.2")
	assert.Equal(t, "0.23", flat.BorrowRate(dec("0.5")).String())

	// optimal = 1: above branch unreachable
	capped := Model{OptimalUtilization: dec("1"), Base: dec("0.02"), Slope1: dec("0.1")}
	assert.Equal(t, "0.12", capped.BorrowRate(dec("1")).String())
	assert.Equal(t, "0.14", capped.BorrowRate(dec("1.2")).String())
}

func TestLiquidityRate(t *testing.T) {
	// borrow_rate * u * (1 - reserve_factor)
	rate := LiquidityRate(dec("0.12"), dec("0.8"), dec("0.2"))
	assert.Equal(t, "0.0768", rate.String())

	assert.True(t, LiquidityRate(dec("0.12"), decimal.Zero, dec("0.2")).IsZero())
}
