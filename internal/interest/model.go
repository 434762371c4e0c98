package interest

import (
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	// SecondsPerYear accrual is linear in elapsed seconds
	SecondsPerYear = decimal.NewFromInt(31536000)
	// MaxPrecision fractional digits kept on rates
	MaxPrecision int32 = 18

	one = decimal.New(1, 0)
)

// Model two-slope interest rate curve with a kink at OptimalUtilization.
//
// Below the kink: base + slope1 * (u / optimal)
// Above the kink: base + slope1 + slope2 * (u - optimal) / (1 - optimal)
type Model struct {
	OptimalUtilization decimal.Decimal `json:"optimal_utilization"`
	Base               decimal.Decimal `json:"base"`
	Slope1             decimal.Decimal `json:"slope_1"`
	Slope2             decimal.Decimal `json:"slope_2"`
}

// Validate validate curve shape parameters
func (m Model) Validate() error {
	if m.OptimalUtilization.IsNegative() || m.OptimalUtilization.GreaterThan(one) {
		return fmt.Errorf("optimal_utilization out of range [0, 1]: %s", m.OptimalUtilization)
	}

	if m.Base.IsNegative() {
		return fmt.Errorf("base must not be negative: %s", m.Base)
	}

	if m.Slope1.IsNegative() || m.Slope2.IsNegative() {
		return fmt.Errorf("slopes must not be negative: %s, %s", m.Slope1, m.Slope2)
	}

	return nil
}

// BorrowRate annualized borrow rate at the given utilization
func (m Model) BorrowRate(utilization decimal.Decimal) decimal.Decimal {
	if utilization.LessThanOrEqual(m.OptimalUtilization) || m.OptimalUtilization.GreaterThanOrEqual(one) {
		if m.OptimalUtilization.IsZero() {
			return m.Base
		}

		return m.Base.Add(m.Slope1.Mul(utilization).Div(m.OptimalUtilization)).Truncate(MaxPrecision)
	}

	excess := utilization.Sub(m.OptimalUtilization)
	return m.Base.
		Add(m.Slope1).
		Add(m.Slope2.Mul(excess).Div(one.Sub(m.OptimalUtilization))).
		Truncate(MaxPrecision)
}

// LiquidityRate deposit-side rate derived from the borrow rate
//
// liquidity_rate = borrow_rate * utilization * (1 - reserve_factor)
func LiquidityRate(borrowRate, utilization, reserveFactor decimal.Decimal) decimal.Decimal {
	return borrowRate.Mul(utilization).Mul(one.Sub(reserveFactor)).Truncate(MaxPrecision)
}

// ValidateReserveFactor reserve factor lives in [0, 1)
func ValidateReserveFactor(reserveFactor decimal.Decimal) error {
	if reserveFactor.IsNegative() || reserveFactor.GreaterThanOrEqual(one) {
		return fmt.Errorf("reserve_factor out of range [0, 1): %s", reserveFactor)
	}

	return nil
}
