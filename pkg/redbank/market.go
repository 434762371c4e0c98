package redbank

import (
	"time"

	"redbank/core"
	"redbank/internal/interest"
	"redbank/pkg/number"

	"github.com/shopspring/decimal"
)

var one = decimal.New(1, 0)

// Model the market's interest rate curve
func Model(market *core.Market) interest.Model {
	return interest.Model{
		OptimalUtilization: market.OptimalUtilization,
		Base:               market.BaseRate,
		Slope1:             market.Slope1,
		Slope2:             market.Slope2,
	}
}

// Utilization underlying debt over underlying collateral at the stored indices
func Utilization(market *core.Market) (decimal.Decimal, error) {
	collateral, err := number.DescaleLiquidity(market.CollateralTotalScaled, market.LiquidityIndex)
	if err != nil {
		return decimal.Zero, err
	}

	if !collateral.IsPositive() {
		return decimal.Zero, nil
	}

	debt, err := number.DescaleDebt(market.DebtTotalScaled, market.BorrowIndex)
	if err != nil {
		return decimal.Zero, err
	}

	return number.FromRatio(debt, collateral)
}

// growth linear accrual multiplier: 1 + rate * dt / year
func growth(rate decimal.Decimal, dt int64) decimal.Decimal {
	return one.Add(
		rate.Mul(decimal.NewFromInt(dt)).
			DivRound(interest.SecondsPerYear, 2*number.IndexPrecision).
			Truncate(number.IndexPrecision))
}

// Accrue fast-forwards both indices from IndexesLastUpdated to now with
// simple interest and returns the protocol reserve share as a scaled
// collateral amount. The caller must credit that amount to the rewards
// collector's row and to CollateralTotalScaled, or conservation breaks.
//
// No-op when no time elapsed.
func Accrue(market *core.Market, now time.Time) (decimal.Decimal, error) {
	dt := now.Unix() - market.IndexesLastUpdated
	if dt <= 0 {
		return decimal.Zero, nil
	}

	previousDebt, err := number.DescaleDebt(market.DebtTotalScaled, market.BorrowIndex)
	if err != nil {
		return decimal.Zero, err
	}

	newBorrowIndex := market.BorrowIndex.Mul(growth(market.BorrowRate, dt)).Truncate(number.IndexPrecision)
	newLiquidityIndex := market.LiquidityIndex.Mul(growth(market.LiquidityRate, dt)).Truncate(number.IndexPrecision)

	currentDebt, err := number.DescaleDebt(market.DebtTotalScaled, newBorrowIndex)
	if err != nil {
		return decimal.Zero, err
	}

	rewardUnderlying, err := number.MulFloor(currentDebt.Sub(previousDebt), market.ReserveFactor)
	if err != nil {
		return decimal.Zero, err
	}

	rewardScaled := decimal.Zero
	if rewardUnderlying.IsPositive() {
		if rewardScaled, err = number.ScaleLiquidity(rewardUnderlying, newLiquidityIndex); err != nil {
			return decimal.Zero, err
		}
	}

	market.BorrowIndex = newBorrowIndex
	market.LiquidityIndex = newLiquidityIndex
	market.IndexesLastUpdated = now.Unix()

	return rewardScaled, nil
}

// Reprice recomputes utilization and both rates from the current totals
func Reprice(market *core.Market) error {
	utilization, err := Utilization(market)
	if err != nil {
		return err
	}

	market.BorrowRate = Model(market).BorrowRate(utilization)
	market.LiquidityRate = interest.LiquidityRate(market.BorrowRate, utilization, market.ReserveFactor)

	return nil
}

// VirtualIndices indices advanced to now without mutating the market
func VirtualIndices(market *core.Market, now time.Time) (liquidityIndex, borrowIndex decimal.Decimal) {
	dt := now.Unix() - market.IndexesLastUpdated
	if dt <= 0 {
		return market.LiquidityIndex, market.BorrowIndex
	}

	liquidityIndex = market.LiquidityIndex.Mul(growth(market.LiquidityRate, dt)).Truncate(number.IndexPrecision)
	borrowIndex = market.BorrowIndex.Mul(growth(market.BorrowRate, dt)).Truncate(number.IndexPrecision)
	return
}

// IncreaseCollateral add to the scaled collateral total
func IncreaseCollateral(market *core.Market, deltaScaled decimal.Decimal) {
	market.CollateralTotalScaled = market.CollateralTotalScaled.Add(deltaScaled)
}

// DecreaseCollateral subtract from the scaled collateral total, failing on underflow
func DecreaseCollateral(market *core.Market, deltaScaled decimal.Decimal) error {
	if deltaScaled.GreaterThan(market.CollateralTotalScaled) {
		return core.ErrMathOverflow.Errorf("collateral total underflow: %s - %s", market.CollateralTotalScaled, deltaScaled)
	}

	market.CollateralTotalScaled = market.CollateralTotalScaled.Sub(deltaScaled)
	return nil
}

// IncreaseDebt add to the scaled debt total
func IncreaseDebt(market *core.Market, deltaScaled decimal.Decimal) {
	market.DebtTotalScaled = market.DebtTotalScaled.Add(deltaScaled)
}

// DecreaseDebt subtract from the scaled debt total, failing on underflow
func DecreaseDebt(market *core.Market, deltaScaled decimal.Decimal) error {
	if deltaScaled.GreaterThan(market.DebtTotalScaled) {
		return core.ErrMathOverflow.Errorf("debt total underflow: %s - %s", market.DebtTotalScaled, deltaScaled)
	}

	market.DebtTotalScaled = market.DebtTotalScaled.Sub(deltaScaled)
	return nil
}

// DepositCapCheck rejects deposits that would push total underlying over the cap
func DepositCapCheck(market *core.Market, newTotalUnderlying decimal.Decimal) error {
	if market.DepositCap.IsPositive() && newTotalUnderlying.GreaterThan(market.DepositCap) {
		return core.ErrDepositCapExceeded.Errorf("deposit cap %s exceeded: %s", market.DepositCap, newTotalUnderlying)
	}

	return nil
}

// AvailableLiquidity underlying collateral not lent out
func AvailableLiquidity(market *core.Market) (decimal.Decimal, error) {
	collateral, err := number.DescaleLiquidity(market.CollateralTotalScaled, market.LiquidityIndex)
	if err != nil {
		return decimal.Zero, err
	}

	debt, err := number.DescaleDebt(market.DebtTotalScaled, market.BorrowIndex)
	if err != nil {
		return decimal.Zero, err
	}

	if debt.GreaterThan(collateral) {
		return decimal.Zero, nil
	}

	return collateral.Sub(debt), nil
}
