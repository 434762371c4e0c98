package liquidation

import (
	"redbank/core"
	"redbank/pkg/number"

	"github.com/shopspring/decimal"
)

var one = decimal.New(1, 0)

// Input everything the settlement math needs, valued at "now"
type Input struct {
	// target's scaled collateral on the seized denom
	UserCollateralScaled decimal.Decimal
	// target's underlying debt on the repaid denom
	UserDebtUnderlying decimal.Decimal
	// debt funds attached by the liquidator
	SentDebtAmount decimal.Decimal

	// collateral market's liquidity index at now
	LiquidityIndex   decimal.Decimal
	LiquidationBonus decimal.Decimal

	CollateralPrice decimal.Decimal
	DebtPrice       decimal.Decimal

	// max fraction of the debt repayable in one call, (0, 1]
	CloseFactor decimal.Decimal
}

// Result settlement amounts
type Result struct {
	DebtToRepay             decimal.Decimal
	CollateralToSeize       decimal.Decimal
	CollateralToSeizeScaled decimal.Decimal
	Refund                  decimal.Decimal
}

// Compute derives (debt to repay, collateral to seize, refund).
//
// The close-factor cap is applied before the balance cap, so clamping to the
// target's collateral balance can only shrink the repayment further. When
// the clamp fires, the repayment is back-solved with floor rounding so the
// ceil-scaled debt delta can never exceed the target's remaining debt.
func Compute(in Input) (*Result, error) {
	maxRepay, err := number.MulFloor(in.UserDebtUnderlying, in.CloseFactor)
	if err != nil {
		return nil, err
	}

	debtToRepay := decimal.Min(in.SentDebtAmount, maxRepay)

	// seize = repay * debt_price * (1 + bonus) / collateral_price,
	// intermediate products rounded up, the final division down
	repayValue, err := number.MulCeil(debtToRepay, in.DebtPrice)
	if err != nil {
		return nil, err
	}

	seizeValue, err := number.MulCeil(repayValue, one.Add(in.LiquidationBonus))
	if err != nil {
		return nil, err
	}

	collateralToSeize, err := number.DivFloor(seizeValue, in.CollateralPrice)
	if err != nil {
		return nil, err
	}

	collateralScaled, err := number.ScaleLiquidity(collateralToSeize, in.LiquidityIndex)
	if err != nil {
		return nil, err
	}

	if collateralScaled.GreaterThan(in.UserCollateralScaled) {
		collateralScaled = in.UserCollateralScaled

		if collateralToSeize, err = number.DescaleLiquidity(collateralScaled, in.LiquidityIndex); err != nil {
			return nil, err
		}

		seizedValue, err := number.MulFloor(collateralToSeize, in.CollateralPrice)
		if err != nil {
			return nil, err
		}

		bonusedPrice := in.DebtPrice.Mul(one.Add(in.LiquidationBonus))
		if debtToRepay, err = number.DivFloor(seizedValue, bonusedPrice); err != nil {
			return nil, err
		}
	}

	// a one-sided zero would either drain collateral for free or repay with
	// nothing
	if debtToRepay.IsZero() != collateralToSeize.IsZero() {
		return nil, core.ErrInvalidLiquidation.Errorf("repay %s vs seize %s", debtToRepay, collateralToSeize)
	}

	return &Result{
		DebtToRepay:             debtToRepay,
		CollateralToSeize:       collateralToSeize,
		CollateralToSeizeScaled: collateralScaled,
		Refund:                  in.SentDebtAmount.Sub(debtToRepay),
	}, nil
}
