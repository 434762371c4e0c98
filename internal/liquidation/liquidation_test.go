package liquidation

import (
	"testing"

	"redbank/core"
	"redbank/pkg/number"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(v string) decimal.Decimal {
	d, _ := decimal.NewFromString(v)
	return d
}

func baseInput() Input {
	return Input{
		UserCollateralScaled: dec("1000000000000"), // 1_000_000 underlying at index 1
		UserDebtUnderlying:   dec("10000"),
		SentDebtAmount:       dec("4000"),
		LiquidityIndex:       dec("1"),
		LiquidationBonus:     dec("0.1"),
		CollateralPrice:      dec("2"),
		DebtPrice:            dec("1"),
		CloseFactor:          dec("0.5"),
	}
}

func TestSentAmountBelowCloseFactorCap(t *testing.T) {
	res, err := Compute(baseInput())
	require.Nil(t, err)

	// repay all 4000 sent: seize = 4000 * 1 * 1.1 / 2 = 2200
	assert.Equal(t, "4000", res.DebtToRepay.String())
	assert.Equal(t, "2200", res.CollateralToSeize.String())
	assert.True(t, res.Refund.IsZero())
}

func TestCloseFactorCapsRepayment(t *testing.T) {
	in := baseInput()
	in.SentDebtAmount = dec("9000")

	res, err := Compute(in)
	require.Nil(t, err)

	// close factor 0.5 caps repay at 5000, refund the rest
	assert.Equal(t, "5000", res.DebtToRepay.String())
	assert.Equal(t, "2750", res.CollateralToSeize.String())
	assert.Equal(t, "4000", res.Refund.String())
}

func TestBalanceClampBackSolvesWithFloor(t *testing.T) {
	in := baseInput()
	// target only holds 1000 underlying of collateral (scaled at index 1)
	in.UserCollateralScaled = dec("1000000000")

	res, err := Compute(in)
	require.Nil(t, err)

	assert.Equal(t, in.UserCollateralScaled.String(), res.CollateralToSeizeScaled.String())
	assert.Equal(t, "1000", res.CollateralToSeize.String())

	// back-solved: 1000 * 2 / (1 * 1.1) = 1818.18 -> floor
	assert.Equal(t, "1818", res.DebtToRepay.String())
	assert.Equal(t, "2182", res.Refund.String())

	// the floor guarantees the ceil-scaled debt delta stays within the debt
	scaled, err := number.ScaleDebt(res.DebtToRepay, dec("1"))
	require.Nil(t, err)
	maxScaled, err := number.ScaleDebt(in.UserDebtUnderlying, dec("1"))
	require.Nil(t, err)
	assert.True(t, scaled.LessThanOrEqual(maxScaled))
}

func TestClampUsesIndexAtNow(t *testing.T) {
	in := baseInput()
	in.LiquidityIndex = dec("1.25")
	in.UserCollateralScaled = dec("800000000") // 1000 underlying at 1.25

	res, err := Compute(in)
	require.Nil(t, err)
	assert.Equal(t, "1000", res.CollateralToSeize.String())
	assert.Equal(t, "1818", res.DebtToRepay.String())
}

func TestOneSidedZeroRejected(t *testing.T) {
	in := baseInput()
	// 1 unit of dust debt against an expensive collateral: seize floors to
	// zero while repay stays positive
	in.SentDebtAmount = dec("1")
	in.DebtPrice = dec("0.000001")
	in.CollateralPrice = dec("1000000")

	_, err := Compute(in)
	require.NotNil(t, err)
	assert.Equal(t, core.ErrInvalidLiquidation, core.CodeOf(err))
}

func TestZeroDebtZeroSeizeAllowed(t *testing.T) {
	in := baseInput()
	in.SentDebtAmount = decimal.Zero

	res, err := Compute(in)
	require.Nil(t, err)
	assert.True(t, res.DebtToRepay.IsZero())
	assert.True(t, res.CollateralToSeize.IsZero())
}

func TestRepayNeverExceedsCloseFactorShare(t *testing.T) {
	in := baseInput()
	in.SentDebtAmount = dec("1000000")

	res, err := Compute(in)
	require.Nil(t, err)

	maxRepay, err := number.MulFloor(in.UserDebtUnderlying, in.CloseFactor)
	require.Nil(t, err)
	assert.True(t, res.DebtToRepay.LessThanOrEqual(maxRepay))
	assert.Equal(t, in.SentDebtAmount.Sub(res.DebtToRepay).String(), res.Refund.String())
}
