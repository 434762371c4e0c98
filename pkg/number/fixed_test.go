package number

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMulRounding(t *testing.T) {
	amount := Decimal("1000")
	index := Decimal("1.0000005")

	floor, err := MulFloor(amount, index)
	require.Nil(t, err)
	assert.Equal(t, "1000", floor.String())

	ceil, err := MulCeil(amount, index)
	require.Nil(t, err)
	assert.Equal(t, "1001", ceil.String())
}

func TestDivRounding(t *testing.T) {
	amount := Decimal("1000")
	index := Decimal("3")

	floor, err := DivFloor(amount, index)
	require.Nil(t, err)
	assert.Equal(t, "333", floor.String())

	ceil, err := DivCeil(amount, index)
	require.Nil(t, err)
	assert.Equal(t, "334", ceil.String())

	_, err = DivFloor(amount, decimal.Zero)
	assert.Equal(t, ErrDivideByZero, err)
}

func TestScaleRoundTrip(t *testing.T) {
	// descale(scale(a, idx, floor), idx, floor) <= a
	// descale(scale(a, idx, ceil), idx, ceil) >= a
	indices := []string{"1", "1.000000000047261", "1.37", "2.718281828459045235"}
	amounts := []string{"1", "7", "300", "4800", "123456789123456789"}

	for _, idx := range indices {
		index := Decimal(idx)

		for _, a := range amounts {
			amount := Decimal(a)

			scaled, err := ScaleAmount(amount, index, RoundFloor)
			require.Nil(t, err)
			back, err := DescaleAmount(scaled, index, RoundFloor)
			require.Nil(t, err)
			assert.True(t, back.LessThanOrEqual(amount), "floor trip %s @ %s", a, idx)

			scaled, err = ScaleAmount(amount, index, RoundCeil)
			require.Nil(t, err)
			back, err = DescaleAmount(scaled, index, RoundCeil)
			require.Nil(t, err)
			assert.True(t, back.GreaterThanOrEqual(amount), "ceil trip %s @ %s", a, idx)
		}
	}
}

func TestScalingFactorHeadroom(t *testing.T) {
	scaled, err := ScaleLiquidity(Decimal("1000000"), Decimal("1"))
	require.Nil(t, err)
	assert.Equal(t, "1000000000000", scaled.String())

	back, err := DescaleLiquidity(scaled, Decimal("1"))
	require.Nil(t, err)
	assert.Equal(t, "1000000", back.String())
}

func TestOverflow(t *testing.T) {
	huge := decimal.New(1, 40)

	_, err := MulCeil(huge, huge)
	assert.Equal(t, ErrMathOverflow, err)

	_, err = MulFloor(decimal.New(1, 38), Decimal("1"))
	assert.Nil(t, err)
}

func TestFromRatio(t *testing.T) {
	r, err := FromRatio(Decimal("1"), Decimal("3"))
	require.Nil(t, err)
	assert.Equal(t, "0.333333333333333333", r.String())

	// truncated, never rounded up
	r, err = FromRatio(Decimal("2"), Decimal("3"))
	require.Nil(t, err)
	assert.Equal(t, "0.666666666666666666", r.String())

	r, err = FromRatio(Decimal("10"), Decimal("4"))
	require.Nil(t, err)
	assert.Equal(t, "2.5", r.String())

	_, err = FromRatio(Decimal("1"), decimal.Zero)
	assert.Equal(t, ErrDivideByZero, err)
}
