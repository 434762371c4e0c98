package number

import (
	"errors"
	"math/big"

	"github.com/shopspring/decimal"
)

// Rounding rounding mode for amount/index arithmetic
type Rounding int

const (
	// RoundFloor round towards zero
	RoundFloor Rounding = iota
	// RoundCeil round away from zero
	RoundCeil
)

var (
	// ErrMathOverflow result does not fit into 128 bits
	ErrMathOverflow = errors.New("math overflow")
	// ErrDivideByZero divisor is zero
	ErrDivideByZero = errors.New("divide by zero")
)

const (
	// IndexPrecision fractional digits carried by indices, rates and prices
	IndexPrecision int32 = 18
	// guard precision used on intermediate divisions so that the final
	// floor/ceil lands on the exact quotient
	divPrecision int32 = 32
)

var (
	// ScalingFactor extra headroom applied when scaling amounts by an index
	ScalingFactor = decimal.New(1, 6)

	// maxAmount 2^128 - 1, the largest representable amount
	maxAmount = decimal.NewFromBigInt(maxAmountInt(), 0)
)

// Decimal parses v, ignoring errors. For constants and tests.
func Decimal(v string) decimal.Decimal {
	d, _ := decimal.NewFromString(v)
	return d
}

// MulFloor amount x index, rounded down to an integer amount
func MulFloor(amount, index decimal.Decimal) (decimal.Decimal, error) {
	return checkAmount(amount.Mul(index).Floor())
}

// MulCeil amount x index, rounded up to an integer amount
func MulCeil(amount, index decimal.Decimal) (decimal.Decimal, error) {
	return checkAmount(amount.Mul(index).Ceil())
}

// DivFloor amount / index, rounded down to an integer amount
func DivFloor(amount, index decimal.Decimal) (decimal.Decimal, error) {
	if index.IsZero() {
		return decimal.Zero, ErrDivideByZero
	}

	return checkAmount(amount.DivRound(index, divPrecision).Floor())
}

// DivCeil amount / index, rounded up to an integer amount
func DivCeil(amount, index decimal.Decimal) (decimal.Decimal, error) {
	if index.IsZero() {
		return decimal.Zero, ErrDivideByZero
	}

	return checkAmount(amount.DivRound(index, divPrecision).Ceil())
}

// Mul amount x index with an explicit rounding mode
func Mul(amount, index decimal.Decimal, mode Rounding) (decimal.Decimal, error) {
	if mode == RoundCeil {
		return MulCeil(amount, index)
	}

	return MulFloor(amount, index)
}

// Div amount / index with an explicit rounding mode
func Div(amount, index decimal.Decimal, mode Rounding) (decimal.Decimal, error) {
	if mode == RoundCeil {
		return DivCeil(amount, index)
	}

	return DivFloor(amount, index)
}

// ScaleAmount stores amount as amount x ScalingFactor / index
func ScaleAmount(amount, index decimal.Decimal, mode Rounding) (decimal.Decimal, error) {
	return Div(amount.Mul(ScalingFactor), index, mode)
}

// DescaleAmount inverts ScaleAmount: scaled x index / ScalingFactor
func DescaleAmount(scaled, index decimal.Decimal, mode Rounding) (decimal.Decimal, error) {
	if mode == RoundCeil {
		return checkAmount(scaled.Mul(index).DivRound(ScalingFactor, divPrecision).Ceil())
	}

	return checkAmount(scaled.Mul(index).DivRound(ScalingFactor, divPrecision).Floor())
}

// ScaleLiquidity collateral-side scaling always rounds down
func ScaleLiquidity(amount, index decimal.Decimal) (decimal.Decimal, error) {
	return ScaleAmount(amount, index, RoundFloor)
}

// DescaleLiquidity collateral-side descaling always rounds down
func DescaleLiquidity(scaled, index decimal.Decimal) (decimal.Decimal, error) {
	return DescaleAmount(scaled, index, RoundFloor)
}

// ScaleDebt debt-side scaling always rounds up, in favor of the protocol
func ScaleDebt(amount, index decimal.Decimal) (decimal.Decimal, error) {
	return ScaleAmount(amount, index, RoundCeil)
}

// DescaleDebt debt-side descaling always rounds up
func DescaleDebt(scaled, index decimal.Decimal) (decimal.Decimal, error) {
	return DescaleAmount(scaled, index, RoundCeil)
}

// FromRatio n / d truncated at IndexPrecision, the health-factor rounding rule
func FromRatio(n, d decimal.Decimal) (decimal.Decimal, error) {
	if d.IsZero() {
		return decimal.Zero, ErrDivideByZero
	}

	return n.DivRound(d, divPrecision).Truncate(IndexPrecision), nil
}

func maxAmountInt() *big.Int {
	max := new(big.Int).Lsh(big.NewInt(1), 128)
	return max.Sub(max, big.NewInt(1))
}

func checkAmount(d decimal.Decimal) (decimal.Decimal, error) {
	if d.Abs().GreaterThan(maxAmount) {
		return decimal.Zero, ErrMathOverflow
	}

	return d, nil
}
