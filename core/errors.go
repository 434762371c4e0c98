package core

import (
	"fmt"
)

// ErrorCode machine readable error code
type ErrorCode int

const (
	// ErrUnknown unknown
	ErrUnknown ErrorCode = 100000
	// ErrUnauthorized wrong caller
	ErrUnauthorized ErrorCode = 100001

	// config

	// ErrAssetNotInitialized market for the denom does not exist
	ErrAssetNotInitialized ErrorCode = 100100
	// ErrAssetAlreadyInitialized market for the denom already exists
	ErrAssetAlreadyInitialized ErrorCode = 100101
	// ErrInvalidParam parameter fails its predicate
	ErrInvalidParam ErrorCode = 100102
	// ErrDepositNotEnabled deposits disabled on the market
	ErrDepositNotEnabled ErrorCode = 100103
	// ErrBorrowNotEnabled borrows disabled on the market
	ErrBorrowNotEnabled ErrorCode = 100104

	// accounting preconditions

	// ErrInvalidBorrowAmount borrow amount is zero or exceeds collateral
	ErrInvalidBorrowAmount ErrorCode = 100200
	// ErrInvalidWithdrawAmount withdraw amount is zero or exceeds balance
	ErrInvalidWithdrawAmount ErrorCode = 100201
	// ErrCannotRepayZeroDebt no debt to repay
	ErrCannotRepayZeroDebt ErrorCode = 100202
	// ErrDepositCapExceeded deposit cap exceeded
	ErrDepositCapExceeded ErrorCode = 100203
	// ErrOperationExceedsAvailableLiquidity not enough free liquidity in the pool
	ErrOperationExceedsAvailableLiquidity ErrorCode = 100204

	// solvency

	// ErrBorrowAmountExceedsGivenCollateral projected max-LTV health factor below one
	ErrBorrowAmountExceedsGivenCollateral ErrorCode = 100300
	// ErrBorrowAmountExceedsUncollateralizedLoanLimit uncollateralized limit exceeded
	ErrBorrowAmountExceedsUncollateralizedLoanLimit ErrorCode = 100301
	// ErrInvalidHealthFactorAfterWithdraw withdrawal would leave the account unhealthy
	ErrInvalidHealthFactorAfterWithdraw ErrorCode = 100302
	// ErrInvalidHealthFactorAfterDisablingCollateral toggle would leave the account unhealthy
	ErrInvalidHealthFactorAfterDisablingCollateral ErrorCode = 100303
	// ErrAboveMaxLTV account max-LTV health factor below one
	ErrAboveMaxLTV ErrorCode = 100304

	// liquidation

	// ErrCannotLiquidateHealthyPosition liquidation health factor is above one
	ErrCannotLiquidateHealthyPosition ErrorCode = 100400
	// ErrCannotLiquidateWhenNoCollateralBalance target holds no requested collateral
	ErrCannotLiquidateWhenNoCollateralBalance ErrorCode = 100401
	// ErrCannotLiquidateWhenNoDebtBalance target owes no requested debt
	ErrCannotLiquidateWhenNoDebtBalance ErrorCode = 100402
	// ErrCannotLiquidateWhenCollateralUnset target's collateral row is disabled
	ErrCannotLiquidateWhenCollateralUnset ErrorCode = 100403
	// ErrCannotLiquidateWhenPositiveUncollateralizedLoanLimit uncollateralized debt is not liquidatable
	ErrCannotLiquidateWhenPositiveUncollateralizedLoanLimit ErrorCode = 100404
	// ErrInvalidLiquidation one of repay/seize is zero while the other is not
	ErrInvalidLiquidation ErrorCode = 100405

	// uncollateralized limits

	// ErrUserHasCollateralizedDebt cannot grant a limit over live collateralized debt
	ErrUserHasCollateralizedDebt ErrorCode = 100500
	// ErrUserHasUncollateralizedDebt cannot clear a limit while uncollateralized debt remains
	ErrUserHasUncollateralizedDebt ErrorCode = 100501
	// ErrCannotRepayUncollateralizedLoanOnBehalfOf repaying uncollateralized debt for somebody else
	ErrCannotRepayUncollateralizedLoanOnBehalfOf ErrorCode = 100502

	// math / infra

	// ErrMathOverflow amount does not fit into 128 bits
	ErrMathOverflow ErrorCode = 100600
	// ErrDivideByZero divisor is zero
	ErrDivideByZero ErrorCode = 100601
	// ErrInvalidPrice price exists but cannot be used
	ErrInvalidPrice ErrorCode = 100602
	// ErrNoPrice no price for the denom
	ErrNoPrice ErrorCode = 100603
	// ErrStalePrice price too old for the action context
	ErrStalePrice ErrorCode = 100604
)

func (e ErrorCode) String() string {
	return fmt.Sprintf("%d", int(e))
}

func (e ErrorCode) Error() string {
	return e.String()
}

// Errorf attaches a human readable message to a code
func (e ErrorCode) Errorf(format string, args ...interface{}) error {
	return &Error{Code: e, Msg: fmt.Sprintf(format, args...)}
}

// Error code plus message
type Error struct {
	Code ErrorCode `json:"code"`
	Msg  string    `json:"msg"`
}

func (e *Error) Error() string {
	if e.Msg == "" {
		return e.Code.String()
	}

	return fmt.Sprintf("%d: %s", int(e.Code), e.Msg)
}

// CodeOf extracts the error code, ErrUnknown if the error carries none
func CodeOf(err error) ErrorCode {
	switch v := err.(type) {
	case ErrorCode:
		return v
	case *Error:
		return v.Code
	default:
		return ErrUnknown
	}
}
