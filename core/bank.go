package core

import (
	"context"

	"github.com/shopspring/decimal"
)

// DepositReq deposit attached funds as collateral. OnBehalfOf, when set,
// names the account credited instead of the sender.
type DepositReq struct {
	UserID     string
	Denom      string
	Amount     decimal.Decimal
	OnBehalfOf string
}

// WithdrawReq withdraw collateral. A nil Amount withdraws the full balance.
// AccountID may only be supplied by the credit manager; LiquidationRelated
// switches the oracle into its liquidation price context.
type WithdrawReq struct {
	UserID             string
	Denom              string
	Amount             *decimal.Decimal
	Recipient          string
	AccountID          string
	Caller             string
	LiquidationRelated bool
}

// BorrowReq borrow against deposited collateral
type BorrowReq struct {
	UserID    string
	Denom     string
	Amount    decimal.Decimal
	Recipient string
}

// RepayReq repay attached funds against debt; excess is refunded
type RepayReq struct {
	UserID     string
	Denom      string
	Amount     decimal.Decimal
	OnBehalfOf string
}

// LiquidateReq repay Target's debt with attached funds and seize collateral
type LiquidateReq struct {
	Liquidator      string
	Target          string
	DebtDenom       string
	CollateralDenom string
	SentDebtAmount  decimal.Decimal
	Recipient       string
}

// AssetReq market creation / update parameters
type AssetReq struct {
	Caller string
	Denom  string

	ReserveFactor        decimal.Decimal
	OptimalUtilization   decimal.Decimal
	BaseRate             decimal.Decimal
	Slope1               decimal.Decimal
	Slope2               decimal.Decimal
	MaxLTV               decimal.Decimal
	LiquidationThreshold decimal.Decimal
	LiquidationBonus     decimal.Decimal
	DepositCap           decimal.Decimal
	DepositEnabled       bool
	BorrowEnabled        bool
}

// LiquidateResult what a successful liquidation settled
type LiquidateResult struct {
	DebtToRepay            decimal.Decimal `json:"debt_to_repay"`
	CollateralSeized       decimal.Decimal `json:"collateral_seized"`
	CollateralSeizedScaled decimal.Decimal `json:"collateral_seized_scaled"`
	Refund                 decimal.Decimal `json:"refund"`
}

// IBankService the action surface of the red bank. Every method runs
// atomically: accrue, mutate ledger, mutate market totals, reprice, then
// health-check when the action could worsen solvency.
type IBankService interface {
	InitAsset(ctx context.Context, req AssetReq) error
	UpdateAsset(ctx context.Context, req AssetReq) error
	UpdateUncollateralizedLoanLimit(ctx context.Context, caller, userID, denom string, newLimit decimal.Decimal) error

	Deposit(ctx context.Context, req DepositReq) error
	Withdraw(ctx context.Context, req WithdrawReq) error
	Borrow(ctx context.Context, req BorrowReq) error
	Repay(ctx context.Context, req RepayReq) error
	Liquidate(ctx context.Context, req LiquidateReq) (*LiquidateResult, error)
	UpdateAssetCollateralStatus(ctx context.Context, userID, denom string, enabled bool) error
}
