package core

import (
	"context"

	"github.com/shopspring/decimal"
)

// Health output of the health computer. Health factors are nil when the
// account carries no debt value.
type Health struct {
	TotalCollateralValue decimal.Decimal `json:"total_collateral_value"`
	TotalDebtValue       decimal.Decimal `json:"total_debt_value"`

	MaxLTVAdjustedCollateral               decimal.Decimal `json:"max_ltv_adjusted_collateral"`
	LiquidationThresholdAdjustedCollateral decimal.Decimal `json:"liquidation_threshold_adjusted_collateral"`

	MaxLTVHealthFactor      *decimal.Decimal `json:"max_ltv_health_factor,omitempty"`
	LiquidationHealthFactor *decimal.Decimal `json:"liquidation_health_factor,omitempty"`

	AboveMaxLTV  bool `json:"above_max_ltv"`
	Liquidatable bool `json:"liquidatable"`
}

// IHealthService assembles position snapshots and computes health
type IHealthService interface {
	// Position loads the red-bank deposits and debts of (user, account) at
	// current virtual indices together with the denom data they reference
	Position(ctx context.Context, userID, accountID string, kind PriceKind) (*Position, DenomsData, error)
	// Compute evaluates a snapshot; delisted denoms lose max-LTV weight but
	// keep their liquidation threshold
	Compute(ctx context.Context, position *Position, denoms DenomsData, vaults VaultsData, delisted map[string]bool) (*Health, error)
}
