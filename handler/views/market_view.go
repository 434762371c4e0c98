package views

import (
	"redbank/core"

	"github.com/shopspring/decimal"
)

// Market market view with indices advanced to query time
type Market struct {
	core.Market
	Utilization     decimal.Decimal `json:"utilization"`
	TotalCollateral decimal.Decimal `json:"total_collateral"`
	TotalDebt       decimal.Decimal `json:"total_debt"`
}
