package core

import (
	"context"
	"time"

	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
)

// AssetParams risk parameters of one denom from the params registry
type AssetParams struct {
	MaxLTV               decimal.Decimal `json:"max_ltv"`
	LiquidationThreshold decimal.Decimal `json:"liquidation_threshold"`
	LiquidationBonus     decimal.Decimal `json:"liquidation_bonus"`
	DepositCap           decimal.Decimal `json:"deposit_cap"`

	// two-tier whitelist: dropping the LTV tier "soft retires" an asset
	// without triggering liquidations
	WhitelistedForLTV         bool `json:"whitelisted_for_ltv"`
	WhitelistedForLiquidation bool `json:"whitelisted_for_liquidation"`
}

// AssetParam stored params registry row
type AssetParam struct {
	ID    uint64 `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id"`
	Denom string `sql:"size:64;unique_index:param_denom_idx" json:"denom"`

	MaxLTV               decimal.Decimal `sql:"type:decimal(20,18)" json:"max_ltv"`
	LiquidationThreshold decimal.Decimal `sql:"type:decimal(20,18)" json:"liquidation_threshold"`
	LiquidationBonus     decimal.Decimal `sql:"type:decimal(20,18)" json:"liquidation_bonus"`
	DepositCap           decimal.Decimal `sql:"type:decimal(40,0)" json:"deposit_cap"`

	WhitelistedForLTV         bool `sql:"default:1" json:"whitelisted_for_ltv"`
	WhitelistedForLiquidation bool `sql:"default:1" json:"whitelisted_for_liquidation"`

	Version   int64     `sql:"default:0" json:"version"`
	CreatedAt time.Time `sql:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `sql:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// Params params of a stored row
func (p *AssetParam) Params() AssetParams {
	return AssetParams{
		MaxLTV:                    p.MaxLTV,
		LiquidationThreshold:      p.LiquidationThreshold,
		LiquidationBonus:          p.LiquidationBonus,
		DepositCap:                p.DepositCap,
		WhitelistedForLTV:         p.WhitelistedForLTV,
		WhitelistedForLiquidation: p.WhitelistedForLiquidation,
	}
}

// IParamStore params registry row store
type IParamStore interface {
	Find(ctx context.Context, denom string) (*AssetParam, error)
	All(ctx context.Context) ([]*AssetParam, error)
	Save(ctx context.Context, tx *db.DB, param *AssetParam) error
}

// IParamsService params registry adapter
type IParamsService interface {
	// Asset fails with ErrAssetNotInitialized when the denom is unknown
	Asset(ctx context.Context, denom string) (AssetParams, error)
}
