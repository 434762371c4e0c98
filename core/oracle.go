package core

import (
	"context"
	"time"

	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
)

// PriceKind action context for a price query; liquidation prices may follow
// looser staleness rules so liquidators are never locked out by a lagging feed
type PriceKind int

const (
	// PriceKindDefault regular action context
	PriceKindDefault PriceKind = iota
	// PriceKindLiquidation liquidation context
	PriceKindLiquidation
)

// Price latest known price of a denom
type Price struct {
	ID        uint64          `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id"`
	Denom     string          `sql:"size:64;unique_index:price_denom_idx" json:"denom"`
	Price     decimal.Decimal `sql:"type:decimal(40,18)" json:"price"`
	UpdatedAt time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// IPriceStore price row store
type IPriceStore interface {
	Find(ctx context.Context, denom string) (*Price, error)
	All(ctx context.Context) ([]*Price, error)
	Save(ctx context.Context, tx *db.DB, price *Price) error
}

// IOracleService price oracle adapter
type IOracleService interface {
	// Price fails with ErrNoPrice or ErrStalePrice
	Price(ctx context.Context, denom string, kind PriceKind) (decimal.Decimal, error)
}
