package core

import (
	"context"
	"time"

	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
)

// Market per-denom money market state
//
// LiquidityIndex and BorrowIndex are cumulative growth factors; user rows
// store amounts scaled by the index at write time, so interest accrues
// implicitly. Both indices are monotonically non-decreasing and reflect
// accrual up to exactly IndexesLastUpdated.
type Market struct {
	ID    uint64 `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id"`
	Denom string `sql:"size:64;unique_index:denom_idx" json:"denom"`

	LiquidityIndex decimal.Decimal `sql:"type:decimal(40,18);default:1" json:"liquidity_index"`
	BorrowIndex    decimal.Decimal `sql:"type:decimal(40,18);default:1" json:"borrow_index"`

	// annualized rates, recomputed after every state change
	BorrowRate    decimal.Decimal `sql:"type:decimal(40,18)" json:"borrow_rate"`
	LiquidityRate decimal.Decimal `sql:"type:decimal(40,18)" json:"liquidity_rate"`

	// fraction of borrow interest kept by the protocol, [0, 1)
	ReserveFactor decimal.Decimal `sql:"type:decimal(20,18)" json:"reserve_factor"`

	// unix seconds of the last index update
	IndexesLastUpdated int64 `sql:"default:0" json:"indexes_last_updated"`

	CollateralTotalScaled decimal.Decimal `sql:"type:decimal(64,0)" json:"collateral_total_scaled"`
	DebtTotalScaled       decimal.Decimal `sql:"type:decimal(64,0)" json:"debt_total_scaled"`

	// interest rate curve shape, immutable after init
	OptimalUtilization decimal.Decimal `sql:"type:decimal(20,18)" json:"optimal_utilization"`
	BaseRate           decimal.Decimal `sql:"type:decimal(20,18)" json:"base_rate"`
	Slope1             decimal.Decimal `sql:"type:decimal(20,18)" json:"slope_1"`
	Slope2             decimal.Decimal `sql:"type:decimal(20,18)" json:"slope_2"`

	DepositEnabled bool `sql:"default:1" json:"deposit_enabled"`
	BorrowEnabled  bool `sql:"default:1" json:"borrow_enabled"`

	// upper bound on total underlying deposits
	DepositCap decimal.Decimal `sql:"type:decimal(40,0)" json:"deposit_cap"`

	// copied from the params registry at read time
	LiquidationBonus decimal.Decimal `sql:"type:decimal(20,18)" json:"liquidation_bonus"`

	Version   int64     `sql:"default:0" json:"version"`
	CreatedAt time.Time `sql:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `sql:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// IMarketStore market store interface
type IMarketStore interface {
	Create(ctx context.Context, tx *db.DB, market *Market) error
	Find(ctx context.Context, denom string) (*Market, error)
	All(ctx context.Context) ([]*Market, error)
	AllAsMap(ctx context.Context) (map[string]*Market, error)
	Update(ctx context.Context, tx *db.DB, market *Market) error
}

// IMarketService market level operations
type IMarketService interface {
	// Accrue fast-forwards the market's indices to now inside tx, crediting
	// the reserve share of interest to the rewards collector's collateral row
	Accrue(ctx context.Context, tx *db.DB, market *Market, now time.Time) error
	// Reprice recomputes utilization and both rates from current totals
	Reprice(ctx context.Context, market *Market) error
	// VirtualMarket returns a copy with indices advanced to now without persisting
	VirtualMarket(ctx context.Context, market *Market, now time.Time) (*Market, error)
}
