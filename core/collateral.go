package core

import (
	"context"
	"time"

	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
)

// Collateral per (user, account, denom) deposit row, amount scaled by the
// liquidity index at write time. A row only exists while AmountScaled is
// nonzero; it is deleted on return to zero.
type Collateral struct {
	ID        uint64 `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id"`
	UserID    string `sql:"size:64;unique_index:collateral_idx" json:"user_id"`
	AccountID string `sql:"size:64;unique_index:collateral_idx" json:"account_id"`
	Denom     string `sql:"size:64;unique_index:collateral_idx" json:"denom"`

	AmountScaled decimal.Decimal `sql:"type:decimal(64,0)" json:"amount_scaled"`

	// if false, the row does not count towards either health factor but
	// still counts for withdrawability
	Enabled bool `sql:"default:1" json:"enabled"`

	Version   int64     `sql:"default:0" json:"version"`
	CreatedAt time.Time `sql:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `sql:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// ICollateralStore collateral ledger store
type ICollateralStore interface {
	// Find returns a zero-ID row when none exists
	Find(ctx context.Context, userID, accountID, denom string) (*Collateral, error)
	FindByUser(ctx context.Context, userID, accountID string) ([]*Collateral, error)
	// List paginates a user's rows ordered by denom, starting after fromDenom
	List(ctx context.Context, userID, accountID, fromDenom string, limit int) ([]*Collateral, error)
	Create(ctx context.Context, tx *db.DB, collateral *Collateral) error
	Update(ctx context.Context, tx *db.DB, collateral *Collateral) error
	Delete(ctx context.Context, tx *db.DB, collateral *Collateral) error
	// SumScaledByDenom conservation check support: sum of all rows of one denom
	SumScaledByDenom(ctx context.Context, denom string) (decimal.Decimal, error)
}
