package core

import (
	"context"
	"time"

	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
)

// Debt per (user, denom) borrow row, amount scaled by the borrow index at
// write time. Deleted when fully repaid.
type Debt struct {
	ID     uint64 `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id"`
	UserID string `sql:"size:64;unique_index:debt_idx" json:"user_id"`
	Denom  string `sql:"size:64;unique_index:debt_idx" json:"denom"`

	AmountScaled decimal.Decimal `sql:"type:decimal(64,0)" json:"amount_scaled"`

	// true iff an uncollateralized loan limit was set when the debt was
	// taken; such debt skips health checks and cannot be liquidated
	Uncollateralized bool `sql:"default:0" json:"uncollateralized"`

	Version   int64     `sql:"default:0" json:"version"`
	CreatedAt time.Time `sql:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `sql:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// IDebtStore debt ledger store
type IDebtStore interface {
	// Find returns a zero-ID row when none exists
	Find(ctx context.Context, userID, denom string) (*Debt, error)
	FindByUser(ctx context.Context, userID string) ([]*Debt, error)
	List(ctx context.Context, userID, fromDenom string, limit int) ([]*Debt, error)
	// IsBorrowing true iff any debt row exists for the user
	IsBorrowing(ctx context.Context, userID string) (bool, error)
	Create(ctx context.Context, tx *db.DB, debt *Debt) error
	Update(ctx context.Context, tx *db.DB, debt *Debt) error
	Delete(ctx context.Context, tx *db.DB, debt *Debt) error
	SumScaledByDenom(ctx context.Context, denom string) (decimal.Decimal, error)
}
