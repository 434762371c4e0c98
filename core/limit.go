package core

import (
	"context"
	"time"

	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
)

// UncollateralizedLoanLimit per (user, denom) cap in underlying units that
// permits borrowing without health checks. Debt taken under a limit is not
// subject to liquidation.
type UncollateralizedLoanLimit struct {
	ID     uint64 `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id"`
	UserID string `sql:"size:64;unique_index:limit_idx" json:"user_id"`
	Denom  string `sql:"size:64;unique_index:limit_idx" json:"denom"`

	Limit decimal.Decimal `sql:"type:decimal(40,0)" json:"limit"`

	Version   int64     `sql:"default:0" json:"version"`
	CreatedAt time.Time `sql:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `sql:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// ILimitStore uncollateralized loan limit store
type ILimitStore interface {
	// Find returns a zero-ID row when none exists
	Find(ctx context.Context, userID, denom string) (*UncollateralizedLoanLimit, error)
	FindByUser(ctx context.Context, userID string) ([]*UncollateralizedLoanLimit, error)
	Set(ctx context.Context, tx *db.DB, limit *UncollateralizedLoanLimit) error
}
