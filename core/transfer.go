package core

import (
	"context"
	"time"

	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
)

// TransferSource what produced an outgoing transfer
type TransferSource string

const (
	// TransferSourceWithdraw withdrawn collateral
	TransferSourceWithdraw TransferSource = "withdraw"
	// TransferSourceBorrow borrowed funds
	TransferSourceBorrow TransferSource = "borrow"
	// TransferSourceRepayRefund excess repayment returned to the caller
	TransferSourceRepayRefund TransferSource = "repay_refund"
	// TransferSourceLiquidationRefund unused debt funds returned to the liquidator
	TransferSourceLiquidationRefund TransferSource = "liquidation_refund"
)

// Transfer queued outgoing payment. Handlers never move tokens themselves;
// they enqueue transfers inside the action's transaction and the cashier
// worker drains the queue after commit.
type Transfer struct {
	ID       uint64          `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id"`
	TraceID  string          `sql:"size:36;unique_index:transfer_trace_idx" json:"trace_id"`
	Opponent string          `sql:"size:64;index:transfer_opponent_idx" json:"opponent"`
	Denom    string          `sql:"size:64" json:"denom"`
	Amount   decimal.Decimal `sql:"type:decimal(40,0)" json:"amount"`
	Source   TransferSource  `sql:"size:32" json:"source"`

	Handled   bool      `sql:"default:0" json:"handled"`
	CreatedAt time.Time `sql:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `sql:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// ITransferStore outgoing transfer queue
type ITransferStore interface {
	Create(ctx context.Context, tx *db.DB, transfer *Transfer) error
	Top(ctx context.Context, limit int) ([]*Transfer, error)
	Handled(ctx context.Context, tx *db.DB, id uint64) error
}

// IWalletService moves tokens out of the pool. Actual token movement is
// outside the core; implementations talk to the host chain or test doubles.
type IWalletService interface {
	Transfer(ctx context.Context, transfer *Transfer) error
}
