package core

import (
	"context"
	"encoding/json"
	"time"

	"github.com/fox-one/pkg/store/db"
	"github.com/jmoiron/sqlx/types"
	"github.com/shopspring/decimal"
)

// ActionType user action kind
type ActionType int

const (
	// ActionTypeDefault zero value
	ActionTypeDefault ActionType = iota
	// ActionTypeInitAsset owner creates a market
	ActionTypeInitAsset
	// ActionTypeUpdateAsset owner updates market params
	ActionTypeUpdateAsset
	// ActionTypeDeposit deposit collateral
	ActionTypeDeposit
	// ActionTypeWithdraw withdraw collateral
	ActionTypeWithdraw
	// ActionTypeBorrow take debt
	ActionTypeBorrow
	// ActionTypeRepay repay debt
	ActionTypeRepay
	// ActionTypeLiquidate third-party liquidation
	ActionTypeLiquidate
	// ActionTypeUpdateCollateralStatus user toggles the enabled flag
	ActionTypeUpdateCollateralStatus
	// ActionTypeUpdateLimit owner updates an uncollateralized loan limit
	ActionTypeUpdateLimit
)

var actionNames = map[ActionType]string{
	ActionTypeInitAsset:              "init_asset",
	ActionTypeUpdateAsset:            "update_asset",
	ActionTypeDeposit:                "deposit",
	ActionTypeWithdraw:               "withdraw",
	ActionTypeBorrow:                 "borrow",
	ActionTypeRepay:                  "repay",
	ActionTypeLiquidate:              "liquidate",
	ActionTypeUpdateCollateralStatus: "update_asset_collateral_status",
	ActionTypeUpdateLimit:            "update_uncollateralized_loan_limit",
}

func (a ActionType) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}

	return "unknown"
}

// event keys carried in the transaction extra payload

const (
	// EventKeyInterestsUpdated accrual snapshot {denom, borrow_index, liquidity_index, borrow_rate, liquidity_rate}
	EventKeyInterestsUpdated = "interests_updated"
	// EventKeyCollateralPositionChanged a collateral row appeared or disappeared
	EventKeyCollateralPositionChanged = "collateral_position_changed"
	// EventKeyDebtPositionChanged a debt row appeared or disappeared
	EventKeyDebtPositionChanged = "debt_position_changed"
	// EventKeyAmountScaled scaled delta applied by the action
	EventKeyAmountScaled = "amount_scaled"
	// EventKeyRecipient transfer recipient
	EventKeyRecipient = "recipient"
	// EventKeyRefund refunded amount
	EventKeyRefund = "refund"
)

// TransactionExtra free-form event payload
type TransactionExtra map[string]interface{}

// NewTransactionExtra new extra payload
func NewTransactionExtra() TransactionExtra {
	return make(TransactionExtra)
}

// Put put data
func (t TransactionExtra) Put(key string, value interface{}) {
	t[key] = value
}

// Format marshal as json
func (t TransactionExtra) Format() []byte {
	bs, err := json.Marshal(t)
	if err != nil {
		return []byte("{}")
	}

	return bs
}

// InterestsUpdatedEvent accrual event payload
type InterestsUpdatedEvent struct {
	Denom          string          `json:"denom"`
	BorrowIndex    decimal.Decimal `json:"borrow_index"`
	LiquidityIndex decimal.Decimal `json:"liquidity_index"`
	BorrowRate     decimal.Decimal `json:"borrow_rate"`
	LiquidityRate  decimal.Decimal `json:"liquidity_rate"`
}

// Transaction one executed action with its observable event payload
type Transaction struct {
	ID        int64           `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id"`
	Action    ActionType      `json:"action"`
	TraceID   string          `sql:"size:36;unique_index:idx_transactions_trace_id" json:"trace_id"`
	UserID    string          `sql:"size:64;index:idx_transactions_user_id" json:"user_id"`
	TargetID  string          `sql:"size:64" json:"target_id,omitempty"`
	Denom     string          `sql:"size:64;index:idx_transactions_denom" json:"denom"`
	Amount    decimal.Decimal `sql:"type:decimal(40,0)" json:"amount"`
	Data      types.JSONText  `sql:"type:TEXT" json:"data,omitempty"`
	CreatedAt time.Time       `sql:"default:CURRENT_TIMESTAMP;index:idx_transactions_created_at" json:"created_at"`
}

// SetExtra attach the event payload
func (t *Transaction) SetExtra(extra TransactionExtra) {
	data := []byte("{}")
	if extra != nil {
		data = extra.Format()
	}

	t.Data = data
}

// ITransactionStore action event log
type ITransactionStore interface {
	Create(ctx context.Context, tx *db.DB, transaction *Transaction) error
	FindByTraceID(ctx context.Context, traceID string) (*Transaction, error)
	List(ctx context.Context, offset time.Time, limit int) ([]*Transaction, error)
}
