package core

import (
	"time"

	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
)

// Config system configuration
type Config struct {
	DB db.Config `json:"db"`

	// Owner may create and update markets; EmergencyOwner may only set
	// borrow_enabled = false
	Owner          string `json:"owner"`
	EmergencyOwner string `json:"emergency_owner"`

	// CreditManager the only caller allowed to act on credit accounts
	CreditManager string `json:"credit_manager"`

	// RewardsCollector pseudo-user credited with the protocol reserve share
	RewardsCollector string `json:"rewards_collector"`

	// CloseFactor max fraction of a target's debt repayable per liquidation
	CloseFactor decimal.Decimal `json:"close_factor"`

	Oracle OracleConfig `json:"oracle"`
}

// OracleConfig price feed settings
type OracleConfig struct {
	FeedURL string `json:"feed_url"`

	// staleness windows per price kind
	StaleAfter            time.Duration `json:"stale_after"`
	LiquidationStaleAfter time.Duration `json:"liquidation_stale_after"`
}
