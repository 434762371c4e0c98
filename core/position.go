package core

import (
	"github.com/shopspring/decimal"
)

// Coin denom plus an integer amount in base units
type Coin struct {
	Denom  string          `json:"denom"`
	Amount decimal.Decimal `json:"amount"`
}

// VaultPositionState which lifecycle stage the vault shares are in
type VaultPositionState int

const (
	// VaultStateUnlocked freely withdrawable vault shares
	VaultStateUnlocked VaultPositionState = iota
	// VaultStateLocking locked shares plus scheduled unlocks
	VaultStateLocking
)

// VaultUnlocking a scheduled unlock: the base coin owed at maturity
type VaultUnlocking struct {
	ID   uint64 `json:"id"`
	Coin Coin   `json:"coin"`
}

// VaultPosition vault shares held by a credit account
type VaultPosition struct {
	Vault string             `json:"vault"`
	State VaultPositionState `json:"state"`

	// unlocked or locked share units, depending on State
	Units decimal.Decimal `json:"units"`

	// only for VaultStateLocking
	Unlocking []VaultUnlocking `json:"unlocking,omitempty"`
}

// PerpPosition valuation triple delegated by the perps engine
type PerpPosition struct {
	Denom string          `json:"denom"`
	Size  decimal.Decimal `json:"size"`

	// unrealized values already folded with funding and PnL
	CollateralValue decimal.Decimal `json:"collateral_value"`
	DebtValue       decimal.Decimal `json:"debt_value"`
}

// Position immutable account snapshot consumed by the health computer.
// The pooled-lending user is represented as (user, "").
type Position struct {
	UserID    string `json:"user_id"`
	AccountID string `json:"account_id"`

	Deposits  []Coin          `json:"deposits"`
	Lends     []Coin          `json:"lends"`
	Debts     []Coin          `json:"debts"`
	Vaults    []VaultPosition `json:"vaults"`
	StakedLPs []Coin          `json:"staked_lps"`
	Perps     []PerpPosition  `json:"perps"`
}

// DenomData resolved per-query data for one denom
type DenomData struct {
	Price  decimal.Decimal `json:"price"`
	Params AssetParams     `json:"params"`
}

// DenomsData denom -> price and params, resolved once per health query
type DenomsData map[string]DenomData

// VaultData resolved per-query data for one vault
type VaultData struct {
	// value of one vault share unit
	VaultCoinValue decimal.Decimal `json:"vault_coin_value"`
	// denom of the vault's base coin
	BaseCoinDenom string `json:"base_coin_denom"`

	MaxLTV               decimal.Decimal `json:"max_ltv"`
	LiquidationThreshold decimal.Decimal `json:"liquidation_threshold"`
	Whitelisted          bool            `json:"whitelisted"`
}

// VaultsData vault address -> valuation and weights
type VaultsData map[string]VaultData
