package core

import (
	"context"

	"github.com/shopspring/decimal"
)

// IIncentivesService rewards accounting hook. Called before every
// user-level balance delta so the incentives contract can settle its own
// reward index against the pre-change balances. Fire and forget: failures
// are logged, never propagated.
type IIncentivesService interface {
	OnBalanceChange(ctx context.Context, userID, denom string, userScaledBefore, totalScaledBefore decimal.Decimal)
}
