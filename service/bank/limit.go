package bank

import (
	"context"

	"redbank/core"

	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
)

func (s *service) UpdateUncollateralizedLoanLimit(ctx context.Context, caller, userID, denom string, newLimit decimal.Decimal) error {
	if caller != s.cfg.Owner {
		return core.ErrUnauthorized.Errorf("only the owner may set loan limits")
	}

	if newLimit.IsNegative() {
		return core.ErrInvalidParam.Errorf("limit must not be negative: %s", newLimit)
	}

	if _, err := s.findMarket(ctx, denom); err != nil {
		return err
	}

	return s.run(func(tx *db.DB) error {
		debt, err := s.debts.Find(ctx, userID, denom)
		if err != nil {
			return err
		}

		hasDebt := debt.ID != 0 && debt.AmountScaled.IsPositive()

		if newLimit.IsPositive() && hasDebt && !debt.Uncollateralized {
			return core.ErrUserHasCollateralizedDebt.Errorf("%s has collateralized %s debt", userID, denom)
		}

		if newLimit.IsZero() && hasDebt && debt.Uncollateralized {
			return core.ErrUserHasUncollateralizedDebt.Errorf("%s has uncollateralized %s debt", userID, denom)
		}

		limit, err := s.limits.Find(ctx, userID, denom)
		if err != nil {
			return err
		}

		limit.UserID = userID
		limit.Denom = denom
		limit.Limit = newLimit
		if err := s.limits.Set(ctx, tx, limit); err != nil {
			return err
		}

		return s.writeTransaction(ctx, tx, core.ActionTypeUpdateLimit, caller, userID, denom, newLimit, nil)
	})
}
