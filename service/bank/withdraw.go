package bank

import (
	"context"
	"time"

	"redbank/core"
	"redbank/pkg/number"
	"redbank/pkg/redbank"

	"github.com/fox-one/pkg/logger"
	"github.com/fox-one/pkg/store/db"
)

func (s *service) Withdraw(ctx context.Context, req core.WithdrawReq) error {
	log := logger.FromContext(ctx).WithField("action", "withdraw")

	if req.AccountID != "" && req.Caller != s.cfg.CreditManager {
		return core.ErrUnauthorized.Errorf("only the credit manager may act on credit accounts")
	}

	market, err := s.findMarket(ctx, req.Denom)
	if err != nil {
		return err
	}

	kind := core.PriceKindDefault
	if req.LiquidationRelated {
		kind = core.PriceKindLiquidation
	}

	now := time.Now()
	return s.run(func(tx *db.DB) error {
		if err := s.marketz.Accrue(ctx, tx, market, now); err != nil {
			return err
		}

		row, err := s.collaterals.Find(ctx, req.UserID, req.AccountID, req.Denom)
		if err != nil {
			return err
		}

		if row.ID == 0 || !row.AmountScaled.IsPositive() {
			return core.ErrInvalidWithdrawAmount.Errorf("no %s collateral", req.Denom)
		}

		balance, err := number.DescaleLiquidity(row.AmountScaled, market.LiquidityIndex)
		if err != nil {
			return err
		}

		amount := balance
		if req.Amount != nil {
			amount = *req.Amount
		}

		if !amount.IsPositive() || amount.GreaterThan(balance) {
			return core.ErrInvalidWithdrawAmount.Errorf("withdraw %s over balance %s", amount, balance)
		}

		available, err := redbank.AvailableLiquidity(market)
		if err != nil {
			return err
		}

		if amount.GreaterThan(available) {
			return core.ErrOperationExceedsAvailableLiquidity.Errorf("withdraw %s over available %s", amount, available)
		}

		// a disabled row carries no health weight, so removing it cannot
		// worsen solvency
		if row.Enabled {
			borrowing, err := s.debts.IsBorrowing(ctx, req.UserID)
			if err != nil {
				return err
			}

			if borrowing {
				position, denoms, err := s.healthz.Position(ctx, req.UserID, req.AccountID, kind)
				if err != nil {
					return err
				}

				reduceDeposit(position, req.Denom, amount)
				health, err := s.healthz.Compute(ctx, position, denoms, nil, nil)
				if err != nil {
					return err
				}

				if health.Liquidatable {
					return core.ErrInvalidHealthFactorAfterWithdraw.Errorf("liquidation health factor %s", health.LiquidationHealthFactor)
				}
			}
		}

		// full withdrawals remove the whole row so no scaled dust survives
		scaled := row.AmountScaled
		if amount.LessThan(balance) {
			if scaled, err = number.ScaleLiquidity(amount, market.LiquidityIndex); err != nil {
				return err
			}
		}

		deleted, err := s.debitCollateral(ctx, tx, market, row, scaled)
		if err != nil {
			log.WithError(err).Errorln("collaterals.Debit")
			return err
		}

		if err := redbank.DecreaseCollateral(market, scaled); err != nil {
			return err
		}

		if err := redbank.Reprice(market); err != nil {
			return err
		}

		if err := s.markets.Update(ctx, tx, market); err != nil {
			log.WithError(err).Errorln("markets.Update")
			return err
		}

		recipient := req.Recipient
		if recipient == "" {
			recipient = req.UserID
		}

		if err := s.queueTransfer(ctx, tx, recipient, req.Denom, amount, core.TransferSourceWithdraw); err != nil {
			return err
		}

		extra := core.NewTransactionExtra()
		extra.Put(core.EventKeyAmountScaled, scaled)
		extra.Put(core.EventKeyRecipient, recipient)
		extra.Put(core.EventKeyInterestsUpdated, interestsEvent(market))
		if deleted {
			extra.Put(core.EventKeyCollateralPositionChanged, "deleted")
		}

		return s.writeTransaction(ctx, tx, core.ActionTypeWithdraw, req.UserID, "", req.Denom, amount, extra)
	})
}
