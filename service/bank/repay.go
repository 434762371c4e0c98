package bank

import (
	"context"
	"time"

	"redbank/core"
	"redbank/pkg/number"
	"redbank/pkg/redbank"

	"github.com/fox-one/pkg/logger"
	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
)

func (s *service) Repay(ctx context.Context, req core.RepayReq) error {
	log := logger.FromContext(ctx).WithField("action", "repay")

	if !req.Amount.IsPositive() {
		return core.ErrInvalidParam.Errorf("repay amount must be positive: %s", req.Amount)
	}

	userID := req.UserID
	onBehalf := req.OnBehalfOf != "" && req.OnBehalfOf != req.UserID
	if onBehalf {
		userID = req.OnBehalfOf
	}

	market, err := s.findMarket(ctx, req.Denom)
	if err != nil {
		return err
	}

	now := time.Now()
	return s.run(func(tx *db.DB) error {
		row, err := s.debts.Find(ctx, userID, req.Denom)
		if err != nil {
			return err
		}

		if row.ID == 0 || !row.AmountScaled.IsPositive() {
			return core.ErrCannotRepayZeroDebt.Errorf("%s owes no %s", userID, req.Denom)
		}

		if onBehalf && row.Uncollateralized {
			return core.ErrCannotRepayUncollateralizedLoanOnBehalfOf.Errorf("%s's %s debt is uncollateralized", userID, req.Denom)
		}

		if err := s.marketz.Accrue(ctx, tx, market, now); err != nil {
			return err
		}

		current, err := number.DescaleDebt(row.AmountScaled, market.BorrowIndex)
		if err != nil {
			return err
		}

		refund := decimal.Zero
		scaled := row.AmountScaled
		deleted := true

		if req.Amount.GreaterThanOrEqual(current) {
			refund = req.Amount.Sub(current)
			if err := s.debts.Delete(ctx, tx, row); err != nil {
				log.WithError(err).Errorln("debts.Delete")
				return err
			}
		} else {
			if scaled, err = number.ScaleDebt(req.Amount, market.BorrowIndex); err != nil {
				return err
			}

			if scaled.GreaterThanOrEqual(row.AmountScaled) {
				scaled = row.AmountScaled
				if err := s.debts.Delete(ctx, tx, row); err != nil {
					log.WithError(err).Errorln("debts.Delete")
					return err
				}
			} else {
				deleted = false
				row.AmountScaled = row.AmountScaled.Sub(scaled)
				if err := s.debts.Update(ctx, tx, row); err != nil {
					log.WithError(err).Errorln("debts.Update")
					return err
				}
			}
		}

		if err := redbank.DecreaseDebt(market, scaled); err != nil {
			return err
		}

		if err := redbank.Reprice(market); err != nil {
			return err
		}

		if err := s.markets.Update(ctx, tx, market); err != nil {
			log.WithError(err).Errorln("markets.Update")
			return err
		}

		// excess always goes back to whoever attached the funds
		if refund.IsPositive() {
			if err := s.queueTransfer(ctx, tx, req.UserID, req.Denom, refund, core.TransferSourceRepayRefund); err != nil {
				return err
			}
		}

		extra := core.NewTransactionExtra()
		extra.Put(core.EventKeyAmountScaled, scaled)
		extra.Put(core.EventKeyInterestsUpdated, interestsEvent(market))
		if refund.IsPositive() {
			extra.Put(core.EventKeyRefund, refund)
		}
		if deleted {
			extra.Put(core.EventKeyDebtPositionChanged, "deleted")
		}

		return s.writeTransaction(ctx, tx, core.ActionTypeRepay, req.UserID, userID, req.Denom, req.Amount, extra)
	})
}
