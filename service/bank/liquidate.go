package bank

import (
	"context"
	"time"

	"redbank/core"
	"redbank/internal/liquidation"
	"redbank/pkg/number"
	"redbank/pkg/redbank"

	"github.com/fox-one/pkg/logger"
	"github.com/fox-one/pkg/store/db"
)

// Liquidate repays part of an unhealthy target's debt with attached funds and
// hands the bonused collateral to the recipient. Seized collateral is
// redistributed between user rows, so market totals only move on the debt
// side.
//
// When debt and collateral share a denom, the single market is accrued and
// persisted once; the debt delta lands before the one reprice.
func (s *service) Liquidate(ctx context.Context, req core.LiquidateReq) (*core.LiquidateResult, error) {
	log := logger.FromContext(ctx).WithField("action", "liquidate")

	if !req.SentDebtAmount.IsPositive() {
		return nil, core.ErrInvalidParam.Errorf("sent amount must be positive: %s", req.SentDebtAmount)
	}

	debtMarket, err := s.findMarket(ctx, req.DebtDenom)
	if err != nil {
		return nil, err
	}

	collateralMarket := debtMarket
	if req.CollateralDenom != req.DebtDenom {
		if collateralMarket, err = s.findMarket(ctx, req.CollateralDenom); err != nil {
			return nil, err
		}
	}

	var result *core.LiquidateResult
	now := time.Now()

	err = s.run(func(tx *db.DB) error {
		limit, err := s.limits.Find(ctx, req.Target, req.DebtDenom)
		if err != nil {
			return err
		}

		if limit.ID != 0 && limit.Limit.IsPositive() {
			return core.ErrCannotLiquidateWhenPositiveUncollateralizedLoanLimit.Errorf("%s has an uncollateralized limit on %s", req.Target, req.DebtDenom)
		}

		collateralRow, err := s.collaterals.Find(ctx, req.Target, "", req.CollateralDenom)
		if err != nil {
			return err
		}

		if collateralRow.ID == 0 || !collateralRow.AmountScaled.IsPositive() {
			return core.ErrCannotLiquidateWhenNoCollateralBalance.Errorf("%s holds no %s", req.Target, req.CollateralDenom)
		}

		if !collateralRow.Enabled {
			return core.ErrCannotLiquidateWhenCollateralUnset.Errorf("%s's %s collateral is disabled", req.Target, req.CollateralDenom)
		}

		debtRow, err := s.debts.Find(ctx, req.Target, req.DebtDenom)
		if err != nil {
			return err
		}

		if debtRow.ID == 0 || !debtRow.AmountScaled.IsPositive() {
			return core.ErrCannotLiquidateWhenNoDebtBalance.Errorf("%s owes no %s", req.Target, req.DebtDenom)
		}

		position, denoms, err := s.healthz.Position(ctx, req.Target, "", core.PriceKindLiquidation)
		if err != nil {
			return err
		}

		health, err := s.healthz.Compute(ctx, position, denoms, nil, nil)
		if err != nil {
			return err
		}

		if !health.Liquidatable {
			return core.ErrCannotLiquidateHealthyPosition.Errorf("liquidation health factor %s", health.LiquidationHealthFactor)
		}

		if err := s.marketz.Accrue(ctx, tx, debtMarket, now); err != nil {
			return err
		}

		if collateralMarket != debtMarket {
			if err := s.marketz.Accrue(ctx, tx, collateralMarket, now); err != nil {
				return err
			}
		}

		collateralPrice, err := s.oraclez.Price(ctx, req.CollateralDenom, core.PriceKindLiquidation)
		if err != nil {
			return err
		}

		debtPrice, err := s.oraclez.Price(ctx, req.DebtDenom, core.PriceKindLiquidation)
		if err != nil {
			return err
		}

		userDebt, err := number.DescaleDebt(debtRow.AmountScaled, debtMarket.BorrowIndex)
		if err != nil {
			return err
		}

		out, err := liquidation.Compute(liquidation.Input{
			UserCollateralScaled: collateralRow.AmountScaled,
			UserDebtUnderlying:   userDebt,
			SentDebtAmount:       req.SentDebtAmount,
			LiquidityIndex:       collateralMarket.LiquidityIndex,
			LiquidationBonus:     collateralMarket.LiquidationBonus,
			CollateralPrice:      collateralPrice,
			DebtPrice:            debtPrice,
			CloseFactor:          s.cfg.CloseFactor,
		})
		if err != nil {
			return err
		}

		recipient := req.Recipient
		if recipient == "" {
			recipient = req.Liquidator
		}

		if out.CollateralToSeizeScaled.IsPositive() {
			if _, err := s.debitCollateral(ctx, tx, collateralMarket, collateralRow, out.CollateralToSeizeScaled); err != nil {
				log.WithError(err).Errorln("collaterals.Debit target")
				return err
			}

			if _, err := s.creditCollateral(ctx, tx, collateralMarket, recipient, "", out.CollateralToSeizeScaled); err != nil {
				log.WithError(err).Errorln("collaterals.Credit recipient")
				return err
			}
		}

		if out.DebtToRepay.IsPositive() {
			debtScaled, err := number.ScaleDebt(out.DebtToRepay, debtMarket.BorrowIndex)
			if err != nil {
				return err
			}

			if debtScaled.GreaterThan(debtRow.AmountScaled) {
				debtScaled = debtRow.AmountScaled
			}

			debtRow.AmountScaled = debtRow.AmountScaled.Sub(debtScaled)
			if !debtRow.AmountScaled.IsPositive() {
				if err := s.debts.Delete(ctx, tx, debtRow); err != nil {
					return err
				}
			} else if err := s.debts.Update(ctx, tx, debtRow); err != nil {
				return err
			}

			if err := redbank.DecreaseDebt(debtMarket, debtScaled); err != nil {
				return err
			}
		}

		if err := redbank.Reprice(debtMarket); err != nil {
			return err
		}

		if err := s.markets.Update(ctx, tx, debtMarket); err != nil {
			return err
		}

		if collateralMarket != debtMarket {
			if err := redbank.Reprice(collateralMarket); err != nil {
				return err
			}

			if err := s.markets.Update(ctx, tx, collateralMarket); err != nil {
				return err
			}
		}

		if out.Refund.IsPositive() {
			if err := s.queueTransfer(ctx, tx, req.Liquidator, req.DebtDenom, out.Refund, core.TransferSourceLiquidationRefund); err != nil {
				return err
			}
		}

		extra := core.NewTransactionExtra()
		extra.Put("debt_to_repay", out.DebtToRepay)
		extra.Put("collateral_seized", out.CollateralToSeize)
		extra.Put(core.EventKeyAmountScaled, out.CollateralToSeizeScaled)
		extra.Put(core.EventKeyRecipient, recipient)
		if out.Refund.IsPositive() {
			extra.Put(core.EventKeyRefund, out.Refund)
		}

		if err := s.writeTransaction(ctx, tx, core.ActionTypeLiquidate, req.Liquidator, req.Target, req.DebtDenom, req.SentDebtAmount, extra); err != nil {
			return err
		}

		result = &core.LiquidateResult{
			DebtToRepay:            out.DebtToRepay,
			CollateralSeized:       out.CollateralToSeize,
			CollateralSeizedScaled: out.CollateralToSeizeScaled,
			Refund:                 out.Refund,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}
