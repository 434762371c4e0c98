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

func (s *service) Borrow(ctx context.Context, req core.BorrowReq) error {
	log := logger.FromContext(ctx).WithField("action", "borrow")

	if !req.Amount.IsPositive() {
		return core.ErrInvalidBorrowAmount.Errorf("borrow amount must be positive: %s", req.Amount)
	}

	market, err := s.findMarket(ctx, req.Denom)
	if err != nil {
		return err
	}

	if !market.BorrowEnabled {
		return core.ErrBorrowNotEnabled.Errorf("borrows disabled on %s", req.Denom)
	}

	now := time.Now()
	return s.run(func(tx *db.DB) error {
		if err := s.marketz.Accrue(ctx, tx, market, now); err != nil {
			return err
		}

		totalCollateral, err := number.DescaleLiquidity(market.CollateralTotalScaled, market.LiquidityIndex)
		if err != nil {
			return err
		}

		if req.Amount.GreaterThan(totalCollateral) {
			return core.ErrInvalidBorrowAmount.Errorf("borrow %s over pool size %s", req.Amount, totalCollateral)
		}

		available, err := redbank.AvailableLiquidity(market)
		if err != nil {
			return err
		}

		if req.Amount.GreaterThan(available) {
			return core.ErrOperationExceedsAvailableLiquidity.Errorf("borrow %s over available %s", req.Amount, available)
		}

		limit, err := s.limits.Find(ctx, req.UserID, req.Denom)
		if err != nil {
			return err
		}

		uncollateralized := limit.ID != 0 && limit.Limit.IsPositive()

		row, err := s.debts.Find(ctx, req.UserID, req.Denom)
		if err != nil {
			return err
		}

		if uncollateralized {
			current := decimal.Zero
			if row.ID != 0 {
				if current, err = number.DescaleDebt(row.AmountScaled, market.BorrowIndex); err != nil {
					return err
				}
			}

			if current.Add(req.Amount).GreaterThan(limit.Limit) {
				return core.ErrBorrowAmountExceedsUncollateralizedLoanLimit.Errorf("debt %s + %s over limit %s", current, req.Amount, limit.Limit)
			}
		} else {
			if err := s.checkBorrowHealth(ctx, req); err != nil {
				return err
			}
		}

		scaled, err := number.ScaleDebt(req.Amount, market.BorrowIndex)
		if err != nil {
			return err
		}

		created := false
		if row.ID == 0 {
			row = &core.Debt{
				UserID:           req.UserID,
				Denom:            req.Denom,
				AmountScaled:     scaled,
				Uncollateralized: uncollateralized,
			}
			created = true
			if err := s.debts.Create(ctx, tx, row); err != nil {
				log.WithError(err).Errorln("debts.Create")
				return err
			}
		} else {
			row.AmountScaled = row.AmountScaled.Add(scaled)
			if err := s.debts.Update(ctx, tx, row); err != nil {
				log.WithError(err).Errorln("debts.Update")
				return err
			}
		}

		redbank.IncreaseDebt(market, scaled)
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

		if err := s.queueTransfer(ctx, tx, recipient, req.Denom, req.Amount, core.TransferSourceBorrow); err != nil {
			return err
		}

		extra := core.NewTransactionExtra()
		extra.Put(core.EventKeyAmountScaled, scaled)
		extra.Put(core.EventKeyRecipient, recipient)
		extra.Put(core.EventKeyInterestsUpdated, interestsEvent(market))
		if created {
			extra.Put(core.EventKeyDebtPositionChanged, "created")
		}

		return s.writeTransaction(ctx, tx, core.ActionTypeBorrow, req.UserID, "", req.Denom, req.Amount, extra)
	})
}

// checkBorrowHealth projects the post-borrow position and requires the
// max-LTV health factor to stay at or above one
func (s *service) checkBorrowHealth(ctx context.Context, req core.BorrowReq) error {
	position, denoms, err := s.healthz.Position(ctx, req.UserID, "", core.PriceKindDefault)
	if err != nil {
		return err
	}

	if _, ok := denoms[req.Denom]; !ok {
		price, err := s.oraclez.Price(ctx, req.Denom, core.PriceKindDefault)
		if err != nil {
			return err
		}

		params, err := s.paramz.Asset(ctx, req.Denom)
		if err != nil {
			return err
		}

		denoms[req.Denom] = core.DenomData{Price: price, Params: params}
	}

	addDebt(position, req.Denom, req.Amount)

	health, err := s.healthz.Compute(ctx, position, denoms, nil, nil)
	if err != nil {
		return err
	}

	if health.AboveMaxLTV {
		return core.ErrBorrowAmountExceedsGivenCollateral.Errorf("max ltv health factor %s", health.MaxLTVHealthFactor)
	}

	return nil
}
