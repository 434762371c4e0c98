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

func (s *service) Deposit(ctx context.Context, req core.DepositReq) error {
	log := logger.FromContext(ctx).WithField("action", "deposit")

	if !req.Amount.IsPositive() {
		return core.ErrInvalidParam.Errorf("deposit amount must be positive: %s", req.Amount)
	}

	userID := req.UserID
	if req.OnBehalfOf != "" {
		userID = req.OnBehalfOf
	}

	market, err := s.findMarket(ctx, req.Denom)
	if err != nil {
		return err
	}

	if !market.DepositEnabled {
		return core.ErrDepositNotEnabled.Errorf("deposits disabled on %s", req.Denom)
	}

	now := time.Now()
	return s.run(func(tx *db.DB) error {
		if err := s.marketz.Accrue(ctx, tx, market, now); err != nil {
			return err
		}

		total, err := number.DescaleLiquidity(market.CollateralTotalScaled, market.LiquidityIndex)
		if err != nil {
			return err
		}

		if err := redbank.DepositCapCheck(market, total.Add(req.Amount)); err != nil {
			return err
		}

		scaled, err := number.ScaleLiquidity(req.Amount, market.LiquidityIndex)
		if err != nil {
			return err
		}

		created, err := s.creditCollateral(ctx, tx, market, userID, "", scaled)
		if err != nil {
			log.WithError(err).Errorln("collaterals.Upsert")
			return err
		}

		redbank.IncreaseCollateral(market, scaled)
		if err := redbank.Reprice(market); err != nil {
			return err
		}

		if err := s.markets.Update(ctx, tx, market); err != nil {
			log.WithError(err).Errorln("markets.Update")
			return err
		}

		extra := core.NewTransactionExtra()
		extra.Put(core.EventKeyAmountScaled, scaled)
		extra.Put(core.EventKeyInterestsUpdated, interestsEvent(market))
		if created {
			extra.Put(core.EventKeyCollateralPositionChanged, "created")
		}

		return s.writeTransaction(ctx, tx, core.ActionTypeDeposit, userID, "", req.Denom, req.Amount, extra)
	})
}
