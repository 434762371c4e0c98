package bank

import (
	"context"
	"time"

	"redbank/core"
	"redbank/internal/interest"
	"redbank/pkg/redbank"

	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
)

func validateAssetReq(req core.AssetReq) error {
	model := interest.Model{
		OptimalUtilization: req.OptimalUtilization,
		Base:               req.BaseRate,
		Slope1:             req.Slope1,
		Slope2:             req.Slope2,
	}
	if err := model.Validate(); err != nil {
		return core.ErrInvalidParam.Errorf("%v", err)
	}

	if err := interest.ValidateReserveFactor(req.ReserveFactor); err != nil {
		return core.ErrInvalidParam.Errorf("%v", err)
	}

	if req.MaxLTV.IsNegative() || req.MaxLTV.GreaterThanOrEqual(one) {
		return core.ErrInvalidParam.Errorf("max_ltv out of range [0, 1): %s", req.MaxLTV)
	}

	if req.LiquidationThreshold.LessThan(req.MaxLTV) || req.LiquidationThreshold.GreaterThan(one) {
		return core.ErrInvalidParam.Errorf("liquidation_threshold out of range [max_ltv, 1]: %s", req.LiquidationThreshold)
	}

	if req.LiquidationBonus.IsNegative() {
		return core.ErrInvalidParam.Errorf("liquidation_bonus must not be negative: %s", req.LiquidationBonus)
	}

	if req.DepositCap.IsNegative() {
		return core.ErrInvalidParam.Errorf("deposit_cap must not be negative: %s", req.DepositCap)
	}

	return nil
}

func (s *service) InitAsset(ctx context.Context, req core.AssetReq) error {
	if req.Caller != s.cfg.Owner {
		return core.ErrUnauthorized.Errorf("only the owner may init assets")
	}

	if err := validateAssetReq(req); err != nil {
		return err
	}

	now := time.Now()
	return s.run(func(tx *db.DB) error {
		existing, err := s.markets.Find(ctx, req.Denom)
		if err != nil {
			return err
		}

		if existing.ID != 0 {
			return core.ErrAssetAlreadyInitialized.Errorf("market for %s exists", req.Denom)
		}

		market := &core.Market{
			Denom:                 req.Denom,
			LiquidityIndex:        one,
			BorrowIndex:           one,
			ReserveFactor:         req.ReserveFactor,
			IndexesLastUpdated:    now.Unix(),
			CollateralTotalScaled: decimal.Zero,
			DebtTotalScaled:       decimal.Zero,
			OptimalUtilization:    req.OptimalUtilization,
			BaseRate:              req.BaseRate,
			Slope1:                req.Slope1,
			Slope2:                req.Slope2,
			DepositEnabled:        req.DepositEnabled,
			BorrowEnabled:         req.BorrowEnabled,
			DepositCap:            req.DepositCap,
			LiquidationBonus:      req.LiquidationBonus,
		}
		if err := redbank.Reprice(market); err != nil {
			return err
		}

		if err := s.markets.Create(ctx, tx, market); err != nil {
			return err
		}

		if err := s.saveParams(ctx, tx, req); err != nil {
			return err
		}

		return s.writeTransaction(ctx, tx, core.ActionTypeInitAsset, req.Caller, "", req.Denom, decimal.Zero, nil)
	})
}

// UpdateAsset owner: full update; emergency owner: may only pull the borrow
// brake. The reserve factor change takes effect after an accrual at the old
// factor, so interest earned before the update keeps its original split.
func (s *service) UpdateAsset(ctx context.Context, req core.AssetReq) error {
	switch req.Caller {
	case s.cfg.Owner:
	case s.cfg.EmergencyOwner:
		return s.emergencyDisableBorrow(ctx, req)
	default:
		return core.ErrUnauthorized.Errorf("only the owner may update assets")
	}

	if err := validateAssetReq(req); err != nil {
		return err
	}

	now := time.Now()
	return s.run(func(tx *db.DB) error {
		market, err := s.findMarket(ctx, req.Denom)
		if err != nil {
			return err
		}

		if err := s.marketz.Accrue(ctx, tx, market, now); err != nil {
			return err
		}

		market.ReserveFactor = req.ReserveFactor
		market.OptimalUtilization = req.OptimalUtilization
		market.BaseRate = req.BaseRate
		market.Slope1 = req.Slope1
		market.Slope2 = req.Slope2
		market.DepositEnabled = req.DepositEnabled
		market.BorrowEnabled = req.BorrowEnabled
		market.DepositCap = req.DepositCap
		market.LiquidationBonus = req.LiquidationBonus

		if err := redbank.Reprice(market); err != nil {
			return err
		}

		if err := s.markets.Update(ctx, tx, market); err != nil {
			return err
		}

		if err := s.saveParams(ctx, tx, req); err != nil {
			return err
		}

		extra := core.NewTransactionExtra()
		extra.Put(core.EventKeyInterestsUpdated, interestsEvent(market))
		return s.writeTransaction(ctx, tx, core.ActionTypeUpdateAsset, req.Caller, "", req.Denom, decimal.Zero, extra)
	})
}

func (s *service) emergencyDisableBorrow(ctx context.Context, req core.AssetReq) error {
	return s.run(func(tx *db.DB) error {
		market, err := s.findMarket(ctx, req.Denom)
		if err != nil {
			return err
		}

		if !market.BorrowEnabled {
			return nil
		}

		market.BorrowEnabled = false
		if err := s.markets.Update(ctx, tx, market); err != nil {
			return err
		}

		return s.writeTransaction(ctx, tx, core.ActionTypeUpdateAsset, req.Caller, "", req.Denom, decimal.Zero, nil)
	})
}

func (s *service) saveParams(ctx context.Context, tx *db.DB, req core.AssetReq) error {
	row, err := s.params.Find(ctx, req.Denom)
	if err != nil {
		return err
	}

	row.Denom = req.Denom
	row.MaxLTV = req.MaxLTV
	row.LiquidationThreshold = req.LiquidationThreshold
	row.LiquidationBonus = req.LiquidationBonus
	row.DepositCap = req.DepositCap
	if row.ID == 0 {
		row.WhitelistedForLTV = true
		row.WhitelistedForLiquidation = true
	}

	return s.params.Save(ctx, tx, row)
}
