package market

import (
	"context"
	"time"

	"redbank/core"
	"redbank/pkg/redbank"

	"github.com/fox-one/pkg/logger"
	"github.com/fox-one/pkg/store/db"
)

type service struct {
	collateralStore  core.ICollateralStore
	marketStore      core.IMarketStore
	incentives       core.IIncentivesService
	rewardsCollector string
}

// New new market service
func New(
	marketStore core.IMarketStore,
	collateralStore core.ICollateralStore,
	incentives core.IIncentivesService,
	rewardsCollector string,
) core.IMarketService {
	return &service{
		marketStore:      marketStore,
		collateralStore:  collateralStore,
		incentives:       incentives,
		rewardsCollector: rewardsCollector,
	}
}

// Accrue fast-forwards indices to now and credits the reserve share of the
// accrued interest to the rewards collector's collateral row. The collector
// is a normal lender from the ledger's point of view, so conservation
// between user rows and the market total is preserved.
//
// The caller persists the market; Accrue only writes the collector row.
func (s *service) Accrue(ctx context.Context, tx *db.DB, market *core.Market, now time.Time) error {
	log := logger.FromContext(ctx).WithField("market", market.Denom)

	rewardScaled, err := redbank.Accrue(market, now)
	if err != nil {
		return err
	}

	if !rewardScaled.IsPositive() {
		return nil
	}

	row, err := s.collateralStore.Find(ctx, s.rewardsCollector, "", market.Denom)
	if err != nil {
		log.WithError(err).Errorln("collaterals.Find rewards collector")
		return err
	}

	s.incentives.OnBalanceChange(ctx, s.rewardsCollector, market.Denom, row.AmountScaled, market.CollateralTotalScaled)

	if row.ID == 0 {
		row = &core.Collateral{
			UserID:       s.rewardsCollector,
			Denom:        market.Denom,
			AmountScaled: rewardScaled,
			Enabled:      true,
		}
		if err := s.collateralStore.Create(ctx, tx, row); err != nil {
			log.WithError(err).Errorln("collaterals.Create rewards collector")
			return err
		}
	} else {
		row.AmountScaled = row.AmountScaled.Add(rewardScaled)
		if err := s.collateralStore.Update(ctx, tx, row); err != nil {
			log.WithError(err).Errorln("collaterals.Update rewards collector")
			return err
		}
	}

	redbank.IncreaseCollateral(market, rewardScaled)
	return nil
}

func (s *service) Reprice(ctx context.Context, market *core.Market) error {
	return redbank.Reprice(market)
}

// VirtualMarket a copy of the market with indices advanced to now. Reads
// never persist the advanced indices; only writes do, through Accrue.
func (s *service) VirtualMarket(ctx context.Context, market *core.Market, now time.Time) (*core.Market, error) {
	virtual := *market
	virtual.LiquidityIndex, virtual.BorrowIndex = redbank.VirtualIndices(market, now)
	virtual.IndexesLastUpdated = now.Unix()

	return &virtual, nil
}
