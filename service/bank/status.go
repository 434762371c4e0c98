package bank

import (
	"context"

	"redbank/core"

	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
)

func (s *service) UpdateAssetCollateralStatus(ctx context.Context, userID, denom string, enabled bool) error {
	if _, err := s.findMarket(ctx, denom); err != nil {
		return err
	}

	return s.run(func(tx *db.DB) error {
		row, err := s.collaterals.Find(ctx, userID, "", denom)
		if err != nil {
			return err
		}

		if row.ID == 0 {
			return core.ErrInvalidParam.Errorf("no %s collateral to toggle", denom)
		}

		if row.Enabled == enabled {
			return nil
		}

		if !enabled {
			borrowing, err := s.debts.IsBorrowing(ctx, userID)
			if err != nil {
				return err
			}

			if borrowing {
				position, denoms, err := s.healthz.Position(ctx, userID, "", core.PriceKindDefault)
				if err != nil {
					return err
				}

				dropDeposit(position, denom)
				health, err := s.healthz.Compute(ctx, position, denoms, nil, nil)
				if err != nil {
					return err
				}

				if health.Liquidatable {
					return core.ErrInvalidHealthFactorAfterDisablingCollateral.Errorf("liquidation health factor %s", health.LiquidationHealthFactor)
				}
			}
		}

		row.Enabled = enabled
		if err := s.collaterals.Update(ctx, tx, row); err != nil {
			return err
		}

		return s.writeTransaction(ctx, tx, core.ActionTypeUpdateCollateralStatus, userID, "", denom, decimal.Zero, nil)
	})
}
