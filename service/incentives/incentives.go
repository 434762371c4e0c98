package incentives

import (
	"context"

	"redbank/core"

	"github.com/fox-one/pkg/logger"
	"github.com/shopspring/decimal"
)

type service struct{}

// New rewards accounting hook. The incentives contract lives outside the
// core; this implementation only records the notification so the reward
// index settlement can be replayed against it.
func New() core.IIncentivesService {
	return &service{}
}

func (s *service) OnBalanceChange(ctx context.Context, userID, denom string, userScaledBefore, totalScaledBefore decimal.Decimal) {
	logger.FromContext(ctx).
		WithField("service", "incentives").
		Debugf("balance change user=%s denom=%s user_scaled=%s total_scaled=%s",
			userID, denom, userScaledBefore, totalScaledBefore)
}
