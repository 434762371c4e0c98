package oracle

import (
	"context"
	"time"

	"redbank/core"

	"github.com/bluele/gcache"
	"github.com/fox-one/pkg/logger"
	"github.com/shopspring/decimal"
)

type service struct {
	priceStore core.IPriceStore
	cache      gcache.Cache
	cfg        core.OracleConfig
}

// New new oracle service backed by the local price store. Prices reach the
// store through the price feed worker; reads go through a short-lived cache.
func New(priceStore core.IPriceStore, cfg core.OracleConfig) core.IOracleService {
	return &service{
		priceStore: priceStore,
		cache:      gcache.New(128).LRU().Expiration(time.Second).Build(),
		cfg:        cfg,
	}
}

func (s *service) Price(ctx context.Context, denom string, kind core.PriceKind) (decimal.Decimal, error) {
	price, err := s.price(ctx, denom)
	if err != nil {
		return decimal.Zero, err
	}

	if price.ID == 0 {
		return decimal.Zero, core.ErrNoPrice.Errorf("no price for %s", denom)
	}

	if price.Price.IsNegative() {
		return decimal.Zero, core.ErrInvalidPrice.Errorf("negative price for %s", denom)
	}

	if age := time.Since(price.UpdatedAt); age > s.staleAfter(kind) {
		return decimal.Zero, core.ErrStalePrice.Errorf("price for %s is %s old", denom, age)
	}

	return price.Price, nil
}

// liquidation prices tolerate a wider staleness window so a lagging feed
// cannot lock liquidators out
func (s *service) staleAfter(kind core.PriceKind) time.Duration {
	if kind == core.PriceKindLiquidation && s.cfg.LiquidationStaleAfter > 0 {
		return s.cfg.LiquidationStaleAfter
	}

	if s.cfg.StaleAfter > 0 {
		return s.cfg.StaleAfter
	}

	return time.Minute
}

func (s *service) price(ctx context.Context, denom string) (*core.Price, error) {
	if v, err := s.cache.Get(denom); err == nil {
		return v.(*core.Price), nil
	}

	price, err := s.priceStore.Find(ctx, denom)
	if err != nil {
		logger.FromContext(ctx).WithError(err).Errorln("prices.Find")
		return nil, err
	}

	_ = s.cache.Set(denom, price)
	return price, nil
}
