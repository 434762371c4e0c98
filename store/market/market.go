package market

import (
	"context"
	"errors"

	"redbank/core"

	"github.com/fox-one/pkg/store/db"
	"github.com/jinzhu/gorm"
)

// ErrOptimisticLock concurrent writers raced on the same market version
var ErrOptimisticLock = errors.New("market version conflict")

type marketStore struct {
	db *db.DB
}

// New new market store
func New(db *db.DB) core.IMarketStore {
	return &marketStore{db: db}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(core.Market{})
		if err := tx.AutoMigrate(core.Market{}).Error; err != nil {
			return err
		}

		return nil
	})
}

func (s *marketStore) Create(ctx context.Context, tx *db.DB, market *core.Market) error {
	return tx.Update().Create(market).Error
}

func (s *marketStore) Find(ctx context.Context, denom string) (*core.Market, error) {
	var market core.Market
	if err := s.db.View().Where("denom=?", denom).First(&market).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return &core.Market{}, nil
		}

		return nil, err
	}

	return &market, nil
}

func (s *marketStore) All(ctx context.Context) ([]*core.Market, error) {
	var markets []*core.Market
	if err := s.db.View().Find(&markets).Error; err != nil {
		return nil, err
	}

	return markets, nil
}

func (s *marketStore) AllAsMap(ctx context.Context) (map[string]*core.Market, error) {
	markets, err := s.All(ctx)
	if err != nil {
		return nil, err
	}

	maps := make(map[string]*core.Market, len(markets))
	for _, m := range markets {
		maps[m.Denom] = m
	}

	return maps, nil
}

func (s *marketStore) Update(ctx context.Context, tx *db.DB, market *core.Market) error {
	version := market.Version
	market.Version++

	// column map, not struct: a struct update drops false flags and
	// zeroed rates
	updated := tx.Update().Model(core.Market{}).
		Where("denom=? and version=?", market.Denom, version).
		Updates(map[string]interface{}{
			"liquidity_index":         market.LiquidityIndex,
			"borrow_index":            market.BorrowIndex,
			"borrow_rate":             market.BorrowRate,
			"liquidity_rate":          market.LiquidityRate,
			"reserve_factor":          market.ReserveFactor,
			"indexes_last_updated":    market.IndexesLastUpdated,
			"collateral_total_scaled": market.CollateralTotalScaled,
			"debt_total_scaled":       market.DebtTotalScaled,
			"optimal_utilization":     market.OptimalUtilization,
			"base_rate":               market.BaseRate,
			"slope1":                  market.Slope1,
			"slope2":                  market.Slope2,
			"deposit_enabled":         market.DepositEnabled,
			"borrow_enabled":          market.BorrowEnabled,
			"deposit_cap":             market.DepositCap,
			"liquidation_bonus":       market.LiquidationBonus,
			"version":                 market.Version,
		})
	if updated.Error != nil {
		return updated.Error
	}

	if updated.RowsAffected == 0 {
		return ErrOptimisticLock
	}

	return nil
}
