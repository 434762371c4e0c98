package collateral

import (
	"context"

	"redbank/core"

	"github.com/fox-one/pkg/store/db"
	"github.com/jinzhu/gorm"
	"github.com/shopspring/decimal"
)

type collateralStore struct {
	db *db.DB
}

// New new collateral store
func New(db *db.DB) core.ICollateralStore {
	return &collateralStore{db: db}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(core.Collateral{})
		if err := tx.AutoMigrate(core.Collateral{}).Error; err != nil {
			return err
		}

		return nil
	})
}

func (s *collateralStore) Find(ctx context.Context, userID, accountID, denom string) (*core.Collateral, error) {
	var collateral core.Collateral
	err := s.db.View().
		Where("user_id=? and account_id=? and denom=?", userID, accountID, denom).
		First(&collateral).Error
	if err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return &core.Collateral{}, nil
		}

		return nil, err
	}

	return &collateral, nil
}

func (s *collateralStore) FindByUser(ctx context.Context, userID, accountID string) ([]*core.Collateral, error) {
	var collaterals []*core.Collateral
	err := s.db.View().
		Where("user_id=? and account_id=?", userID, accountID).
		Order("denom ASC").
		Find(&collaterals).Error
	if err != nil {
		return nil, err
	}

	return collaterals, nil
}

func (s *collateralStore) List(ctx context.Context, userID, accountID, fromDenom string, limit int) ([]*core.Collateral, error) {
	query := s.db.View().Where("user_id=? and account_id=?", userID, accountID)
	if fromDenom != "" {
		query = query.Where("denom > ?", fromDenom)
	}

	var collaterals []*core.Collateral
	if err := query.Order("denom ASC").Limit(limit).Find(&collaterals).Error; err != nil {
		return nil, err
	}

	return collaterals, nil
}

func (s *collateralStore) Create(ctx context.Context, tx *db.DB, collateral *core.Collateral) error {
	return tx.Update().Create(collateral).Error
}

func (s *collateralStore) Update(ctx context.Context, tx *db.DB, collateral *core.Collateral) error {
	version := collateral.Version
	collateral.Version++

	// column map, not struct: a struct update drops Enabled=false
	return tx.Update().Model(core.Collateral{}).
		Where("id=? and version=?", collateral.ID, version).
		Updates(map[string]interface{}{
			"amount_scaled": collateral.AmountScaled,
			"enabled":       collateral.Enabled,
			"version":       collateral.Version,
		}).Error
}

func (s *collateralStore) Delete(ctx context.Context, tx *db.DB, collateral *core.Collateral) error {
	return tx.Update().
		Where("id=?", collateral.ID).
		Delete(core.Collateral{}).Error
}

func (s *collateralStore) SumScaledByDenom(ctx context.Context, denom string) (decimal.Decimal, error) {
	var result struct {
		Total decimal.Decimal
	}

	err := s.db.View().Model(core.Collateral{}).
		Select("coalesce(sum(amount_scaled), 0) as total").
		Where("denom=?", denom).
		Scan(&result).Error
	if err != nil {
		return decimal.Zero, err
	}

	return result.Total, nil
}
