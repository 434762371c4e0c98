package param

import (
	"context"

	"redbank/core"

	"github.com/fox-one/pkg/store/db"
	"github.com/jinzhu/gorm"
)

type paramStore struct {
	db *db.DB
}

// New new asset param store
func New(db *db.DB) core.IParamStore {
	return &paramStore{db: db}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(core.AssetParam{})
		if err := tx.AutoMigrate(core.AssetParam{}).Error; err != nil {
			return err
		}

		return nil
	})
}

func (s *paramStore) Find(ctx context.Context, denom string) (*core.AssetParam, error) {
	var param core.AssetParam
	if err := s.db.View().Where("denom=?", denom).First(&param).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return &core.AssetParam{}, nil
		}

		return nil, err
	}

	return &param, nil
}

func (s *paramStore) All(ctx context.Context) ([]*core.AssetParam, error) {
	var params []*core.AssetParam
	if err := s.db.View().Find(&params).Error; err != nil {
		return nil, err
	}

	return params, nil
}

func (s *paramStore) Save(ctx context.Context, tx *db.DB, param *core.AssetParam) error {
	if param.ID == 0 {
		return tx.Update().Create(param).Error
	}

	version := param.Version
	param.Version++

	// column map, not struct: a struct update drops delisted whitelist
	// flags
	return tx.Update().Model(core.AssetParam{}).
		Where("id=? and version=?", param.ID, version).
		Updates(map[string]interface{}{
			"max_ltv":                     param.MaxLTV,
			"liquidation_threshold":       param.LiquidationThreshold,
			"liquidation_bonus":           param.LiquidationBonus,
			"deposit_cap":                 param.DepositCap,
			"whitelisted_for_ltv":         param.WhitelistedForLTV,
			"whitelisted_for_liquidation": param.WhitelistedForLiquidation,
			"version":                     param.Version,
		}).Error
}
