package limit

import (
	"context"

	"redbank/core"

	"github.com/fox-one/pkg/store/db"
	"github.com/jinzhu/gorm"
)

type limitStore struct {
	db *db.DB
}

// New new uncollateralized loan limit store
func New(db *db.DB) core.ILimitStore {
	return &limitStore{db: db}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(core.UncollateralizedLoanLimit{})
		if err := tx.AutoMigrate(core.UncollateralizedLoanLimit{}).Error; err != nil {
			return err
		}

		return nil
	})
}

func (s *limitStore) Find(ctx context.Context, userID, denom string) (*core.UncollateralizedLoanLimit, error) {
	var limit core.UncollateralizedLoanLimit
	err := s.db.View().
		Where("user_id=? and denom=?", userID, denom).
		First(&limit).Error
	if err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return &core.UncollateralizedLoanLimit{}, nil
		}

		return nil, err
	}

	return &limit, nil
}

func (s *limitStore) FindByUser(ctx context.Context, userID string) ([]*core.UncollateralizedLoanLimit, error) {
	var limits []*core.UncollateralizedLoanLimit
	err := s.db.View().
		Where("user_id=?", userID).
		Order("denom ASC").
		Find(&limits).Error
	if err != nil {
		return nil, err
	}

	return limits, nil
}

func (s *limitStore) Set(ctx context.Context, tx *db.DB, limit *core.UncollateralizedLoanLimit) error {
	if limit.ID == 0 {
		return tx.Update().Create(limit).Error
	}

	version := limit.Version
	limit.Version++

	// column map so a cleared (zero) limit is persisted
	return tx.Update().Model(core.UncollateralizedLoanLimit{}).
		Where("id=? and version=?", limit.ID, version).
		Updates(map[string]interface{}{
			"limit":   limit.Limit,
			"version": limit.Version,
		}).Error
}
