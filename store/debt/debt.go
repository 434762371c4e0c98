package debt

import (
	"context"

	"redbank/core"

	"github.com/fox-one/pkg/store/db"
	"github.com/jinzhu/gorm"
	"github.com/shopspring/decimal"
)

type debtStore struct {
	db *db.DB
}

// New new debt store
func New(db *db.DB) core.IDebtStore {
	return &debtStore{db: db}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(core.Debt{})
		if err := tx.AutoMigrate(core.Debt{}).Error; err != nil {
			return err
		}

		return nil
	})
}

func (s *debtStore) Find(ctx context.Context, userID, denom string) (*core.Debt, error) {
	var debt core.Debt
	err := s.db.View().
		Where("user_id=? and denom=?", userID, denom).
		First(&debt).Error
	if err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return &core.Debt{}, nil
		}

		return nil, err
	}

	return &debt, nil
}

func (s *debtStore) FindByUser(ctx context.Context, userID string) ([]*core.Debt, error) {
	var debts []*core.Debt
	err := s.db.View().
		Where("user_id=?", userID).
		Order("denom ASC").
		Find(&debts).Error
	if err != nil {
		return nil, err
	}

	return debts, nil
}

func (s *debtStore) List(ctx context.Context, userID, fromDenom string, limit int) ([]*core.Debt, error) {
	query := s.db.View().Where("user_id=?", userID)
	if fromDenom != "" {
		query = query.Where("denom > ?", fromDenom)
	}

	var debts []*core.Debt
	if err := query.Order("denom ASC").Limit(limit).Find(&debts).Error; err != nil {
		return nil, err
	}

	return debts, nil
}

func (s *debtStore) IsBorrowing(ctx context.Context, userID string) (bool, error) {
	var count int64
	err := s.db.View().Model(core.Debt{}).
		Where("user_id=?", userID).
		Count(&count).Error
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

func (s *debtStore) Create(ctx context.Context, tx *db.DB, debt *core.Debt) error {
	return tx.Update().Create(debt).Error
}

func (s *debtStore) Update(ctx context.Context, tx *db.DB, debt *core.Debt) error {
	version := debt.Version
	debt.Version++

	return tx.Update().Model(core.Debt{}).
		Where("id=? and version=?", debt.ID, version).
		Updates(map[string]interface{}{
			"amount_scaled":    debt.AmountScaled,
			"uncollateralized": debt.Uncollateralized,
			"version":          debt.Version,
		}).Error
}

func (s *debtStore) Delete(ctx context.Context, tx *db.DB, debt *core.Debt) error {
	return tx.Update().
		Where("id=?", debt.ID).
		Delete(core.Debt{}).Error
}

func (s *debtStore) SumScaledByDenom(ctx context.Context, denom string) (decimal.Decimal, error) {
	var result struct {
		Total decimal.Decimal
	}

	err := s.db.View().Model(core.Debt{}).
		Select("coalesce(sum(amount_scaled), 0) as total").
		Where("denom=?", denom).
		Scan(&result).Error
	if err != nil {
		return decimal.Zero, err
	}

	return result.Total, nil
}
