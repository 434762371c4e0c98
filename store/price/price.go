package price

import (
	"context"
	"time"

	"redbank/core"

	"github.com/fox-one/pkg/store/db"
	"github.com/jinzhu/gorm"
)

type priceStore struct {
	db *db.DB
}

// New new price store
func New(db *db.DB) core.IPriceStore {
	return &priceStore{db: db}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(core.Price{})
		if err := tx.AutoMigrate(core.Price{}).Error; err != nil {
			return err
		}

		return nil
	})
}

func (s *priceStore) Find(ctx context.Context, denom string) (*core.Price, error) {
	var price core.Price
	if err := s.db.View().Where("denom=?", denom).First(&price).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return &core.Price{}, nil
		}

		return nil, err
	}

	return &price, nil
}

func (s *priceStore) All(ctx context.Context) ([]*core.Price, error) {
	var prices []*core.Price
	if err := s.db.View().Find(&prices).Error; err != nil {
		return nil, err
	}

	return prices, nil
}

func (s *priceStore) Save(ctx context.Context, tx *db.DB, price *core.Price) error {
	price.UpdatedAt = time.Now()

	// column maps so a zero quote is persisted, not skipped as blank
	columns := map[string]interface{}{
		"price":      price.Price,
		"updated_at": price.UpdatedAt,
	}

	if price.ID == 0 {
		return tx.Update().
			Where("denom=?", price.Denom).
			Assign(columns).
			FirstOrCreate(price).Error
	}

	return tx.Update().Model(core.Price{}).
		Where("id=?", price.ID).
		Updates(columns).Error
}
