package persistence

import (
	"context"
	"errors"

	"github.com/gadgetstore/backend/internal/domain/shared"
	"github.com/gadgetstore/backend/internal/domain/shopping"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormCartRepository implements shopping.CartRepository using GORM
type GormCartRepository struct {
	db *gorm.DB
}

// NewGormCartRepository creates a new GormCartRepository
func NewGormCartRepository(db *gorm.DB) *GormCartRepository {
	return &GormCartRepository{db: db}
}

// FindByUserID finds the user's cart with its items
func (r *GormCartRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*shopping.Cart, error) {
	var cart shopping.Cart
	if err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("added_at ASC")
		}).
		Where("user_id = ?", userID).
		First(&cart).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &cart, nil
}

// Save creates or updates the cart and replaces its items
// The cart row and item rows change in one transaction
func (r *GormCartRepository) Save(ctx context.Context, cart *shopping.Cart) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Items").Save(&shopping.Cart{
			BaseAggregateRoot: cart.BaseAggregateRoot,
			UserID:            cart.UserID,
		}).Error; err != nil {
			return err
		}

		if err := tx.Where("cart_id = ?", cart.ID).Delete(&shopping.CartItem{}).Error; err != nil {
			return err
		}
		if len(cart.Items) == 0 {
			return nil
		}
		return tx.Create(&cart.Items).Error
	})
}

// DeleteByUserID removes the user's cart and its items
func (r *GormCartRepository) DeleteByUserID(ctx context.Context, userID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var cart shopping.Cart
		if err := tx.Where("user_id = ?", userID).First(&cart).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}
		if err := tx.Where("cart_id = ?", cart.ID).Delete(&shopping.CartItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&cart).Error
	})
}

// Ensure GormCartRepository implements CartRepository
var _ shopping.CartRepository = (*GormCartRepository)(nil)
