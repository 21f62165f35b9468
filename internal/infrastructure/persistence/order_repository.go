package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/gadgetstore/backend/internal/domain/shared"
	"github.com/gadgetstore/backend/internal/domain/trade"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormOrderRepository implements trade.OrderRepository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// Create creates a new order with its items
func (r *GormOrderRepository) Create(ctx context.Context, order *trade.Order) error {
	return r.db.WithContext(ctx).Create(order).Error
}

// FindByID finds an order with its items
func (r *GormOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.Order, error) {
	var order trade.Order
	if err := r.db.WithContext(ctx).
		Preload("Items").
		First(&order, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

// FindAll returns orders matching the filter, newest first
func (r *GormOrderRepository) FindAll(ctx context.Context, filter trade.OrderFilter) ([]*trade.Order, int64, error) {
	query := r.db.WithContext(ctx).Model(&trade.Order{})

	if filter.BuyerID != nil {
		query = query.Where("buyer_id = ?", *filter.BuyerID)
	}
	if filter.Status != nil {
		query = query.Where("payment_status = ?", *filter.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var orders []*trade.Order
	if err := query.
		Preload("Items").
		Order("created_at DESC NULLS LAST").
		Offset(filter.Offset()).
		Limit(filter.Limit()).
		Find(&orders).Error; err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

// UpdatePaymentStatus transitions the payment status with a compare-and-set
// on the current status. Concurrent reviewers race on the same row; only one
// of them observes RowsAffected == 1.
func (r *GormOrderRepository) UpdatePaymentStatus(ctx context.Context, id uuid.UUID, fromStatus, toStatus trade.PaymentStatus, reason string) (int64, error) {
	now := time.Now()
	updates := map[string]interface{}{
		"payment_status": toStatus,
		"updated_at":     now,
	}
	switch toStatus {
	case trade.PaymentStatusApproved:
		updates["approved_at"] = now
	case trade.PaymentStatusRejected:
		updates["rejected_at"] = now
		updates["rejection_reason"] = reason
	}

	result := r.db.WithContext(ctx).
		Model(&trade.Order{}).
		Where("id = ? AND payment_status = ?", id, fromStatus).
		Updates(updates)
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// CountByStatus counts orders in the given payment status
func (r *GormOrderRepository) CountByStatus(ctx context.Context, status trade.PaymentStatus) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&trade.Order{}).
		Where("payment_status = ?", status).
		Count(&count).Error
	return count, err
}

// Ensure GormOrderRepository implements OrderRepository
var _ trade.OrderRepository = (*GormOrderRepository)(nil)
