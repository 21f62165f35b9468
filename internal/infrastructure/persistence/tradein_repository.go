package persistence

import (
	"context"
	"errors"

	"github.com/gadgetstore/backend/internal/domain/shared"
	"github.com/gadgetstore/backend/internal/domain/trade"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormTradeInRepository implements trade.TradeInRepository using GORM
type GormTradeInRepository struct {
	db *gorm.DB
}

// NewGormTradeInRepository creates a new GormTradeInRepository
func NewGormTradeInRepository(db *gorm.DB) *GormTradeInRepository {
	return &GormTradeInRepository{db: db}
}

// Create creates a new trade-in request
func (r *GormTradeInRepository) Create(ctx context.Context, request *trade.TradeInRequest) error {
	return r.db.WithContext(ctx).Create(request).Error
}

// Update updates an existing request with optimistic locking
func (r *GormTradeInRepository) Update(ctx context.Context, request *trade.TradeInRequest) error {
	result := r.db.WithContext(ctx).
		Model(&trade.TradeInRequest{}).
		Where("id = ? AND version = ?", request.ID, request.Version-1).
		Updates(map[string]interface{}{
			"status":      request.Status,
			"quote_cents": request.QuoteCents,
			"quoted_at":   request.QuotedAt,
			"resolved_at": request.ResolvedAt,
			"updated_at":  request.UpdatedAt,
			"version":     request.Version,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}

// FindByID finds a request by ID
func (r *GormTradeInRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.TradeInRequest, error) {
	var request trade.TradeInRequest
	if err := r.db.WithContext(ctx).First(&request, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &request, nil
}

// FindAll returns requests matching the filter, newest first
func (r *GormTradeInRepository) FindAll(ctx context.Context, filter trade.TradeInFilter) ([]*trade.TradeInRequest, int64, error) {
	query := r.db.WithContext(ctx).Model(&trade.TradeInRequest{})

	if filter.UserID != nil {
		query = query.Where("user_id = ?", *filter.UserID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var requests []*trade.TradeInRequest
	if err := query.
		Order("created_at DESC NULLS LAST").
		Offset(filter.Offset()).
		Limit(filter.Limit()).
		Find(&requests).Error; err != nil {
		return nil, 0, err
	}
	return requests, total, nil
}

// CountByStatus counts requests in the given status
func (r *GormTradeInRepository) CountByStatus(ctx context.Context, status trade.TradeInStatus) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&trade.TradeInRequest{}).
		Where("status = ?", status).
		Count(&count).Error
	return count, err
}

// Ensure GormTradeInRepository implements TradeInRepository
var _ trade.TradeInRepository = (*GormTradeInRepository)(nil)
