package persistence

import (
	"context"
	"errors"

	"github.com/gadgetstore/backend/internal/domain/catalog"
	"github.com/gadgetstore/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormProductRepository implements catalog.ProductRepository using GORM
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GormProductRepository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// FindByID finds a product by its ID
func (r *GormProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	var product catalog.Product
	if err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &product, nil
}

// FindByIDs finds multiple products by their IDs
func (r *GormProductRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*catalog.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var products []*catalog.Product
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// FindAll returns products matching the filter, newest first
// Rows without a creation timestamp sort after everything else
func (r *GormProductRepository) FindAll(ctx context.Context, filter catalog.ProductFilter) ([]*catalog.Product, int64, error) {
	query := r.applyFilter(r.db.WithContext(ctx).Model(&catalog.Product{}), filter)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var products []*catalog.Product
	if err := query.
		Order("created_at DESC NULLS LAST").
		Offset(filter.Offset()).
		Limit(filter.Limit()).
		Find(&products).Error; err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

// Save creates or updates a product
// Updates use the version column for optimistic locking
func (r *GormProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	if product.GetVersion() <= 1 {
		return r.db.WithContext(ctx).Create(product).Error
	}

	result := r.db.WithContext(ctx).
		Model(&catalog.Product{}).
		Where("id = ? AND version = ?", product.ID, product.Version-1).
		Updates(map[string]interface{}{
			"name":             product.Name,
			"description":      product.Description,
			"category":         product.Category,
			"price_cents":      product.PriceCents,
			"image_key":        product.ImageKey,
			"status":           product.Status,
			"rejection_reason": product.RejectionReason,
			"approved_at":      product.ApprovedAt,
			"rejected_at":      product.RejectedAt,
			"sold_at":          product.SoldAt,
			"updated_at":       product.UpdatedAt,
			"version":          product.Version,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}

// Delete deletes a product
func (r *GormProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&catalog.Product{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// CountByStatus counts products in the given status
func (r *GormProductRepository) CountByStatus(ctx context.Context, status catalog.ProductStatus) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&catalog.Product{}).
		Where("status = ?", status).
		Count(&count).Error
	return count, err
}

func (r *GormProductRepository) applyFilter(query *gorm.DB, filter catalog.ProductFilter) *gorm.DB {
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.Category != nil {
		query = query.Where("category = ?", *filter.Category)
	}
	if filter.SellerID != nil {
		query = query.Where("seller_id = ?", *filter.SellerID)
	}
	if filter.Keyword != "" {
		keyword := "%" + filter.Keyword + "%"
		query = query.Where("name ILIKE ? OR description ILIKE ?", keyword, keyword)
	}
	return query
}

// Ensure GormProductRepository implements ProductRepository
var _ catalog.ProductRepository = (*GormProductRepository)(nil)
