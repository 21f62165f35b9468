package catalog

import (
	"context"

	"github.com/google/uuid"
)

// ProductRepository defines the interface for product persistence
type ProductRepository interface {
	// FindByID finds a product by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)

	// FindByIDs finds multiple products by their IDs
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*Product, error)

	// FindAll returns products matching the filter, newest first
	FindAll(ctx context.Context, filter ProductFilter) ([]*Product, int64, error)

	// Save creates or updates a product
	Save(ctx context.Context, product *Product) error

	// Delete deletes a product
	Delete(ctx context.Context, id uuid.UUID) error

	// CountByStatus counts products in the given status
	CountByStatus(ctx context.Context, status ProductStatus) (int64, error)
}

// ProductFilter contains filter options for querying products
type ProductFilter struct {
	// Filter by moderation status
	Status *ProductStatus

	// Filter by category
	Category *ProductCategory

	// Filter by seller
	SellerID *uuid.UUID

	// Search keyword for name or description
	Keyword string

	// Pagination
	Page     int
	PageSize int
}

// NewProductFilter creates a new ProductFilter with default values
func NewProductFilter() ProductFilter {
	return ProductFilter{
		Page:     1,
		PageSize: 20,
	}
}

// WithStatus sets the status filter
func (f ProductFilter) WithStatus(status ProductStatus) ProductFilter {
	f.Status = &status
	return f
}

// WithCategory sets the category filter
func (f ProductFilter) WithCategory(category ProductCategory) ProductFilter {
	f.Category = &category
	return f
}

// WithSeller sets the seller filter
func (f ProductFilter) WithSeller(sellerID uuid.UUID) ProductFilter {
	f.SellerID = &sellerID
	return f
}

// WithKeyword sets the search keyword
func (f ProductFilter) WithKeyword(keyword string) ProductFilter {
	f.Keyword = keyword
	return f
}

// WithPagination sets pagination parameters
func (f ProductFilter) WithPagination(page, pageSize int) ProductFilter {
	f.Page = page
	f.PageSize = pageSize
	return f
}

// Offset returns the offset for pagination
func (f ProductFilter) Offset() int {
	if f.Page <= 0 {
		return 0
	}
	return (f.Page - 1) * f.PageSize
}

// Limit returns the limit for pagination
func (f ProductFilter) Limit() int {
	if f.PageSize <= 0 {
		return 20
	}
	if f.PageSize > 100 {
		return 100
	}
	return f.PageSize
}
