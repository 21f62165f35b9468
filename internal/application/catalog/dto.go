package catalog

import (
	"time"

	"github.com/gadgetstore/backend/internal/domain/catalog"
	"github.com/google/uuid"
)

// SubmitProductRequest represents a request to list a device for sale
type SubmitProductRequest struct {
	Name        string `json:"name" binding:"required,max=200"`
	Description string `json:"description" binding:"max=5000"`
	Category    string `json:"category" binding:"required,oneof=laptop phone accessory"`
	PriceCents  int64  `json:"price_cents" binding:"required,gt=0"`
	ImageKey    string `json:"image_key" binding:"max=500"`
}

// UpdateProductRequest represents an admin edit of a listing.
// Absent fields keep their current values.
type UpdateProductRequest struct {
	Name        *string `json:"name" binding:"omitempty,max=200"`
	Description *string `json:"description" binding:"omitempty,max=5000"`
	Category    *string `json:"category" binding:"omitempty,oneof=laptop phone accessory"`
	PriceCents  *int64  `json:"price_cents" binding:"omitempty,gt=0"`
	ImageKey    *string `json:"image_key" binding:"omitempty,max=500"`
}

// RejectProductRequest represents a moderation rejection
type RejectProductRequest struct {
	Reason string `json:"reason" binding:"required,max=1000"`
}

// ProductResponse represents product data in API responses
type ProductResponse struct {
	ID              uuid.UUID  `json:"id"`
	SellerID        uuid.UUID  `json:"seller_id"`
	Name            string     `json:"name"`
	Description     string     `json:"description"`
	Category        string     `json:"category"`
	PriceCents      int64      `json:"price_cents"`
	ImageKey        string     `json:"image_key,omitempty"`
	ImageURL        string     `json:"image_url,omitempty"`
	Status          string     `json:"status"`
	RejectionReason string     `json:"rejection_reason,omitempty"`
	ApprovedAt      *time.Time `json:"approved_at,omitempty"`
	RejectedAt      *time.Time `json:"rejected_at,omitempty"`
	SoldAt          *time.Time `json:"sold_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	Version         int        `json:"version"`
}

// ProductListFilter represents query options for product listings
type ProductListFilter struct {
	Category string `form:"category" binding:"omitempty,oneof=laptop phone accessory"`
	Keyword  string `form:"search" binding:"omitempty,max=200"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// ProductListResponse represents a paginated product list
type ProductListResponse struct {
	Products   []ProductResponse `json:"products"`
	TotalCount int64             `json:"total_count"`
	Page       int               `json:"page"`
	PageSize   int               `json:"page_size"`
}

// InitiateUploadRequest represents a request for a presigned upload URL
type InitiateUploadRequest struct {
	FileName    string `json:"file_name" binding:"required,max=255"`
	ContentType string `json:"content_type" binding:"required,max=100"`
	Kind        string `json:"kind" binding:"required,oneof=product-image payment-proof trade-in-image"`
}

// InitiateUploadResponse carries the presigned upload URL and the key the
// client must reference after the upload completes
type InitiateUploadResponse struct {
	StorageKey string    `json:"storage_key"`
	UploadURL  string    `json:"upload_url"`
	ExpiresAt  time.Time `json:"expires_at"`
}

// ToProductResponse converts a domain Product to ProductResponse
func ToProductResponse(p *catalog.Product) ProductResponse {
	return ProductResponse{
		ID:              p.ID,
		SellerID:        p.SellerID,
		Name:            p.Name,
		Description:     p.Description,
		Category:        string(p.Category),
		PriceCents:      p.PriceCents,
		ImageKey:        p.ImageKey,
		Status:          string(p.Status),
		RejectionReason: p.RejectionReason,
		ApprovedAt:      p.ApprovedAt,
		RejectedAt:      p.RejectedAt,
		SoldAt:          p.SoldAt,
		CreatedAt:       p.CreatedAt,
		Version:         p.Version,
	}
}

func (f ProductListFilter) toDomainFilter() catalog.ProductFilter {
	filter := catalog.NewProductFilter()
	if f.Category != "" {
		filter = filter.WithCategory(catalog.ProductCategory(f.Category))
	}
	if f.Keyword != "" {
		filter = filter.WithKeyword(f.Keyword)
	}
	page, pageSize := f.Page, f.PageSize
	if page == 0 {
		page = filter.Page
	}
	if pageSize == 0 {
		pageSize = filter.PageSize
	}
	return filter.WithPagination(page, pageSize)
}
