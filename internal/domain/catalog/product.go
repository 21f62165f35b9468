package catalog

import (
	"fmt"
	"strings"
	"time"

	"github.com/gadgetstore/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ProductStatus represents the moderation status of a listing
type ProductStatus string

const (
	ProductStatusPending  ProductStatus = "pending"
	ProductStatusApproved ProductStatus = "approved"
	ProductStatusRejected ProductStatus = "rejected"
	ProductStatusSold     ProductStatus = "sold"
)

// IsValid checks if the status is a valid ProductStatus
func (s ProductStatus) IsValid() bool {
	switch s {
	case ProductStatusPending, ProductStatusApproved, ProductStatusRejected, ProductStatusSold:
		return true
	}
	return false
}

// String returns the string representation of ProductStatus
func (s ProductStatus) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status
func (s ProductStatus) CanTransitionTo(target ProductStatus) bool {
	switch s {
	case ProductStatusPending:
		return target == ProductStatusApproved || target == ProductStatusRejected
	case ProductStatusApproved:
		return target == ProductStatusSold
	case ProductStatusRejected, ProductStatusSold:
		return false // Terminal states
	}
	return false
}

// ProductCategory represents the kind of device being listed
type ProductCategory string

const (
	CategoryLaptop    ProductCategory = "laptop"
	CategoryPhone     ProductCategory = "phone"
	CategoryAccessory ProductCategory = "accessory"
)

// IsValid checks if the category is a known ProductCategory
func (c ProductCategory) IsValid() bool {
	switch c {
	case CategoryLaptop, CategoryPhone, CategoryAccessory:
		return true
	}
	return false
}

// Product represents a device listing in the store
// It is the aggregate root for listing and moderation operations
type Product struct {
	shared.BaseAggregateRoot
	SellerID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	Name            string          `gorm:"type:varchar(200);not null"`
	Description     string          `gorm:"type:text"`
	Category        ProductCategory `gorm:"type:varchar(20);not null;index"`
	PriceCents      int64           `gorm:"not null"`
	ImageKey        string          `gorm:"type:varchar(500)"`
	Status          ProductStatus   `gorm:"type:varchar(20);not null;default:'pending';index"`
	RejectionReason string          `gorm:"type:text"`
	ApprovedAt      *time.Time
	RejectedAt      *time.Time
	SoldAt          *time.Time
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new listing awaiting moderation
func NewProduct(sellerID uuid.UUID, name, description string, category ProductCategory, priceCents int64, imageKey string) (*Product, error) {
	if err := validateListing(sellerID, name, category, priceCents); err != nil {
		return nil, err
	}

	product := &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		SellerID:          sellerID,
		Name:              strings.TrimSpace(name),
		Description:       strings.TrimSpace(description),
		Category:          category,
		PriceCents:        priceCents,
		ImageKey:          imageKey,
		Status:            ProductStatusPending,
	}

	product.AddDomainEvent(NewProductSubmittedEvent(product))

	return product, nil
}

// NewApprovedProduct creates a listing that is immediately approved
// Used for admin-created listings which skip the moderation queue
func NewApprovedProduct(sellerID uuid.UUID, name, description string, category ProductCategory, priceCents int64, imageKey string) (*Product, error) {
	product, err := NewProduct(sellerID, name, description, category, priceCents, imageKey)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	product.Status = ProductStatusApproved
	product.ApprovedAt = &now

	return product, nil
}

// Approve moves a pending listing into the storefront
func (p *Product) Approve() error {
	if !p.Status.CanTransitionTo(ProductStatusApproved) {
		if p.Status == ProductStatusApproved || p.Status == ProductStatusRejected {
			return shared.ErrAlreadyProcessed
		}
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot approve product in %s status", p.Status))
	}

	now := time.Now()
	p.Status = ProductStatusApproved
	p.ApprovedAt = &now
	p.RejectionReason = ""
	p.UpdatedAt = now
	p.IncrementVersion()

	p.AddDomainEvent(NewProductApprovedEvent(p))

	return nil
}

// Reject declines a pending listing with a reason
func (p *Product) Reject(reason string) error {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return shared.NewDomainError("INVALID_REASON", "Rejection reason is required")
	}
	if !p.Status.CanTransitionTo(ProductStatusRejected) {
		if p.Status == ProductStatusApproved || p.Status == ProductStatusRejected {
			return shared.ErrAlreadyProcessed
		}
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot reject product in %s status", p.Status))
	}

	now := time.Now()
	p.Status = ProductStatusRejected
	p.RejectionReason = reason
	p.RejectedAt = &now
	p.UpdatedAt = now
	p.IncrementVersion()

	p.AddDomainEvent(NewProductRejectedEvent(p))

	return nil
}

// UpdateDetails edits the listing fields. Sold listings are frozen.
func (p *Product) UpdateDetails(name, description string, category ProductCategory, priceCents int64, imageKey string) error {
	if p.Status == ProductStatusSold {
		return shared.NewDomainError("INVALID_STATE", "Cannot edit a sold product")
	}
	if err := validateListing(p.SellerID, name, category, priceCents); err != nil {
		return err
	}

	p.Name = strings.TrimSpace(name)
	p.Description = strings.TrimSpace(description)
	p.Category = category
	p.PriceCents = priceCents
	p.ImageKey = imageKey
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	p.AddDomainEvent(NewProductUpdatedEvent(p))

	return nil
}

// MarkSold marks an approved listing as sold
func (p *Product) MarkSold() error {
	if !p.Status.CanTransitionTo(ProductStatusSold) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot sell product in %s status", p.Status))
	}

	now := time.Now()
	p.Status = ProductStatusSold
	p.SoldAt = &now
	p.UpdatedAt = now
	p.IncrementVersion()

	p.AddDomainEvent(NewProductSoldEvent(p))

	return nil
}

// IsPurchasable reports whether the listing can be added to a cart
func (p *Product) IsPurchasable() bool {
	return p.Status == ProductStatusApproved
}

func validateListing(sellerID uuid.UUID, name string, category ProductCategory, priceCents int64) error {
	if sellerID == uuid.Nil {
		return shared.NewDomainError("INVALID_SELLER", "Seller ID cannot be empty")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Product name is required")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot exceed 200 characters")
	}
	if !category.IsValid() {
		return shared.NewDomainError("INVALID_CATEGORY", fmt.Sprintf("Unknown category %q", category))
	}
	if priceCents <= 0 {
		return shared.NewDomainError("INVALID_PRICE", "Price must be positive")
	}
	return nil
}
