package catalog

import (
	"github.com/gadgetstore/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Aggregate type constant for Product
const AggregateTypeProduct = "Product"

// Product domain event types
const (
	EventTypeProductSubmitted = "ProductSubmitted"
	EventTypeProductApproved  = "ProductApproved"
	EventTypeProductRejected  = "ProductRejected"
	EventTypeProductSold      = "ProductSold"
	EventTypeProductUpdated   = "ProductUpdated"
	EventTypeProductDeleted   = "ProductDeleted"
)

// ProductSubmittedEvent is published when a seller submits a listing
type ProductSubmittedEvent struct {
	shared.BaseDomainEvent
	SellerID   uuid.UUID       `json:"seller_id"`
	Name       string          `json:"name"`
	Category   ProductCategory `json:"category"`
	PriceCents int64           `json:"price_cents"`
}

// NewProductSubmittedEvent creates a new ProductSubmittedEvent
func NewProductSubmittedEvent(product *Product) *ProductSubmittedEvent {
	return &ProductSubmittedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProductSubmitted, AggregateTypeProduct, product.ID),
		SellerID:        product.SellerID,
		Name:            product.Name,
		Category:        product.Category,
		PriceCents:      product.PriceCents,
	}
}

// ProductApprovedEvent is published when a listing passes moderation
type ProductApprovedEvent struct {
	shared.BaseDomainEvent
	SellerID uuid.UUID `json:"seller_id"`
	Name     string    `json:"name"`
}

// NewProductApprovedEvent creates a new ProductApprovedEvent
func NewProductApprovedEvent(product *Product) *ProductApprovedEvent {
	return &ProductApprovedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProductApproved, AggregateTypeProduct, product.ID),
		SellerID:        product.SellerID,
		Name:            product.Name,
	}
}

// ProductRejectedEvent is published when a listing fails moderation
type ProductRejectedEvent struct {
	shared.BaseDomainEvent
	SellerID uuid.UUID `json:"seller_id"`
	Name     string    `json:"name"`
	Reason   string    `json:"reason"`
}

// NewProductRejectedEvent creates a new ProductRejectedEvent
func NewProductRejectedEvent(product *Product) *ProductRejectedEvent {
	return &ProductRejectedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProductRejected, AggregateTypeProduct, product.ID),
		SellerID:        product.SellerID,
		Name:            product.Name,
		Reason:          product.RejectionReason,
	}
}

// ProductUpdatedEvent is published when an admin edits a listing
type ProductUpdatedEvent struct {
	shared.BaseDomainEvent
	SellerID   uuid.UUID       `json:"seller_id"`
	Name       string          `json:"name"`
	Category   ProductCategory `json:"category"`
	PriceCents int64           `json:"price_cents"`
}

// NewProductUpdatedEvent creates a new ProductUpdatedEvent
func NewProductUpdatedEvent(product *Product) *ProductUpdatedEvent {
	return &ProductUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProductUpdated, AggregateTypeProduct, product.ID),
		SellerID:        product.SellerID,
		Name:            product.Name,
		Category:        product.Category,
		PriceCents:      product.PriceCents,
	}
}

// ProductDeletedEvent is published when an admin removes a listing
type ProductDeletedEvent struct {
	shared.BaseDomainEvent
	SellerID uuid.UUID `json:"seller_id"`
	Name     string    `json:"name"`
}

// NewProductDeletedEvent creates a new ProductDeletedEvent
func NewProductDeletedEvent(product *Product) *ProductDeletedEvent {
	return &ProductDeletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProductDeleted, AggregateTypeProduct, product.ID),
		SellerID:        product.SellerID,
		Name:            product.Name,
	}
}

// ProductSoldEvent is published when a listing is sold
type ProductSoldEvent struct {
	shared.BaseDomainEvent
	SellerID uuid.UUID `json:"seller_id"`
	Name     string    `json:"name"`
}

// NewProductSoldEvent creates a new ProductSoldEvent
func NewProductSoldEvent(product *Product) *ProductSoldEvent {
	return &ProductSoldEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProductSold, AggregateTypeProduct, product.ID),
		SellerID:        product.SellerID,
		Name:            product.Name,
	}
}
