package trade

import (
	"context"

	"github.com/google/uuid"
)

// OrderRepository defines the interface for order persistence
type OrderRepository interface {
	// Create creates a new order with its items
	Create(ctx context.Context, order *Order) error

	// FindByID finds an order with its items
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)

	// FindAll returns orders matching the filter, newest first
	FindAll(ctx context.Context, filter OrderFilter) ([]*Order, int64, error)

	// UpdatePaymentStatus transitions the order's payment status using a
	// compare-and-set on the current status. Returns the number of rows
	// changed: zero means the order was absent or not in fromStatus.
	UpdatePaymentStatus(ctx context.Context, id uuid.UUID, fromStatus, toStatus PaymentStatus, reason string) (int64, error)

	// CountByStatus counts orders in the given payment status
	CountByStatus(ctx context.Context, status PaymentStatus) (int64, error)
}

// OrderFilter contains filter options for querying orders
type OrderFilter struct {
	// Filter by buyer
	BuyerID *uuid.UUID

	// Filter by payment status
	Status *PaymentStatus

	// Pagination
	Page     int
	PageSize int
}

// NewOrderFilter creates a new OrderFilter with default values
func NewOrderFilter() OrderFilter {
	return OrderFilter{
		Page:     1,
		PageSize: 20,
	}
}

// WithBuyer sets the buyer filter
func (f OrderFilter) WithBuyer(buyerID uuid.UUID) OrderFilter {
	f.BuyerID = &buyerID
	return f
}

// WithStatus sets the payment status filter
func (f OrderFilter) WithStatus(status PaymentStatus) OrderFilter {
	f.Status = &status
	return f
}

// WithPagination sets pagination parameters
func (f OrderFilter) WithPagination(page, pageSize int) OrderFilter {
	f.Page = page
	f.PageSize = pageSize
	return f
}

// Offset returns the offset for pagination
func (f OrderFilter) Offset() int {
	if f.Page <= 0 {
		return 0
	}
	return (f.Page - 1) * f.PageSize
}

// Limit returns the limit for pagination
func (f OrderFilter) Limit() int {
	if f.PageSize <= 0 {
		return 20
	}
	if f.PageSize > 100 {
		return 100
	}
	return f.PageSize
}
