package trade

import (
	"context"

	"github.com/google/uuid"
)

// TradeInRepository defines the interface for trade-in request persistence
type TradeInRepository interface {
	// Create creates a new trade-in request
	Create(ctx context.Context, request *TradeInRequest) error

	// Update updates an existing request
	Update(ctx context.Context, request *TradeInRequest) error

	// FindByID finds a request by ID
	FindByID(ctx context.Context, id uuid.UUID) (*TradeInRequest, error)

	// FindAll returns requests matching the filter, newest first
	FindAll(ctx context.Context, filter TradeInFilter) ([]*TradeInRequest, int64, error)

	// CountByStatus counts requests in the given status
	CountByStatus(ctx context.Context, status TradeInStatus) (int64, error)
}

// TradeInFilter contains filter options for querying trade-in requests
type TradeInFilter struct {
	// Filter by owner
	UserID *uuid.UUID

	// Filter by status
	Status *TradeInStatus

	// Pagination
	Page     int
	PageSize int
}

// NewTradeInFilter creates a new TradeInFilter with default values
func NewTradeInFilter() TradeInFilter {
	return TradeInFilter{
		Page:     1,
		PageSize: 20,
	}
}

// WithUser sets the owner filter
func (f TradeInFilter) WithUser(userID uuid.UUID) TradeInFilter {
	f.UserID = &userID
	return f
}

// WithStatus sets the status filter
func (f TradeInFilter) WithStatus(status TradeInStatus) TradeInFilter {
	f.Status = &status
	return f
}

// WithPagination sets pagination parameters
func (f TradeInFilter) WithPagination(page, pageSize int) TradeInFilter {
	f.Page = page
	f.PageSize = pageSize
	return f
}

// Offset returns the offset for pagination
func (f TradeInFilter) Offset() int {
	if f.Page <= 0 {
		return 0
	}
	return (f.Page - 1) * f.PageSize
}

// Limit returns the limit for pagination
func (f TradeInFilter) Limit() int {
	if f.PageSize <= 0 {
		return 20
	}
	if f.PageSize > 100 {
		return 100
	}
	return f.PageSize
}
