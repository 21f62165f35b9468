package shopping

import (
	"context"

	"github.com/google/uuid"
)

// CartRepository defines the interface for cart persistence
type CartRepository interface {
	// FindByUserID finds the user's cart with its items
	// Returns shared.ErrNotFound when the user has no cart yet
	FindByUserID(ctx context.Context, userID uuid.UUID) (*Cart, error)

	// Save creates or updates the cart and replaces its items
	Save(ctx context.Context, cart *Cart) error

	// DeleteByUserID removes the user's cart and its items
	DeleteByUserID(ctx context.Context, userID uuid.UUID) error
}
