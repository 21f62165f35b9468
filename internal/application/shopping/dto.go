package shopping

import (
	"time"

	"github.com/gadgetstore/backend/internal/domain/shopping"
	"github.com/google/uuid"
)

// AddItemRequest represents a request to add a product to the cart
type AddItemRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
}

// CartItemResponse represents a cart line in API responses
type CartItemResponse struct {
	ProductID  uuid.UUID `json:"product_id"`
	Name       string    `json:"name"`
	PriceCents int64     `json:"price_cents"`
	ImageKey   string    `json:"image_key,omitempty"`
	ImageURL   string    `json:"image_url,omitempty"`
	AddedAt    time.Time `json:"added_at"`
}

// CartResponse represents the user's cart in API responses
type CartResponse struct {
	ID         uuid.UUID          `json:"id"`
	UserID     uuid.UUID          `json:"user_id"`
	Items      []CartItemResponse `json:"items"`
	TotalCents int64              `json:"total_cents"`
	ItemCount  int                `json:"item_count"`
}

// ItemCountResponse carries the cart badge count
type ItemCountResponse struct {
	Count int `json:"count"`
}

// ToCartResponse converts a domain Cart to CartResponse
func ToCartResponse(c *shopping.Cart) *CartResponse {
	items := make([]CartItemResponse, len(c.Items))
	for i, item := range c.Items {
		items[i] = CartItemResponse{
			ProductID:  item.ProductID,
			Name:       item.Name,
			PriceCents: item.PriceCents,
			ImageKey:   item.ImageKey,
			AddedAt:    item.AddedAt,
		}
	}
	return &CartResponse{
		ID:         c.ID,
		UserID:     c.UserID,
		Items:      items,
		TotalCents: c.TotalCents(),
		ItemCount:  c.ItemCount(),
	}
}
