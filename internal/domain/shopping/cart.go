package shopping

import (
	"time"

	"github.com/gadgetstore/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// CartItem is a snapshot of a listing at the moment it was added
// Price and name changes after adding do not affect the cart
type CartItem struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	CartID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_cart_item_product,priority:1"`
	ProductID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_cart_item_product,priority:2"`
	Name       string    `gorm:"type:varchar(200);not null"`
	PriceCents int64     `gorm:"not null"`
	ImageKey   string    `gorm:"type:varchar(500)"`
	AddedAt    time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (CartItem) TableName() string {
	return "cart_items"
}

// Cart holds the items a user intends to buy
// There is at most one cart per user, holding distinct products
type Cart struct {
	shared.BaseAggregateRoot
	UserID uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex"`
	Items  []CartItem `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (Cart) TableName() string {
	return "carts"
}

// NewCart creates an empty cart for the user
func NewCart(userID uuid.UUID) (*Cart, error) {
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "User ID cannot be empty")
	}
	return &Cart{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		UserID:            userID,
		Items:             make([]CartItem, 0),
	}, nil
}

// AddItem adds a product snapshot to the cart
// Adding a product that is already present is a no-op
func (c *Cart) AddItem(productID uuid.UUID, name string, priceCents int64, imageKey string) bool {
	if c.Contains(productID) {
		return false
	}

	c.Items = append(c.Items, CartItem{
		ID:         uuid.New(),
		CartID:     c.ID,
		ProductID:  productID,
		Name:       name,
		PriceCents: priceCents,
		ImageKey:   imageKey,
		AddedAt:    time.Now(),
	})
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
	return true
}

// RemoveItem removes the product from the cart if present
func (c *Cart) RemoveItem(productID uuid.UUID) bool {
	for i, item := range c.Items {
		if item.ProductID == productID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			c.UpdatedAt = time.Now()
			c.IncrementVersion()
			return true
		}
	}
	return false
}

// Clear removes every item from the cart
func (c *Cart) Clear() {
	if len(c.Items) == 0 {
		return
	}
	c.Items = make([]CartItem, 0)
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
}

// Contains reports whether the product is already in the cart
func (c *Cart) Contains(productID uuid.UUID) bool {
	for _, item := range c.Items {
		if item.ProductID == productID {
			return true
		}
	}
	return false
}

// ProductIDs returns the product IDs of the items in the cart
func (c *Cart) ProductIDs() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(c.Items))
	for _, item := range c.Items {
		ids = append(ids, item.ProductID)
	}
	return ids
}

// TotalCents returns the sum of item snapshot prices
func (c *Cart) TotalCents() int64 {
	var total int64
	for _, item := range c.Items {
		total += item.PriceCents
	}
	return total
}

// ItemCount returns the number of distinct items, used for the cart badge
func (c *Cart) ItemCount() int {
	return len(c.Items)
}

// IsEmpty reports whether the cart has no items
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}
