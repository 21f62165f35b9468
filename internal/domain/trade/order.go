package trade

import (
	"strings"
	"time"

	"github.com/gadgetstore/backend/internal/domain/shared"
	"github.com/gadgetstore/backend/internal/domain/shopping"
	"github.com/google/uuid"
)

// PaymentStatus represents the review state of an order's payment proof
type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusApproved PaymentStatus = "approved"
	PaymentStatusRejected PaymentStatus = "rejected"
)

// IsValid checks if the status is a valid PaymentStatus
func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentStatusPending, PaymentStatusApproved, PaymentStatusRejected:
		return true
	}
	return false
}

// String returns the string representation of PaymentStatus
func (s PaymentStatus) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status
func (s PaymentStatus) CanTransitionTo(target PaymentStatus) bool {
	switch s {
	case PaymentStatusPending:
		return target == PaymentStatusApproved || target == PaymentStatusRejected
	case PaymentStatusApproved, PaymentStatusRejected:
		return false // Terminal states
	}
	return false
}

// OrderItem is a line in an order, snapshotted from the cart at checkout
type OrderItem struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID    uuid.UUID `gorm:"type:uuid;not null;index"`
	ProductID  uuid.UUID `gorm:"type:uuid;not null;index"`
	Name       string    `gorm:"type:varchar(200);not null"`
	PriceCents int64     `gorm:"not null"`
	ImageKey   string    `gorm:"type:varchar(500)"`
	CreatedAt  time.Time
}

// TableName returns the table name for GORM
func (OrderItem) TableName() string {
	return "order_items"
}

// ShippingInfo is the delivery contact for an order
type ShippingInfo struct {
	Name    string `gorm:"column:shipping_name;type:varchar(200);not null"`
	Phone   string `gorm:"column:shipping_phone;type:varchar(50);not null"`
	Address string `gorm:"column:shipping_address;type:text;not null"`
}

// Order represents a purchase awaiting or past payment review
// It is the aggregate root for the checkout and payment workflow
type Order struct {
	shared.BaseAggregateRoot
	BuyerID         uuid.UUID     `gorm:"type:uuid;not null;index"`
	Items           []OrderItem   `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	TotalCents      int64         `gorm:"not null"`
	Shipping        ShippingInfo  `gorm:"embedded"`
	PaymentProofKey string        `gorm:"type:varchar(500);not null"`
	PaymentStatus   PaymentStatus `gorm:"type:varchar(20);not null;default:'pending';index"`
	RejectionReason string        `gorm:"type:text"`
	ApprovedAt      *time.Time
	RejectedAt      *time.Time
}

// TableName returns the table name for GORM
func (Order) TableName() string {
	return "orders"
}

// NewOrderFromCart creates a pending order from the user's cart items
// Each cart item becomes one order line; the total is the sum of line prices
func NewOrderFromCart(buyerID uuid.UUID, cartItems []shopping.CartItem, shipping ShippingInfo, paymentProofKey string) (*Order, error) {
	if buyerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_BUYER", "Buyer ID cannot be empty")
	}
	if len(cartItems) == 0 {
		return nil, shared.ErrEmptyCart
	}
	if err := shipping.validate(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(paymentProofKey) == "" {
		return nil, shared.NewDomainError("INVALID_PAYMENT_PROOF", "Payment proof is required")
	}

	order := &Order{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		BuyerID:           buyerID,
		Shipping:          shipping,
		PaymentProofKey:   paymentProofKey,
		PaymentStatus:     PaymentStatusPending,
	}

	now := time.Now()
	for _, item := range cartItems {
		order.Items = append(order.Items, OrderItem{
			ID:         uuid.New(),
			OrderID:    order.ID,
			ProductID:  item.ProductID,
			Name:       item.Name,
			PriceCents: item.PriceCents,
			ImageKey:   item.ImageKey,
			CreatedAt:  now,
		})
		order.TotalCents += item.PriceCents
	}

	order.AddDomainEvent(NewOrderPlacedEvent(order))

	return order, nil
}

// ApprovePayment marks the payment proof as accepted
func (o *Order) ApprovePayment() error {
	if !o.PaymentStatus.CanTransitionTo(PaymentStatusApproved) {
		return shared.ErrAlreadyProcessed
	}

	now := time.Now()
	o.PaymentStatus = PaymentStatusApproved
	o.ApprovedAt = &now
	o.UpdatedAt = now
	o.IncrementVersion()

	o.AddDomainEvent(NewPaymentApprovedEvent(o))

	return nil
}

// RejectPayment marks the payment proof as rejected with a reason
func (o *Order) RejectPayment(reason string) error {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return shared.NewDomainError("INVALID_REASON", "Rejection reason is required")
	}
	if !o.PaymentStatus.CanTransitionTo(PaymentStatusRejected) {
		return shared.ErrAlreadyProcessed
	}

	now := time.Now()
	o.PaymentStatus = PaymentStatusRejected
	o.RejectionReason = reason
	o.RejectedAt = &now
	o.UpdatedAt = now
	o.IncrementVersion()

	o.AddDomainEvent(NewPaymentRejectedEvent(o))

	return nil
}

// ProductIDs returns the product IDs referenced by the order lines
func (o *Order) ProductIDs() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(o.Items))
	for _, item := range o.Items {
		ids = append(ids, item.ProductID)
	}
	return ids
}

func (s ShippingInfo) validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return shared.NewDomainError("INVALID_SHIPPING", "Shipping name is required")
	}
	if strings.TrimSpace(s.Phone) == "" {
		return shared.NewDomainError("INVALID_SHIPPING", "Shipping phone is required")
	}
	if strings.TrimSpace(s.Address) == "" {
		return shared.NewDomainError("INVALID_SHIPPING", "Shipping address is required")
	}
	if len(s.Address) > 1000 {
		return shared.NewDomainError("INVALID_SHIPPING", "Shipping address cannot exceed 1000 characters")
	}
	return nil
}
