package trade

import (
	"github.com/gadgetstore/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Aggregate type constant for Order
const AggregateTypeOrder = "Order"

// Order domain event types
const (
	EventTypeOrderPlaced     = "OrderPlaced"
	EventTypePaymentApproved = "PaymentApproved"
	EventTypePaymentRejected = "PaymentRejected"
)

// OrderPlacedEvent is published when a buyer checks out
type OrderPlacedEvent struct {
	shared.BaseDomainEvent
	BuyerID    uuid.UUID `json:"buyer_id"`
	ItemCount  int       `json:"item_count"`
	TotalCents int64     `json:"total_cents"`
}

// NewOrderPlacedEvent creates a new OrderPlacedEvent
func NewOrderPlacedEvent(order *Order) *OrderPlacedEvent {
	return &OrderPlacedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderPlaced, AggregateTypeOrder, order.ID),
		BuyerID:         order.BuyerID,
		ItemCount:       len(order.Items),
		TotalCents:      order.TotalCents,
	}
}

// PaymentApprovedEvent is published when an admin accepts the payment proof
type PaymentApprovedEvent struct {
	shared.BaseDomainEvent
	BuyerID    uuid.UUID `json:"buyer_id"`
	TotalCents int64     `json:"total_cents"`
}

// NewPaymentApprovedEvent creates a new PaymentApprovedEvent
func NewPaymentApprovedEvent(order *Order) *PaymentApprovedEvent {
	return &PaymentApprovedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePaymentApproved, AggregateTypeOrder, order.ID),
		BuyerID:         order.BuyerID,
		TotalCents:      order.TotalCents,
	}
}

// PaymentRejectedEvent is published when an admin declines the payment proof
type PaymentRejectedEvent struct {
	shared.BaseDomainEvent
	BuyerID uuid.UUID `json:"buyer_id"`
	Reason  string    `json:"reason"`
}

// NewPaymentRejectedEvent creates a new PaymentRejectedEvent
func NewPaymentRejectedEvent(order *Order) *PaymentRejectedEvent {
	return &PaymentRejectedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePaymentRejected, AggregateTypeOrder, order.ID),
		BuyerID:         order.BuyerID,
		Reason:          order.RejectionReason,
	}
}
