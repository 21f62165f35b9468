package trade

import (
	"github.com/gadgetstore/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Aggregate type constant for TradeInRequest
const AggregateTypeTradeIn = "TradeInRequest"

// Trade-in domain event types
const (
	EventTypeTradeInSubmitted = "TradeInSubmitted"
	EventTypeTradeInQuoted    = "TradeInQuoted"
	EventTypeTradeInResolved  = "TradeInResolved"
)

// TradeInSubmittedEvent is published when a user submits a trade-in request
type TradeInSubmittedEvent struct {
	shared.BaseDomainEvent
	UserID     uuid.UUID       `json:"user_id"`
	DeviceName string          `json:"device_name"`
	Condition  DeviceCondition `json:"condition"`
}

// NewTradeInSubmittedEvent creates a new TradeInSubmittedEvent
func NewTradeInSubmittedEvent(request *TradeInRequest) *TradeInSubmittedEvent {
	return &TradeInSubmittedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeTradeInSubmitted, AggregateTypeTradeIn, request.ID),
		UserID:          request.UserID,
		DeviceName:      request.DeviceName,
		Condition:       request.Condition,
	}
}

// TradeInQuotedEvent is published when an admin quotes a request
type TradeInQuotedEvent struct {
	shared.BaseDomainEvent
	UserID     uuid.UUID `json:"user_id"`
	QuoteCents int64     `json:"quote_cents"`
}

// NewTradeInQuotedEvent creates a new TradeInQuotedEvent
func NewTradeInQuotedEvent(request *TradeInRequest) *TradeInQuotedEvent {
	return &TradeInQuotedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeTradeInQuoted, AggregateTypeTradeIn, request.ID),
		UserID:          request.UserID,
		QuoteCents:      request.QuoteCents,
	}
}

// TradeInResolvedEvent is published when a request is accepted or declined
type TradeInResolvedEvent struct {
	shared.BaseDomainEvent
	UserID uuid.UUID     `json:"user_id"`
	Status TradeInStatus `json:"status"`
}

// NewTradeInResolvedEvent creates a new TradeInResolvedEvent
func NewTradeInResolvedEvent(request *TradeInRequest) *TradeInResolvedEvent {
	return &TradeInResolvedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeTradeInResolved, AggregateTypeTradeIn, request.ID),
		UserID:          request.UserID,
		Status:          request.Status,
	}
}
