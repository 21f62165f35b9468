package trade

import (
	"fmt"
	"strings"
	"time"

	"github.com/gadgetstore/backend/internal/domain/catalog"
	"github.com/gadgetstore/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// TradeInStatus represents the state of a trade-in request
type TradeInStatus string

const (
	TradeInStatusPending  TradeInStatus = "pending"
	TradeInStatusQuoted   TradeInStatus = "quoted"
	TradeInStatusAccepted TradeInStatus = "accepted"
	TradeInStatusDeclined TradeInStatus = "declined"
)

// IsValid checks if the status is a valid TradeInStatus
func (s TradeInStatus) IsValid() bool {
	switch s {
	case TradeInStatusPending, TradeInStatusQuoted, TradeInStatusAccepted, TradeInStatusDeclined:
		return true
	}
	return false
}

// CanTransitionTo checks if the status can transition to the target status
func (s TradeInStatus) CanTransitionTo(target TradeInStatus) bool {
	switch s {
	case TradeInStatusPending:
		return target == TradeInStatusQuoted || target == TradeInStatusDeclined
	case TradeInStatusQuoted:
		return target == TradeInStatusAccepted || target == TradeInStatusDeclined
	case TradeInStatusAccepted, TradeInStatusDeclined:
		return false // Terminal states
	}
	return false
}

// DeviceCondition grades the device offered for trade-in
type DeviceCondition string

const (
	ConditionLikeNew DeviceCondition = "like-new"
	ConditionGood    DeviceCondition = "good"
	ConditionFair    DeviceCondition = "fair"
	ConditionBroken  DeviceCondition = "broken"
)

// IsValid checks if the condition is a known DeviceCondition
func (c DeviceCondition) IsValid() bool {
	switch c {
	case ConditionLikeNew, ConditionGood, ConditionFair, ConditionBroken:
		return true
	}
	return false
}

// TradeInRequest represents a user's offer to trade a device in
type TradeInRequest struct {
	shared.BaseAggregateRoot
	UserID      uuid.UUID               `gorm:"type:uuid;not null;index"`
	DeviceName  string                  `gorm:"type:varchar(200);not null"`
	Category    catalog.ProductCategory `gorm:"type:varchar(20);not null"`
	Condition   DeviceCondition         `gorm:"type:varchar(20);not null"`
	Description string                  `gorm:"type:text"`
	ImageKey    string                  `gorm:"type:varchar(500)"`
	Status      TradeInStatus           `gorm:"type:varchar(20);not null;default:'pending';index"`
	QuoteCents  int64                   `gorm:"not null;default:0"`
	QuotedAt    *time.Time
	ResolvedAt  *time.Time
}

// TableName returns the table name for GORM
func (TradeInRequest) TableName() string {
	return "trade_in_requests"
}

// NewTradeInRequest creates a pending trade-in request
func NewTradeInRequest(userID uuid.UUID, deviceName string, category catalog.ProductCategory, condition DeviceCondition, description, imageKey string) (*TradeInRequest, error) {
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "User ID cannot be empty")
	}
	deviceName = strings.TrimSpace(deviceName)
	if deviceName == "" {
		return nil, shared.NewDomainError("INVALID_DEVICE", "Device name is required")
	}
	if !category.IsValid() {
		return nil, shared.NewDomainError("INVALID_CATEGORY", fmt.Sprintf("Unknown category %q", category))
	}
	if !condition.IsValid() {
		return nil, shared.NewDomainError("INVALID_CONDITION", fmt.Sprintf("Unknown condition %q", condition))
	}

	request := &TradeInRequest{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		UserID:            userID,
		DeviceName:        deviceName,
		Category:          category,
		Condition:         condition,
		Description:       strings.TrimSpace(description),
		ImageKey:          imageKey,
		Status:            TradeInStatusPending,
	}

	request.AddDomainEvent(NewTradeInSubmittedEvent(request))

	return request, nil
}

// Quote attaches an offer amount to a pending request
func (r *TradeInRequest) Quote(amountCents int64) error {
	if amountCents <= 0 {
		return shared.NewDomainError("INVALID_QUOTE", "Quote amount must be positive")
	}
	if !r.Status.CanTransitionTo(TradeInStatusQuoted) {
		return shared.ErrAlreadyProcessed
	}

	now := time.Now()
	r.Status = TradeInStatusQuoted
	r.QuoteCents = amountCents
	r.QuotedAt = &now
	r.UpdatedAt = now
	r.IncrementVersion()

	r.AddDomainEvent(NewTradeInQuotedEvent(r))

	return nil
}

// Accept takes the quoted offer
func (r *TradeInRequest) Accept() error {
	if !r.Status.CanTransitionTo(TradeInStatusAccepted) {
		return shared.ErrAlreadyProcessed
	}

	now := time.Now()
	r.Status = TradeInStatusAccepted
	r.ResolvedAt = &now
	r.UpdatedAt = now
	r.IncrementVersion()

	r.AddDomainEvent(NewTradeInResolvedEvent(r))

	return nil
}

// Decline turns the request down, either by the owner or by an admin
func (r *TradeInRequest) Decline() error {
	if !r.Status.CanTransitionTo(TradeInStatusDeclined) {
		return shared.ErrAlreadyProcessed
	}

	now := time.Now()
	r.Status = TradeInStatusDeclined
	r.ResolvedAt = &now
	r.UpdatedAt = now
	r.IncrementVersion()

	r.AddDomainEvent(NewTradeInResolvedEvent(r))

	return nil
}
