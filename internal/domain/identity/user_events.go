package identity

import (
	"github.com/gadgetstore/backend/internal/domain/shared"
)

// Aggregate type constant for User
const AggregateTypeUser = "User"

// User domain event types
const (
	EventTypeUserRegistered      = "UserRegistered"
	EventTypeUserProfileUpdated  = "UserProfileUpdated"
	EventTypeUserPasswordChanged = "UserPasswordChanged"
)

// UserRegisteredEvent is published when a user account is created
type UserRegisteredEvent struct {
	shared.BaseDomainEvent
	Email    string   `json:"email"`
	Username string   `json:"username"`
	Role     UserRole `json:"role"`
}

// NewUserRegisteredEvent creates a new UserRegisteredEvent
func NewUserRegisteredEvent(user *User) *UserRegisteredEvent {
	return &UserRegisteredEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeUserRegistered, AggregateTypeUser, user.ID),
		Email:           user.Email,
		Username:        user.Username,
		Role:            user.Role,
	}
}

// UserProfileUpdatedEvent is published when a user updates their profile
type UserProfileUpdatedEvent struct {
	shared.BaseDomainEvent
	Username string `json:"username"`
	FullName string `json:"full_name"`
}

// NewUserProfileUpdatedEvent creates a new UserProfileUpdatedEvent
func NewUserProfileUpdatedEvent(user *User) *UserProfileUpdatedEvent {
	return &UserProfileUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeUserProfileUpdated, AggregateTypeUser, user.ID),
		Username:        user.Username,
		FullName:        user.FullName,
	}
}

// UserPasswordChangedEvent is published when a user's password is changed
type UserPasswordChangedEvent struct {
	shared.BaseDomainEvent
	Email string `json:"email"`
}

// NewUserPasswordChangedEvent creates a new UserPasswordChangedEvent
func NewUserPasswordChangedEvent(user *User) *UserPasswordChangedEvent {
	return &UserPasswordChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeUserPasswordChanged, AggregateTypeUser, user.ID),
		Email:           user.Email,
	}
}
