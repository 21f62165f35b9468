package identity

import (
	"regexp"
	"strings"
	"time"

	"github.com/gadgetstore/backend/internal/domain/shared"
	"golang.org/x/crypto/bcrypt"
)

// UserRole represents the role of a user
type UserRole string

const (
	RoleUser  UserRole = "user"
	RoleAdmin UserRole = "admin"
)

// IsValid checks whether the role is a known role
func (r UserRole) IsValid() bool {
	return r == RoleUser || r == RoleAdmin
}

// Password cost for bcrypt
const bcryptCost = 12

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// User represents an account in the store
// It is the aggregate root for user-related operations
type User struct {
	shared.BaseAggregateRoot
	Email        string   `gorm:"type:varchar(255);not null;uniqueIndex"`
	Username     string   `gorm:"type:varchar(50);not null"`
	FullName     string   `gorm:"type:varchar(200);not null"`
	Phone        string   `gorm:"type:varchar(50)"`
	PasswordHash string   `gorm:"type:varchar(100);not null"`
	Role         UserRole `gorm:"type:varchar(20);not null;default:'user'"`
	LastLoginAt  *time.Time
}

// TableName returns the table name for GORM
func (User) TableName() string {
	return "users"
}

// NewUser creates a new customer account
func NewUser(email, password, fullName, username, phone string) (*User, error) {
	return newUser(email, password, fullName, username, phone, RoleUser)
}

// NewAdmin creates a new administrator account
func NewAdmin(email, password, fullName, username string) (*User, error) {
	return newUser(email, password, fullName, username, "", RoleAdmin)
}

func newUser(email, password, fullName, username, phone string, role UserRole) (*User, error) {
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if err := validatePassword(password); err != nil {
		return nil, err
	}
	if err := validateFullName(fullName); err != nil {
		return nil, err
	}
	if err := validateUsername(username); err != nil {
		return nil, err
	}
	if err := validatePhone(phone); err != nil {
		return nil, err
	}

	passwordHash, err := hashPassword(password)
	if err != nil {
		return nil, shared.NewDomainError("PASSWORD_HASH_ERROR", "Failed to hash password")
	}

	user := &User{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Email:             strings.ToLower(strings.TrimSpace(email)),
		Username:          strings.TrimSpace(username),
		FullName:          strings.TrimSpace(fullName),
		Phone:             strings.TrimSpace(phone),
		PasswordHash:      passwordHash,
		Role:              role,
	}

	user.AddDomainEvent(NewUserRegisteredEvent(user))

	return user, nil
}

// IsAdmin reports whether the user has the admin role
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// VerifyPassword checks the given password against the stored hash
func (u *User) VerifyPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// UpdateProfile updates the user's editable profile fields
func (u *User) UpdateProfile(fullName, username, phone string) error {
	if err := validateFullName(fullName); err != nil {
		return err
	}
	if err := validateUsername(username); err != nil {
		return err
	}
	if err := validatePhone(phone); err != nil {
		return err
	}

	u.FullName = strings.TrimSpace(fullName)
	u.Username = strings.TrimSpace(username)
	u.Phone = strings.TrimSpace(phone)
	u.UpdatedAt = time.Now()
	u.IncrementVersion()

	u.AddDomainEvent(NewUserProfileUpdatedEvent(u))

	return nil
}

// ChangePassword changes the user's password after verifying the current one
func (u *User) ChangePassword(oldPassword, newPassword string) error {
	if !u.VerifyPassword(oldPassword) {
		return shared.NewDomainError("INVALID_PASSWORD", "Current password is incorrect")
	}

	if err := validatePassword(newPassword); err != nil {
		return err
	}

	passwordHash, err := hashPassword(newPassword)
	if err != nil {
		return shared.NewDomainError("PASSWORD_HASH_ERROR", "Failed to hash password")
	}

	u.PasswordHash = passwordHash
	u.UpdatedAt = time.Now()
	u.IncrementVersion()

	u.AddDomainEvent(NewUserPasswordChangedEvent(u))

	return nil
}

// RecordLogin records a successful login timestamp
func (u *User) RecordLogin() {
	now := time.Now()
	u.LastLoginAt = &now
	u.UpdatedAt = now
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func validateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return shared.NewDomainError("INVALID_EMAIL", "Email is required")
	}
	if len(email) > 255 || !emailRegex.MatchString(email) {
		return shared.NewDomainError("INVALID_EMAIL", "Email format is invalid")
	}
	return nil
}

func validatePassword(password string) error {
	if len(password) < 6 {
		return shared.NewDomainError("INVALID_PASSWORD", "Password must be at least 6 characters")
	}
	if len(password) > 72 {
		// bcrypt truncates input beyond 72 bytes
		return shared.NewDomainError("INVALID_PASSWORD", "Password cannot exceed 72 characters")
	}
	return nil
}

func validateFullName(fullName string) error {
	fullName = strings.TrimSpace(fullName)
	if fullName == "" {
		return shared.NewDomainError("INVALID_FULL_NAME", "Full name is required")
	}
	if len(fullName) > 200 {
		return shared.NewDomainError("INVALID_FULL_NAME", "Full name cannot exceed 200 characters")
	}
	return nil
}

func validateUsername(username string) error {
	username = strings.TrimSpace(username)
	if username == "" {
		return shared.NewDomainError("INVALID_USERNAME", "Username is required")
	}
	if len(username) < 3 || len(username) > 50 {
		return shared.NewDomainError("INVALID_USERNAME", "Username must be between 3 and 50 characters")
	}
	return nil
}

func validatePhone(phone string) error {
	if phone != "" && len(phone) > 50 {
		return shared.NewDomainError("INVALID_PHONE", "Phone cannot exceed 50 characters")
	}
	return nil
}
