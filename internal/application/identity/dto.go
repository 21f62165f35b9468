package identity

import (
	"time"

	"github.com/gadgetstore/backend/internal/domain/identity"
	"github.com/google/uuid"
)

// RegisterRequest represents a request to register a new account
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email,max=255"`
	Password string `json:"password" binding:"required,min=6,max=72"`
	FullName string `json:"full_name" binding:"required,min=1,max=200"`
	Username string `json:"username" binding:"required,min=3,max=50"`
	Phone    string `json:"phone" binding:"max=50"`
}

// LoginRequest represents a login request
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RefreshRequest represents a token refresh request
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// UpdateProfileRequest represents a profile update request
type UpdateProfileRequest struct {
	FullName string `json:"full_name" binding:"required,min=1,max=200"`
	Username string `json:"username" binding:"required,min=3,max=50"`
	Phone    string `json:"phone" binding:"max=50"`
}

// ChangePasswordRequest represents a password change request
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=6,max=72"`
}

// UserListFilter represents query options for the admin user listing
type UserListFilter struct {
	Keyword  string `form:"search" binding:"omitempty,max=200"`
	Role     string `form:"role" binding:"omitempty,oneof=user admin"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// UserListResponse represents a paginated user list
type UserListResponse struct {
	Users      []UserResponse `json:"users"`
	TotalCount int64          `json:"total_count"`
	Page       int            `json:"page"`
	PageSize   int            `json:"page_size"`
}

// UserResponse represents a user in API responses
type UserResponse struct {
	ID          uuid.UUID  `json:"id"`
	Email       string     `json:"email"`
	Username    string     `json:"username"`
	FullName    string     `json:"full_name"`
	Phone       string     `json:"phone"`
	Role        string     `json:"role"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// LoginResponse represents a successful login
type LoginResponse struct {
	AccessToken           string       `json:"access_token"`
	RefreshToken          string       `json:"refresh_token"`
	AccessTokenExpiresAt  time.Time    `json:"access_token_expires_at"`
	RefreshTokenExpiresAt time.Time    `json:"refresh_token_expires_at"`
	TokenType             string       `json:"token_type"`
	Role                  string       `json:"role"`
	User                  UserResponse `json:"user"`
}

// RefreshResponse represents a refreshed token pair
type RefreshResponse struct {
	AccessToken           string    `json:"access_token"`
	RefreshToken          string    `json:"refresh_token"`
	AccessTokenExpiresAt  time.Time `json:"access_token_expires_at"`
	RefreshTokenExpiresAt time.Time `json:"refresh_token_expires_at"`
	TokenType             string    `json:"token_type"`
}

func (f UserListFilter) toDomainFilter() identity.UserFilter {
	filter := identity.NewUserFilter()
	if f.Keyword != "" {
		filter = filter.WithKeyword(f.Keyword)
	}
	if f.Role != "" {
		filter = filter.WithRole(identity.UserRole(f.Role))
	}
	page, pageSize := f.Page, f.PageSize
	if page == 0 {
		page = filter.Page
	}
	if pageSize == 0 {
		pageSize = filter.PageSize
	}
	return filter.WithPagination(page, pageSize)
}

// ToUserResponse converts a domain User to UserResponse
func ToUserResponse(u *identity.User) UserResponse {
	return UserResponse{
		ID:          u.ID,
		Email:       u.Email,
		Username:    u.Username,
		FullName:    u.FullName,
		Phone:       u.Phone,
		Role:        string(u.Role),
		LastLoginAt: u.LastLoginAt,
		CreatedAt:   u.CreatedAt,
	}
}
