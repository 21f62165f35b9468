package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/gadgetstore/backend/internal/domain/identity"
	"github.com/gadgetstore/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// pgUniqueViolation is the postgres error code for unique constraint violations
const pgUniqueViolation = "23505"

// ErrDuplicateEmail is returned when registering an already-used email
var ErrDuplicateEmail = shared.NewDomainError("DUPLICATE_EMAIL", "Email is already registered")

// GormUserRepository implements identity.UserRepository using GORM
type GormUserRepository struct {
	db *gorm.DB
}

// NewGormUserRepository creates a new GormUserRepository
func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

// Create creates a new user
func (r *GormUserRepository) Create(ctx context.Context, user *identity.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return translateUniqueViolation(err)
	}
	return nil
}

// Update updates an existing user with optimistic locking
func (r *GormUserRepository) Update(ctx context.Context, user *identity.User) error {
	result := r.db.WithContext(ctx).
		Model(&identity.User{}).
		Where("id = ? AND version = ?", user.ID, user.Version-1).
		Updates(map[string]interface{}{
			"email":         user.Email,
			"username":      user.Username,
			"full_name":     user.FullName,
			"phone":         user.Phone,
			"password_hash": user.PasswordHash,
			"role":          user.Role,
			"last_login_at": user.LastLoginAt,
			"updated_at":    user.UpdatedAt,
			"version":       user.Version,
		})
	if result.Error != nil {
		return translateUniqueViolation(result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}

// FindByID finds a user by ID
func (r *GormUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	var user identity.User
	if err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// FindByEmail finds a user by email
func (r *GormUserRepository) FindByEmail(ctx context.Context, email string) (*identity.User, error) {
	if email == "" {
		return nil, shared.NewDomainError("INVALID_EMAIL", "Email cannot be empty")
	}
	var user identity.User
	if err := r.db.WithContext(ctx).
		Where("email = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// ExistsByEmail checks if an email is already registered
func (r *GormUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&identity.User{}).
		Where("email = ?", strings.ToLower(strings.TrimSpace(email))).
		Count(&count).Error
	return count > 0, err
}

// FindAll returns users matching the filter with pagination
func (r *GormUserRepository) FindAll(ctx context.Context, filter identity.UserFilter) ([]*identity.User, int64, error) {
	query := r.db.WithContext(ctx).Model(&identity.User{})

	if filter.Role != nil {
		query = query.Where("role = ?", *filter.Role)
	}
	if filter.Keyword != "" {
		keyword := "%" + filter.Keyword + "%"
		query = query.Where("email ILIKE ? OR username ILIKE ? OR full_name ILIKE ?", keyword, keyword, keyword)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []*identity.User
	if err := query.
		Order("created_at DESC").
		Offset(filter.Offset()).
		Limit(filter.Limit()).
		Find(&users).Error; err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

// Count returns the total number of users
func (r *GormUserRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&identity.User{}).Count(&count).Error
	return count, err
}

// translateUniqueViolation maps postgres unique constraint errors to domain errors
func translateUniqueViolation(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && string(pqErr.Code) == pgUniqueViolation {
		return ErrDuplicateEmail
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicateEmail
	}
	return err
}

// Ensure GormUserRepository implements UserRepository
var _ identity.UserRepository = (*GormUserRepository)(nil)
