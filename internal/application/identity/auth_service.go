package identity

import (
	"context"
	"errors"

	"github.com/gadgetstore/backend/internal/domain/identity"
	"github.com/gadgetstore/backend/internal/domain/shared"
	"github.com/gadgetstore/backend/internal/infrastructure/auth"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AuthService handles registration, authentication and profile operations
type AuthService struct {
	userRepo   identity.UserRepository
	jwtService *auth.JWTService
	blacklist  auth.TokenBlacklist
	publisher  shared.EventPublisher
	logger     *zap.Logger
}

// NewAuthService creates a new authentication service
func NewAuthService(
	userRepo identity.UserRepository,
	jwtService *auth.JWTService,
	blacklist auth.TokenBlacklist,
	publisher shared.EventPublisher,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		jwtService: jwtService,
		blacklist:  blacklist,
		publisher:  publisher,
		logger:     logger,
	}
}

// Register creates a new customer account
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*UserResponse, error) {
	exists, err := s.userRepo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("DUPLICATE_EMAIL", "Email is already registered")
	}

	user, err := identity.NewUser(req.Email, req.Password, req.FullName, req.Username, req.Phone)
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, user)

	s.logger.Info("User registered",
		zap.String("user_id", user.ID.String()),
	)

	response := ToUserResponse(user)
	return &response, nil
}

// Login authenticates a user and returns a token pair plus the user's role.
// The role lets the client route to the storefront or the admin dashboard.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid email or password")
		}
		return nil, err
	}

	if !user.VerifyPassword(req.Password) {
		s.logger.Warn("Invalid password attempt", zap.String("user_id", user.ID.String()))
		return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid email or password")
	}

	user.RecordLogin()
	if err := s.userRepo.Update(ctx, user); err != nil {
		// Login still succeeds when the timestamp update fails
		s.logger.Error("Failed to record login time", zap.Error(err))
	}

	pair, err := s.jwtService.GenerateTokenPair(auth.GenerateTokenInput{
		UserID: user.ID,
		Email:  user.Email,
		Role:   string(user.Role),
	})
	if err != nil {
		s.logger.Error("Failed to generate token pair", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to generate tokens")
	}

	s.logger.Info("User logged in",
		zap.String("user_id", user.ID.String()),
		zap.String("role", string(user.Role)),
	)

	return &LoginResponse{
		AccessToken:           pair.AccessToken,
		RefreshToken:          pair.RefreshToken,
		AccessTokenExpiresAt:  pair.AccessTokenExpiresAt,
		RefreshTokenExpiresAt: pair.RefreshTokenExpiresAt,
		TokenType:             pair.TokenType,
		Role:                  string(user.Role),
		User:                  ToUserResponse(user),
	}, nil
}

// Refresh exchanges a valid refresh token for a new token pair
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*RefreshResponse, error) {
	claims, err := s.jwtService.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, shared.NewDomainError("UNAUTHORIZED", "Invalid refresh token")
	}

	blacklisted, err := s.blacklist.IsBlacklisted(ctx, claims.ID)
	if err != nil {
		s.logger.Error("Blacklist check failed", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to verify token")
	}
	if blacklisted {
		return nil, shared.NewDomainError("UNAUTHORIZED", "Token has been revoked")
	}

	invalidated, err := s.blacklist.IsUserTokenInvalidated(ctx, claims.UserID, claims.GetIssuedAtTime())
	if err != nil {
		s.logger.Error("Token invalidation check failed", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to verify token")
	}
	if invalidated {
		return nil, shared.NewDomainError("UNAUTHORIZED", "Token has been revoked")
	}

	pair, err := s.jwtService.RefreshTokenPair(refreshToken, claims.Email)
	if err != nil {
		if errors.Is(err, auth.ErrMaxRefreshExceeded) {
			return nil, shared.NewDomainError("UNAUTHORIZED", "Session expired, please log in again")
		}
		return nil, shared.NewDomainError("UNAUTHORIZED", "Invalid refresh token")
	}

	return &RefreshResponse{
		AccessToken:           pair.AccessToken,
		RefreshToken:          pair.RefreshToken,
		AccessTokenExpiresAt:  pair.AccessTokenExpiresAt,
		RefreshTokenExpiresAt: pair.RefreshTokenExpiresAt,
		TokenType:             pair.TokenType,
	}, nil
}

// Logout revokes the presented access token until it expires
func (s *AuthService) Logout(ctx context.Context, accessToken string) error {
	claims, err := s.jwtService.ValidateAccessToken(accessToken)
	if err != nil {
		// Expired or malformed tokens need no revocation
		return nil
	}

	ttl := claims.GetRemainingTTL()
	if ttl <= 0 {
		return nil
	}

	if err := s.blacklist.AddToBlacklist(ctx, claims.ID, ttl); err != nil {
		s.logger.Error("Failed to blacklist token", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to log out")
	}

	s.logger.Info("User logged out", zap.String("user_id", claims.UserID))
	return nil
}

// GetProfile returns the user's profile
func (s *AuthService) GetProfile(ctx context.Context, userID uuid.UUID) (*UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	response := ToUserResponse(user)
	return &response, nil
}

// UpdateProfile updates the user's display fields
func (s *AuthService) UpdateProfile(ctx context.Context, userID uuid.UUID, req UpdateProfileRequest) (*UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := user.UpdateProfile(req.FullName, req.Username, req.Phone); err != nil {
		return nil, err
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, user)

	response := ToUserResponse(user)
	return &response, nil
}

// ListUsers returns registered accounts for the admin dashboard
func (s *AuthService) ListUsers(ctx context.Context, filter UserListFilter) (*UserListResponse, error) {
	domainFilter := filter.toDomainFilter()
	users, total, err := s.userRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, err
	}

	responses := make([]UserResponse, len(users))
	for i, u := range users {
		responses[i] = ToUserResponse(u)
	}

	return &UserListResponse{
		Users:      responses,
		TotalCount: total,
		Page:       domainFilter.Page,
		PageSize:   domainFilter.Limit(),
	}, nil
}

// GetUser returns a single account by ID. Admin use.
func (s *AuthService) GetUser(ctx context.Context, id uuid.UUID) (*UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("USER_NOT_FOUND", "User not found")
		}
		return nil, err
	}

	response := ToUserResponse(user)
	return &response, nil
}

// ChangePassword verifies the current password and replaces it.
// All outstanding tokens for the user are invalidated.
func (s *AuthService) ChangePassword(ctx context.Context, userID uuid.UUID, req ChangePasswordRequest) error {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	if err := user.ChangePassword(req.OldPassword, req.NewPassword); err != nil {
		return err
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return err
	}

	// Outstanding refresh tokens stay valid up to the refresh expiry,
	// so the invalidation window covers that whole period
	ttl := s.jwtService.GetRefreshTokenExpiration()
	if err := s.blacklist.AddUserTokensToBlacklist(ctx, userID.String(), ttl); err != nil {
		s.logger.Error("Failed to invalidate user tokens after password change",
			zap.String("user_id", userID.String()),
			zap.Error(err),
		)
	}

	s.publishEvents(ctx, user)

	s.logger.Info("Password changed", zap.String("user_id", userID.String()))
	return nil
}

// publishEvents publishes and clears the aggregate's pending domain events
func (s *AuthService) publishEvents(ctx context.Context, user *identity.User) {
	events := user.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	if err := s.publisher.Publish(ctx, events...); err != nil {
		s.logger.Error("Failed to publish domain events", zap.Error(err))
	}
	user.ClearDomainEvents()
}
