package handler

import (
	"strings"

	"github.com/gadgetstore/backend/internal/application/identity"
	"github.com/gadgetstore/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AuthHandler handles registration, login and session management endpoints
type AuthHandler struct {
	BaseHandler
	service *identity.AuthService
	auth    gin.HandlerFunc
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(service *identity.AuthService, auth gin.HandlerFunc, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
		auth:        auth,
	}
}

// RegisterRoutes registers auth routes
func (h *AuthHandler) RegisterRoutes(rg *gin.RouterGroup) {
	public := rg.Group("/auth")
	{
		public.POST("/register", h.Register)
		public.POST("/login", h.Login)
		public.POST("/refresh", h.Refresh)
	}

	authed := rg.Group("/auth", h.auth)
	{
		authed.POST("/logout", h.Logout)
		authed.GET("/profile", h.Profile)
		authed.PUT("/profile", h.UpdateProfile)
		authed.POST("/password", h.ChangePassword)
	}
}

// Register creates a new user account
func (h *AuthHandler) Register(c *gin.Context) {
	var req identity.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	user, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, user)
}

// Login authenticates a user and returns a token pair
func (h *AuthHandler) Login(c *gin.Context) {
	var req identity.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	result, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Refresh exchanges a refresh token for a new token pair
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req identity.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	result, err := h.service.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Logout revokes the current access token
func (h *AuthHandler) Logout(c *gin.Context) {
	token := strings.TrimPrefix(c.GetHeader(middleware.AuthHeaderKey), middleware.BearerPrefix)
	if err := h.service.Logout(c.Request.Context(), token); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// Profile returns the authenticated user's profile
func (h *AuthHandler) Profile(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	user, err := h.service.GetProfile(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, user)
}

// UpdateProfile updates the authenticated user's profile
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	var req identity.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	user, err := h.service.UpdateProfile(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, user)
}

// ChangePassword changes the authenticated user's password and
// invalidates existing sessions
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	var req identity.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	if err := h.service.ChangePassword(c.Request.Context(), userID, req); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
