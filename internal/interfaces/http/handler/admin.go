package handler

import (
	adminapp "github.com/gadgetstore/backend/internal/application/admin"
	"github.com/gadgetstore/backend/internal/application/identity"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AdminHandler handles the admin dashboard endpoints
type AdminHandler struct {
	BaseHandler
	stats *adminapp.StatsService
	users *identity.AuthService
	auth  gin.HandlerFunc
	admin gin.HandlerFunc
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(stats *adminapp.StatsService, users *identity.AuthService, auth, admin gin.HandlerFunc, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{
		BaseHandler: NewBaseHandler(logger),
		stats:       stats,
		users:       users,
		auth:        auth,
		admin:       admin,
	}
}

// RegisterRoutes registers admin dashboard routes
func (h *AdminHandler) RegisterRoutes(rg *gin.RouterGroup) {
	admin := rg.Group("/admin", h.auth, h.admin)
	{
		admin.GET("/stats", h.Stats)
		admin.GET("/users", h.ListUsers)
		admin.GET("/users/:id", h.GetUser)
	}
}

// Stats returns dashboard counters
func (h *AdminHandler) Stats(c *gin.Context) {
	result, err := h.stats.GetStats(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// ListUsers returns registered accounts for the dashboard
func (h *AdminHandler) ListUsers(c *gin.Context) {
	var filter identity.UserListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.ValidationError(c, err)
		return
	}

	result, err := h.users.ListUsers(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Users, result.TotalCount, result.Page, result.PageSize)
}

// GetUser returns a single account's detail
func (h *AdminHandler) GetUser(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	user, err := h.users.GetUser(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, user)
}
