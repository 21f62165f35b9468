package handler

import (
	"net/http"
	"runtime"
	"time"

	"github.com/gadgetstore/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SystemHandler handles health and system info endpoints
type SystemHandler struct {
	BaseHandler
	db        *gorm.DB
	version   string
	startTime time.Time
}

// NewSystemHandler creates a new system handler. db may be nil, in which
// case readiness skips the database check.
func NewSystemHandler(db *gorm.DB, version string) *SystemHandler {
	return &SystemHandler{
		db:        db,
		version:   version,
		startTime: time.Now(),
	}
}

// RegisterRoutes registers system routes
func (h *SystemHandler) RegisterRoutes(rg *gin.RouterGroup) {
	system := rg.Group("/system")
	{
		system.GET("/health", h.Health)
		system.GET("/info", h.Info)
	}
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database,omitempty"`
}

// Health reports liveness and database connectivity
func (h *SystemHandler) Health(c *gin.Context) {
	resp := HealthResponse{Status: "ok"}

	if h.db != nil {
		sqlDB, err := h.db.DB()
		if err == nil {
			err = sqlDB.PingContext(c.Request.Context())
		}
		if err != nil {
			resp.Status = "degraded"
			resp.Database = "unreachable"
			c.JSON(http.StatusServiceUnavailable, dto.NewErrorResponse("SERVICE_UNAVAILABLE", "Database unreachable"))
			return
		}
		resp.Database = "ok"
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}

// SystemInfoResponse represents the system information response
type SystemInfoResponse struct {
	Name      string `json:"name"`
	Version   string `json:"version"`
	GoVersion string `json:"go_version"`
	Uptime    string `json:"uptime"`
}

// Info returns basic build and uptime information
func (h *SystemHandler) Info(c *gin.Context) {
	info := SystemInfoResponse{
		Name:      "Gadget Store API",
		Version:   h.version,
		GoVersion: runtime.Version(),
		Uptime:    time.Since(h.startTime).Round(time.Second).String(),
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse(info))
}
