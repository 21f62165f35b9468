package handler

import (
	catalogapp "github.com/gadgetstore/backend/internal/application/catalog"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// MediaHandler handles upload URL issuance for images and payment proofs
type MediaHandler struct {
	BaseHandler
	service *catalogapp.MediaService
	auth    gin.HandlerFunc
}

// NewMediaHandler creates a new media handler
func NewMediaHandler(service *catalogapp.MediaService, auth gin.HandlerFunc, logger *zap.Logger) *MediaHandler {
	return &MediaHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
		auth:        auth,
	}
}

// RegisterRoutes registers media routes
func (h *MediaHandler) RegisterRoutes(rg *gin.RouterGroup) {
	uploads := rg.Group("/uploads", h.auth)
	{
		uploads.POST("", h.InitiateUpload)
	}
}

// InitiateUpload issues a pre-signed upload URL for a new object
func (h *MediaHandler) InitiateUpload(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	var req catalogapp.InitiateUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	result, err := h.service.InitiateUpload(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, result)
}
