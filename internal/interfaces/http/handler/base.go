package handler

import (
	"errors"
	"net/http"

	"github.com/gadgetstore/backend/internal/domain/shared"
	"github.com/gadgetstore/backend/internal/interfaces/http/dto"
	"github.com/gadgetstore/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// BaseHandler provides common response helpers for all handlers
type BaseHandler struct {
	logger *zap.Logger
}

// NewBaseHandler creates a new base handler
func NewBaseHandler(logger *zap.Logger) BaseHandler {
	return BaseHandler{logger: logger}
}

// Success sends a 200 response with data
func (h *BaseHandler) Success(c *gin.Context, data interface{}) {
	resp := dto.NewSuccessResponse(data)
	resp.RequestID = middleware.GetRequestID(c)
	c.JSON(http.StatusOK, resp)
}

// SuccessWithMeta sends a 200 response with data and pagination meta
func (h *BaseHandler) SuccessWithMeta(c *gin.Context, data interface{}, total int64, page, pageSize int) {
	resp := dto.NewSuccessResponseWithMeta(data, total, page, pageSize)
	resp.RequestID = middleware.GetRequestID(c)
	c.JSON(http.StatusOK, resp)
}

// Created sends a 201 response with data
func (h *BaseHandler) Created(c *gin.Context, data interface{}) {
	resp := dto.NewSuccessResponse(data)
	resp.RequestID = middleware.GetRequestID(c)
	c.JSON(http.StatusCreated, resp)
}

// NoContent sends a 204 response
func (h *BaseHandler) NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Error sends an error response with the given status and code
func (h *BaseHandler) Error(c *gin.Context, status int, code, message string) {
	c.JSON(status, dto.NewErrorResponseWithRequestID(code, message, middleware.GetRequestID(c)))
}

// BadRequest sends a 400 response
func (h *BaseHandler) BadRequest(c *gin.Context, message string) {
	h.Error(c, http.StatusBadRequest, dto.ErrCodeBadRequest, message)
}

// ValidationError sends a 400 response for request binding failures,
// with per-field details when the error came from the validator.
func (h *BaseHandler) ValidationError(c *gin.Context, err error) {
	resp := middleware.FormatValidationErrors(err, middleware.GetRequestID(c))
	if len(resp.Error.Details) == 0 {
		resp.Error.Message = err.Error()
	}
	c.JSON(http.StatusBadRequest, resp)
}

// NotFound sends a 404 response
func (h *BaseHandler) NotFound(c *gin.Context, message string) {
	h.Error(c, http.StatusNotFound, dto.ErrCodeNotFound, message)
}

// InternalError sends a 500 response
func (h *BaseHandler) InternalError(c *gin.Context, message string) {
	h.Error(c, http.StatusInternalServerError, dto.ErrCodeInternal, message)
}

// HandleError maps domain errors to HTTP responses. Unknown errors become
// a generic 500 so internals never leak to clients.
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		status := dto.GetHTTPStatus(domainErr.Code)
		if status >= http.StatusInternalServerError && h.logger != nil {
			h.logger.Error("Unmapped domain error",
				zap.String("code", domainErr.Code),
				zap.String("path", c.Request.URL.Path),
				zap.Error(err))
		}
		h.Error(c, status, domainErr.Code, domainErr.Message)
		return
	}

	if h.logger != nil {
		h.logger.Error("Unhandled error",
			zap.String("path", c.Request.URL.Path),
			zap.Error(err))
	}
	h.InternalError(c, "Internal server error")
}

// currentUserID returns the authenticated user's ID from JWT claims
func (h *BaseHandler) currentUserID(c *gin.Context) (uuid.UUID, bool) {
	raw := middleware.GetJWTUserID(c)
	if raw == "" {
		h.Error(c, http.StatusUnauthorized, dto.ErrCodeUnauthorized, "Authentication required")
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		h.Error(c, http.StatusUnauthorized, dto.ErrCodeTokenInvalid, "Invalid token subject")
		return uuid.Nil, false
	}
	return id, true
}

// pathID parses a UUID path parameter
func (h *BaseHandler) pathID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		h.BadRequest(c, "Invalid "+name+" parameter")
		return uuid.Nil, false
	}
	return id, true
}
