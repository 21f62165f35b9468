package handler

import (
	tradeapp "github.com/gadgetstore/backend/internal/application/trade"
	"github.com/gadgetstore/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// TradeInHandler handles device trade-in endpoints
type TradeInHandler struct {
	BaseHandler
	service *tradeapp.TradeInService
	auth    gin.HandlerFunc
	admin   gin.HandlerFunc
}

// NewTradeInHandler creates a new trade-in handler
func NewTradeInHandler(service *tradeapp.TradeInService, auth, admin gin.HandlerFunc, logger *zap.Logger) *TradeInHandler {
	return &TradeInHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
		auth:        auth,
		admin:       admin,
	}
}

// RegisterRoutes registers trade-in routes
func (h *TradeInHandler) RegisterRoutes(rg *gin.RouterGroup) {
	tradeIns := rg.Group("/trade-ins", h.auth)
	{
		tradeIns.POST("", h.Submit)
		tradeIns.GET("", h.ListMine)
		tradeIns.GET("/:id", h.Get)
		tradeIns.POST("/:id/accept", h.Accept)
		tradeIns.POST("/:id/decline", h.Decline)
	}

	admin := rg.Group("/admin/trade-ins", h.auth, h.admin)
	{
		admin.GET("", h.ListAll)
		admin.GET("/pending", h.ListPending)
		admin.POST("/:id/quote", h.Quote)
	}
}

// Submit creates a trade-in request for appraisal
func (h *TradeInHandler) Submit(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	var req tradeapp.SubmitTradeInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	result, err := h.service.Submit(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, result)
}

// ListMine returns the authenticated user's trade-in requests
func (h *TradeInHandler) ListMine(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	var filter tradeapp.TradeInListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.ValidationError(c, err)
		return
	}

	result, err := h.service.ListMine(c.Request.Context(), userID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Requests, result.TotalCount, result.Page, result.PageSize)
}

// Get returns a trade-in request visible to its owner or an admin
func (h *TradeInHandler) Get(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	result, err := h.service.Get(c.Request.Context(), userID, middleware.IsAdmin(c), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Accept takes the offered quote
func (h *TradeInHandler) Accept(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	result, err := h.service.Accept(c.Request.Context(), userID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Decline turns down the offered quote
func (h *TradeInHandler) Decline(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	result, err := h.service.Decline(c.Request.Context(), userID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// ListAll returns all trade-in requests
func (h *TradeInHandler) ListAll(c *gin.Context) {
	var filter tradeapp.TradeInListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.ValidationError(c, err)
		return
	}

	result, err := h.service.ListAll(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Requests, result.TotalCount, result.Page, result.PageSize)
}

// ListPending returns trade-in requests awaiting a quote
func (h *TradeInHandler) ListPending(c *gin.Context) {
	var filter tradeapp.TradeInListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.ValidationError(c, err)
		return
	}

	result, err := h.service.ListPending(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Requests, result.TotalCount, result.Page, result.PageSize)
}

// Quote offers an amount for a pending trade-in
func (h *TradeInHandler) Quote(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	var req tradeapp.QuoteTradeInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	result, err := h.service.Quote(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}
