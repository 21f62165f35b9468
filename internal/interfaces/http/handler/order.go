package handler

import (
	tradeapp "github.com/gadgetstore/backend/internal/application/trade"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// OrderHandler handles checkout and payment review endpoints
type OrderHandler struct {
	BaseHandler
	service *tradeapp.OrderService
	auth    gin.HandlerFunc
	admin   gin.HandlerFunc
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(service *tradeapp.OrderService, auth, admin gin.HandlerFunc, logger *zap.Logger) *OrderHandler {
	return &OrderHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
		auth:        auth,
		admin:       admin,
	}
}

// RegisterRoutes registers order routes
func (h *OrderHandler) RegisterRoutes(rg *gin.RouterGroup) {
	orders := rg.Group("/orders", h.auth)
	{
		orders.POST("", h.Checkout)
		orders.GET("", h.ListMine)
		orders.GET("/:id", h.GetMine)
	}

	admin := rg.Group("/admin/orders", h.auth, h.admin)
	{
		admin.GET("", h.ListAll)
		admin.GET("/:id", h.Get)
		admin.POST("/:id/approve-payment", h.ApprovePayment)
		admin.POST("/:id/reject-payment", h.RejectPayment)
	}
}

// Checkout converts the cart into an order with payment proof attached
func (h *OrderHandler) Checkout(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	var req tradeapp.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	order, err := h.service.Checkout(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, order)
}

// ListMine returns the authenticated buyer's orders
func (h *OrderHandler) ListMine(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	var filter tradeapp.OrderListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.ValidationError(c, err)
		return
	}

	result, err := h.service.ListMine(c.Request.Context(), userID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Orders, result.TotalCount, result.Page, result.PageSize)
}

// GetMine returns one of the buyer's own orders
func (h *OrderHandler) GetMine(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	order, err := h.service.GetMine(c.Request.Context(), userID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, order)
}

// ListAll returns all orders for payment review
func (h *OrderHandler) ListAll(c *gin.Context) {
	var filter tradeapp.OrderListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.ValidationError(c, err)
		return
	}

	result, err := h.service.ListAll(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Orders, result.TotalCount, result.Page, result.PageSize)
}

// Get returns any order by ID
func (h *OrderHandler) Get(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	order, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, order)
}

// ApprovePayment confirms the payment proof and marks purchased products sold
func (h *OrderHandler) ApprovePayment(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	order, err := h.service.ApprovePayment(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, order)
}

// RejectPayment declines the payment proof with a reason
func (h *OrderHandler) RejectPayment(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	var req tradeapp.RejectPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	order, err := h.service.RejectPayment(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, order)
}
