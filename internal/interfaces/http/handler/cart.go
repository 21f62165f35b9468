package handler

import (
	shoppingapp "github.com/gadgetstore/backend/internal/application/shopping"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CartHandler handles shopping cart endpoints
type CartHandler struct {
	BaseHandler
	service *shoppingapp.CartService
	auth    gin.HandlerFunc
}

// NewCartHandler creates a new cart handler
func NewCartHandler(service *shoppingapp.CartService, auth gin.HandlerFunc, logger *zap.Logger) *CartHandler {
	return &CartHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
		auth:        auth,
	}
}

// RegisterRoutes registers cart routes
func (h *CartHandler) RegisterRoutes(rg *gin.RouterGroup) {
	cart := rg.Group("/cart", h.auth)
	{
		cart.GET("", h.Get)
		cart.GET("/count", h.Count)
		cart.POST("/items", h.AddItem)
		cart.DELETE("/items/:productId", h.RemoveItem)
		cart.DELETE("", h.Clear)
	}
}

// Get returns the authenticated user's cart
func (h *CartHandler) Get(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	cart, err := h.service.GetCart(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, cart)
}

// Count returns the number of items in the cart
func (h *CartHandler) Count(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	count, err := h.service.ItemCount(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, count)
}

// AddItem adds a product to the cart
func (h *CartHandler) AddItem(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	var req shoppingapp.AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	cart, err := h.service.AddItem(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, cart)
}

// RemoveItem removes a product from the cart
func (h *CartHandler) RemoveItem(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	productID, ok := h.pathID(c, "productId")
	if !ok {
		return
	}

	cart, err := h.service.RemoveItem(c.Request.Context(), userID, productID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, cart)
}

// Clear empties the cart
func (h *CartHandler) Clear(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	if err := h.service.ClearCart(c.Request.Context(), userID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
