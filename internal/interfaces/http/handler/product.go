package handler

import (
	catalogapp "github.com/gadgetstore/backend/internal/application/catalog"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ProductHandler handles the product catalog and its moderation endpoints
type ProductHandler struct {
	BaseHandler
	service *catalogapp.ProductService
	auth    gin.HandlerFunc
	admin   gin.HandlerFunc
}

// NewProductHandler creates a new product handler
func NewProductHandler(service *catalogapp.ProductService, auth, admin gin.HandlerFunc, logger *zap.Logger) *ProductHandler {
	return &ProductHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
		auth:        auth,
		admin:       admin,
	}
}

// RegisterRoutes registers product routes
func (h *ProductHandler) RegisterRoutes(rg *gin.RouterGroup) {
	products := rg.Group("/products")
	{
		products.GET("", h.ListApproved)
		products.GET("/mine", h.auth, h.ListMine)
		products.GET("/:id", h.Get)
		products.POST("", h.auth, h.Submit)
	}

	admin := rg.Group("/admin/products", h.auth, h.admin)
	{
		admin.GET("/pending", h.ListPending)
		admin.POST("", h.CreateApproved)
		admin.POST("/:id/approve", h.Approve)
		admin.POST("/:id/reject", h.Reject)
		admin.PUT("/:id", h.Update)
		admin.DELETE("/:id", h.Delete)
	}
}

// ListApproved returns the public storefront catalog
func (h *ProductHandler) ListApproved(c *gin.Context) {
	var filter catalogapp.ProductListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.ValidationError(c, err)
		return
	}

	result, err := h.service.ListApproved(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Products, result.TotalCount, result.Page, result.PageSize)
}

// ListMine returns the authenticated seller's own listings
func (h *ProductHandler) ListMine(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	var filter catalogapp.ProductListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.ValidationError(c, err)
		return
	}

	result, err := h.service.ListMine(c.Request.Context(), userID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Products, result.TotalCount, result.Page, result.PageSize)
}

// ListPending returns listings awaiting moderation
func (h *ProductHandler) ListPending(c *gin.Context) {
	var filter catalogapp.ProductListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.ValidationError(c, err)
		return
	}

	result, err := h.service.ListPending(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Products, result.TotalCount, result.Page, result.PageSize)
}

// Get returns a single product
func (h *ProductHandler) Get(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	product, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, product)
}

// Submit creates a listing pending moderation
func (h *ProductHandler) Submit(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	var req catalogapp.SubmitProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	product, err := h.service.Submit(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, product)
}

// CreateApproved creates a listing that goes live immediately
func (h *ProductHandler) CreateApproved(c *gin.Context) {
	adminID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	var req catalogapp.SubmitProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	product, err := h.service.CreateApproved(c.Request.Context(), adminID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, product)
}

// Update edits a listing's fields
func (h *ProductHandler) Update(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	var req catalogapp.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	product, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, product)
}

// Delete removes a listing from the catalog
func (h *ProductHandler) Delete(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// Approve publishes a pending listing
func (h *ProductHandler) Approve(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	product, err := h.service.Approve(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, product)
}

// Reject declines a pending listing with a reason
func (h *ProductHandler) Reject(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	var req catalogapp.RejectProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	product, err := h.service.Reject(c.Request.Context(), id, req.Reason)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, product)
}
