package trade

import (
	"time"

	"github.com/gadgetstore/backend/internal/domain/trade"
	"github.com/google/uuid"
)

// CheckoutRequest represents a request to turn the cart into an order
type CheckoutRequest struct {
	ShippingName    string `json:"shipping_name" binding:"required,max=200"`
	ShippingPhone   string `json:"shipping_phone" binding:"required,max=50"`
	ShippingAddress string `json:"shipping_address" binding:"required,max=1000"`
	PaymentProofKey string `json:"payment_proof_key" binding:"required,max=500"`
}

// RejectPaymentRequest represents a payment rejection with its reason
type RejectPaymentRequest struct {
	Reason string `json:"reason" binding:"required,max=1000"`
}

// OrderItemResponse represents an order line in API responses
type OrderItemResponse struct {
	ProductID  uuid.UUID `json:"product_id"`
	Name       string    `json:"name"`
	PriceCents int64     `json:"price_cents"`
	ImageKey   string    `json:"image_key,omitempty"`
}

// OrderResponse represents order data in API responses
type OrderResponse struct {
	ID              uuid.UUID           `json:"id"`
	BuyerID         uuid.UUID           `json:"buyer_id"`
	Items           []OrderItemResponse `json:"items"`
	TotalCents      int64               `json:"total_cents"`
	ShippingName    string              `json:"shipping_name"`
	ShippingPhone   string              `json:"shipping_phone"`
	ShippingAddress string              `json:"shipping_address"`
	PaymentProofKey string              `json:"payment_proof_key,omitempty"`
	PaymentStatus   string              `json:"payment_status"`
	RejectionReason string              `json:"rejection_reason,omitempty"`
	ApprovedAt      *time.Time          `json:"approved_at,omitempty"`
	RejectedAt      *time.Time          `json:"rejected_at,omitempty"`
	CreatedAt       time.Time           `json:"created_at"`
	Version         int                 `json:"version"`
}

// OrderListFilter represents query options for order listings
type OrderListFilter struct {
	Status   string `form:"status" binding:"omitempty,oneof=pending approved rejected"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// OrderListResponse represents a paginated order list
type OrderListResponse struct {
	Orders     []OrderResponse `json:"orders"`
	TotalCount int64           `json:"total_count"`
	Page       int             `json:"page"`
	PageSize   int             `json:"page_size"`
}

// SubmitTradeInRequest represents a request to trade a device in
type SubmitTradeInRequest struct {
	DeviceName  string `json:"device_name" binding:"required,max=200"`
	Category    string `json:"category" binding:"required,oneof=laptop phone accessory"`
	Condition   string `json:"condition" binding:"required,oneof=like-new good fair broken"`
	Description string `json:"description" binding:"max=5000"`
	ImageKey    string `json:"image_key" binding:"max=500"`
}

// QuoteTradeInRequest represents an admin's offer on a trade-in
type QuoteTradeInRequest struct {
	AmountCents int64 `json:"amount_cents" binding:"required,gt=0"`
}

// TradeInResponse represents trade-in data in API responses
type TradeInResponse struct {
	ID          uuid.UUID  `json:"id"`
	UserID      uuid.UUID  `json:"user_id"`
	DeviceName  string     `json:"device_name"`
	Category    string     `json:"category"`
	Condition   string     `json:"condition"`
	Description string     `json:"description,omitempty"`
	ImageKey    string     `json:"image_key,omitempty"`
	Status      string     `json:"status"`
	QuoteCents  int64      `json:"quote_cents,omitempty"`
	QuotedAt    *time.Time `json:"quoted_at,omitempty"`
	ResolvedAt  *time.Time `json:"resolved_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	Version     int        `json:"version"`
}

// TradeInListFilter represents query options for trade-in listings
type TradeInListFilter struct {
	Status   string `form:"status" binding:"omitempty,oneof=pending quoted accepted declined"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// TradeInListResponse represents a paginated trade-in list
type TradeInListResponse struct {
	Requests   []TradeInResponse `json:"requests"`
	TotalCount int64             `json:"total_count"`
	Page       int               `json:"page"`
	PageSize   int               `json:"page_size"`
}

// ToOrderResponse converts a domain Order to OrderResponse
func ToOrderResponse(o *trade.Order) *OrderResponse {
	items := make([]OrderItemResponse, len(o.Items))
	for i, item := range o.Items {
		items[i] = OrderItemResponse{
			ProductID:  item.ProductID,
			Name:       item.Name,
			PriceCents: item.PriceCents,
			ImageKey:   item.ImageKey,
		}
	}
	return &OrderResponse{
		ID:              o.ID,
		BuyerID:         o.BuyerID,
		Items:           items,
		TotalCents:      o.TotalCents,
		ShippingName:    o.Shipping.Name,
		ShippingPhone:   o.Shipping.Phone,
		ShippingAddress: o.Shipping.Address,
		PaymentProofKey: o.PaymentProofKey,
		PaymentStatus:   string(o.PaymentStatus),
		RejectionReason: o.RejectionReason,
		ApprovedAt:      o.ApprovedAt,
		RejectedAt:      o.RejectedAt,
		CreatedAt:       o.CreatedAt,
		Version:         o.Version,
	}
}

// ToTradeInResponse converts a domain TradeInRequest to TradeInResponse
func ToTradeInResponse(r *trade.TradeInRequest) *TradeInResponse {
	return &TradeInResponse{
		ID:          r.ID,
		UserID:      r.UserID,
		DeviceName:  r.DeviceName,
		Category:    string(r.Category),
		Condition:   string(r.Condition),
		Description: r.Description,
		ImageKey:    r.ImageKey,
		Status:      string(r.Status),
		QuoteCents:  r.QuoteCents,
		QuotedAt:    r.QuotedAt,
		ResolvedAt:  r.ResolvedAt,
		CreatedAt:   r.CreatedAt,
		Version:     r.Version,
	}
}
