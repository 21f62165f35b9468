package shopping

import (
	"context"
	"errors"

	catalogapp "github.com/gadgetstore/backend/internal/application/catalog"
	"github.com/gadgetstore/backend/internal/domain/catalog"
	"github.com/gadgetstore/backend/internal/domain/shared"
	"github.com/gadgetstore/backend/internal/domain/shopping"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CartService handles cart operations. A user has at most one cart and it
// holds distinct products only.
type CartService struct {
	cartRepo    shopping.CartRepository
	productRepo catalog.ProductRepository
	media       *catalogapp.MediaService
	logger      *zap.Logger
}

// NewCartService creates a new CartService
func NewCartService(
	cartRepo shopping.CartRepository,
	productRepo catalog.ProductRepository,
	media *catalogapp.MediaService,
	logger *zap.Logger,
) *CartService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
		media:       media,
		logger:      logger,
	}
}

// AddItem puts an approved listing into the user's cart, snapshotting its
// name and price. Adding a product that is already in the cart is a no-op.
func (s *CartService) AddItem(ctx context.Context, userID uuid.UUID, req AddItemRequest) (*CartResponse, error) {
	product, err := s.productRepo.FindByID(ctx, req.ProductID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("PRODUCT_NOT_FOUND", "Product not found")
		}
		return nil, err
	}

	if !product.IsPurchasable() {
		if product.Status == catalog.ProductStatusSold {
			return nil, shared.NewDomainError("CONFLICT", "Product has already been sold")
		}
		// Pending and rejected listings are not visible in the storefront
		return nil, shared.NewDomainError("PRODUCT_NOT_FOUND", "Product not found")
	}

	cart, err := s.loadOrCreateCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	if cart.AddItem(product.ID, product.Name, product.PriceCents, product.ImageKey) {
		if err := s.cartRepo.Save(ctx, cart); err != nil {
			return nil, err
		}
		s.logger.Debug("Item added to cart",
			zap.String("user_id", userID.String()),
			zap.String("product_id", product.ID.String()),
		)
	}

	return s.toResponse(ctx, cart), nil
}

// RemoveItem takes a product out of the cart. Removing a product that is
// not in the cart is a no-op.
func (s *CartService) RemoveItem(ctx context.Context, userID, productID uuid.UUID) (*CartResponse, error) {
	cart, err := s.cartRepo.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return s.emptyResponse(userID), nil
		}
		return nil, err
	}

	if cart.RemoveItem(productID) {
		if err := s.cartRepo.Save(ctx, cart); err != nil {
			return nil, err
		}
	}

	return s.toResponse(ctx, cart), nil
}

// GetCart returns the user's cart. A user who never added anything gets an
// empty cart without one being persisted.
func (s *CartService) GetCart(ctx context.Context, userID uuid.UUID) (*CartResponse, error) {
	cart, err := s.cartRepo.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return s.emptyResponse(userID), nil
		}
		return nil, err
	}
	return s.toResponse(ctx, cart), nil
}

// ItemCount returns the badge count, the number of distinct items
func (s *CartService) ItemCount(ctx context.Context, userID uuid.UUID) (*ItemCountResponse, error) {
	cart, err := s.cartRepo.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return &ItemCountResponse{Count: 0}, nil
		}
		return nil, err
	}
	return &ItemCountResponse{Count: cart.ItemCount()}, nil
}

// ClearCart removes the cart and all its items
func (s *CartService) ClearCart(ctx context.Context, userID uuid.UUID) error {
	return s.cartRepo.DeleteByUserID(ctx, userID)
}

func (s *CartService) loadOrCreateCart(ctx context.Context, userID uuid.UUID) (*shopping.Cart, error) {
	cart, err := s.cartRepo.FindByUserID(ctx, userID)
	if err == nil {
		return cart, nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	return shopping.NewCart(userID)
}

func (s *CartService) emptyResponse(userID uuid.UUID) *CartResponse {
	return &CartResponse{
		UserID:    userID,
		Items:     []CartItemResponse{},
		ItemCount: 0,
	}
}

func (s *CartService) toResponse(ctx context.Context, cart *shopping.Cart) *CartResponse {
	resp := ToCartResponse(cart)
	if s.media == nil {
		return resp
	}
	for i := range resp.Items {
		if resp.Items[i].ImageKey == "" {
			continue
		}
		url, err := s.media.ResolveURL(ctx, resp.Items[i].ImageKey)
		if err != nil {
			s.logger.Warn("Failed to resolve cart item image URL",
				zap.String("image_key", resp.Items[i].ImageKey),
				zap.Error(err),
			)
			continue
		}
		resp.Items[i].ImageURL = url
	}
	return resp
}
