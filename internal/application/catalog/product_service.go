package catalog

import (
	"context"
	"errors"

	"github.com/gadgetstore/backend/internal/domain/catalog"
	"github.com/gadgetstore/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ProductService handles listing and moderation operations
type ProductService struct {
	productRepo catalog.ProductRepository
	media       *MediaService
	publisher   shared.EventPublisher
	logger      *zap.Logger
}

// NewProductService creates a new ProductService
func NewProductService(
	productRepo catalog.ProductRepository,
	media *MediaService,
	publisher shared.EventPublisher,
	logger *zap.Logger,
) *ProductService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProductService{
		productRepo: productRepo,
		media:       media,
		publisher:   publisher,
		logger:      logger,
	}
}

// Submit lists a device for sale. The listing goes into the moderation
// queue and is not visible in the storefront until approved.
func (s *ProductService) Submit(ctx context.Context, sellerID uuid.UUID, req SubmitProductRequest) (*ProductResponse, error) {
	product, err := catalog.NewProduct(
		sellerID,
		req.Name,
		req.Description,
		catalog.ProductCategory(req.Category),
		req.PriceCents,
		req.ImageKey,
	)
	if err != nil {
		return nil, err
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, product)

	s.logger.Info("Product submitted",
		zap.String("product_id", product.ID.String()),
		zap.String("seller_id", sellerID.String()),
	)

	return s.toResponse(ctx, product), nil
}

// CreateApproved lists a device that skips the moderation queue.
// Used for admin-created listings.
func (s *ProductService) CreateApproved(ctx context.Context, adminID uuid.UUID, req SubmitProductRequest) (*ProductResponse, error) {
	product, err := catalog.NewApprovedProduct(
		adminID,
		req.Name,
		req.Description,
		catalog.ProductCategory(req.Category),
		req.PriceCents,
		req.ImageKey,
	)
	if err != nil {
		return nil, err
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, product)

	return s.toResponse(ctx, product), nil
}

// ListApproved returns the public storefront feed, newest first
func (s *ProductService) ListApproved(ctx context.Context, filter ProductListFilter) (*ProductListResponse, error) {
	domainFilter := filter.toDomainFilter().WithStatus(catalog.ProductStatusApproved)
	return s.list(ctx, domainFilter)
}

// ListMine returns the seller's own listings in any status
func (s *ProductService) ListMine(ctx context.Context, sellerID uuid.UUID, filter ProductListFilter) (*ProductListResponse, error) {
	domainFilter := filter.toDomainFilter().WithSeller(sellerID)
	return s.list(ctx, domainFilter)
}

// ListPending returns the moderation queue
func (s *ProductService) ListPending(ctx context.Context, filter ProductListFilter) (*ProductListResponse, error) {
	domainFilter := filter.toDomainFilter().WithStatus(catalog.ProductStatusPending)
	return s.list(ctx, domainFilter)
}

// Get returns a single listing
func (s *ProductService) Get(ctx context.Context, id uuid.UUID) (*ProductResponse, error) {
	product, err := s.findProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.toResponse(ctx, product), nil
}

// Approve moves a pending listing into the storefront
func (s *ProductService) Approve(ctx context.Context, id uuid.UUID) (*ProductResponse, error) {
	product, err := s.findProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := product.Approve(); err != nil {
		return nil, err
	}

	// Save enforces the version check, so two admins moderating the same
	// listing cannot both win
	if err := s.productRepo.Save(ctx, product); err != nil {
		if errors.Is(err, shared.ErrConcurrencyConflict) {
			return nil, shared.ErrAlreadyProcessed
		}
		return nil, err
	}

	s.publishEvents(ctx, product)

	s.logger.Info("Product approved", zap.String("product_id", id.String()))

	return s.toResponse(ctx, product), nil
}

// Reject declines a pending listing with a reason
func (s *ProductService) Reject(ctx context.Context, id uuid.UUID, reason string) (*ProductResponse, error) {
	product, err := s.findProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := product.Reject(reason); err != nil {
		return nil, err
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		if errors.Is(err, shared.ErrConcurrencyConflict) {
			return nil, shared.ErrAlreadyProcessed
		}
		return nil, err
	}

	s.publishEvents(ctx, product)

	s.logger.Info("Product rejected",
		zap.String("product_id", id.String()),
		zap.String("reason", reason),
	)

	return s.toResponse(ctx, product), nil
}

// Update edits a listing in place. Fields absent from the request keep
// their current values.
func (s *ProductService) Update(ctx context.Context, id uuid.UUID, req UpdateProductRequest) (*ProductResponse, error) {
	product, err := s.findProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	name := product.Name
	if req.Name != nil {
		name = *req.Name
	}
	description := product.Description
	if req.Description != nil {
		description = *req.Description
	}
	category := product.Category
	if req.Category != nil {
		category = catalog.ProductCategory(*req.Category)
	}
	priceCents := product.PriceCents
	if req.PriceCents != nil {
		priceCents = *req.PriceCents
	}
	imageKey := product.ImageKey
	if req.ImageKey != nil {
		imageKey = *req.ImageKey
	}

	if err := product.UpdateDetails(name, description, category, priceCents, imageKey); err != nil {
		return nil, err
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, product)

	s.logger.Info("Product updated", zap.String("product_id", id.String()))

	return s.toResponse(ctx, product), nil
}

// Delete removes a listing from the catalog entirely
func (s *ProductService) Delete(ctx context.Context, id uuid.UUID) error {
	product, err := s.findProduct(ctx, id)
	if err != nil {
		return err
	}

	if err := s.productRepo.Delete(ctx, id); err != nil {
		return err
	}

	product.AddDomainEvent(catalog.NewProductDeletedEvent(product))
	s.publishEvents(ctx, product)

	s.logger.Info("Product deleted",
		zap.String("product_id", id.String()),
		zap.String("seller_id", product.SellerID.String()),
	)

	return nil
}

func (s *ProductService) list(ctx context.Context, filter catalog.ProductFilter) (*ProductListResponse, error) {
	products, total, err := s.productRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]ProductResponse, len(products))
	for i, p := range products {
		responses[i] = *s.toResponse(ctx, p)
	}

	return &ProductListResponse{
		Products:   responses,
		TotalCount: total,
		Page:       filter.Page,
		PageSize:   filter.Limit(),
	}, nil
}

func (s *ProductService) findProduct(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("PRODUCT_NOT_FOUND", "Product not found")
		}
		return nil, err
	}
	return product, nil
}

// toResponse converts a product and resolves its image key to a URL.
// URL resolution failures degrade to a response without an image URL.
func (s *ProductService) toResponse(ctx context.Context, product *catalog.Product) *ProductResponse {
	resp := ToProductResponse(product)
	if s.media != nil && product.ImageKey != "" {
		url, err := s.media.ResolveURL(ctx, product.ImageKey)
		if err != nil {
			s.logger.Warn("Failed to resolve image URL",
				zap.String("product_id", product.ID.String()),
				zap.String("image_key", product.ImageKey),
				zap.Error(err),
			)
		} else {
			resp.ImageURL = url
		}
	}
	return &resp
}

func (s *ProductService) publishEvents(ctx context.Context, product *catalog.Product) {
	events := product.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	if s.publisher != nil {
		if err := s.publisher.Publish(ctx, events...); err != nil {
			s.logger.Error("Failed to publish product events",
				zap.String("product_id", product.ID.String()),
				zap.Error(err),
			)
		}
	}
	product.ClearDomainEvents()
}
