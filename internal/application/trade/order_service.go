package trade

import (
	"context"
	"errors"
	"strings"

	"github.com/gadgetstore/backend/internal/domain/shared"
	"github.com/gadgetstore/backend/internal/domain/trade"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// OrderService handles checkout and the payment review workflow
type OrderService struct {
	txScope   TransactionScope
	orderRepo trade.OrderRepository
	publisher shared.EventPublisher
	logger    *zap.Logger
}

// NewOrderService creates a new OrderService
func NewOrderService(
	txScope TransactionScope,
	orderRepo trade.OrderRepository,
	publisher shared.EventPublisher,
	logger *zap.Logger,
) *OrderService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OrderService{
		txScope:   txScope,
		orderRepo: orderRepo,
		publisher: publisher,
		logger:    logger,
	}
}

// Checkout turns the buyer's cart into a pending order. The cart items are
// re-validated against live catalog state, the order is written and the
// cart cleared in one transaction.
func (s *OrderService) Checkout(ctx context.Context, buyerID uuid.UUID, req CheckoutRequest) (*OrderResponse, error) {
	var order *trade.Order

	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		cart, err := repos.Carts().FindByUserID(ctx, buyerID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return shared.ErrEmptyCart
			}
			return err
		}
		if cart.IsEmpty() {
			return shared.ErrEmptyCart
		}

		// The cart holds snapshots; the listings may have been sold,
		// pulled or deleted since they were added
		products, err := repos.Products().FindByIDs(ctx, cart.ProductIDs())
		if err != nil {
			return err
		}
		byID := make(map[uuid.UUID]bool, len(products))
		for _, p := range products {
			if !p.IsPurchasable() {
				return shared.NewDomainError("CONFLICT", "Product "+p.Name+" is no longer available")
			}
			byID[p.ID] = true
		}
		for _, item := range cart.Items {
			if !byID[item.ProductID] {
				return shared.NewDomainError("PRODUCT_NOT_FOUND", "Product "+item.Name+" no longer exists")
			}
		}

		order, err = trade.NewOrderFromCart(buyerID, cart.Items, trade.ShippingInfo{
			Name:    req.ShippingName,
			Phone:   req.ShippingPhone,
			Address: req.ShippingAddress,
		}, req.PaymentProofKey)
		if err != nil {
			return err
		}

		if err := repos.Orders().Create(ctx, order); err != nil {
			return err
		}

		return repos.Carts().DeleteByUserID(ctx, buyerID)
	})
	if err != nil {
		return nil, err
	}

	s.publishEvents(ctx, order)

	s.logger.Info("Order placed",
		zap.String("order_id", order.ID.String()),
		zap.String("buyer_id", buyerID.String()),
		zap.Int64("total_cents", order.TotalCents),
	)

	return ToOrderResponse(order), nil
}

// ApprovePayment accepts the payment proof and marks every referenced
// product sold, all in one transaction. The status flip is a compare-and-set
// so concurrent reviews cannot both win; the loser sees AlreadyProcessed.
func (s *OrderService) ApprovePayment(ctx context.Context, orderID uuid.UUID) (*OrderResponse, error) {
	var order *trade.Order

	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		rows, err := repos.Orders().UpdatePaymentStatus(ctx, orderID,
			trade.PaymentStatusPending, trade.PaymentStatusApproved, "")
		if err != nil {
			return err
		}
		if rows == 0 {
			if _, err := repos.Orders().FindByID(ctx, orderID); err != nil {
				if errors.Is(err, shared.ErrNotFound) {
					return shared.NewDomainError("ORDER_NOT_FOUND", "Order not found")
				}
				return err
			}
			return shared.ErrAlreadyProcessed
		}

		order, err = repos.Orders().FindByID(ctx, orderID)
		if err != nil {
			return err
		}

		// Products deleted since checkout are skipped; the order still
		// approves for everything that exists
		products, err := repos.Products().FindByIDs(ctx, order.ProductIDs())
		if err != nil {
			return err
		}
		for _, product := range products {
			if err := product.MarkSold(); err != nil {
				s.logger.Warn("Product not sellable during payment approval",
					zap.String("order_id", orderID.String()),
					zap.String("product_id", product.ID.String()),
					zap.String("status", product.Status.String()),
				)
				continue
			}
			if err := repos.Products().Save(ctx, product); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, trade.NewPaymentApprovedEvent(order))

	s.logger.Info("Payment approved", zap.String("order_id", orderID.String()))

	return ToOrderResponse(order), nil
}

// RejectPayment declines the payment proof with a reason. The status flip
// is the same compare-and-set as approval.
func (s *OrderService) RejectPayment(ctx context.Context, orderID uuid.UUID, req RejectPaymentRequest) (*OrderResponse, error) {
	reason := strings.TrimSpace(req.Reason)
	if reason == "" {
		return nil, shared.NewDomainError("INVALID_REASON", "Rejection reason is required")
	}

	var order *trade.Order

	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		rows, err := repos.Orders().UpdatePaymentStatus(ctx, orderID,
			trade.PaymentStatusPending, trade.PaymentStatusRejected, reason)
		if err != nil {
			return err
		}
		if rows == 0 {
			if _, err := repos.Orders().FindByID(ctx, orderID); err != nil {
				if errors.Is(err, shared.ErrNotFound) {
					return shared.NewDomainError("ORDER_NOT_FOUND", "Order not found")
				}
				return err
			}
			return shared.ErrAlreadyProcessed
		}

		order, err = repos.Orders().FindByID(ctx, orderID)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, trade.NewPaymentRejectedEvent(order))

	s.logger.Info("Payment rejected",
		zap.String("order_id", orderID.String()),
		zap.String("reason", reason),
	)

	return ToOrderResponse(order), nil
}

// ListMine returns the buyer's own orders, newest first
func (s *OrderService) ListMine(ctx context.Context, buyerID uuid.UUID, filter OrderListFilter) (*OrderListResponse, error) {
	return s.list(ctx, filter.toDomainFilter().WithBuyer(buyerID))
}

// ListAll returns all orders, optionally filtered by payment status
func (s *OrderService) ListAll(ctx context.Context, filter OrderListFilter) (*OrderListResponse, error) {
	return s.list(ctx, filter.toDomainFilter())
}

// Get returns a single order without an ownership check. Admin use.
func (s *OrderService) Get(ctx context.Context, id uuid.UUID) (*OrderResponse, error) {
	order, err := s.findOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToOrderResponse(order), nil
}

// GetMine returns a single order, enforcing that it belongs to the buyer
func (s *OrderService) GetMine(ctx context.Context, buyerID, id uuid.UUID) (*OrderResponse, error) {
	order, err := s.findOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	if order.BuyerID != buyerID {
		return nil, shared.ErrForbidden
	}
	return ToOrderResponse(order), nil
}

func (s *OrderService) list(ctx context.Context, filter trade.OrderFilter) (*OrderListResponse, error) {
	orders, total, err := s.orderRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]OrderResponse, len(orders))
	for i, order := range orders {
		responses[i] = *ToOrderResponse(order)
	}

	return &OrderListResponse{
		Orders:     responses,
		TotalCount: total,
		Page:       filter.Page,
		PageSize:   filter.Limit(),
	}, nil
}

func (s *OrderService) findOrder(ctx context.Context, id uuid.UUID) (*trade.Order, error) {
	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("ORDER_NOT_FOUND", "Order not found")
		}
		return nil, err
	}
	return order, nil
}

func (s *OrderService) publishEvents(ctx context.Context, order *trade.Order) {
	events := order.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	if s.publisher != nil {
		if err := s.publisher.Publish(ctx, events...); err != nil {
			s.logger.Error("Failed to publish order events",
				zap.String("order_id", order.ID.String()),
				zap.Error(err),
			)
		}
	}
	order.ClearDomainEvents()
}

func (s *OrderService) publish(ctx context.Context, event shared.DomainEvent) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Error("Failed to publish order event",
			zap.String("event_type", event.EventType()),
			zap.Error(err),
		)
	}
}

func (f OrderListFilter) toDomainFilter() trade.OrderFilter {
	filter := trade.NewOrderFilter()
	if f.Status != "" {
		filter = filter.WithStatus(trade.PaymentStatus(f.Status))
	}
	page, pageSize := f.Page, f.PageSize
	if page == 0 {
		page = filter.Page
	}
	if pageSize == 0 {
		pageSize = filter.PageSize
	}
	return filter.WithPagination(page, pageSize)
}
