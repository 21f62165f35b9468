package trade

import (
	"context"
	"errors"

	"github.com/gadgetstore/backend/internal/domain/catalog"
	"github.com/gadgetstore/backend/internal/domain/shared"
	"github.com/gadgetstore/backend/internal/domain/trade"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// TradeInService handles the trade-in request workflow: users offer a
// device, an admin quotes it, the owner accepts or declines.
type TradeInService struct {
	tradeInRepo trade.TradeInRepository
	publisher   shared.EventPublisher
	logger      *zap.Logger
}

// NewTradeInService creates a new TradeInService
func NewTradeInService(
	tradeInRepo trade.TradeInRepository,
	publisher shared.EventPublisher,
	logger *zap.Logger,
) *TradeInService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TradeInService{
		tradeInRepo: tradeInRepo,
		publisher:   publisher,
		logger:      logger,
	}
}

// Submit creates a pending trade-in request
func (s *TradeInService) Submit(ctx context.Context, userID uuid.UUID, req SubmitTradeInRequest) (*TradeInResponse, error) {
	request, err := trade.NewTradeInRequest(
		userID,
		req.DeviceName,
		catalog.ProductCategory(req.Category),
		trade.DeviceCondition(req.Condition),
		req.Description,
		req.ImageKey,
	)
	if err != nil {
		return nil, err
	}

	if err := s.tradeInRepo.Create(ctx, request); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, request)

	s.logger.Info("Trade-in submitted",
		zap.String("request_id", request.ID.String()),
		zap.String("user_id", userID.String()),
	)

	return ToTradeInResponse(request), nil
}

// ListMine returns the user's own trade-in requests, newest first
func (s *TradeInService) ListMine(ctx context.Context, userID uuid.UUID, filter TradeInListFilter) (*TradeInListResponse, error) {
	return s.list(ctx, filter.toDomainFilter().WithUser(userID))
}

// ListPending returns the admin review queue
func (s *TradeInService) ListPending(ctx context.Context, filter TradeInListFilter) (*TradeInListResponse, error) {
	return s.list(ctx, filter.toDomainFilter().WithStatus(trade.TradeInStatusPending))
}

// ListAll returns all trade-in requests, optionally filtered by status
func (s *TradeInService) ListAll(ctx context.Context, filter TradeInListFilter) (*TradeInListResponse, error) {
	return s.list(ctx, filter.toDomainFilter())
}

// Get returns a single request, enforcing ownership unless the caller is
// an admin
func (s *TradeInService) Get(ctx context.Context, userID uuid.UUID, isAdmin bool, id uuid.UUID) (*TradeInResponse, error) {
	request, err := s.findRequest(ctx, id)
	if err != nil {
		return nil, err
	}
	if !isAdmin && request.UserID != userID {
		return nil, shared.ErrForbidden
	}
	return ToTradeInResponse(request), nil
}

// Quote attaches an admin's offer to a pending request
func (s *TradeInService) Quote(ctx context.Context, id uuid.UUID, req QuoteTradeInRequest) (*TradeInResponse, error) {
	request, err := s.findRequest(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := request.Quote(req.AmountCents); err != nil {
		return nil, err
	}

	if err := s.saveUpdate(ctx, request); err != nil {
		return nil, err
	}

	s.logger.Info("Trade-in quoted",
		zap.String("request_id", id.String()),
		zap.Int64("amount_cents", req.AmountCents),
	)

	return ToTradeInResponse(request), nil
}

// Accept takes the quoted offer. Only the owner may accept.
func (s *TradeInService) Accept(ctx context.Context, userID, id uuid.UUID) (*TradeInResponse, error) {
	request, err := s.findRequest(ctx, id)
	if err != nil {
		return nil, err
	}
	if request.UserID != userID {
		return nil, shared.ErrForbidden
	}

	if err := request.Accept(); err != nil {
		return nil, err
	}

	if err := s.saveUpdate(ctx, request); err != nil {
		return nil, err
	}

	s.logger.Info("Trade-in accepted", zap.String("request_id", id.String()))

	return ToTradeInResponse(request), nil
}

// Decline turns the request down. Only the owner may decline.
func (s *TradeInService) Decline(ctx context.Context, userID, id uuid.UUID) (*TradeInResponse, error) {
	request, err := s.findRequest(ctx, id)
	if err != nil {
		return nil, err
	}
	if request.UserID != userID {
		return nil, shared.ErrForbidden
	}

	if err := request.Decline(); err != nil {
		return nil, err
	}

	if err := s.saveUpdate(ctx, request); err != nil {
		return nil, err
	}

	s.logger.Info("Trade-in declined", zap.String("request_id", id.String()))

	return ToTradeInResponse(request), nil
}

func (s *TradeInService) list(ctx context.Context, filter trade.TradeInFilter) (*TradeInListResponse, error) {
	requests, total, err := s.tradeInRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]TradeInResponse, len(requests))
	for i, request := range requests {
		responses[i] = *ToTradeInResponse(request)
	}

	return &TradeInListResponse{
		Requests:   responses,
		TotalCount: total,
		Page:       filter.Page,
		PageSize:   filter.Limit(),
	}, nil
}

func (s *TradeInService) findRequest(ctx context.Context, id uuid.UUID) (*trade.TradeInRequest, error) {
	request, err := s.tradeInRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("TRADE_IN_NOT_FOUND", "Trade-in request not found")
		}
		return nil, err
	}
	return request, nil
}

// saveUpdate persists a state change; a version conflict means someone
// else resolved the request first
func (s *TradeInService) saveUpdate(ctx context.Context, request *trade.TradeInRequest) error {
	if err := s.tradeInRepo.Update(ctx, request); err != nil {
		if errors.Is(err, shared.ErrConcurrencyConflict) {
			return shared.ErrAlreadyProcessed
		}
		return err
	}
	s.publishEvents(ctx, request)
	return nil
}

func (f TradeInListFilter) toDomainFilter() trade.TradeInFilter {
	filter := trade.NewTradeInFilter()
	if f.Status != "" {
		filter = filter.WithStatus(trade.TradeInStatus(f.Status))
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

func (s *TradeInService) publishEvents(ctx context.Context, request *trade.TradeInRequest) {
	events := request.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	if s.publisher != nil {
		if err := s.publisher.Publish(ctx, events...); err != nil {
			s.logger.Error("Failed to publish trade-in events",
				zap.String("request_id", request.ID.String()),
				zap.Error(err),
			)
		}
	}
	request.ClearDomainEvents()
}
