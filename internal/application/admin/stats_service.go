package admin

import (
	"context"

	"github.com/gadgetstore/backend/internal/domain/catalog"
	"github.com/gadgetstore/backend/internal/domain/identity"
	"github.com/gadgetstore/backend/internal/domain/trade"
	"go.uber.org/zap"
)

// StatsResponse carries the dashboard counters
type StatsResponse struct {
	PendingProducts  int64 `json:"pending_products"`
	ApprovedProducts int64 `json:"approved_products"`
	PendingOrders    int64 `json:"pending_orders"`
	PendingTradeIns  int64 `json:"pending_trade_ins"`
	TotalUsers       int64 `json:"total_users"`
}

// StatsService aggregates the counts shown on the admin dashboard
type StatsService struct {
	productRepo catalog.ProductRepository
	orderRepo   trade.OrderRepository
	tradeInRepo trade.TradeInRepository
	userRepo    identity.UserRepository
	logger      *zap.Logger
}

// NewStatsService creates a new StatsService
func NewStatsService(
	productRepo catalog.ProductRepository,
	orderRepo trade.OrderRepository,
	tradeInRepo trade.TradeInRepository,
	userRepo identity.UserRepository,
	logger *zap.Logger,
) *StatsService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StatsService{
		productRepo: productRepo,
		orderRepo:   orderRepo,
		tradeInRepo: tradeInRepo,
		userRepo:    userRepo,
		logger:      logger,
	}
}

// GetStats runs one aggregation query per counter
func (s *StatsService) GetStats(ctx context.Context) (*StatsResponse, error) {
	pendingProducts, err := s.productRepo.CountByStatus(ctx, catalog.ProductStatusPending)
	if err != nil {
		return nil, err
	}

	approvedProducts, err := s.productRepo.CountByStatus(ctx, catalog.ProductStatusApproved)
	if err != nil {
		return nil, err
	}

	pendingOrders, err := s.orderRepo.CountByStatus(ctx, trade.PaymentStatusPending)
	if err != nil {
		return nil, err
	}

	pendingTradeIns, err := s.tradeInRepo.CountByStatus(ctx, trade.TradeInStatusPending)
	if err != nil {
		return nil, err
	}

	totalUsers, err := s.userRepo.Count(ctx)
	if err != nil {
		return nil, err
	}

	return &StatsResponse{
		PendingProducts:  pendingProducts,
		ApprovedProducts: approvedProducts,
		PendingOrders:    pendingOrders,
		PendingTradeIns:  pendingTradeIns,
		TotalUsers:       totalUsers,
	}, nil
}
