package persistence

import (
	"context"

	apptrade "github.com/gadgetstore/backend/internal/application/trade"
	"github.com/gadgetstore/backend/internal/domain/catalog"
	"github.com/gadgetstore/backend/internal/domain/shopping"
	"github.com/gadgetstore/backend/internal/domain/trade"
	"gorm.io/gorm"
)

// GormTradeTransactionScope implements TransactionScope using GORM transactions.
// It provides atomic execution across the order, product, and cart repositories,
// which is what checkout and payment review need.
type GormTradeTransactionScope struct {
	db *gorm.DB
}

// NewGormTradeTransactionScope creates a new GormTradeTransactionScope
func NewGormTradeTransactionScope(db *gorm.DB) *GormTradeTransactionScope {
	return &GormTradeTransactionScope{db: db}
}

// Execute runs the given function within a database transaction.
// If the function returns an error, the transaction is rolled back.
// If the function succeeds, the transaction is committed.
func (s *GormTradeTransactionScope) Execute(ctx context.Context, fn func(repos apptrade.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repos := &gormTradeTransactionalRepositories{tx: tx}
		return fn(repos)
	})
}

// gormTradeTransactionalRepositories provides access to repositories sharing one transaction
type gormTradeTransactionalRepositories struct {
	tx *gorm.DB
}

// Orders returns the order repository scoped to the current transaction
func (r *gormTradeTransactionalRepositories) Orders() trade.OrderRepository {
	return NewGormOrderRepository(r.tx)
}

// Products returns the product repository scoped to the current transaction
func (r *gormTradeTransactionalRepositories) Products() catalog.ProductRepository {
	return NewGormProductRepository(r.tx)
}

// Carts returns the cart repository scoped to the current transaction
func (r *gormTradeTransactionalRepositories) Carts() shopping.CartRepository {
	return NewGormCartRepository(r.tx)
}

// Ensure GormTradeTransactionScope implements TransactionScope
var _ apptrade.TransactionScope = (*GormTradeTransactionScope)(nil)

// Ensure gormTradeTransactionalRepositories implements TransactionalRepositories
var _ apptrade.TransactionalRepositories = (*gormTradeTransactionalRepositories)(nil)
