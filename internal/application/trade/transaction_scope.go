package trade

import (
	"context"

	"github.com/gadgetstore/backend/internal/domain/catalog"
	"github.com/gadgetstore/backend/internal/domain/shopping"
	"github.com/gadgetstore/backend/internal/domain/trade"
)

// TransactionScope provides transactional access to the repositories the
// order workflow touches. When a function is executed within a transaction
// scope, all repository operations are part of the same database
// transaction and commit or roll back atomically.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	// If the function succeeds, the transaction is committed.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to the repositories sharing one
// transaction. Checkout writes the order and clears the cart together;
// payment approval flips the order status and marks products sold together.
type TransactionalRepositories interface {
	// Orders returns the order repository scoped to the current transaction
	Orders() trade.OrderRepository
	// Products returns the product repository scoped to the current transaction
	Products() catalog.ProductRepository
	// Carts returns the cart repository scoped to the current transaction
	Carts() shopping.CartRepository
}

// NoOpTransactionScope is a transaction scope that doesn't actually use
// transactions. This is useful for testing.
type NoOpTransactionScope struct {
	orderRepo   trade.OrderRepository
	productRepo catalog.ProductRepository
	cartRepo    shopping.CartRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories.
func NewNoOpTransactionScope(
	orderRepo trade.OrderRepository,
	productRepo catalog.ProductRepository,
	cartRepo shopping.CartRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		cartRepo:    cartRepo,
	}
}

// Execute runs the function without a real transaction.
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// Orders returns the order repository.
func (s *NoOpTransactionScope) Orders() trade.OrderRepository {
	return s.orderRepo
}

// Products returns the product repository.
func (s *NoOpTransactionScope) Products() catalog.ProductRepository {
	return s.productRepo
}

// Carts returns the cart repository.
func (s *NoOpTransactionScope) Carts() shopping.CartRepository {
	return s.cartRepo
}

// Ensure NoOpTransactionScope implements both interfaces
var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
