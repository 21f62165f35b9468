package handler

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	tradeapp "github.com/gadgetstore/backend/internal/application/trade"
	"github.com/gadgetstore/backend/internal/domain/catalog"
	"github.com/gadgetstore/backend/internal/domain/shopping"
	"github.com/gadgetstore/backend/internal/domain/trade"
	"github.com/gadgetstore/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockOrderRepository implements trade.OrderRepository for testing
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) Create(ctx context.Context, order *trade.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trade.Order), args.Error(1)
}

func (m *MockOrderRepository) FindAll(ctx context.Context, filter trade.OrderFilter) ([]*trade.Order, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*trade.Order), args.Get(1).(int64), args.Error(2)
}

func (m *MockOrderRepository) UpdatePaymentStatus(ctx context.Context, id uuid.UUID, fromStatus, toStatus trade.PaymentStatus, reason string) (int64, error) {
	args := m.Called(ctx, id, fromStatus, toStatus, reason)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOrderRepository) CountByStatus(ctx context.Context, status trade.PaymentStatus) (int64, error) {
	args := m.Called(ctx, status)
	return args.Get(0).(int64), args.Error(1)
}

// MockCartRepository implements shopping.CartRepository for testing
type MockCartRepository struct {
	mock.Mock
}

func (m *MockCartRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*shopping.Cart, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shopping.Cart), args.Error(1)
}

func (m *MockCartRepository) Save(ctx context.Context, cart *shopping.Cart) error {
	args := m.Called(ctx, cart)
	return args.Error(0)
}

func (m *MockCartRepository) DeleteByUserID(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

type orderTestDeps struct {
	orders   *MockOrderRepository
	products *MockProductRepository
	carts    *MockCartRepository
}

func setupOrderRouter(t *testing.T, userID uuid.UUID, role string) (*gin.Engine, orderTestDeps) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	deps := orderTestDeps{
		orders:   new(MockOrderRepository),
		products: new(MockProductRepository),
		carts:    new(MockCartRepository),
	}
	scope := tradeapp.NewNoOpTransactionScope(deps.orders, deps.products, deps.carts)
	service := tradeapp.NewOrderService(scope, deps.orders, nil, zap.NewNop())
	h := NewOrderHandler(service, stubAuth(userID, role), middleware.RequireRole("admin"), zap.NewNop())

	engine := gin.New()
	api := engine.Group("/api/v1")
	h.RegisterRoutes(api)
	return engine, deps
}

func approvedProductForOrder(t *testing.T, priceCents int64) *catalog.Product {
	t.Helper()
	p, err := catalog.NewApprovedProduct(uuid.New(), "Pixel 8", "", catalog.CategoryPhone, priceCents, "")
	require.NoError(t, err)
	p.ClearDomainEvents()
	return p
}

func TestOrderHandlerCheckout(t *testing.T) {
	buyerID := uuid.New()

	t.Run("checkout converts cart into pending order", func(t *testing.T) {
		engine, deps := setupOrderRouter(t, buyerID, "user")

		product := approvedProductForOrder(t, 520000)
		cart, err := shopping.NewCart(buyerID)
		require.NoError(t, err)
		require.True(t, cart.AddItem(product.ID, product.Name, product.PriceCents, product.ImageKey))

		deps.carts.On("FindByUserID", mock.Anything, buyerID).Return(cart, nil)
		deps.products.On("FindByIDs", mock.Anything, mock.Anything).Return([]*catalog.Product{product}, nil)
		deps.orders.On("Create", mock.Anything, mock.AnythingOfType("*trade.Order")).Return(nil)
		deps.carts.On("DeleteByUserID", mock.Anything, buyerID).Return(nil)

		body := []byte(`{
			"shipping_name": "Dana",
			"shipping_phone": "+15550100",
			"shipping_address": "12 Elm St",
			"payment_proof_key": "payment-proofs/` + buyerID.String() + `/proof.png"
		}`)
		req := httptest.NewRequest(http.MethodPost, "/api/v1/orders", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), `"payment_status":"pending"`)
		assert.Contains(t, w.Body.String(), `"total_cents":520000`)
		deps.carts.AssertCalled(t, "DeleteByUserID", mock.Anything, buyerID)
	})

	t.Run("missing shipping fields rejected", func(t *testing.T) {
		engine, deps := setupOrderRouter(t, buyerID, "user")

		body := []byte(`{"shipping_name":"Dana"}`)
		req := httptest.NewRequest(http.MethodPost, "/api/v1/orders", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		deps.orders.AssertNotCalled(t, "Create")
	})

	t.Run("empty cart returns 422", func(t *testing.T) {
		engine, deps := setupOrderRouter(t, buyerID, "user")

		emptyCart, err := shopping.NewCart(buyerID)
		require.NoError(t, err)
		deps.carts.On("FindByUserID", mock.Anything, buyerID).Return(emptyCart, nil)

		body := []byte(`{
			"shipping_name": "Dana",
			"shipping_phone": "+15550100",
			"shipping_address": "12 Elm St",
			"payment_proof_key": "payment-proofs/x/proof.png"
		}`)
		req := httptest.NewRequest(http.MethodPost, "/api/v1/orders", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Contains(t, w.Body.String(), "EMPTY_CART")
	})
}

func TestOrderHandlerPaymentReview(t *testing.T) {
	adminID := uuid.New()
	buyerID := uuid.New()

	newPendingOrder := func(t *testing.T) *trade.Order {
		t.Helper()
		product := approvedProductForOrder(t, 520000)
		cart, err := shopping.NewCart(buyerID)
		require.NoError(t, err)
		require.True(t, cart.AddItem(product.ID, product.Name, product.PriceCents, product.ImageKey))
		order, err := trade.NewOrderFromCart(buyerID, cart.Items, trade.ShippingInfo{
			Name:    "Dana",
			Phone:   "+15550100",
			Address: "12 Elm St",
		}, "payment-proofs/x/proof.png")
		require.NoError(t, err)
		order.ClearDomainEvents()
		return order
	}

	t.Run("approve payment marks products sold", func(t *testing.T) {
		engine, deps := setupOrderRouter(t, adminID, "admin")
		order := newPendingOrder(t)

		deps.orders.On("UpdatePaymentStatus", mock.Anything, order.ID, trade.PaymentStatusPending, trade.PaymentStatusApproved, "").Return(int64(1), nil)
		deps.orders.On("FindByID", mock.Anything, order.ID).Return(order, nil)
		product := approvedProductForOrder(t, 520000)
		deps.products.On("FindByIDs", mock.Anything, mock.Anything).Return([]*catalog.Product{product}, nil)
		deps.products.On("Save", mock.Anything, product).Return(nil)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/orders/"+order.ID.String()+"/approve-payment", nil)
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		deps.products.AssertCalled(t, "Save", mock.Anything, product)
	})

	t.Run("approval requires admin role", func(t *testing.T) {
		engine, deps := setupOrderRouter(t, buyerID, "user")
		order := newPendingOrder(t)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/orders/"+order.ID.String()+"/approve-payment", nil)
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
		deps.orders.AssertNotCalled(t, "UpdatePaymentStatus")
	})

	t.Run("reject payment requires reason", func(t *testing.T) {
		engine, deps := setupOrderRouter(t, adminID, "admin")
		order := newPendingOrder(t)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/orders/"+order.ID.String()+"/reject-payment", bytes.NewReader([]byte(`{}`)))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		deps.orders.AssertNotCalled(t, "UpdatePaymentStatus")
	})

	t.Run("buyer cannot read another buyer's order", func(t *testing.T) {
		engine, deps := setupOrderRouter(t, uuid.New(), "user")
		order := newPendingOrder(t)

		deps.orders.On("FindByID", mock.Anything, order.ID).Return(order, nil)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/orders/"+order.ID.String(), nil)
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}
