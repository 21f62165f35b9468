package handler

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	catalogapp "github.com/gadgetstore/backend/internal/application/catalog"
	"github.com/gadgetstore/backend/internal/domain/catalog"
	"github.com/gadgetstore/backend/internal/domain/shared"
	"github.com/gadgetstore/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockProductRepository implements catalog.ProductRepository for testing
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*catalog.Product, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindAll(ctx context.Context, filter catalog.ProductFilter) ([]*catalog.Product, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*catalog.Product), args.Get(1).(int64), args.Error(2)
}

func (m *MockProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProductRepository) CountByStatus(ctx context.Context, status catalog.ProductStatus) (int64, error) {
	args := m.Called(ctx, status)
	return args.Get(0).(int64), args.Error(1)
}

// stubAuth injects identity directly so handler tests skip real token checks
func stubAuth(userID uuid.UUID, role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.JWTUserIDKey, userID.String())
		c.Set(middleware.JWTRoleKey, role)
		c.Next()
	}
}

func setupProductRouter(t *testing.T, repo *MockProductRepository, userID uuid.UUID, role string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	service := catalogapp.NewProductService(repo, nil, nil, zap.NewNop())
	adminGate := middleware.RequireRole("admin")
	h := NewProductHandler(service, stubAuth(userID, role), adminGate, zap.NewNop())

	engine := gin.New()
	api := engine.Group("/api/v1")
	h.RegisterRoutes(api)
	return engine
}

func TestProductHandlerSubmit(t *testing.T) {
	sellerID := uuid.New()

	t.Run("valid submission returns 201 pending", func(t *testing.T) {
		repo := new(MockProductRepository)
		repo.On("Save", mock.Anything, mock.AnythingOfType("*catalog.Product")).Return(nil)
		engine := setupProductRouter(t, repo, sellerID, "user")

		body := []byte(`{"name":"ThinkPad X1","category":"laptop","price_cents":450000}`)
		req := httptest.NewRequest(http.MethodPost, "/api/v1/products", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), `"status":"pending"`)
		repo.AssertExpectations(t)
	})

	t.Run("missing name fails validation", func(t *testing.T) {
		repo := new(MockProductRepository)
		engine := setupProductRouter(t, repo, sellerID, "user")

		body := []byte(`{"category":"laptop","price_cents":450000}`)
		req := httptest.NewRequest(http.MethodPost, "/api/v1/products", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "VALIDATION_ERROR")
		repo.AssertNotCalled(t, "Save")
	})

	t.Run("zero price rejected by domain", func(t *testing.T) {
		repo := new(MockProductRepository)
		engine := setupProductRouter(t, repo, sellerID, "user")

		body := []byte(`{"name":"Free Phone","category":"phone","price_cents":0}`)
		req := httptest.NewRequest(http.MethodPost, "/api/v1/products", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		repo.AssertNotCalled(t, "Save")
	})
}

func TestProductHandlerModeration(t *testing.T) {
	adminID := uuid.New()
	sellerID := uuid.New()

	newPending := func(t *testing.T) *catalog.Product {
		t.Helper()
		p, err := catalog.NewProduct(sellerID, "iPhone 14", "Lightly used", catalog.CategoryPhone, 520000, "")
		require.NoError(t, err)
		p.ClearDomainEvents()
		return p
	}

	t.Run("approve publishes listing", func(t *testing.T) {
		product := newPending(t)
		repo := new(MockProductRepository)
		repo.On("FindByID", mock.Anything, product.ID).Return(product, nil)
		repo.On("Save", mock.Anything, product).Return(nil)
		engine := setupProductRouter(t, repo, adminID, "admin")

		req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/products/"+product.ID.String()+"/approve", nil)
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"status":"approved"`)
	})

	t.Run("non admin forbidden", func(t *testing.T) {
		product := newPending(t)
		repo := new(MockProductRepository)
		engine := setupProductRouter(t, repo, sellerID, "user")

		req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/products/"+product.ID.String()+"/approve", nil)
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("unknown product returns 404", func(t *testing.T) {
		repo := new(MockProductRepository)
		missing := uuid.New()
		repo.On("FindByID", mock.Anything, missing).Return(nil, shared.ErrNotFound)
		engine := setupProductRouter(t, repo, adminID, "admin")

		req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/products/"+missing.String()+"/approve", nil)
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "PRODUCT_NOT_FOUND")
	})

	t.Run("reject requires reason", func(t *testing.T) {
		product := newPending(t)
		repo := new(MockProductRepository)
		engine := setupProductRouter(t, repo, adminID, "admin")

		req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/products/"+product.ID.String()+"/reject", bytes.NewReader([]byte(`{}`)))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("double approval conflicts", func(t *testing.T) {
		product := newPending(t)
		require.NoError(t, product.Approve())
		product.ClearDomainEvents()

		repo := new(MockProductRepository)
		repo.On("FindByID", mock.Anything, product.ID).Return(product, nil)
		engine := setupProductRouter(t, repo, adminID, "admin")

		req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/products/"+product.ID.String()+"/approve", nil)
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, w.Body.String(), "ALREADY_PROCESSED")
	})
}

func TestProductHandlerAdminEdit(t *testing.T) {
	adminID := uuid.New()
	sellerID := uuid.New()

	newApproved := func(t *testing.T) *catalog.Product {
		t.Helper()
		p, err := catalog.NewApprovedProduct(sellerID, "Pixel 9", "Open box", catalog.CategoryPhone, 420000, "")
		require.NoError(t, err)
		p.ClearDomainEvents()
		return p
	}

	t.Run("update patches fields and bumps version", func(t *testing.T) {
		product := newApproved(t)
		before := product.Version
		repo := new(MockProductRepository)
		repo.On("FindByID", mock.Anything, product.ID).Return(product, nil)
		repo.On("Save", mock.Anything, product).Return(nil)
		engine := setupProductRouter(t, repo, adminID, "admin")

		body := []byte(`{"name":"Pixel 9 Pro","price_cents":480000}`)
		req := httptest.NewRequest(http.MethodPut, "/api/v1/admin/products/"+product.ID.String(), bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"name":"Pixel 9 Pro"`)
		assert.Contains(t, w.Body.String(), `"price_cents":480000`)
		// untouched fields keep their values
		assert.Contains(t, w.Body.String(), `"description":"Open box"`)
		assert.Equal(t, before+1, product.Version)
		repo.AssertExpectations(t)
	})

	t.Run("update rejects non positive price", func(t *testing.T) {
		product := newApproved(t)
		repo := new(MockProductRepository)
		engine := setupProductRouter(t, repo, adminID, "admin")

		body := []byte(`{"price_cents":-100}`)
		req := httptest.NewRequest(http.MethodPut, "/api/v1/admin/products/"+product.ID.String(), bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		repo.AssertNotCalled(t, "Save")
	})

	t.Run("update of sold product rejected", func(t *testing.T) {
		product := newApproved(t)
		require.NoError(t, product.MarkSold())
		product.ClearDomainEvents()

		repo := new(MockProductRepository)
		repo.On("FindByID", mock.Anything, product.ID).Return(product, nil)
		engine := setupProductRouter(t, repo, adminID, "admin")

		body := []byte(`{"name":"Renamed"}`)
		req := httptest.NewRequest(http.MethodPut, "/api/v1/admin/products/"+product.ID.String(), bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Contains(t, w.Body.String(), "INVALID_STATE")
		repo.AssertNotCalled(t, "Save")
	})

	t.Run("update as non admin forbidden", func(t *testing.T) {
		product := newApproved(t)
		repo := new(MockProductRepository)
		engine := setupProductRouter(t, repo, sellerID, "user")

		body := []byte(`{"name":"Hijacked"}`)
		req := httptest.NewRequest(http.MethodPut, "/api/v1/admin/products/"+product.ID.String(), bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
		repo.AssertNotCalled(t, "FindByID")
	})

	t.Run("delete removes listing", func(t *testing.T) {
		product := newApproved(t)
		repo := new(MockProductRepository)
		repo.On("FindByID", mock.Anything, product.ID).Return(product, nil)
		repo.On("Delete", mock.Anything, product.ID).Return(nil)
		engine := setupProductRouter(t, repo, adminID, "admin")

		req := httptest.NewRequest(http.MethodDelete, "/api/v1/admin/products/"+product.ID.String(), nil)
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Empty(t, w.Body.String())
		repo.AssertExpectations(t)
	})

	t.Run("delete unknown product returns 404", func(t *testing.T) {
		repo := new(MockProductRepository)
		missing := uuid.New()
		repo.On("FindByID", mock.Anything, missing).Return(nil, shared.ErrNotFound)
		engine := setupProductRouter(t, repo, adminID, "admin")

		req := httptest.NewRequest(http.MethodDelete, "/api/v1/admin/products/"+missing.String(), nil)
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "PRODUCT_NOT_FOUND")
		repo.AssertNotCalled(t, "Delete")
	})
}

func TestProductHandlerListing(t *testing.T) {
	sellerID := uuid.New()

	t.Run("public list returns approved with meta", func(t *testing.T) {
		p1, err := catalog.NewApprovedProduct(sellerID, "MacBook Air", "", catalog.CategoryLaptop, 980000, "")
		require.NoError(t, err)
		p1.ClearDomainEvents()

		repo := new(MockProductRepository)
		repo.On("FindAll", mock.Anything, mock.MatchedBy(func(f catalog.ProductFilter) bool {
			return f.Status != nil && *f.Status == catalog.ProductStatusApproved
		})).Return([]*catalog.Product{p1}, int64(1), nil)
		engine := setupProductRouter(t, repo, sellerID, "user")

		req := httptest.NewRequest(http.MethodGet, "/api/v1/products?category=laptop", nil)
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "MacBook Air")
		assert.Contains(t, w.Body.String(), `"total":1`)
	})

	t.Run("invalid category query rejected", func(t *testing.T) {
		repo := new(MockProductRepository)
		engine := setupProductRouter(t, repo, sellerID, "user")

		req := httptest.NewRequest(http.MethodGet, "/api/v1/products?category=fridge", nil)
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
