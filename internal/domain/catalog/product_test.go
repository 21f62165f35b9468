package catalog

import (
	"testing"

	"github.com/gadgetstore/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPendingProduct(t *testing.T) *Product {
	t.Helper()
	product, err := NewProduct(uuid.New(), "ThinkPad X1 Carbon", "Gen 11, 32GB RAM", CategoryLaptop, 129900, "products/x1.jpg")
	require.NoError(t, err)
	product.ClearDomainEvents()
	return product
}

func TestNewProduct(t *testing.T) {
	sellerID := uuid.New()

	t.Run("creates pending listing", func(t *testing.T) {
		product, err := NewProduct(sellerID, "iPhone 15 Pro", "256GB, unlocked", CategoryPhone, 89900, "products/iphone.jpg")

		require.NoError(t, err)
		assert.Equal(t, ProductStatusPending, product.Status)
		assert.Equal(t, sellerID, product.SellerID)
		assert.Equal(t, int64(89900), product.PriceCents)
		assert.Nil(t, product.ApprovedAt)

		events := product.GetDomainEvents()
		require.Len(t, events, 1)
		_, ok := events[0].(*ProductSubmittedEvent)
		assert.True(t, ok)
	})

	t.Run("fails with zero price", func(t *testing.T) {
		_, err := NewProduct(sellerID, "iPhone 15 Pro", "", CategoryPhone, 0, "")

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Price must be positive")
	})

	t.Run("fails with unknown category", func(t *testing.T) {
		_, err := NewProduct(sellerID, "iPhone 15 Pro", "", ProductCategory("toaster"), 89900, "")

		assert.Error(t, err)
	})

	t.Run("fails with empty name", func(t *testing.T) {
		_, err := NewProduct(sellerID, "   ", "", CategoryPhone, 89900, "")

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Product name is required")
	})
}

func TestNewApprovedProduct(t *testing.T) {
	product, err := NewApprovedProduct(uuid.New(), "Pixel 9", "Store stock", CategoryPhone, 69900, "")

	require.NoError(t, err)
	assert.Equal(t, ProductStatusApproved, product.Status)
	assert.NotNil(t, product.ApprovedAt)
}

func TestProductApprove(t *testing.T) {
	t.Run("approves pending listing", func(t *testing.T) {
		product := newPendingProduct(t)

		err := product.Approve()

		require.NoError(t, err)
		assert.Equal(t, ProductStatusApproved, product.Status)
		assert.NotNil(t, product.ApprovedAt)
		assert.Equal(t, 2, product.GetVersion())
	})

	t.Run("second approval reports already processed", func(t *testing.T) {
		product := newPendingProduct(t)
		require.NoError(t, product.Approve())

		err := product.Approve()

		assert.ErrorIs(t, err, shared.ErrAlreadyProcessed)
	})

	t.Run("cannot approve rejected listing", func(t *testing.T) {
		product := newPendingProduct(t)
		require.NoError(t, product.Reject("blurry photos"))

		err := product.Approve()

		assert.ErrorIs(t, err, shared.ErrAlreadyProcessed)
	})
}

func TestProductReject(t *testing.T) {
	t.Run("rejects pending listing with reason", func(t *testing.T) {
		product := newPendingProduct(t)

		err := product.Reject("serial number not visible")

		require.NoError(t, err)
		assert.Equal(t, ProductStatusRejected, product.Status)
		assert.Equal(t, "serial number not visible", product.RejectionReason)
		assert.NotNil(t, product.RejectedAt)
	})

	t.Run("requires non-empty reason", func(t *testing.T) {
		product := newPendingProduct(t)

		err := product.Reject("   ")

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Rejection reason is required")
		assert.Equal(t, ProductStatusPending, product.Status)
	})
}

func TestProductMarkSold(t *testing.T) {
	t.Run("sells approved listing", func(t *testing.T) {
		product := newPendingProduct(t)
		require.NoError(t, product.Approve())

		err := product.MarkSold()

		require.NoError(t, err)
		assert.Equal(t, ProductStatusSold, product.Status)
		assert.NotNil(t, product.SoldAt)
		assert.False(t, product.IsPurchasable())
	})

	t.Run("cannot sell pending listing", func(t *testing.T) {
		product := newPendingProduct(t)

		err := product.MarkSold()

		assert.Error(t, err)
		assert.Equal(t, ProductStatusPending, product.Status)
	})

	t.Run("sold is terminal", func(t *testing.T) {
		assert.False(t, ProductStatusSold.CanTransitionTo(ProductStatusApproved))
		assert.False(t, ProductStatusSold.CanTransitionTo(ProductStatusPending))
	})
}

func TestProductUpdateDetails(t *testing.T) {
	t.Run("edits fields and stamps updated at", func(t *testing.T) {
		product := newPendingProduct(t)
		before := product.UpdatedAt
		version := product.Version

		err := product.UpdateDetails("ThinkPad X1 Nano", "Gen 3", CategoryLaptop, 149900, "products/nano.jpg")

		require.NoError(t, err)
		assert.Equal(t, "ThinkPad X1 Nano", product.Name)
		assert.Equal(t, int64(149900), product.PriceCents)
		assert.Equal(t, "products/nano.jpg", product.ImageKey)
		assert.True(t, product.UpdatedAt.After(before) || product.UpdatedAt.Equal(before))
		assert.Equal(t, version+1, product.Version)
		require.Len(t, product.GetDomainEvents(), 1)
		assert.Equal(t, EventTypeProductUpdated, product.GetDomainEvents()[0].EventType())
	})

	t.Run("keeps validation rules", func(t *testing.T) {
		product := newPendingProduct(t)

		err := product.UpdateDetails("", "desc", CategoryLaptop, 100, "")
		assert.Error(t, err)

		err = product.UpdateDetails("Name", "desc", CategoryLaptop, 0, "")
		assert.Error(t, err)
	})

	t.Run("sold listing is frozen", func(t *testing.T) {
		product := newPendingProduct(t)
		require.NoError(t, product.Approve())
		require.NoError(t, product.MarkSold())
		product.ClearDomainEvents()

		err := product.UpdateDetails("Renamed", "", CategoryLaptop, 200, "")

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_STATE", domainErr.Code)
	})
}
