package service

import (
	"context"
	"testing"

	"cart-service/internal/cart"
	"cart-service/internal/catalog"
	"cart-service/internal/models"
	"cart-service/internal/pricing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) *CartService {
	t.Helper()

	cat := catalog.New([]models.Product{
		{ID: "a", Name: "Pillow", Price: 29.50, Category: "Textiles"},
		{ID: "b", Name: "Vase", Price: 45.99, Category: "Home Decor"},
	})
	cartStore := cart.NewStore(context.Background(), cart.NewMemoryPersister())

	return NewCartService(cartStore, cat, pricing.NewDefaultCalculator(), nil, "cart:test")
}

func TestAddItemUnknownProduct(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.AddItem(context.Background(), "missing", 1)
	assert.Error(t, err)
	assert.Empty(t, svc.GetCart(context.Background()).Lines)
}

func TestAddItemSnapshotsProduct(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	view, err := svc.AddItem(ctx, "a", 2)
	require.NoError(t, err)

	require.Len(t, view.Lines, 1)
	assert.Equal(t, "Pillow", view.Lines[0].Name)
	assert.Equal(t, 29.50, view.Lines[0].UnitPrice)
	assert.Equal(t, 2, view.ItemCount)
}

func TestViewPricingIsRecomputedPerRead(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "a", 1)
	require.NoError(t, err)

	view := svc.GetCart(ctx)
	assert.InDelta(t, 29.50, view.Pricing.Subtotal, 1e-9)
	assert.InDelta(t, 5.00, view.Pricing.Shipping, 1e-9)

	_, err = svc.AddItem(ctx, "b", 2)
	require.NoError(t, err)

	view = svc.GetCart(ctx)
	assert.InDelta(t, 121.48, view.Pricing.Subtotal, 1e-9)
	assert.InDelta(t, 0, view.Pricing.Shipping, 1e-9)
	assert.InDelta(t, 8.5036, view.Pricing.Tax, 1e-9)
	assert.InDelta(t, 129.9836, view.Pricing.Total, 1e-9)
}

func TestSetItemQuantityZeroRemoves(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "a", 3)
	require.NoError(t, err)

	view := svc.SetItemQuantity(ctx, "a", 0)
	assert.Empty(t, view.Lines)
}

func TestClearCart(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "a", 1)
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, "b", 1)
	require.NoError(t, err)

	view := svc.ClearCart(ctx)
	assert.Empty(t, view.Lines)
	assert.Zero(t, view.ItemCount)
	assert.Zero(t, view.Pricing.Total)
}
