package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"cart-service/internal/cart"
	"cart-service/internal/catalog"
	"cart-service/internal/models"
	"cart-service/internal/pricing"
	"cart-service/internal/recommend"
	"cart-service/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cat := catalog.New([]models.Product{
		{ID: "a", Name: "Pillow", Price: 29.50, Category: "Textiles", Popularity: 10},
		{ID: "b", Name: "Vase", Price: 45.99, Category: "Home Decor", Popularity: 8},
		{ID: "c", Name: "Clock", Price: 55.00, Category: "Home Decor", Popularity: 9},
	})
	cartStore := cart.NewStore(context.Background(), cart.NewMemoryPersister())
	cartService := service.NewCartService(cartStore, cat, pricing.NewDefaultCalculator(), nil, "cart:test")
	fetcher := recommend.NewFetcher(recommend.NewService(cat, nil))

	router := gin.New()
	NewHandler(cartService, cat, fetcher).SetupRoutes(router)
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path, body string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()

	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("{}")
	} else {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &decoded))
	return w, decoded
}

func TestAddItemAndGetCart(t *testing.T) {
	router := newTestRouter(t)

	w, resp := doJSON(t, router, http.MethodPost, "/api/v1/cart/items", `{"product_id":"a","quantity":2}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(2), resp["item_count"])

	w, resp = doJSON(t, router, http.MethodGet, "/api/v1/cart", "")
	require.Equal(t, http.StatusOK, w.Code)
	lines := resp["lines"].([]interface{})
	require.Len(t, lines, 1)

	pricingRaw := resp["pricing"].(map[string]interface{})
	assert.InDelta(t, 59.00, pricingRaw["subtotal"].(float64), 1e-9)
}

func TestAddItemLenientQuantity(t *testing.T) {
	router := newTestRouter(t)

	// String quantity is accepted.
	w, resp := doJSON(t, router, http.MethodPost, "/api/v1/cart/items", `{"product_id":"a","quantity":"3"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(3), resp["item_count"])

	// Garbage quantity coerces to 1 instead of failing.
	w, resp = doJSON(t, router, http.MethodPost, "/api/v1/cart/items", `{"product_id":"b","quantity":"lots"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(4), resp["item_count"])

	// Missing quantity defaults to 1.
	w, resp = doJSON(t, router, http.MethodPost, "/api/v1/cart/items", `{"product_id":"c"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(5), resp["item_count"])
}

func TestAddItemUnknownProduct(t *testing.T) {
	router := newTestRouter(t)

	w, _ := doJSON(t, router, http.MethodPost, "/api/v1/cart/items", `{"product_id":"nope"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSetQuantityZeroRemovesLine(t *testing.T) {
	router := newTestRouter(t)

	doJSON(t, router, http.MethodPost, "/api/v1/cart/items", `{"product_id":"a","quantity":2}`)
	w, resp := doJSON(t, router, http.MethodPut, "/api/v1/cart/items/a", `{"quantity":0}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, resp["lines"])
}

func TestRemoveAbsentIsNotAnError(t *testing.T) {
	router := newTestRouter(t)

	w, _ := doJSON(t, router, http.MethodDelete, "/api/v1/cart/items/ghost", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestClearCart(t *testing.T) {
	router := newTestRouter(t)

	doJSON(t, router, http.MethodPost, "/api/v1/cart/items", `{"product_id":"a","quantity":5}`)
	w, resp := doJSON(t, router, http.MethodDelete, "/api/v1/cart", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(0), resp["item_count"])
}

func TestDisplayAmountsAreRounded(t *testing.T) {
	router := newTestRouter(t)

	doJSON(t, router, http.MethodPost, "/api/v1/cart/items", `{"product_id":"a","quantity":1}`)
	doJSON(t, router, http.MethodPost, "/api/v1/cart/items", `{"product_id":"b","quantity":2}`)

	_, resp := doJSON(t, router, http.MethodGet, "/api/v1/cart", "")
	display := resp["display"].(map[string]interface{})
	assert.InDelta(t, 121.48, display["subtotal"].(float64), 1e-9)
	assert.InDelta(t, 8.50, display["tax"].(float64), 1e-9)
	assert.InDelta(t, 129.98, display["total"].(float64), 1e-9)
}

func TestListProductsFilterAndSort(t *testing.T) {
	router := newTestRouter(t)

	w, resp := doJSON(t, router, http.MethodGet, "/api/v1/products?category=Home%20Decor&sort=popularity", "")
	require.Equal(t, http.StatusOK, w.Code)
	products := resp["products"].([]interface{})
	require.Len(t, products, 2)
	first := products[0].(map[string]interface{})
	assert.Equal(t, "c", first["id"])
}

func TestListCategories(t *testing.T) {
	router := newTestRouter(t)

	_, resp := doJSON(t, router, http.MethodGet, "/api/v1/categories", "")
	categories := resp["categories"].([]interface{})
	assert.Equal(t, []interface{}{"Textiles", "Home Decor"}, categories)
}

func TestRecommendationsFallback(t *testing.T) {
	router := newTestRouter(t)

	w, resp := doJSON(t, router, http.MethodGet, "/api/v1/products/b/recommendations", "")
	require.Equal(t, http.StatusOK, w.Code)

	recs := resp["recommendations"].([]interface{})
	require.Len(t, recs, 1)
	first := recs[0].(map[string]interface{})
	assert.Equal(t, "c", first["id"])
}
