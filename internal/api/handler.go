package api

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"cart-service/internal/catalog"
	"cart-service/internal/pricing"
	"cart-service/internal/recommend"
	"cart-service/internal/service"
	"cart-service/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handler contains HTTP handlers
type Handler struct {
	cartService *service.CartService
	catalog     *catalog.Catalog
	recommender *recommend.Fetcher
}

// NewHandler creates a new HTTP handler
func NewHandler(cartService *service.CartService, cat *catalog.Catalog, recommender *recommend.Fetcher) *Handler {
	return &Handler{
		cartService: cartService,
		catalog:     cat,
		recommender: recommender,
	}
}

// SetupRoutes sets up HTTP routes
func (h *Handler) SetupRoutes(router *gin.Engine) {
	router.Use(gin.Recovery())
	router.Use(prometheusMiddleware())
	router.Use(gin.Logger())

	router.GET("/health", h.healthCheck)
	router.GET("/ready", h.readinessCheck)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := router.Group("/api/v1")
	{
		v1.GET("/cart", h.getCart)
		v1.POST("/cart/items", h.addItem)
		v1.PUT("/cart/items/:id", h.setItemQuantity)
		v1.DELETE("/cart/items/:id", h.removeItem)
		v1.DELETE("/cart", h.clearCart)

		v1.GET("/products", h.listProducts)
		v1.GET("/products/:id", h.getProduct)
		v1.GET("/products/:id/recommendations", h.getRecommendations)
		v1.GET("/categories", h.listCategories)
	}
}

// healthCheck handles health check requests
func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
		"time":   time.Now().Unix(),
	})
}

// readinessCheck handles readiness check requests
func (h *Handler) readinessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ready",
		"time":   time.Now().Unix(),
	})
}

// cartQuantity accepts a JSON number or a numeric string, truncating
// fractions. Anything unparseable coerces to 1: bad quantity input is
// recovered, never rejected.
type cartQuantity int

func (q *cartQuantity) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(strings.Trim(string(data), `"`))
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		*q = cartQuantity(int(f))
		return nil
	}
	*q = 1
	return nil
}

type addItemRequest struct {
	ProductID string       `json:"product_id" binding:"required"`
	Quantity  cartQuantity `json:"quantity"`
}

type setQuantityRequest struct {
	Quantity *cartQuantity `json:"quantity"`
}

// cartResponse wraps the cart view with display-rounded amounts. Rounding
// to 2 decimal places happens only here, at the presentation boundary.
type cartResponse struct {
	*service.CartView
	Display pricing.Snapshot `json:"display"`
}

func newCartResponse(view *service.CartView) cartResponse {
	return cartResponse{
		CartView: view,
		Display: pricing.Snapshot{
			Subtotal: pricing.RoundForDisplay(view.Pricing.Subtotal),
			Shipping: pricing.RoundForDisplay(view.Pricing.Shipping),
			Tax:      pricing.RoundForDisplay(view.Pricing.Tax),
			Total:    pricing.RoundForDisplay(view.Pricing.Total),
		},
	}
}

// getCart returns the current cart with fresh pricing
func (h *Handler) getCart(c *gin.Context) {
	view := h.cartService.GetCart(c.Request.Context())
	c.JSON(http.StatusOK, newCartResponse(view))
}

// addItem adds a product to the cart
func (h *Handler) addItem(c *gin.Context) {
	var req addItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	view, err := h.cartService.AddItem(c.Request.Context(), req.ProductID, int(req.Quantity))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "Product not found",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, newCartResponse(view))
}

// setItemQuantity replaces a line quantity; zero or less removes the line
func (h *Handler) setItemQuantity(c *gin.Context) {
	var req setQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	quantity := 1
	if req.Quantity != nil {
		quantity = int(*req.Quantity)
	}

	view := h.cartService.SetItemQuantity(c.Request.Context(), c.Param("id"), quantity)
	c.JSON(http.StatusOK, newCartResponse(view))
}

// removeItem deletes a cart line; absent ids are a no-op
func (h *Handler) removeItem(c *gin.Context) {
	view := h.cartService.RemoveItem(c.Request.Context(), c.Param("id"))
	c.JSON(http.StatusOK, newCartResponse(view))
}

// clearCart empties the cart
func (h *Handler) clearCart(c *gin.Context) {
	view := h.cartService.ClearCart(c.Request.Context())
	c.JSON(http.StatusOK, newCartResponse(view))
}

// listProducts returns the catalog, optionally filtered and sorted
func (h *Handler) listProducts(c *gin.Context) {
	query := catalog.Query{
		Category: c.Query("category"),
		Sort:     c.Query("sort"),
	}
	if v := c.Query("min_price"); v != "" {
		query.MinPrice, _ = strconv.ParseFloat(v, 64)
	}
	if v := c.Query("max_price"); v != "" {
		query.MaxPrice, _ = strconv.ParseFloat(v, 64)
	}

	products := h.catalog.Filter(query)
	c.JSON(http.StatusOK, gin.H{"products": products})
}

// getProduct returns a single catalog product
func (h *Handler) getProduct(c *gin.Context) {
	product, err := h.catalog.FindByID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "Product not found",
			"details": err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, product)
}

// listCategories returns distinct categories in first-occurrence order
func (h *Handler) listCategories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"categories": h.catalog.DistinctCategories()})
}

// getRecommendations returns up to 3 advisory suggestions for a product.
// Failures degrade to the category fallback inside the fetcher, never to
// an error response.
func (h *Handler) getRecommendations(c *gin.Context) {
	product, err := h.catalog.FindByID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "Product not found",
			"details": err.Error(),
		})
		return
	}

	util.RecommendationRequestsTotal.Inc()
	products := h.recommender.Fetch(c.Request.Context(), product.ID, product.Category)
	c.JSON(http.StatusOK, gin.H{"recommendations": products})
}

// prometheusMiddleware collects HTTP metrics
func prometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Writer.Status())

		util.HTTPRequestDuration.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			status,
		).Observe(duration)

		util.HTTPRequestsTotal.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			status,
		).Inc()
	}
}
