package service

import (
	"context"
	"time"

	"cart-service/internal/broker"
	"cart-service/internal/cart"
	"cart-service/internal/catalog"
	"cart-service/internal/models"
	"cart-service/internal/pricing"
	"cart-service/internal/util"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CartService composes the cart store, catalog and pricing calculator and
// adds the operational concerns around mutations: tracing, metrics and
// best-effort event publishing.
type CartService struct {
	cart           *cart.Store
	catalog        *catalog.Catalog
	calculator     *pricing.Calculator
	eventPublisher *broker.EventPublisher
	cartKey        string
	logger         *zap.Logger
}

// NewCartService creates a new cart service. The event publisher may be
// nil, which disables event publishing.
func NewCartService(
	cartStore *cart.Store,
	cat *catalog.Catalog,
	calculator *pricing.Calculator,
	eventPublisher *broker.EventPublisher,
	cartKey string,
) *CartService {
	return &CartService{
		cart:           cartStore,
		catalog:        cat,
		calculator:     calculator,
		eventPublisher: eventPublisher,
		cartKey:        cartKey,
		logger:         util.GetLogger(),
	}
}

// CartView is the presentation-facing read model: the line sequence plus
// the derived pricing snapshot, recomputed on every read.
type CartView struct {
	Lines     []models.CartLine `json:"lines"`
	ItemCount int               `json:"item_count"`
	Pricing   pricing.Snapshot  `json:"pricing"`
}

// GetCart returns the current cart with fresh pricing. Side-effect free.
func (s *CartService) GetCart(_ context.Context) *CartView {
	return s.view()
}

// AddItem adds quantity of a product to the cart. The product is resolved
// through the catalog so the line snapshots its current price and name.
// An unknown product id is the only failing input.
func (s *CartService) AddItem(ctx context.Context, productID string, quantity int) (*CartView, error) {
	ctx, span := util.StartSpan(ctx, "CartService.AddItem")
	defer span.End()

	product, err := s.catalog.FindByID(productID)
	if err != nil {
		util.CartMutationsFailedTotal.WithLabelValues("unknown_product").Inc()
		return nil, err
	}

	s.cart.Add(ctx, product, quantity)
	util.CartMutationsTotal.WithLabelValues(models.CartOpAdd).Inc()
	s.logger.Info("Cart item added",
		zap.String("product_id", productID),
		zap.Int("quantity", quantity))

	s.publishUpdated(ctx, models.CartOpAdd, productID, quantity)
	return s.view(), nil
}

// RemoveItem deletes the line for the product id. Removing an absent id is
// a no-op.
func (s *CartService) RemoveItem(ctx context.Context, productID string) *CartView {
	ctx, span := util.StartSpan(ctx, "CartService.RemoveItem")
	defer span.End()

	s.cart.Remove(ctx, productID)
	util.CartMutationsTotal.WithLabelValues(models.CartOpRemove).Inc()
	s.logger.Info("Cart item removed", zap.String("product_id", productID))

	s.publishUpdated(ctx, models.CartOpRemove, productID, 0)
	return s.view()
}

// SetItemQuantity replaces a line quantity; zero or less removes the line.
func (s *CartService) SetItemQuantity(ctx context.Context, productID string, quantity int) *CartView {
	ctx, span := util.StartSpan(ctx, "CartService.SetItemQuantity")
	defer span.End()

	s.cart.SetQuantity(ctx, productID, quantity)
	util.CartMutationsTotal.WithLabelValues(models.CartOpSetQuantity).Inc()
	s.logger.Info("Cart item quantity set",
		zap.String("product_id", productID),
		zap.Int("quantity", quantity))

	s.publishUpdated(ctx, models.CartOpSetQuantity, productID, quantity)
	return s.view()
}

// ClearCart empties the cart.
func (s *CartService) ClearCart(ctx context.Context) *CartView {
	ctx, span := util.StartSpan(ctx, "CartService.ClearCart")
	defer span.End()

	s.cart.Clear(ctx)
	util.CartMutationsTotal.WithLabelValues(models.CartOpClear).Inc()
	s.logger.Info("Cart cleared")

	if s.eventPublisher != nil {
		event := &models.CartClearedEvent{
			BaseEvent: models.BaseEvent{
				EventID:   uuid.New().String(),
				EventType: models.EventTypeCartCleared,
				Timestamp: time.Now(),
			},
			CartKey: s.cartKey,
		}
		if err := s.eventPublisher.PublishCartCleared(ctx, event); err != nil {
			util.CartEventsPublishFailedTotal.Inc()
			s.logger.Error("Failed to publish CartCleared event", zap.Error(err))
		} else {
			util.CartEventsPublishedTotal.Inc()
		}
	}
	return s.view()
}

func (s *CartService) view() *CartView {
	lines := s.cart.Lines()
	count := 0
	for _, line := range lines {
		count += line.Quantity
	}
	util.CartItemCount.Set(float64(count))

	return &CartView{
		Lines:     lines,
		ItemCount: count,
		Pricing:   s.calculator.Quote(lines),
	}
}

// publishUpdated emits a best-effort CartUpdated event. Publish failures
// never surface to the caller.
func (s *CartService) publishUpdated(ctx context.Context, op, productID string, quantity int) {
	if s.eventPublisher == nil {
		return
	}

	lines := s.cart.Lines()
	count := 0
	for _, line := range lines {
		count += line.Quantity
	}

	event := &models.CartUpdatedEvent{
		BaseEvent: models.BaseEvent{
			EventID:   uuid.New().String(),
			EventType: models.EventTypeCartUpdated,
			Timestamp: time.Now(),
		},
		CartKey:   s.cartKey,
		Operation: op,
		ProductID: productID,
		Quantity:  quantity,
		ItemCount: count,
		Subtotal:  s.calculator.Subtotal(lines),
	}

	if err := s.eventPublisher.PublishCartUpdated(ctx, event); err != nil {
		util.CartEventsPublishFailedTotal.Inc()
		s.logger.Error("Failed to publish CartUpdated event", zap.Error(err))
		return
	}
	util.CartEventsPublishedTotal.Inc()
}
