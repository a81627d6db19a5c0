package worker

import (
	"context"
	"log"

	"cart-service/internal/broker"
	"cart-service/internal/models"
	"cart-service/internal/util"

	"go.uber.org/zap"
)

// AnalyticsWorker consumes cart events and records aggregate metrics. It is
// a passive observer: it never writes back to the cart, and losing it
// affects dashboards only.
type AnalyticsWorker struct {
	consumer     *broker.Consumer
	eventHandler *broker.EventHandler
	logger       *zap.Logger
}

// NewAnalyticsWorker creates a new analytics worker
func NewAnalyticsWorker(consumer *broker.Consumer) *AnalyticsWorker {
	w := &AnalyticsWorker{
		consumer: consumer,
		logger:   util.GetLogger(),
	}

	eventHandler := broker.NewEventHandler()
	eventHandler.OnCartUpdated(w.handleCartUpdated)
	eventHandler.OnCartCleared(w.handleCartCleared)
	w.eventHandler = eventHandler

	return w
}

// Start starts the worker
func (w *AnalyticsWorker) Start(ctx context.Context) error {
	log.Println("Starting cart analytics worker...")
	return w.consumer.StartConsuming(ctx, w.eventHandler.HandleMessage)
}

// Stop stops the worker
func (w *AnalyticsWorker) Stop() error {
	log.Println("Stopping cart analytics worker...")
	return w.consumer.Close()
}

func (w *AnalyticsWorker) handleCartUpdated(_ context.Context, event *models.CartUpdatedEvent) error {
	util.CartEventsConsumedTotal.WithLabelValues(models.EventTypeCartUpdated).Inc()
	w.logger.Debug("Cart event consumed",
		zap.String("operation", event.Operation),
		zap.String("product_id", event.ProductID),
		zap.Int("item_count", event.ItemCount),
		zap.Float64("subtotal", event.Subtotal))
	return nil
}

func (w *AnalyticsWorker) handleCartCleared(_ context.Context, event *models.CartClearedEvent) error {
	util.CartEventsConsumedTotal.WithLabelValues(models.EventTypeCartCleared).Inc()
	w.logger.Debug("Cart cleared event consumed", zap.String("cart_key", event.CartKey))
	return nil
}
