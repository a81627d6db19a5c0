package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cart-service/config"
	"cart-service/internal/api"
	"cart-service/internal/broker"
	"cart-service/internal/cart"
	"cart-service/internal/catalog"
	"cart-service/internal/pricing"
	"cart-service/internal/recommend"
	"cart-service/internal/redisclient"
	"cart-service/internal/service"
	"cart-service/internal/store"
	"cart-service/internal/util"
	"cart-service/internal/worker"

	"github.com/gin-gonic/gin"
)

func main() {

	cfg := config.Load()

	if err := util.InitLogger(cfg.Server.Env); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer util.SyncLogger()

	logger := util.GetLogger()
	logger.Info("Starting cart service")

	tp, err := util.InitTracer("cart-service", cfg.Observ.JaegerEndpoint)
	if err != nil {
		log.Fatalf("Failed to initialize tracer: %v", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tp.Shutdown(ctx); err != nil {
			log.Printf("Error shutting down tracer: %v", err)
		}
	}()

	cat := loadCatalog(cfg)
	log.Printf("Catalog ready: %d products", len(cat.List()))

	var persister cart.Persister
	redisPersister, err := redisclient.NewClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, cfg.Cart.StorageKey)
	if err != nil {
		log.Printf("Redis unavailable, cart state will not survive restarts: %v", err)
		persister = cart.NewMemoryPersister()
	} else {
		defer redisPersister.Close()
		persister = redisPersister
		log.Println("Redis connected")
	}

	cartStore := cart.NewStore(context.Background(), persister)

	producer := broker.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.TopicCart)
	defer producer.Close()
	log.Println("Kafka producer initialized")

	eventPublisher := broker.NewEventPublisher(producer)

	calculator := pricing.NewCalculator(
		cfg.Pricing.FreeShippingThreshold,
		cfg.Pricing.FlatShippingFee,
		cfg.Pricing.TaxRate,
	)

	cartService := service.NewCartService(cartStore, cat, calculator, eventPublisher, cfg.Cart.StorageKey)

	var recommender recommend.Recommender
	if cfg.Recommender.Endpoint != "" {
		recommender = recommend.NewHTTPRecommender(cfg.Recommender.Endpoint, cfg.Recommender.Timeout)
	}
	recommendFetcher := recommend.NewFetcher(recommend.NewService(cat, recommender))

	workerCtx, workerCancel := context.WithCancel(context.Background())
	defer workerCancel()

	analyticsConsumer := broker.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.TopicCart, cfg.Kafka.ConsumerGroup)
	analyticsWorker := worker.NewAnalyticsWorker(analyticsConsumer)
	go func() {
		if err := analyticsWorker.Start(workerCtx); err != nil {
			log.Printf("Analytics worker error: %v", err)
		}
	}()

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()
	handler := api.NewHandler(cartService, cat, recommendFetcher)
	handler.SetupRoutes(router)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: router,
	}

	go func() {
		log.Printf("Starting HTTP server on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	workerCancel()
	analyticsWorker.Stop()

	log.Println("Server exited")
}

// loadCatalog builds the read-only catalog, preferring Postgres when
// configured and falling back to the embedded seed.
func loadCatalog(cfg *config.Config) *catalog.Catalog {
	if cfg.Database.URL == "" {
		return catalog.New(catalog.Seed())
	}

	db, err := store.NewStore(cfg.Database.URL)
	if err != nil {
		log.Printf("Database unavailable, using seed catalog: %v", err)
		return catalog.New(catalog.Seed())
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	products, err := db.GetProducts(ctx)
	if err != nil || len(products) == 0 {
		log.Printf("Catalog load from database failed, using seed: %v", err)
		return catalog.New(catalog.Seed())
	}

	log.Println("Catalog loaded from database")
	return catalog.New(products)
}
