package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/greenlens/backend/config"
	httpDelivery "github.com/greenlens/backend/internal/delivery/http"
	"github.com/greenlens/backend/internal/domain"
	"github.com/greenlens/backend/internal/infrastructure/cache"
	"github.com/greenlens/backend/internal/infrastructure/catalog"
	"github.com/greenlens/backend/internal/infrastructure/messaging"
	"github.com/greenlens/backend/internal/infrastructure/store"
	"github.com/greenlens/backend/internal/logger"
	"github.com/greenlens/backend/internal/usecase"
	"github.com/redis/go-redis/v9"
)

const shutdownTimeout = 10 * time.Second

func main() {
	log := logger.Log

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := logger.Configure(cfg.Log.Level, cfg.Server.Environment); err != nil {
		log.Fatalf("Failed to configure logging: %v", err)
	}

	log.Infof("Starting GreenLens Backend v1.0.0")
	log.Infof("Environment: %s", cfg.Server.Environment)
	log.Infof("Port: %s", cfg.Server.Port)
	log.Infof("Store: %s (snapshot TTL %s)", cfg.Store.Type, cfg.Store.TTL)

	ctx := context.Background()

	// Initialize infrastructure dependencies
	var (
		kv          domain.CacheRepository
		redisClient *redis.Client
		closers     []func() error
	)

	switch cfg.Store.Type {
	case "redis":
		redisClient, err = cache.NewRedisClient(ctx, cfg.Store.RedisURL, cache.DefaultRedisConfig())
		if err != nil {
			log.Fatalf("Failed to connect to Redis store: %v", err)
		}
		closers = append(closers, redisClient.Close)
		kv = cache.NewRedisCache(redisClient)
	default:
		memoryCache := cache.NewMemoryCache()
		closers = append(closers, memoryCache.Close)
		kv = memoryCache
	}

	snapshots := store.NewSnapshotStore(kv, cfg.Store.TTL)

	var messenger domain.Messenger = messaging.NewNoopMessenger()
	if cfg.Messaging.Enabled {
		client := redisClient
		if client == nil || cfg.Messaging.RedisURL != cfg.Store.RedisURL {
			client, err = cache.NewRedisClient(ctx, cfg.Messaging.RedisURL, cache.DefaultRedisConfig())
			if err != nil {
				log.Fatalf("Failed to connect to Redis message channel: %v", err)
			}
			closers = append(closers, client.Close)
		}
		redisMessenger := messaging.NewRedisMessenger(client, cfg.Messaging.Channel)
		log.Infof("Messaging: publishing on %s", redisMessenger.Channel())
		messenger = redisMessenger
	}

	// Initialize usecase layer
	sustainabilityService := usecase.NewSustainabilityService(
		snapshots,
		messenger,
		catalog.NewStaticCatalog(),
		usecase.SustainabilityServiceConfig{
			PopupAlternatives: cfg.Popup.Alternatives,
			DefaultPopupURL:   cfg.Popup.DefaultURL,
		},
	)

	// Create HTTP handler with dependencies
	handler := httpDelivery.NewHandler(sustainabilityService)

	// Setup router
	router := httpDelivery.SetupRouter(cfg, handler)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Infof("Server listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan
	log.Infof("Received %s, shutting down", sig)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorf("Server shutdown failed: %v", err)
	}

	for _, closeFn := range closers {
		if err := closeFn(); err != nil {
			log.Warnf("Cleanup failed: %v", err)
		}
	}

	log.Info("Server stopped")
}
