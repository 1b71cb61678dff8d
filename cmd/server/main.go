package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tradebook-backend/internal/api"
	"tradebook-backend/internal/cache"
	"tradebook-backend/internal/config"
	"tradebook-backend/internal/database"
	"tradebook-backend/internal/events"
	"tradebook-backend/internal/metrics"
	"tradebook-backend/internal/repositories"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize database
	db, err := database.Initialize(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer database.Close(db)

	// Initialize repositories
	repos := repositories.NewRepositories(db.DB)

	// Option cache: Redis when enabled, otherwise a pass-through
	optionCache := cache.NewNoopOptionCache()
	if cfg.Redis.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()
		optionCache = cache.NewRedisOptionCache(redisClient, time.Duration(cfg.Redis.CacheTTL)*time.Second)
	}

	// Event publisher: NATS when enabled, otherwise a no-op
	publisher := events.NewNoopPublisher()
	if cfg.NATS.Enabled {
		natsPublisher, err := events.NewNATSPublisher(cfg.NATS.URL)
		if err != nil {
			log.Fatalf("Failed to connect to NATS: %v", err)
		}
		publisher = natsPublisher
	}
	defer publisher.Close()

	// Metrics registry and periodic business-metric refresh
	var m *metrics.Metrics
	if cfg.Metrics.Enabled {
		m = metrics.NewMetrics()
		updater := metrics.NewMetricsUpdater(m, repos, cfg.Metrics.RefreshCron)
		if err := updater.Start(); err != nil {
			log.Fatalf("Failed to start metrics updater: %v", err)
		}
		defer updater.Stop()
	}

	// Set Gin mode
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize API server
	apiServer := api.NewServer(cfg, repos, db, optionCache, publisher, m)
	router := apiServer.SetupRoutes()

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Starting server on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	// Give outstanding requests 30 seconds to complete
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}
