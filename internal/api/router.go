package api

import (
	"time"

	"tradebook-backend/internal/cache"
	"tradebook-backend/internal/config"
	"tradebook-backend/internal/database"
	"tradebook-backend/internal/events"
	"tradebook-backend/internal/metrics"
	"tradebook-backend/internal/middleware"
	"tradebook-backend/internal/repositories"
	"tradebook-backend/internal/services"
	"tradebook-backend/pkg/auth"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server represents the API server
type Server struct {
	router            *gin.Engine
	config            *config.Config
	repos             *repositories.Repositories
	db                *database.DB
	metrics           *metrics.Metrics
	jwtManager        *auth.JWTManager
	authService       *services.AuthService
	userService       *services.UserService
	tradeService      *services.TradeService
	optionService     *services.OptionService
	collectionService *services.CollectionService
	preferenceService *services.PreferenceService
	statsService      *services.StatsService
}

// NewServer creates a new API server
func NewServer(
	cfg *config.Config,
	repos *repositories.Repositories,
	db *database.DB,
	optionCache cache.OptionCache,
	publisher events.Publisher,
	m *metrics.Metrics,
) *Server {
	jwtManager := auth.NewJWTManager(
		cfg.Auth.JWTSecret,
		cfg.Auth.RefreshSecret,
		time.Duration(cfg.Auth.JWTExpiration)*time.Second,
		time.Duration(cfg.Auth.RefreshExpiration)*time.Second,
	)

	oauthManager := auth.NewOAuthManager(auth.GoogleOAuthConfig{
		ClientID:     cfg.OAuth.Google.ClientID,
		ClientSecret: cfg.OAuth.Google.ClientSecret,
		RedirectURL:  cfg.OAuth.Google.RedirectURL,
	})

	return &Server{
		config:            cfg,
		repos:             repos,
		db:                db,
		metrics:           m,
		jwtManager:        jwtManager,
		authService:       services.NewAuthService(repos, jwtManager, oauthManager),
		userService:       services.NewUserService(repos),
		tradeService:      services.NewTradeService(repos, publisher),
		optionService:     services.NewOptionService(repos, optionCache, publisher),
		collectionService: services.NewCollectionService(repos),
		preferenceService: services.NewPreferenceService(repos),
		statsService:      services.NewStatsService(repos),
	}
}

// SetupRoutes sets up all API routes
func (s *Server) SetupRoutes() *gin.Engine {
	router := gin.New()

	var allowedOrigins []string
	if s.config.Environment == "production" {
		allowedOrigins = []string{"https://tradebook.app"}
	} else {
		allowedOrigins = []string{"https://dev.tradebook.app", "http://localhost:3000"}
	}

	// Global middleware
	router.Use(middleware.ErrorLoggingMiddleware())
	router.Use(middleware.SecurityHeadersMiddleware())
	router.Use(middleware.CORSMiddleware(allowedOrigins))
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.HealthCheckLoggingMiddleware())
	router.Use(middleware.MonitoringMiddleware(s.metrics))

	s.setupHealthRoutes(router)

	if s.config.Metrics.Enabled {
		router.GET(s.config.Metrics.EndpointPath, gin.WrapH(promhttp.Handler()))
	}

	// API routes with rate limiting
	api := router.Group("/v1")
	api.Use(middleware.APIRateLimitMiddleware())

	s.setupAuthRoutes(api)

	// Protected routes (require authentication)
	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware(s.jwtManager))

	s.setupUserRoutes(protected)
	s.setupTradeRoutes(protected)
	s.setupOptionRoutes(protected)
	s.setupCollectionRoutes(protected)
	s.setupPreferenceRoutes(protected)
	s.setupStatsRoutes(protected)

	s.router = router
	return router
}

func (s *Server) setupHealthRoutes(router *gin.Engine) {
	healthHandler := NewHealthHandler(s.db)

	router.GET("/health/live", healthHandler.LivenessProbe)
	router.GET("/health/ready", healthHandler.ReadinessProbe)
}

func (s *Server) setupAuthRoutes(api *gin.RouterGroup) {
	authHandler := NewAuthHandler(s.authService)

	authGroup := api.Group("/auth")
	authGroup.Use(middleware.AuthRateLimitMiddleware())
	authGroup.Use(middleware.AuthFailureMetricsMiddleware(s.metrics))

	authGroup.POST("/login", authHandler.Login)
	authGroup.POST("/callback", authHandler.Callback)
	authGroup.POST("/refresh", authHandler.Refresh)
	authGroup.POST("/logout", middleware.AuthMiddleware(s.jwtManager), authHandler.Logout)
}

func (s *Server) setupUserRoutes(protected *gin.RouterGroup) {
	userHandler := NewUserHandler(s.userService)

	users := protected.Group("/users")
	users.GET("/me", userHandler.GetCurrentUser)
	users.PUT("/me", userHandler.UpdateCurrentUser)
}

func (s *Server) setupTradeRoutes(protected *gin.RouterGroup) {
	tradeHandler := NewTradeHandler(s.tradeService)

	trades := protected.Group("/trades")
	trades.POST("", tradeHandler.CreateTrade)
	trades.GET("/:id", tradeHandler.GetTrade)
	trades.PUT("/:id", tradeHandler.UpdateTrade)
	trades.DELETE("/:id", tradeHandler.DeleteTrade)
	trades.POST("/:id/favorite", tradeHandler.ToggleFavorite)
	trades.POST("/query", tradeHandler.QueryTrades)
	trades.POST("/export", middleware.ExportRateLimitMiddleware(), tradeHandler.ExportTrades)
}

func (s *Server) setupOptionRoutes(protected *gin.RouterGroup) {
	optionHandler := NewOptionHandler(s.optionService)

	options := protected.Group("/options")
	options.GET("/usage", optionHandler.UsageCheck)
	options.GET("/:kind", optionHandler.ListOptions)
	options.POST("/:kind", optionHandler.CreateOption)
	options.PUT("/:kind/reorder", optionHandler.ReorderOptions)
	options.PUT("/:kind/:id", optionHandler.UpdateOption)
	options.DELETE("/:kind/:id", optionHandler.DeleteOption)
}

func (s *Server) setupCollectionRoutes(protected *gin.RouterGroup) {
	collectionHandler := NewCollectionHandler(s.collectionService)

	collections := protected.Group("/collections")
	collections.POST("", collectionHandler.CreateCollection)
	collections.GET("", collectionHandler.GetUserCollections)
	collections.GET("/:id", collectionHandler.GetCollection)
	collections.PUT("/:id", collectionHandler.UpdateCollection)
	collections.DELETE("/:id", collectionHandler.DeleteCollection)
	collections.PUT("/:id/trades", collectionHandler.SetCollectionTrades)
}

func (s *Server) setupPreferenceRoutes(protected *gin.RouterGroup) {
	preferenceHandler := NewPreferenceHandler(s.preferenceService)

	preferences := protected.Group("/preferences")
	preferences.GET("", preferenceHandler.GetPreference)
	preferences.POST("", preferenceHandler.SavePreference)
}

func (s *Server) setupStatsRoutes(protected *gin.RouterGroup) {
	statsHandler := NewStatsHandler(s.statsService)

	stats := protected.Group("/stats")
	stats.POST("/summary", statsHandler.Summary)
	stats.POST("/by-dimension/:dimension", statsHandler.ByDimension)
	stats.POST("/daily", statsHandler.Daily)
}

// GetRouter returns the configured router
func (s *Server) GetRouter() *gin.Engine {
	if s.router == nil {
		return s.SetupRoutes()
	}
	return s.router
}
