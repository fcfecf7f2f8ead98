package server

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"tireshop/internal/config"
	custommiddleware "tireshop/internal/middleware"
	"tireshop/internal/repository"
	"tireshop/internal/service"
	"tireshop/internal/transport"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Server struct {
	*http.Server
	config *config.Config
	logger *zap.Logger
	db     *sql.DB
}

func NewServer(cfg *config.Config, logger *zap.Logger, db *sql.DB, healthFn func() map[string]string) *Server {
	// Create router
	router := chi.NewRouter()

	// Add basic middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Compress(5))
	router.Use(custommiddleware.CORSMiddleware(cfg.CORS.AllowedOrigins, cfg.Server.Env == "development"))
	router.Use(custommiddleware.LoggingMiddleware(logger))
	router.Use(custommiddleware.ErrorHandlingMiddleware(logger))
	if cfg.Redis.Addr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
		})
		router.Use(custommiddleware.RateLimitMiddleware(redisClient, custommiddleware.RateLimitConfig{
			RequestsPerWindow: cfg.RateLimit.RequestsPerWindow,
			Window:            cfg.RateLimit.Window,
			KeyPrefix:         "tireshop_rate_limit",
		}, logger))
	}
	if cfg.Metrics.Enabled {
		router.Use(custommiddleware.MetricsMiddleware)
		router.Handle("/metrics", promhttp.Handler())
	}

	// Health check endpoint
	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(healthFn())
	})

	// Initialize repositories
	catalogRepo := repository.NewCatalogRepository(db)
	productRepo := repository.NewProductRepository(db)
	counterpartyRepo := repository.NewCounterpartyRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	stockRepo := repository.NewStockRepository(db)

	// Initialize services
	catalogService := service.NewCatalogService(catalogRepo)
	productService := service.NewProductService(productRepo)
	counterpartyService := service.NewCounterpartyService(counterpartyRepo)
	orderService := service.NewOrderService(orderRepo, productRepo, counterpartyRepo)
	stockService := service.NewStockService(stockRepo, productRepo)

	// Initialize handlers
	catalogHandler := transport.NewCatalogHandler(catalogService, logger)
	productHandler := transport.NewProductHandler(productService, logger)
	counterpartyHandler := transport.NewCounterpartyHandler(counterpartyService, logger)
	orderHandler := transport.NewOrderHandler(orderService, logger)
	stockHandler := transport.NewStockHandler(stockService, logger)

	// Register routes
	catalogHandler.RegisterRoutes(router)
	productHandler.RegisterRoutes(router)
	counterpartyHandler.RegisterRoutes(router)
	orderHandler.RegisterRoutes(router)
	stockHandler.RegisterRoutes(router)

	server := &Server{
		Server: &http.Server{
			Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
			Handler:      router,
			IdleTimeout:  time.Minute,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		config: cfg,
		logger: logger,
		db:     db,
	}

	return server
}

func (s *Server) Close() error {
	s.logger.Info("Closing server resources")

	// Close database connection
	if s.db != nil {
		if err := s.db.Close(); err != nil {
			s.logger.Error("Failed to close database connection", zap.Error(err))
		}
	}

	s.logger.Sync()
	return nil
}
