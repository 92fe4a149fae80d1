package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"

	"github.com/catherinevee/inventorymgr/internal/api/middleware"
	"github.com/catherinevee/inventorymgr/internal/logger"
	"github.com/catherinevee/inventorymgr/internal/observability/health"
	"github.com/catherinevee/inventorymgr/internal/observability/metrics"
)

// Config represents server configuration
type Config struct {
	Address           string
	ReadTimeout       time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration
	ShutdownTimeout   time.Duration
	AllowedOrigins    []string
	RequestsPerSecond float64
	Burst             int
}

// Dependencies are the services the server exposes
type Dependencies struct {
	Inventory Inventory
	Cache     CacheInspector
	Health    *health.Service
	Metrics   *metrics.Metrics
	// Gatherer backs /metrics. Nil means the default registry.
	Gatherer prometheus.Gatherer
	Logger   logger.Logger
}

// Server represents the REST API server
type Server struct {
	router    *mux.Router
	handler   http.Handler
	config    Config
	inventory Inventory
	cache     CacheInspector
	health    *health.Service
	metrics   *metrics.Metrics
	gatherer  prometheus.Gatherer
	limiter   *middleware.RateLimiter
	log       logger.Logger
}

// NewServer creates a new REST API server
func NewServer(config Config, deps Dependencies) *Server {
	if config.Address == "" {
		config.Address = ":8080"
	}
	if config.ShutdownTimeout <= 0 {
		config.ShutdownTimeout = 15 * time.Second
	}
	log := deps.Logger
	if log == nil {
		log = logger.Nop()
	}
	if deps.Gatherer == nil {
		deps.Gatherer = prometheus.DefaultGatherer
	}
	if deps.Health == nil {
		deps.Health = health.NewService("", log)
	}

	s := &Server{
		router:    mux.NewRouter(),
		config:    config,
		inventory: deps.Inventory,
		cache:     deps.Cache,
		health:    deps.Health,
		metrics:   deps.Metrics,
		gatherer:  deps.Gatherer,
		limiter: middleware.NewRateLimiter(middleware.RateLimitConfig{
			IPRPS:   config.RequestsPerSecond,
			IPBurst: config.Burst,
		}),
		log: log.WithFields(logger.String("component", "api")),
	}

	s.setupRoutes()
	s.setupMiddleware()

	return s
}

// setupMiddleware configures middleware
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.WithRequestID)
	s.router.Use(middleware.Recovery(s.log))
	s.router.Use(middleware.Logging(s.log, s.metrics))
	s.router.Use(s.limiter.Middleware)

	origins := s.config.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	s.handler = cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Authorization", middleware.RequestIDHeader},
		ExposedHeaders: []string{middleware.RequestIDHeader},
		MaxAge:         86400,
	}).Handler(s.router)
}

// Handler returns the root handler with CORS applied
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Start serves until ctx is cancelled, then shuts down gracefully
func (s *Server) Start(ctx context.Context) error {
	server := &http.Server{
		Addr:         s.config.Address,
		Handler:      s.handler,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
		IdleTimeout:  s.config.IdleTimeout,
	}

	stop := make(chan struct{})
	defer close(stop)
	go s.limiter.Run(stop)

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("Starting REST API server", logger.String("address", s.config.Address))
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
	defer cancel()

	s.log.Info("Shutting down REST API server")
	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return nil
}

func (s *Server) metricsHandler() http.Handler {
	return promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{})
}
