package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ecoponto/internal/config"
	"ecoponto/internal/handler"
	"ecoponto/internal/logger"
	"ecoponto/internal/service"
	"ecoponto/internal/view"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}

	log := logger.New(cfg.Logging)
	log.WithFields(logrus.Fields{
		"version":    Version,
		"build_time": BuildTime,
		"git_commit": GitCommit,
	}).Info("EcoPonto recycling assistant")

	// Set Gin mode
	gin.SetMode(cfg.Server.GinMode)

	// Initialize services
	backend := service.NewRecyclingClient(cfg.Backend.BaseURL, cfg.BackendTimeout(), log)
	log.WithField("base_url", cfg.Backend.BaseURL).Info("recycling backend configured")

	maps, err := service.NewMapsProvider(&cfg.Geocoding, log)
	if err != nil {
		log.WithError(err).Fatal("Failed to initialize maps provider")
	}

	position := service.PositionOptionsFrom(cfg.Geolocation)
	sessions := handler.NewSessionStore(func() *service.Orchestrator {
		return service.NewOrchestrator(backend, maps, position, log)
	}, cfg.SessionIdleTimeout(), log)

	renderer, err := view.New()
	if err != nil {
		log.WithError(err).Fatal("Failed to parse templates")
	}

	// Initialize handlers
	lookupHandler := handler.NewLookupHandler(sessions, renderer, maps.Name(), position, log)

	// Setup Gin router
	router := gin.New()
	router.Use(logger.GinMiddleware(log), gin.Recovery())
	router.SetHTMLTemplate(renderer.Template())

	// CORS configuration
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{cfg.Server.AllowedOrigins}
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Content-Type"}
	router.Use(cors.New(corsConfig))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":     "healthy",
			"service":    "ecoponto",
			"provider":   maps.Name(),
			"sessions":   sessions.Len(),
			"version":    Version,
			"build_time": BuildTime,
			"git_commit": GitCommit,
		})
	})

	// Version endpoint
	router.GET("/version", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"version":    Version,
			"build_time": BuildTime,
			"git_commit": GitCommit,
		})
	})

	router.GET("/", lookupHandler.Page)

	// API routes
	apiV1 := router.Group("/api/v1")
	{
		apiV1.POST("/classify", lookupHandler.Classify)
		apiV1.POST("/locate", lookupHandler.Locate)
	}

	// Serve static files
	// This function is implemented in embed.go (production) or static_dev.go (development)
	setupStaticFiles(router, log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go sessions.Run(ctx)

	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.WithField("addr", srv.Addr).Info("starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("Failed to start server")
		}
	}()

	<-ctx.Done()
	log.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("server shutdown failed")
		os.Exit(1)
	}
	log.Info("server stopped")
}
