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

	"realty/internal/app"
	"realty/internal/config"
	"realty/internal/handler"
	"realty/internal/logger"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Load configuration
	cfg, err := config.Load(os.Getenv("REALTY_CONFIG"))
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logger.Init(cfg.Logging.Level, cfg.Logging.Format, "realty-server")
	log.Info().
		Str("version", Version).
		Str("build_time", BuildTime).
		Str("git_commit", GitCommit).
		Msg("Realty price and analytics server")

	// Set Gin mode
	gin.SetMode(cfg.Server.GinMode)

	// Schema, model and data sources. Any failure here is fatal.
	a, err := app.New(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Startup check failed")
	}
	defer a.Close()

	log.Info().Msg("Services initialized")

	// Initialize handlers
	predictHandler := handler.NewPredictHandler(a.Predictions)
	schemaHandler := handler.NewSchemaHandler(a.Schema)
	analyticsHandler := handler.NewAnalyticsHandler(a.Analytics)

	// Setup Gin router
	router := gin.New()
	router.Use(gin.Recovery(), handler.RequestID(), handler.RequestLogger())

	// CORS configuration
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = config.SplitList(cfg.Server.AllowedOrigins)
	corsConfig.AllowMethods = config.SplitList(cfg.Server.AllowedMethods)
	corsConfig.AllowHeaders = config.SplitList(cfg.Server.AllowedHeaders)
	corsConfig.ExposeHeaders = []string{handler.RequestIDHeader}
	router.Use(cors.New(corsConfig))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":     "healthy",
			"service":    "realty",
			"version":    Version,
			"build_time": BuildTime,
			"git_commit": GitCommit,
		})
	})

	// Version endpoint
	router.GET("/version", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"version":    Version,
			"build_time": BuildTime,
			"git_commit": GitCommit,
		})
	})

	// API routes
	apiV1 := router.Group("/api/v1")
	{
		apiV1.POST("/predict", predictHandler.Predict)
		apiV1.GET("/schema", schemaHandler.Get)
		apiV1.GET("/analytics", analyticsHandler.Get)
		apiV1.POST("/analytics", analyticsHandler.Get)
	}

	if a.Metrics != nil {
		router.GET(cfg.Metrics.Path, gin.WrapH(a.Metrics.Handler()))
	}

	setupStaticFiles(router, a.Locator.Dirs())

	// Start server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{Addr: addr, Handler: router}
	log.Info().Str("addr", addr).Msg("Starting server")

	// Graceful shutdown
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shut down")
	}
	log.Info().Msg("Server stopped")
}
