package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"gbm-go-api/internal/config"
	"gbm-go-api/internal/handlers"
	"gbm-go-api/internal/services"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the GBM simulation HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe()
		},
	}
}

func runServe() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, err := newLogger(cfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Sync()

	// Initialize services
	simulationService := services.NewSimulationService(cfg, logger)

	// Initialize handlers
	simulationHandler := handlers.NewSimulationHandler(simulationService, cfg)
	healthHandler := handlers.NewHealthHandler()

	app := fiber.New(fiber.Config{
		StrictRouting: true,
		CaseSensitive: true,
		ServerHeader:  "GBM-API",
		AppName:       "gbmsim v" + version,
		ReadTimeout:   time.Second * 10,
		WriteTimeout:  time.Second * 10,
		BodyLimit:     4 * 1024 * 1024, // 4MB
		ErrorHandler:  handlers.CustomErrorHandler,
	})

	// Middleware stack
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSAllowOrigins,
		AllowMethods:     "GET,POST,OPTIONS",
		AllowHeaders:     "Origin,Content-Type,Accept",
		AllowCredentials: false,
		MaxAge:           3600,
	}))
	app.Use(limiter.New(limiter.Config{
		Max:        cfg.RateLimitPerMinute,
		Expiration: 1 * time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(429).JSON(fiber.Map{
				"error": "Rate limit exceeded. Please try again later.",
			})
		},
	}))

	// Routes
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"service": "GBM API",
			"version": version,
			"status":  "running",
		})
	})

	app.Get("/health", healthHandler.Health)
	app.Get("/health/ready", healthHandler.Ready)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// API v1 routes
	v1 := app.Group("/v1")
	v1.Post("/simulate", simulationHandler.Simulate)
	v1.Post("/simulate/batch", simulationHandler.SimulateBatch)
	v1.Get("/simulations/:id", simulationHandler.GetResult)

	// Graceful shutdown
	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			logger.Fatal("failed to start server", zap.Error(err))
		}
	}()

	logger.Info("gbm api started",
		zap.String("port", cfg.Port),
		zap.String("environment", cfg.Environment),
	)

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down gracefully")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		return fmt.Errorf("forced shutdown: %w", err)
	}

	logger.Info("server shutdown complete")
	return nil
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	var zcfg zap.Config
	if cfg.Environment == "production" {
		zcfg = zap.NewProductionConfig()
	} else {
		zcfg = zap.NewDevelopmentConfig()
	}

	level, err := zapcore.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("parse log level %q: %w", cfg.LogLevel, err)
	}
	zcfg.Level = zap.NewAtomicLevelAt(level)

	return zcfg.Build()
}
