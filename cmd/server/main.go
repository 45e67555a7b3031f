// Package main is the entry point for the HTTP API.
// It loads configuration, wires the stores and services,
// and serves until interrupted.
package main

import (
	"context"
	"errors"
	stdlog "log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"splitpay/internal/app"
	"splitpay/internal/config"
	"splitpay/internal/handlers"
	"splitpay/internal/logger"
	"splitpay/internal/middleware"
	"splitpay/internal/routes"
	"splitpay/internal/utils/response"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

func main() {
	// Load environment variables
	config.LoadEnv()

	cfg, err := config.Load(os.Getenv("SPLITPAY_CONFIG"))
	if err != nil {
		stdlog.Fatalf("Invalid configuration: %v", err)
	}
	log, err := logger.New(cfg.Log)
	if err != nil {
		stdlog.Fatalf("Invalid log configuration: %v", err)
	}

	deps, err := app.New(cfg, log)
	if err != nil {
		log.WithError(err).Fatal("Failed to initialise application")
	}
	defer deps.Close()

	if cfg.JWT.Secret == "" {
		if cfg.IsProduction() {
			log.Fatal("JWT_SECRET is required in production")
		}
		log.Warn("JWT_SECRET not set, recipient endpoints will reject every request")
	}

	server := fiber.New(fiber.Config{
		AppName:      "splitpay",
		BodyLimit:    cfg.Server.BodyLimit,
		ReadTimeout:  cfg.Server.ReadTimeout,
		ErrorHandler: errorHandler,
	})

	server.Use(recover.New())
	server.Use(requestid.New())
	server.Use(cors.New(cors.Config{
		AllowOrigins:  config.GetEnv("CORS_ORIGINS", "*"),
		AllowHeaders:  "Origin, Content-Type, Accept, Authorization",
		AllowMethods:  "GET,POST,HEAD,PUT,DELETE",
		ExposeHeaders: handlers.PayloadHeader,
	}))
	server.Use(fiberlogger.New(fiberlogger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path} ${locals:requestid}\n",
	}))

	routes.SetupRoutes(server, routes.Dependencies{
		PayNow:       deps.PayNow,
		Split:        deps.Split,
		Recipients:   deps.Recipients,
		Pairings:     deps.Pairings,
		Auth:         middleware.NewAuthMiddleware(cfg.JWT.Secret, log),
		HealthChecks: deps.HealthChecks(),
		RateLimit:    cfg.Server.RateLimit,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go deps.LogPoolStats(ctx, time.Minute)

	errCh := make(chan error, 1)
	go func() {
		log.WithField("port", cfg.Server.Port).Info("Starting server")
		errCh <- server.Listen(":" + cfg.Server.Port)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			log.WithError(err).Error("Server stopped")
		}
	case <-ctx.Done():
		log.Info("Shutting down")
		timeout := config.GetDurationEnv("SHUTDOWN_TIMEOUT", 10*time.Second)
		if err := server.ShutdownWithTimeout(timeout); err != nil {
			log.WithError(err).Error("Graceful shutdown failed")
		}
	}
}

// errorHandler keeps fiber's own errors (404 route, body too large) in the
// API's response envelope.
func errorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return response.Error(c, fe.Code, fe.Message)
	}
	return response.FromError(c, err)
}
