// Package routes defines the API routing configuration.
// It sets up all HTTP routes and their corresponding handlers,
// including middleware and authentication requirements.
package routes

import (
	"time"

	"splitpay/internal/handlers"
	"splitpay/internal/middleware"
	"splitpay/internal/models"
	"splitpay/internal/repositories"
	"splitpay/internal/services/paynow"
	"splitpay/internal/services/split"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

// Dependencies are the services the routes are wired to.
type Dependencies struct {
	PayNow       paynow.Service
	Split        split.Service
	Recipients   repositories.RecipientRepository
	Pairings     handlers.PairingStore
	Auth         *middleware.AuthMiddleware
	HealthChecks map[string]handlers.HealthChecker
	// RateLimit caps requests per minute per IP on the generation
	// endpoints. Zero disables the limiter.
	RateLimit int
}

// SetupRoutes configures all application routes.
// It groups routes by functionality and applies appropriate middleware.
func SetupRoutes(app *fiber.App, deps Dependencies) {
	healthHandler := handlers.NewHealthHandler(deps.HealthChecks)
	paynowHandler := handlers.NewPayNowHandler(deps.PayNow)
	splitHandler := handlers.NewSplitHandler(deps.Split, deps.PayNow, deps.Pairings)
	recipientHandler := handlers.NewRecipientHandler(deps.Recipients)

	app.Get("/health", healthHandler.HealthCheck)

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Welcome to SplitPay API",
			"version": handlers.Version,
			"docs":    "/api",
		})
	})

	api := app.Group("/api")

	// Public endpoints. A bearer token is optional and, when sent, makes the
	// caller's stored recipient collect the payment.
	pay := api.Group("/paynow", rateLimit(deps.RateLimit), deps.Auth.Optional)
	pay.Post("/payload", paynowHandler.GeneratePayload)
	pay.Post("/qr", paynowHandler.GenerateQR)
	pay.Post("/verify", paynowHandler.Verify)

	api.Post("/split", rateLimit(deps.RateLimit), deps.Auth.Optional, splitHandler.Split)

	// Protected routes with auth middleware
	recipients := api.Group("/recipients", deps.Auth.Handler)
	recipients.Get("/me", middleware.HasPermission(models.PermissionRecipientRead), recipientHandler.GetMine)
	recipients.Put("/me", middleware.HasPermission(models.PermissionRecipientWrite), recipientHandler.SaveMine)
	recipients.Delete("/me", middleware.HasPermission(models.PermissionRecipientWrite), recipientHandler.DeleteMine)
	recipients.Get("/", middleware.AdminOnly, recipientHandler.List)

	if deps.Pairings != nil {
		pairingHandler := handlers.NewPairingHandler(deps.Pairings)
		chats := api.Group("/chats/:chatID/pairings", deps.Auth.Handler)
		chats.Get("/", middleware.HasPermission(models.PermissionPairingRead), pairingHandler.List)
		chats.Put("/", middleware.HasPermission(models.PermissionPairingWrite), pairingHandler.Save)
		chats.Get("/:position", middleware.HasPermission(models.PermissionPairingRead), pairingHandler.Find)
	}
}

func rateLimit(max int) fiber.Handler {
	if max <= 0 {
		return func(c *fiber.Ctx) error { return c.Next() }
	}
	return limiter.New(limiter.Config{
		Max:        max,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many requests. Please try again later.",
			})
		},
	})
}
