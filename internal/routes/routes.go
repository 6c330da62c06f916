// Package routes defines the API routing configuration.
// It sets up all HTTP routes and their corresponding handlers,
// including middleware and authentication requirements.
package routes

import (
	"time"

	"rentme/internal/handlers"
	"rentme/internal/middleware"
	"rentme/internal/utils/response"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

// Dependencies are the handlers and settings the router wires together.
type Dependencies struct {
	Stripe *handlers.StripeHandler
	Health *handlers.HealthHandler

	JWTSecret        string
	ConnectRateLimit int  // requests per minute per IP, 0 disables
	WebhookEnabled   bool // requires a webhook signing secret
}

// SetupRoutes configures all application routes.
func SetupRoutes(app *fiber.App, deps Dependencies) {
	if deps.Health != nil {
		app.Get("/health", deps.Health.HealthCheck)
		app.Get("/health/cache", deps.Health.PoolStats)
	}

	stripe := app.Group("/api/stripe")
	auth := middleware.VendorAuth(deps.JWTSecret)

	connect := []fiber.Handler{}
	if deps.ConnectRateLimit > 0 {
		connect = append(connect, rateLimiter(deps.ConnectRateLimit, time.Minute))
	}
	connect = append(connect, auth, deps.Stripe.CreateConnectAccount)

	post(stripe, "/create-connect-account", connect...)
	post(stripe, "/account-status", auth, deps.Stripe.AccountStatus)
	post(stripe, "/create-login-link", auth, deps.Stripe.CreateLoginLink)

	if deps.WebhookEnabled {
		post(stripe, "/webhook", deps.Stripe.Webhook)
	}
}

// post registers a POST-only route; any other method gets 405.
func post(router fiber.Router, path string, chain ...fiber.Handler) {
	router.Post(path, chain...)
	router.All(path, response.MethodNotAllowed)
}

func rateLimiter(limit int, window time.Duration) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        limit,
		Expiration: window,
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
