package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

type CORSConfig struct {
	AllowOrigin      string
	AllowMethods     []string
	AllowHeaders     []string
	AllowCredentials bool
}

var DefaultCORSConfig = CORSConfig{
	AllowOrigin:      "*",
	AllowMethods:     []string{fiber.MethodGet, fiber.MethodOptions, fiber.MethodPost},
	AllowHeaders:     []string{fiber.HeaderContentType, fiber.HeaderAuthorization},
	AllowCredentials: true,
}

// CORS writes the same headers on every response and answers preflight
// requests with an empty 200.
func CORS(config CORSConfig) fiber.Handler {
	methods := strings.Join(config.AllowMethods, ",")
	headers := strings.Join(config.AllowHeaders, ", ")

	return func(c *fiber.Ctx) error {
		if config.AllowCredentials {
			c.Set(fiber.HeaderAccessControlAllowCredentials, "true")
		}
		c.Set(fiber.HeaderAccessControlAllowOrigin, config.AllowOrigin)
		c.Set(fiber.HeaderAccessControlAllowMethods, methods)
		c.Set(fiber.HeaderAccessControlAllowHeaders, headers)

		if c.Method() == fiber.MethodOptions {
			c.Status(fiber.StatusOK)
			return nil
		}
		return c.Next()
	}
}
