// Package middleware provides HTTP middleware components for the application.
// It includes vendor authentication and CORS handling for the fiber web
// framework.
package middleware

import (
	"log"
	"strings"

	"rentme/internal/utils"
	"rentme/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

// VendorAuth validates a vendor session token and checks that it belongs to
// the vendor named in the request body. With an empty secret the middleware
// is a passthrough and identity is left to the upstream session wrapper.
func VendorAuth(secret string) fiber.Handler {
	if secret == "" {
		return func(c *fiber.Ctx) error { return c.Next() }
	}

	return func(c *fiber.Ctx) error {
		if c.Method() == fiber.MethodOptions {
			return c.Next()
		}

		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return response.Unauthorized(c, "missing authorization header")
		}
		if !strings.HasPrefix(authHeader, "Bearer ") {
			return response.Unauthorized(c, "invalid authorization format")
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		claims, err := utils.ParseVendorToken(secret, tokenString)
		if err != nil {
			log.Printf("Token validation error: %v", err)
			return response.Unauthorized(c, "invalid token")
		}

		// Non-POST requests are rejected by the route itself.
		if c.Method() == fiber.MethodPost {
			var body struct {
				VendorID string `json:"vendorId"`
			}
			if err := c.BodyParser(&body); err != nil {
				return response.BadRequest(c, "Invalid request body")
			}
			if strings.TrimSpace(body.VendorID) != "" && strings.TrimSpace(body.VendorID) != claims.VendorID {
				log.Printf("⚠️ Vendor %s attempted to act on vendor %s", claims.VendorID, body.VendorID)
				return response.Forbidden(c, "Insufficient permissions")
			}
		}

		c.Locals("claims", claims)
		c.Locals("vendorID", claims.VendorID)
		return c.Next()
	}
}
