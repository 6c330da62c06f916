package handlers_test

import (
	"context"
	"net/http"
	"testing"

	"rentme/internal/handlers"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func healthApp(checks ...handlers.Check) *fiber.App {
	app := fiber.New()
	h := handlers.NewHealthHandler(nil, checks...)
	app.Get("/health", h.HealthCheck)
	app.Get("/health/cache", h.PoolStats)
	return app
}

func TestHealthCheck(t *testing.T) {
	ok := func(context.Context) error { return nil }
	down := func(context.Context) error { return errors.New("connection refused") }

	t.Run("all up", func(t *testing.T) {
		status, body := do(t, healthApp(handlers.Check{Name: "database", Ping: ok}, handlers.Check{Name: "redis", Ping: ok}), http.MethodGet, "/health", "")
		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, "ok", body["status"])
		assert.Equal(t, map[string]interface{}{"database": "connected", "redis": "connected"}, body["services"])
	})

	t.Run("redis down", func(t *testing.T) {
		status, body := do(t, healthApp(handlers.Check{Name: "database", Ping: ok}, handlers.Check{Name: "redis", Ping: down}), http.MethodGet, "/health", "")
		assert.Equal(t, http.StatusServiceUnavailable, status)
		assert.Equal(t, "degraded", body["status"])
		services := body["services"].(map[string]interface{})
		assert.Equal(t, "error: connection refused", services["redis"])
	})

	t.Run("pool stats without redis", func(t *testing.T) {
		status, _ := do(t, healthApp(), http.MethodGet, "/health/cache", "")
		assert.Equal(t, http.StatusNotFound, status)
	})
}
