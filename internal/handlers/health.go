package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

const healthTimeout = 2 * time.Second

// Check is a named backend probe.
type Check struct {
	Name string
	Ping func(ctx context.Context) error
}

type HealthHandler struct {
	checks []Check
	redis  *redis.Client
}

// NewHealthHandler builds the health endpoints. redis may be nil.
func NewHealthHandler(redis *redis.Client, checks ...Check) *HealthHandler {
	return &HealthHandler{checks: checks, redis: redis}
}

func (h *HealthHandler) HealthCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), healthTimeout)
	defer cancel()

	status := "ok"
	services := fiber.Map{}
	for _, check := range h.checks {
		if err := check.Ping(ctx); err != nil {
			services[check.Name] = "error: " + err.Error()
			status = "degraded"
			continue
		}
		services[check.Name] = "connected"
	}

	code := fiber.StatusOK
	if status != "ok" {
		code = fiber.StatusServiceUnavailable
	}
	return c.Status(code).JSON(fiber.Map{
		"status":   status,
		"version":  "1.0.0",
		"services": services,
	})
}

func (h *HealthHandler) PoolStats(c *fiber.Ctx) error {
	if h.redis == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "redis not configured"})
	}
	poolStats := h.redis.PoolStats()

	return c.JSON(fiber.Map{
		"pool_stats": fiber.Map{
			"hits":        poolStats.Hits,
			"misses":      poolStats.Misses,
			"timeouts":    poolStats.Timeouts,
			"total_conns": poolStats.TotalConns,
			"idle_conns":  poolStats.IdleConns,
			"stale_conns": poolStats.StaleConns,
		},
	})
}
