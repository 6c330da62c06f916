// Package main is the entry point for the vendor payouts service.
// It initializes all dependencies, sets up the HTTP server,
// and starts the application.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"rentme/internal/config"
	"rentme/internal/handlers"
	"rentme/internal/middleware"
	"rentme/internal/repositories"
	"rentme/internal/repositories/cache"
	"rentme/internal/routes"
	"rentme/internal/services/notification"
	"rentme/internal/services/payout"
	"rentme/internal/services/stripe"
	"rentme/internal/telemetry"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

func main() {
	config.LoadEnv()
	cfg := config.Load()

	if cfg.StripeSecretKey == "" {
		log.Fatal("STRIPE_SECRET_KEY must be set")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := telemetry.Setup(ctx, cfg.OTLPEndpoint, cfg.ServiceName)
	if err != nil {
		log.Fatalf("Failed to set up tracing: %v", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(shutdownCtx); err != nil {
			log.Printf("⚠️ Failed to flush traces: %v", err)
		}
	}()

	// PostgreSQL
	db, err := repositories.InitDB(cfg, repositories.PoolConfigFromEnv())
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer repositories.CloseDB(db)

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("Failed to get database instance: %v", err)
	}
	go repositories.LogPoolStats(db, time.Minute, ctx.Done())

	// Redis
	redisClient := cache.NewRedisClient(&cache.RedisConfig{
		Host:     cfg.RedisHost,
		Port:     cfg.RedisPort,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Printf("⚠️ Failed to close Redis connection: %v", err)
		}
	}()
	if err := cache.HealthCheck(ctx, redisClient); err != nil {
		log.Printf("⚠️ %v; provisioning will fail until Redis is reachable", err)
	} else {
		log.Println("✅ Redis connected")
	}

	// Services
	var notifier payout.Notifier = notification.NewLogNotifier()
	if cfg.SMTPHost != "" {
		notifier = notification.NewSMTPNotifier(notification.SMTPConfig{
			Host:   cfg.SMTPHost,
			Port:   cfg.SMTPPort,
			User:   cfg.SMTPUser,
			Pass:   cfg.SMTPPass,
			Secure: cfg.SMTPSecure,
			To:     cfg.AdminEmail,
		})
	}

	payoutService := payout.NewService(
		repositories.NewVendorRepository(db),
		stripe.NewProvider(cfg.StripeSecretKey),
		cache.NewLocker(redisClient),
		notifier,
		payout.Config{
			BaseURL: cfg.BaseURL,
			Country: cfg.StripeCountry,
			LockTTL: cfg.ProvisionLockTTL,
		},
		&payout.NoopMetricsCollector{},
	)

	var events handlers.AccountEventParser
	if cfg.StripeWebhookSecret != "" {
		events = stripe.NewWebhookVerifier(cfg.StripeWebhookSecret)
	} else {
		log.Println("⚠️ STRIPE_WEBHOOK_SECRET not set, webhook endpoint disabled")
	}

	// Create Fiber app
	app := fiber.New()
	app.Use(recover.New())
	app.Use(middleware.CORS(middleware.DefaultCORSConfig))
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	routes.SetupRoutes(app, routes.Dependencies{
		Stripe: handlers.NewStripeHandler(payoutService, events),
		Health: handlers.NewHealthHandler(redisClient,
			handlers.Check{Name: "database", Ping: sqlDB.PingContext},
			handlers.Check{Name: "redis", Ping: func(ctx context.Context) error {
				return cache.HealthCheck(ctx, redisClient)
			}},
		),
		JWTSecret:        cfg.JWTSecret,
		ConnectRateLimit: cfg.ConnectRateLimit,
		WebhookEnabled:   events != nil,
	})

	go func() {
		<-ctx.Done()
		log.Println("Shutting down server...")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			log.Printf("⚠️ Server shutdown error: %v", err)
		}
	}()

	log.Printf("✅ Vendor payouts service listening on :%s (base URL %s)", cfg.Port, cfg.BaseURL)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Printf("Server stopped: %v", err)
	}
}
