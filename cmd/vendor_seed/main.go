// Command vendor_seed creates or refreshes a vendor record, for local
// onboarding runs against Stripe test mode.
package main

import (
	"context"
	"errors"
	"log"
	"os"
	"time"

	"rentme/internal/config"
	"rentme/internal/models"
	"rentme/internal/repositories"
	"rentme/internal/utils"
)

func main() {
	config.LoadEnv()
	cfg := config.Load()

	vendorID := os.Getenv("SEED_VENDOR_ID")
	vendorEmail := os.Getenv("SEED_VENDOR_EMAIL")
	businessName := os.Getenv("SEED_BUSINESS_NAME")

	if vendorID == "" || vendorEmail == "" {
		log.Fatal("SEED_VENDOR_ID and SEED_VENDOR_EMAIL must be set in environment")
	}

	db, err := repositories.InitDB(cfg, repositories.PoolConfigFromEnv())
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer repositories.CloseDB(db)

	ctx := context.Background()
	repo := repositories.NewVendorRepository(db)

	existing, err := repo.GetByID(ctx, vendorID)
	switch {
	case err == nil:
		fields := map[string]interface{}{"email": vendorEmail}
		if businessName != "" {
			fields["business_name"] = businessName
		}
		if err := repo.Update(ctx, vendorID, fields); err != nil {
			log.Fatalf("Failed to update vendor: %v", err)
		}
		log.Printf("Vendor %s already exists (account %q), details refreshed", vendorID, existing.AccountID())
	case errors.Is(err, repositories.ErrVendorNotFound):
		vendor := &models.Vendor{
			ID:           vendorID,
			Email:        vendorEmail,
			BusinessName: businessName,
		}
		if err := repo.Create(ctx, vendor); err != nil {
			log.Fatalf("Failed to create vendor: %v", err)
		}
		log.Printf("✅ Vendor %s created successfully!", vendorID)
	default:
		log.Fatalf("Failed to look up vendor: %v", err)
	}

	if cfg.JWTSecret != "" {
		token, err := utils.GenerateVendorToken(cfg.JWTSecret, vendorID, vendorEmail, 24*time.Hour)
		if err != nil {
			log.Fatalf("Failed to issue vendor token: %v", err)
		}
		log.Printf("Vendor session token (24h): %s", token)
	}
}
