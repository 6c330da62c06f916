package notification

import (
	"context"
	"log"

	"rentme/internal/models"
)

// LogNotifier is a minimal notifier that only logs.
type LogNotifier struct{}

// NewLogNotifier creates a new logging notifier.
func NewLogNotifier() *LogNotifier { return &LogNotifier{} }

// OnboardingCompleted logs that a vendor finished onboarding.
func (n *LogNotifier) OnboardingCompleted(ctx context.Context, vendor *models.Vendor) error {
	log.Printf("📣 Vendor %s (%s) completed Stripe onboarding, account %s", vendor.ID, vendor.Email, vendor.AccountID())
	return nil
}
