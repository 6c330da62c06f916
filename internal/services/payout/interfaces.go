package payout

import (
	"context"
	"time"

	"rentme/internal/models"
)

// Service defines the vendor payout account operations.
type Service interface {
	// ProvisionAndLink creates the vendor's connected account on first use
	// and returns a fresh hosted onboarding link.
	ProvisionAndLink(ctx context.Context, input ProvisionInput) (*ProvisionResult, error)

	// GetStatus reconciles the vendor record against the live account.
	GetStatus(ctx context.Context, vendorID string) (*StatusReport, error)

	// IssueLoginLink returns a single-use Express dashboard link.
	IssueLoginLink(ctx context.Context, vendorID string) (*LoginLinkResult, error)

	// ReconcileAccount applies a pushed account update to the owning vendor.
	ReconcileAccount(ctx context.Context, account *Account) error
}

// VendorStore is the subset of the vendor repository the service needs.
type VendorStore interface {
	GetByID(ctx context.Context, id string) (*models.Vendor, error)
	SetStripeAccountIfAbsent(ctx context.Context, id, accountID string) (bool, error)
	MarkOnboardingComplete(ctx context.Context, id string) (bool, error)
}

// AccountProvider is the external connected-account provider.
type AccountProvider interface {
	CreateAccount(ctx context.Context, params CreateAccountParams) (string, error)
	CreateOnboardingLink(ctx context.Context, accountID, refreshURL, returnURL string) (string, error)
	CreateLoginLink(ctx context.Context, accountID string) (string, error)
	RetrieveAccount(ctx context.Context, accountID string) (*Account, error)
	RetrieveBalance(ctx context.Context, accountID string) (*BalanceSnapshot, error)
}

// Locker serializes provisioning per vendor.
type Locker interface {
	Acquire(ctx context.Context, key string, ttl time.Duration) (release func(), acquired bool, err error)
}

// Notifier is told when a vendor's onboarding first becomes complete.
type Notifier interface {
	OnboardingCompleted(ctx context.Context, vendor *models.Vendor) error
}
