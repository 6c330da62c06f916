package payout

import (
	"context"
	"log"
	"time"

	"github.com/pkg/errors"
	"go.opentelemetry.io/otel/attribute"
)

// ReconcileAccount applies a pushed account update. Updates that cannot be
// tied to a vendor holding this exact account are acknowledged and dropped.
func (s *service) ReconcileAccount(ctx context.Context, account *Account) (err error) {
	ctx, span := tracer.Start(ctx, "Payout.Service.ReconcileAccount")
	defer span.End()
	defer s.observe(OpReconcile, time.Now(), &err)

	if account == nil || account.ID == "" {
		return validationError("account: required")
	}
	span.SetAttributes(attribute.String("AccountID", account.ID))

	vendorID := account.Metadata[MetadataVendorID]
	if vendorID == "" {
		log.Printf("Ignoring update for account %s: no %s metadata", account.ID, MetadataVendorID)
		return nil
	}

	vendor, err := s.loadVendor(ctx, vendorID)
	if err != nil {
		if errors.Is(err, ErrVendorNotFound) {
			log.Printf("Ignoring update for account %s: vendor %s not found", account.ID, vendorID)
			return nil
		}
		span.RecordError(errors.Wrap(err, "loadVendor failed"))
		return err
	}

	if vendor.AccountID() != account.ID {
		log.Printf("Ignoring update for account %s: vendor %s is linked to %q", account.ID, vendorID, vendor.AccountID())
		return nil
	}

	if account.OnboardingComplete() && !vendor.StripeOnboardingComplete {
		return s.markComplete(ctx, vendor)
	}
	return nil
}
