/*
Package payout manages a vendor's Stripe Connect lifecycle: provisioning the
connected account, sending the vendor through hosted onboarding, reconciling
the live capability flags into the vendor record and issuing dashboard links.

Usage:

	svc := payout.NewService(vendorRepo, stripeProvider, locker, notifier,
		payout.Config{BaseURL: "https://rentme.co"}, nil)

	// Provision (idempotent) and get an onboarding link
	res, err := svc.ProvisionAndLink(ctx, payout.ProvisionInput{
		VendorID: "v1", Email: "owner@acme.co", BusinessName: "Acme Rentals",
	})

	// Poll the live account state
	report, err := svc.GetStatus(ctx, "v1")

	// Express dashboard link for an onboarded vendor
	link, err := svc.IssueLoginLink(ctx, "v1")

Reconciliation:

The vendor's stripeOnboardingComplete field is a cache of the provider's
capability flags. It is recomputed from the live account on every status check
and on every account.updated webhook, and it only ever moves false -> true.

Error Handling:

Operations return *DomainError values (ErrValidation, ErrVendorNotFound,
ErrNoPaymentAccount, ErrProvisioningInProgress) or a *ProviderError wrapping
the failing downstream call. A balance lookup failure inside GetStatus is
logged and reported as a nil balance.
*/
package payout
