package payout

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"rentme/internal/models"
	"rentme/internal/repositories"
	"rentme/internal/utils/validation"

	"github.com/pkg/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

var tracer = otel.Tracer("payout")

type service struct {
	store    VendorStore
	provider AccountProvider
	locker   Locker
	notifier Notifier
	config   Config
	metrics  MetricsCollector
}

// NewService creates a new payout service. locker, notifier and metrics are
// optional.
func NewService(
	store VendorStore,
	provider AccountProvider,
	locker Locker,
	notifier Notifier,
	config Config,
	metrics MetricsCollector,
) Service {
	if store == nil {
		panic("vendor store is required")
	}
	if provider == nil {
		panic("account provider is required")
	}

	if config.BaseURL == "" {
		config.BaseURL = DefaultBaseURL
	}
	config.BaseURL = strings.TrimRight(config.BaseURL, "/")
	if config.Country == "" {
		config.Country = DefaultCountry
	}
	if config.BusinessType == "" {
		config.BusinessType = DefaultBusinessType
	}
	if config.MCC == "" {
		config.MCC = EquipmentRentalMCC
	}
	if config.FallbackCurrency == "" {
		config.FallbackCurrency = FallbackCurrency
	}
	if config.LockTTL == 0 {
		config.LockTTL = DefaultLockTTL
	}

	if notifier == nil {
		notifier = noopNotifier{}
	}
	if metrics == nil {
		metrics = &NoopMetricsCollector{}
	}

	return &service{
		store:    store,
		provider: provider,
		locker:   locker,
		notifier: notifier,
		config:   config,
		metrics:  metrics,
	}
}

func (s *service) ProvisionAndLink(ctx context.Context, input ProvisionInput) (_ *ProvisionResult, err error) {
	ctx, span := tracer.Start(ctx, "Payout.Service.ProvisionAndLink")
	defer span.End()
	defer s.observe(OpProvision, time.Now(), &err)

	input.VendorID = strings.TrimSpace(input.VendorID)
	input.Email = strings.TrimSpace(input.Email)

	v := validation.New()
	v.Required(
		validation.Field{Name: "vendorId", Value: input.VendorID},
		validation.Field{Name: "email", Value: input.Email},
	)
	if v.Valid() {
		v.Check(validation.IsEmail(input.Email), "email", "invalid email address")
	}
	if !v.Valid() {
		return nil, validationError(v.Error())
	}
	span.SetAttributes(attribute.String("VendorID", input.VendorID))

	vendor, err := s.loadVendor(ctx, input.VendorID)
	if err != nil {
		return nil, err
	}

	accountID := vendor.AccountID()
	if accountID == "" {
		accountID, err = s.provisionAccount(ctx, input)
		if err != nil {
			span.RecordError(errors.Wrap(err, "provisionAccount failed"))
			return nil, err
		}
	}
	span.SetAttributes(attribute.String("AccountID", accountID))

	url, err := s.provider.CreateOnboardingLink(ctx, accountID, s.pageURL(RefreshQuery), s.pageURL(ReturnQuery))
	if err != nil {
		span.RecordError(errors.Wrap(err, "CreateOnboardingLink failed"))
		return nil, providerError("create onboarding link", err)
	}

	return &ProvisionResult{URL: url, AccountID: accountID}, nil
}

// provisionAccount creates and links the connected account under the
// per-vendor lock. The store write is a compare-and-swap, so a lost race
// yields the winner's account id.
func (s *service) provisionAccount(ctx context.Context, input ProvisionInput) (string, error) {
	release, err := s.acquire(ctx, input.VendorID)
	if err != nil {
		return "", err
	}
	defer release()

	// re-read under the lock
	vendor, err := s.loadVendor(ctx, input.VendorID)
	if err != nil {
		return "", err
	}
	if vendor.HasStripeAccount() {
		return vendor.AccountID(), nil
	}

	businessName := strings.TrimSpace(input.BusinessName)
	if businessName == "" {
		businessName = vendor.BusinessName
	}

	accountID, err := s.provider.CreateAccount(ctx, CreateAccountParams{
		VendorID:     vendor.ID,
		Email:        input.Email,
		Country:      s.config.Country,
		BusinessType: s.config.BusinessType,
		BusinessName: businessName,
		MCC:          s.config.MCC,
		Metadata:     map[string]string{MetadataVendorID: vendor.ID},
	})
	if err != nil {
		return "", providerError("create account", err)
	}

	linked, err := s.store.SetStripeAccountIfAbsent(ctx, vendor.ID, accountID)
	if err != nil {
		return "", providerError("save account id", err)
	}
	if !linked {
		winner, err := s.loadVendor(ctx, vendor.ID)
		if err != nil {
			return "", err
		}
		if !winner.HasStripeAccount() {
			return "", providerError("save account id", fmt.Errorf("vendor %s was not updated", vendor.ID))
		}
		log.Printf("⚠️ Vendor %s already linked to %s, account %s is orphaned", vendor.ID, winner.AccountID(), accountID)
		return winner.AccountID(), nil
	}

	s.metrics.RecordAccountCreated(vendor.ID)
	log.Printf("✅ Created Stripe Connect account %s for vendor %s", accountID, vendor.ID)
	return accountID, nil
}

func (s *service) GetStatus(ctx context.Context, vendorID string) (_ *StatusReport, err error) {
	ctx, span := tracer.Start(ctx, "Payout.Service.GetStatus")
	defer span.End()
	defer s.observe(OpStatus, time.Now(), &err)

	vendorID = strings.TrimSpace(vendorID)
	if vendorID == "" {
		return nil, validationError("vendorId: required")
	}
	span.SetAttributes(attribute.String("VendorID", vendorID))

	vendor, err := s.loadVendor(ctx, vendorID)
	if err != nil {
		return nil, err
	}

	// never started onboarding
	if !vendor.HasStripeAccount() {
		return &StatusReport{}, nil
	}
	accountID := vendor.AccountID()

	account, err := s.provider.RetrieveAccount(ctx, accountID)
	if err != nil {
		span.RecordError(errors.Wrap(err, "RetrieveAccount failed"))
		return nil, providerError("retrieve account", err)
	}

	var balance *Balance
	if account.ChargesEnabled {
		balance = s.fetchBalance(ctx, accountID)
	}

	complete := account.OnboardingComplete()
	if complete && !vendor.StripeOnboardingComplete {
		if err := s.markComplete(ctx, vendor); err != nil {
			return nil, err
		}
	}

	detailsSubmitted := account.DetailsSubmitted
	return &StatusReport{
		HasAccount:         true,
		AccountID:          accountID,
		OnboardingComplete: complete,
		ChargesEnabled:     account.ChargesEnabled,
		PayoutsEnabled:     account.PayoutsEnabled,
		DetailsSubmitted:   &detailsSubmitted,
		Requirements:       account.Requirements,
		Balance:            balance,
		DefaultCurrency:    account.DefaultCurrency,
	}, nil
}

// fetchBalance never fails the status report.
func (s *service) fetchBalance(ctx context.Context, accountID string) *Balance {
	snapshot, err := s.provider.RetrieveBalance(ctx, accountID)
	if err != nil {
		log.Printf("⚠️ Error fetching balance for %s: %v", accountID, err)
		s.metrics.RecordError(OpStatus, "balance_unavailable")
		return nil
	}
	return SummarizeBalance(snapshot, s.config.FallbackCurrency)
}

func (s *service) IssueLoginLink(ctx context.Context, vendorID string) (_ *LoginLinkResult, err error) {
	ctx, span := tracer.Start(ctx, "Payout.Service.IssueLoginLink")
	defer span.End()
	defer s.observe(OpLoginLink, time.Now(), &err)

	vendorID = strings.TrimSpace(vendorID)
	if vendorID == "" {
		return nil, validationError("vendorId: required")
	}

	vendor, err := s.loadVendor(ctx, vendorID)
	if err != nil {
		return nil, err
	}
	if !vendor.HasStripeAccount() {
		return nil, ErrNoPaymentAccount
	}

	url, err := s.provider.CreateLoginLink(ctx, vendor.AccountID())
	if err != nil {
		span.RecordError(errors.Wrap(err, "CreateLoginLink failed"))
		return nil, providerError("create login link", err)
	}
	return &LoginLinkResult{URL: url}, nil
}

// markComplete applies the onboarding ratchet. Only the call that flips the
// stored flag records metrics and notifies.
func (s *service) markComplete(ctx context.Context, vendor *models.Vendor) error {
	flipped, err := s.store.MarkOnboardingComplete(ctx, vendor.ID)
	if err != nil {
		return providerError("mark onboarding complete", err)
	}
	if !flipped {
		return nil
	}

	vendor.StripeOnboardingComplete = true
	s.metrics.RecordOnboardingCompleted(vendor.ID)
	log.Printf("✅ Vendor %s completed Stripe onboarding (%s)", vendor.ID, vendor.AccountID())

	if err := s.notifier.OnboardingCompleted(ctx, vendor); err != nil {
		log.Printf("⚠️ Failed to send onboarding notification for vendor %s: %v", vendor.ID, err)
	}
	return nil
}

func (s *service) loadVendor(ctx context.Context, vendorID string) (*models.Vendor, error) {
	vendor, err := s.store.GetByID(ctx, vendorID)
	if err != nil {
		if errors.Is(err, repositories.ErrVendorNotFound) {
			return nil, ErrVendorNotFound
		}
		return nil, providerError("load vendor", err)
	}
	return vendor, nil
}

func (s *service) acquire(ctx context.Context, vendorID string) (func(), error) {
	if s.locker == nil {
		return func() {}, nil
	}
	release, acquired, err := s.locker.Acquire(ctx, ProvisionLockKey+vendorID, s.config.LockTTL)
	if err != nil {
		return nil, providerError("acquire provisioning lock", err)
	}
	if !acquired {
		return nil, ErrProvisioningInProgress
	}
	return release, nil
}

func (s *service) pageURL(query string) string {
	return s.config.BaseURL + PaymentsPage + "?" + query
}

func (s *service) observe(op string, start time.Time, err *error) {
	s.metrics.RecordOperationDuration(op, time.Since(start))
	if *err != nil {
		s.metrics.RecordError(op, errorType(*err))
		s.metrics.RecordOperationResult(op, "error")
		return
	}
	s.metrics.RecordOperationResult(op, "success")
}

func errorType(err error) string {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Code
	}
	var providerErr *ProviderError
	if errors.As(err, &providerErr) {
		return "PROVIDER_ERROR"
	}
	return "UNKNOWN"
}

// SummarizeBalance totals each bucket and converts minor units to major
// units. The currency is the first available entry's, else fallback.
func SummarizeBalance(snapshot *BalanceSnapshot, fallback string) *Balance {
	if snapshot == nil {
		return nil
	}
	currency := fallback
	if len(snapshot.Available) > 0 && snapshot.Available[0].Currency != "" {
		currency = snapshot.Available[0].Currency
	}
	return &Balance{
		Available: toMajorUnits(sumAmounts(snapshot.Available)),
		Pending:   toMajorUnits(sumAmounts(snapshot.Pending)),
		Currency:  currency,
	}
}

func sumAmounts(amounts []Amount) int64 {
	var total int64
	for _, a := range amounts {
		total += a.Value
	}
	return total
}

func toMajorUnits(minor int64) float64 {
	return float64(minor) / 100
}

type noopNotifier struct{}

func (noopNotifier) OnboardingCompleted(context.Context, *models.Vendor) error { return nil }
