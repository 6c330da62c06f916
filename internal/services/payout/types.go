package payout

import "time"

// Config holds settings for account creation and onboarding links.
type Config struct {
	BaseURL          string
	Country          string
	BusinessType     string
	MCC              string
	FallbackCurrency string
	LockTTL          time.Duration
}

// ProvisionInput is the create-connect-account request.
type ProvisionInput struct {
	VendorID     string `json:"vendorId"`
	Email        string `json:"email"`
	BusinessName string `json:"businessName"`
}

type ProvisionResult struct {
	URL       string
	AccountID string
}

type LoginLinkResult struct {
	URL string
}

// CreateAccountParams describes a new Express connected account.
type CreateAccountParams struct {
	VendorID     string
	Email        string
	Country      string
	BusinessType string
	BusinessName string
	MCC          string
	Metadata     map[string]string
}

// Account is the provider's live view of a connected account.
type Account struct {
	ID               string
	ChargesEnabled   bool
	PayoutsEnabled   bool
	DetailsSubmitted bool
	Requirements     *Requirements
	DefaultCurrency  string
	Metadata         map[string]string
}

// OnboardingComplete is true only when both capabilities are live.
func (a *Account) OnboardingComplete() bool {
	return a.ChargesEnabled && a.PayoutsEnabled
}

// Requirements lists the information the provider still needs.
type Requirements struct {
	CurrentDeadline     int64              `json:"current_deadline,omitempty"`
	CurrentlyDue        []string           `json:"currently_due"`
	EventuallyDue       []string           `json:"eventually_due"`
	PastDue             []string           `json:"past_due"`
	PendingVerification []string           `json:"pending_verification"`
	DisabledReason      string             `json:"disabled_reason,omitempty"`
	Errors              []RequirementError `json:"errors"`
}

type RequirementError struct {
	Code        string `json:"code"`
	Reason      string `json:"reason"`
	Requirement string `json:"requirement"`
}

// Amount is a balance entry in minor currency units.
type Amount struct {
	Value    int64
	Currency string
}

// BalanceSnapshot is the connected account's balance buckets.
type BalanceSnapshot struct {
	Available []Amount
	Pending   []Amount
}

// Balance is the aggregated balance in major currency units.
type Balance struct {
	Available float64 `json:"available"`
	Pending   float64 `json:"pending"`
	Currency  string  `json:"currency"`
}

// StatusReport is the account-status response.
type StatusReport struct {
	HasAccount         bool          `json:"hasStripeAccount"`
	AccountID          string        `json:"accountId,omitempty"`
	OnboardingComplete bool          `json:"onboardingComplete"`
	ChargesEnabled     bool          `json:"chargesEnabled"`
	PayoutsEnabled     bool          `json:"payoutsEnabled"`
	DetailsSubmitted   *bool         `json:"detailsSubmitted,omitempty"`
	Requirements       *Requirements `json:"requirements,omitempty"`
	Balance            *Balance      `json:"balance"`
	DefaultCurrency    string        `json:"defaultCurrency,omitempty"`
}
