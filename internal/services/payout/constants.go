package payout

import "time"

// Stripe Connect account defaults
const (
	DefaultCountry      = "US"
	DefaultBusinessType = "individual"
	// MCC 7394: equipment, tool, furniture and appliance rental and leasing
	EquipmentRentalMCC = "7394"
	MetadataVendorID   = "vendorId"
	FallbackCurrency   = "usd"
)

// Hosted onboarding return paths
const (
	PaymentsPage     = "/payments.html"
	RefreshQuery     = "stripe_refresh=true"
	ReturnQuery      = "stripe_onboarding=complete"
	DefaultBaseURL   = "http://localhost:3000"
	DefaultLockTTL   = 30 * time.Second
	ProvisionLockKey = "provision:"
)

// Operation names used for metrics and tracing
const (
	OpProvision = "provision_and_link"
	OpStatus    = "get_status"
	OpLoginLink = "issue_login_link"
	OpReconcile = "reconcile_account"
)
