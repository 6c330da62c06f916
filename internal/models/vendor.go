package models

import "time"

// Vendor is a marketplace seller. The record is created at signup by the
// auth system; this service only maintains its Stripe Connect linkage.
type Vendor struct {
	ID                       string     `gorm:"primaryKey;size:128" json:"id"`
	Email                    string     `gorm:"index" json:"email"`
	BusinessName             string     `json:"businessName"`
	StripeAccountID          *string    `gorm:"uniqueIndex;size:64" json:"stripeAccountId,omitempty"`
	StripeOnboardingComplete bool       `gorm:"not null;default:false" json:"stripeOnboardingComplete"`
	OnboardingCompletedAt    *time.Time `json:"onboardingCompletedAt,omitempty"`
	CreatedAt                time.Time  `json:"createdAt"`
	UpdatedAt                time.Time  `json:"updatedAt"`
}

// HasStripeAccount reports whether a connected account was ever provisioned.
func (v *Vendor) HasStripeAccount() bool {
	return v.StripeAccountID != nil && *v.StripeAccountID != ""
}

// AccountID returns the linked Stripe account id, or "" when none exists.
func (v *Vendor) AccountID() string {
	if v.StripeAccountID == nil {
		return ""
	}
	return *v.StripeAccountID
}
