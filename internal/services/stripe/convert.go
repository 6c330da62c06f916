package stripe

import (
	"fmt"

	"rentme/internal/services/payout"

	"github.com/pkg/errors"
	stripeapi "github.com/stripe/stripe-go/v72"
)

// Error is a Stripe API failure reduced to its readable message.
type Error struct {
	StatusCode int
	Code       string
	Message    string
	cause      error
}

func (e *Error) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s (%s)", e.Message, e.Code)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.cause }

// apiError replaces the JSON dump stripe-go uses as its error text.
func apiError(err error) error {
	var se *stripeapi.Error
	if errors.As(err, &se) && se.Msg != "" {
		return &Error{
			StatusCode: se.HTTPStatusCode,
			Code:       string(se.Code),
			Message:    se.Msg,
			cause:      err,
		}
	}
	return err
}

func accountParams(in payout.CreateAccountParams) *stripeapi.AccountParams {
	params := &stripeapi.AccountParams{
		Type:         stripeapi.String(string(stripeapi.AccountTypeExpress)),
		Country:      stripeapi.String(in.Country),
		Email:        stripeapi.String(in.Email),
		BusinessType: stripeapi.String(in.BusinessType),
		Capabilities: &stripeapi.AccountCapabilitiesParams{
			CardPayments: &stripeapi.AccountCapabilitiesCardPaymentsParams{
				Requested: stripeapi.Bool(true),
			},
			Transfers: &stripeapi.AccountCapabilitiesTransfersParams{
				Requested: stripeapi.Bool(true),
			},
		},
		BusinessProfile: &stripeapi.AccountBusinessProfileParams{
			MCC: stripeapi.String(in.MCC),
		},
	}
	if in.BusinessName != "" {
		params.BusinessProfile.Name = stripeapi.String(in.BusinessName)
	}
	for k, v := range in.Metadata {
		params.AddMetadata(k, v)
	}
	return params
}

func toAccount(acct *stripeapi.Account) *payout.Account {
	if acct == nil {
		return nil
	}
	out := &payout.Account{
		ID:               acct.ID,
		ChargesEnabled:   acct.ChargesEnabled,
		PayoutsEnabled:   acct.PayoutsEnabled,
		DetailsSubmitted: acct.DetailsSubmitted,
		DefaultCurrency:  string(acct.DefaultCurrency),
		Metadata:         acct.Metadata,
	}
	if r := acct.Requirements; r != nil {
		req := &payout.Requirements{
			CurrentDeadline:     r.CurrentDeadline,
			CurrentlyDue:        nonNil(r.CurrentlyDue),
			EventuallyDue:       nonNil(r.EventuallyDue),
			PastDue:             nonNil(r.PastDue),
			PendingVerification: nonNil(r.PendingVerification),
			DisabledReason:      string(r.DisabledReason),
			Errors:              []payout.RequirementError{},
		}
		for _, e := range r.Errors {
			if e == nil {
				continue
			}
			req.Errors = append(req.Errors, payout.RequirementError{
				Code:        string(e.Code),
				Reason:      e.Reason,
				Requirement: e.Requirement,
			})
		}
		out.Requirements = req
	}
	return out
}

func toBalanceSnapshot(bal *stripeapi.Balance) *payout.BalanceSnapshot {
	snapshot := &payout.BalanceSnapshot{}
	if bal == nil {
		return snapshot
	}
	snapshot.Available = toAmounts(bal.Available)
	snapshot.Pending = toAmounts(bal.Pending)
	return snapshot
}

func toAmounts(in []*stripeapi.Amount) []payout.Amount {
	out := make([]payout.Amount, 0, len(in))
	for _, a := range in {
		if a == nil {
			continue
		}
		out = append(out, payout.Amount{Value: a.Value, Currency: string(a.Currency)})
	}
	return out
}

// nonNil keeps empty lists as [] in responses.
func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
