// Package stripe adapts the Stripe Connect API to the payout service.
package stripe

import (
	"context"

	"rentme/internal/services/payout"

	"github.com/pkg/errors"
	stripeapi "github.com/stripe/stripe-go/v72"
	"github.com/stripe/stripe-go/v72/client"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

var tracer = otel.Tracer("stripe")

// Provider implements payout.AccountProvider on a Stripe API client.
type Provider struct {
	api *client.API
}

var _ payout.AccountProvider = (*Provider)(nil)

// NewProvider builds a provider with its own API client, so the secret key
// is never written to the package-level stripe.Key.
func NewProvider(secretKey string) *Provider {
	if secretKey == "" {
		panic("stripe secret key is required")
	}
	return &Provider{api: client.New(secretKey, nil)}
}

func (p *Provider) CreateAccount(ctx context.Context, in payout.CreateAccountParams) (string, error) {
	ctx, span := tracer.Start(ctx, "Stripe.CreateAccount")
	defer span.End()
	span.SetAttributes(attribute.String("VendorID", in.VendorID))

	params := accountParams(in)
	params.Context = ctx

	acct, err := p.api.Account.New(params)
	if err != nil {
		err = apiError(err)
		span.RecordError(errors.Wrap(err, "Account.New failed"))
		return "", err
	}
	return acct.ID, nil
}

func (p *Provider) CreateOnboardingLink(ctx context.Context, accountID, refreshURL, returnURL string) (string, error) {
	ctx, span := tracer.Start(ctx, "Stripe.CreateOnboardingLink")
	defer span.End()
	span.SetAttributes(attribute.String("AccountID", accountID))

	params := &stripeapi.AccountLinkParams{
		Account:    stripeapi.String(accountID),
		RefreshURL: stripeapi.String(refreshURL),
		ReturnURL:  stripeapi.String(returnURL),
		Type:       stripeapi.String(string(stripeapi.AccountLinkTypeAccountOnboarding)),
	}
	params.Context = ctx

	link, err := p.api.AccountLinks.New(params)
	if err != nil {
		err = apiError(err)
		span.RecordError(errors.Wrap(err, "AccountLinks.New failed"))
		return "", err
	}
	return link.URL, nil
}

func (p *Provider) CreateLoginLink(ctx context.Context, accountID string) (string, error) {
	ctx, span := tracer.Start(ctx, "Stripe.CreateLoginLink")
	defer span.End()
	span.SetAttributes(attribute.String("AccountID", accountID))

	params := &stripeapi.LoginLinkParams{Account: stripeapi.String(accountID)}
	params.Context = ctx

	link, err := p.api.LoginLinks.New(params)
	if err != nil {
		err = apiError(err)
		span.RecordError(errors.Wrap(err, "LoginLinks.New failed"))
		return "", err
	}
	return link.URL, nil
}

func (p *Provider) RetrieveAccount(ctx context.Context, accountID string) (*payout.Account, error) {
	ctx, span := tracer.Start(ctx, "Stripe.RetrieveAccount")
	defer span.End()
	span.SetAttributes(attribute.String("AccountID", accountID))

	params := &stripeapi.AccountParams{}
	params.Context = ctx

	acct, err := p.api.Account.GetByID(accountID, params)
	if err != nil {
		err = apiError(err)
		span.RecordError(errors.Wrap(err, "Account.GetByID failed"))
		return nil, err
	}
	return toAccount(acct), nil
}

// RetrieveBalance reads the connected account's balance via the
// Stripe-Account header.
func (p *Provider) RetrieveBalance(ctx context.Context, accountID string) (*payout.BalanceSnapshot, error) {
	ctx, span := tracer.Start(ctx, "Stripe.RetrieveBalance")
	defer span.End()
	span.SetAttributes(attribute.String("AccountID", accountID))

	params := &stripeapi.BalanceParams{}
	params.Context = ctx
	params.SetStripeAccount(accountID)

	bal, err := p.api.Balance.Get(params)
	if err != nil {
		err = apiError(err)
		span.RecordError(errors.Wrap(err, "Balance.Get failed"))
		return nil, err
	}
	return toBalanceSnapshot(bal), nil
}
