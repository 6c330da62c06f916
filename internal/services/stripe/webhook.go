package stripe

import (
	"encoding/json"

	"rentme/internal/services/payout"

	"github.com/pkg/errors"
	stripeapi "github.com/stripe/stripe-go/v72"
	"github.com/stripe/stripe-go/v72/webhook"
)

const EventAccountUpdated = "account.updated"

// ErrInvalidSignature is returned for payloads that fail verification.
var ErrInvalidSignature = errors.New("invalid webhook signature")

type WebhookVerifier struct {
	secret string
}

func NewWebhookVerifier(secret string) *WebhookVerifier {
	return &WebhookVerifier{secret: secret}
}

// ParseAccountEvent verifies the payload and returns the account carried by
// an account.updated event. ok is false for any other event type.
func (w *WebhookVerifier) ParseAccountEvent(payload []byte, signature string) (account *payout.Account, ok bool, err error) {
	event, err := webhook.ConstructEvent(payload, signature, w.secret)
	if err != nil {
		return nil, false, errors.Wrap(ErrInvalidSignature, err.Error())
	}
	if event.Type != EventAccountUpdated {
		return nil, false, nil
	}
	if event.Data == nil || len(event.Data.Raw) == 0 {
		return nil, false, errors.New("account.updated event without data")
	}

	var acct stripeapi.Account
	if err := json.Unmarshal(event.Data.Raw, &acct); err != nil {
		return nil, false, errors.Wrap(err, "decode account")
	}
	return toAccount(&acct), true, nil
}
