package notification

import (
	"context"
	"testing"

	"rentme/internal/models"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testVendor() *models.Vendor {
	acct := "acct_1"
	return &models.Vendor{ID: "v1", Email: "shop@example.com", BusinessName: "Bob's Tools", StripeAccountID: &acct}
}

func TestLogNotifier(t *testing.T) {
	assert.NoError(t, NewLogNotifier().OnboardingCompleted(context.Background(), testVendor()))
}

func TestSMTPNotifier_OnboardingCompleted(t *testing.T) {
	n := NewSMTPNotifier(SMTPConfig{Host: "smtp.example.com", Port: "587", User: "noreply@rentme.co"})

	var gotFrom string
	var gotTo []string
	var gotMsg string
	n.send = func(ctx context.Context, from string, to []string, msg []byte) error {
		gotFrom, gotTo, gotMsg = from, to, string(msg)
		return nil
	}

	require.NoError(t, n.OnboardingCompleted(context.Background(), testVendor()))

	assert.Equal(t, "noreply@rentme.co", gotFrom)
	assert.Equal(t, []string{DefaultRecipient}, gotTo)
	assert.Contains(t, gotMsg, "From: \"RentMe Notifications\" <noreply@rentme.co>\r\n")
	assert.Contains(t, gotMsg, "Subject: Vendor onboarding complete: Bob's Tools\r\n")
	assert.Contains(t, gotMsg, "Account: acct_1")
}

func TestSMTPNotifier_SendFailure(t *testing.T) {
	n := NewSMTPNotifier(SMTPConfig{Host: "smtp.example.com", Port: "587", To: "ops@rentme.co"})
	n.send = func(context.Context, string, []string, []byte) error {
		return errors.New("connection refused")
	}

	err := n.OnboardingCompleted(context.Background(), testVendor())
	assert.EqualError(t, err, "send onboarding email: connection refused")
}

func TestBuildMessage_StripsHeaderInjection(t *testing.T) {
	msg := string(buildMessage("a@b.co", "c@d.co", "hi\r\nBcc: evil@x.co", "body"))
	assert.Contains(t, msg, "Subject: hi  Bcc: evil@x.co\r\n")
	assert.NotContains(t, msg, "\r\nBcc:")
}
