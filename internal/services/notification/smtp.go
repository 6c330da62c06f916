package notification

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/smtp"
	"strings"
	"time"

	"rentme/internal/models"

	"github.com/pkg/errors"
)

const (
	DefaultRecipient = "support@rentme.co"
	senderName       = "RentMe Notifications"
	dialTimeout      = 10 * time.Second
)

type SMTPConfig struct {
	Host   string
	Port   string
	User   string
	Pass   string
	Secure bool // implicit TLS, usually port 465
	To     string
}

// SMTPNotifier mails the admin address when a vendor completes onboarding.
type SMTPNotifier struct {
	config SMTPConfig
	send   func(ctx context.Context, from string, to []string, msg []byte) error
}

func NewSMTPNotifier(config SMTPConfig) *SMTPNotifier {
	if config.Host == "" {
		panic("smtp host is required")
	}
	if config.To == "" {
		config.To = DefaultRecipient
	}
	n := &SMTPNotifier{config: config}
	n.send = n.deliver
	return n
}

func (n *SMTPNotifier) OnboardingCompleted(ctx context.Context, vendor *models.Vendor) error {
	name := vendor.BusinessName
	if name == "" {
		name = vendor.ID
	}
	subject := fmt.Sprintf("Vendor onboarding complete: %s", name)
	body := fmt.Sprintf(
		"Vendor %s (%s) finished Stripe Connect onboarding.\r\nAccount: %s\r\nCharges and payouts are enabled.\r\n",
		vendor.ID, vendor.Email, vendor.AccountID(),
	)

	msg := buildMessage(n.config.User, n.config.To, subject, body)
	if err := n.send(ctx, n.config.User, []string{n.config.To}, msg); err != nil {
		return errors.Wrap(err, "send onboarding email")
	}
	return nil
}

func buildMessage(from, to, subject, body string) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: \"%s\" <%s>\r\n", senderName, from)
	fmt.Fprintf(&b, "To: %s\r\n", to)
	fmt.Fprintf(&b, "Subject: %s\r\n", sanitizeHeader(subject))
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=\"utf-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(body)
	return []byte(b.String())
}

// sanitizeHeader strips line breaks so values cannot inject headers.
func sanitizeHeader(v string) string {
	return strings.NewReplacer("\r", " ", "\n", " ").Replace(v)
}

func (n *SMTPNotifier) deliver(ctx context.Context, from string, to []string, msg []byte) error {
	addr := net.JoinHostPort(n.config.Host, n.config.Port)
	dialer := &net.Dialer{Timeout: dialTimeout}

	var conn net.Conn
	var err error
	if n.config.Secure {
		conn, err = (&tls.Dialer{NetDialer: dialer, Config: &tls.Config{ServerName: n.config.Host}}).DialContext(ctx, "tcp", addr)
	} else {
		conn, err = dialer.DialContext(ctx, "tcp", addr)
	}
	if err != nil {
		return errors.Wrap(err, "dial smtp")
	}
	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}

	c, err := smtp.NewClient(conn, n.config.Host)
	if err != nil {
		conn.Close()
		return errors.Wrap(err, "smtp handshake")
	}
	defer c.Close()

	if !n.config.Secure {
		if ok, _ := c.Extension("STARTTLS"); ok {
			if err := c.StartTLS(&tls.Config{ServerName: n.config.Host}); err != nil {
				return errors.Wrap(err, "starttls")
			}
		}
	}
	if n.config.User != "" {
		if err := c.Auth(smtp.PlainAuth("", n.config.User, n.config.Pass, n.config.Host)); err != nil {
			return errors.Wrap(err, "smtp auth")
		}
	}

	if err := c.Mail(from); err != nil {
		return err
	}
	for _, rcpt := range to {
		if err := c.Rcpt(rcpt); err != nil {
			return err
		}
	}
	w, err := c.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write(msg); err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}
	return c.Quit()
}
