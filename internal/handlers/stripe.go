package handlers

import (
	"log"
	"strings"

	"rentme/internal/services/payout"
	"rentme/internal/utils/response"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
)

const (
	msgInvalidBody     = "Invalid request body"
	msgMissingCreate   = "Missing required fields: vendorId, email"
	msgMissingVendorID = "Missing required field: vendorId"
	msgVendorNotFound  = "Vendor not found"
	msgNoAccount       = "Vendor does not have a Stripe Connect account"
	msgBusy            = "Account setup already in progress, please retry"

	msgCreateFailed  = "Failed to create Stripe Connect account"
	msgStatusFailed  = "Failed to get Stripe account status"
	msgLoginFailed   = "Failed to create Stripe dashboard link"
	msgWebhookFailed = "Failed to process webhook"
)

// AccountEventParser verifies a provider webhook and extracts the account
// from an account.updated event.
type AccountEventParser interface {
	ParseAccountEvent(payload []byte, signature string) (*payout.Account, bool, error)
}

type StripeHandler struct {
	payoutService payout.Service
	events        AccountEventParser
}

func NewStripeHandler(payoutService payout.Service, events AccountEventParser) *StripeHandler {
	return &StripeHandler{
		payoutService: payoutService,
		events:        events,
	}
}

type vendorRequest struct {
	VendorID string `json:"vendorId"`
}

func (h *StripeHandler) CreateConnectAccount(c *fiber.Ctx) error {
	var input payout.ProvisionInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, msgInvalidBody)
	}
	if strings.TrimSpace(input.VendorID) == "" || strings.TrimSpace(input.Email) == "" {
		return response.BadRequest(c, msgMissingCreate)
	}

	result, err := h.payoutService.ProvisionAndLink(c.UserContext(), input)
	if err != nil {
		return writeError(c, err, msgCreateFailed)
	}

	return response.Success(c, fiber.Map{
		"success":   true,
		"url":       result.URL,
		"accountId": result.AccountID,
	})
}

func (h *StripeHandler) AccountStatus(c *fiber.Ctx) error {
	var input vendorRequest
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, msgInvalidBody)
	}
	if strings.TrimSpace(input.VendorID) == "" {
		return response.BadRequest(c, msgMissingVendorID)
	}

	report, err := h.payoutService.GetStatus(c.UserContext(), input.VendorID)
	if err != nil {
		return writeError(c, err, msgStatusFailed)
	}
	return response.Success(c, report)
}

func (h *StripeHandler) CreateLoginLink(c *fiber.Ctx) error {
	var input vendorRequest
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, msgInvalidBody)
	}
	if strings.TrimSpace(input.VendorID) == "" {
		return response.BadRequest(c, msgMissingVendorID)
	}

	result, err := h.payoutService.IssueLoginLink(c.UserContext(), input.VendorID)
	if err != nil {
		return writeError(c, err, msgLoginFailed)
	}

	return response.Success(c, fiber.Map{
		"success": true,
		"url":     result.URL,
	})
}

// Webhook acknowledges every verified event; only account.updated is acted on.
func (h *StripeHandler) Webhook(c *fiber.Ctx) error {
	account, ok, err := h.events.ParseAccountEvent(c.Body(), c.Get("Stripe-Signature"))
	if err != nil {
		log.Printf("⚠️ Rejected webhook: %v", err)
		return response.BadRequest(c, "Invalid webhook payload")
	}

	if ok {
		if err := h.payoutService.ReconcileAccount(c.UserContext(), account); err != nil {
			return writeError(c, err, msgWebhookFailed)
		}
	}

	return response.Success(c, fiber.Map{"received": true})
}

// writeError maps payout errors to HTTP responses. Anything that is not a
// domain error is a downstream failure and reports its message as details.
func writeError(c *fiber.Ctx, err error, failure string) error {
	var domainErr *payout.DomainError
	if errors.As(err, &domainErr) {
		switch domainErr.Code {
		case payout.CodeNotFound:
			return response.NotFound(c, msgVendorNotFound)
		case payout.CodeConflict:
			return response.BadRequest(c, msgNoAccount)
		case payout.CodeBusy:
			return response.Error(c, fiber.StatusConflict, msgBusy)
		default:
			return response.BadRequest(c, domainErr.Message)
		}
	}

	details := err.Error()
	var providerErr *payout.ProviderError
	if errors.As(err, &providerErr) {
		details = providerErr.Details()
	}
	log.Printf("❌ %s: %v", failure, err)
	return response.ServerError(c, failure, details)
}
