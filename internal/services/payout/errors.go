package payout

import "fmt"

// Error codes
const (
	CodeValidation = "VALIDATION_ERROR"
	CodeNotFound   = "VENDOR_NOT_FOUND"
	CodeConflict   = "NO_PAYMENT_ACCOUNT"
	CodeBusy       = "PROVISIONING_IN_PROGRESS"
)

// DomainError is a request-terminal failure with a stable code. Two domain
// errors match under errors.Is when their codes match.
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	return ok && t.Code == e.Code
}

var (
	ErrValidation = &DomainError{
		Code:    CodeValidation,
		Message: "validation failed",
	}
	ErrVendorNotFound = &DomainError{
		Code:    CodeNotFound,
		Message: "vendor not found",
	}
	ErrNoPaymentAccount = &DomainError{
		Code:    CodeConflict,
		Message: "vendor does not have a Stripe Connect account",
	}
	ErrProvisioningInProgress = &DomainError{
		Code:    CodeBusy,
		Message: "account provisioning already in progress for this vendor",
	}
)

func validationError(message string) error {
	return &DomainError{Code: CodeValidation, Message: message}
}

// ProviderError wraps a failed call to the payment provider or the store.
type ProviderError struct {
	Op  string
	Err error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// Details is the downstream message, suitable for an error response body.
func (e *ProviderError) Details() string {
	if e.Err == nil {
		return ""
	}
	return e.Err.Error()
}

func providerError(op string, err error) error {
	return &ProviderError{Op: op, Err: err}
}
