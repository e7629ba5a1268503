package service

import (
	"fmt"

	"github.com/go-faster/errors"
)

var (
	ErrEmptyCart            = errors.New("cart is empty")
	ErrDuplicateEmail       = errors.New("email already registered")
	ErrInvalidCredentials   = errors.New("invalid email or password")
	ErrUnknownPaymentMethod = errors.New("unknown payment method")
	ErrInvoiceNotFound      = errors.New("invoice not found")
	ErrInvalidStatus        = errors.New("invalid order status")
	ErrSessionInvalid       = errors.New("session invalid or expired")
)

// RejectedError is a business rule refusal. Reason is safe to show to the
// caller.
type RejectedError struct {
	Reason string
}

func (e *RejectedError) Error() string {
	return e.Reason
}

func reject(format string, args ...any) error {
	return &RejectedError{Reason: fmt.Sprintf(format, args...)}
}

// IsRejected reports whether err carries a RejectedError and returns it.
func IsRejected(err error) (*RejectedError, bool) {
	var rejected *RejectedError
	if errors.As(err, &rejected) {
		return rejected, true
	}
	return nil, false
}
