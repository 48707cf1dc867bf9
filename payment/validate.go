package payment

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/sangamparmar/MovieFrenz/model"
)

var (
	ErrMethodRequired    = errors.New("payment method is required")
	ErrInvalidCardNumber = errors.New("invalid card number")
	ErrInvalidExpiry     = errors.New("invalid expiry date")
	ErrInvalidUPI        = errors.New("invalid UPI id")
)

const (
	SuccessMessage      = "Payment successful!"
	InvalidMonthMessage = "Please enter a valid month (01-12)"
)

var (
	cardNumberPattern = regexp.MustCompile(`^\d{4} \d{4} \d{4} \d{4}$`)
	expiryPattern     = regexp.MustCompile(`^\d{2}/\d{2}$`)
	upiPattern        = regexp.MustCompile(`^[a-zA-Z0-9.\-_]{2,256}@[a-zA-Z]{2,64}$`)
)

// RequiredFieldError reports a visible field left empty.
type RequiredFieldError struct {
	Field Field
}

func (e *RequiredFieldError) Error() string {
	return fmt.Sprintf("%s is required", e.Field.Label())
}

// Message turns a validation error into the notification text shown to
// the user.
func Message(err error) string {
	var required *RequiredFieldError
	switch {
	case err == nil:
		return SuccessMessage
	case errors.As(err, &required):
		return fmt.Sprintf("Please fill out the %s field", required.Field.Label())
	case errors.Is(err, ErrMethodRequired):
		return "Please select a payment method"
	case errors.Is(err, ErrInvalidCardNumber):
		return "Please enter a valid card number"
	case errors.Is(err, ErrInvalidExpiry):
		return "Please enter a valid expiry date"
	case errors.Is(err, ErrInvalidUPI):
		return "Please enter a valid UPI ID"
	default:
		return err.Error()
	}
}

// Validate checks the form in submit order and returns the first failure.
// The expiry month range is only checked while typing, not here.
func Validate(f Form) error {
	if f.Method != model.PaymentMethodCreditCard && f.Method != model.PaymentMethodUPI {
		return ErrMethodRequired
	}
	for _, field := range FieldsFor(f.Method) {
		if f.Value(field) == "" {
			return &RequiredFieldError{Field: field}
		}
	}

	if f.Method == model.PaymentMethodCreditCard && !cardNumberPattern.MatchString(f.CardNumber) {
		return ErrInvalidCardNumber
	}
	if f.Method == model.PaymentMethodCreditCard && !expiryPattern.MatchString(f.ExpiryDate) {
		return ErrInvalidExpiry
	}
	if f.Method == model.PaymentMethodUPI && !upiPattern.MatchString(f.UPIID) {
		return ErrInvalidUPI
	}
	return nil
}
