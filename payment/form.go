// Package payment implements the payment form: per-keystroke input masks,
// submit-time validation and the form state transitions.
package payment

import "github.com/sangamparmar/MovieFrenz/model"

type Field int

const (
	FieldCardNumber Field = iota
	FieldExpiryDate
	FieldCVV
	FieldUPIID
)

func (f Field) Label() string {
	switch f {
	case FieldCardNumber:
		return "Card Number"
	case FieldExpiryDate:
		return "Expiration Date"
	case FieldCVV:
		return "CVV"
	case FieldUPIID:
		return "UPI ID"
	default:
		return "unknown"
	}
}

// FieldsFor lists the inputs shown for a payment method, in display order.
func FieldsFor(method model.PaymentMethod) []Field {
	switch method {
	case model.PaymentMethodCreditCard:
		return []Field{FieldCardNumber, FieldExpiryDate, FieldCVV}
	case model.PaymentMethodUPI:
		return []Field{FieldUPIID}
	default:
		return nil
	}
}

// Form is the payment form state. The zero value is an empty form with no
// method selected.
type Form struct {
	Method     model.PaymentMethod
	CardNumber string
	ExpiryDate string
	CVV        string
	UPIID      string
}

// NoticeLevel orders notifications by severity.
type NoticeLevel int

const (
	NoticeSuccess NoticeLevel = iota
	NoticeWarning
	NoticeError
)

// Notice is a transient message produced by a form transition.
type Notice struct {
	Level NoticeLevel
	Text  string
}

// SelectMethod switches the visible input set. Values typed for the other
// method are kept.
func (f Form) SelectMethod(method model.PaymentMethod) Form {
	f.Method = method
	return f
}

// EditField applies the field's mask to the raw input and stores the
// result. A non-nil notice is returned when the input deserves a warning.
func (f Form) EditField(field Field, raw string) (Form, *Notice) {
	var notice *Notice
	switch field {
	case FieldCardNumber:
		f.CardNumber = truncateRunes(MaskCardNumber(raw), CardNumberMaxLen)
	case FieldExpiryDate:
		value, badMonth := MaskExpiry(raw)
		f.ExpiryDate = value
		if badMonth {
			notice = &Notice{Level: NoticeWarning, Text: InvalidMonthMessage}
		}
	case FieldCVV:
		f.CVV = truncateRunes(raw, CVVMaxLen)
	case FieldUPIID:
		f.UPIID = raw
	}
	return f, notice
}

func (f Form) Value(field Field) string {
	switch field {
	case FieldCardNumber:
		return f.CardNumber
	case FieldExpiryDate:
		return f.ExpiryDate
	case FieldCVV:
		return f.CVV
	case FieldUPIID:
		return f.UPIID
	default:
		return ""
	}
}

// Submit validates the form. On success the selection is passed through
// unchanged with the chosen method attached. The form itself is never
// modified, so a failed submit leaves every value in place for correction.
func (f Form) Submit(selection model.BookingSelection) (model.Booking, Notice, error) {
	if err := Validate(f); err != nil {
		return model.Booking{}, Notice{Level: NoticeError, Text: Message(err)}, err
	}
	booking := model.Booking{
		Showtime:      selection.Showtime,
		SelectedSeats: selection.SelectedSeats,
		PaymentMethod: f.Method,
	}
	return booking, Notice{Level: NoticeSuccess, Text: SuccessMessage}, nil
}
