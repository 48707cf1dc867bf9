package model

type PaymentMethod string

const (
	PaymentMethodNone       PaymentMethod = ""
	PaymentMethodCreditCard PaymentMethod = "creditCard"
	PaymentMethodUPI        PaymentMethod = "upi"
)

func (p PaymentMethod) Label() string {
	switch p {
	case PaymentMethodCreditCard:
		return "Credit Card"
	case PaymentMethodUPI:
		return "UPI"
	default:
		return "None"
	}
}

// BookingSelection is what the seat picker hands over to the payment screen.
type BookingSelection struct {
	Showtime      Showtime `json:"showtime"`
	SelectedSeats []Seat   `json:"selectedSeats"`
}

// Booking is the selection after a successful payment.
type Booking struct {
	Showtime      Showtime      `json:"showtime"`
	SelectedSeats []Seat        `json:"selectedSeats"`
	PaymentMethod PaymentMethod `json:"paymentMethod"`
}
