package models

import (
	"time"
)

const (
	OrderPending  = "Pending"
	OrderAccepted = "Accepted"
	OrderRejected = "Rejected"
)

// Order is a purchase intent. One record is created per cart line item,
// snapshotting the event fields at purchase time. Status transitions are
// one-way: Pending -> Accepted or Pending -> Rejected, both terminal.
type Order struct {
	ID             string    `json:"id"`
	EventID        string    `json:"event_id"`
	EventName      string    `json:"event_name"`
	EventPrice     float64   `json:"event_price"`
	EventImage     string    `json:"event_image"`
	EventDate      string    `json:"event_date"`
	BuyerID        string    `json:"buyer_id"`
	BuyerEmail     string    `json:"buyer_email"`
	OrganizerID    string    `json:"organizer_id"`
	OrganizerEmail string    `json:"organizer_email"`
	Status         string    `json:"status"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	PaymentMethod  string    `json:"payment_method"`
	Created        time.Time `json:"created"`
}

// Processed reports whether the order already reached a terminal status.
func (o Order) Processed() bool {
	return o.Status == OrderAccepted || o.Status == OrderRejected
}

// BuyerFields are the purchaser-entered values collected at checkout.
type BuyerFields struct {
	Name          string `json:"name" validate:"required"`
	Email         string `json:"email" validate:"required,email"`
	PaymentMethod string `json:"payment_method" validate:"required,oneof=creditCard debitCard paypal bankTransfer"`
}

// Checkout is the set of line items targeted by a single order submission:
// either the whole cart or one explicit event.
type Checkout struct {
	Items []Event `json:"items"`
	Total float64 `json:"total"`
}
