package models

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// PaymentMethodBankTransfer is the only payment method the vendor accepts.
const PaymentMethodBankTransfer = "Bank Transfer"

// Order represents one accepted customer order. Orders are immutable once
// built and are appended to the ledger exactly once.
type Order struct {
	Timestamp     time.Time
	CustomerName  string
	CustomerEmail string
	Quantity      int
	UnitPriceKobo int64
	TotalAmount   decimal.Decimal // naira, 2 decimal places
	PaymentMethod string
}

// NewOrder builds an order from validated fields. The total is derived from
// quantity and the kobo unit price, converted to naira.
func NewOrder(name, email string, quantity int, unitPriceKobo int64) *Order {
	total := decimal.NewFromInt(int64(quantity) * unitPriceKobo).
		Div(decimal.NewFromInt(100))

	return &Order{
		Timestamp:     time.Now(),
		CustomerName:  name,
		CustomerEmail: email,
		Quantity:      quantity,
		UnitPriceKobo: unitPriceKobo,
		TotalAmount:   total,
		PaymentMethod: PaymentMethodBankTransfer,
	}
}

// FormattedTotal returns the order total in naira with two decimal places,
// e.g. "6000.00".
func (o *Order) FormattedTotal() string {
	return o.TotalAmount.StringFixed(2)
}

// AlertBody renders the plain-text vendor notification for this order.
func (o *Order) AlertBody() string {
	return fmt.Sprintf("Name: %s\nEmail: %s\nQuantity: %d\nTotal: ₦%s\nPayment Method: %s\n",
		o.CustomerName, o.CustomerEmail, o.Quantity, o.FormattedTotal(), o.PaymentMethod)
}
