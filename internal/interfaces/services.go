package interfaces

import "macdee-orders/internal/models"

// Notifier delivers outbound mail to the vendor and to customers. None of
// the sends are retried; every failure is terminal for the current request.
type Notifier interface {
	SendOrderAlert(order *models.Order) error
	SendReceiptForward(sub *models.ReceiptSubmission) error
	SendCustomerConfirmation(sub *models.ReceiptSubmission) error
}

// OrderLedger is the append-only record of accepted orders. There is no read
// path; reporting is a manual concern outside this service.
type OrderLedger interface {
	Append(order *models.Order) error
}

// ReceiptStore persists uploaded receipt files for audit. Stored names must
// be unique so concurrent uploads with the same original name cannot collide.
type ReceiptStore interface {
	Save(originalName string, data []byte) (string, error)
}
