package mock

import (
	"log"
	"sync"

	"macdee-orders/internal/interfaces"
	"macdee-orders/internal/models"
)

// MockNotifier records notifications instead of delivering them. It backs
// standalone mode and the intake/handler tests. Individual sends can be made
// to fail by setting the corresponding error field.
type MockNotifier struct {
	mu      sync.Mutex
	verbose bool

	AlertErr        error
	ForwardErr      error
	ConfirmationErr error

	Alerts        []*models.Order
	Forwards      []*models.ReceiptSubmission
	Confirmations []*models.ReceiptSubmission
}

// NewMockNotifier creates a recording notifier.
func NewMockNotifier(verbose bool) *MockNotifier {
	return &MockNotifier{verbose: verbose}
}

func (n *MockNotifier) SendOrderAlert(order *models.Order) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.AlertErr != nil {
		return &interfaces.SendError{Op: "order_alert", Err: n.AlertErr}
	}

	n.Alerts = append(n.Alerts, order)
	if n.verbose {
		log.Printf("[MOCK] Order alert for %s:\n%s", order.CustomerEmail, order.AlertBody())
	}

	return nil
}

func (n *MockNotifier) SendReceiptForward(sub *models.ReceiptSubmission) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.ForwardErr != nil {
		return &interfaces.SendError{Op: "receipt_forward", Err: n.ForwardErr}
	}

	n.Forwards = append(n.Forwards, sub)
	if n.verbose {
		log.Printf("[MOCK] Receipt forward for %s: %s (%s, %d bytes)",
			sub.CustomerEmail, sub.StoredFilename, sub.MediaType, len(sub.Data))
	}

	return nil
}

func (n *MockNotifier) SendCustomerConfirmation(sub *models.ReceiptSubmission) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.ConfirmationErr != nil {
		return &interfaces.SendError{Op: "customer_confirmation", Err: n.ConfirmationErr}
	}

	n.Confirmations = append(n.Confirmations, sub)
	if n.verbose {
		log.Printf("[MOCK] Confirmation for %s", sub.CustomerEmail)
	}

	return nil
}
