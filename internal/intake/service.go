package intake

import (
	"log"

	"github.com/gabriel-vasile/mimetype"

	"macdee-orders/internal/interfaces"
	"macdee-orders/internal/models"
	"macdee-orders/internal/validation"
)

// Service orchestrates the two intake workflows: placing an order and
// submitting a payment receipt. Each request runs the full sequence
// synchronously; a failure at any stage is terminal for that request.
type Service struct {
	validator     *validation.Validator
	ledger        interfaces.OrderLedger
	store         interfaces.ReceiptStore
	notifier      interfaces.Notifier
	unitPriceKobo int64
	verbose       bool
}

// NewService wires the intake workflows together.
func NewService(
	validator *validation.Validator,
	ledger interfaces.OrderLedger,
	store interfaces.ReceiptStore,
	notifier interfaces.Notifier,
	unitPriceKobo int64,
	verbose bool,
) *Service {
	return &Service{
		validator:     validator,
		ledger:        ledger,
		store:         store,
		notifier:      notifier,
		unitPriceKobo: unitPriceKobo,
		verbose:       verbose,
	}
}

// PlaceOrder runs the order flow: validate, notify the vendor, then append
// to the ledger. The ledger line is only written after the relay has
// accepted the alert, so the vendor never misses a recorded order.
func (s *Service) PlaceOrder(name, email, quantity string) (*models.Order, error) {
	fields, verr := s.validator.ValidateOrder(name, email, quantity)
	if verr != nil {
		if s.verbose {
			log.Printf("[INTAKE] Order rejected (%s): %s", verr.Reason, verr.Message)
		}
		return nil, verr
	}

	order := models.NewOrder(fields.Name, fields.Email, fields.Quantity, s.unitPriceKobo)
	if s.verbose {
		log.Printf("[INTAKE] Order validated: %s x%d (₦%s)",
			order.CustomerEmail, order.Quantity, order.FormattedTotal())
	}

	if err := s.notifier.SendOrderAlert(order); err != nil {
		log.Printf("[INTAKE] Order alert failed, not logging order: %v", err)
		return nil, err
	}

	if err := s.ledger.Append(order); err != nil {
		log.Printf("[INTAKE] Ledger append failed after alert was sent: %v", err)
		return nil, err
	}

	if s.verbose {
		log.Printf("[INTAKE] Order completed for %s", order.CustomerEmail)
	}

	return order, nil
}

// SubmitReceipt runs the receipt flow: validate, store an audit copy,
// forward to the vendor, then confirm to the customer. A failed forward is
// fatal; a failed confirmation is logged but does not fail the request
// because the vendor copy already went through.
func (s *Service) SubmitReceipt(email, filename string, data []byte) (*models.ReceiptSubmission, error) {
	if verr := s.validator.ValidateReceipt(filename, int64(len(data))); verr != nil {
		if s.verbose {
			log.Printf("[INTAKE] Receipt rejected (%s): %s", verr.Reason, verr.Message)
		}
		return nil, verr
	}

	sub := &models.ReceiptSubmission{
		CustomerEmail:    email,
		OriginalFilename: filename,
		Data:             data,
		MediaType:        mimetype.Detect(data).String(),
	}

	stored, err := s.store.Save(filename, data)
	if err != nil {
		log.Printf("[INTAKE] Receipt save failed: %v", err)
		return nil, err
	}
	sub.StoredFilename = stored

	if s.verbose {
		log.Printf("[INTAKE] Receipt validated and stored as %s (%s)", stored, sub.MediaType)
	}

	if err := s.notifier.SendReceiptForward(sub); err != nil {
		log.Printf("[INTAKE] Receipt forward failed: %v", err)
		return nil, err
	}

	if err := s.notifier.SendCustomerConfirmation(sub); err != nil {
		// Non-fatal: the vendor already has the receipt.
		log.Printf("[INTAKE] Customer confirmation failed for %s: %v", sub.CustomerEmail, err)
	}

	if s.verbose {
		log.Printf("[INTAKE] Receipt completed for %s", sub.CustomerEmail)
	}

	return sub, nil
}
