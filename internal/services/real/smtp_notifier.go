package real

import (
	"fmt"
	"io"
	"log"
	"time"

	mail "gopkg.in/mail.v2"

	"macdee-orders/internal/interfaces"
	"macdee-orders/internal/models"
)

// SMTPNotifier delivers notifications through a single authenticated
// SMTP-over-TLS relay. Sends are synchronous, bounded by the dial timeout,
// and never retried.
type SMTPNotifier struct {
	dialer  *mail.Dialer
	from    string
	vendor  string
	verbose bool
}

// NewSMTPNotifier creates a notifier for the given relay. The vendor mailbox
// doubles as the authenticated sender address.
func NewSMTPNotifier(host string, port int, address, password string, timeout time.Duration, verbose bool) *SMTPNotifier {
	d := mail.NewDialer(host, port, address, password)
	d.Timeout = timeout
	// Port 465 relays expect an implicit TLS session instead of STARTTLS.
	d.SSL = port == 465

	return &SMTPNotifier{
		dialer:  d,
		from:    address,
		vendor:  address,
		verbose: verbose,
	}
}

// SendOrderAlert mails the vendor a plain-text summary of a new order.
func (n *SMTPNotifier) SendOrderAlert(order *models.Order) error {
	m := mail.NewMessage()
	m.SetHeader("From", n.from)
	m.SetHeader("To", n.vendor)
	m.SetHeader("Subject", "New Mac Dee Order")
	m.SetBody("text/plain", order.AlertBody())

	if err := n.dialer.DialAndSend(m); err != nil {
		return &interfaces.SendError{Op: "order_alert", Err: err}
	}

	if n.verbose {
		log.Printf("[SMTP] Order alert sent for %s", order.CustomerEmail)
	}

	return nil
}

// SendReceiptForward mails the vendor the uploaded receipt as an attachment,
// carrying the media type detected from the file content.
func (n *SMTPNotifier) SendReceiptForward(sub *models.ReceiptSubmission) error {
	m := mail.NewMessage()
	m.SetHeader("From", n.from)
	m.SetHeader("To", n.vendor)
	m.SetHeader("Subject", "Payment Receipt Submission")
	m.SetBody("text/plain", fmt.Sprintf("Receipt submitted by: %s\n", sub.CustomerEmail))

	data := sub.Data
	m.Attach(sub.StoredFilename,
		mail.SetCopyFunc(func(w io.Writer) error {
			_, err := w.Write(data)
			return err
		}),
		mail.SetHeader(map[string][]string{
			"Content-Type": {sub.MediaType},
		}),
	)

	if err := n.dialer.DialAndSend(m); err != nil {
		return &interfaces.SendError{Op: "receipt_forward", Err: err}
	}

	if n.verbose {
		log.Printf("[SMTP] Receipt forwarded for %s (%s)", sub.CustomerEmail, sub.MediaType)
	}

	return nil
}

// SendCustomerConfirmation mails the customer a short acknowledgment that
// their receipt arrived.
func (n *SMTPNotifier) SendCustomerConfirmation(sub *models.ReceiptSubmission) error {
	m := mail.NewMessage()
	m.SetHeader("From", n.from)
	m.SetHeader("To", sub.CustomerEmail)
	m.SetHeader("Subject", "Mac Dee Receipt Received")
	m.SetBody("text/plain", fmt.Sprintf(
		"Hi %s, we've received your payment receipt. We'll review it and confirm your order shortly.\n\nThank you for choosing Mac Dee!\n",
		sub.CustomerEmail))

	if err := n.dialer.DialAndSend(m); err != nil {
		return &interfaces.SendError{Op: "customer_confirmation", Err: err}
	}

	if n.verbose {
		log.Printf("[SMTP] Confirmation sent to %s", sub.CustomerEmail)
	}

	return nil
}
