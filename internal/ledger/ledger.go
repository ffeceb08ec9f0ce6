package ledger

import (
	"encoding/csv"
	"log"
	"os"
	"strconv"
	"sync"

	"macdee-orders/internal/interfaces"
	"macdee-orders/internal/models"
)

// timestampLayout matches the ledger's existing record format.
const timestampLayout = "2006-01-02 15:04:05"

// FileLedger appends accepted orders to a CSV file, one record per order.
// Records are never rewritten or deleted. A mutex serializes appends so
// concurrent requests cannot interleave partial lines.
type FileLedger struct {
	mu      sync.Mutex
	path    string
	verbose bool
}

// NewFileLedger creates a ledger backed by the file at path. The file is
// created on first append if it does not exist.
func NewFileLedger(path string, verbose bool) *FileLedger {
	return &FileLedger{
		path:    path,
		verbose: verbose,
	}
}

// Append writes one order record. Callers must only invoke this after the
// vendor notification has been accepted for delivery.
func (l *FileLedger) Append(order *models.Order) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return &interfaces.StorageError{Op: "ledger_append", Err: err}
	}
	defer f.Close()

	w := csv.NewWriter(f)
	record := []string{
		order.Timestamp.Format(timestampLayout),
		order.CustomerName,
		order.CustomerEmail,
		strconv.Itoa(order.Quantity),
		"₦" + order.FormattedTotal(),
		order.PaymentMethod,
	}

	if err := w.Write(record); err != nil {
		return &interfaces.StorageError{Op: "ledger_append", Err: err}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return &interfaces.StorageError{Op: "ledger_append", Err: err}
	}

	if l.verbose {
		log.Printf("[LEDGER] Appended order for %s (total ₦%s)",
			order.CustomerEmail, order.FormattedTotal())
	}

	return nil
}
