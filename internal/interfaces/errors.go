package interfaces

import "fmt"

// SendError wraps a mail transport failure (auth, connection, timeout).
type SendError struct {
	Op  string // which notification failed, e.g. "order_alert"
	Err error
}

func (e *SendError) Error() string {
	return fmt.Sprintf("mail send failed (%s): %v", e.Op, e.Err)
}

func (e *SendError) Unwrap() error {
	return e.Err
}

// StorageError wraps a ledger or upload filesystem failure.
type StorageError struct {
	Op  string // "ledger_append" or "receipt_save"
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage failed (%s): %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}
