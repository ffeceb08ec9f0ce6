package models

// ReceiptSubmission represents one uploaded proof-of-payment file. It lives
// only for the duration of a single request; the stored copy under the
// uploads directory is kept for audit.
type ReceiptSubmission struct {
	CustomerEmail    string
	OriginalFilename string
	StoredFilename   string
	Data             []byte
	MediaType        string // detected from content, e.g. "image/png"
}
