package validation

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
)

// Rejection reason codes
const (
	ReasonMissingField    = "MISSING_FIELD"
	ReasonInvalidQuantity = "INVALID_QUANTITY"
	ReasonBelowMinimum    = "BELOW_MINIMUM"
	ReasonNoFile          = "NO_FILE"
	ReasonUnsupportedType = "UNSUPPORTED_TYPE"
	ReasonTooLarge        = "TOO_LARGE"
)

// Error is a rejected validation outcome. A nil error from the validator
// means the submission was accepted.
type Error struct {
	Reason  string
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func reject(reason, format string, args ...interface{}) *Error {
	return &Error{Reason: reason, Message: fmt.Sprintf(format, args...)}
}

// allowedExtensions lists the receipt file types the vendor accepts,
// matched case-insensitively against the uploaded filename.
var allowedExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".pdf":  true,
}

// OrderFields holds the parsed, accepted order form fields.
type OrderFields struct {
	Name     string
	Email    string
	Quantity int
}

// Validator checks order form fields and uploaded receipt files against the
// configured thresholds.
type Validator struct {
	unitPriceKobo    int64
	minimumTotalKobo int64
	maxUploadBytes   int64
}

// NewValidator creates a validator with the given kobo unit price, kobo
// minimum order total and upload size cap in bytes.
func NewValidator(unitPriceKobo, minimumTotalKobo, maxUploadBytes int64) *Validator {
	return &Validator{
		unitPriceKobo:    unitPriceKobo,
		minimumTotalKobo: minimumTotalKobo,
		maxUploadBytes:   maxUploadBytes,
	}
}

// ValidateOrder checks the raw order form fields and returns the parsed
// fields on acceptance.
func (v *Validator) ValidateOrder(name, email, quantity string) (*OrderFields, *Error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	quantity = strings.TrimSpace(quantity)

	if name == "" || email == "" || quantity == "" {
		return nil, reject(ReasonMissingField, "Name, email and quantity are required.")
	}

	qty, err := strconv.Atoi(quantity)
	if err != nil || qty <= 0 {
		return nil, reject(ReasonInvalidQuantity, "Quantity must be a positive whole number.")
	}

	if int64(qty)*v.unitPriceKobo < v.minimumTotalKobo {
		return nil, reject(ReasonBelowMinimum, "Minimum order amount must be ₦%.2f.",
			float64(v.minimumTotalKobo)/100)
	}

	return &OrderFields{Name: name, Email: email, Quantity: qty}, nil
}

// ValidateReceipt checks an uploaded receipt's filename and size. It runs
// before any byte is stored or attached to mail.
func (v *Validator) ValidateReceipt(filename string, size int64) *Error {
	if filename == "" {
		return reject(ReasonNoFile, "No receipt file was uploaded.")
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if !allowedExtensions[ext] {
		return reject(ReasonUnsupportedType, "Only PNG, JPG, JPEG or PDF files are allowed.")
	}

	if size > v.maxUploadBytes {
		return reject(ReasonTooLarge, "Receipt file is too large (limit %d MiB).",
			v.maxUploadBytes/(1024*1024))
	}

	return nil
}
