package storage

import (
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"macdee-orders/internal/interfaces"
)

// ReceiptStore saves uploaded receipt files under a dedicated directory.
// Stored names get a random hex prefix so concurrent uploads with the same
// original filename never collide.
type ReceiptStore struct {
	dir     string
	verbose bool
}

// NewReceiptStore creates the store and its directory if missing.
func NewReceiptStore(dir string, verbose bool) (*ReceiptStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, &interfaces.StorageError{Op: "receipt_save", Err: err}
	}

	return &ReceiptStore{dir: dir, verbose: verbose}, nil
}

// Save writes the file and returns the stored filename.
func (s *ReceiptStore) Save(originalName string, data []byte) (string, error) {
	name := uniqueName(originalName)
	path := filepath.Join(s.dir, name)

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", &interfaces.StorageError{Op: "receipt_save", Err: err}
	}

	if s.verbose {
		log.Printf("[STORAGE] Saved receipt %s (%d bytes)", name, len(data))
	}

	return name, nil
}

func uniqueName(originalName string) string {
	prefix := strings.ReplaceAll(uuid.NewString(), "-", "")
	return prefix + "_" + SanitizeFilename(originalName)
}

// SanitizeFilename strips any path components from an uploaded filename and
// replaces every rune outside [A-Za-z0-9._-] with an underscore.
func SanitizeFilename(name string) string {
	name = filepath.Base(filepath.ToSlash(name))

	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' || r == '_' || r == '-':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}

	sanitized := b.String()
	if sanitized == "" || sanitized == "." || sanitized == ".." {
		return "receipt"
	}

	return sanitized
}
