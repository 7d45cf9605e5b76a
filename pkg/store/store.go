package store

import (
	"context"
	"errors"
)

// ErrNotFound reports a content document that does not exist yet.
var ErrNotFound = errors.New("store: content not found")

// Store reads and overwrites a single content document.
type Store interface {
	Load(ctx context.Context) ([]byte, error)
	Save(ctx context.Context, data []byte) error
	// Location names the document for logs and alerts.
	Location() string
}
