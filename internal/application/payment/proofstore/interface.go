// Package proofstore is the port for uploaded proof-of-payment artifacts.
package proofstore

import (
	"context"
	"io"
)

// Store persists proof files. Keys are opaque to callers.
type Store interface {
	Save(ctx context.Context, filename, contentType string, body io.Reader, size int64) (key string, err error)
	Delete(ctx context.Context, key string) error
	URL(key string) string
}
