// Package storage keeps uploaded proof-of-payment files on local disk or S3.
package storage

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

const keyPrefix = "proofs"

// newKey builds "proofs/2006/01/<uuid><ext>". Only the extension of the
// client supplied filename survives.
func newKey(filename string, at time.Time) string {
	ext := strings.ToLower(filepath.Ext(filename))
	if len(ext) > 8 || strings.ContainsAny(ext, `/\ `) {
		ext = ""
	}
	return path.Join(keyPrefix, at.UTC().Format("2006/01"), uuid.NewString()+ext)
}

// validKey rejects keys that were not produced by newKey.
func validKey(key string) error {
	clean := path.Clean(key)
	if clean != key || !strings.HasPrefix(key, keyPrefix+"/") || strings.Contains(key, "..") {
		return fmt.Errorf("invalid proof key: %q", key)
	}
	return nil
}
