package storage

import (
	"fmt"

	"github.com/modorifa/rifas/internal/application/payment/proofstore"
	"github.com/modorifa/rifas/internal/shared/config"
)

// New returns the proof store for cfg.Driver.
func New(cfg config.StorageConfig, baseURL string) (proofstore.Store, error) {
	switch cfg.Driver {
	case config.StorageDriverLocal, "":
		return NewLocalStore(cfg.LocalDir, baseURL)
	case config.StorageDriverS3:
		return NewS3Store(cfg.S3)
	default:
		return nil, fmt.Errorf("unsupported storage driver: %s", cfg.Driver)
	}
}
