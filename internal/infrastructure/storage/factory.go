package storage

import (
	"fmt"

	"go.uber.org/zap"

	catalogapp "github.com/stitchdesk/backend/internal/application/catalog"
	"github.com/stitchdesk/backend/internal/infrastructure/config"
)

// NewObjectStorage builds the storage backend named by configuration
func NewObjectStorage(cfg config.StorageConfig, logger *zap.Logger) (catalogapp.ObjectStorageService, error) {
	switch cfg.Provider {
	case "stub", "":
		logger.Info("Using stub object storage")
		return NewStubObjectStorage(), nil
	case "s3":
		logger.Info("Using S3 object storage",
			zap.String("bucket", cfg.Bucket),
			zap.String("endpoint", cfg.Endpoint))
		return NewS3ObjectStorage(cfg, logger)
	default:
		return nil, fmt.Errorf("unknown storage provider: %s", cfg.Provider)
	}
}
