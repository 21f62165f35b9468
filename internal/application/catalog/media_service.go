package catalog

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/gadgetstore/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AllowedContentTypes defines the whitelist of content types accepted for
// uploads. Listings and payment proofs are photos, so only raster image
// formats plus PDF (scanned transfer receipts) are accepted. SVG is
// excluded because it can carry scripts.
var AllowedContentTypes = map[string]bool{
	"image/jpeg":      true,
	"image/png":       true,
	"image/gif":       true,
	"image/webp":      true,
	"application/pdf": true,
}

// MediaKind identifies what an uploaded object is used for. It determines
// the storage key prefix.
type MediaKind string

const (
	MediaKindProductImage MediaKind = "product-image"
	MediaKindPaymentProof MediaKind = "payment-proof"
	MediaKindTradeInImage MediaKind = "trade-in-image"
)

var mediaKindPrefixes = map[MediaKind]string{
	MediaKindProductImage: "products",
	MediaKindPaymentProof: "payment-proofs",
	MediaKindTradeInImage: "trade-ins",
}

// ObjectStorageService defines the interface for object storage operations
// This interface is implemented by the infrastructure layer (S3, stub)
type ObjectStorageService interface {
	// GenerateUploadURL generates a presigned URL for uploading a file
	// Returns the upload URL and expiration time
	GenerateUploadURL(ctx context.Context, storageKey, contentType string, expiresIn time.Duration) (string, time.Time, error)

	// GenerateDownloadURL generates a presigned URL for downloading a file
	// Returns the download URL and expiration time
	GenerateDownloadURL(ctx context.Context, storageKey string, expiresIn time.Duration) (string, time.Time, error)

	// DeleteObject deletes an object from storage
	DeleteObject(ctx context.Context, storageKey string) error

	// ObjectExists checks if an object exists in storage
	ObjectExists(ctx context.Context, storageKey string) (bool, error)
}

// MediaServiceConfig holds configuration for the media service
type MediaServiceConfig struct {
	// UploadURLExpiry is the duration for which upload URLs are valid
	UploadURLExpiry time.Duration
	// DownloadURLExpiry is the duration for which download URLs are valid
	DownloadURLExpiry time.Duration
}

// DefaultMediaServiceConfig returns the default configuration
func DefaultMediaServiceConfig() MediaServiceConfig {
	return MediaServiceConfig{
		UploadURLExpiry:   15 * time.Minute,
		DownloadURLExpiry: 1 * time.Hour,
	}
}

// MediaService issues presigned URLs for product images, payment proofs
// and trade-in photos. Clients upload directly to object storage and hand
// the resulting storage key back to the API.
type MediaService struct {
	storage ObjectStorageService
	config  MediaServiceConfig
	logger  *zap.Logger
}

// NewMediaService creates a new MediaService
func NewMediaService(storage ObjectStorageService, logger *zap.Logger) *MediaService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MediaService{
		storage: storage,
		config:  DefaultMediaServiceConfig(),
		logger:  logger,
	}
}

// SetConfig sets the service configuration
func (s *MediaService) SetConfig(config MediaServiceConfig) {
	s.config = config
}

// InitiateUpload validates the upload request and returns a presigned URL
// the client can PUT the file to
func (s *MediaService) InitiateUpload(ctx context.Context, userID uuid.UUID, req InitiateUploadRequest) (*InitiateUploadResponse, error) {
	contentType := strings.ToLower(strings.TrimSpace(req.ContentType))
	if !AllowedContentTypes[contentType] {
		return nil, shared.NewDomainError("INVALID_CONTENT_TYPE",
			fmt.Sprintf("Content type %q is not allowed", req.ContentType))
	}

	kind := MediaKind(req.Kind)
	prefix, ok := mediaKindPrefixes[kind]
	if !ok {
		return nil, shared.NewDomainError("VALIDATION_ERROR",
			fmt.Sprintf("Unknown media kind %q", req.Kind))
	}

	storageKey := s.generateStorageKey(prefix, userID, req.FileName)

	url, expiresAt, err := s.storage.GenerateUploadURL(ctx, storageKey, contentType, s.config.UploadURLExpiry)
	if err != nil {
		s.logger.Error("Failed to generate upload URL",
			zap.String("storage_key", storageKey),
			zap.Error(err),
		)
		return nil, fmt.Errorf("generate upload url: %w", err)
	}

	return &InitiateUploadResponse{
		StorageKey: storageKey,
		UploadURL:  url,
		ExpiresAt:  expiresAt,
	}, nil
}

// ResolveURL returns a presigned download URL for a stored object.
// An empty storage key resolves to an empty URL.
func (s *MediaService) ResolveURL(ctx context.Context, storageKey string) (string, error) {
	if storageKey == "" {
		return "", nil
	}
	url, _, err := s.storage.GenerateDownloadURL(ctx, storageKey, s.config.DownloadURLExpiry)
	if err != nil {
		return "", fmt.Errorf("generate download url: %w", err)
	}
	return url, nil
}

// Delete removes a stored object. Missing objects are not an error.
func (s *MediaService) Delete(ctx context.Context, storageKey string) error {
	if storageKey == "" {
		return nil
	}
	if err := s.storage.DeleteObject(ctx, storageKey); err != nil {
		return fmt.Errorf("delete object: %w", err)
	}
	return nil
}

// Exists reports whether a stored object is present. Handlers use this to
// verify a client actually completed an upload before referencing its key.
func (s *MediaService) Exists(ctx context.Context, storageKey string) (bool, error) {
	if storageKey == "" {
		return false, nil
	}
	return s.storage.ObjectExists(ctx, storageKey)
}

// generateStorageKey builds a collision-free key scoped by owner.
// Format: {prefix}/{userID}/{uniqueID}{ext}
func (s *MediaService) generateStorageKey(prefix string, userID uuid.UUID, fileName string) string {
	ext := strings.ToLower(filepath.Ext(fileName))
	return fmt.Sprintf("%s/%s/%s%s", prefix, userID.String(), uuid.New().String(), ext)
}
