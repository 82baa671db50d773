package catalog

import (
	"context"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/stitchdesk/backend/internal/domain/shared"
)

// AllowedImageTypes is the whitelist of content types accepted for
// uploads. Attachments are reference photos, so only raster images are
// allowed; SVG is excluded because it can carry scripts.
var AllowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
	"image/heic": true,
}

// UploadPurpose names the place an uploaded image is used
type UploadPurpose string

const (
	// PurposeAttachment is an inspiration/reference photo on a draft instance
	PurposeAttachment UploadPurpose = "attachment"
	// PurposeOutfit is a catalog image for an outfit
	PurposeOutfit UploadPurpose = "outfit"
)

// IsValid checks if the purpose is known
func (p UploadPurpose) IsValid() bool {
	return p == PurposeAttachment || p == PurposeOutfit
}

// ObjectStorageService is the port to S3-compatible object storage,
// implemented by the infrastructure layer.
type ObjectStorageService interface {
	// GenerateUploadURL generates a presigned URL for uploading a file
	GenerateUploadURL(ctx context.Context, storageKey, contentType string, expiresIn time.Duration) (string, time.Time, error)

	// GenerateDownloadURL generates a presigned URL for downloading a file
	GenerateDownloadURL(ctx context.Context, storageKey string, expiresIn time.Duration) (string, time.Time, error)

	// DeleteObject deletes an object from storage
	DeleteObject(ctx context.Context, storageKey string) error

	// ObjectExists checks if an object exists in storage
	ObjectExists(ctx context.Context, storageKey string) (bool, error)
}

// AttachmentService issues presigned URLs for attachment and outfit
// images. Clients upload directly to object storage; only storage keys
// travel through drafts and orders.
type AttachmentService struct {
	storage        ObjectStorageService
	uploadExpiry   time.Duration
	downloadExpiry time.Duration
}

// NewAttachmentService creates a new AttachmentService
func NewAttachmentService(storage ObjectStorageService, urlExpiry time.Duration) *AttachmentService {
	if urlExpiry <= 0 {
		urlExpiry = 15 * time.Minute
	}
	return &AttachmentService{
		storage:        storage,
		uploadExpiry:   urlExpiry,
		downloadExpiry: time.Hour,
	}
}

// InitiateUpload validates the request and returns a presigned upload
// URL with the storage key the client must reference afterwards.
func (s *AttachmentService) InitiateUpload(ctx context.Context, tenantID uuid.UUID, req InitiateUploadRequest) (*InitiateUploadResponse, error) {
	purpose := UploadPurpose(req.Purpose)
	if !purpose.IsValid() {
		return nil, shared.NewDomainError("INVALID_PURPOSE", "Unknown upload purpose")
	}
	if !AllowedImageTypes[req.ContentType] {
		return nil, shared.NewDomainError("INVALID_CONTENT_TYPE", "Only image uploads are allowed")
	}

	key := s.buildKey(tenantID, purpose, req.FileName)
	url, expiresAt, err := s.storage.GenerateUploadURL(ctx, key, req.ContentType, s.uploadExpiry)
	if err != nil {
		return nil, err
	}

	return &InitiateUploadResponse{
		StorageKey: key,
		UploadURL:  url,
		ExpiresAt:  expiresAt,
	}, nil
}

// ResolveDownload returns a presigned download URL for a stored object.
// Keys are tenant-prefixed; a key outside the caller's tenant is treated
// as missing.
func (s *AttachmentService) ResolveDownload(ctx context.Context, tenantID uuid.UUID, storageKey string) (*DownloadURLResponse, error) {
	if !s.ownedByTenant(tenantID, storageKey) {
		return nil, shared.ErrNotFound
	}
	exists, err := s.storage.ObjectExists(ctx, storageKey)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, shared.ErrNotFound
	}

	url, expiresAt, err := s.storage.GenerateDownloadURL(ctx, storageKey, s.downloadExpiry)
	if err != nil {
		return nil, err
	}
	return &DownloadURLResponse{
		StorageKey:  storageKey,
		DownloadURL: url,
		ExpiresAt:   expiresAt,
	}, nil
}

// Delete removes a stored object
func (s *AttachmentService) Delete(ctx context.Context, tenantID uuid.UUID, storageKey string) error {
	if !s.ownedByTenant(tenantID, storageKey) {
		return shared.ErrNotFound
	}
	return s.storage.DeleteObject(ctx, storageKey)
}

func (s *AttachmentService) buildKey(tenantID uuid.UUID, purpose UploadPurpose, fileName string) string {
	ext := strings.ToLower(filepath.Ext(fileName))
	return string(purpose) + "s/" + tenantID.String() + "/" + uuid.New().String() + ext
}

func (s *AttachmentService) ownedByTenant(tenantID uuid.UUID, storageKey string) bool {
	parts := strings.Split(storageKey, "/")
	return len(parts) == 3 && parts[1] == tenantID.String()
}
