package catalog

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/stitchdesk/backend/internal/domain/shared"
)

// =============================================================================
// Mock Storage
// =============================================================================

// MockObjectStorage is a mock implementation of ObjectStorageService
type MockObjectStorage struct {
	mock.Mock
}

func (m *MockObjectStorage) GenerateUploadURL(ctx context.Context, storageKey, contentType string, expiresIn time.Duration) (string, time.Time, error) {
	args := m.Called(ctx, storageKey, contentType, expiresIn)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

func (m *MockObjectStorage) GenerateDownloadURL(ctx context.Context, storageKey string, expiresIn time.Duration) (string, time.Time, error) {
	args := m.Called(ctx, storageKey, expiresIn)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

func (m *MockObjectStorage) DeleteObject(ctx context.Context, storageKey string) error {
	args := m.Called(ctx, storageKey)
	return args.Error(0)
}

func (m *MockObjectStorage) ObjectExists(ctx context.Context, storageKey string) (bool, error) {
	args := m.Called(ctx, storageKey)
	return args.Bool(0), args.Error(1)
}

// =============================================================================
// Tests
// =============================================================================

func TestAttachmentService_InitiateUpload(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()

	t.Run("issues presigned URL with tenant-prefixed key", func(t *testing.T) {
		storage := new(MockObjectStorage)
		service := NewAttachmentService(storage, 15*time.Minute)

		expiresAt := time.Now().Add(15 * time.Minute)
		storage.On("GenerateUploadURL", ctx, mock.AnythingOfType("string"), "image/jpeg", 15*time.Minute).
			Return("https://storage.example.com/upload", expiresAt, nil)

		resp, err := service.InitiateUpload(ctx, tenantID, InitiateUploadRequest{
			FileName:    "saree-blouse.JPG",
			ContentType: "image/jpeg",
			Purpose:     "attachment",
		})
		require.NoError(t, err)

		assert.Equal(t, "https://storage.example.com/upload", resp.UploadURL)
		assert.Equal(t, expiresAt, resp.ExpiresAt)
		assert.True(t, strings.HasPrefix(resp.StorageKey, "attachments/"+tenantID.String()+"/"))
		assert.True(t, strings.HasSuffix(resp.StorageKey, ".jpg"), "extension should be lowercased")
		storage.AssertExpectations(t)
	})

	t.Run("outfit purpose uses outfits prefix", func(t *testing.T) {
		storage := new(MockObjectStorage)
		service := NewAttachmentService(storage, 15*time.Minute)

		storage.On("GenerateUploadURL", ctx, mock.AnythingOfType("string"), "image/png", 15*time.Minute).
			Return("https://storage.example.com/upload", time.Now(), nil)

		resp, err := service.InitiateUpload(ctx, tenantID, InitiateUploadRequest{
			FileName:    "kurta.png",
			ContentType: "image/png",
			Purpose:     "outfit",
		})
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(resp.StorageKey, "outfits/"+tenantID.String()+"/"))
	})

	t.Run("rejects non-image content type", func(t *testing.T) {
		storage := new(MockObjectStorage)
		service := NewAttachmentService(storage, 15*time.Minute)

		_, err := service.InitiateUpload(ctx, tenantID, InitiateUploadRequest{
			FileName:    "notes.pdf",
			ContentType: "application/pdf",
			Purpose:     "attachment",
		})
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_CONTENT_TYPE", domainErr.Code)
		storage.AssertNotCalled(t, "GenerateUploadURL")
	})

	t.Run("rejects svg", func(t *testing.T) {
		storage := new(MockObjectStorage)
		service := NewAttachmentService(storage, 15*time.Minute)

		_, err := service.InitiateUpload(ctx, tenantID, InitiateUploadRequest{
			FileName:    "logo.svg",
			ContentType: "image/svg+xml",
			Purpose:     "attachment",
		})
		require.Error(t, err)
	})

	t.Run("rejects unknown purpose", func(t *testing.T) {
		storage := new(MockObjectStorage)
		service := NewAttachmentService(storage, 15*time.Minute)

		_, err := service.InitiateUpload(ctx, tenantID, InitiateUploadRequest{
			FileName:    "photo.jpg",
			ContentType: "image/jpeg",
			Purpose:     "avatar",
		})
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_PURPOSE", domainErr.Code)
	})
}

func TestAttachmentService_ResolveDownload(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	key := "attachments/" + tenantID.String() + "/" + uuid.New().String() + ".jpg"

	t.Run("returns presigned download URL", func(t *testing.T) {
		storage := new(MockObjectStorage)
		service := NewAttachmentService(storage, 15*time.Minute)

		expiresAt := time.Now().Add(time.Hour)
		storage.On("ObjectExists", ctx, key).Return(true, nil)
		storage.On("GenerateDownloadURL", ctx, key, time.Hour).
			Return("https://storage.example.com/download", expiresAt, nil)

		resp, err := service.ResolveDownload(ctx, tenantID, key)
		require.NoError(t, err)
		assert.Equal(t, key, resp.StorageKey)
		assert.Equal(t, "https://storage.example.com/download", resp.DownloadURL)
		assert.Equal(t, expiresAt, resp.ExpiresAt)
		storage.AssertExpectations(t)
	})

	t.Run("rejects key belonging to another tenant", func(t *testing.T) {
		storage := new(MockObjectStorage)
		service := NewAttachmentService(storage, 15*time.Minute)

		otherKey := "attachments/" + uuid.New().String() + "/" + uuid.New().String() + ".jpg"
		_, err := service.ResolveDownload(ctx, tenantID, otherKey)
		assert.ErrorIs(t, err, shared.ErrNotFound)
		storage.AssertNotCalled(t, "ObjectExists")
	})

	t.Run("rejects malformed key", func(t *testing.T) {
		storage := new(MockObjectStorage)
		service := NewAttachmentService(storage, 15*time.Minute)

		_, err := service.ResolveDownload(ctx, tenantID, "../../etc/passwd")
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("missing object", func(t *testing.T) {
		storage := new(MockObjectStorage)
		service := NewAttachmentService(storage, 15*time.Minute)

		storage.On("ObjectExists", ctx, key).Return(false, nil)

		_, err := service.ResolveDownload(ctx, tenantID, key)
		assert.ErrorIs(t, err, shared.ErrNotFound)
		storage.AssertNotCalled(t, "GenerateDownloadURL")
	})
}

func TestAttachmentService_Delete(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	key := "outfits/" + tenantID.String() + "/" + uuid.New().String() + ".png"

	t.Run("deletes owned object", func(t *testing.T) {
		storage := new(MockObjectStorage)
		service := NewAttachmentService(storage, 15*time.Minute)

		storage.On("DeleteObject", ctx, key).Return(nil)

		err := service.Delete(ctx, tenantID, key)
		require.NoError(t, err)
		storage.AssertExpectations(t)
	})

	t.Run("refuses foreign key", func(t *testing.T) {
		storage := new(MockObjectStorage)
		service := NewAttachmentService(storage, 15*time.Minute)

		foreign := "outfits/" + uuid.New().String() + "/" + uuid.New().String() + ".png"
		err := service.Delete(ctx, tenantID, foreign)
		assert.ErrorIs(t, err, shared.ErrNotFound)
		storage.AssertNotCalled(t, "DeleteObject")
	})
}
