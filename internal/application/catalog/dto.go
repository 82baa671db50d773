package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/stitchdesk/backend/internal/domain/catalog"
)

// CreateOutfitRequest represents a request to add an outfit to the catalog
type CreateOutfitRequest struct {
	Name            string          `json:"name" binding:"required,min=1,max=200"`
	Code            string          `json:"code" binding:"required,min=1,max=20"`
	Description     string          `json:"description" binding:"max=500"`
	StitchingPrice  decimal.Decimal `json:"stitching_price" binding:"required"`
	AlterationPrice decimal.Decimal `json:"alteration_price" binding:"required"`
}

// UpdateOutfitRequest represents a request to update an outfit
type UpdateOutfitRequest struct {
	Name            *string          `json:"name" binding:"omitempty,min=1,max=200"`
	Description     *string          `json:"description" binding:"omitempty,max=500"`
	StitchingPrice  *decimal.Decimal `json:"stitching_price"`
	AlterationPrice *decimal.Decimal `json:"alteration_price"`
}

// OutfitResponse represents an outfit in API responses
type OutfitResponse struct {
	ID              uuid.UUID       `json:"id"`
	Name            string          `json:"name"`
	Code            string          `json:"code"`
	Description     string          `json:"description"`
	ImageKey        string          `json:"image_key"`
	StitchingPrice  decimal.Decimal `json:"stitching_price"`
	AlterationPrice decimal.Decimal `json:"alteration_price"`
	Active          bool            `json:"active"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// OutfitListFilter represents filter options for outfit list
type OutfitListFilter struct {
	Search     string `form:"search"`
	ActiveOnly bool   `form:"active_only"`
	Page       int    `form:"page" binding:"omitempty,min=1"`
	PageSize   int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy    string `form:"order_by"`
	OrderDir   string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// MeasurementFieldRequest is one field definition in a replace request
type MeasurementFieldRequest struct {
	Name     string `json:"name" binding:"required,min=1,max=100"`
	DataType string `json:"data_type" binding:"required,oneof=text number"`
}

// ReplaceMeasurementFieldsRequest replaces an outfit's measurement schema.
// Field order in the list is the display order.
type ReplaceMeasurementFieldsRequest struct {
	Fields []MeasurementFieldRequest `json:"fields" binding:"required,dive"`
}

// MeasurementFieldResponse represents a field definition in API responses
type MeasurementFieldResponse struct {
	ID       uuid.UUID `json:"id"`
	OutfitID uuid.UUID `json:"outfit_id"`
	Name     string    `json:"name"`
	DataType string    `json:"data_type"`
	Seq      int       `json:"seq"`
}

// InitiateUploadRequest asks for a presigned upload slot
type InitiateUploadRequest struct {
	FileName    string `json:"file_name" binding:"required,min=1,max=255"`
	ContentType string `json:"content_type" binding:"required"`
	Purpose     string `json:"purpose" binding:"required,oneof=attachment outfit"`
}

// InitiateUploadResponse carries the presigned upload URL and storage key
type InitiateUploadResponse struct {
	StorageKey string    `json:"storage_key"`
	UploadURL  string    `json:"upload_url"`
	ExpiresAt  time.Time `json:"expires_at"`
}

// DownloadURLResponse carries a presigned download URL
type DownloadURLResponse struct {
	StorageKey  string    `json:"storage_key"`
	DownloadURL string    `json:"download_url"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// ToOutfitResponse converts a domain outfit to a response DTO
func ToOutfitResponse(outfit *catalog.Outfit) OutfitResponse {
	return OutfitResponse{
		ID:              outfit.ID,
		Name:            outfit.Name,
		Code:            outfit.Code,
		Description:     outfit.Description,
		ImageKey:        outfit.ImageKey,
		StitchingPrice:  outfit.StitchingPrice,
		AlterationPrice: outfit.AlterationPrice,
		Active:          outfit.Active,
		CreatedAt:       outfit.CreatedAt,
		UpdatedAt:       outfit.UpdatedAt,
	}
}

// ToMeasurementFieldResponse converts a field definition to a response DTO
func ToMeasurementFieldResponse(field *catalog.MeasurementField) MeasurementFieldResponse {
	return MeasurementFieldResponse{
		ID:       field.ID,
		OutfitID: field.OutfitID,
		Name:     field.Name,
		DataType: string(field.DataType),
		Seq:      field.Seq,
	}
}
