package catalog

import (
	"context"

	"github.com/stitchdesk/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// OutfitRepository defines the interface for outfit persistence
type OutfitRepository interface {
	// FindByID finds an outfit by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Outfit, error)

	// FindByIDForTenant finds an outfit by ID within a tenant
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Outfit, error)

	// FindByCode finds an outfit by its code within a tenant
	FindByCode(ctx context.Context, tenantID uuid.UUID, code string) (*Outfit, error)

	// FindAllForTenant finds all outfits for a tenant.
	// The filter's Search term matches name and code.
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Outfit, error)

	// FindActive finds active outfits for a tenant
	FindActive(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Outfit, error)

	// Save creates or updates an outfit
	Save(ctx context.Context, outfit *Outfit) error

	// Delete deletes an outfit by ID
	Delete(ctx context.Context, id uuid.UUID) error

	// CountForTenant counts outfits for a tenant matching the filter
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error)
}

// MeasurementFieldRepository defines the interface for measurement field persistence
type MeasurementFieldRepository interface {
	// FindByID finds a field definition by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*MeasurementField, error)

	// FindByOutfit returns an outfit's field definitions ordered by Seq
	FindByOutfit(ctx context.Context, tenantID, outfitID uuid.UUID) ([]MeasurementField, error)

	// Save creates or updates a field definition
	Save(ctx context.Context, field *MeasurementField) error

	// Delete deletes a field definition by ID
	Delete(ctx context.Context, id uuid.UUID) error

	// ReplaceForOutfit atomically replaces all field definitions of an outfit
	ReplaceForOutfit(ctx context.Context, tenantID, outfitID uuid.UUID, fields []MeasurementField) error
}
