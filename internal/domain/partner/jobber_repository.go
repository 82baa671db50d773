package partner

import (
	"context"

	"github.com/stitchdesk/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// JobberRepository defines the interface for jobber persistence
type JobberRepository interface {
	// FindByID finds a jobber by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Jobber, error)

	// FindByIDForTenant finds a jobber by ID within a tenant
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Jobber, error)

	// FindAllForTenant finds all jobbers for a tenant.
	// The filter's Search term matches name and mobile.
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Jobber, error)

	// FindActive finds active jobbers for a tenant
	FindActive(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Jobber, error)

	// Save creates or updates a jobber
	Save(ctx context.Context, jobber *Jobber) error

	// Delete deletes a jobber by ID
	Delete(ctx context.Context, id uuid.UUID) error

	// CountForTenant counts jobbers for a tenant matching the filter
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error)
}
