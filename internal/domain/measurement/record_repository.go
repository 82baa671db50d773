package measurement

import (
	"context"

	"github.com/google/uuid"

	"github.com/stitchdesk/backend/internal/domain/shared"
)

// RecordRepository defines persistence operations for measurement records
type RecordRepository interface {
	// FindByID finds a record by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Record, error)

	// FindLatest finds the most recent record for a customer and outfit pair.
	// Returns shared.ErrNotFound when no measurements were ever taken.
	FindLatest(ctx context.Context, tenantID, customerID, outfitID uuid.UUID) (*Record, error)

	// FindByCustomer finds all records for a customer, newest first
	FindByCustomer(ctx context.Context, tenantID, customerID uuid.UUID, filter shared.Filter) (*shared.Paginated[*Record], error)

	// Save persists a record together with its details
	Save(ctx context.Context, record *Record) error

	// Delete removes a record and its details
	Delete(ctx context.Context, id uuid.UUID) error
}
