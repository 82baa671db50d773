package finance

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/stitchdesk/backend/internal/domain/shared"
)

// PaymentRepository defines persistence operations for payments
type PaymentRepository interface {
	// FindByID finds a payment by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Payment, error)

	// FindByOrder finds all payments against an order, newest first
	FindByOrder(ctx context.Context, tenantID, orderID uuid.UUID) ([]*Payment, error)

	// FindByCustomer finds a customer's payments
	FindByCustomer(ctx context.Context, tenantID, customerID uuid.UUID, filter shared.Filter) (*shared.Paginated[*Payment], error)

	// SumByOrder totals the non-voided payments against an order
	SumByOrder(ctx context.Context, tenantID, orderID uuid.UUID) (decimal.Decimal, error)

	// Save persists a payment
	Save(ctx context.Context, payment *Payment) error
}
