package orders

import (
	"context"

	"github.com/google/uuid"

	"github.com/stitchdesk/backend/internal/domain/shared"
)

// OrderRepository defines persistence operations for placed orders
type OrderRepository interface {
	// FindByID finds an order with its details by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)

	// FindByIDForTenant finds an order scoped to a tenant
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Order, error)

	// FindByNumber finds an order by its order number
	FindByNumber(ctx context.Context, tenantID uuid.UUID, orderNumber string) (*Order, error)

	// FindAllForTenant finds orders for a tenant. Filter.Search matches
	// order number and customer name.
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (*shared.Paginated[*Order], error)

	// FindByCustomer finds a customer's orders, newest first
	FindByCustomer(ctx context.Context, tenantID, customerID uuid.UUID, filter shared.Filter) (*shared.Paginated[*Order], error)

	// FindByStatus finds orders in a given status
	FindByStatus(ctx context.Context, tenantID uuid.UUID, status OrderStatus, filter shared.Filter) (*shared.Paginated[*Order], error)

	// FindByJobber finds orders with at least one detail assigned to
	// the jobber
	FindByJobber(ctx context.Context, tenantID, jobberID uuid.UUID, filter shared.Filter) (*shared.Paginated[*Order], error)

	// NextOrderNumber issues the next sequential order number for the
	// tenant, in the form ORD-<year>-<seq>
	NextOrderNumber(ctx context.Context, tenantID uuid.UUID) (string, error)

	// Save persists an order and its details
	Save(ctx context.Context, order *Order) error

	// Delete removes an order
	Delete(ctx context.Context, id uuid.UUID) error

	// CountByStatus counts a tenant's orders per status
	CountByStatus(ctx context.Context, tenantID uuid.UUID) (map[OrderStatus]int64, error)
}
