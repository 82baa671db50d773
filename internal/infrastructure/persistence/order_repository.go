package persistence

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/stitchdesk/backend/internal/domain/orders"
	"github.com/stitchdesk/backend/internal/domain/shared"
)

// GormOrderRepository implements orders.OrderRepository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// FindByID finds an order with its details by ID
func (r *GormOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*orders.Order, error) {
	var order orders.Order
	if err := r.db.WithContext(ctx).
		Preload("Details").
		First(&order, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

// FindByIDForTenant finds an order scoped to a tenant
func (r *GormOrderRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*orders.Order, error) {
	var order orders.Order
	if err := r.db.WithContext(ctx).
		Preload("Details").
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

// FindByNumber finds an order by its order number
func (r *GormOrderRepository) FindByNumber(ctx context.Context, tenantID uuid.UUID, orderNumber string) (*orders.Order, error) {
	var order orders.Order
	if err := r.db.WithContext(ctx).
		Preload("Details").
		Where("tenant_id = ? AND order_number = ?", tenantID, orderNumber).
		First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

// FindAllForTenant finds orders for a tenant
func (r *GormOrderRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (*shared.Paginated[*orders.Order], error) {
	return r.findPaginated(ctx, filter, func(query *gorm.DB) *gorm.DB {
		return query.Where("tenant_id = ?", tenantID)
	})
}

// FindByCustomer finds a customer's orders, newest first
func (r *GormOrderRepository) FindByCustomer(ctx context.Context, tenantID, customerID uuid.UUID, filter shared.Filter) (*shared.Paginated[*orders.Order], error) {
	return r.findPaginated(ctx, filter, func(query *gorm.DB) *gorm.DB {
		return query.Where("tenant_id = ? AND customer_id = ?", tenantID, customerID)
	})
}

// FindByStatus finds orders in a given status
func (r *GormOrderRepository) FindByStatus(ctx context.Context, tenantID uuid.UUID, status orders.OrderStatus, filter shared.Filter) (*shared.Paginated[*orders.Order], error) {
	return r.findPaginated(ctx, filter, func(query *gorm.DB) *gorm.DB {
		return query.Where("tenant_id = ? AND status = ?", tenantID, status)
	})
}

// FindByJobber finds orders with at least one detail assigned to the jobber
func (r *GormOrderRepository) FindByJobber(ctx context.Context, tenantID, jobberID uuid.UUID, filter shared.Filter) (*shared.Paginated[*orders.Order], error) {
	return r.findPaginated(ctx, filter, func(query *gorm.DB) *gorm.DB {
		return query.
			Where("tenant_id = ?", tenantID).
			Where("id IN (?)", r.db.Model(&orders.OrderDetail{}).
				Select("order_id").
				Where("jobber_id = ?", jobberID))
	})
}

// NextOrderNumber issues the next sequential order number for the tenant.
// Numbers restart at 1 each calendar year.
func (r *GormOrderRepository) NextOrderNumber(ctx context.Context, tenantID uuid.UUID) (string, error) {
	prefix := fmt.Sprintf("ORD-%d-", time.Now().Year())

	var last string
	err := r.db.WithContext(ctx).
		Model(&orders.Order{}).
		Select("order_number").
		Where("tenant_id = ? AND order_number LIKE ?", tenantID, prefix+"%").
		Order("order_number DESC").
		Limit(1).
		Scan(&last).Error
	if err != nil {
		return "", err
	}

	seq := 1
	if last != "" {
		n, err := strconv.Atoi(strings.TrimPrefix(last, prefix))
		if err != nil {
			return "", fmt.Errorf("malformed order number %q: %w", last, err)
		}
		seq = n + 1
	}
	return fmt.Sprintf("%s%04d", prefix, seq), nil
}

// Save persists an order and its details.
// Details are replaced wholesale so removals and jobber reassignments
// never leave stale rows behind.
func (r *GormOrderRepository) Save(ctx context.Context, order *orders.Order) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Details").Save(order).Error; err != nil {
			return err
		}
		if err := tx.
			Where("order_id = ?", order.ID).
			Delete(&orders.OrderDetail{}).Error; err != nil {
			return err
		}
		if len(order.Details) == 0 {
			return nil
		}
		return tx.Create(&order.Details).Error
	})
}

// Delete removes an order and its details
func (r *GormOrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("order_id = ?", id).
			Delete(&orders.OrderDetail{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&orders.Order{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// CountByStatus counts a tenant's orders per status
func (r *GormOrderRepository) CountByStatus(ctx context.Context, tenantID uuid.UUID) (map[orders.OrderStatus]int64, error) {
	type row struct {
		Status orders.OrderStatus
		Count  int64
	}
	var rows []row
	if err := r.db.WithContext(ctx).
		Model(&orders.Order{}).
		Select("status, COUNT(*) as count").
		Where("tenant_id = ?", tenantID).
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	counts := make(map[orders.OrderStatus]int64, len(rows))
	for _, r := range rows {
		counts[r.Status] = r.Count
	}
	return counts, nil
}

func (r *GormOrderRepository) findPaginated(ctx context.Context, filter shared.Filter, scope func(*gorm.DB) *gorm.DB) (*shared.Paginated[*orders.Order], error) {
	var total int64
	countQuery := r.applySearch(scope(r.db.WithContext(ctx).Model(&orders.Order{})), filter)
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, err
	}

	page, pageSize := normalizePaging(filter)
	orderBy := ValidateSortField(filter.OrderBy, OrderSortFields, "order_date")
	orderDir := ValidateSortOrder(filter.OrderDir)

	var result []*orders.Order
	query := r.applySearch(scope(r.db.WithContext(ctx).Model(&orders.Order{})), filter).
		Preload("Details").
		Order(orderBy + " " + orderDir).
		Offset((page - 1) * pageSize).Limit(pageSize)
	if err := query.Find(&result).Error; err != nil {
		return nil, err
	}

	paginated := shared.NewPaginated(result, total, page, pageSize)
	return &paginated, nil
}

func (r *GormOrderRepository) applySearch(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("LOWER(order_number) LIKE LOWER(?) OR LOWER(customer_name) LIKE LOWER(?)", pattern, pattern)
	}
	return query
}

var _ orders.OrderRepository = (*GormOrderRepository)(nil)
