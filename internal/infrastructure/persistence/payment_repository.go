package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/stitchdesk/backend/internal/domain/finance"
	"github.com/stitchdesk/backend/internal/domain/shared"
)

// GormPaymentRepository implements finance.PaymentRepository using GORM
type GormPaymentRepository struct {
	db *gorm.DB
}

// NewGormPaymentRepository creates a new GormPaymentRepository
func NewGormPaymentRepository(db *gorm.DB) *GormPaymentRepository {
	return &GormPaymentRepository{db: db}
}

// FindByID finds a payment by its ID
func (r *GormPaymentRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.Payment, error) {
	var payment finance.Payment
	if err := r.db.WithContext(ctx).First(&payment, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &payment, nil
}

// FindByOrder finds all payments against an order, newest first
func (r *GormPaymentRepository) FindByOrder(ctx context.Context, tenantID, orderID uuid.UUID) ([]*finance.Payment, error) {
	var payments []*finance.Payment
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND order_id = ?", tenantID, orderID).
		Order("received_at DESC").
		Find(&payments).Error; err != nil {
		return nil, err
	}
	return payments, nil
}

// FindByCustomer finds a customer's payments
func (r *GormPaymentRepository) FindByCustomer(ctx context.Context, tenantID, customerID uuid.UUID, filter shared.Filter) (*shared.Paginated[*finance.Payment], error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&finance.Payment{}).
		Where("tenant_id = ? AND customer_id = ?", tenantID, customerID).
		Count(&total).Error; err != nil {
		return nil, err
	}

	page, pageSize := normalizePaging(filter)
	orderBy := ValidateSortField(filter.OrderBy, PaymentSortFields, "received_at")
	orderDir := ValidateSortOrder(filter.OrderDir)

	var payments []*finance.Payment
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND customer_id = ?", tenantID, customerID).
		Order(orderBy + " " + orderDir).
		Offset((page - 1) * pageSize).Limit(pageSize).
		Find(&payments).Error; err != nil {
		return nil, err
	}

	result := shared.NewPaginated(payments, total, page, pageSize)
	return &result, nil
}

// SumByOrder totals the non-voided payments against an order
func (r *GormPaymentRepository) SumByOrder(ctx context.Context, tenantID, orderID uuid.UUID) (decimal.Decimal, error) {
	var sum decimal.Decimal
	if err := r.db.WithContext(ctx).
		Model(&finance.Payment{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("tenant_id = ? AND order_id = ? AND voided = ?", tenantID, orderID, false).
		Scan(&sum).Error; err != nil {
		return decimal.Zero, err
	}
	return sum, nil
}

// Save persists a payment
func (r *GormPaymentRepository) Save(ctx context.Context, payment *finance.Payment) error {
	return r.db.WithContext(ctx).Save(payment).Error
}

var _ finance.PaymentRepository = (*GormPaymentRepository)(nil)
