package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/stitchdesk/backend/internal/domain/measurement"
	"github.com/stitchdesk/backend/internal/domain/shared"
)

// GormRecordRepository implements measurement.RecordRepository using GORM
type GormRecordRepository struct {
	db *gorm.DB
}

// NewGormRecordRepository creates a new GormRecordRepository
func NewGormRecordRepository(db *gorm.DB) *GormRecordRepository {
	return &GormRecordRepository{db: db}
}

// FindByID finds a record with its details by ID
func (r *GormRecordRepository) FindByID(ctx context.Context, id uuid.UUID) (*measurement.Record, error) {
	var record measurement.Record
	if err := r.db.WithContext(ctx).
		Preload("Details").
		First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &record, nil
}

// FindLatest finds the most recent record for a customer and outfit pair
func (r *GormRecordRepository) FindLatest(ctx context.Context, tenantID, customerID, outfitID uuid.UUID) (*measurement.Record, error) {
	var record measurement.Record
	if err := r.db.WithContext(ctx).
		Preload("Details").
		Where("tenant_id = ? AND customer_id = ? AND outfit_id = ?", tenantID, customerID, outfitID).
		Order("measured_at DESC").
		First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &record, nil
}

// FindByCustomer finds all records for a customer, newest first
func (r *GormRecordRepository) FindByCustomer(ctx context.Context, tenantID, customerID uuid.UUID, filter shared.Filter) (*shared.Paginated[*measurement.Record], error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&measurement.Record{}).
		Where("tenant_id = ? AND customer_id = ?", tenantID, customerID).
		Count(&total).Error; err != nil {
		return nil, err
	}

	page, pageSize := normalizePaging(filter)
	var records []*measurement.Record
	if err := r.db.WithContext(ctx).
		Preload("Details").
		Where("tenant_id = ? AND customer_id = ?", tenantID, customerID).
		Order("measured_at DESC").
		Offset((page - 1) * pageSize).Limit(pageSize).
		Find(&records).Error; err != nil {
		return nil, err
	}

	result := shared.NewPaginated(records, total, page, pageSize)
	return &result, nil
}

// Save persists a record together with its details.
// Details are replaced wholesale so edits never leave stale rows behind.
func (r *GormRecordRepository) Save(ctx context.Context, record *measurement.Record) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Details").Save(record).Error; err != nil {
			return err
		}
		if err := tx.
			Where("record_id = ?", record.ID).
			Delete(&measurement.RecordDetail{}).Error; err != nil {
			return err
		}
		if len(record.Details) == 0 {
			return nil
		}
		return tx.Create(&record.Details).Error
	})
}

// Delete removes a record and its details
func (r *GormRecordRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("record_id = ?", id).
			Delete(&measurement.RecordDetail{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&measurement.Record{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

var _ measurement.RecordRepository = (*GormRecordRepository)(nil)
