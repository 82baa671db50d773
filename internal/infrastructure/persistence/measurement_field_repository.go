package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/stitchdesk/backend/internal/domain/catalog"
	"github.com/stitchdesk/backend/internal/domain/shared"
)

// GormMeasurementFieldRepository implements MeasurementFieldRepository using GORM
type GormMeasurementFieldRepository struct {
	db *gorm.DB
}

// NewGormMeasurementFieldRepository creates a new GormMeasurementFieldRepository
func NewGormMeasurementFieldRepository(db *gorm.DB) *GormMeasurementFieldRepository {
	return &GormMeasurementFieldRepository{db: db}
}

// FindByID finds a field definition by its ID
func (r *GormMeasurementFieldRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.MeasurementField, error) {
	var field catalog.MeasurementField
	if err := r.db.WithContext(ctx).First(&field, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &field, nil
}

// FindByOutfit returns an outfit's field definitions ordered by Seq
func (r *GormMeasurementFieldRepository) FindByOutfit(ctx context.Context, tenantID, outfitID uuid.UUID) ([]catalog.MeasurementField, error) {
	var fields []catalog.MeasurementField
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND outfit_id = ?", tenantID, outfitID).
		Order("seq ASC").
		Find(&fields).Error; err != nil {
		return nil, err
	}
	return fields, nil
}

// Save creates or updates a field definition
func (r *GormMeasurementFieldRepository) Save(ctx context.Context, field *catalog.MeasurementField) error {
	return r.db.WithContext(ctx).Save(field).Error
}

// Delete deletes a field definition
func (r *GormMeasurementFieldRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&catalog.MeasurementField{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// ReplaceForOutfit atomically replaces all field definitions of an outfit
func (r *GormMeasurementFieldRepository) ReplaceForOutfit(ctx context.Context, tenantID, outfitID uuid.UUID, fields []catalog.MeasurementField) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("tenant_id = ? AND outfit_id = ?", tenantID, outfitID).
			Delete(&catalog.MeasurementField{}).Error; err != nil {
			return err
		}
		if len(fields) == 0 {
			return nil
		}
		return tx.Create(&fields).Error
	})
}

var _ catalog.MeasurementFieldRepository = (*GormMeasurementFieldRepository)(nil)
