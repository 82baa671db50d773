package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/stitchdesk/backend/internal/domain/partner"
	"github.com/stitchdesk/backend/internal/domain/shared"
)

// GormJobberRepository implements JobberRepository using GORM
type GormJobberRepository struct {
	db *gorm.DB
}

// NewGormJobberRepository creates a new GormJobberRepository
func NewGormJobberRepository(db *gorm.DB) *GormJobberRepository {
	return &GormJobberRepository{db: db}
}

// FindByID finds a jobber by its ID
func (r *GormJobberRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Jobber, error) {
	var jobber partner.Jobber
	if err := r.db.WithContext(ctx).First(&jobber, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &jobber, nil
}

// FindByIDForTenant finds a jobber by ID within a tenant
func (r *GormJobberRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*partner.Jobber, error) {
	var jobber partner.Jobber
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&jobber).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &jobber, nil
}

// FindAllForTenant finds all jobbers for a tenant
func (r *GormJobberRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]partner.Jobber, error) {
	var jobbers []partner.Jobber
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&partner.Jobber{}).Where("tenant_id = ?", tenantID),
		filter,
	)
	if err := query.Find(&jobbers).Error; err != nil {
		return nil, err
	}
	return jobbers, nil
}

// FindActive finds active jobbers for a tenant
func (r *GormJobberRepository) FindActive(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]partner.Jobber, error) {
	var jobbers []partner.Jobber
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&partner.Jobber{}).
			Where("tenant_id = ? AND active = ?", tenantID, true),
		filter,
	)
	if err := query.Find(&jobbers).Error; err != nil {
		return nil, err
	}
	return jobbers, nil
}

// Save creates or updates a jobber
func (r *GormJobberRepository) Save(ctx context.Context, jobber *partner.Jobber) error {
	return r.db.WithContext(ctx).Save(jobber).Error
}

// Delete deletes a jobber
func (r *GormJobberRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&partner.Jobber{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// CountForTenant counts jobbers for a tenant
func (r *GormJobberRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(
		r.db.WithContext(ctx).Model(&partner.Jobber{}).Where("tenant_id = ?", tenantID),
		filter,
	)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormJobberRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.PageSize)
	}

	if filter.OrderBy == "" {
		return query.Order("name ASC")
	}
	orderBy := ValidateSortField(filter.OrderBy, JobberSortFields, "name")
	return query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))
}

func (r *GormJobberRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("LOWER(name) LIKE LOWER(?) OR mobile LIKE ?", pattern, pattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "active":
			query = query.Where("active = ?", value)
		}
	}
	return query
}

var _ partner.JobberRepository = (*GormJobberRepository)(nil)
