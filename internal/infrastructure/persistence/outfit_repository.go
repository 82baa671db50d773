package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/stitchdesk/backend/internal/domain/catalog"
	"github.com/stitchdesk/backend/internal/domain/shared"
)

// GormOutfitRepository implements OutfitRepository using GORM
type GormOutfitRepository struct {
	db *gorm.DB
}

// NewGormOutfitRepository creates a new GormOutfitRepository
func NewGormOutfitRepository(db *gorm.DB) *GormOutfitRepository {
	return &GormOutfitRepository{db: db}
}

// FindByID finds an outfit by its ID
func (r *GormOutfitRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Outfit, error) {
	var outfit catalog.Outfit
	if err := r.db.WithContext(ctx).First(&outfit, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &outfit, nil
}

// FindByIDForTenant finds an outfit by ID within a tenant
func (r *GormOutfitRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*catalog.Outfit, error) {
	var outfit catalog.Outfit
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&outfit).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &outfit, nil
}

// FindByCode finds an outfit by its code within a tenant
func (r *GormOutfitRepository) FindByCode(ctx context.Context, tenantID uuid.UUID, code string) (*catalog.Outfit, error) {
	var outfit catalog.Outfit
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND code = ?", tenantID, strings.ToUpper(code)).
		First(&outfit).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &outfit, nil
}

// FindAllForTenant finds all outfits for a tenant
func (r *GormOutfitRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]catalog.Outfit, error) {
	var outfits []catalog.Outfit
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&catalog.Outfit{}).Where("tenant_id = ?", tenantID),
		filter,
	)
	if err := query.Find(&outfits).Error; err != nil {
		return nil, err
	}
	return outfits, nil
}

// FindActive finds active outfits for a tenant
func (r *GormOutfitRepository) FindActive(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]catalog.Outfit, error) {
	var outfits []catalog.Outfit
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&catalog.Outfit{}).
			Where("tenant_id = ? AND active = ?", tenantID, true),
		filter,
	)
	if err := query.Find(&outfits).Error; err != nil {
		return nil, err
	}
	return outfits, nil
}

// Save creates or updates an outfit
func (r *GormOutfitRepository) Save(ctx context.Context, outfit *catalog.Outfit) error {
	return r.db.WithContext(ctx).Save(outfit).Error
}

// Delete deletes an outfit
func (r *GormOutfitRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&catalog.Outfit{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// CountForTenant counts outfits for a tenant
func (r *GormOutfitRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(
		r.db.WithContext(ctx).Model(&catalog.Outfit{}).Where("tenant_id = ?", tenantID),
		filter,
	)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormOutfitRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.PageSize)
	}

	if filter.OrderBy == "" {
		return query.Order("name ASC")
	}
	orderBy := ValidateSortField(filter.OrderBy, OutfitSortFields, "name")
	return query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))
}

func (r *GormOutfitRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("LOWER(name) LIKE LOWER(?) OR LOWER(code) LIKE LOWER(?)", pattern, pattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "active":
			query = query.Where("active = ?", value)
		}
	}
	return query
}

var _ catalog.OutfitRepository = (*GormOutfitRepository)(nil)
