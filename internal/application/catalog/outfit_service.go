package catalog

import (
	"context"

	"github.com/google/uuid"

	"github.com/stitchdesk/backend/internal/domain/catalog"
	"github.com/stitchdesk/backend/internal/domain/shared"
)

// OutfitService handles catalog outfit operations
type OutfitService struct {
	outfitRepo catalog.OutfitRepository
	fieldRepo  catalog.MeasurementFieldRepository
}

// NewOutfitService creates a new OutfitService
func NewOutfitService(outfitRepo catalog.OutfitRepository, fieldRepo catalog.MeasurementFieldRepository) *OutfitService {
	return &OutfitService{
		outfitRepo: outfitRepo,
		fieldRepo:  fieldRepo,
	}
}

// Create adds an outfit to the catalog
func (s *OutfitService) Create(ctx context.Context, tenantID uuid.UUID, req CreateOutfitRequest) (*OutfitResponse, error) {
	existing, err := s.outfitRepo.FindByCode(ctx, tenantID, req.Code)
	if err != nil && err != shared.ErrNotFound {
		return nil, err
	}
	if existing != nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Outfit with this code already exists")
	}

	outfit, err := catalog.NewOutfit(tenantID, req.Name, req.Code, req.StitchingPrice, req.AlterationPrice)
	if err != nil {
		return nil, err
	}
	if req.Description != "" {
		outfit.UpdateDescription(req.Description)
	}

	if err := s.outfitRepo.Save(ctx, outfit); err != nil {
		return nil, err
	}

	response := ToOutfitResponse(outfit)
	return &response, nil
}

// GetByID retrieves an outfit by ID
func (s *OutfitService) GetByID(ctx context.Context, tenantID, outfitID uuid.UUID) (*OutfitResponse, error) {
	outfit, err := s.outfitRepo.FindByIDForTenant(ctx, tenantID, outfitID)
	if err != nil {
		return nil, err
	}
	response := ToOutfitResponse(outfit)
	return &response, nil
}

// List retrieves outfits with search and pagination. Search matches
// name and code.
func (s *OutfitService) List(ctx context.Context, tenantID uuid.UUID, filter OutfitListFilter) ([]OutfitResponse, int64, error) {
	domainFilter := shared.DefaultFilter()
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}
	if filter.OrderBy != "" {
		domainFilter.OrderBy = filter.OrderBy
	}
	if filter.OrderDir != "" {
		domainFilter.OrderDir = filter.OrderDir
	}
	domainFilter.Search = filter.Search

	var outfits []catalog.Outfit
	var err error
	if filter.ActiveOnly {
		domainFilter.Filters["active"] = true
		outfits, err = s.outfitRepo.FindActive(ctx, tenantID, domainFilter)
	} else {
		outfits, err = s.outfitRepo.FindAllForTenant(ctx, tenantID, domainFilter)
	}
	if err != nil {
		return nil, 0, err
	}

	total, err := s.outfitRepo.CountForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]OutfitResponse, 0, len(outfits))
	for idx := range outfits {
		responses = append(responses, ToOutfitResponse(&outfits[idx]))
	}
	return responses, total, nil
}

// Update updates an outfit
func (s *OutfitService) Update(ctx context.Context, tenantID, outfitID uuid.UUID, req UpdateOutfitRequest) (*OutfitResponse, error) {
	outfit, err := s.outfitRepo.FindByIDForTenant(ctx, tenantID, outfitID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if err := outfit.UpdateName(*req.Name); err != nil {
			return nil, err
		}
	}
	if req.Description != nil {
		outfit.UpdateDescription(*req.Description)
	}
	if req.StitchingPrice != nil || req.AlterationPrice != nil {
		stitching := outfit.StitchingPrice
		alteration := outfit.AlterationPrice
		if req.StitchingPrice != nil {
			stitching = *req.StitchingPrice
		}
		if req.AlterationPrice != nil {
			alteration = *req.AlterationPrice
		}
		if err := outfit.UpdatePrices(stitching, alteration); err != nil {
			return nil, err
		}
	}

	if err := s.outfitRepo.Save(ctx, outfit); err != nil {
		return nil, err
	}

	response := ToOutfitResponse(outfit)
	return &response, nil
}

// SetImage records the storage key of the outfit's catalog image
func (s *OutfitService) SetImage(ctx context.Context, tenantID, outfitID uuid.UUID, imageKey string) error {
	outfit, err := s.outfitRepo.FindByIDForTenant(ctx, tenantID, outfitID)
	if err != nil {
		return err
	}
	outfit.SetImageKey(imageKey)
	return s.outfitRepo.Save(ctx, outfit)
}

// Deactivate removes an outfit from active offering
func (s *OutfitService) Deactivate(ctx context.Context, tenantID, outfitID uuid.UUID) error {
	outfit, err := s.outfitRepo.FindByIDForTenant(ctx, tenantID, outfitID)
	if err != nil {
		return err
	}
	if err := outfit.Deactivate(); err != nil {
		return err
	}
	return s.outfitRepo.Save(ctx, outfit)
}

// Activate restores an outfit to the active offering
func (s *OutfitService) Activate(ctx context.Context, tenantID, outfitID uuid.UUID) error {
	outfit, err := s.outfitRepo.FindByIDForTenant(ctx, tenantID, outfitID)
	if err != nil {
		return err
	}
	if err := outfit.Activate(); err != nil {
		return err
	}
	return s.outfitRepo.Save(ctx, outfit)
}

// ListMeasurementFields returns an outfit's measurement schema in
// display order
func (s *OutfitService) ListMeasurementFields(ctx context.Context, tenantID, outfitID uuid.UUID) ([]MeasurementFieldResponse, error) {
	fields, err := s.fieldRepo.FindByOutfit(ctx, tenantID, outfitID)
	if err != nil {
		return nil, err
	}
	responses := make([]MeasurementFieldResponse, 0, len(fields))
	for idx := range fields {
		responses = append(responses, ToMeasurementFieldResponse(&fields[idx]))
	}
	return responses, nil
}

// ReplaceMeasurementFields replaces the outfit's measurement schema.
// Sequence numbers follow the request order.
func (s *OutfitService) ReplaceMeasurementFields(ctx context.Context, tenantID, outfitID uuid.UUID, req ReplaceMeasurementFieldsRequest) ([]MeasurementFieldResponse, error) {
	if _, err := s.outfitRepo.FindByIDForTenant(ctx, tenantID, outfitID); err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(req.Fields))
	fields := make([]catalog.MeasurementField, 0, len(req.Fields))
	for idx, fr := range req.Fields {
		field, err := catalog.NewMeasurementField(tenantID, outfitID, fr.Name, catalog.FieldDataType(fr.DataType), idx+1)
		if err != nil {
			return nil, err
		}
		if seen[field.Name] {
			return nil, shared.NewDomainError("DUPLICATE_FIELD", "Measurement field names must be unique")
		}
		seen[field.Name] = true
		fields = append(fields, *field)
	}

	if err := s.fieldRepo.ReplaceForOutfit(ctx, tenantID, outfitID, fields); err != nil {
		return nil, err
	}

	responses := make([]MeasurementFieldResponse, 0, len(fields))
	for idx := range fields {
		responses = append(responses, ToMeasurementFieldResponse(&fields[idx]))
	}
	return responses, nil
}
