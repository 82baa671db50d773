package partner

import (
	"context"

	"github.com/google/uuid"

	"github.com/stitchdesk/backend/internal/domain/partner"
	"github.com/stitchdesk/backend/internal/domain/shared"
)

// JobberService handles jobber-related business operations
type JobberService struct {
	jobberRepo partner.JobberRepository
}

// NewJobberService creates a new JobberService
func NewJobberService(jobberRepo partner.JobberRepository) *JobberService {
	return &JobberService{
		jobberRepo: jobberRepo,
	}
}

// Create registers a new jobber
func (s *JobberService) Create(ctx context.Context, tenantID uuid.UUID, req CreateJobberRequest) (*JobberResponse, error) {
	jobber, err := partner.NewJobber(tenantID, req.Name, req.Mobile)
	if err != nil {
		return nil, err
	}

	if req.Specialities != "" {
		jobber.SetSpecialities(req.Specialities)
	}
	if req.Address != "" {
		jobber.SetAddress(req.Address)
	}
	if req.Notes != "" {
		jobber.SetNotes(req.Notes)
	}

	if err := s.jobberRepo.Save(ctx, jobber); err != nil {
		return nil, err
	}

	response := ToJobberResponse(jobber)
	return &response, nil
}

// GetByID retrieves a jobber by ID
func (s *JobberService) GetByID(ctx context.Context, tenantID, jobberID uuid.UUID) (*JobberResponse, error) {
	jobber, err := s.jobberRepo.FindByIDForTenant(ctx, tenantID, jobberID)
	if err != nil {
		return nil, err
	}
	response := ToJobberResponse(jobber)
	return &response, nil
}

// List retrieves jobbers with search and pagination
func (s *JobberService) List(ctx context.Context, tenantID uuid.UUID, filter JobberListFilter) ([]JobberResponse, int64, error) {
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
	if filter.Active != nil {
		domainFilter.Filters["active"] = *filter.Active
	}

	jobbers, err := s.jobberRepo.FindAllForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.jobberRepo.CountForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]JobberResponse, 0, len(jobbers))
	for idx := range jobbers {
		responses = append(responses, ToJobberResponse(&jobbers[idx]))
	}
	return responses, total, nil
}

// Update updates a jobber
func (s *JobberService) Update(ctx context.Context, tenantID, jobberID uuid.UUID, req UpdateJobberRequest) (*JobberResponse, error) {
	jobber, err := s.jobberRepo.FindByIDForTenant(ctx, tenantID, jobberID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if err := jobber.UpdateName(*req.Name); err != nil {
			return nil, err
		}
	}
	if req.Mobile != nil {
		if err := jobber.UpdateMobile(*req.Mobile); err != nil {
			return nil, err
		}
	}
	if req.Specialities != nil {
		jobber.SetSpecialities(*req.Specialities)
	}
	if req.Address != nil {
		jobber.SetAddress(*req.Address)
	}
	if req.Notes != nil {
		jobber.SetNotes(*req.Notes)
	}

	if err := s.jobberRepo.Save(ctx, jobber); err != nil {
		return nil, err
	}

	response := ToJobberResponse(jobber)
	return &response, nil
}

// Deactivate deactivates a jobber
func (s *JobberService) Deactivate(ctx context.Context, tenantID, jobberID uuid.UUID) error {
	jobber, err := s.jobberRepo.FindByIDForTenant(ctx, tenantID, jobberID)
	if err != nil {
		return err
	}
	if err := jobber.Deactivate(); err != nil {
		return err
	}
	return s.jobberRepo.Save(ctx, jobber)
}

// Activate reactivates a jobber
func (s *JobberService) Activate(ctx context.Context, tenantID, jobberID uuid.UUID) error {
	jobber, err := s.jobberRepo.FindByIDForTenant(ctx, tenantID, jobberID)
	if err != nil {
		return err
	}
	if err := jobber.Activate(); err != nil {
		return err
	}
	return s.jobberRepo.Save(ctx, jobber)
}
