package partner

import (
	"context"

	"github.com/google/uuid"

	"github.com/stitchdesk/backend/internal/domain/partner"
	"github.com/stitchdesk/backend/internal/domain/shared"
)

// CustomerService handles customer-related business operations
type CustomerService struct {
	customerRepo   partner.CustomerRepository
	eventPublisher shared.EventPublisher
}

// NewCustomerService creates a new CustomerService
func NewCustomerService(customerRepo partner.CustomerRepository) *CustomerService {
	return &CustomerService{
		customerRepo: customerRepo,
	}
}

// SetEventPublisher sets the event publisher for cross-context integration
func (s *CustomerService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Create creates a new customer
func (s *CustomerService) Create(ctx context.Context, tenantID uuid.UUID, req CreateCustomerRequest) (*CustomerResponse, error) {
	// One mobile number per customer within a tenant
	existing, err := s.customerRepo.FindByMobile(ctx, tenantID, req.Mobile)
	if err != nil && err != shared.ErrNotFound {
		return nil, err
	}
	if existing != nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Customer with this mobile already exists")
	}

	customer, err := partner.NewCustomer(tenantID, req.Name, req.Mobile, req.SiteCode)
	if err != nil {
		return nil, err
	}

	if req.Email != "" {
		if err := customer.UpdateEmail(req.Email); err != nil {
			return nil, err
		}
	}
	if req.Address != "" {
		customer.UpdateAddress(req.Address)
	}
	if req.Notes != "" {
		customer.SetNotes(req.Notes)
	}

	if err := s.customerRepo.Save(ctx, customer); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, customer)

	response := ToCustomerResponse(customer)
	return &response, nil
}

// GetByID retrieves a customer by ID
func (s *CustomerService) GetByID(ctx context.Context, tenantID, customerID uuid.UUID) (*CustomerResponse, error) {
	customer, err := s.customerRepo.FindByIDForTenant(ctx, tenantID, customerID)
	if err != nil {
		return nil, err
	}
	response := ToCustomerResponse(customer)
	return &response, nil
}

// List retrieves customers with search and pagination. Search matches
// name and mobile number.
func (s *CustomerService) List(ctx context.Context, tenantID uuid.UUID, filter CustomerListFilter) ([]CustomerResponse, int64, error) {
	domainFilter := buildCustomerFilter(filter)

	customers, err := s.customerRepo.FindAllForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.customerRepo.CountForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]CustomerResponse, 0, len(customers))
	for idx := range customers {
		responses = append(responses, ToCustomerResponse(&customers[idx]))
	}
	return responses, total, nil
}

// Update updates a customer
func (s *CustomerService) Update(ctx context.Context, tenantID, customerID uuid.UUID, req UpdateCustomerRequest) (*CustomerResponse, error) {
	customer, err := s.customerRepo.FindByIDForTenant(ctx, tenantID, customerID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if err := customer.UpdateName(*req.Name); err != nil {
			return nil, err
		}
	}
	if req.Mobile != nil && *req.Mobile != customer.Mobile {
		existing, err := s.customerRepo.FindByMobile(ctx, tenantID, *req.Mobile)
		if err != nil && err != shared.ErrNotFound {
			return nil, err
		}
		if existing != nil && existing.ID != customer.ID {
			return nil, shared.NewDomainError("ALREADY_EXISTS", "Customer with this mobile already exists")
		}
		if err := customer.UpdateMobile(*req.Mobile); err != nil {
			return nil, err
		}
	}
	if req.Email != nil {
		if err := customer.UpdateEmail(*req.Email); err != nil {
			return nil, err
		}
	}
	if req.SiteCode != nil {
		if err := customer.UpdateSiteCode(*req.SiteCode); err != nil {
			return nil, err
		}
	}
	if req.Address != nil {
		customer.UpdateAddress(*req.Address)
	}
	if req.Notes != nil {
		customer.SetNotes(*req.Notes)
	}

	if err := s.customerRepo.Save(ctx, customer); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, customer)

	response := ToCustomerResponse(customer)
	return &response, nil
}

// Deactivate deactivates a customer
func (s *CustomerService) Deactivate(ctx context.Context, tenantID, customerID uuid.UUID) error {
	customer, err := s.customerRepo.FindByIDForTenant(ctx, tenantID, customerID)
	if err != nil {
		return err
	}
	if err := customer.Deactivate(); err != nil {
		return err
	}
	if err := s.customerRepo.Save(ctx, customer); err != nil {
		return err
	}
	s.publishEvents(ctx, customer)
	return nil
}

// Activate reactivates a customer
func (s *CustomerService) Activate(ctx context.Context, tenantID, customerID uuid.UUID) error {
	customer, err := s.customerRepo.FindByIDForTenant(ctx, tenantID, customerID)
	if err != nil {
		return err
	}
	if err := customer.Activate(); err != nil {
		return err
	}
	if err := s.customerRepo.Save(ctx, customer); err != nil {
		return err
	}
	s.publishEvents(ctx, customer)
	return nil
}

func (s *CustomerService) publishEvents(ctx context.Context, customer *partner.Customer) {
	if s.eventPublisher == nil {
		return
	}
	if err := s.eventPublisher.Publish(ctx, customer.GetDomainEvents()...); err == nil {
		customer.ClearDomainEvents()
	}
}

func buildCustomerFilter(filter CustomerListFilter) shared.Filter {
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
	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
	}
	return domainFilter
}
