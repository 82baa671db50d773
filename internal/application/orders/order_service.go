package orders

import (
	"context"

	"github.com/google/uuid"

	"github.com/stitchdesk/backend/internal/domain/orders"
	"github.com/stitchdesk/backend/internal/domain/partner"
	"github.com/stitchdesk/backend/internal/domain/shared"
)

// OrderService handles placed-order operations: listing, workshop
// status transitions and jobber assignment
type OrderService struct {
	orderRepo      orders.OrderRepository
	jobberRepo     partner.JobberRepository
	eventPublisher shared.EventPublisher
}

// NewOrderService creates a new OrderService
func NewOrderService(orderRepo orders.OrderRepository, jobberRepo partner.JobberRepository) *OrderService {
	return &OrderService{
		orderRepo:  orderRepo,
		jobberRepo: jobberRepo,
	}
}

// SetEventPublisher sets the event publisher for cross-context integration
func (s *OrderService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// GetByID retrieves an order by ID
func (s *OrderService) GetByID(ctx context.Context, tenantID, orderID uuid.UUID) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByIDForTenant(ctx, tenantID, orderID)
	if err != nil {
		return nil, err
	}
	response := ToOrderResponse(order)
	return &response, nil
}

// GetByNumber retrieves an order by its order number
func (s *OrderService) GetByNumber(ctx context.Context, tenantID uuid.UUID, orderNumber string) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByNumber(ctx, tenantID, orderNumber)
	if err != nil {
		return nil, err
	}
	response := ToOrderResponse(order)
	return &response, nil
}

// List retrieves orders with filtering and pagination. Search matches
// order number and customer name. hasMore signals whether further pages
// exist, for load-more style clients.
func (s *OrderService) List(ctx context.Context, tenantID uuid.UUID, filter OrderListFilter) ([]OrderResponse, int64, bool, error) {
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

	var page *shared.Paginated[*orders.Order]
	var err error
	switch {
	case filter.JobberID != nil:
		page, err = s.orderRepo.FindByJobber(ctx, tenantID, *filter.JobberID, domainFilter)
	case filter.CustomerID != nil:
		page, err = s.orderRepo.FindByCustomer(ctx, tenantID, *filter.CustomerID, domainFilter)
	case filter.Status != "":
		page, err = s.orderRepo.FindByStatus(ctx, tenantID, orders.OrderStatus(filter.Status), domainFilter)
	default:
		page, err = s.orderRepo.FindAllForTenant(ctx, tenantID, domainFilter)
	}
	if err != nil {
		return nil, 0, false, err
	}

	responses := make([]OrderResponse, 0, len(page.Items))
	for _, order := range page.Items {
		responses = append(responses, ToOrderResponse(order))
	}
	return responses, page.Total, page.HasMore(), nil
}

// AssignJobber assigns an active jobber to one order detail
func (s *OrderService) AssignJobber(ctx context.Context, tenantID, orderID, detailID uuid.UUID, req AssignJobberRequest) (*OrderResponse, error) {
	jobber, err := s.jobberRepo.FindByIDForTenant(ctx, tenantID, req.JobberID)
	if err != nil {
		return nil, err
	}
	if !jobber.Active {
		return nil, shared.NewDomainError("JOBBER_INACTIVE", "Jobber is not active")
	}

	order, err := s.orderRepo.FindByIDForTenant(ctx, tenantID, orderID)
	if err != nil {
		return nil, err
	}
	if err := order.AssignJobber(detailID, jobber.ID); err != nil {
		return nil, err
	}
	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, order)

	response := ToOrderResponse(order)
	return &response, nil
}

// UnassignJobber removes the jobber from one order detail
func (s *OrderService) UnassignJobber(ctx context.Context, tenantID, orderID, detailID uuid.UUID) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByIDForTenant(ctx, tenantID, orderID)
	if err != nil {
		return nil, err
	}
	if err := order.UnassignJobber(detailID); err != nil {
		return nil, err
	}
	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}
	response := ToOrderResponse(order)
	return &response, nil
}

// Start moves the order to in progress
func (s *OrderService) Start(ctx context.Context, tenantID, orderID uuid.UUID) (*OrderResponse, error) {
	return s.transition(ctx, tenantID, orderID, func(order *orders.Order) error {
		return order.Start()
	})
}

// MarkReady marks the order ready for pickup
func (s *OrderService) MarkReady(ctx context.Context, tenantID, orderID uuid.UUID) (*OrderResponse, error) {
	return s.transition(ctx, tenantID, orderID, func(order *orders.Order) error {
		return order.MarkReady()
	})
}

// Deliver marks the order as handed over
func (s *OrderService) Deliver(ctx context.Context, tenantID, orderID uuid.UUID) (*OrderResponse, error) {
	return s.transition(ctx, tenantID, orderID, func(order *orders.Order) error {
		return order.Deliver()
	})
}

// Cancel cancels the order with a reason
func (s *OrderService) Cancel(ctx context.Context, tenantID, orderID uuid.UUID, req CancelOrderRequest) (*OrderResponse, error) {
	return s.transition(ctx, tenantID, orderID, func(order *orders.Order) error {
		return order.Cancel(req.Reason)
	})
}

// CountByStatus returns the tenant's order counts per workshop status
func (s *OrderService) CountByStatus(ctx context.Context, tenantID uuid.UUID) (map[string]int64, error) {
	counts, err := s.orderRepo.CountByStatus(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	out := make(map[string]int64, len(counts))
	for status, count := range counts {
		out[status.String()] = count
	}
	return out, nil
}

func (s *OrderService) transition(ctx context.Context, tenantID, orderID uuid.UUID, fn func(*orders.Order) error) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByIDForTenant(ctx, tenantID, orderID)
	if err != nil {
		return nil, err
	}
	if err := fn(order); err != nil {
		return nil, err
	}
	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, order)
	response := ToOrderResponse(order)
	return &response, nil
}

func (s *OrderService) publishEvents(ctx context.Context, order *orders.Order) {
	if s.eventPublisher == nil {
		return
	}
	if err := s.eventPublisher.Publish(ctx, order.GetDomainEvents()...); err == nil {
		order.ClearDomainEvents()
	}
}
