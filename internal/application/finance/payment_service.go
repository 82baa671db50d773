package finance

import (
	"context"

	"github.com/google/uuid"

	"github.com/stitchdesk/backend/internal/domain/finance"
	"github.com/stitchdesk/backend/internal/domain/orders"
	"github.com/stitchdesk/backend/internal/domain/shared"
	"github.com/stitchdesk/backend/internal/domain/shared/valueobject"
)

// PaymentService records and reverses payments against placed orders.
// The outstanding balance is always recomputed from the order's payable
// amount and the non-voided payments on record, never cached.
type PaymentService struct {
	paymentRepo    finance.PaymentRepository
	orderRepo      orders.OrderRepository
	eventPublisher shared.EventPublisher
}

// NewPaymentService creates a new PaymentService
func NewPaymentService(paymentRepo finance.PaymentRepository, orderRepo orders.OrderRepository) *PaymentService {
	return &PaymentService{
		paymentRepo: paymentRepo,
		orderRepo:   orderRepo,
	}
}

// SetEventPublisher sets the event publisher for cross-context integration
func (s *PaymentService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// RecordPayment takes a payment against an order. The amount may not
// exceed the order's outstanding balance.
func (s *PaymentService) RecordPayment(ctx context.Context, tenantID uuid.UUID, req RecordPaymentRequest) (*PaymentResponse, error) {
	order, err := s.orderRepo.FindByIDForTenant(ctx, tenantID, req.OrderID)
	if err != nil {
		return nil, err
	}
	if order.Status == orders.OrderStatusCancelled {
		return nil, shared.NewDomainError("ORDER_CANCELLED", "Cannot record a payment against a cancelled order")
	}

	paid, err := s.paymentRepo.SumByOrder(ctx, tenantID, req.OrderID)
	if err != nil {
		return nil, err
	}
	outstanding := order.PayableAmount.Sub(paid)

	payment, err := finance.NewPayment(
		tenantID,
		order.ID,
		order.CustomerID,
		finance.PaymentKind(req.Kind),
		finance.PaymentMethod(req.Method),
		valueobject.NewMoneyINR(req.Amount),
		valueobject.NewMoneyINR(outstanding),
		req.Reference,
	)
	if err != nil {
		return nil, err
	}
	if req.Notes != "" {
		payment.SetNotes(req.Notes)
	}

	if err := s.paymentRepo.Save(ctx, payment); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, payment)

	response := ToPaymentResponse(payment)
	return &response, nil
}

// GetOrderBalance returns an order's payment history and what remains
// outstanding
func (s *PaymentService) GetOrderBalance(ctx context.Context, tenantID, orderID uuid.UUID) (*OrderBalanceResponse, error) {
	order, err := s.orderRepo.FindByIDForTenant(ctx, tenantID, orderID)
	if err != nil {
		return nil, err
	}

	payments, err := s.paymentRepo.FindByOrder(ctx, tenantID, orderID)
	if err != nil {
		return nil, err
	}
	paid, err := s.paymentRepo.SumByOrder(ctx, tenantID, orderID)
	if err != nil {
		return nil, err
	}

	response := &OrderBalanceResponse{
		OrderID:     order.ID,
		Payable:     order.PayableAmount,
		Paid:        paid,
		Outstanding: order.PayableAmount.Sub(paid),
		Payments:    make([]PaymentResponse, 0, len(payments)),
	}
	for _, payment := range payments {
		response.Payments = append(response.Payments, ToPaymentResponse(payment))
	}
	return response, nil
}

// ListByCustomer returns a customer's payments across orders
func (s *PaymentService) ListByCustomer(ctx context.Context, tenantID, customerID uuid.UUID, page, pageSize int) ([]PaymentResponse, int64, error) {
	filter := shared.DefaultFilter()
	if page > 0 {
		filter.Page = page
	}
	if pageSize > 0 {
		filter.PageSize = pageSize
	}

	result, err := s.paymentRepo.FindByCustomer(ctx, tenantID, customerID, filter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]PaymentResponse, 0, len(result.Items))
	for _, payment := range result.Items {
		responses = append(responses, ToPaymentResponse(payment))
	}
	return responses, result.Total, nil
}

// VoidPayment reverses a mistaken payment entry
func (s *PaymentService) VoidPayment(ctx context.Context, tenantID, paymentID uuid.UUID, req VoidPaymentRequest) (*PaymentResponse, error) {
	payment, err := s.paymentRepo.FindByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if payment.TenantID != tenantID {
		return nil, shared.ErrNotFound
	}

	if err := payment.Void(req.Reason); err != nil {
		return nil, err
	}
	if err := s.paymentRepo.Save(ctx, payment); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, payment)

	response := ToPaymentResponse(payment)
	return &response, nil
}

func (s *PaymentService) publishEvents(ctx context.Context, payment *finance.Payment) {
	if s.eventPublisher == nil {
		return
	}
	if err := s.eventPublisher.Publish(ctx, payment.GetDomainEvents()...); err == nil {
		payment.ClearDomainEvents()
	}
}
