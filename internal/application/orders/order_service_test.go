package orders

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/stitchdesk/backend/internal/domain/orders"
	"github.com/stitchdesk/backend/internal/domain/partner"
	"github.com/stitchdesk/backend/internal/domain/shared"
)

// MockJobberRepository mocks partner.JobberRepository
type MockJobberRepository struct {
	mock.Mock
}

func (m *MockJobberRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Jobber, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Jobber), args.Error(1)
}

func (m *MockJobberRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*partner.Jobber, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Jobber), args.Error(1)
}

func (m *MockJobberRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]partner.Jobber, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]partner.Jobber), args.Error(1)
}

func (m *MockJobberRepository) FindActive(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]partner.Jobber, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]partner.Jobber), args.Error(1)
}

func (m *MockJobberRepository) Save(ctx context.Context, jobber *partner.Jobber) error {
	args := m.Called(ctx, jobber)
	return args.Error(0)
}

func (m *MockJobberRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockJobberRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func newPlacedOrder(t *testing.T, tenantID uuid.UUID) *orders.Order {
	t.Helper()
	order, err := orders.NewOrder(tenantID, "ORD-2026-0042", uuid.New(), "Rajesh Kumar", time.Now())
	require.NoError(t, err)
	err = order.AddDetail(orders.SubmissionDetail{
		OutfitID: uuid.New(),
		Amount:   decimal.NewFromInt(1200),
		Quantity: 1,
		TypeID:   1,
	}, nil, "Shirt")
	require.NoError(t, err)
	require.NoError(t, order.Place())
	order.ClearDomainEvents()
	return order
}

func TestOrderService_List(t *testing.T) {
	orderRepo := new(MockOrderRepository)
	service := NewOrderService(orderRepo, new(MockJobberRepository))
	ctx := context.Background()
	tenantID := uuid.New()

	first := newPlacedOrder(t, tenantID)
	second := newPlacedOrder(t, tenantID)
	page := shared.NewPaginated([]*orders.Order{first, second}, 5, 1, 2)

	orderRepo.On("FindAllForTenant", ctx, tenantID, mock.MatchedBy(func(f shared.Filter) bool {
		return f.PageSize == 2 && f.Search == "ORD"
	})).Return(&page, nil)

	responses, total, hasMore, err := service.List(ctx, tenantID, OrderListFilter{
		Search:   "ORD",
		Page:     1,
		PageSize: 2,
	})
	require.NoError(t, err)
	assert.Len(t, responses, 2)
	assert.Equal(t, int64(5), total)
	assert.True(t, hasMore)
}

func TestOrderService_List_ByStatus(t *testing.T) {
	orderRepo := new(MockOrderRepository)
	service := NewOrderService(orderRepo, new(MockJobberRepository))
	ctx := context.Background()
	tenantID := uuid.New()

	page := shared.NewPaginated([]*orders.Order{newPlacedOrder(t, tenantID)}, 1, 1, 20)
	orderRepo.On("FindByStatus", ctx, tenantID, orders.OrderStatusReceived, mock.Anything).Return(&page, nil)

	responses, total, hasMore, err := service.List(ctx, tenantID, OrderListFilter{Status: "RECEIVED"})
	require.NoError(t, err)
	assert.Len(t, responses, 1)
	assert.Equal(t, int64(1), total)
	assert.False(t, hasMore)
	orderRepo.AssertNotCalled(t, "FindAllForTenant", mock.Anything, mock.Anything, mock.Anything)
}

func TestOrderService_AssignJobber(t *testing.T) {
	orderRepo := new(MockOrderRepository)
	jobberRepo := new(MockJobberRepository)
	service := NewOrderService(orderRepo, jobberRepo)
	ctx := context.Background()
	tenantID := uuid.New()

	order := newPlacedOrder(t, tenantID)
	detailID := order.Details[0].ID
	jobber, err := partner.NewJobber(tenantID, "Suresh", "+919811122233")
	require.NoError(t, err)

	jobberRepo.On("FindByIDForTenant", ctx, tenantID, jobber.ID).Return(jobber, nil)
	orderRepo.On("FindByIDForTenant", ctx, tenantID, order.ID).Return(order, nil)
	orderRepo.On("Save", ctx, order).Return(nil)

	response, err := service.AssignJobber(ctx, tenantID, order.ID, detailID, AssignJobberRequest{JobberID: jobber.ID})
	require.NoError(t, err)

	require.NotNil(t, response.Details[0].JobberID)
	assert.Equal(t, jobber.ID, *response.Details[0].JobberID)
	// first assignment pulls the order onto the workshop floor
	assert.Equal(t, "IN_PROGRESS", response.Status)
}

func TestOrderService_AssignJobber_Inactive(t *testing.T) {
	orderRepo := new(MockOrderRepository)
	jobberRepo := new(MockJobberRepository)
	service := NewOrderService(orderRepo, jobberRepo)
	ctx := context.Background()
	tenantID := uuid.New()

	jobber, err := partner.NewJobber(tenantID, "Suresh", "+919811122233")
	require.NoError(t, err)
	require.NoError(t, jobber.Deactivate())

	jobberRepo.On("FindByIDForTenant", ctx, tenantID, jobber.ID).Return(jobber, nil)

	_, err = service.AssignJobber(ctx, tenantID, uuid.New(), uuid.New(), AssignJobberRequest{JobberID: jobber.ID})
	assert.Error(t, err)
	orderRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestOrderService_Transitions(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()

	t.Run("full lifecycle", func(t *testing.T) {
		orderRepo := new(MockOrderRepository)
		service := NewOrderService(orderRepo, new(MockJobberRepository))
		order := newPlacedOrder(t, tenantID)

		orderRepo.On("FindByIDForTenant", ctx, tenantID, order.ID).Return(order, nil)
		orderRepo.On("Save", ctx, order).Return(nil)

		response, err := service.Start(ctx, tenantID, order.ID)
		require.NoError(t, err)
		assert.Equal(t, "IN_PROGRESS", response.Status)

		response, err = service.MarkReady(ctx, tenantID, order.ID)
		require.NoError(t, err)
		assert.Equal(t, "READY", response.Status)

		response, err = service.Deliver(ctx, tenantID, order.ID)
		require.NoError(t, err)
		assert.Equal(t, "DELIVERED", response.Status)
	})

	t.Run("invalid transition is not saved", func(t *testing.T) {
		orderRepo := new(MockOrderRepository)
		service := NewOrderService(orderRepo, new(MockJobberRepository))
		order := newPlacedOrder(t, tenantID)

		orderRepo.On("FindByIDForTenant", ctx, tenantID, order.ID).Return(order, nil)

		_, err := service.Deliver(ctx, tenantID, order.ID)
		assert.Error(t, err)
		orderRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("cancel records the reason", func(t *testing.T) {
		orderRepo := new(MockOrderRepository)
		service := NewOrderService(orderRepo, new(MockJobberRepository))
		order := newPlacedOrder(t, tenantID)

		orderRepo.On("FindByIDForTenant", ctx, tenantID, order.ID).Return(order, nil)
		orderRepo.On("Save", ctx, order).Return(nil)

		response, err := service.Cancel(ctx, tenantID, order.ID, CancelOrderRequest{Reason: "Customer changed mind"})
		require.NoError(t, err)
		assert.Equal(t, "CANCELLED", response.Status)
	})
}

func TestOrderService_CountByStatus(t *testing.T) {
	orderRepo := new(MockOrderRepository)
	service := NewOrderService(orderRepo, new(MockJobberRepository))
	ctx := context.Background()
	tenantID := uuid.New()

	orderRepo.On("CountByStatus", ctx, tenantID).Return(map[orders.OrderStatus]int64{
		orders.OrderStatusReceived:   3,
		orders.OrderStatusInProgress: 2,
		orders.OrderStatusDelivered:  10,
	}, nil)

	counts, err := service.CountByStatus(ctx, tenantID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), counts["RECEIVED"])
	assert.Equal(t, int64(2), counts["IN_PROGRESS"])
	assert.Equal(t, int64(10), counts["DELIVERED"])
}
