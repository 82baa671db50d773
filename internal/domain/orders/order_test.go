package orders

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stitchdesk/backend/internal/domain/shared/valueobject"
)

func newTestOrder(t *testing.T) *Order {
	t.Helper()
	order, err := NewOrder(uuid.New(), "ORD-2026-0001", uuid.New(), "Rajesh Kumar", time.Now())
	require.NoError(t, err)
	return order
}

func newTestSubmissionDetail(amount int64, quantity int) SubmissionDetail {
	return SubmissionDetail{
		OutfitID:       uuid.New(),
		Images:         []string{"orders/abc.jpg"},
		Amount:         decimal.NewFromInt(amount),
		Discount:       decimal.Zero,
		Quantity:       quantity,
		TrialDate:      "2026-09-10 11:30:00",
		DeliveryDate:   "",
		ReferenceLabel: "Rajesh",
		SiteCode:       "RK1",
		TypeID:         1,
	}
}

func TestNewOrder(t *testing.T) {
	tests := []struct {
		name         string
		orderNumber  string
		customerID   uuid.UUID
		customerName string
		wantErr      bool
	}{
		{"valid", "ORD-2026-0001", uuid.New(), "Rajesh Kumar", false},
		{"empty number", "", uuid.New(), "Rajesh Kumar", true},
		{"empty customer", "ORD-2026-0001", uuid.Nil, "Rajesh Kumar", true},
		{"empty customer name", "ORD-2026-0001", uuid.New(), "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			order, err := NewOrder(uuid.New(), tt.orderNumber, tt.customerID, tt.customerName, time.Now())
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, OrderStatusReceived, order.Status)
			assert.True(t, order.TotalAmount.IsZero())
		})
	}
}

func TestOrder_AddDetail(t *testing.T) {
	order := newTestOrder(t)

	err := order.AddDetail(newTestSubmissionDetail(3600, 3), nil, "Shirt")
	require.NoError(t, err)
	err = order.AddDetail(newTestSubmissionDetail(1200, 1), nil, "Shirt")
	require.NoError(t, err)

	assert.Equal(t, 2, order.DetailCount())
	assert.True(t, order.TotalAmount.Equal(decimal.NewFromInt(4800)))
	assert.True(t, order.PayableAmount.Equal(decimal.NewFromInt(4800)))

	detail := order.Details[0]
	assert.Equal(t, OrderTypeStitching, detail.OrderType)
	require.NotNil(t, detail.TrialDate)
	assert.Nil(t, detail.DeliveryDate)

	// invalid details are rejected
	assert.Error(t, order.AddDetail(newTestSubmissionDetail(100, 0), nil, "Shirt"))
	bad := newTestSubmissionDetail(100, 1)
	bad.TrialDate = "not a date"
	assert.Error(t, order.AddDetail(bad, nil, "Shirt"))
}

func TestOrder_Place(t *testing.T) {
	order := newTestOrder(t)
	assert.Error(t, order.Place())

	require.NoError(t, order.AddDetail(newTestSubmissionDetail(1200, 1), nil, "Shirt"))
	require.NoError(t, order.Place())

	events := order.GetDomainEvents()
	require.Len(t, events, 1)
	assert.Equal(t, EventTypeOrderPlaced, events[0].EventType())
}

func TestOrder_AssignJobber(t *testing.T) {
	order := newTestOrder(t)
	require.NoError(t, order.AddDetail(newTestSubmissionDetail(1200, 1), nil, "Shirt"))
	detailID := order.Details[0].ID
	jobberID := uuid.New()

	require.NoError(t, order.AssignJobber(detailID, jobberID))

	detail := order.GetDetail(detailID)
	require.NotNil(t, detail)
	assert.True(t, detail.IsAssigned())
	assert.Equal(t, jobberID, *detail.JobberID)
	// first assignment starts the order
	assert.Equal(t, OrderStatusInProgress, order.Status)
	assert.NotNil(t, order.StartedAt)

	assert.Error(t, order.AssignJobber(uuid.New(), jobberID))
	assert.Error(t, order.AssignJobber(detailID, uuid.Nil))

	require.NoError(t, order.UnassignJobber(detailID))
	assert.False(t, order.GetDetail(detailID).IsAssigned())
}

func TestOrder_StatusTransitions(t *testing.T) {
	order := newTestOrder(t)
	require.NoError(t, order.AddDetail(newTestSubmissionDetail(1200, 1), nil, "Shirt"))

	// cannot skip ahead
	assert.Error(t, order.MarkReady())
	assert.Error(t, order.Deliver())

	require.NoError(t, order.Start())
	assert.Error(t, order.Start())

	require.NoError(t, order.MarkReady())
	// ready orders cannot be cancelled
	assert.Error(t, order.Cancel("customer changed mind"))

	require.NoError(t, order.Deliver())
	assert.True(t, order.IsTerminal())
	assert.Error(t, order.AssignJobber(order.Details[0].ID, uuid.New()))
}

func TestOrder_Cancel(t *testing.T) {
	order := newTestOrder(t)
	require.NoError(t, order.AddDetail(newTestSubmissionDetail(1200, 1), nil, "Shirt"))

	assert.Error(t, order.Cancel(""))
	require.NoError(t, order.Cancel("customer cancelled"))
	assert.Equal(t, OrderStatusCancelled, order.Status)
	assert.Equal(t, "customer cancelled", order.CancelReason)
	assert.Error(t, order.Cancel("again"))
}

func TestOrder_ApplyDiscount(t *testing.T) {
	order := newTestOrder(t)
	require.NoError(t, order.AddDetail(newTestSubmissionDetail(2000, 1), nil, "Shirt"))

	require.NoError(t, order.ApplyDiscount(valueobject.NewMoneyINR(decimal.NewFromInt(500))))
	assert.True(t, order.PayableAmount.Equal(decimal.NewFromInt(1500)))

	assert.Error(t, order.ApplyDiscount(valueobject.NewMoneyINR(decimal.NewFromInt(-1))))
	assert.Error(t, order.ApplyDiscount(valueobject.NewMoneyINR(decimal.NewFromInt(5000))))
}

func TestOrderStatus_CanTransitionTo(t *testing.T) {
	assert.True(t, OrderStatusReceived.CanTransitionTo(OrderStatusInProgress))
	assert.True(t, OrderStatusReceived.CanTransitionTo(OrderStatusCancelled))
	assert.False(t, OrderStatusReceived.CanTransitionTo(OrderStatusDelivered))
	assert.True(t, OrderStatusInProgress.CanTransitionTo(OrderStatusReady))
	assert.True(t, OrderStatusReady.CanTransitionTo(OrderStatusDelivered))
	assert.False(t, OrderStatusReady.CanTransitionTo(OrderStatusCancelled))
	assert.False(t, OrderStatusDelivered.CanTransitionTo(OrderStatusReceived))
	assert.False(t, OrderStatusCancelled.CanTransitionTo(OrderStatusInProgress))
}
