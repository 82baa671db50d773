package finance

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stitchdesk/backend/internal/domain/shared/valueobject"
)

func inr(amount int64) valueobject.Money {
	return valueobject.NewMoneyINR(decimal.NewFromInt(amount))
}

func TestNewPayment(t *testing.T) {
	tenantID := uuid.New()
	orderID := uuid.New()
	customerID := uuid.New()

	tests := []struct {
		name        string
		orderID     uuid.UUID
		customerID  uuid.UUID
		kind        PaymentKind
		method      PaymentMethod
		amount      valueobject.Money
		outstanding valueobject.Money
		wantErr     bool
	}{
		{"valid advance", orderID, customerID, PaymentKindAdvance, PaymentMethodUPI, inr(1000), inr(4800), false},
		{"full settlement", orderID, customerID, PaymentKindSettlement, PaymentMethodCash, inr(4800), inr(4800), false},
		{"empty order", uuid.Nil, customerID, PaymentKindAdvance, PaymentMethodCash, inr(1000), inr(4800), true},
		{"empty customer", orderID, uuid.Nil, PaymentKindAdvance, PaymentMethodCash, inr(1000), inr(4800), true},
		{"invalid kind", orderID, customerID, PaymentKind("refund"), PaymentMethodCash, inr(1000), inr(4800), true},
		{"invalid method", orderID, customerID, PaymentKindAdvance, PaymentMethod("cheque"), inr(1000), inr(4800), true},
		{"zero amount", orderID, customerID, PaymentKindAdvance, PaymentMethodCash, inr(0), inr(4800), true},
		{"exceeds outstanding", orderID, customerID, PaymentKindSettlement, PaymentMethodCard, inr(5000), inr(4800), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payment, err := NewPayment(tenantID, tt.orderID, tt.customerID, tt.kind, tt.method, tt.amount, tt.outstanding, "UPI/123")
			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, payment)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tenantID, payment.TenantID)
			assert.False(t, payment.Voided)
			assert.False(t, payment.ReceivedAt.IsZero())

			events := payment.GetDomainEvents()
			require.Len(t, events, 1)
			assert.Equal(t, EventTypePaymentRecorded, events[0].EventType())
		})
	}
}

func TestPayment_Void(t *testing.T) {
	payment, err := NewPayment(uuid.New(), uuid.New(), uuid.New(),
		PaymentKindAdvance, PaymentMethodCash, inr(1000), inr(4800), "")
	require.NoError(t, err)
	payment.ClearDomainEvents()

	assert.Error(t, payment.Void(""))
	require.NoError(t, payment.Void("entered twice"))
	assert.True(t, payment.Voided)
	assert.NotNil(t, payment.VoidedAt)
	assert.Equal(t, "entered twice", payment.VoidReason)

	events := payment.GetDomainEvents()
	require.Len(t, events, 1)
	assert.Equal(t, EventTypePaymentVoided, events[0].EventType())

	assert.Error(t, payment.Void("again"))
}
