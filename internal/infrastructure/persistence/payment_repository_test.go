package persistence

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stitchdesk/backend/internal/domain/finance"
	"github.com/stitchdesk/backend/internal/domain/shared"
	"github.com/stitchdesk/backend/internal/domain/shared/valueobject"
)

func seedPayment(t *testing.T, repo *GormPaymentRepository, tenantID, orderID, customerID uuid.UUID, amount int64) *finance.Payment {
	t.Helper()
	payment, err := finance.NewPayment(tenantID, orderID, customerID,
		finance.PaymentKindAdvance, finance.PaymentMethodUPI,
		valueobject.NewMoneyINR(decimal.NewFromInt(amount)),
		valueobject.NewMoneyINR(decimal.NewFromInt(10000)),
		"")
	require.NoError(t, err)
	payment.ClearDomainEvents()
	require.NoError(t, repo.Save(context.Background(), payment))
	return payment
}

func TestGormPaymentRepository_FindByOrder(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormPaymentRepository(db)
	ctx := context.Background()
	tenantID, orderID, customerID := uuid.New(), uuid.New(), uuid.New()

	seedPayment(t, repo, tenantID, orderID, customerID, 1000)
	seedPayment(t, repo, tenantID, orderID, customerID, 500)
	seedPayment(t, repo, tenantID, uuid.New(), customerID, 700)

	payments, err := repo.FindByOrder(ctx, tenantID, orderID)
	require.NoError(t, err)
	assert.Len(t, payments, 2)
}

func TestGormPaymentRepository_SumByOrder(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormPaymentRepository(db)
	ctx := context.Background()
	tenantID, orderID, customerID := uuid.New(), uuid.New(), uuid.New()

	seedPayment(t, repo, tenantID, orderID, customerID, 1000)
	voided := seedPayment(t, repo, tenantID, orderID, customerID, 500)
	require.NoError(t, voided.Void("entered twice"))
	voided.ClearDomainEvents()
	require.NoError(t, repo.Save(ctx, voided))

	sum, err := repo.SumByOrder(ctx, tenantID, orderID)
	require.NoError(t, err)
	assert.True(t, sum.Equal(decimal.NewFromInt(1000)), "voided payments excluded, got %s", sum)

	empty, err := repo.SumByOrder(ctx, tenantID, uuid.New())
	require.NoError(t, err)
	assert.True(t, empty.IsZero())
}

func TestGormPaymentRepository_FindByCustomer(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormPaymentRepository(db)
	ctx := context.Background()
	tenantID, customerID := uuid.New(), uuid.New()

	seedPayment(t, repo, tenantID, uuid.New(), customerID, 1000)
	seedPayment(t, repo, tenantID, uuid.New(), customerID, 500)
	seedPayment(t, repo, tenantID, uuid.New(), uuid.New(), 700)

	filter := shared.DefaultFilter()
	filter.PageSize = 1
	page, err := repo.FindByCustomer(ctx, tenantID, customerID, filter)
	require.NoError(t, err)
	assert.Equal(t, int64(2), page.Total)
	assert.Len(t, page.Items, 1)
	assert.True(t, page.HasMore())
}

func TestGormPaymentRepository_FindByID_NotFound(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormPaymentRepository(db)

	_, err := repo.FindByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, shared.ErrNotFound)
}
