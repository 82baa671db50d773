package persistence

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stitchdesk/backend/internal/domain/partner"
	"github.com/stitchdesk/backend/internal/domain/shared"
)

func seedCustomer(t *testing.T, repo *GormCustomerRepository, tenantID uuid.UUID, name, mobile string) *partner.Customer {
	t.Helper()
	customer, err := partner.NewCustomer(tenantID, name, mobile, "MUM")
	require.NoError(t, err)
	customer.ClearDomainEvents()
	require.NoError(t, repo.Save(context.Background(), customer))
	return customer
}

func TestGormCustomerRepository_FindByIDForTenant(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormCustomerRepository(db)
	ctx := context.Background()
	tenantID := uuid.New()

	saved := seedCustomer(t, repo, tenantID, "Rajesh Kumar", "9876543210")

	found, err := repo.FindByIDForTenant(ctx, tenantID, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, "Rajesh Kumar", found.Name)
	assert.Equal(t, "9876543210", found.Mobile)

	_, err = repo.FindByIDForTenant(ctx, uuid.New(), saved.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	_, err = repo.FindByID(ctx, uuid.New())
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestGormCustomerRepository_FindByMobile(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormCustomerRepository(db)
	ctx := context.Background()
	tenantID := uuid.New()

	seedCustomer(t, repo, tenantID, "Priya Sharma", "9812345678")

	found, err := repo.FindByMobile(ctx, tenantID, "9812345678")
	require.NoError(t, err)
	assert.Equal(t, "Priya Sharma", found.Name)

	_, err = repo.FindByMobile(ctx, tenantID, "9999999999")
	assert.ErrorIs(t, err, shared.ErrNotFound)

	_, err = repo.FindByMobile(ctx, tenantID, "")
	assert.Error(t, err)
}

func TestGormCustomerRepository_Search(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormCustomerRepository(db)
	ctx := context.Background()
	tenantID := uuid.New()

	seedCustomer(t, repo, tenantID, "Rajesh Kumar", "9876543210")
	seedCustomer(t, repo, tenantID, "Priya Sharma", "9812345678")
	seedCustomer(t, repo, uuid.New(), "Rajesh Verma", "9800000000")

	filter := shared.DefaultFilter()
	filter.Search = "rajesh"

	found, err := repo.FindAllForTenant(ctx, tenantID, filter)
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Rajesh Kumar", found[0].Name)

	// mobile prefix also matches
	filter.Search = "98123"
	found, err = repo.FindAllForTenant(ctx, tenantID, filter)
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Priya Sharma", found[0].Name)

	count, err := repo.CountForTenant(ctx, tenantID, shared.DefaultFilter())
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestGormCustomerRepository_FindByStatus(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormCustomerRepository(db)
	ctx := context.Background()
	tenantID := uuid.New()

	active := seedCustomer(t, repo, tenantID, "Rajesh Kumar", "9876543210")
	inactive := seedCustomer(t, repo, tenantID, "Priya Sharma", "9812345678")
	require.NoError(t, inactive.Deactivate())
	inactive.ClearDomainEvents()
	require.NoError(t, repo.Save(ctx, inactive))

	found, err := repo.FindByStatus(ctx, tenantID, partner.CustomerStatusActive, shared.DefaultFilter())
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, active.ID, found[0].ID)
}

func TestGormCustomerRepository_Delete(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormCustomerRepository(db)
	ctx := context.Background()

	saved := seedCustomer(t, repo, uuid.New(), "Rajesh Kumar", "9876543210")

	require.NoError(t, repo.Delete(ctx, saved.ID))
	assert.ErrorIs(t, repo.Delete(ctx, saved.ID), shared.ErrNotFound)
}
