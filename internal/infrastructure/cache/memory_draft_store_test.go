package cache

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/stitchdesk/backend/internal/domain/orders"
	"github.com/stitchdesk/backend/internal/domain/shared"
	"github.com/stitchdesk/backend/internal/infrastructure/config"
)

func TestInMemoryDraftStore_PutGetDelete(t *testing.T) {
	store := NewInMemoryDraftStore(time.Hour)
	defer store.Close()
	ctx := context.Background()

	tenantID, userID := uuid.New(), uuid.New()

	_, err := store.Get(ctx, tenantID, userID)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	draft := orders.NewOrderDraft(tenantID, userID)
	require.NoError(t, store.Put(ctx, draft))

	loaded, err := store.Get(ctx, tenantID, userID)
	require.NoError(t, err)
	assert.Equal(t, tenantID, loaded.TenantID)
	assert.Equal(t, userID, loaded.UserID)

	require.NoError(t, store.Delete(ctx, tenantID, userID))
	_, err = store.Get(ctx, tenantID, userID)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestInMemoryDraftStore_IsolatesUsers(t *testing.T) {
	store := NewInMemoryDraftStore(time.Hour)
	defer store.Close()
	ctx := context.Background()

	tenantID := uuid.New()
	alice, bob := uuid.New(), uuid.New()

	require.NoError(t, store.Put(ctx, orders.NewOrderDraft(tenantID, alice)))

	_, err := store.Get(ctx, tenantID, bob)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	// same user under another tenant is a different session
	_, err = store.Get(ctx, uuid.New(), alice)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestInMemoryDraftStore_GetReturnsSnapshot(t *testing.T) {
	store := NewInMemoryDraftStore(time.Hour)
	defer store.Close()
	ctx := context.Background()

	tenantID, userID := uuid.New(), uuid.New()
	require.NoError(t, store.Put(ctx, orders.NewOrderDraft(tenantID, userID)))

	first, err := store.Get(ctx, tenantID, userID)
	require.NoError(t, err)
	require.NoError(t, first.SelectCustomer(orders.CustomerRef{ID: uuid.New(), Name: "Asha Kumar"}))

	// mutating one loaded draft must not leak into other loads
	second, err := store.Get(ctx, tenantID, userID)
	require.NoError(t, err)
	assert.NotSame(t, first, second)
	assert.Nil(t, second.Customer)
}

func TestInMemoryDraftStore_ConcurrentSessions(t *testing.T) {
	store := NewInMemoryDraftStore(time.Hour)
	defer store.Close()
	ctx := context.Background()

	tenantID, userID := uuid.New(), uuid.New()
	require.NoError(t, store.Put(ctx, orders.NewOrderDraft(tenantID, userID)))

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				draft, err := store.Get(ctx, tenantID, userID)
				if !assert.NoError(t, err) {
					return
				}
				if !assert.NoError(t, draft.SelectCustomer(orders.CustomerRef{ID: uuid.New(), Name: "Ravi"})) {
					return
				}
				if !assert.NoError(t, store.Put(ctx, draft)) {
					return
				}
			}
		}()
	}
	wg.Wait()

	draft, err := store.Get(ctx, tenantID, userID)
	require.NoError(t, err)
	require.NotNil(t, draft.Customer)
	assert.Equal(t, "Ravi", draft.Customer.Name)
}

func TestInMemoryDraftStore_ExpiresEntries(t *testing.T) {
	store := NewInMemoryDraftStore(10 * time.Millisecond)
	defer store.Close()
	ctx := context.Background()

	tenantID, userID := uuid.New(), uuid.New()
	require.NoError(t, store.Put(ctx, orders.NewOrderDraft(tenantID, userID)))

	assert.Eventually(t, func() bool {
		_, err := store.Get(ctx, tenantID, userID)
		return err == shared.ErrNotFound
	}, time.Second, 5*time.Millisecond)
}

func TestNewDraftStore_Memory(t *testing.T) {
	store, err := NewDraftStore(
		config.DraftConfig{Store: "memory", TTL: time.Hour},
		config.RedisConfig{},
		zap.NewNop(),
	)
	require.NoError(t, err)
	assert.IsType(t, &InMemoryDraftStore{}, store)
}

func TestNewDraftStore_Unknown(t *testing.T) {
	_, err := NewDraftStore(
		config.DraftConfig{Store: "etcd"},
		config.RedisConfig{},
		zap.NewNop(),
	)
	assert.Error(t, err)
}
