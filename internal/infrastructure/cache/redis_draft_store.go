package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/stitchdesk/backend/internal/domain/orders"
	"github.com/stitchdesk/backend/internal/domain/shared"
)

// RedisDraftStore keeps drafts in Redis so every instance behind a load
// balancer sees the same session. Drafts are stored as JSON under
// stitchdesk:draft:<tenant>:<user> with the configured TTL; each Put
// refreshes the expiry.
type RedisDraftStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisDraftStore creates a Redis-backed draft store and verifies the
// connection.
func NewRedisDraftStore(client *redis.Client, ttl time.Duration) (*RedisDraftStore, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return &RedisDraftStore{client: client, ttl: ttl}, nil
}

// Get loads the draft for a user
func (s *RedisDraftStore) Get(ctx context.Context, tenantID, userID uuid.UUID) (*orders.OrderDraft, error) {
	data, err := s.client.Get(ctx, s.key(tenantID, userID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, shared.ErrNotFound
		}
		return nil, fmt.Errorf("failed to load draft: %w", err)
	}

	var draft orders.OrderDraft
	if err := json.Unmarshal(data, &draft); err != nil {
		return nil, fmt.Errorf("failed to decode draft: %w", err)
	}
	return &draft, nil
}

// Put saves the draft, replacing any prior version and refreshing the TTL
func (s *RedisDraftStore) Put(ctx context.Context, draft *orders.OrderDraft) error {
	data, err := json.Marshal(draft)
	if err != nil {
		return fmt.Errorf("failed to encode draft: %w", err)
	}
	if err := s.client.Set(ctx, s.key(draft.TenantID, draft.UserID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save draft: %w", err)
	}
	return nil
}

// Delete discards the draft
func (s *RedisDraftStore) Delete(ctx context.Context, tenantID, userID uuid.UUID) error {
	if err := s.client.Del(ctx, s.key(tenantID, userID)).Err(); err != nil {
		return fmt.Errorf("failed to delete draft: %w", err)
	}
	return nil
}

// Close releases the underlying client
func (s *RedisDraftStore) Close() error {
	return s.client.Close()
}

func (s *RedisDraftStore) key(tenantID, userID uuid.UUID) string {
	return "stitchdesk:draft:" + tenantID.String() + ":" + userID.String()
}

var _ orders.DraftStore = (*RedisDraftStore)(nil)
