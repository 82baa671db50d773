package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/stitchdesk/backend/internal/domain/orders"
	"github.com/stitchdesk/backend/internal/domain/shared"
)

type draftEntry struct {
	data      []byte
	expiresAt time.Time
}

// InMemoryDraftStore keeps drafts in process memory. Suitable for
// single-instance deployments and tests; abandoned drafts are evicted
// after the TTL by a background sweep.
//
// Drafts are held as JSON snapshots, matching RedisDraftStore, so a
// draft handed out by Get is never shared with other callers.
type InMemoryDraftStore struct {
	mu        sync.RWMutex
	entries   map[string]draftEntry
	ttl       time.Duration
	stopChan  chan struct{}
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// NewInMemoryDraftStore creates a draft store with the given TTL.
// A TTL of zero disables expiry.
func NewInMemoryDraftStore(ttl time.Duration) *InMemoryDraftStore {
	store := &InMemoryDraftStore{
		entries:  make(map[string]draftEntry),
		ttl:      ttl,
		stopChan: make(chan struct{}),
	}
	if ttl > 0 {
		store.wg.Add(1)
		go store.sweepLoop()
	}
	return store
}

// Get loads the draft for a user
func (s *InMemoryDraftStore) Get(ctx context.Context, tenantID, userID uuid.UUID) (*orders.OrderDraft, error) {
	s.mu.RLock()
	entry, ok := s.entries[draftKey(tenantID, userID)]
	s.mu.RUnlock()

	if !ok {
		return nil, shared.ErrNotFound
	}
	if s.ttl > 0 && time.Now().After(entry.expiresAt) {
		return nil, shared.ErrNotFound
	}

	var draft orders.OrderDraft
	if err := json.Unmarshal(entry.data, &draft); err != nil {
		return nil, fmt.Errorf("failed to decode draft: %w", err)
	}
	return &draft, nil
}

// Put saves the draft, replacing any prior version
func (s *InMemoryDraftStore) Put(ctx context.Context, draft *orders.OrderDraft) error {
	data, err := json.Marshal(draft)
	if err != nil {
		return fmt.Errorf("failed to encode draft: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[draftKey(draft.TenantID, draft.UserID)] = draftEntry{
		data:      data,
		expiresAt: time.Now().Add(s.ttl),
	}
	return nil
}

// Delete discards the draft
func (s *InMemoryDraftStore) Delete(ctx context.Context, tenantID, userID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, draftKey(tenantID, userID))
	return nil
}

// Close stops the background sweep
func (s *InMemoryDraftStore) Close() error {
	s.closeOnce.Do(func() {
		close(s.stopChan)
	})
	s.wg.Wait()
	return nil
}

func (s *InMemoryDraftStore) sweepLoop() {
	defer s.wg.Done()
	ticker := time.NewTicker(s.ttl / 2)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopChan:
			return
		case <-ticker.C:
			s.sweep()
		}
	}
}

func (s *InMemoryDraftStore) sweep() {
	now := time.Now()
	s.mu.Lock()
	defer s.mu.Unlock()
	for key, entry := range s.entries {
		if now.After(entry.expiresAt) {
			delete(s.entries, key)
		}
	}
}

func draftKey(tenantID, userID uuid.UUID) string {
	return tenantID.String() + "/" + userID.String()
}

var _ orders.DraftStore = (*InMemoryDraftStore)(nil)
