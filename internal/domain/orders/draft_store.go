package orders

import (
	"context"

	"github.com/google/uuid"
)

// DraftStore persists in-progress drafts between requests. One draft
// exists per (tenant, user) pair. Implementations may expire abandoned
// drafts; callers must treat a missing draft as an empty session.
type DraftStore interface {
	// Get loads the draft for a user. Returns shared.ErrNotFound when
	// no draft exists.
	Get(ctx context.Context, tenantID, userID uuid.UUID) (*OrderDraft, error)

	// Put saves the draft, replacing any prior version
	Put(ctx context.Context, draft *OrderDraft) error

	// Delete discards the draft
	Delete(ctx context.Context, tenantID, userID uuid.UUID) error
}
