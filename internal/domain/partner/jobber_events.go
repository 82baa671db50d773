package partner

import (
	"github.com/stitchdesk/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Aggregate type constant
const AggregateTypeJobber = "Jobber"

// Event type constants
const (
	EventTypeJobberCreated = "JobberCreated"
	EventTypeJobberUpdated = "JobberUpdated"
)

// JobberCreatedEvent is published when a new jobber is created
type JobberCreatedEvent struct {
	shared.BaseDomainEvent
	JobberID uuid.UUID `json:"jobber_id"`
	Name     string    `json:"name"`
	Mobile   string    `json:"mobile"`
}

// NewJobberCreatedEvent creates a new JobberCreatedEvent
func NewJobberCreatedEvent(jobber *Jobber) *JobberCreatedEvent {
	return &JobberCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeJobberCreated, AggregateTypeJobber, jobber.ID, jobber.TenantID),
		JobberID:        jobber.ID,
		Name:            jobber.Name,
		Mobile:          jobber.Mobile,
	}
}

// JobberUpdatedEvent is published when a jobber is updated
type JobberUpdatedEvent struct {
	shared.BaseDomainEvent
	JobberID uuid.UUID `json:"jobber_id"`
	Name     string    `json:"name"`
	Active   bool      `json:"active"`
}

// NewJobberUpdatedEvent creates a new JobberUpdatedEvent
func NewJobberUpdatedEvent(jobber *Jobber) *JobberUpdatedEvent {
	return &JobberUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeJobberUpdated, AggregateTypeJobber, jobber.ID, jobber.TenantID),
		JobberID:        jobber.ID,
		Name:            jobber.Name,
		Active:          jobber.Active,
	}
}
