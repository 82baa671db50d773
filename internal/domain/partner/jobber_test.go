package partner

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewJobber(t *testing.T) {
	tenantID := uuid.New()

	jobber, err := NewJobber(tenantID, "Salim Tailors", "9988776655")
	require.NoError(t, err)
	assert.Equal(t, tenantID, jobber.TenantID)
	assert.True(t, jobber.Active)

	events := jobber.GetDomainEvents()
	require.Len(t, events, 1)
	assert.Equal(t, EventTypeJobberCreated, events[0].EventType())
}

func TestNewJobber_Validation(t *testing.T) {
	_, err := NewJobber(uuid.New(), "", "9988776655")
	assert.Error(t, err)

	_, err = NewJobber(uuid.New(), "Salim", "not-a-phone")
	assert.Error(t, err)
}

func TestJobber_ActivateDeactivate(t *testing.T) {
	jobber, err := NewJobber(uuid.New(), "Salim Tailors", "9988776655")
	require.NoError(t, err)

	assert.Error(t, jobber.Activate())

	require.NoError(t, jobber.Deactivate())
	assert.False(t, jobber.Active)

	require.NoError(t, jobber.Activate())
	assert.True(t, jobber.Active)
}
