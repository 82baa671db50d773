package identity

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	tenantID := uuid.New()

	tests := []struct {
		name     string
		username string
		password string
		role     UserRole
		wantErr  bool
	}{
		{"valid owner", "rajesh.tailors", "secret-pass-1", RoleOwner, false},
		{"valid staff", "counter_1", "secret-pass-1", RoleStaff, false},
		{"uppercase normalized", "Rajesh", "secret-pass-1", RoleStaff, false},
		{"too short username", "ab", "secret-pass-1", RoleStaff, true},
		{"illegal characters", "rajesh tailors", "secret-pass-1", RoleStaff, true},
		{"short password", "rajesh", "short", RoleStaff, true},
		{"invalid role", "rajesh", "secret-pass-1", UserRole("admin"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, err := NewUser(tenantID, tt.username, tt.password, tt.role)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, UserStatusActive, user.Status)
			assert.True(t, user.VerifyPassword(tt.password))
			assert.False(t, user.VerifyPassword("wrong"))
			assert.NotEqual(t, tt.password, user.PasswordHash)

			events := user.GetDomainEvents()
			require.Len(t, events, 1)
			assert.Equal(t, EventTypeUserCreated, events[0].EventType())
		})
	}
}

func TestUser_ChangePassword(t *testing.T) {
	user, err := NewUser(uuid.New(), "rajesh", "secret-pass-1", RoleOwner)
	require.NoError(t, err)

	assert.Error(t, user.ChangePassword("wrong", "next-pass-123"))
	assert.Error(t, user.ChangePassword("secret-pass-1", "short"))

	require.NoError(t, user.ChangePassword("secret-pass-1", "next-pass-123"))
	assert.True(t, user.VerifyPassword("next-pass-123"))
	assert.False(t, user.VerifyPassword("secret-pass-1"))
}

func TestUser_LoginLockout(t *testing.T) {
	user, err := NewUser(uuid.New(), "rajesh", "secret-pass-1", RoleStaff)
	require.NoError(t, err)

	assert.False(t, user.RecordLoginFailure(3, time.Hour))
	assert.False(t, user.RecordLoginFailure(3, time.Hour))
	assert.True(t, user.CanLogin())

	assert.True(t, user.RecordLoginFailure(3, time.Hour))
	assert.Equal(t, UserStatusLocked, user.Status)
	assert.False(t, user.CanLogin())

	// an expired lock no longer blocks login
	expired := time.Now().Add(-time.Minute)
	user.LockedUntil = &expired
	assert.True(t, user.CanLogin())

	user.RecordLoginSuccess()
	assert.Equal(t, UserStatusActive, user.Status)
	assert.Equal(t, 0, user.FailedAttempts)
	assert.Nil(t, user.LockedUntil)
	assert.NotNil(t, user.LastLoginAt)
}

func TestUser_Deactivate(t *testing.T) {
	user, err := NewUser(uuid.New(), "rajesh", "secret-pass-1", RoleStaff)
	require.NoError(t, err)

	require.NoError(t, user.Deactivate())
	assert.False(t, user.CanLogin())
	assert.Error(t, user.Deactivate())

	user.Activate()
	assert.True(t, user.CanLogin())
}

func TestNewTenant(t *testing.T) {
	tenant, err := NewTenant("  Rajesh Tailors  ")
	require.NoError(t, err)
	assert.Equal(t, "Rajesh Tailors", tenant.Name)
	assert.True(t, tenant.Active)

	_, err = NewTenant("   ")
	assert.Error(t, err)
}
