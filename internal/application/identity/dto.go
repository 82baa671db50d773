package identity

import (
	"time"

	"github.com/google/uuid"

	"github.com/stitchdesk/backend/internal/domain/identity"
)

// RegisterRequest creates a new tailoring business with its owner account
type RegisterRequest struct {
	BusinessName string `json:"business_name" binding:"required,min=1,max=200"`
	Mobile       string `json:"mobile" binding:"max=20"`
	Address      string `json:"address" binding:"max=500"`
	Username     string `json:"username" binding:"required,min=3,max=50"`
	Password     string `json:"password" binding:"required,min=8,max=72"`
}

// LoginRequest authenticates a staff account
type LoginRequest struct {
	TenantID uuid.UUID `json:"tenant_id" binding:"required"`
	Username string    `json:"username" binding:"required"`
	Password string    `json:"password" binding:"required"`
}

// CreateUserRequest adds a staff account to the business
type CreateUserRequest struct {
	Username    string `json:"username" binding:"required,min=3,max=50"`
	Password    string `json:"password" binding:"required,min=8,max=72"`
	Role        string `json:"role" binding:"required,oneof=owner staff"`
	DisplayName string `json:"display_name" binding:"max=200"`
	Email       string `json:"email" binding:"omitempty,email"`
	Mobile      string `json:"mobile" binding:"max=20"`
}

// ChangePasswordRequest rotates the caller's password
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=8,max=72"`
}

// UserResponse represents a user in API responses
type UserResponse struct {
	ID          uuid.UUID  `json:"id"`
	Username    string     `json:"username"`
	Email       string     `json:"email"`
	Mobile      string     `json:"mobile"`
	DisplayName string     `json:"display_name"`
	Role        string     `json:"role"`
	Status      string     `json:"status"`
	LastLoginAt *time.Time `json:"last_login_at"`
	CreatedAt   time.Time  `json:"created_at"`
}

// TenantResponse represents the business account
type TenantResponse struct {
	ID      uuid.UUID `json:"id"`
	Name    string    `json:"name"`
	Mobile  string    `json:"mobile"`
	Address string    `json:"address"`
	Active  bool      `json:"active"`
}

// LoginResponse carries the issued token and the authenticated user
type LoginResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      UserResponse `json:"user"`
}

// RegisterResponse carries the created business and its owner
type RegisterResponse struct {
	Tenant TenantResponse `json:"tenant"`
	Owner  UserResponse   `json:"owner"`
}

// ToUserResponse converts a user to a response DTO
func ToUserResponse(user *identity.User) UserResponse {
	return UserResponse{
		ID:          user.ID,
		Username:    user.Username,
		Email:       user.Email,
		Mobile:      user.Mobile,
		DisplayName: user.DisplayName,
		Role:        string(user.Role),
		Status:      string(user.Status),
		LastLoginAt: user.LastLoginAt,
		CreatedAt:   user.CreatedAt,
	}
}

// ToTenantResponse converts a tenant to a response DTO
func ToTenantResponse(tenant *identity.Tenant) TenantResponse {
	return TenantResponse{
		ID:      tenant.ID,
		Name:    tenant.Name,
		Mobile:  tenant.Mobile,
		Address: tenant.Address,
		Active:  tenant.Active,
	}
}
