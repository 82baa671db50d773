package partner

import (
	"time"

	"github.com/google/uuid"

	"github.com/stitchdesk/backend/internal/domain/partner"
)

// =============================================================================
// Customer DTOs
// =============================================================================

// CreateCustomerRequest represents a request to create a new customer
type CreateCustomerRequest struct {
	Name     string `json:"name" binding:"required,min=1,max=200"`
	Mobile   string `json:"mobile" binding:"required,min=7,max=16"`
	Email    string `json:"email" binding:"omitempty,email,max=200"`
	SiteCode string `json:"site_code" binding:"max=20"`
	Address  string `json:"address" binding:"max=500"`
	Notes    string `json:"notes"`
}

// UpdateCustomerRequest represents a request to update a customer
type UpdateCustomerRequest struct {
	Name     *string `json:"name" binding:"omitempty,min=1,max=200"`
	Mobile   *string `json:"mobile" binding:"omitempty,min=7,max=16"`
	Email    *string `json:"email" binding:"omitempty,email,max=200"`
	SiteCode *string `json:"site_code" binding:"omitempty,max=20"`
	Address  *string `json:"address" binding:"omitempty,max=500"`
	Notes    *string `json:"notes"`
}

// CustomerResponse represents a customer in API responses
type CustomerResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	FirstName string    `json:"first_name"`
	Mobile    string    `json:"mobile"`
	Email     string    `json:"email"`
	SiteCode  string    `json:"site_code"`
	Address   string    `json:"address"`
	Notes     string    `json:"notes"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CustomerListFilter represents filter options for customer list
type CustomerListFilter struct {
	Search   string `form:"search"`
	Status   string `form:"status" binding:"omitempty,oneof=active inactive"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ToCustomerResponse converts a domain customer to a response DTO
func ToCustomerResponse(customer *partner.Customer) CustomerResponse {
	return CustomerResponse{
		ID:        customer.ID,
		Name:      customer.Name,
		FirstName: customer.FirstName(),
		Mobile:    customer.Mobile,
		Email:     customer.Email,
		SiteCode:  customer.SiteCode,
		Address:   customer.Address,
		Notes:     customer.Notes,
		Status:    string(customer.Status),
		CreatedAt: customer.CreatedAt,
		UpdatedAt: customer.UpdatedAt,
	}
}

// =============================================================================
// Jobber DTOs
// =============================================================================

// CreateJobberRequest represents a request to register a jobber
type CreateJobberRequest struct {
	Name         string `json:"name" binding:"required,min=1,max=200"`
	Mobile       string `json:"mobile" binding:"required,min=7,max=16"`
	Specialities string `json:"specialities" binding:"max=500"`
	Address      string `json:"address" binding:"max=500"`
	Notes        string `json:"notes"`
}

// UpdateJobberRequest represents a request to update a jobber
type UpdateJobberRequest struct {
	Name         *string `json:"name" binding:"omitempty,min=1,max=200"`
	Mobile       *string `json:"mobile" binding:"omitempty,min=7,max=16"`
	Specialities *string `json:"specialities" binding:"omitempty,max=500"`
	Address      *string `json:"address" binding:"omitempty,max=500"`
	Notes        *string `json:"notes"`
}

// JobberResponse represents a jobber in API responses
type JobberResponse struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Mobile       string    `json:"mobile"`
	Specialities string    `json:"specialities"`
	Address      string    `json:"address"`
	Notes        string    `json:"notes"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// JobberListFilter represents filter options for jobber list
type JobberListFilter struct {
	Search   string `form:"search"`
	Active   *bool  `form:"active"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ToJobberResponse converts a domain jobber to a response DTO
func ToJobberResponse(jobber *partner.Jobber) JobberResponse {
	return JobberResponse{
		ID:           jobber.ID,
		Name:         jobber.Name,
		Mobile:       jobber.Mobile,
		Specialities: jobber.Specialities,
		Address:      jobber.Address,
		Notes:        jobber.Notes,
		Active:       jobber.Active,
		CreatedAt:    jobber.CreatedAt,
		UpdatedAt:    jobber.UpdatedAt,
	}
}
