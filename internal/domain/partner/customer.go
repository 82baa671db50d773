package partner

import (
	"regexp"
	"strings"

	"github.com/stitchdesk/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// CustomerStatus represents the status of a customer
type CustomerStatus string

const (
	CustomerStatusActive   CustomerStatus = "active"
	CustomerStatusInactive CustomerStatus = "inactive"
)

var mobilePattern = regexp.MustCompile(`^\+?[0-9]{7,15}$`)

// Customer represents a tailoring customer.
// It is the aggregate root for customer-related operations.
type Customer struct {
	shared.TenantAggregateRoot
	Name     string         `gorm:"type:varchar(200);not null"`
	Mobile   string         `gorm:"type:varchar(20);not null;index"`
	Email    string         `gorm:"type:varchar(200)"`
	SiteCode string         `gorm:"type:varchar(50);not null;index"`
	Address  string         `gorm:"type:text"`
	Notes    string         `gorm:"type:text"`
	Status   CustomerStatus `gorm:"type:varchar(20);not null;default:'active'"`
}

// TableName returns the table name for GORM
func (Customer) TableName() string {
	return "customers"
}

// NewCustomer creates a new customer with required fields
func NewCustomer(tenantID uuid.UUID, name, mobile, siteCode string) (*Customer, error) {
	name = strings.TrimSpace(name)
	mobile = strings.TrimSpace(mobile)
	siteCode = strings.TrimSpace(siteCode)

	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Customer name cannot be empty")
	}
	if len(name) > 200 {
		return nil, shared.NewDomainError("INVALID_NAME", "Customer name cannot exceed 200 characters")
	}
	if !mobilePattern.MatchString(mobile) {
		return nil, shared.NewDomainError("INVALID_MOBILE", "Mobile number must be 7-15 digits")
	}
	if siteCode == "" {
		return nil, shared.NewDomainError("INVALID_SITE_CODE", "Site code cannot be empty")
	}

	customer := &Customer{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Name:                name,
		Mobile:              mobile,
		SiteCode:            strings.ToUpper(siteCode),
		Status:              CustomerStatusActive,
	}

	customer.AddDomainEvent(NewCustomerCreatedEvent(customer))

	return customer, nil
}

// FirstName returns the first whitespace-separated token of the name.
// Used as the default reference label for outfit instances in an order.
func (c *Customer) FirstName() string {
	fields := strings.Fields(c.Name)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// UpdateName changes the customer name
func (c *Customer) UpdateName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Customer name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Customer name cannot exceed 200 characters")
	}
	c.Name = name
	c.Touch()
	return nil
}

// UpdateMobile changes the customer mobile number
func (c *Customer) UpdateMobile(mobile string) error {
	mobile = strings.TrimSpace(mobile)
	if !mobilePattern.MatchString(mobile) {
		return shared.NewDomainError("INVALID_MOBILE", "Mobile number must be 7-15 digits")
	}
	c.Mobile = mobile
	c.Touch()
	return nil
}

// UpdateEmail changes the customer email
func (c *Customer) UpdateEmail(email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email != "" && !strings.Contains(email, "@") {
		return shared.NewDomainError("INVALID_EMAIL", "Email address is not valid")
	}
	c.Email = email
	c.Touch()
	return nil
}

// UpdateSiteCode changes the site/admin code
func (c *Customer) UpdateSiteCode(siteCode string) error {
	siteCode = strings.TrimSpace(siteCode)
	if siteCode == "" {
		return shared.NewDomainError("INVALID_SITE_CODE", "Site code cannot be empty")
	}
	c.SiteCode = strings.ToUpper(siteCode)
	c.Touch()
	return nil
}

// UpdateAddress changes the customer address
func (c *Customer) UpdateAddress(address string) {
	c.Address = strings.TrimSpace(address)
	c.Touch()
}

// SetNotes sets free-form notes
func (c *Customer) SetNotes(notes string) {
	c.Notes = notes
	c.Touch()
}

// Deactivate marks the customer as inactive
func (c *Customer) Deactivate() error {
	if c.Status == CustomerStatusInactive {
		return shared.NewDomainError("INVALID_STATE", "Customer is already inactive")
	}
	c.Status = CustomerStatusInactive
	c.Touch()
	return nil
}

// Activate marks the customer as active
func (c *Customer) Activate() error {
	if c.Status == CustomerStatusActive {
		return shared.NewDomainError("INVALID_STATE", "Customer is already active")
	}
	c.Status = CustomerStatusActive
	c.Touch()
	return nil
}

// IsActive returns true if the customer is active
func (c *Customer) IsActive() bool {
	return c.Status == CustomerStatusActive
}
