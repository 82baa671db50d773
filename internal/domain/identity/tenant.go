package identity

import (
	"strings"
	"time"

	"github.com/stitchdesk/backend/internal/domain/shared"
)

// Tenant is one tailoring business. All other aggregates are scoped to
// a tenant.
type Tenant struct {
	shared.BaseAggregateRoot
	Name    string `gorm:"type:varchar(200);not null"`
	Mobile  string `gorm:"type:varchar(20)"`
	Address string `gorm:"type:varchar(500)"`
	Active  bool   `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (Tenant) TableName() string {
	return "tenants"
}

// NewTenant creates a new active tenant
func NewTenant(name string) (*Tenant, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Business name cannot be empty")
	}
	if len(name) > 200 {
		return nil, shared.NewDomainError("INVALID_NAME", "Business name cannot exceed 200 characters")
	}
	return &Tenant{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Active:            true,
	}, nil
}

// UpdateContact updates the business contact details
func (t *Tenant) UpdateContact(mobile, address string) {
	t.Mobile = strings.TrimSpace(mobile)
	t.Address = strings.TrimSpace(address)
	t.UpdatedAt = time.Now()
}

// Deactivate suspends the business account
func (t *Tenant) Deactivate() {
	t.Active = false
	t.UpdatedAt = time.Now()
}
