package partner

import (
	"strings"

	"github.com/stitchdesk/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Jobber represents an external tailor/contractor to whom stitching work
// is assigned. It is the aggregate root for jobber-related operations.
type Jobber struct {
	shared.TenantAggregateRoot
	Name         string `gorm:"type:varchar(200);not null"`
	Mobile       string `gorm:"type:varchar(20);not null;index"`
	Specialities string `gorm:"type:text"` // comma-separated outfit types the jobber handles
	Address      string `gorm:"type:text"`
	Notes        string `gorm:"type:text"`
	Active       bool   `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (Jobber) TableName() string {
	return "jobbers"
}

// NewJobber creates a new jobber with required fields
func NewJobber(tenantID uuid.UUID, name, mobile string) (*Jobber, error) {
	name = strings.TrimSpace(name)
	mobile = strings.TrimSpace(mobile)

	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Jobber name cannot be empty")
	}
	if !mobilePattern.MatchString(mobile) {
		return nil, shared.NewDomainError("INVALID_MOBILE", "Mobile number must be 7-15 digits")
	}

	jobber := &Jobber{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Name:                name,
		Mobile:              mobile,
		Active:              true,
	}

	jobber.AddDomainEvent(NewJobberCreatedEvent(jobber))

	return jobber, nil
}

// UpdateName changes the jobber name
func (j *Jobber) UpdateName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Jobber name cannot be empty")
	}
	j.Name = name
	j.Touch()
	return nil
}

// UpdateMobile changes the jobber mobile number
func (j *Jobber) UpdateMobile(mobile string) error {
	mobile = strings.TrimSpace(mobile)
	if !mobilePattern.MatchString(mobile) {
		return shared.NewDomainError("INVALID_MOBILE", "Mobile number must be 7-15 digits")
	}
	j.Mobile = mobile
	j.Touch()
	return nil
}

// SetSpecialities sets the outfit types this jobber handles
func (j *Jobber) SetSpecialities(specialities string) {
	j.Specialities = strings.TrimSpace(specialities)
	j.Touch()
}

// SetAddress sets the jobber address
func (j *Jobber) SetAddress(address string) {
	j.Address = strings.TrimSpace(address)
	j.Touch()
}

// SetNotes sets free-form notes
func (j *Jobber) SetNotes(notes string) {
	j.Notes = notes
	j.Touch()
}

// Deactivate marks the jobber as inactive; inactive jobbers cannot
// receive new work assignments.
func (j *Jobber) Deactivate() error {
	if !j.Active {
		return shared.NewDomainError("INVALID_STATE", "Jobber is already inactive")
	}
	j.Active = false
	j.Touch()
	return nil
}

// Activate marks the jobber as active
func (j *Jobber) Activate() error {
	if j.Active {
		return shared.NewDomainError("INVALID_STATE", "Jobber is already active")
	}
	j.Active = true
	j.Touch()
	return nil
}
