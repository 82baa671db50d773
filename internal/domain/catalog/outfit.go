package catalog

import (
	"strings"

	"github.com/stitchdesk/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Outfit represents a garment type offered for stitching or alteration.
// Each outfit carries two independently maintained price lists: one for
// stitching new garments and one for altering existing ones.
type Outfit struct {
	shared.TenantAggregateRoot
	Name            string          `gorm:"type:varchar(200);not null"`
	Code            string          `gorm:"type:varchar(50);not null;uniqueIndex:idx_outfit_tenant_code,priority:2"`
	Description     string          `gorm:"type:text"`
	ImageKey        string          `gorm:"type:varchar(500)"` // object storage key for the catalog image
	StitchingPrice  decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	AlterationPrice decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Active          bool            `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (Outfit) TableName() string {
	return "outfits"
}

// NewOutfit creates a new catalog outfit
func NewOutfit(tenantID uuid.UUID, name, code string, stitchingPrice, alterationPrice decimal.Decimal) (*Outfit, error) {
	name = strings.TrimSpace(name)
	code = strings.TrimSpace(code)

	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Outfit name cannot be empty")
	}
	if code == "" {
		return nil, shared.NewDomainError("INVALID_CODE", "Outfit code cannot be empty")
	}
	if len(code) > 50 {
		return nil, shared.NewDomainError("INVALID_CODE", "Outfit code cannot exceed 50 characters")
	}
	if stitchingPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Stitching price cannot be negative")
	}
	if alterationPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Alteration price cannot be negative")
	}

	outfit := &Outfit{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Name:                name,
		Code:                strings.ToUpper(code),
		StitchingPrice:      stitchingPrice,
		AlterationPrice:     alterationPrice,
		Active:              true,
	}

	outfit.AddDomainEvent(NewOutfitCreatedEvent(outfit))

	return outfit, nil
}

// PriceFor returns the catalog price for the given order type
// ("stitching" or "alteration").
func (o *Outfit) PriceFor(orderType string) (decimal.Decimal, error) {
	switch orderType {
	case "stitching":
		return o.StitchingPrice, nil
	case "alteration":
		return o.AlterationPrice, nil
	}
	return decimal.Zero, shared.NewDomainError("INVALID_ORDER_TYPE", "Order type must be stitching or alteration")
}

// UpdateName changes the outfit name
func (o *Outfit) UpdateName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Outfit name cannot be empty")
	}
	o.Name = name
	o.Touch()
	return nil
}

// UpdateDescription changes the outfit description
func (o *Outfit) UpdateDescription(description string) {
	o.Description = strings.TrimSpace(description)
	o.Touch()
}

// SetImageKey sets the object storage key for the catalog image
func (o *Outfit) SetImageKey(key string) {
	o.ImageKey = strings.TrimSpace(key)
	o.Touch()
}

// UpdatePrices replaces both price lists
func (o *Outfit) UpdatePrices(stitchingPrice, alterationPrice decimal.Decimal) error {
	if stitchingPrice.IsNegative() || alterationPrice.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Prices cannot be negative")
	}
	o.StitchingPrice = stitchingPrice
	o.AlterationPrice = alterationPrice
	o.Touch()
	o.AddDomainEvent(NewOutfitPricesUpdatedEvent(o))
	return nil
}

// Deactivate removes the outfit from the active catalog
func (o *Outfit) Deactivate() error {
	if !o.Active {
		return shared.NewDomainError("INVALID_STATE", "Outfit is already inactive")
	}
	o.Active = false
	o.Touch()
	return nil
}

// Activate returns the outfit to the active catalog
func (o *Outfit) Activate() error {
	if o.Active {
		return shared.NewDomainError("INVALID_STATE", "Outfit is already active")
	}
	o.Active = true
	o.Touch()
	return nil
}
