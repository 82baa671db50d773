package catalog

import (
	"strings"

	"github.com/stitchdesk/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// FieldDataType is the declared data type of a measurement field
type FieldDataType string

const (
	FieldTypeText   FieldDataType = "text"
	FieldTypeNumber FieldDataType = "number"
)

// IsValid checks whether the data type is known
func (t FieldDataType) IsValid() bool {
	return t == FieldTypeText || t == FieldTypeNumber
}

// MeasurementField defines one measurement an outfit requires
// (e.g. chest, sleeve length). Fields are ordered by Seq for display
// and drive which keys are legal in an order's measurement values.
type MeasurementField struct {
	shared.BaseEntity
	TenantID uuid.UUID     `gorm:"type:uuid;not null;index"`
	OutfitID uuid.UUID     `gorm:"type:uuid;not null;index"`
	Name     string        `gorm:"type:varchar(100);not null"`
	DataType FieldDataType `gorm:"type:varchar(10);not null;default:'number'"`
	Seq      int           `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (MeasurementField) TableName() string {
	return "measurement_fields"
}

// NewMeasurementField creates a measurement field definition for an outfit
func NewMeasurementField(tenantID, outfitID uuid.UUID, name string, dataType FieldDataType, seq int) (*MeasurementField, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Measurement field name cannot be empty")
	}
	if !dataType.IsValid() {
		return nil, shared.NewDomainError("INVALID_DATA_TYPE", "Measurement field data type must be text or number")
	}
	if outfitID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_OUTFIT", "Outfit ID cannot be empty")
	}

	return &MeasurementField{
		BaseEntity: shared.NewBaseEntity(),
		TenantID:   tenantID,
		OutfitID:   outfitID,
		Name:       name,
		DataType:   dataType,
		Seq:        seq,
	}, nil
}