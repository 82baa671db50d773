package measurement

import (
	"strconv"
	"strings"
	"time"

	"github.com/stitchdesk/backend/internal/domain/catalog"
	"github.com/stitchdesk/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// RecordDetail is one measured value within a record, tied to the
// measurement field definition it satisfies.
type RecordDetail struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	RecordID uuid.UUID `gorm:"type:uuid;not null;index"`
	FieldID  uuid.UUID `gorm:"type:uuid;not null"`
	Value    string    `gorm:"type:varchar(200);not null"`
}

// TableName returns the table name for GORM
func (RecordDetail) TableName() string {
	return "measurement_record_details"
}

// Record is a persisted measurement set taken for one customer and one
// outfit type. The latest record per (customer, outfit) pair seeds the
// measurement capture form of new orders.
type Record struct {
	shared.TenantAggregateRoot
	CustomerID uuid.UUID      `gorm:"type:uuid;not null;index:idx_measurement_customer_outfit"`
	OutfitID   uuid.UUID      `gorm:"type:uuid;not null;index:idx_measurement_customer_outfit"`
	MeasuredAt time.Time      `gorm:"not null"`
	Details    []RecordDetail `gorm:"foreignKey:RecordID;references:ID"`
}

// TableName returns the table name for GORM
func (Record) TableName() string {
	return "measurement_records"
}

// NewRecord creates a measurement record from field values keyed by field
// name. Values are validated against the field definitions: numeric fields
// must parse as numbers, and values with no matching definition are dropped.
func NewRecord(tenantID, customerID, outfitID uuid.UUID, fields []catalog.MeasurementField, values map[string]string) (*Record, error) {
	if customerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer ID cannot be empty")
	}
	if outfitID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_OUTFIT", "Outfit ID cannot be empty")
	}

	record := &Record{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		CustomerID:          customerID,
		OutfitID:            outfitID,
		MeasuredAt:          time.Now(),
		Details:             make([]RecordDetail, 0, len(values)),
	}

	for _, field := range fields {
		value, ok := values[field.Name]
		if !ok {
			continue
		}
		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}
		if field.DataType == catalog.FieldTypeNumber {
			if _, err := strconv.ParseFloat(value, 64); err != nil {
				return nil, shared.NewDomainError("INVALID_MEASUREMENT",
					"Measurement "+field.Name+" must be numeric")
			}
		}
		record.Details = append(record.Details, RecordDetail{
			ID:       uuid.New(),
			RecordID: record.ID,
			FieldID:  field.ID,
			Value:    value,
		})
	}

	return record, nil
}

// ValuesByField returns the record's values keyed by field ID
func (r *Record) ValuesByField() map[uuid.UUID]string {
	out := make(map[uuid.UUID]string, len(r.Details))
	for _, d := range r.Details {
		out[d.FieldID] = d.Value
	}
	return out
}
