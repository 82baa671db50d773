package orders

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/stitchdesk/backend/internal/domain/catalog"
)

// submissionDateFormat is the fixed wire representation of dates.
// Unset dates are sent as an empty string.
const submissionDateFormat = "2006-01-02 15:04:05"

// SubmissionMeasurementDetail maps one measured value to its field
// definition ID
type SubmissionMeasurementDetail struct {
	FieldID uuid.UUID `json:"field_id"`
	Value   string    `json:"value"`
}

// SubmissionMeasurementRecord is the nested measurement payload for one
// order detail
type SubmissionMeasurementRecord struct {
	CustomerID      uuid.UUID                     `json:"customer_id"`
	OutfitID        uuid.UUID                     `json:"outfit_id"`
	MeasurementDate string                        `json:"measurement_date"`
	Details         []SubmissionMeasurementDetail `json:"details"`
}

// SubmissionDetail is one order line in the submission payload,
// assembled from one draft instance
type SubmissionDetail struct {
	OutfitID          uuid.UUID                    `json:"outfit_id"`
	Images            []string                     `json:"images"`
	Amount            decimal.Decimal              `json:"amount"`
	Discount          decimal.Decimal              `json:"discount"`
	Quantity          int                          `json:"quantity"`
	TrialDate         string                       `json:"trial_date"`
	DeliveryDate      string                       `json:"delivery_date"`
	ReferenceLabel    string                       `json:"reference_label"`
	SiteCode          string                       `json:"site_code"`
	TypeID            int                          `json:"type_id"`
	IsPriority        bool                         `json:"is_priority"`
	Instructions      string                       `json:"instructions"`
	Inspiration       string                       `json:"inspiration"`
	StitchOptions     map[string]string            `json:"stitch_options"`
	MeasurementRecord *SubmissionMeasurementRecord `json:"measurement_record"`
}

// Submission is the complete payload handed to order creation. It is
// accepted or rejected as a whole; there is no partial-instance commit.
type Submission struct {
	CustomerID uuid.UUID          `json:"customer_id"`
	OrderDate  string             `json:"order_date"`
	GrandTotal decimal.Decimal    `json:"grand_total"`
	Details    []SubmissionDetail `json:"details"`
}

// BuildSubmission assembles the submission payload from the draft.
// Preconditions are validated first; on failure the draft is untouched.
// Measurement values are resolved to field IDs against the supplied
// definitions per outfit; values with no matching definition are
// dropped. Dates use a fixed format with empty string for unset.
func (d *OrderDraft) BuildSubmission(fieldsByOutfit map[uuid.UUID][]catalog.MeasurementField, now time.Time) (*Submission, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}

	submission := &Submission{
		CustomerID: d.Customer.ID,
		OrderDate:  now.Format(submissionDateFormat),
		GrandTotal: d.GrandTotal(),
		Details:    make([]SubmissionDetail, 0, len(d.Instances)),
	}

	for idx := range d.Instances {
		instance := &d.Instances[idx]

		images := make([]string, 0, len(instance.Attachments))
		for _, attachment := range instance.Attachments {
			images = append(images, attachment.Key)
		}

		detail := SubmissionDetail{
			OutfitID:       instance.OutfitID,
			Images:         images,
			Amount:         instance.Total,
			Discount:       decimal.Zero,
			Quantity:       instance.Quantity,
			TrialDate:      formatSubmissionDate(instance.TrialDate),
			DeliveryDate:   formatSubmissionDate(instance.DeliveryDate),
			ReferenceLabel: instance.ReferenceName,
			SiteCode:       d.Customer.SiteCode,
			TypeID:         instance.OrderType.Code(),
			IsPriority:     instance.IsPriority,
			Instructions:   instance.SpecialInstructions,
			Inspiration:    instance.InspirationLink,
			StitchOptions:  instance.StitchOptions,
		}

		if len(instance.Measurements) > 0 {
			detail.MeasurementRecord = buildMeasurementRecord(
				d.Customer.ID, instance, fieldsByOutfit[instance.OutfitID], now)
		}

		submission.Details = append(submission.Details, detail)
	}

	return submission, nil
}

func buildMeasurementRecord(customerID uuid.UUID, instance *OutfitInstance, fields []catalog.MeasurementField, now time.Time) *SubmissionMeasurementRecord {
	record := &SubmissionMeasurementRecord{
		CustomerID:      customerID,
		OutfitID:        instance.OutfitID,
		MeasurementDate: now.Format(submissionDateFormat),
		Details:         make([]SubmissionMeasurementDetail, 0, len(instance.Measurements)),
	}
	// Field order follows the definition sequence; values without a
	// definition are dropped.
	for _, field := range fields {
		value, ok := instance.Measurements[field.Name]
		if !ok {
			continue
		}
		record.Details = append(record.Details, SubmissionMeasurementDetail{
			FieldID: field.ID,
			Value:   value,
		})
	}
	return record
}

func formatSubmissionDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(submissionDateFormat)
}

// ParseSubmissionDate parses a wire date back into a time, mapping the
// empty string to nil
func ParseSubmissionDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.ParseInLocation(submissionDateFormat, s, time.Local)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
