package orders

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/stitchdesk/backend/internal/domain/orders"
)

// =============================================================================
// Draft DTOs
// =============================================================================

// SelectCustomerRequest picks the draft's customer
type SelectCustomerRequest struct {
	CustomerID uuid.UUID `json:"customer_id" binding:"required"`
}

// AddInstanceRequest adds an outfit occurrence to the draft
type AddInstanceRequest struct {
	OutfitID uuid.UUID `json:"outfit_id" binding:"required"`
}

// UpdateInstanceRequest mutates one instance's editable attributes.
// Nil fields are left unchanged; for dates an empty string clears the
// date. Dates use the "2006-01-02 15:04:05" format.
type UpdateInstanceRequest struct {
	OrderType           *string          `json:"order_type" binding:"omitempty,oneof=stitching alteration"`
	Quantity            *int             `json:"quantity" binding:"omitempty,min=1"`
	UnitPrice           *decimal.Decimal `json:"unit_price"`
	ReferenceName       *string          `json:"reference_name" binding:"omitempty,max=100"`
	SpecialInstructions *string          `json:"special_instructions"`
	InspirationLink     *string          `json:"inspiration_link" binding:"omitempty,max=500"`
	IsPriority          *bool            `json:"is_priority"`
	TrialDate           *string          `json:"trial_date"`
	DeliveryDate        *string          `json:"delivery_date"`
}

// AddCostRequest appends an additional cost line to an instance
type AddCostRequest struct {
	Description string          `json:"description" binding:"required,min=1,max=200"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
}

// AddAttachmentRequest records an uploaded image against an instance
type AddAttachmentRequest struct {
	Key      string `json:"key" binding:"required,max=500"`
	FileName string `json:"file_name" binding:"max=200"`
}

// SetStitchOptionRequest records one style choice on an instance
type SetStitchOptionRequest struct {
	Name  string `json:"name" binding:"required,min=1,max=100"`
	Value string `json:"value" binding:"max=200"`
}

// SaveMeasurementsRequest commits the measurement capture form
type SaveMeasurementsRequest struct {
	Values map[string]string `json:"values" binding:"required"`
}

// AttachmentResponse is one image reference on an instance
type AttachmentResponse struct {
	Key      string `json:"key"`
	FileName string `json:"file_name"`
}

// CostResponse is one additional cost line on an instance
type CostResponse struct {
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
}

// InstanceResponse represents one outfit instance in the draft
type InstanceResponse struct {
	InstanceID          string               `json:"instance_id"`
	OutfitID            uuid.UUID            `json:"outfit_id"`
	OutfitName          string               `json:"outfit_name"`
	ReferenceName       string               `json:"reference_name"`
	OrderType           string               `json:"order_type"`
	Quantity            int                  `json:"quantity"`
	UnitPrice           decimal.Decimal      `json:"unit_price"`
	AdditionalCosts     []CostResponse       `json:"additional_costs"`
	SpecialInstructions string               `json:"special_instructions"`
	InspirationLink     string               `json:"inspiration_link"`
	Attachments         []AttachmentResponse `json:"attachments"`
	TrialDate           string               `json:"trial_date"`
	DeliveryDate        string               `json:"delivery_date"`
	IsPriority          bool                 `json:"is_priority"`
	StitchOptions       map[string]string    `json:"stitch_options"`
	HasMeasurements     bool                 `json:"has_measurements"`
	Total               decimal.Decimal      `json:"total"`
}

// DraftCustomerResponse is the draft's selected customer
type DraftCustomerResponse struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Mobile   string    `json:"mobile"`
	SiteCode string    `json:"site_code"`
}

// DraftResponse represents the whole composition session
type DraftResponse struct {
	Customer   *DraftCustomerResponse `json:"customer"`
	Instances  []InstanceResponse     `json:"instances"`
	GrandTotal decimal.Decimal        `json:"grand_total"`
	UpdatedAt  time.Time              `json:"updated_at"`
}

// MeasurementFormField is one field of the measurement capture form
type MeasurementFormField struct {
	FieldID  uuid.UUID `json:"field_id"`
	Name     string    `json:"name"`
	DataType string    `json:"data_type"`
	Seq      int       `json:"seq"`
	Value    string    `json:"value"`
}

// MeasurementFormResponse is the seeded measurement capture form for
// one instance
type MeasurementFormResponse struct {
	InstanceID string                 `json:"instance_id"`
	Fields     []MeasurementFormField `json:"fields"`
}

// =============================================================================
// Order DTOs
// =============================================================================

// OrderDetailResponse represents one garment line of a placed order
type OrderDetailResponse struct {
	ID                  uuid.UUID         `json:"id"`
	OutfitID            uuid.UUID         `json:"outfit_id"`
	OutfitName          string            `json:"outfit_name"`
	OrderType           string            `json:"order_type"`
	Quantity            int               `json:"quantity"`
	Amount              decimal.Decimal   `json:"amount"`
	Discount            decimal.Decimal   `json:"discount"`
	TrialDate           *time.Time        `json:"trial_date"`
	DeliveryDate        *time.Time        `json:"delivery_date"`
	ReferenceLabel      string            `json:"reference_label"`
	IsPriority          bool              `json:"is_priority"`
	Instructions        string            `json:"instructions"`
	Inspiration         string            `json:"inspiration"`
	Images              []string          `json:"images"`
	StitchOptions       map[string]string `json:"stitch_options"`
	MeasurementRecordID *uuid.UUID        `json:"measurement_record_id"`
	JobberID            *uuid.UUID        `json:"jobber_id"`
	AssignedAt          *time.Time        `json:"assigned_at"`
}

// OrderResponse represents a placed order in API responses
type OrderResponse struct {
	ID             uuid.UUID             `json:"id"`
	OrderNumber    string                `json:"order_number"`
	CustomerID     uuid.UUID             `json:"customer_id"`
	CustomerName   string                `json:"customer_name"`
	OrderDate      time.Time             `json:"order_date"`
	Status         string                `json:"status"`
	TotalAmount    decimal.Decimal       `json:"total_amount"`
	DiscountAmount decimal.Decimal       `json:"discount_amount"`
	PayableAmount  decimal.Decimal       `json:"payable_amount"`
	Details        []OrderDetailResponse `json:"details"`
	CreatedAt      time.Time             `json:"created_at"`
	UpdatedAt      time.Time             `json:"updated_at"`
}

// OrderListFilter represents filter options for the order list
type OrderListFilter struct {
	Search     string     `form:"search"`
	Status     string     `form:"status" binding:"omitempty,oneof=RECEIVED IN_PROGRESS READY DELIVERED CANCELLED"`
	CustomerID *uuid.UUID `form:"customer_id"`
	JobberID   *uuid.UUID `form:"jobber_id"`
	Page       int        `form:"page" binding:"omitempty,min=1"`
	PageSize   int        `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy    string     `form:"order_by"`
	OrderDir   string     `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// AssignJobberRequest assigns a jobber to one order detail
type AssignJobberRequest struct {
	JobberID uuid.UUID `json:"jobber_id" binding:"required"`
}

// CancelOrderRequest cancels an order with a reason
type CancelOrderRequest struct {
	Reason string `json:"reason" binding:"required,min=1,max=500"`
}

// ToDraftResponse converts a draft to a response DTO
func ToDraftResponse(draft *orders.OrderDraft) DraftResponse {
	response := DraftResponse{
		Instances:  make([]InstanceResponse, 0, len(draft.Instances)),
		GrandTotal: draft.GrandTotal(),
		UpdatedAt:  draft.UpdatedAt,
	}
	if draft.Customer != nil {
		response.Customer = &DraftCustomerResponse{
			ID:       draft.Customer.ID,
			Name:     draft.Customer.Name,
			Mobile:   draft.Customer.Mobile,
			SiteCode: draft.Customer.SiteCode,
		}
	}
	for idx := range draft.Instances {
		response.Instances = append(response.Instances, ToInstanceResponse(&draft.Instances[idx]))
	}
	return response
}

// ToInstanceResponse converts an instance to a response DTO
func ToInstanceResponse(instance *orders.OutfitInstance) InstanceResponse {
	costs := make([]CostResponse, 0, len(instance.AdditionalCosts))
	for _, cost := range instance.AdditionalCosts {
		costs = append(costs, CostResponse{Description: cost.Description, Amount: cost.Amount})
	}
	attachments := make([]AttachmentResponse, 0, len(instance.Attachments))
	for _, attachment := range instance.Attachments {
		attachments = append(attachments, AttachmentResponse{Key: attachment.Key, FileName: attachment.FileName})
	}
	return InstanceResponse{
		InstanceID:          instance.InstanceID,
		OutfitID:            instance.OutfitID,
		OutfitName:          instance.OutfitName,
		ReferenceName:       instance.ReferenceName,
		OrderType:           instance.OrderType.String(),
		Quantity:            instance.Quantity,
		UnitPrice:           instance.UnitPrice,
		AdditionalCosts:     costs,
		SpecialInstructions: instance.SpecialInstructions,
		InspirationLink:     instance.InspirationLink,
		Attachments:         attachments,
		TrialDate:           formatOptionalDate(instance.TrialDate),
		DeliveryDate:        formatOptionalDate(instance.DeliveryDate),
		IsPriority:          instance.IsPriority,
		StitchOptions:       instance.StitchOptions,
		HasMeasurements:     instance.HasMeasurements(),
		Total:               instance.Total,
	}
}

// ToOrderResponse converts a domain order to a response DTO
func ToOrderResponse(order *orders.Order) OrderResponse {
	details := make([]OrderDetailResponse, 0, len(order.Details))
	for idx := range order.Details {
		detail := &order.Details[idx]
		details = append(details, OrderDetailResponse{
			ID:                  detail.ID,
			OutfitID:            detail.OutfitID,
			OutfitName:          detail.OutfitName,
			OrderType:           detail.OrderType.String(),
			Quantity:            detail.Quantity,
			Amount:              detail.Amount,
			Discount:            detail.Discount,
			TrialDate:           detail.TrialDate,
			DeliveryDate:        detail.DeliveryDate,
			ReferenceLabel:      detail.ReferenceLabel,
			IsPriority:          detail.IsPriority,
			Instructions:        detail.Instructions,
			Inspiration:         detail.Inspiration,
			Images:              detail.Images,
			StitchOptions:       detail.StitchOptions,
			MeasurementRecordID: detail.MeasurementRecordID,
			JobberID:            detail.JobberID,
			AssignedAt:          detail.AssignedAt,
		})
	}
	return OrderResponse{
		ID:             order.ID,
		OrderNumber:    order.OrderNumber,
		CustomerID:     order.CustomerID,
		CustomerName:   order.CustomerName,
		OrderDate:      order.OrderDate,
		Status:         order.Status.String(),
		TotalAmount:    order.TotalAmount,
		DiscountAmount: order.DiscountAmount,
		PayableAmount:  order.PayableAmount,
		Details:        details,
		CreatedAt:      order.CreatedAt,
		UpdatedAt:      order.UpdatedAt,
	}
}

func formatOptionalDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02 15:04:05")
}
