package orders

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/stitchdesk/backend/internal/domain/shared"
	"github.com/stitchdesk/backend/internal/domain/shared/valueobject"
)

// OrderStatus represents the workshop status of an order
type OrderStatus string

const (
	OrderStatusReceived   OrderStatus = "RECEIVED"
	OrderStatusInProgress OrderStatus = "IN_PROGRESS"
	OrderStatusReady      OrderStatus = "READY"
	OrderStatusDelivered  OrderStatus = "DELIVERED"
	OrderStatusCancelled  OrderStatus = "CANCELLED"
)

// IsValid checks if the status is a valid OrderStatus
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusReceived, OrderStatusInProgress, OrderStatusReady, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of OrderStatus
func (s OrderStatus) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	switch s {
	case OrderStatusReceived:
		return target == OrderStatusInProgress || target == OrderStatusCancelled
	case OrderStatusInProgress:
		return target == OrderStatusReady || target == OrderStatusCancelled
	case OrderStatusReady:
		return target == OrderStatusDelivered
	case OrderStatusDelivered, OrderStatusCancelled:
		return false // Terminal states
	}
	return false
}

// OrderDetail is one garment line within a placed order. Each detail is
// independently assignable to a jobber.
type OrderDetail struct {
	ID                  uuid.UUID         `gorm:"type:uuid;primaryKey"`
	OrderID             uuid.UUID         `gorm:"type:uuid;not null;index"`
	OutfitID            uuid.UUID         `gorm:"type:uuid;not null"`
	OutfitName          string            `gorm:"type:varchar(200);not null"`
	OrderType           OrderType         `gorm:"type:varchar(20);not null"`
	Quantity            int               `gorm:"not null"`
	Amount              decimal.Decimal   `gorm:"type:decimal(15,2);not null"`
	Discount            decimal.Decimal   `gorm:"type:decimal(15,2);not null"`
	TrialDate           *time.Time        `gorm:""`
	DeliveryDate        *time.Time        `gorm:""`
	ReferenceLabel      string            `gorm:"type:varchar(100)"`
	SiteCode            string            `gorm:"type:varchar(20)"`
	IsPriority          bool              `gorm:"not null;default:false"`
	Instructions        string            `gorm:"type:text"`
	Inspiration         string            `gorm:"type:varchar(500)"`
	Images              []string          `gorm:"serializer:json;type:text"`
	StitchOptions       map[string]string `gorm:"serializer:json;type:text"`
	MeasurementRecordID *uuid.UUID        `gorm:"type:uuid"`
	JobberID            *uuid.UUID        `gorm:"type:uuid;index"`
	AssignedAt          *time.Time        `gorm:""`
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// TableName returns the table name for GORM
func (OrderDetail) TableName() string {
	return "order_details"
}

// IsAssigned reports whether a jobber was assigned to this detail
func (d *OrderDetail) IsAssigned() bool {
	return d.JobberID != nil
}

// GetAmountMoney returns the detail amount as Money
func (d *OrderDetail) GetAmountMoney() valueobject.Money {
	return valueobject.NewMoneyINR(d.Amount)
}

// Order is a placed tailoring order: the durable result of a submitted
// draft. Details carry the per-garment work; payments are tracked in
// the finance context against the payable amount.
type Order struct {
	shared.TenantAggregateRoot
	OrderNumber    string          `gorm:"type:varchar(50);not null;uniqueIndex:idx_order_tenant_number"`
	CustomerID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	CustomerName   string          `gorm:"type:varchar(200);not null"`
	OrderDate      time.Time       `gorm:"not null"`
	Details        []OrderDetail   `gorm:"foreignKey:OrderID;references:ID"`
	TotalAmount    decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	DiscountAmount decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	PayableAmount  decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Status         OrderStatus     `gorm:"type:varchar(20);not null;index"`
	StartedAt      *time.Time      `gorm:""`
	ReadyAt        *time.Time      `gorm:""`
	DeliveredAt    *time.Time      `gorm:""`
	CancelledAt    *time.Time      `gorm:""`
	CancelReason   string          `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (Order) TableName() string {
	return "orders"
}

// NewOrder creates a new received order shell. Details are added from
// the submission payload before saving.
func NewOrder(tenantID uuid.UUID, orderNumber string, customerID uuid.UUID, customerName string, orderDate time.Time) (*Order, error) {
	if orderNumber == "" {
		return nil, shared.NewDomainError("INVALID_ORDER_NUMBER", "Order number cannot be empty")
	}
	if customerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer ID cannot be empty")
	}
	if customerName == "" {
		return nil, shared.NewDomainError("INVALID_CUSTOMER_NAME", "Customer name cannot be empty")
	}

	order := &Order{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		OrderNumber:         orderNumber,
		CustomerID:          customerID,
		CustomerName:        customerName,
		OrderDate:           orderDate,
		Details:             make([]OrderDetail, 0),
		TotalAmount:         decimal.Zero,
		DiscountAmount:      decimal.Zero,
		PayableAmount:       decimal.Zero,
		Status:              OrderStatusReceived,
	}

	return order, nil
}

// AddDetail adds one garment line from a submission detail.
// measurementRecordID links the persisted measurement record created
// alongside the order, nil when the instance had no measurements.
func (o *Order) AddDetail(detail SubmissionDetail, measurementRecordID *uuid.UUID, outfitName string) error {
	if o.Status != OrderStatusReceived {
		return shared.NewDomainError("INVALID_STATE", "Cannot add details to an order in progress")
	}
	if detail.Quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if detail.Amount.IsNegative() {
		return shared.NewDomainError("INVALID_AMOUNT", "Detail amount cannot be negative")
	}

	trialDate, err := ParseSubmissionDate(detail.TrialDate)
	if err != nil {
		return shared.NewDomainError("INVALID_DATE", "Trial date is not in a recognized format")
	}
	deliveryDate, err := ParseSubmissionDate(detail.DeliveryDate)
	if err != nil {
		return shared.NewDomainError("INVALID_DATE", "Delivery date is not in a recognized format")
	}

	now := time.Now()
	o.Details = append(o.Details, OrderDetail{
		ID:                  uuid.New(),
		OrderID:             o.ID,
		OutfitID:            detail.OutfitID,
		OutfitName:          outfitName,
		OrderType:           OrderTypeFromCode(detail.TypeID),
		Quantity:            detail.Quantity,
		Amount:              detail.Amount,
		Discount:            detail.Discount,
		TrialDate:           trialDate,
		DeliveryDate:        deliveryDate,
		ReferenceLabel:      detail.ReferenceLabel,
		SiteCode:            detail.SiteCode,
		IsPriority:          detail.IsPriority,
		Instructions:        detail.Instructions,
		Inspiration:         detail.Inspiration,
		Images:              detail.Images,
		StitchOptions:       detail.StitchOptions,
		MeasurementRecordID: measurementRecordID,
		CreatedAt:           now,
		UpdatedAt:           now,
	})
	o.recalculateTotals()
	o.UpdatedAt = now

	return nil
}

// Place finalizes order creation and emits the created event.
// Requires at least one detail.
func (o *Order) Place() error {
	if len(o.Details) == 0 {
		return shared.ErrNoInstances
	}
	o.AddDomainEvent(NewOrderPlacedEvent(o))
	return nil
}

// AssignJobber assigns a jobber to one detail. Assigning the first
// detail of a received order moves the order to in progress.
func (o *Order) AssignJobber(detailID, jobberID uuid.UUID) error {
	if o.IsTerminal() {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot assign work on a %s order", o.Status))
	}
	if jobberID == uuid.Nil {
		return shared.NewDomainError("INVALID_JOBBER", "Jobber ID cannot be empty")
	}

	for idx := range o.Details {
		if o.Details[idx].ID != detailID {
			continue
		}
		now := time.Now()
		o.Details[idx].JobberID = &jobberID
		o.Details[idx].AssignedAt = &now
		o.Details[idx].UpdatedAt = now
		o.UpdatedAt = now

		if o.Status == OrderStatusReceived {
			o.Status = OrderStatusInProgress
			o.StartedAt = &now
		}

		o.AddDomainEvent(NewJobberAssignedEvent(o, o.Details[idx].ID, jobberID))
		return nil
	}

	return shared.NewDomainError("DETAIL_NOT_FOUND", "Order detail not found")
}

// UnassignJobber removes the jobber from one detail
func (o *Order) UnassignJobber(detailID uuid.UUID) error {
	if o.IsTerminal() {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot change work on a %s order", o.Status))
	}
	for idx := range o.Details {
		if o.Details[idx].ID != detailID {
			continue
		}
		o.Details[idx].JobberID = nil
		o.Details[idx].AssignedAt = nil
		o.Details[idx].UpdatedAt = time.Now()
		o.UpdatedAt = o.Details[idx].UpdatedAt
		return nil
	}
	return shared.NewDomainError("DETAIL_NOT_FOUND", "Order detail not found")
}

// Start moves the order to in progress without a jobber assignment,
// for work done in house
func (o *Order) Start() error {
	if !o.Status.CanTransitionTo(OrderStatusInProgress) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot start order in %s status", o.Status))
	}
	now := time.Now()
	o.Status = OrderStatusInProgress
	o.StartedAt = &now
	o.UpdatedAt = now
	o.AddDomainEvent(NewOrderStatusChangedEvent(o, OrderStatusReceived))
	return nil
}

// MarkReady marks all work finished and the order ready for pickup
func (o *Order) MarkReady() error {
	if !o.Status.CanTransitionTo(OrderStatusReady) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot mark order ready in %s status", o.Status))
	}
	now := time.Now()
	previous := o.Status
	o.Status = OrderStatusReady
	o.ReadyAt = &now
	o.UpdatedAt = now
	o.AddDomainEvent(NewOrderStatusChangedEvent(o, previous))
	return nil
}

// Deliver marks the order as handed over to the customer
func (o *Order) Deliver() error {
	if !o.Status.CanTransitionTo(OrderStatusDelivered) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot deliver order in %s status", o.Status))
	}
	now := time.Now()
	previous := o.Status
	o.Status = OrderStatusDelivered
	o.DeliveredAt = &now
	o.UpdatedAt = now
	o.AddDomainEvent(NewOrderStatusChangedEvent(o, previous))
	return nil
}

// Cancel cancels the order with a reason
func (o *Order) Cancel(reason string) error {
	if !o.Status.CanTransitionTo(OrderStatusCancelled) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot cancel order in %s status", o.Status))
	}
	if reason == "" {
		return shared.NewDomainError("INVALID_REASON", "Cancel reason is required")
	}
	now := time.Now()
	previous := o.Status
	o.Status = OrderStatusCancelled
	o.CancelledAt = &now
	o.CancelReason = reason
	o.UpdatedAt = now
	o.AddDomainEvent(NewOrderCancelledEvent(o, previous))
	return nil
}

// ApplyDiscount applies an order-level discount
func (o *Order) ApplyDiscount(discount valueobject.Money) error {
	if o.IsTerminal() {
		return shared.NewDomainError("INVALID_STATE", "Cannot change amounts on a closed order")
	}
	if discount.Amount().IsNegative() {
		return shared.NewDomainError("INVALID_DISCOUNT", "Discount cannot be negative")
	}
	if discount.Amount().GreaterThan(o.TotalAmount) {
		return shared.NewDomainError("INVALID_DISCOUNT", "Discount cannot exceed total amount")
	}
	o.DiscountAmount = discount.Amount()
	o.PayableAmount = o.TotalAmount.Sub(o.DiscountAmount)
	o.UpdatedAt = time.Now()
	return nil
}

// recalculateTotals recalculates the order totals from its details
func (o *Order) recalculateTotals() {
	total := decimal.Zero
	for _, detail := range o.Details {
		total = total.Add(detail.Amount).Sub(detail.Discount)
	}
	o.TotalAmount = total
	o.PayableAmount = o.TotalAmount.Sub(o.DiscountAmount)
	if o.PayableAmount.IsNegative() {
		o.DiscountAmount = o.TotalAmount
		o.PayableAmount = decimal.Zero
	}
}

// GetDetail returns a detail by its ID
func (o *Order) GetDetail(detailID uuid.UUID) *OrderDetail {
	for idx := range o.Details {
		if o.Details[idx].ID == detailID {
			return &o.Details[idx]
		}
	}
	return nil
}

// GetTotalAmountMoney returns total amount as Money
func (o *Order) GetTotalAmountMoney() valueobject.Money {
	return valueobject.NewMoneyINR(o.TotalAmount)
}

// GetPayableAmountMoney returns payable amount as Money
func (o *Order) GetPayableAmountMoney() valueobject.Money {
	return valueobject.NewMoneyINR(o.PayableAmount)
}

// DetailCount returns the number of details in the order
func (o *Order) DetailCount() int {
	return len(o.Details)
}

// IsTerminal returns true if the order is delivered or cancelled
func (o *Order) IsTerminal() bool {
	return o.Status == OrderStatusDelivered || o.Status == OrderStatusCancelled
}
