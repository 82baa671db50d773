package finance

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/stitchdesk/backend/internal/domain/shared"
	"github.com/stitchdesk/backend/internal/domain/shared/valueobject"
)

// PaymentMethod represents how a payment was taken
type PaymentMethod string

const (
	PaymentMethodCash         PaymentMethod = "CASH"
	PaymentMethodUPI          PaymentMethod = "UPI"
	PaymentMethodCard         PaymentMethod = "CARD"
	PaymentMethodBankTransfer PaymentMethod = "BANK_TRANSFER"
)

// IsValid checks if the payment method is valid
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodCash, PaymentMethodUPI, PaymentMethodCard, PaymentMethodBankTransfer:
		return true
	}
	return false
}

// String returns the string representation of PaymentMethod
func (m PaymentMethod) String() string {
	return string(m)
}

// PaymentKind distinguishes an advance taken at order intake from a
// settlement taken at or after delivery
type PaymentKind string

const (
	PaymentKindAdvance    PaymentKind = "ADVANCE"
	PaymentKindSettlement PaymentKind = "SETTLEMENT"
)

// IsValid checks if the kind is a valid PaymentKind
func (k PaymentKind) IsValid() bool {
	return k == PaymentKindAdvance || k == PaymentKindSettlement
}

// String returns the string representation of PaymentKind
func (k PaymentKind) String() string {
	return string(k)
}

// Payment records money received against an order. Payments are
// append-only; a mistaken entry is reversed with a Void rather than
// edited.
type Payment struct {
	shared.TenantAggregateRoot
	OrderID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	CustomerID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Kind       PaymentKind     `gorm:"type:varchar(20);not null"`
	Method     PaymentMethod   `gorm:"type:varchar(20);not null"`
	Amount     decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Reference  string          `gorm:"type:varchar(100)"`
	Notes      string          `gorm:"type:varchar(500)"`
	ReceivedAt time.Time       `gorm:"not null"`
	Voided     bool            `gorm:"not null;default:false"`
	VoidedAt   *time.Time      `gorm:""`
	VoidReason string          `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (Payment) TableName() string {
	return "payments"
}

// NewPayment records a payment against an order. outstanding is the
// order's payable amount minus what was already paid; a payment may
// never exceed it.
func NewPayment(tenantID, orderID, customerID uuid.UUID, kind PaymentKind, method PaymentMethod, amount valueobject.Money, outstanding valueobject.Money, reference string) (*Payment, error) {
	if orderID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ORDER", "Order ID cannot be empty")
	}
	if customerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer ID cannot be empty")
	}
	if !kind.IsValid() {
		return nil, shared.NewDomainError("INVALID_KIND", "Payment kind must be advance or settlement")
	}
	if !method.IsValid() {
		return nil, shared.NewDomainError("INVALID_METHOD", "Payment method is not supported")
	}
	if amount.Amount().LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Payment amount must be positive")
	}
	if amount.Amount().GreaterThan(outstanding.Amount()) {
		return nil, shared.NewDomainError("OVERPAYMENT", "Payment exceeds the outstanding balance")
	}

	payment := &Payment{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		OrderID:             orderID,
		CustomerID:          customerID,
		Kind:                kind,
		Method:              method,
		Amount:              amount.Amount(),
		Reference:           strings.TrimSpace(reference),
		ReceivedAt:          time.Now(),
	}

	payment.AddDomainEvent(NewPaymentRecordedEvent(payment))

	return payment, nil
}

// SetNotes sets free-text notes on the payment
func (p *Payment) SetNotes(notes string) {
	p.Notes = notes
	p.UpdatedAt = time.Now()
}

// Void reverses a mistaken payment entry
func (p *Payment) Void(reason string) error {
	if p.Voided {
		return shared.NewDomainError("ALREADY_VOIDED", "Payment is already voided")
	}
	if strings.TrimSpace(reason) == "" {
		return shared.NewDomainError("INVALID_REASON", "Void reason is required")
	}

	now := time.Now()
	p.Voided = true
	p.VoidedAt = &now
	p.VoidReason = reason
	p.UpdatedAt = now

	p.AddDomainEvent(NewPaymentVoidedEvent(p))

	return nil
}

// GetAmountMoney returns the payment amount as Money
func (p *Payment) GetAmountMoney() valueobject.Money {
	return valueobject.NewMoneyINR(p.Amount)
}
