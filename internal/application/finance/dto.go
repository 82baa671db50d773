package finance

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/stitchdesk/backend/internal/domain/finance"
)

// RecordPaymentRequest records money received against an order
type RecordPaymentRequest struct {
	OrderID   uuid.UUID       `json:"order_id" binding:"required"`
	Kind      string          `json:"kind" binding:"required,oneof=ADVANCE SETTLEMENT"`
	Method    string          `json:"method" binding:"required,oneof=CASH UPI CARD BANK_TRANSFER"`
	Amount    decimal.Decimal `json:"amount" binding:"required"`
	Reference string          `json:"reference" binding:"max=100"`
	Notes     string          `json:"notes" binding:"max=500"`
}

// VoidPaymentRequest reverses a mistaken payment entry
type VoidPaymentRequest struct {
	Reason string `json:"reason" binding:"required,min=1,max=500"`
}

// PaymentResponse represents a payment in API responses
type PaymentResponse struct {
	ID         uuid.UUID       `json:"id"`
	OrderID    uuid.UUID       `json:"order_id"`
	CustomerID uuid.UUID       `json:"customer_id"`
	Kind       string          `json:"kind"`
	Method     string          `json:"method"`
	Amount     decimal.Decimal `json:"amount"`
	Reference  string          `json:"reference"`
	Notes      string          `json:"notes"`
	ReceivedAt time.Time       `json:"received_at"`
	Voided     bool            `json:"voided"`
	VoidedAt   *time.Time      `json:"voided_at"`
	VoidReason string          `json:"void_reason"`
}

// OrderBalanceResponse summarizes what an order still owes
type OrderBalanceResponse struct {
	OrderID     uuid.UUID         `json:"order_id"`
	Payable     decimal.Decimal   `json:"payable"`
	Paid        decimal.Decimal   `json:"paid"`
	Outstanding decimal.Decimal   `json:"outstanding"`
	Payments    []PaymentResponse `json:"payments"`
}

// ToPaymentResponse converts a payment to a response DTO
func ToPaymentResponse(payment *finance.Payment) PaymentResponse {
	return PaymentResponse{
		ID:         payment.ID,
		OrderID:    payment.OrderID,
		CustomerID: payment.CustomerID,
		Kind:       payment.Kind.String(),
		Method:     payment.Method.String(),
		Amount:     payment.Amount,
		Reference:  payment.Reference,
		Notes:      payment.Notes,
		ReceivedAt: payment.ReceivedAt,
		Voided:     payment.Voided,
		VoidedAt:   payment.VoidedAt,
		VoidReason: payment.VoidReason,
	}
}
