package ledger

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/trimanage/backend/internal/domain/shared"
)

// Aggregate type constant
const AggregateTypePayment = "Payment"

// Event type constants
const (
	EventTypePaymentRecorded      = "PaymentRecorded"
	EventTypePaymentAmountChanged = "PaymentAmountChanged"
	EventTypePaymentDeleted       = "PaymentDeleted"
)

// PaymentRecordedEvent is published when a new payment is recorded
type PaymentRecordedEvent struct {
	shared.BaseDomainEvent
	PaymentID uuid.UUID       `json:"payment_id"`
	ProductID uuid.UUID       `json:"product_id"`
	ClientID  uuid.UUID       `json:"client_id"`
	Amount    decimal.Decimal `json:"amount"`
	Payment   *Payment        `json:"-"`
}

// NewPaymentRecordedEvent creates a new PaymentRecordedEvent
func NewPaymentRecordedEvent(payment *Payment) *PaymentRecordedEvent {
	return &PaymentRecordedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePaymentRecorded, AggregateTypePayment, payment.ID),
		PaymentID:       payment.ID,
		ProductID:       payment.ProductID,
		ClientID:        payment.ClientID,
		Amount:          payment.Amount,
		Payment:         payment,
	}
}

// PaymentAmountChangedEvent is published when a payment's amount is edited
type PaymentAmountChangedEvent struct {
	shared.BaseDomainEvent
	PaymentID uuid.UUID       `json:"payment_id"`
	ProductID uuid.UUID       `json:"product_id"`
	Amount    decimal.Decimal `json:"amount"`
	Payment   *Payment        `json:"-"`
}

// NewPaymentAmountChangedEvent creates a new PaymentAmountChangedEvent
func NewPaymentAmountChangedEvent(payment *Payment) *PaymentAmountChangedEvent {
	return &PaymentAmountChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePaymentAmountChanged, AggregateTypePayment, payment.ID),
		PaymentID:       payment.ID,
		ProductID:       payment.ProductID,
		Amount:          payment.Amount,
		Payment:         payment,
	}
}

// PaymentDeletedEvent is published after a payment has been removed
type PaymentDeletedEvent struct {
	shared.BaseDomainEvent
	PaymentID uuid.UUID `json:"payment_id"`
	ProductID uuid.UUID `json:"product_id"`
}

// NewPaymentDeletedEvent creates a new PaymentDeletedEvent
func NewPaymentDeletedEvent(paymentID, productID uuid.UUID) *PaymentDeletedEvent {
	return &PaymentDeletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePaymentDeleted, AggregateTypePayment, paymentID),
		PaymentID:       paymentID,
		ProductID:       productID,
	}
}
