package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/trimanage/backend/internal/domain/shared"
)

// Payment records one partial settlement against a product. The client
// reference is a denormalized copy of the product's owner, kept so payment
// queries by client never need a join. Both references are immutable.
type Payment struct {
	shared.BaseAggregateRoot
	Amount    decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Note      string          `gorm:"type:text"`
	ClientID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID uuid.UUID       `gorm:"type:uuid;not null;index"`
}

// TableName returns the table name for GORM
func (Payment) TableName() string {
	return KindPayment.Collection()
}

// NewPayment creates a new payment against the given product
func NewPayment(productID, clientID uuid.UUID, amount decimal.Decimal, note string) (*Payment, error) {
	if err := validateAmount(amount); err != nil {
		return nil, err
	}
	if err := validateNote(note); err != nil {
		return nil, err
	}
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Payment requires a product")
	}
	if clientID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CLIENT", "Payment requires a client")
	}

	payment := &Payment{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Amount:            amount,
		Note:              note,
		ClientID:          clientID,
		ProductID:         productID,
	}

	payment.AddDomainEvent(NewPaymentRecordedEvent(payment))

	return payment, nil
}

// UpdateAmount replaces the payment's amount. Product and client
// references cannot be changed; a payment belongs to one product for life.
func (p *Payment) UpdateAmount(amount decimal.Decimal, note *string) error {
	if err := validateAmount(amount); err != nil {
		return err
	}
	if note != nil {
		if err := validateNote(*note); err != nil {
			return err
		}
		p.Note = *note
	}

	p.Amount = amount
	p.UpdatedAt = time.Now()

	p.AddDomainEvent(NewPaymentAmountChangedEvent(p))

	return nil
}

func validateAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return shared.NewDomainError("INVALID_AMOUNT", "Payment amount must be greater than zero")
	}
	return nil
}

// ParseAmount converts a decimal-as-string boundary value into the exact
// decimal representation used internally. Malformed input is a caller
// contract violation and surfaces as a validation error.
func ParseAmount(raw string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, shared.NewDomainError("INVALID_AMOUNT", "Amount must be a numeric string")
	}
	return amount, nil
}
