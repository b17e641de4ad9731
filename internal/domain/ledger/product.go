package ledger

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/trimanage/backend/internal/domain/shared"
)

// Product represents a sold item whose price may be paid off across
// several payments. IsFullyPaid is derived state: it is recomputed and
// persisted by the coordinating service whenever the product's payment
// set changes, never on read.
type Product struct {
	shared.BaseAggregateRoot
	Name        string          `gorm:"type:varchar(200);not null"`
	TotalPrice  decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	IsFullyPaid bool            `gorm:"not null;default:false"`
	Note        string          `gorm:"type:text"`
	ClientID    uuid.UUID       `gorm:"type:uuid;not null;index"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return KindProduct.Collection()
}

// NewProduct creates a new product owned by the given client. The client
// reference is immutable for the product's lifetime.
func NewProduct(clientID uuid.UUID, name string, totalPrice decimal.Decimal, note string) (*Product, error) {
	name = strings.TrimSpace(name)
	if err := validateProductName(name); err != nil {
		return nil, err
	}
	if err := validateTotalPrice(totalPrice); err != nil {
		return nil, err
	}
	if err := validateNote(note); err != nil {
		return nil, err
	}
	if clientID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CLIENT", "Product requires an owning client")
	}

	product := &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		TotalPrice:        totalPrice,
		IsFullyPaid:       false,
		Note:              note,
		ClientID:          clientID,
	}

	product.AddDomainEvent(NewProductCreatedEvent(product))

	return product, nil
}

// Update applies a partial update to the product. Nil fields are left
// unchanged. The owning client cannot be changed.
func (p *Product) Update(name *string, totalPrice *decimal.Decimal, note *string) error {
	if name != nil {
		trimmed := strings.TrimSpace(*name)
		if err := validateProductName(trimmed); err != nil {
			return err
		}
		p.Name = trimmed
	}
	if totalPrice != nil {
		if err := validateTotalPrice(*totalPrice); err != nil {
			return err
		}
		p.TotalPrice = *totalPrice
	}
	if note != nil {
		if err := validateNote(*note); err != nil {
			return err
		}
		p.Note = *note
	}

	p.UpdatedAt = time.Now()

	p.AddDomainEvent(NewProductUpdatedEvent(p))

	return nil
}

// SetFullyPaid records the recomputed settlement status. It is only
// meaningful when called with the result of TotalPaid over the product's
// current payment set.
func (p *Product) SetFullyPaid(fullyPaid bool) {
	if p.IsFullyPaid == fullyPaid {
		return
	}

	p.IsFullyPaid = fullyPaid
	p.UpdatedAt = time.Now()

	p.AddDomainEvent(NewProductStatusChangedEvent(p))
}

func validateProductName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Product name is required")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot exceed 200 characters")
	}
	return nil
}

func validateTotalPrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Total price cannot be negative")
	}
	return nil
}
