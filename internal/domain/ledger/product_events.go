package ledger

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/trimanage/backend/internal/domain/shared"
)

// Aggregate type constant
const AggregateTypeProduct = "Product"

// Event type constants
const (
	EventTypeProductCreated       = "ProductCreated"
	EventTypeProductUpdated       = "ProductUpdated"
	EventTypeProductStatusChanged = "ProductStatusChanged"
	EventTypeProductDeleted       = "ProductDeleted"
)

// ProductCreatedEvent is published when a new product is created
type ProductCreatedEvent struct {
	shared.BaseDomainEvent
	ProductID  uuid.UUID       `json:"product_id"`
	ClientID   uuid.UUID       `json:"client_id"`
	Name       string          `json:"name"`
	TotalPrice decimal.Decimal `json:"total_price"`
	Product    *Product        `json:"-"`
}

// NewProductCreatedEvent creates a new ProductCreatedEvent
func NewProductCreatedEvent(product *Product) *ProductCreatedEvent {
	return &ProductCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProductCreated, AggregateTypeProduct, product.ID),
		ProductID:       product.ID,
		ClientID:        product.ClientID,
		Name:            product.Name,
		TotalPrice:      product.TotalPrice,
		Product:         product,
	}
}

// ProductUpdatedEvent is published when a product is updated
type ProductUpdatedEvent struct {
	shared.BaseDomainEvent
	ProductID  uuid.UUID       `json:"product_id"`
	Name       string          `json:"name"`
	TotalPrice decimal.Decimal `json:"total_price"`
	Product    *Product        `json:"-"`
}

// NewProductUpdatedEvent creates a new ProductUpdatedEvent
func NewProductUpdatedEvent(product *Product) *ProductUpdatedEvent {
	return &ProductUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProductUpdated, AggregateTypeProduct, product.ID),
		ProductID:       product.ID,
		Name:            product.Name,
		TotalPrice:      product.TotalPrice,
		Product:         product,
	}
}

// ProductStatusChangedEvent is published when a product's settlement
// status flips
type ProductStatusChangedEvent struct {
	shared.BaseDomainEvent
	ProductID   uuid.UUID `json:"product_id"`
	IsFullyPaid bool      `json:"is_fully_paid"`
	Product     *Product  `json:"-"`
}

// NewProductStatusChangedEvent creates a new ProductStatusChangedEvent
func NewProductStatusChangedEvent(product *Product) *ProductStatusChangedEvent {
	return &ProductStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProductStatusChanged, AggregateTypeProduct, product.ID),
		ProductID:       product.ID,
		IsFullyPaid:     product.IsFullyPaid,
		Product:         product,
	}
}

// ProductDeletedEvent is published after a product and its payments have
// been removed
type ProductDeletedEvent struct {
	shared.BaseDomainEvent
	ProductID  uuid.UUID   `json:"product_id"`
	PaymentIDs []uuid.UUID `json:"payment_ids"`
}

// NewProductDeletedEvent creates a new ProductDeletedEvent
func NewProductDeletedEvent(productID uuid.UUID, paymentIDs []uuid.UUID) *ProductDeletedEvent {
	return &ProductDeletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProductDeleted, AggregateTypeProduct, productID),
		ProductID:       productID,
		PaymentIDs:      paymentIDs,
	}
}
