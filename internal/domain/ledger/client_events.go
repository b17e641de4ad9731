package ledger

import (
	"github.com/google/uuid"

	"github.com/trimanage/backend/internal/domain/shared"
)

// Aggregate type constant
const AggregateTypeClient = "Client"

// Event type constants
const (
	EventTypeClientCreated = "ClientCreated"
	EventTypeClientUpdated = "ClientUpdated"
	EventTypeClientDeleted = "ClientDeleted"
)

// ClientCreatedEvent is published when a new client is created
type ClientCreatedEvent struct {
	shared.BaseDomainEvent
	ClientID uuid.UUID `json:"client_id"`
	Name     string    `json:"name"`
	Client   *Client   `json:"-"`
}

// NewClientCreatedEvent creates a new ClientCreatedEvent
func NewClientCreatedEvent(client *Client) *ClientCreatedEvent {
	return &ClientCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeClientCreated, AggregateTypeClient, client.ID),
		ClientID:        client.ID,
		Name:            client.Name,
		Client:          client,
	}
}

// ClientUpdatedEvent is published when a client is updated
type ClientUpdatedEvent struct {
	shared.BaseDomainEvent
	ClientID uuid.UUID `json:"client_id"`
	Name     string    `json:"name"`
	Client   *Client   `json:"-"`
}

// NewClientUpdatedEvent creates a new ClientUpdatedEvent
func NewClientUpdatedEvent(client *Client) *ClientUpdatedEvent {
	return &ClientUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeClientUpdated, AggregateTypeClient, client.ID),
		ClientID:        client.ID,
		Name:            client.Name,
		Client:          client,
	}
}

// ClientDeletedEvent is published after a client and its dependents have
// been removed
type ClientDeletedEvent struct {
	shared.BaseDomainEvent
	ClientID   uuid.UUID   `json:"client_id"`
	ProductIDs []uuid.UUID `json:"product_ids"`
	PaymentIDs []uuid.UUID `json:"payment_ids"`
}

// NewClientDeletedEvent creates a new ClientDeletedEvent
func NewClientDeletedEvent(clientID uuid.UUID, productIDs, paymentIDs []uuid.UUID) *ClientDeletedEvent {
	return &ClientDeletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeClientDeleted, AggregateTypeClient, clientID),
		ClientID:        clientID,
		ProductIDs:      productIDs,
		PaymentIDs:      paymentIDs,
	}
}
