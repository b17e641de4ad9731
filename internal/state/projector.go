package state

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/trimanage/backend/internal/domain/ledger"
	"github.com/trimanage/backend/internal/domain/shared"
)

// Projector applies settled domain events to the entity store, keeping
// the in-memory mirror aligned with what persistence has accepted.
// Events are only published after their writes settle, so the mirror
// never runs ahead of the database.
type Projector struct {
	store *EntityStore
}

// NewProjector creates a projector over the given store
func NewProjector(store *EntityStore) *Projector {
	return &Projector{store: store}
}

var _ shared.EventHandler = (*Projector)(nil)

// EventTypes returns the event types the projector subscribes to
func (p *Projector) EventTypes() []string {
	return []string{
		ledger.EventTypeClientCreated,
		ledger.EventTypeClientUpdated,
		ledger.EventTypeClientDeleted,
		ledger.EventTypeProductCreated,
		ledger.EventTypeProductUpdated,
		ledger.EventTypeProductStatusChanged,
		ledger.EventTypeProductDeleted,
		ledger.EventTypePaymentRecorded,
		ledger.EventTypePaymentAmountChanged,
		ledger.EventTypePaymentDeleted,
	}
}

// Handle applies one settled event to the mirror
func (p *Projector) Handle(_ context.Context, event shared.DomainEvent) error {
	switch e := event.(type) {
	case *ledger.ClientCreatedEvent:
		p.store.UpsertClient(e.Client)
	case *ledger.ClientUpdatedEvent:
		p.store.UpsertClient(e.Client)
	case *ledger.ClientDeletedEvent:
		p.store.RemoveBatch(ledger.KindPayment, e.PaymentIDs)
		p.store.RemoveBatch(ledger.KindProduct, e.ProductIDs)
		p.store.RemoveBatch(ledger.KindClient, []uuid.UUID{e.ClientID})
	case *ledger.ProductCreatedEvent:
		p.store.UpsertProduct(e.Product)
	case *ledger.ProductUpdatedEvent:
		p.store.UpsertProduct(e.Product)
	case *ledger.ProductStatusChangedEvent:
		p.store.UpsertProduct(e.Product)
	case *ledger.ProductDeletedEvent:
		p.store.RemoveBatch(ledger.KindPayment, e.PaymentIDs)
		p.store.RemoveBatch(ledger.KindProduct, []uuid.UUID{e.ProductID})
	case *ledger.PaymentRecordedEvent:
		p.store.UpsertPayment(e.Payment)
	case *ledger.PaymentAmountChangedEvent:
		p.store.UpsertPayment(e.Payment)
	case *ledger.PaymentDeletedEvent:
		p.store.RemoveBatch(ledger.KindPayment, []uuid.UUID{e.PaymentID})
	default:
		return fmt.Errorf("state: unhandled event type %s", event.EventType())
	}
	return nil
}
