package ledger

import (
	"context"

	"go.uber.org/zap"

	"github.com/trimanage/backend/internal/domain/shared"
)

// publishSettled hands domain events to the bus after their writes have
// settled. Publish failures only affect the in-memory mirror, never the
// persisted outcome, so they are logged and swallowed rather than
// surfaced to the caller.
func publishSettled(ctx context.Context, publisher shared.EventPublisher, logger *zap.Logger, events ...shared.DomainEvent) {
	for _, event := range events {
		if event == nil {
			continue
		}
		if err := publisher.Publish(ctx, event); err != nil {
			logger.Error("failed to publish domain event",
				zap.String("event_type", event.EventType()),
				zap.String("aggregate_id", event.AggregateID().String()),
				zap.Error(err))
		}
	}
}

// drainEvents takes and clears the accumulated events of an aggregate
func drainEvents(aggregate shared.AggregateRoot) []shared.DomainEvent {
	events := aggregate.GetDomainEvents()
	aggregate.ClearDomainEvents()
	return events
}
