package usecase

import (
	"context"
	"log/slog"

	"github.com/remy-crypto/dunkuloans-sub000/internal/domain/event"
	"github.com/remy-crypto/dunkuloans-sub000/internal/domain/port"
)

// publishEvents sends change notifications after a successful write. The bus
// feeds dashboards, not the ledger, so a delivery failure is logged and the
// operation still succeeds.
func publishEvents(ctx context.Context, publisher port.EventPublisher, logger *slog.Logger, events []event.DomainEvent) {
	if len(events) == 0 {
		return
	}
	if err := publisher.Publish(ctx, events...); err != nil {
		logger.WarnContext(ctx, "failed to publish domain events",
			"error", err,
			"event_count", len(events),
		)
	}
}
