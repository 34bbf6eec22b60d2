package workers

import (
	"context"
	"log/slog"

	application "croesus/contexts/finance-core/treasury-service/application"
	"croesus/contexts/finance-core/treasury-service/ports"
)

const treasuryTopic = "treasury.events"

// OutboxRelay publishes pending treasury outbox rows to the event bus.
type OutboxRelay struct {
	Outbox    ports.OutboxStore
	Publisher ports.EventPublisher
	Clock     ports.Clock
	BatchSize int
	Logger    *slog.Logger
}

func (j OutboxRelay) RunOnce(ctx context.Context) error {
	logger := application.ResolveLogger(j.Logger)
	limit := j.BatchSize
	if limit <= 0 {
		limit = 100
	}
	pending, err := j.Outbox.ListPendingOutbox(ctx, limit)
	if err != nil {
		return err
	}
	for _, record := range pending {
		event := ports.EventEnvelope{
			EventID:    record.OutboxID,
			EventType:  record.EventType,
			EntityID:   record.EntityID,
			OccurredAt: record.CreatedAt,
			Payload:    record.Payload,
		}
		if err := j.Publisher.Publish(ctx, treasuryTopic, event); err != nil {
			logger.Error("treasury outbox publish failed",
				"event", "treasury_outbox_publish_failed",
				"module", "finance-core/treasury-service",
				"layer", "worker",
				"outbox_id", record.OutboxID,
				"event_type", record.EventType,
				"error", err.Error(),
			)
			return err
		}
		if err := j.Outbox.MarkOutboxPublished(ctx, record.OutboxID, j.Clock.Now()); err != nil {
			return err
		}
	}
	return nil
}
