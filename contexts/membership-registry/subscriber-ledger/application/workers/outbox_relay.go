package workers

import (
	"context"
	"log/slog"

	application "croesus/contexts/membership-registry/subscriber-ledger/application"
	"croesus/contexts/membership-registry/subscriber-ledger/ports"
)

const membershipTopic = "membership.events"

// OutboxRelay publishes pending ledger outbox rows to the event bus.
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
		if err := j.Publisher.Publish(ctx, membershipTopic, event); err != nil {
			logger.Error("ledger outbox publish failed",
				"event", "ledger_outbox_publish_failed",
				"module", "membership-registry/subscriber-ledger",
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
	if len(pending) > 0 {
		logger.Debug("ledger outbox relay cycle succeeded",
			"event", "ledger_outbox_relay_cycle_succeeded",
			"module", "membership-registry/subscriber-ledger",
			"layer", "worker",
			"published", len(pending),
		)
	}
	return nil
}
