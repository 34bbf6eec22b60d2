package bootstrap

import (
	"context"
	"encoding/json"

	distributionports "croesus/contexts/asset-operations/distribution-engine/ports"
	treasuryports "croesus/contexts/finance-core/treasury-service/ports"
	ledgerports "croesus/contexts/membership-registry/subscriber-ledger/ports"
	"croesus/internal/platform/messaging"
	"croesus/internal/shared/events"
)

// The context services publish through narrow ports; these adapters map the
// port envelope onto the shared contract envelope before handing it to the bus.

type ledgerPublisher struct {
	bus *messaging.Kafka
}

func (p ledgerPublisher) Publish(ctx context.Context, topic string, event ledgerports.EventEnvelope) error {
	return p.bus.Publish(ctx, topic, events.Envelope{
		EventID:        event.EventID,
		EventType:      event.EventType,
		SourceService:  "subscriber-ledger",
		OccurredAtUTC:  event.OccurredAt.UTC(),
		EntityType:     "subscriber",
		EntityID:       event.EntityID,
		PayloadVersion: 1,
		Payload:        json.RawMessage(event.Payload),
	})
}

type treasuryPublisher struct {
	bus *messaging.Kafka
}

func (p treasuryPublisher) Publish(ctx context.Context, topic string, event treasuryports.EventEnvelope) error {
	return p.bus.Publish(ctx, topic, events.Envelope{
		EventID:        event.EventID,
		EventType:      event.EventType,
		SourceService:  "treasury-service",
		OccurredAtUTC:  event.OccurredAt.UTC(),
		EntityType:     "treasury",
		EntityID:       event.EntityID,
		PayloadVersion: 1,
		Payload:        json.RawMessage(event.Payload),
	})
}

type distributionPublisher struct {
	bus *messaging.Kafka
}

func (p distributionPublisher) Publish(ctx context.Context, topic string, event distributionports.EventEnvelope) error {
	return p.bus.Publish(ctx, topic, events.Envelope{
		EventID:        event.EventID,
		EventType:      event.EventType,
		SourceService:  "distribution-engine",
		OccurredAtUTC:  event.OccurredAt.UTC(),
		EntityType:     "distribution",
		EntityID:       event.EntityID,
		PayloadVersion: 1,
		Payload:        json.RawMessage(event.Payload),
	})
}
