package ports

import (
	"context"
	"time"
)

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}

// FeeConfig is owned by the operator. The minimum subscription tier is the
// enrollment floor consumed by the membership ledger.
type FeeConfig struct {
	TransactionFee    float64
	SubscriptionTiers []float64
	UpdatedAt         time.Time
}

// Counters are the treasury totals. CumulativeReceived never decreases;
// Balance is received minus withdrawn.
type Counters struct {
	CumulativeReceived float64
	Balance            float64
	UpdatedAt          time.Time
}

type Repository interface {
	GetFeeConfig(ctx context.Context) (FeeConfig, error)
	PutFeeConfig(ctx context.Context, config FeeConfig) error
	GetCounters(ctx context.Context) (Counters, error)
	PutCounters(ctx context.Context, counters Counters) error
}

type OutboxRecord struct {
	OutboxID    string
	EventType   string
	EntityID    string
	Payload     []byte
	CreatedAt   time.Time
	PublishedAt *time.Time
}

type OutboxStore interface {
	AppendOutbox(ctx context.Context, record OutboxRecord) error
	ListPendingOutbox(ctx context.Context, limit int) ([]OutboxRecord, error)
	MarkOutboxPublished(ctx context.Context, outboxID string, publishedAt time.Time) error
}

type EventEnvelope struct {
	EventID    string
	EventType  string
	EntityID   string
	OccurredAt time.Time
	Payload    []byte
}

type EventPublisher interface {
	Publish(ctx context.Context, topic string, event EventEnvelope) error
}
