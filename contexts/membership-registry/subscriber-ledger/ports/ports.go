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

// Subscriber is one ledger record. Records are never deleted: an expired or
// removed subscriber keeps its row with Subscribed set to false, and Until
// carries no meaning while the flag is down.
type Subscriber struct {
	Account    string
	Subscribed bool
	Until      time.Time
	UpdatedAt  time.Time
}

type Repository interface {
	GetSubscriber(ctx context.Context, account string) (Subscriber, bool, error)
	PutSubscriber(ctx context.Context, record Subscriber) error
	ListAccounts(ctx context.Context) ([]string, error)
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

// FeeSchedule is a read-only projection owned by the treasury service.
type FeeSchedule interface {
	MinimumSubscriptionFee(ctx context.Context) (float64, error)
}

// TreasuryLedger receives enrollment payments. Implemented by the treasury
// service; the ledger never touches treasury state directly.
type TreasuryLedger interface {
	Credit(ctx context.Context, payer string, amount float64, now time.Time) error
}
