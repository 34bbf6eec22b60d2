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

// AssetRegistry is the capability surface of an external asset registry. The
// registry enforces ownership and balances on its transfer primitives; the
// engine checks the approval grant before moving anything.
type AssetRegistry interface {
	IsApprovedForAll(ctx context.Context, holder string, operator string) (bool, error)
	OwnerOf(ctx context.Context, assetID uint64) (string, error)
	BalanceOf(ctx context.Context, holder string, assetID uint64) (uint64, error)
	TransferAsset(ctx context.Context, from string, to string, assetID uint64) error
	TransferUnits(ctx context.Context, from string, to string, assetID uint64, quantity uint64) error
}

type RegistryResolver interface {
	Resolve(ctx context.Context, registryID string) (AssetRegistry, error)
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
