package memory

import (
	"context"
	"sync"
	"time"

	"croesus/contexts/finance-core/treasury-service/ports"

	"github.com/google/uuid"
)

// Store keeps the fee configuration, treasury counters, and outbox rows in
// process memory.
type Store struct {
	mu sync.RWMutex

	feeConfig   ports.FeeConfig
	counters    ports.Counters
	outbox      map[string]ports.OutboxRecord
	outboxOrder []string
}

func NewStore() *Store {
	now := time.Now().UTC()
	return &Store{
		feeConfig: ports.FeeConfig{
			TransactionFee:    0.1,
			SubscriptionTiers: []float64{1.0, 2.5, 10.0},
			UpdatedAt:         now,
		},
		outbox: make(map[string]ports.OutboxRecord),
	}
}

func (s *Store) GetFeeConfig(_ context.Context) (ports.FeeConfig, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	config := s.feeConfig
	config.SubscriptionTiers = append([]float64(nil), s.feeConfig.SubscriptionTiers...)
	return config, nil
}

func (s *Store) PutFeeConfig(_ context.Context, config ports.FeeConfig) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	config.SubscriptionTiers = append([]float64(nil), config.SubscriptionTiers...)
	s.feeConfig = config
	return nil
}

func (s *Store) GetCounters(_ context.Context) (ports.Counters, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.counters, nil
}

func (s *Store) PutCounters(_ context.Context, counters ports.Counters) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.counters = counters
	return nil
}

func (s *Store) AppendOutbox(_ context.Context, record ports.OutboxRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.outbox[record.OutboxID] = record
	s.outboxOrder = append(s.outboxOrder, record.OutboxID)
	return nil
}

func (s *Store) ListPendingOutbox(_ context.Context, limit int) ([]ports.OutboxRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var pending []ports.OutboxRecord
	for _, id := range s.outboxOrder {
		record := s.outbox[id]
		if record.PublishedAt != nil {
			continue
		}
		pending = append(pending, record)
		if limit > 0 && len(pending) >= limit {
			break
		}
	}
	return pending, nil
}

func (s *Store) MarkOutboxPublished(_ context.Context, outboxID string, publishedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.outbox[outboxID]
	if !ok {
		return nil
	}
	at := publishedAt
	record.PublishedAt = &at
	s.outbox[outboxID] = record
	return nil
}

func (s *Store) Now() time.Time { return time.Now().UTC() }

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}
