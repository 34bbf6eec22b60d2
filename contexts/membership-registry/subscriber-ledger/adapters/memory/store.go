package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"croesus/contexts/membership-registry/subscriber-ledger/ports"

	"github.com/google/uuid"
)

// Store keeps subscriber records and outbox rows in process memory. Records
// are never deleted; deactivation only clears the Subscribed flag, so the
// store distinguishes "absent" from "present but inactive" by key presence
// alone, exactly like the durable adapter.
type Store struct {
	mu sync.RWMutex

	subscribers map[string]ports.Subscriber
	outbox      map[string]ports.OutboxRecord
	outboxOrder []string
}

func NewStore(seed []ports.Subscriber) *Store {
	subscribers := make(map[string]ports.Subscriber, len(seed))
	for _, record := range seed {
		subscribers[record.Account] = record
	}
	return &Store{
		subscribers: subscribers,
		outbox:      make(map[string]ports.OutboxRecord),
	}
}

func (s *Store) GetSubscriber(_ context.Context, account string) (ports.Subscriber, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.subscribers[account]
	return record, ok, nil
}

func (s *Store) PutSubscriber(_ context.Context, record ports.Subscriber) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.subscribers[record.Account] = record
	return nil
}

func (s *Store) ListAccounts(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	accounts := make([]string, 0, len(s.subscribers))
	for account := range s.subscribers {
		accounts = append(accounts, account)
	}
	sort.Strings(accounts)
	return accounts, nil
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

// Now and NewID let the memory store double as Clock and IDGenerator when the
// module is wired without external adapters.
func (s *Store) Now() time.Time { return time.Now().UTC() }

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}
