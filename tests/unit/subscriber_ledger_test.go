package unit

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	subscriberledger "croesus/contexts/membership-registry/subscriber-ledger"
	"croesus/contexts/membership-registry/subscriber-ledger/adapters/memory"
	"croesus/contexts/membership-registry/subscriber-ledger/application"
	"croesus/contexts/membership-registry/subscriber-ledger/application/workers"
	domainerrors "croesus/contexts/membership-registry/subscriber-ledger/domain/errors"
	"croesus/contexts/membership-registry/subscriber-ledger/ports"
	httptransport "croesus/contexts/membership-registry/subscriber-ledger/transport/http"
)

type movableClock struct {
	now time.Time
}

func (c *movableClock) Now() time.Time { return c.now }

func (c *movableClock) advance(d time.Duration) { c.now = c.now.Add(d) }

type seqIDGen struct {
	next int
}

func (g *seqIDGen) NewID(_ context.Context) (string, error) {
	g.next++
	return fmt.Sprintf("outbox-%d", g.next), nil
}

type flatFees struct {
	minimum float64
}

func (f flatFees) MinimumSubscriptionFee(_ context.Context) (float64, error) {
	return f.minimum, nil
}

type sinkTreasury struct {
	received float64
}

func (t *sinkTreasury) Credit(_ context.Context, _ string, amount float64, _ time.Time) error {
	t.received += amount
	return nil
}

func newLedgerModule(clock *movableClock, treasury *sinkTreasury) (subscriberledger.Module, *memory.Store) {
	store := memory.NewStore(nil)
	module := subscriberledger.NewModule(subscriberledger.Dependencies{
		Repository: store,
		Outbox:     store,
		Fees:       flatFees{minimum: 1.0},
		Treasury:   treasury,
		Clock:      clock,
		IDGen:      &seqIDGen{},
		Operator:   "operator",
	})
	return module, store
}

// Thirteen regular enrollments plus two short custom enrollments; a sweep at
// +600s expires only the 500-second one.
func TestLedgerSweepScenario(t *testing.T) {
	ctx := context.Background()
	clock := &movableClock{now: time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC)}
	module, _ := newLedgerModule(clock, &sinkTreasury{})

	accounts := make([]string, 0, 15)
	for i := 0; i < 13; i++ {
		account := fmt.Sprintf("member-%02d", i)
		if _, err := module.Service.Enroll(ctx, account, 1.0); err != nil {
			t.Fatalf("enroll %s failed: %v", account, err)
		}
		accounts = append(accounts, account)
	}
	if _, err := module.Service.CustomEnroll(ctx, "operator", "short-500", 500); err != nil {
		t.Fatalf("custom enroll short-500 failed: %v", err)
	}
	if _, err := module.Service.CustomEnroll(ctx, "operator", "short-1000", 1000); err != nil {
		t.Fatalf("custom enroll short-1000 failed: %v", err)
	}
	accounts = append(accounts, "short-500", "short-1000")

	clock.advance(600 * time.Second)

	expired, err := module.Service.SweepMany(ctx, "operator", accounts)
	if err != nil {
		t.Fatalf("sweep failed: %v", err)
	}
	if expired != 1 {
		t.Fatalf("expired = %d, want exactly the 500-second enrollment", expired)
	}

	record, found, err := module.Service.Query(ctx, "short-500")
	if err != nil || !found {
		t.Fatalf("query short-500 failed: found=%v err=%v", found, err)
	}
	if record.Subscribed {
		t.Fatalf("short-500 must be inactive after the sweep")
	}
	record, found, err = module.Service.Query(ctx, "short-1000")
	if err != nil || !found {
		t.Fatalf("query short-1000 failed: found=%v err=%v", found, err)
	}
	if !record.Subscribed {
		t.Fatalf("short-1000 must survive the sweep at +600s")
	}

	// Nothing else qualifies on a repeat pass.
	expired, err = module.Service.SweepMany(ctx, "operator", accounts)
	if err != nil {
		t.Fatalf("repeat sweep failed: %v", err)
	}
	if expired != 0 {
		t.Fatalf("repeat sweep expired = %d, want 0", expired)
	}
}

func TestLedgerEnrollRetainsExcessPayment(t *testing.T) {
	ctx := context.Background()
	clock := &movableClock{now: time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC)}
	treasury := &sinkTreasury{}
	module, _ := newLedgerModule(clock, treasury)

	if _, err := module.Service.Enroll(ctx, "whale", 100.0); err != nil {
		t.Fatalf("enroll failed: %v", err)
	}
	if treasury.received != 100.0 {
		t.Fatalf("treasury received = %v, want the full 100.0", treasury.received)
	}

	record, _, err := module.Service.Query(ctx, "whale")
	if err != nil {
		t.Fatalf("query failed: %v", err)
	}
	if !record.Until.Equal(clock.now.Add(application.DefaultSubscriptionPeriod)) {
		t.Fatalf("overpayment must not extend the period, got until %v", record.Until)
	}
}

func TestLedgerRemoveStrictSweepLenient(t *testing.T) {
	ctx := context.Background()
	clock := &movableClock{now: time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC)}
	module, _ := newLedgerModule(clock, &sinkTreasury{})

	if _, err := module.Service.Enroll(ctx, "alice", 1.0); err != nil {
		t.Fatalf("enroll failed: %v", err)
	}

	// Single removal of a still-active subscriber fails hard.
	if err := module.Service.RemoveSingle(ctx, "operator", "alice"); !errors.Is(err, domainerrors.ErrNotRemovable) {
		t.Fatalf("expected not removable error, got %v", err)
	}
	// The sweep sees the same subscriber and silently skips it.
	expired, err := module.Service.SweepMany(ctx, "operator", []string{"alice", "nobody"})
	if err != nil {
		t.Fatalf("sweep failed: %v", err)
	}
	if expired != 0 {
		t.Fatalf("sweep expired = %d, want 0", expired)
	}
}

type capturingLedgerPublisher struct {
	events []ports.EventEnvelope
}

func (p *capturingLedgerPublisher) Publish(_ context.Context, _ string, event ports.EventEnvelope) error {
	p.events = append(p.events, event)
	return nil
}

func TestLedgerOutboxRelayPublishesOnce(t *testing.T) {
	ctx := context.Background()
	clock := &movableClock{now: time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC)}
	module, store := newLedgerModule(clock, &sinkTreasury{})

	if _, err := module.Service.Enroll(ctx, "alice", 1.0); err != nil {
		t.Fatalf("enroll failed: %v", err)
	}

	publisher := &capturingLedgerPublisher{}
	relay := workers.OutboxRelay{
		Outbox:    store,
		Publisher: publisher,
		Clock:     clock,
	}
	if err := relay.RunOnce(ctx); err != nil {
		t.Fatalf("relay run failed: %v", err)
	}
	if len(publisher.events) != 1 {
		t.Fatalf("published = %d, want 1", len(publisher.events))
	}
	if publisher.events[0].EventType != application.EventEnrollmentCompleted {
		t.Fatalf("event type = %q, want enrollment completed", publisher.events[0].EventType)
	}

	// Second cycle finds nothing pending.
	if err := relay.RunOnce(ctx); err != nil {
		t.Fatalf("second relay run failed: %v", err)
	}
	if len(publisher.events) != 1 {
		t.Fatalf("relay must not republish, published = %d", len(publisher.events))
	}
}

func TestLedgerInMemoryModuleEnrollFlow(t *testing.T) {
	ctx := context.Background()
	treasury := &sinkTreasury{}
	module := subscriberledger.NewInMemoryModule(nil, flatFees{minimum: 1.0}, treasury, "operator", nil)

	if _, err := module.Handler.EnrollHandler(ctx, "alice", httptransport.EnrollRequest{Payment: 0.25}); !errors.Is(err, domainerrors.ErrInsufficientPayment) {
		t.Fatalf("expected insufficient payment error, got %v", err)
	}

	resp, err := module.Handler.EnrollHandler(ctx, "alice", httptransport.EnrollRequest{Payment: 1.5})
	if err != nil {
		t.Fatalf("enroll failed: %v", err)
	}
	if !resp.Data.Subscribed {
		t.Fatalf("enrolled subscriber must read back active")
	}
	if treasury.received != 1.5 {
		t.Fatalf("treasury received = %v, want 1.5", treasury.received)
	}

	query, err := module.Handler.SubscriberHandler(ctx, "alice")
	if err != nil {
		t.Fatalf("query failed: %v", err)
	}
	if !query.Data.Known || !query.Data.Subscribed {
		t.Fatalf("query = %+v, want known active subscriber", query.Data)
	}
}

func TestLedgerExpirySweeperWorker(t *testing.T) {
	ctx := context.Background()
	clock := &movableClock{now: time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC)}
	module, _ := newLedgerModule(clock, &sinkTreasury{})

	if _, err := module.Service.CustomEnroll(ctx, "operator", "brief", 10); err != nil {
		t.Fatalf("custom enroll failed: %v", err)
	}
	clock.advance(time.Minute)

	sweeper := workers.ExpirySweeper{Service: module.Service, Operator: "operator"}
	if err := sweeper.RunOnce(ctx); err != nil {
		t.Fatalf("sweeper run failed: %v", err)
	}

	record, found, err := module.Service.Query(ctx, "brief")
	if err != nil || !found {
		t.Fatalf("query failed: found=%v err=%v", found, err)
	}
	if record.Subscribed {
		t.Fatalf("sweeper must deactivate the expired subscriber")
	}
}
