package application

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	domainerrors "croesus/contexts/finance-core/treasury-service/domain/errors"
	"croesus/contexts/finance-core/treasury-service/ports"
)

type testRepo struct {
	feeConfig ports.FeeConfig
	counters  ports.Counters
}

func (r *testRepo) GetFeeConfig(_ context.Context) (ports.FeeConfig, error) {
	return r.feeConfig, nil
}

func (r *testRepo) PutFeeConfig(_ context.Context, config ports.FeeConfig) error {
	r.feeConfig = config
	return nil
}

func (r *testRepo) GetCounters(_ context.Context) (ports.Counters, error) {
	return r.counters, nil
}

func (r *testRepo) PutCounters(_ context.Context, counters ports.Counters) error {
	r.counters = counters
	return nil
}

type testOutbox struct {
	records []ports.OutboxRecord
}

func (o *testOutbox) AppendOutbox(_ context.Context, record ports.OutboxRecord) error {
	o.records = append(o.records, record)
	return nil
}

func (o *testOutbox) ListPendingOutbox(_ context.Context, _ int) ([]ports.OutboxRecord, error) {
	return append([]ports.OutboxRecord(nil), o.records...), nil
}

func (o *testOutbox) MarkOutboxPublished(_ context.Context, _ string, _ time.Time) error {
	return nil
}

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time { return c.now }

type seqIDGen struct {
	next int
}

func (g *seqIDGen) NewID(_ context.Context) (string, error) {
	g.next++
	return fmt.Sprintf("id-%d", g.next), nil
}

func newTestService(repo *testRepo, outbox *testOutbox, now time.Time) Service {
	return Service{
		Repo:     repo,
		Outbox:   outbox,
		Clock:    fixedClock{now: now},
		IDGen:    &seqIDGen{},
		Operator: "operator",
	}
}

func TestCreditMovesBothCounters(t *testing.T) {
	now := time.Date(2026, time.April, 2, 8, 0, 0, 0, time.UTC)
	repo := &testRepo{}
	outbox := &testOutbox{}
	service := newTestService(repo, outbox, now)

	if err := service.Credit(context.Background(), "alice", 2.5, now); err != nil {
		t.Fatalf("credit failed: %v", err)
	}
	if err := service.Credit(context.Background(), "bob", 1.0, now); err != nil {
		t.Fatalf("credit failed: %v", err)
	}

	if repo.counters.CumulativeReceived != 3.5 {
		t.Fatalf("cumulative = %v, want 3.5", repo.counters.CumulativeReceived)
	}
	if repo.counters.Balance != 3.5 {
		t.Fatalf("balance = %v, want 3.5", repo.counters.Balance)
	}
	if len(outbox.records) != 2 || outbox.records[0].EventType != EventCreditReceived {
		t.Fatalf("expected two credit outbox records, got %v", outbox.records)
	}
}

func TestReceiveRoundsToFourDecimals(t *testing.T) {
	now := time.Date(2026, time.April, 2, 8, 0, 0, 0, time.UTC)
	repo := &testRepo{}
	service := newTestService(repo, &testOutbox{}, now)

	if err := service.Credit(context.Background(), "alice", 0.1, now); err != nil {
		t.Fatalf("credit failed: %v", err)
	}
	if err := service.Credit(context.Background(), "alice", 0.2, now); err != nil {
		t.Fatalf("credit failed: %v", err)
	}
	if repo.counters.Balance != 0.3 {
		t.Fatalf("balance = %v, want exactly 0.3", repo.counters.Balance)
	}
}

func TestDepositRecordsUndefinedReceipt(t *testing.T) {
	now := time.Date(2026, time.April, 2, 8, 0, 0, 0, time.UTC)
	outbox := &testOutbox{}
	service := newTestService(&testRepo{}, outbox, now)

	counters, err := service.Deposit(context.Background(), "stranger", 4.0)
	if err != nil {
		t.Fatalf("deposit failed: %v", err)
	}
	if counters.Balance != 4.0 {
		t.Fatalf("balance = %v, want 4.0", counters.Balance)
	}
	if len(outbox.records) != 1 || outbox.records[0].EventType != EventReceivedUndefined {
		t.Fatalf("expected one undefined-receipt record, got %v", outbox.records)
	}
}

func TestReceiveRejectsNonPositiveAmount(t *testing.T) {
	now := time.Date(2026, time.April, 2, 8, 0, 0, 0, time.UTC)
	service := newTestService(&testRepo{}, &testOutbox{}, now)

	if _, err := service.Deposit(context.Background(), "alice", 0); !errors.Is(err, domainerrors.ErrInvalidAmount) {
		t.Fatalf("expected invalid amount error, got %v", err)
	}
	if _, err := service.Deposit(context.Background(), "alice", -1); !errors.Is(err, domainerrors.ErrInvalidAmount) {
		t.Fatalf("expected invalid amount error, got %v", err)
	}
}

func TestWithdrawAllZeroesBalanceKeepsCumulative(t *testing.T) {
	now := time.Date(2026, time.April, 2, 8, 0, 0, 0, time.UTC)
	repo := &testRepo{}
	service := newTestService(repo, &testOutbox{}, now)

	if err := service.Credit(context.Background(), "alice", 5.5, now); err != nil {
		t.Fatalf("credit failed: %v", err)
	}
	withdrawn, err := service.WithdrawAll(context.Background(), "operator")
	if err != nil {
		t.Fatalf("withdraw failed: %v", err)
	}
	if withdrawn != 5.5 {
		t.Fatalf("withdrawn = %v, want 5.5", withdrawn)
	}
	if repo.counters.Balance != 0 {
		t.Fatalf("balance after withdraw = %v, want 0", repo.counters.Balance)
	}
	if repo.counters.CumulativeReceived != 5.5 {
		t.Fatalf("cumulative after withdraw = %v, want 5.5", repo.counters.CumulativeReceived)
	}

	if _, err := service.WithdrawAll(context.Background(), "operator"); !errors.Is(err, domainerrors.ErrNothingToWithdraw) {
		t.Fatalf("expected nothing to withdraw error, got %v", err)
	}
}

func TestWithdrawAndBalanceRequireOperator(t *testing.T) {
	now := time.Date(2026, time.April, 2, 8, 0, 0, 0, time.UTC)
	service := newTestService(&testRepo{}, &testOutbox{}, now)

	if _, err := service.WithdrawAll(context.Background(), "mallory"); !errors.Is(err, domainerrors.ErrUnauthorized) {
		t.Fatalf("expected unauthorized withdraw error, got %v", err)
	}
	if _, err := service.Balance(context.Background(), ""); !errors.Is(err, domainerrors.ErrUnauthorized) {
		t.Fatalf("expected unauthorized balance error, got %v", err)
	}
}

func TestMinimumSubscriptionFeePicksSmallestTier(t *testing.T) {
	now := time.Date(2026, time.April, 2, 8, 0, 0, 0, time.UTC)
	repo := &testRepo{feeConfig: ports.FeeConfig{SubscriptionTiers: []float64{10.0, 2.5, 1.0}}}
	service := newTestService(repo, &testOutbox{}, now)

	minimum, err := service.MinimumSubscriptionFee(context.Background())
	if err != nil {
		t.Fatalf("minimum fee failed: %v", err)
	}
	if minimum != 1.0 {
		t.Fatalf("minimum = %v, want 1.0", minimum)
	}
}

func TestSetSubscriptionTiersValidation(t *testing.T) {
	now := time.Date(2026, time.April, 2, 8, 0, 0, 0, time.UTC)
	service := newTestService(&testRepo{}, &testOutbox{}, now)

	if _, err := service.SetSubscriptionTiers(context.Background(), "operator", nil); !errors.Is(err, domainerrors.ErrInvalidFeeSchedule) {
		t.Fatalf("expected invalid fee schedule for empty tiers, got %v", err)
	}
	if _, err := service.SetSubscriptionTiers(context.Background(), "operator", []float64{1.0, -2.0}); !errors.Is(err, domainerrors.ErrInvalidFeeSchedule) {
		t.Fatalf("expected invalid fee schedule for negative tier, got %v", err)
	}
	config, err := service.SetSubscriptionTiers(context.Background(), "operator", []float64{3.0, 1.5})
	if err != nil {
		t.Fatalf("set tiers failed: %v", err)
	}
	if len(config.SubscriptionTiers) != 2 || config.SubscriptionTiers[1] != 1.5 {
		t.Fatalf("tiers = %v, want [3 1.5]", config.SubscriptionTiers)
	}
}

func TestSetTransactionFeeRejectsNegative(t *testing.T) {
	now := time.Date(2026, time.April, 2, 8, 0, 0, 0, time.UTC)
	service := newTestService(&testRepo{}, &testOutbox{}, now)

	if _, err := service.SetTransactionFee(context.Background(), "operator", -0.1); !errors.Is(err, domainerrors.ErrInvalidFeeSchedule) {
		t.Fatalf("expected invalid fee schedule error, got %v", err)
	}
	config, err := service.SetTransactionFee(context.Background(), "operator", 0.25)
	if err != nil {
		t.Fatalf("set transaction fee failed: %v", err)
	}
	if config.TransactionFee != 0.25 {
		t.Fatalf("transaction fee = %v, want 0.25", config.TransactionFee)
	}
}
