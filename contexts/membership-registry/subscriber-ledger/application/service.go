package application

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	domainerrors "croesus/contexts/membership-registry/subscriber-ledger/domain/errors"
	"croesus/contexts/membership-registry/subscriber-ledger/ports"
)

// DefaultSubscriptionPeriod is the fixed enrollment duration, independent of
// the amount paid. 2629743 seconds is one twelfth of a mean Gregorian year.
const DefaultSubscriptionPeriod = 2629743 * time.Second

const (
	EventEnrollmentCompleted = "membership.enrollment_completed"
)

type Service struct {
	Repo     ports.Repository
	Outbox   ports.OutboxStore
	Fees     ports.FeeSchedule
	Treasury ports.TreasuryLedger
	Clock    ports.Clock
	IDGen    ports.IDGenerator
	Operator string
	Logger   *slog.Logger
}

type enrollmentCompletedPayload struct {
	Account       string    `json:"account"`
	OccurredAtUTC time.Time `json:"occurred_at_utc"`
	PeriodSeconds int64     `json:"period_seconds"`
}

// Enroll registers the paying account for the fixed subscription period.
// Any amount above the minimum fee is retained; there are no refunds.
func (s Service) Enroll(ctx context.Context, account string, payment float64) (ports.Subscriber, error) {
	logger := ResolveLogger(s.Logger)
	account = strings.TrimSpace(account)
	if account == "" {
		return ports.Subscriber{}, domainerrors.ErrInvalidRequest
	}

	minimum, err := s.Fees.MinimumSubscriptionFee(ctx)
	if err != nil {
		return ports.Subscriber{}, err
	}
	if payment < minimum {
		logger.Warn("enrollment payment below floor",
			"event", "ledger_enroll_insufficient_payment",
			"module", "membership-registry/subscriber-ledger",
			"layer", "application",
			"account", account,
			"payment", payment,
			"minimum", minimum,
		)
		return ports.Subscriber{}, domainerrors.ErrInsufficientPayment
	}

	existing, found, err := s.Repo.GetSubscriber(ctx, account)
	if err != nil {
		return ports.Subscriber{}, err
	}
	// A record still flagged active blocks re-enrollment even past its expiry
	// instant; the sweep or single removal must flip it first.
	if found && existing.Subscribed {
		return ports.Subscriber{}, domainerrors.ErrAlreadySubscribed
	}

	now := s.now()
	record := ports.Subscriber{
		Account:    account,
		Subscribed: true,
		Until:      now.Add(DefaultSubscriptionPeriod),
		UpdatedAt:  now,
	}
	if err := s.Repo.PutSubscriber(ctx, record); err != nil {
		return ports.Subscriber{}, err
	}
	if err := s.Treasury.Credit(ctx, account, payment, now); err != nil {
		return ports.Subscriber{}, err
	}
	if err := s.appendEnrollmentOutbox(ctx, record, now); err != nil {
		return ports.Subscriber{}, err
	}

	logger.Info("subscriber enrolled",
		"event", "ledger_enroll_completed",
		"module", "membership-registry/subscriber-ledger",
		"layer", "application",
		"account", account,
		"until", record.Until.UTC(),
		"payment", payment,
	)
	return record, nil
}

// CustomEnroll is the operator backdoor: it sets an arbitrary subscription
// duration without payment and without an enrollment event.
func (s Service) CustomEnroll(ctx context.Context, callerID string, account string, durationSeconds int64) (ports.Subscriber, error) {
	if err := s.requireOperator(callerID); err != nil {
		return ports.Subscriber{}, err
	}
	account = strings.TrimSpace(account)
	if account == "" || durationSeconds <= 0 {
		return ports.Subscriber{}, domainerrors.ErrInvalidRequest
	}

	now := s.now()
	record := ports.Subscriber{
		Account:    account,
		Subscribed: true,
		Until:      now.Add(time.Duration(durationSeconds) * time.Second),
		UpdatedAt:  now,
	}
	if err := s.Repo.PutSubscriber(ctx, record); err != nil {
		return ports.Subscriber{}, err
	}

	ResolveLogger(s.Logger).Info("subscriber custom enrolled",
		"event", "ledger_custom_enroll_completed",
		"module", "membership-registry/subscriber-ledger",
		"layer", "application",
		"account", account,
		"duration_seconds", durationSeconds,
	)
	return record, nil
}

// RemoveSingle deactivates exactly one expired subscriber. Unlike the sweep,
// any non-qualifying target fails the whole call.
func (s Service) RemoveSingle(ctx context.Context, callerID string, account string) error {
	if err := s.requireOperator(callerID); err != nil {
		return err
	}
	account = strings.TrimSpace(account)
	if account == "" {
		return domainerrors.ErrInvalidRequest
	}

	record, found, err := s.Repo.GetSubscriber(ctx, account)
	if err != nil {
		return err
	}
	now := s.now()
	if !found || !record.Subscribed || !now.After(record.Until) {
		return domainerrors.ErrNotRemovable
	}

	record.Subscribed = false
	record.UpdatedAt = now
	if err := s.Repo.PutSubscriber(ctx, record); err != nil {
		return err
	}

	ResolveLogger(s.Logger).Info("subscriber removed",
		"event", "ledger_remove_completed",
		"module", "membership-registry/subscriber-ledger",
		"layer", "application",
		"account", account,
	)
	return nil
}

// SweepMany deactivates every expired subscriber in the candidate list and
// silently skips absent, inactive, or not-yet-expired entries. It only fails
// on structural problems (authorization, storage). Idempotent.
func (s Service) SweepMany(ctx context.Context, callerID string, accounts []string) (int, error) {
	if err := s.requireOperator(callerID); err != nil {
		return 0, err
	}

	now := s.now()
	expired := 0
	for _, account := range accounts {
		account = strings.TrimSpace(account)
		if account == "" {
			continue
		}
		record, found, err := s.Repo.GetSubscriber(ctx, account)
		if err != nil {
			return expired, err
		}
		if !found || !record.Subscribed || !now.After(record.Until) {
			continue
		}
		record.Subscribed = false
		record.UpdatedAt = now
		if err := s.Repo.PutSubscriber(ctx, record); err != nil {
			return expired, err
		}
		expired++
	}

	ResolveLogger(s.Logger).Info("expiry sweep completed",
		"event", "ledger_sweep_completed",
		"module", "membership-registry/subscriber-ledger",
		"layer", "application",
		"candidates", len(accounts),
		"expired", expired,
	)
	return expired, nil
}

// Query reads one subscriber record. Absent accounts read as a zero record.
func (s Service) Query(ctx context.Context, account string) (ports.Subscriber, bool, error) {
	account = strings.TrimSpace(account)
	if account == "" {
		return ports.Subscriber{}, false, domainerrors.ErrInvalidRequest
	}
	return s.Repo.GetSubscriber(ctx, account)
}

// KnownAccounts lists every account the ledger has ever seen, for the
// periodic sweep worker.
func (s Service) KnownAccounts(ctx context.Context) ([]string, error) {
	return s.Repo.ListAccounts(ctx)
}

func (s Service) appendEnrollmentOutbox(ctx context.Context, record ports.Subscriber, now time.Time) error {
	outboxID, err := s.IDGen.NewID(ctx)
	if err != nil {
		return err
	}
	payload, err := json.Marshal(enrollmentCompletedPayload{
		Account:       record.Account,
		OccurredAtUTC: now.UTC(),
		PeriodSeconds: int64(DefaultSubscriptionPeriod / time.Second),
	})
	if err != nil {
		return err
	}
	return s.Outbox.AppendOutbox(ctx, ports.OutboxRecord{
		OutboxID:  outboxID,
		EventType: EventEnrollmentCompleted,
		EntityID:  record.Account,
		Payload:   payload,
		CreatedAt: now,
	})
}

func (s Service) requireOperator(callerID string) error {
	if strings.TrimSpace(callerID) == "" || callerID != s.Operator {
		return domainerrors.ErrUnauthorized
	}
	return nil
}

func (s Service) now() time.Time {
	if s.Clock == nil {
		return time.Now().UTC()
	}
	return s.Clock.Now().UTC()
}
