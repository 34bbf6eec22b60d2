package application

import (
	"context"
	"encoding/json"
	"log/slog"
	"math"
	"strings"
	"time"

	domainerrors "croesus/contexts/finance-core/treasury-service/domain/errors"
	"croesus/contexts/finance-core/treasury-service/ports"
)

const (
	EventCreditReceived    = "treasury.credit_received"
	EventReceivedUndefined = "treasury.received_undefined"
)

type Service struct {
	Repo     ports.Repository
	Outbox   ports.OutboxStore
	Clock    ports.Clock
	IDGen    ports.IDGenerator
	Operator string
	Logger   *slog.Logger
}

type valueReceivedPayload struct {
	Payer         string    `json:"payer"`
	Amount        float64   `json:"amount"`
	OccurredAtUTC time.Time `json:"occurred_at_utc"`
}

// Credit records a structured value receipt (enrollment payments). Both
// counters move by the full amount.
func (s Service) Credit(ctx context.Context, payer string, amount float64, now time.Time) error {
	return s.receive(ctx, payer, amount, now, EventCreditReceived)
}

// Deposit records a bare value receipt with no matching structured operation.
func (s Service) Deposit(ctx context.Context, payer string, amount float64) (ports.Counters, error) {
	now := s.now()
	if err := s.receive(ctx, payer, amount, now, EventReceivedUndefined); err != nil {
		return ports.Counters{}, err
	}
	return s.Repo.GetCounters(ctx)
}

func (s Service) receive(ctx context.Context, payer string, amount float64, now time.Time, eventType string) error {
	payer = strings.TrimSpace(payer)
	if payer == "" {
		return domainerrors.ErrInvalidRequest
	}
	if amount <= 0 {
		return domainerrors.ErrInvalidAmount
	}

	counters, err := s.Repo.GetCounters(ctx)
	if err != nil {
		return err
	}
	counters.CumulativeReceived = round4(counters.CumulativeReceived + amount)
	counters.Balance = round4(counters.Balance + amount)
	counters.UpdatedAt = now
	if err := s.Repo.PutCounters(ctx, counters); err != nil {
		return err
	}
	if err := s.appendValueReceivedOutbox(ctx, payer, amount, now, eventType); err != nil {
		return err
	}

	ResolveLogger(s.Logger).Info("treasury value received",
		"event", "treasury_value_received",
		"module", "finance-core/treasury-service",
		"layer", "application",
		"payer", payer,
		"amount", amount,
		"kind", eventType,
	)
	return nil
}

// Balance returns the current withdrawable balance. Operator only.
func (s Service) Balance(ctx context.Context, callerID string) (float64, error) {
	if err := s.requireOperator(callerID); err != nil {
		return 0, err
	}
	counters, err := s.Repo.GetCounters(ctx)
	if err != nil {
		return 0, err
	}
	return counters.Balance, nil
}

// WithdrawAll moves the full balance to the operator and returns the amount.
func (s Service) WithdrawAll(ctx context.Context, callerID string) (float64, error) {
	if err := s.requireOperator(callerID); err != nil {
		return 0, err
	}
	counters, err := s.Repo.GetCounters(ctx)
	if err != nil {
		return 0, err
	}
	if counters.Balance <= 0 {
		return 0, domainerrors.ErrNothingToWithdraw
	}

	withdrawn := counters.Balance
	counters.Balance = 0
	counters.UpdatedAt = s.now()
	if err := s.Repo.PutCounters(ctx, counters); err != nil {
		return 0, err
	}

	ResolveLogger(s.Logger).Info("treasury withdrawal completed",
		"event", "treasury_withdrawal_completed",
		"module", "finance-core/treasury-service",
		"layer", "application",
		"amount", withdrawn,
	)
	return withdrawn, nil
}

func (s Service) FeeConfig(ctx context.Context) (ports.FeeConfig, error) {
	return s.Repo.GetFeeConfig(ctx)
}

func (s Service) SetTransactionFee(ctx context.Context, callerID string, fee float64) (ports.FeeConfig, error) {
	if err := s.requireOperator(callerID); err != nil {
		return ports.FeeConfig{}, err
	}
	if fee < 0 {
		return ports.FeeConfig{}, domainerrors.ErrInvalidFeeSchedule
	}
	config, err := s.Repo.GetFeeConfig(ctx)
	if err != nil {
		return ports.FeeConfig{}, err
	}
	config.TransactionFee = fee
	config.UpdatedAt = s.now()
	if err := s.Repo.PutFeeConfig(ctx, config); err != nil {
		return ports.FeeConfig{}, err
	}
	return config, nil
}

func (s Service) SetSubscriptionTiers(ctx context.Context, callerID string, tiers []float64) (ports.FeeConfig, error) {
	if err := s.requireOperator(callerID); err != nil {
		return ports.FeeConfig{}, err
	}
	if len(tiers) == 0 {
		return ports.FeeConfig{}, domainerrors.ErrInvalidFeeSchedule
	}
	for _, tier := range tiers {
		if tier < 0 {
			return ports.FeeConfig{}, domainerrors.ErrInvalidFeeSchedule
		}
	}
	config, err := s.Repo.GetFeeConfig(ctx)
	if err != nil {
		return ports.FeeConfig{}, err
	}
	config.SubscriptionTiers = append([]float64(nil), tiers...)
	config.UpdatedAt = s.now()
	if err := s.Repo.PutFeeConfig(ctx, config); err != nil {
		return ports.FeeConfig{}, err
	}
	return config, nil
}

// MinimumSubscriptionFee is the enrollment floor read by the membership
// ledger: the smallest configured subscription tier.
func (s Service) MinimumSubscriptionFee(ctx context.Context) (float64, error) {
	config, err := s.Repo.GetFeeConfig(ctx)
	if err != nil {
		return 0, err
	}
	if len(config.SubscriptionTiers) == 0 {
		return 0, domainerrors.ErrInvalidFeeSchedule
	}
	minimum := config.SubscriptionTiers[0]
	for _, tier := range config.SubscriptionTiers[1:] {
		if tier < minimum {
			minimum = tier
		}
	}
	return minimum, nil
}

func (s Service) appendValueReceivedOutbox(ctx context.Context, payer string, amount float64, now time.Time, eventType string) error {
	outboxID, err := s.IDGen.NewID(ctx)
	if err != nil {
		return err
	}
	payload, err := json.Marshal(valueReceivedPayload{
		Payer:         payer,
		Amount:        amount,
		OccurredAtUTC: now.UTC(),
	})
	if err != nil {
		return err
	}
	return s.Outbox.AppendOutbox(ctx, ports.OutboxRecord{
		OutboxID:  outboxID,
		EventType: eventType,
		EntityID:  payer,
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

func round4(value float64) float64 {
	return math.Round(value*10000) / 10000
}
