package workers

import (
	"context"
	"log/slog"

	application "croesus/contexts/membership-registry/subscriber-ledger/application"
)

// ExpirySweeper periodically runs the ledger sweep over every known account
// with the operator capability.
type ExpirySweeper struct {
	Service  application.Service
	Operator string
	Logger   *slog.Logger
}

func (j ExpirySweeper) RunOnce(ctx context.Context) error {
	logger := application.ResolveLogger(j.Logger)
	accounts, err := j.Service.KnownAccounts(ctx)
	if err != nil {
		logger.Error("expiry sweeper listing failed",
			"event", "ledger_sweeper_listing_failed",
			"module", "membership-registry/subscriber-ledger",
			"layer", "worker",
			"error", err.Error(),
		)
		return err
	}
	expired, err := j.Service.SweepMany(ctx, j.Operator, accounts)
	if err != nil {
		logger.Error("expiry sweeper cycle failed",
			"event", "ledger_sweeper_cycle_failed",
			"module", "membership-registry/subscriber-ledger",
			"layer", "worker",
			"error", err.Error(),
		)
		return err
	}
	logger.Debug("expiry sweeper cycle succeeded",
		"event", "ledger_sweeper_cycle_succeeded",
		"module", "membership-registry/subscriber-ledger",
		"layer", "worker",
		"candidates", len(accounts),
		"expired", expired,
	)
	return nil
}
