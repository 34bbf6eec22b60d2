package unit

import (
	"context"
	"errors"
	"testing"

	treasuryservice "croesus/contexts/finance-core/treasury-service"
	domainerrors "croesus/contexts/finance-core/treasury-service/domain/errors"
	httptransport "croesus/contexts/finance-core/treasury-service/transport/http"
)

func TestTreasuryDepositBalanceWithdrawFlow(t *testing.T) {
	ctx := context.Background()
	module := treasuryservice.NewInMemoryModule("operator", nil)

	deposit, err := module.Handler.DepositHandler(ctx, "donor", httptransport.DepositRequest{Amount: 12.5})
	if err != nil {
		t.Fatalf("deposit failed: %v", err)
	}
	if deposit.Data.Balance != 12.5 || deposit.Data.CumulativeReceived != 12.5 {
		t.Fatalf("counters = %+v, want both at 12.5", deposit.Data)
	}

	if _, err := module.Handler.BalanceHandler(ctx, "donor"); !errors.Is(err, domainerrors.ErrUnauthorized) {
		t.Fatalf("expected unauthorized balance read, got %v", err)
	}

	withdraw, err := module.Handler.WithdrawHandler(ctx, "operator")
	if err != nil {
		t.Fatalf("withdraw failed: %v", err)
	}
	if withdraw.Data.Withdrawn != 12.5 {
		t.Fatalf("withdrawn = %v, want 12.5", withdraw.Data.Withdrawn)
	}

	balance, err := module.Handler.BalanceHandler(ctx, "operator")
	if err != nil {
		t.Fatalf("balance failed: %v", err)
	}
	if balance.Data.Balance != 0 {
		t.Fatalf("balance after withdraw = %v, want 0", balance.Data.Balance)
	}

	if _, err := module.Handler.WithdrawHandler(ctx, "operator"); !errors.Is(err, domainerrors.ErrNothingToWithdraw) {
		t.Fatalf("expected nothing to withdraw error, got %v", err)
	}
}

func TestTreasurySeededFeeScheduleServesLedgerFloor(t *testing.T) {
	ctx := context.Background()
	module := treasuryservice.NewInMemoryModule("operator", nil)

	minimum, err := module.Service.MinimumSubscriptionFee(ctx)
	if err != nil {
		t.Fatalf("minimum fee failed: %v", err)
	}
	if minimum != 1.0 {
		t.Fatalf("seeded minimum = %v, want 1.0", minimum)
	}

	if _, err := module.Handler.SetSubscriptionTiersHandler(ctx, "operator", httptransport.SetSubscriptionTiersRequest{
		SubscriptionTiers: []float64{5.0, 0.5},
	}); err != nil {
		t.Fatalf("set tiers failed: %v", err)
	}
	minimum, err = module.Service.MinimumSubscriptionFee(ctx)
	if err != nil {
		t.Fatalf("minimum fee failed: %v", err)
	}
	if minimum != 0.5 {
		t.Fatalf("updated minimum = %v, want 0.5", minimum)
	}
}

func TestTreasuryFeeConfigUpdateGates(t *testing.T) {
	ctx := context.Background()
	module := treasuryservice.NewInMemoryModule("operator", nil)

	_, err := module.Handler.SetTransactionFeeHandler(ctx, "mallory", httptransport.SetTransactionFeeRequest{TransactionFee: 0.2})
	if !errors.Is(err, domainerrors.ErrUnauthorized) {
		t.Fatalf("expected unauthorized error, got %v", err)
	}

	config, err := module.Handler.SetTransactionFeeHandler(ctx, "operator", httptransport.SetTransactionFeeRequest{TransactionFee: 0.2})
	if err != nil {
		t.Fatalf("set transaction fee failed: %v", err)
	}
	if config.Data.TransactionFee != 0.2 {
		t.Fatalf("transaction fee = %v, want 0.2", config.Data.TransactionFee)
	}
}
