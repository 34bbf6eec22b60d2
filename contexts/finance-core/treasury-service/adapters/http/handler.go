package httpadapter

import (
	"context"
	"log/slog"

	"croesus/contexts/finance-core/treasury-service/application"
	httptransport "croesus/contexts/finance-core/treasury-service/transport/http"
)

type Handler struct {
	Service application.Service
	Logger  *slog.Logger
}

func (h Handler) DepositHandler(
	ctx context.Context,
	payer string,
	req httptransport.DepositRequest,
) (httptransport.DepositResponse, error) {
	counters, err := h.Service.Deposit(ctx, payer, req.Amount)
	if err != nil {
		return httptransport.DepositResponse{}, err
	}

	resp := httptransport.DepositResponse{Status: "success"}
	resp.Data.CumulativeReceived = counters.CumulativeReceived
	resp.Data.Balance = counters.Balance
	return resp, nil
}

func (h Handler) BalanceHandler(
	ctx context.Context,
	callerID string,
) (httptransport.BalanceResponse, error) {
	balance, err := h.Service.Balance(ctx, callerID)
	if err != nil {
		return httptransport.BalanceResponse{}, err
	}

	resp := httptransport.BalanceResponse{Status: "success"}
	resp.Data.Balance = balance
	return resp, nil
}

func (h Handler) WithdrawHandler(
	ctx context.Context,
	callerID string,
) (httptransport.WithdrawResponse, error) {
	withdrawn, err := h.Service.WithdrawAll(ctx, callerID)
	if err != nil {
		return httptransport.WithdrawResponse{}, err
	}

	resp := httptransport.WithdrawResponse{Status: "success"}
	resp.Data.Withdrawn = withdrawn
	return resp, nil
}

func (h Handler) FeeConfigHandler(ctx context.Context) (httptransport.FeeConfigResponse, error) {
	config, err := h.Service.FeeConfig(ctx)
	if err != nil {
		return httptransport.FeeConfigResponse{}, err
	}

	resp := httptransport.FeeConfigResponse{Status: "success"}
	resp.Data.TransactionFee = config.TransactionFee
	resp.Data.SubscriptionTiers = config.SubscriptionTiers
	return resp, nil
}

func (h Handler) SetTransactionFeeHandler(
	ctx context.Context,
	callerID string,
	req httptransport.SetTransactionFeeRequest,
) (httptransport.FeeConfigResponse, error) {
	config, err := h.Service.SetTransactionFee(ctx, callerID, req.TransactionFee)
	if err != nil {
		return httptransport.FeeConfigResponse{}, err
	}

	resp := httptransport.FeeConfigResponse{Status: "success"}
	resp.Data.TransactionFee = config.TransactionFee
	resp.Data.SubscriptionTiers = config.SubscriptionTiers
	return resp, nil
}

func (h Handler) SetSubscriptionTiersHandler(
	ctx context.Context,
	callerID string,
	req httptransport.SetSubscriptionTiersRequest,
) (httptransport.FeeConfigResponse, error) {
	config, err := h.Service.SetSubscriptionTiers(ctx, callerID, req.SubscriptionTiers)
	if err != nil {
		return httptransport.FeeConfigResponse{}, err
	}

	resp := httptransport.FeeConfigResponse{Status: "success"}
	resp.Data.TransactionFee = config.TransactionFee
	resp.Data.SubscriptionTiers = config.SubscriptionTiers
	return resp, nil
}
