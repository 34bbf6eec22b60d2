package httpadapter

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"croesus/contexts/membership-registry/subscriber-ledger/application"
	httptransport "croesus/contexts/membership-registry/subscriber-ledger/transport/http"
)

type Handler struct {
	Service application.Service
	Logger  *slog.Logger
}

func (h Handler) EnrollHandler(
	ctx context.Context,
	account string,
	req httptransport.EnrollRequest,
) (httptransport.EnrollResponse, error) {
	record, err := h.Service.Enroll(ctx, account, req.Payment)
	if err != nil {
		return httptransport.EnrollResponse{}, err
	}

	resp := httptransport.EnrollResponse{Status: "success"}
	resp.Data.Account = record.Account
	resp.Data.Subscribed = record.Subscribed
	resp.Data.Until = record.Until.UTC().Format(time.RFC3339)
	return resp, nil
}

func (h Handler) CustomEnrollHandler(
	ctx context.Context,
	callerID string,
	req httptransport.CustomEnrollRequest,
) (httptransport.CustomEnrollResponse, error) {
	record, err := h.Service.CustomEnroll(ctx, callerID, strings.TrimSpace(req.Account), req.DurationSeconds)
	if err != nil {
		return httptransport.CustomEnrollResponse{}, err
	}

	resp := httptransport.CustomEnrollResponse{Status: "success"}
	resp.Data.Account = record.Account
	resp.Data.Subscribed = record.Subscribed
	resp.Data.Until = record.Until.UTC().Format(time.RFC3339)
	return resp, nil
}

func (h Handler) RemoveHandler(
	ctx context.Context,
	callerID string,
	req httptransport.RemoveRequest,
) (httptransport.RemoveResponse, error) {
	if err := h.Service.RemoveSingle(ctx, callerID, strings.TrimSpace(req.Account)); err != nil {
		return httptransport.RemoveResponse{}, err
	}
	return httptransport.RemoveResponse{Status: "success"}, nil
}

func (h Handler) SweepHandler(
	ctx context.Context,
	callerID string,
	req httptransport.SweepRequest,
) (httptransport.SweepResponse, error) {
	expired, err := h.Service.SweepMany(ctx, callerID, req.Accounts)
	if err != nil {
		return httptransport.SweepResponse{}, err
	}

	resp := httptransport.SweepResponse{Status: "success"}
	resp.Data.Candidates = len(req.Accounts)
	resp.Data.Expired = expired
	return resp, nil
}

func (h Handler) SubscriberHandler(
	ctx context.Context,
	account string,
) (httptransport.SubscriberResponse, error) {
	record, found, err := h.Service.Query(ctx, strings.TrimSpace(account))
	if err != nil {
		return httptransport.SubscriberResponse{}, err
	}

	resp := httptransport.SubscriberResponse{Status: "success"}
	resp.Data.Account = strings.TrimSpace(account)
	resp.Data.Known = found
	resp.Data.Subscribed = record.Subscribed
	if found {
		resp.Data.Until = record.Until.UTC().Format(time.RFC3339)
	}
	return resp, nil
}
