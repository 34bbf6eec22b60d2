package httpadapter

import (
	"context"
	"log/slog"
	"strings"

	"croesus/contexts/asset-operations/distribution-engine/application"
	httptransport "croesus/contexts/asset-operations/distribution-engine/transport/http"
)

type Handler struct {
	Service application.Service
	Logger  *slog.Logger
}

func (h Handler) DistributeUniqueHandler(
	ctx context.Context,
	callerID string,
	req httptransport.DistributeUniqueRequest,
) (httptransport.DistributeResponse, error) {
	err := h.Service.DistributeUnique(ctx, callerID, strings.TrimSpace(req.RegistryID), req.Recipients, req.AssetIDs)
	if err != nil {
		return httptransport.DistributeResponse{}, err
	}

	resp := httptransport.DistributeResponse{Status: "success"}
	resp.Data.RegistryID = strings.TrimSpace(req.RegistryID)
	resp.Data.Mode = application.ModeUniqueAsset
	resp.Data.Recipients = len(req.Recipients)
	return resp, nil
}

func (h Handler) DistributeEditionsHandler(
	ctx context.Context,
	callerID string,
	req httptransport.DistributeEditionsRequest,
) (httptransport.DistributeResponse, error) {
	err := h.Service.DistributeEditions(
		ctx,
		callerID,
		strings.TrimSpace(req.RegistryID),
		req.Recipients,
		req.AssetIDs,
		req.Quantities,
	)
	if err != nil {
		return httptransport.DistributeResponse{}, err
	}

	resp := httptransport.DistributeResponse{Status: "success"}
	resp.Data.RegistryID = strings.TrimSpace(req.RegistryID)
	resp.Data.Mode = application.ModeIDQuantity
	resp.Data.Recipients = len(req.Recipients)
	return resp, nil
}

func (h Handler) AuthorizationHandler(
	ctx context.Context,
	registryID string,
) (httptransport.AuthorizationResponse, error) {
	authorized, err := h.Service.IsAuthorized(ctx, registryID)
	if err != nil {
		return httptransport.AuthorizationResponse{}, err
	}

	resp := httptransport.AuthorizationResponse{Status: "success"}
	resp.Data.RegistryID = strings.TrimSpace(registryID)
	resp.Data.Authorized = authorized
	return resp, nil
}
