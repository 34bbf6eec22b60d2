package httpserver

import (
	"errors"
	"net/http"
	"strings"

	distributionerrors "croesus/contexts/asset-operations/distribution-engine/domain/errors"
	distributionhttp "croesus/contexts/asset-operations/distribution-engine/transport/http"
)

func writeDistributionError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, distributionhttp.ErrorResponse{Code: code, Message: message})
}

func writeDistributionDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, distributionerrors.ErrLengthMismatch):
		writeDistributionError(w, http.StatusBadRequest, "length_mismatch", err.Error())
	case errors.Is(err, distributionerrors.ErrInvalidRequest):
		writeDistributionError(w, http.StatusBadRequest, "invalid_request", err.Error())
	case errors.Is(err, distributionerrors.ErrRegistryNotFound):
		writeDistributionError(w, http.StatusNotFound, "registry_not_found", err.Error())
	case errors.Is(err, distributionerrors.ErrUnauthorized):
		writeDistributionError(w, http.StatusForbidden, "unauthorized", err.Error())
	case errors.Is(err, distributionerrors.ErrTransferFailed):
		writeDistributionError(w, http.StatusConflict, "transfer_failed", err.Error())
	default:
		writeDistributionError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func requireDistributionUser(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID := strings.TrimSpace(r.Header.Get("X-User-Id"))
	if userID == "" {
		writeDistributionError(w, http.StatusUnauthorized, "missing_user", "X-User-Id header is required")
		return "", false
	}
	return userID, true
}

func (s *Server) handleDistributeUnique(w http.ResponseWriter, r *http.Request) {
	callerID, ok := requireDistributionUser(w, r)
	if !ok {
		return
	}

	var req distributionhttp.DistributeUniqueRequest
	if !s.decodeJSON(w, r, &req, writeDistributionError) {
		return
	}
	resp, err := s.distribution.Handler.DistributeUniqueHandler(r.Context(), callerID, req)
	if err != nil {
		writeDistributionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDistributeEditions(w http.ResponseWriter, r *http.Request) {
	callerID, ok := requireDistributionUser(w, r)
	if !ok {
		return
	}

	var req distributionhttp.DistributeEditionsRequest
	if !s.decodeJSON(w, r, &req, writeDistributionError) {
		return
	}
	resp, err := s.distribution.Handler.DistributeEditionsHandler(r.Context(), callerID, req)
	if err != nil {
		writeDistributionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDistributionAuthorization(w http.ResponseWriter, r *http.Request) {
	resp, err := s.distribution.Handler.AuthorizationHandler(r.Context(), r.PathValue("registry_id"))
	if err != nil {
		writeDistributionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
