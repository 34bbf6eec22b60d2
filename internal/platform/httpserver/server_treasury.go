package httpserver

import (
	"errors"
	"net/http"
	"strings"

	treasuryerrors "croesus/contexts/finance-core/treasury-service/domain/errors"
	treasuryhttp "croesus/contexts/finance-core/treasury-service/transport/http"
)

func writeTreasuryError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, treasuryhttp.ErrorResponse{Code: code, Message: message})
}

func writeTreasuryDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, treasuryerrors.ErrInvalidRequest),
		errors.Is(err, treasuryerrors.ErrInvalidAmount),
		errors.Is(err, treasuryerrors.ErrInvalidFeeSchedule):
		writeTreasuryError(w, http.StatusBadRequest, "invalid_request", err.Error())
	case errors.Is(err, treasuryerrors.ErrNothingToWithdraw):
		writeTreasuryError(w, http.StatusConflict, "nothing_to_withdraw", err.Error())
	case errors.Is(err, treasuryerrors.ErrUnauthorized):
		writeTreasuryError(w, http.StatusForbidden, "unauthorized", err.Error())
	default:
		writeTreasuryError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func requireTreasuryUser(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID := strings.TrimSpace(r.Header.Get("X-User-Id"))
	if userID == "" {
		writeTreasuryError(w, http.StatusUnauthorized, "missing_user", "X-User-Id header is required")
		return "", false
	}
	return userID, true
}

func (s *Server) handleTreasuryDeposit(w http.ResponseWriter, r *http.Request) {
	payer, ok := requireTreasuryUser(w, r)
	if !ok {
		return
	}

	var req treasuryhttp.DepositRequest
	if !s.decodeJSON(w, r, &req, writeTreasuryError) {
		return
	}
	resp, err := s.treasury.Handler.DepositHandler(r.Context(), payer, req)
	if err != nil {
		writeTreasuryDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleTreasuryBalance(w http.ResponseWriter, r *http.Request) {
	callerID, ok := requireTreasuryUser(w, r)
	if !ok {
		return
	}
	resp, err := s.treasury.Handler.BalanceHandler(r.Context(), callerID)
	if err != nil {
		writeTreasuryDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleTreasuryWithdraw(w http.ResponseWriter, r *http.Request) {
	callerID, ok := requireTreasuryUser(w, r)
	if !ok {
		return
	}
	resp, err := s.treasury.Handler.WithdrawHandler(r.Context(), callerID)
	if err != nil {
		writeTreasuryDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleTreasuryFeeConfig(w http.ResponseWriter, r *http.Request) {
	resp, err := s.treasury.Handler.FeeConfigHandler(r.Context())
	if err != nil {
		writeTreasuryDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleTreasurySetTransactionFee(w http.ResponseWriter, r *http.Request) {
	callerID, ok := requireTreasuryUser(w, r)
	if !ok {
		return
	}

	var req treasuryhttp.SetTransactionFeeRequest
	if !s.decodeJSON(w, r, &req, writeTreasuryError) {
		return
	}
	resp, err := s.treasury.Handler.SetTransactionFeeHandler(r.Context(), callerID, req)
	if err != nil {
		writeTreasuryDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleTreasurySetSubscriptionTiers(w http.ResponseWriter, r *http.Request) {
	callerID, ok := requireTreasuryUser(w, r)
	if !ok {
		return
	}

	var req treasuryhttp.SetSubscriptionTiersRequest
	if !s.decodeJSON(w, r, &req, writeTreasuryError) {
		return
	}
	resp, err := s.treasury.Handler.SetSubscriptionTiersHandler(r.Context(), callerID, req)
	if err != nil {
		writeTreasuryDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
