package httpserver

import (
	"errors"
	"net/http"
	"strings"

	membershiperrors "croesus/contexts/membership-registry/subscriber-ledger/domain/errors"
	membershiphttp "croesus/contexts/membership-registry/subscriber-ledger/transport/http"
)

func writeMembershipError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, membershiphttp.ErrorResponse{Code: code, Message: message})
}

func writeMembershipDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, membershiperrors.ErrInvalidRequest):
		writeMembershipError(w, http.StatusBadRequest, "invalid_request", err.Error())
	case errors.Is(err, membershiperrors.ErrInsufficientPayment):
		writeMembershipError(w, http.StatusPaymentRequired, "insufficient_payment", err.Error())
	case errors.Is(err, membershiperrors.ErrAlreadySubscribed):
		writeMembershipError(w, http.StatusConflict, "already_subscribed", err.Error())
	case errors.Is(err, membershiperrors.ErrNotRemovable):
		writeMembershipError(w, http.StatusConflict, "not_removable", err.Error())
	case errors.Is(err, membershiperrors.ErrUnauthorized):
		writeMembershipError(w, http.StatusForbidden, "unauthorized", err.Error())
	default:
		writeMembershipError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func requireMembershipUser(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID := strings.TrimSpace(r.Header.Get("X-User-Id"))
	if userID == "" {
		writeMembershipError(w, http.StatusUnauthorized, "missing_user", "X-User-Id header is required")
		return "", false
	}
	return userID, true
}

func (s *Server) handleMembershipEnroll(w http.ResponseWriter, r *http.Request) {
	account, ok := requireMembershipUser(w, r)
	if !ok {
		return
	}

	var req membershiphttp.EnrollRequest
	if !s.decodeJSON(w, r, &req, writeMembershipError) {
		return
	}
	resp, err := s.membership.Handler.EnrollHandler(r.Context(), account, req)
	if err != nil {
		writeMembershipDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleMembershipCustomEnroll(w http.ResponseWriter, r *http.Request) {
	callerID, ok := requireMembershipUser(w, r)
	if !ok {
		return
	}

	var req membershiphttp.CustomEnrollRequest
	if !s.decodeJSON(w, r, &req, writeMembershipError) {
		return
	}
	resp, err := s.membership.Handler.CustomEnrollHandler(r.Context(), callerID, req)
	if err != nil {
		writeMembershipDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleMembershipRemove(w http.ResponseWriter, r *http.Request) {
	callerID, ok := requireMembershipUser(w, r)
	if !ok {
		return
	}

	var req membershiphttp.RemoveRequest
	if !s.decodeJSON(w, r, &req, writeMembershipError) {
		return
	}
	resp, err := s.membership.Handler.RemoveHandler(r.Context(), callerID, req)
	if err != nil {
		writeMembershipDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleMembershipSweep(w http.ResponseWriter, r *http.Request) {
	callerID, ok := requireMembershipUser(w, r)
	if !ok {
		return
	}

	var req membershiphttp.SweepRequest
	if !s.decodeJSON(w, r, &req, writeMembershipError) {
		return
	}
	resp, err := s.membership.Handler.SweepHandler(r.Context(), callerID, req)
	if err != nil {
		writeMembershipDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleMembershipSubscriber(w http.ResponseWriter, r *http.Request) {
	resp, err := s.membership.Handler.SubscriberHandler(r.Context(), r.PathValue("account"))
	if err != nil {
		writeMembershipDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
