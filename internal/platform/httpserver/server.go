package httpserver

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	distributionengine "croesus/contexts/asset-operations/distribution-engine"
	treasuryservice "croesus/contexts/finance-core/treasury-service"
	subscriberledger "croesus/contexts/membership-registry/subscriber-ledger"

	_ "croesus/internal/platform/httpserver/docs"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Server struct {
	mux          *http.ServeMux
	logger       *slog.Logger
	addr         string
	membership   subscriberledger.Module
	treasury     treasuryservice.Module
	distribution distributionengine.Module
}

func New(
	membership subscriberledger.Module,
	treasury treasuryservice.Module,
	distribution distributionengine.Module,
	logger *slog.Logger,
	addr string,
) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if addr == "" {
		addr = ":8080"
	}

	s := &Server{
		mux:          http.NewServeMux(),
		logger:       logger,
		addr:         addr,
		membership:   membership,
		treasury:     treasury,
		distribution: distribution,
	}
	s.registerRoutes()
	return s
}

func (s *Server) Start() error {
	s.logger.Info("http server starting",
		"event", "http_server_starting",
		"module", "internal/platform/httpserver",
		"layer", "platform",
		"addr", s.addr,
	)
	return http.ListenAndServe(s.addr, s.mux)
}

func (s *Server) registerRoutes() {
	s.mux.Handle("/swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	s.mux.HandleFunc("POST /v1/membership/enroll", s.handleMembershipEnroll)
	s.mux.HandleFunc("POST /v1/membership/custom-enroll", s.handleMembershipCustomEnroll)
	s.mux.HandleFunc("POST /v1/membership/remove", s.handleMembershipRemove)
	s.mux.HandleFunc("POST /v1/membership/sweep", s.handleMembershipSweep)
	s.mux.HandleFunc("GET /v1/membership/subscribers/{account}", s.handleMembershipSubscriber)

	s.mux.HandleFunc("POST /v1/treasury/deposit", s.handleTreasuryDeposit)
	s.mux.HandleFunc("GET /v1/treasury/balance", s.handleTreasuryBalance)
	s.mux.HandleFunc("POST /v1/treasury/withdraw", s.handleTreasuryWithdraw)
	s.mux.HandleFunc("GET /v1/treasury/fees", s.handleTreasuryFeeConfig)
	s.mux.HandleFunc("PUT /v1/treasury/fees/transaction", s.handleTreasurySetTransactionFee)
	s.mux.HandleFunc("PUT /v1/treasury/fees/tiers", s.handleTreasurySetSubscriptionTiers)

	s.mux.HandleFunc("POST /v1/distribution/unique", s.handleDistributeUnique)
	s.mux.HandleFunc("POST /v1/distribution/editions", s.handleDistributeEditions)
	s.mux.HandleFunc("GET /v1/distribution/registries/{registry_id}/authorization", s.handleDistributionAuthorization)
}

func (s *Server) decodeJSON(
	w http.ResponseWriter,
	r *http.Request,
	dst any,
	writeError func(http.ResponseWriter, int, string, string),
) bool {
	defer func() {
		_, _ = io.Copy(io.Discard, r.Body)
		_ = r.Body.Close()
	}()
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
