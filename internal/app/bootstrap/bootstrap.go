package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	distributionengine "croesus/contexts/asset-operations/distribution-engine"
	distributionmemory "croesus/contexts/asset-operations/distribution-engine/adapters/memory"
	distributionpostgres "croesus/contexts/asset-operations/distribution-engine/adapters/postgres"
	treasuryservice "croesus/contexts/finance-core/treasury-service"
	treasurypostgres "croesus/contexts/finance-core/treasury-service/adapters/postgres"
	treasuryworkers "croesus/contexts/finance-core/treasury-service/application/workers"
	subscriberledger "croesus/contexts/membership-registry/subscriber-ledger"
	ledgerpostgres "croesus/contexts/membership-registry/subscriber-ledger/adapters/postgres"
	ledgerworkers "croesus/contexts/membership-registry/subscriber-ledger/application/workers"
	"croesus/internal/platform/config"
	"croesus/internal/platform/db"
	"croesus/internal/platform/httpserver"
	"croesus/internal/platform/messaging"
)

// Package bootstrap is the composition root.
// Keep construction/wiring here so module code stays framework-agnostic.

// DefaultRegistryID is the registry the API process binds to its own postgres
// store. Additional external registries are registered on the resolver.
const DefaultRegistryID = "primary"

type APIApp struct {
	server   *httpserver.Server
	postgres *db.Postgres
	logger   *slog.Logger
}

type WorkerApp struct {
	postgres      *db.Postgres
	sweeper       ledgerworkers.ExpirySweeper
	ledgerRelay   ledgerworkers.OutboxRelay
	treasuryRelay treasuryworkers.OutboxRelay
	sweepInterval time.Duration
	pollInterval  time.Duration
	enableSweeper bool
	enableRelay   bool
	logger        *slog.Logger
}

func BuildAPI() (*APIApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("service", cfg.ServiceName, "process", "api")
	if strings.TrimSpace(cfg.PostgresDSN) == "" {
		return nil, errors.New("POSTGRES_DSN is required")
	}

	pg, err := db.Connect(cfg.PostgresDSN)
	if err != nil {
		return nil, err
	}

	bus, err := messaging.NewKafka(cfg.KafkaBrokers, logger)
	if err != nil {
		return nil, err
	}

	treasuryRepo := treasurypostgres.NewRepository(pg.DB, logger)
	treasuryModule := treasuryservice.NewModule(treasuryservice.Dependencies{
		Repository: treasuryRepo,
		Outbox:     treasuryRepo,
		Clock:      ledgerpostgres.SystemClock{},
		IDGen:      ledgerpostgres.UUIDGenerator{},
		Operator:   cfg.OperatorAccount,
		Logger:     logger,
	})

	ledgerRepo := ledgerpostgres.NewRepository(pg.DB, logger)
	ledgerModule := subscriberledger.NewModule(subscriberledger.Dependencies{
		Repository: ledgerRepo,
		Outbox:     ledgerRepo,
		Fees:       treasuryModule.Service,
		Treasury:   treasuryModule.Service,
		Clock:      ledgerpostgres.SystemClock{},
		IDGen:      ledgerpostgres.UUIDGenerator{},
		Operator:   cfg.OperatorAccount,
		Logger:     logger,
	})

	resolver := distributionmemory.NewResolver()
	resolver.Register(DefaultRegistryID, distributionpostgres.NewRegistry(pg.DB, DefaultRegistryID, logger))
	distributionModule := distributionengine.NewModule(distributionengine.Dependencies{
		Registries: resolver,
		Publisher:  distributionPublisher{bus: bus},
		Clock:      distributionpostgres.SystemClock{},
		IDGen:      distributionpostgres.UUIDGenerator{},
		Operator:   cfg.OperatorAccount,
		Engine:     cfg.EngineAccount,
		Logger:     logger,
	})

	server := httpserver.New(ledgerModule, treasuryModule, distributionModule, logger, normalizeAddr(cfg.HTTPPort))
	return &APIApp{
		server:   server,
		postgres: pg,
		logger:   logger,
	}, nil
}

func BuildWorker() (*WorkerApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("service", cfg.ServiceName, "process", "worker")
	if strings.TrimSpace(cfg.PostgresDSN) == "" {
		return nil, errors.New("POSTGRES_DSN is required")
	}

	pg, err := db.Connect(cfg.PostgresDSN)
	if err != nil {
		return nil, err
	}

	bus, err := messaging.NewKafka(cfg.KafkaBrokers, logger)
	if err != nil {
		return nil, err
	}

	treasuryRepo := treasurypostgres.NewRepository(pg.DB, logger)
	treasuryModule := treasuryservice.NewModule(treasuryservice.Dependencies{
		Repository: treasuryRepo,
		Outbox:     treasuryRepo,
		Clock:      ledgerpostgres.SystemClock{},
		IDGen:      ledgerpostgres.UUIDGenerator{},
		Operator:   cfg.OperatorAccount,
		Logger:     logger,
	})

	ledgerRepo := ledgerpostgres.NewRepository(pg.DB, logger)
	ledgerModule := subscriberledger.NewModule(subscriberledger.Dependencies{
		Repository: ledgerRepo,
		Outbox:     ledgerRepo,
		Fees:       treasuryModule.Service,
		Treasury:   treasuryModule.Service,
		Clock:      ledgerpostgres.SystemClock{},
		IDGen:      ledgerpostgres.UUIDGenerator{},
		Operator:   cfg.OperatorAccount,
		Logger:     logger,
	})

	return &WorkerApp{
		postgres: pg,
		sweeper: ledgerworkers.ExpirySweeper{
			Service:  ledgerModule.Service,
			Operator: cfg.OperatorAccount,
			Logger:   logger,
		},
		ledgerRelay: ledgerworkers.OutboxRelay{
			Outbox:    ledgerRepo,
			Publisher: ledgerPublisher{bus: bus},
			Clock:     ledgerpostgres.SystemClock{},
			BatchSize: 100,
			Logger:    logger,
		},
		treasuryRelay: treasuryworkers.OutboxRelay{
			Outbox:    treasuryRepo,
			Publisher: treasuryPublisher{bus: bus},
			Clock:     ledgerpostgres.SystemClock{},
			BatchSize: 100,
			Logger:    logger,
		},
		sweepInterval: cfg.SweepInterval,
		pollInterval:  cfg.OutboxPollInterval,
		enableSweeper: cfg.EnableExpirySweeper,
		enableRelay:   cfg.EnableOutboxRelay,
		logger:        logger,
	}, nil
}

func (a *APIApp) Run(_ context.Context) error {
	if a.logger != nil {
		a.logger.Info("api app started",
			"event", "bootstrap_api_started",
			"module", "internal/app/bootstrap",
			"layer", "platform",
		)
	}
	return a.server.Start()
}

func (a *APIApp) Close() error {
	if a.postgres != nil {
		return a.postgres.Close()
	}
	return nil
}

func (w *WorkerApp) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	w.logger.Info("worker app started",
		"event", "bootstrap_worker_started",
		"module", "internal/app/bootstrap",
		"layer", "platform",
		"poll_interval", w.pollInterval.String(),
		"sweep_interval", w.sweepInterval.String(),
	)

	var lastSweep time.Time
	for {
		if w.enableSweeper && time.Since(lastSweep) >= w.sweepInterval {
			if err := w.sweeper.RunOnce(ctx); err != nil {
				return err
			}
			lastSweep = time.Now()
		}
		if w.enableRelay {
			if err := w.ledgerRelay.RunOnce(ctx); err != nil {
				return err
			}
			if err := w.treasuryRelay.RunOnce(ctx); err != nil {
				return err
			}
		}
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

func (w *WorkerApp) Close() error {
	if w.postgres != nil {
		return w.postgres.Close()
	}
	return nil
}

func normalizeAddr(port string) string {
	value := strings.TrimSpace(port)
	if value == "" {
		return ":8080"
	}
	if strings.HasPrefix(value, ":") {
		return value
	}
	return ":" + value
}
