package treasuryservice

import (
	"log/slog"

	httpadapter "croesus/contexts/finance-core/treasury-service/adapters/http"
	"croesus/contexts/finance-core/treasury-service/adapters/memory"
	"croesus/contexts/finance-core/treasury-service/application"
	"croesus/contexts/finance-core/treasury-service/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Service application.Service
	Store   *memory.Store
}

type Dependencies struct {
	Repository ports.Repository
	Outbox     ports.OutboxStore
	Clock      ports.Clock
	IDGen      ports.IDGenerator
	Operator   string
	Logger     *slog.Logger
}

func NewModule(deps Dependencies) Module {
	service := application.Service{
		Repo:     deps.Repository,
		Outbox:   deps.Outbox,
		Clock:    deps.Clock,
		IDGen:    deps.IDGen,
		Operator: deps.Operator,
		Logger:   deps.Logger,
	}
	return Module{
		Handler: httpadapter.Handler{
			Service: service,
			Logger:  deps.Logger,
		},
		Service: service,
	}
}

func NewInMemoryModule(operator string, logger *slog.Logger) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Repository: store,
		Outbox:     store,
		Clock:      store,
		IDGen:      store,
		Operator:   operator,
		Logger:     logger,
	})
	module.Store = store
	return module
}
