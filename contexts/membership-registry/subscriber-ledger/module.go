package subscriberledger

import (
	"log/slog"

	httpadapter "croesus/contexts/membership-registry/subscriber-ledger/adapters/http"
	"croesus/contexts/membership-registry/subscriber-ledger/adapters/memory"
	"croesus/contexts/membership-registry/subscriber-ledger/application"
	"croesus/contexts/membership-registry/subscriber-ledger/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Service application.Service
	Store   *memory.Store
}

type Dependencies struct {
	Repository ports.Repository
	Outbox     ports.OutboxStore
	Fees       ports.FeeSchedule
	Treasury   ports.TreasuryLedger
	Clock      ports.Clock
	IDGen      ports.IDGenerator
	Operator   string
	Logger     *slog.Logger
}

func NewModule(deps Dependencies) Module {
	service := application.Service{
		Repo:     deps.Repository,
		Outbox:   deps.Outbox,
		Fees:     deps.Fees,
		Treasury: deps.Treasury,
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

func NewInMemoryModule(
	seed []ports.Subscriber,
	fees ports.FeeSchedule,
	treasury ports.TreasuryLedger,
	operator string,
	logger *slog.Logger,
) Module {
	store := memory.NewStore(seed)
	module := NewModule(Dependencies{
		Repository: store,
		Outbox:     store,
		Fees:       fees,
		Treasury:   treasury,
		Clock:      store,
		IDGen:      store,
		Operator:   operator,
		Logger:     logger,
	})
	module.Store = store
	return module
}
