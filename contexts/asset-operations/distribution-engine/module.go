package distributionengine

import (
	"log/slog"

	httpadapter "croesus/contexts/asset-operations/distribution-engine/adapters/http"
	"croesus/contexts/asset-operations/distribution-engine/adapters/memory"
	"croesus/contexts/asset-operations/distribution-engine/application"
	"croesus/contexts/asset-operations/distribution-engine/ports"
)

type Module struct {
	Handler  httpadapter.Handler
	Service  application.Service
	Resolver *memory.Resolver
}

type Dependencies struct {
	Registries ports.RegistryResolver
	Publisher  ports.EventPublisher
	Clock      ports.Clock
	IDGen      ports.IDGenerator
	Operator   string
	Engine     string
	Logger     *slog.Logger
}

func NewModule(deps Dependencies) Module {
	service := application.Service{
		Registries: deps.Registries,
		Publisher:  deps.Publisher,
		Clock:      deps.Clock,
		IDGen:      deps.IDGen,
		Operator:   deps.Operator,
		Engine:     deps.Engine,
		Logger:     deps.Logger,
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
	publisher ports.EventPublisher,
	clock ports.Clock,
	idGen ports.IDGenerator,
	operator string,
	engine string,
	logger *slog.Logger,
) Module {
	resolver := memory.NewResolver()
	module := NewModule(Dependencies{
		Registries: resolver,
		Publisher:  publisher,
		Clock:      clock,
		IDGen:      idGen,
		Operator:   operator,
		Engine:     engine,
		Logger:     logger,
	})
	module.Resolver = resolver
	return module
}
