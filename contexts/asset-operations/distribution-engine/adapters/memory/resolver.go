package memory

import (
	"context"
	"strings"
	"sync"

	domainerrors "croesus/contexts/asset-operations/distribution-engine/domain/errors"
	"croesus/contexts/asset-operations/distribution-engine/ports"
)

// Resolver maps registry identifiers to live registry capabilities.
type Resolver struct {
	mu         sync.RWMutex
	registries map[string]ports.AssetRegistry
}

func NewResolver() *Resolver {
	return &Resolver{registries: make(map[string]ports.AssetRegistry)}
}

func (r *Resolver) Register(registryID string, registry ports.AssetRegistry) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.registries[strings.TrimSpace(registryID)] = registry
}

func (r *Resolver) Resolve(_ context.Context, registryID string) (ports.AssetRegistry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	registry, ok := r.registries[strings.TrimSpace(registryID)]
	if !ok {
		return nil, domainerrors.ErrRegistryNotFound
	}
	return registry, nil
}

var _ ports.RegistryResolver = (*Resolver)(nil)
