package memory

import (
	"context"
	"strings"
	"sync"

	domainerrors "croesus/contexts/asset-operations/distribution-engine/domain/errors"
	"croesus/contexts/asset-operations/distribution-engine/ports"
)

// Registry is an in-memory asset registry holding both uniquely-owned assets
// and quantity-bearing editions. Mint and approval setters exist for wiring
// and tests; the engine itself never mints.
type Registry struct {
	mu sync.RWMutex

	owners    map[uint64]string
	balances  map[uint64]map[string]uint64
	approvals map[string]map[string]bool
}

func NewRegistry() *Registry {
	return &Registry{
		owners:    make(map[uint64]string),
		balances:  make(map[uint64]map[string]uint64),
		approvals: make(map[string]map[string]bool),
	}
}

func (r *Registry) MintAsset(assetID uint64, owner string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.owners[assetID] = owner
}

func (r *Registry) MintUnits(assetID uint64, owner string, quantity uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	holders, ok := r.balances[assetID]
	if !ok {
		holders = make(map[string]uint64)
		r.balances[assetID] = holders
	}
	holders[owner] += quantity
}

func (r *Registry) SetApprovalForAll(holder string, operator string, approved bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	grants, ok := r.approvals[holder]
	if !ok {
		grants = make(map[string]bool)
		r.approvals[holder] = grants
	}
	grants[operator] = approved
}

func (r *Registry) IsApprovedForAll(_ context.Context, holder string, operator string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.approvals[holder][operator], nil
}

func (r *Registry) OwnerOf(_ context.Context, assetID uint64) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	owner, ok := r.owners[assetID]
	if !ok {
		return "", domainerrors.ErrAssetNotFound
	}
	return owner, nil
}

func (r *Registry) BalanceOf(_ context.Context, holder string, assetID uint64) (uint64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.balances[assetID][holder], nil
}

func (r *Registry) TransferAsset(_ context.Context, from string, to string, assetID uint64) error {
	if strings.TrimSpace(to) == "" {
		return domainerrors.ErrInvalidRequest
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	owner, ok := r.owners[assetID]
	if !ok {
		return domainerrors.ErrAssetNotFound
	}
	if owner != from {
		return domainerrors.ErrNotAssetOwner
	}
	r.owners[assetID] = to
	return nil
}

func (r *Registry) TransferUnits(_ context.Context, from string, to string, assetID uint64, quantity uint64) error {
	if strings.TrimSpace(to) == "" || quantity == 0 {
		return domainerrors.ErrInvalidRequest
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	holders := r.balances[assetID]
	if holders[from] < quantity {
		return domainerrors.ErrInsufficientUnits
	}
	holders[from] -= quantity
	if holders[from] == 0 {
		delete(holders, from)
	}
	holders[to] += quantity
	return nil
}

var _ ports.AssetRegistry = (*Registry)(nil)
