package memory

import (
	"context"
	"errors"
	"testing"

	domainerrors "croesus/contexts/asset-operations/distribution-engine/domain/errors"
)

func TestRegistryTransferAssetSemantics(t *testing.T) {
	registry := NewRegistry()
	ctx := context.Background()
	registry.MintAsset(1, "alice")

	if err := registry.TransferAsset(ctx, "bob", "carol", 1); !errors.Is(err, domainerrors.ErrNotAssetOwner) {
		t.Fatalf("expected not asset owner error, got %v", err)
	}
	if err := registry.TransferAsset(ctx, "alice", "carol", 2); !errors.Is(err, domainerrors.ErrAssetNotFound) {
		t.Fatalf("expected asset not found error, got %v", err)
	}
	if err := registry.TransferAsset(ctx, "alice", "carol", 1); err != nil {
		t.Fatalf("transfer failed: %v", err)
	}

	owner, err := registry.OwnerOf(ctx, 1)
	if err != nil {
		t.Fatalf("owner of failed: %v", err)
	}
	if owner != "carol" {
		t.Fatalf("owner = %q, want carol", owner)
	}
}

func TestRegistryTransferUnitsSemantics(t *testing.T) {
	registry := NewRegistry()
	ctx := context.Background()
	registry.MintUnits(9, "alice", 5)

	if err := registry.TransferUnits(ctx, "alice", "bob", 9, 6); !errors.Is(err, domainerrors.ErrInsufficientUnits) {
		t.Fatalf("expected insufficient units error, got %v", err)
	}
	if err := registry.TransferUnits(ctx, "alice", "bob", 9, 5); err != nil {
		t.Fatalf("transfer failed: %v", err)
	}

	held, err := registry.BalanceOf(ctx, "bob", 9)
	if err != nil {
		t.Fatalf("balance of failed: %v", err)
	}
	if held != 5 {
		t.Fatalf("bob balance = %d, want 5", held)
	}
	held, err = registry.BalanceOf(ctx, "alice", 9)
	if err != nil {
		t.Fatalf("balance of failed: %v", err)
	}
	if held != 0 {
		t.Fatalf("alice balance = %d, want 0", held)
	}
}

func TestRegistryApprovalDefaultsToFalse(t *testing.T) {
	registry := NewRegistry()
	ctx := context.Background()

	approved, err := registry.IsApprovedForAll(ctx, "alice", "engine")
	if err != nil {
		t.Fatalf("approval probe failed: %v", err)
	}
	if approved {
		t.Fatalf("approval must default to false")
	}

	registry.SetApprovalForAll("alice", "engine", true)
	approved, err = registry.IsApprovedForAll(ctx, "alice", "engine")
	if err != nil {
		t.Fatalf("approval probe failed: %v", err)
	}
	if !approved {
		t.Fatalf("granted approval must read back true")
	}

	registry.SetApprovalForAll("alice", "engine", false)
	approved, err = registry.IsApprovedForAll(ctx, "alice", "engine")
	if err != nil {
		t.Fatalf("approval probe failed: %v", err)
	}
	if approved {
		t.Fatalf("revoked approval must read back false")
	}
}

func TestResolverUnknownRegistry(t *testing.T) {
	resolver := NewResolver()
	if _, err := resolver.Resolve(context.Background(), "ghost"); !errors.Is(err, domainerrors.ErrRegistryNotFound) {
		t.Fatalf("expected registry not found error, got %v", err)
	}

	registry := NewRegistry()
	resolver.Register("main", registry)
	got, err := resolver.Resolve(context.Background(), " main ")
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if got != registry {
		t.Fatalf("resolver returned a different registry")
	}
}
