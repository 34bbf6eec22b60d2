package unit

import (
	"context"
	"errors"
	"testing"
	"time"

	distributionengine "croesus/contexts/asset-operations/distribution-engine"
	distributionmemory "croesus/contexts/asset-operations/distribution-engine/adapters/memory"
	domainerrors "croesus/contexts/asset-operations/distribution-engine/domain/errors"
	distributionports "croesus/contexts/asset-operations/distribution-engine/ports"
	httptransport "croesus/contexts/asset-operations/distribution-engine/transport/http"
)

type capturingDistributionPublisher struct {
	events []distributionports.EventEnvelope
}

func (p *capturingDistributionPublisher) Publish(_ context.Context, _ string, event distributionports.EventEnvelope) error {
	p.events = append(p.events, event)
	return nil
}

type staticClock struct{}

func (staticClock) Now() time.Time {
	return time.Date(2026, time.July, 4, 12, 0, 0, 0, time.UTC)
}

func newDistributionModule(publisher *capturingDistributionPublisher) (distributionengine.Module, *distributionmemory.Registry) {
	module := distributionengine.NewInMemoryModule(
		publisher,
		staticClock{},
		&seqIDGen{},
		"operator",
		"engine",
		nil,
	)
	registry := distributionmemory.NewRegistry()
	module.Resolver.Register("main", registry)
	return module, registry
}

func TestDistributionAuthorizationFlow(t *testing.T) {
	ctx := context.Background()
	publisher := &capturingDistributionPublisher{}
	module, registry := newDistributionModule(publisher)

	for assetID := uint64(0); assetID < 4; assetID++ {
		registry.MintAsset(assetID, "operator")
	}

	probe, err := module.Handler.AuthorizationHandler(ctx, "main")
	if err != nil {
		t.Fatalf("authorization probe failed: %v", err)
	}
	if probe.Data.Authorized {
		t.Fatalf("probe must report unauthorized before approval")
	}

	req := httptransport.DistributeUniqueRequest{
		RegistryID: "main",
		Recipients: []string{"r0", "r1", "r2", "r3"},
		AssetIDs:   []uint64{0, 1, 2, 3},
	}
	if _, err := module.Handler.DistributeUniqueHandler(ctx, "operator", req); !errors.Is(err, domainerrors.ErrUnauthorized) {
		t.Fatalf("expected unauthorized distribution, got %v", err)
	}

	registry.SetApprovalForAll("operator", "engine", true)

	probe, err = module.Handler.AuthorizationHandler(ctx, "main")
	if err != nil {
		t.Fatalf("authorization probe failed: %v", err)
	}
	if !probe.Data.Authorized {
		t.Fatalf("probe must report authorized after approval")
	}

	resp, err := module.Handler.DistributeUniqueHandler(ctx, "operator", req)
	if err != nil {
		t.Fatalf("distribution failed: %v", err)
	}
	if resp.Data.Recipients != 4 {
		t.Fatalf("recipients = %d, want 4", resp.Data.Recipients)
	}

	owner, err := registry.OwnerOf(ctx, 3)
	if err != nil {
		t.Fatalf("owner of failed: %v", err)
	}
	if owner != "r3" {
		t.Fatalf("asset 3 owner = %q, want r3", owner)
	}
	if len(publisher.events) != 1 {
		t.Fatalf("events = %d, want exactly one completion event", len(publisher.events))
	}
}

func TestDistributionEditionsThroughHandler(t *testing.T) {
	ctx := context.Background()
	publisher := &capturingDistributionPublisher{}
	module, registry := newDistributionModule(publisher)

	registry.MintUnits(42, "operator", 100)
	registry.SetApprovalForAll("operator", "engine", true)

	resp, err := module.Handler.DistributeEditionsHandler(ctx, "operator", httptransport.DistributeEditionsRequest{
		RegistryID: "main",
		Recipients: []string{"fan-1", "fan-2", "fan-3"},
		AssetIDs:   []uint64{42, 42, 42},
		Quantities: []uint64{10, 20, 30},
	})
	if err != nil {
		t.Fatalf("editions distribution failed: %v", err)
	}
	if resp.Data.Mode != "id_quantity" {
		t.Fatalf("mode = %q, want id_quantity", resp.Data.Mode)
	}

	held, err := registry.BalanceOf(ctx, "operator", 42)
	if err != nil {
		t.Fatalf("balance of failed: %v", err)
	}
	if held != 40 {
		t.Fatalf("operator balance = %d, want 40", held)
	}
}

func TestDistributionBatchIsAllOrNothing(t *testing.T) {
	ctx := context.Background()
	publisher := &capturingDistributionPublisher{}
	module, registry := newDistributionModule(publisher)

	registry.MintAsset(0, "operator")
	registry.MintAsset(1, "stranger")
	registry.SetApprovalForAll("operator", "engine", true)

	_, err := module.Handler.DistributeUniqueHandler(ctx, "operator", httptransport.DistributeUniqueRequest{
		RegistryID: "main",
		Recipients: []string{"r0", "r1"},
		AssetIDs:   []uint64{0, 1},
	})
	if !errors.Is(err, domainerrors.ErrTransferFailed) {
		t.Fatalf("expected transfer failed error, got %v", err)
	}

	owner, err := registry.OwnerOf(ctx, 0)
	if err != nil {
		t.Fatalf("owner of failed: %v", err)
	}
	if owner != "operator" {
		t.Fatalf("asset 0 owner = %q, want operator untouched", owner)
	}
	if len(publisher.events) != 0 {
		t.Fatalf("failed batch must not publish events")
	}
}
