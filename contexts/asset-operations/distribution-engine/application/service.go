package application

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	domainerrors "croesus/contexts/asset-operations/distribution-engine/domain/errors"
	"croesus/contexts/asset-operations/distribution-engine/ports"
)

const (
	EventDistributionCompleted = "distribution.completed"

	distributionTopic = "distribution.events"

	ModeUniqueAsset = "unique_asset"
	ModeIDQuantity  = "id_quantity"
)

type Service struct {
	Registries ports.RegistryResolver
	Publisher  ports.EventPublisher
	Clock      ports.Clock
	IDGen      ports.IDGenerator
	// Operator is the account whose holdings are distributed; Engine is the
	// account registries are asked about when probing transfer authorization.
	Operator string
	Engine   string
	Logger   *slog.Logger
}

type distributionCompletedPayload struct {
	Operator      string    `json:"operator"`
	RegistryID    string    `json:"registry_id"`
	Mode          string    `json:"mode"`
	Recipients    int       `json:"recipients"`
	OccurredAtUTC time.Time `json:"occurred_at_utc"`
}

// DistributeUnique transfers assetIDs[i] to recipients[i] for every index.
// The batch is all-or-nothing: validation covers every index before the first
// transfer, and an apply failure unwinds whatever already moved.
func (s Service) DistributeUnique(
	ctx context.Context,
	callerID string,
	registryID string,
	recipients []string,
	assetIDs []uint64,
) error {
	if err := s.requireOperator(callerID); err != nil {
		return err
	}
	if len(recipients) != len(assetIDs) {
		return domainerrors.ErrLengthMismatch
	}
	if len(recipients) == 0 {
		return domainerrors.ErrInvalidRequest
	}

	registry, err := s.authorizedRegistry(ctx, registryID)
	if err != nil {
		return err
	}

	// Validate phase: every index checked before anything moves.
	seen := make(map[uint64]struct{}, len(assetIDs))
	for i := range recipients {
		if strings.TrimSpace(recipients[i]) == "" {
			return fmt.Errorf("%w: empty recipient at index %d", domainerrors.ErrTransferFailed, i)
		}
		if _, dup := seen[assetIDs[i]]; dup {
			return fmt.Errorf("%w: asset %d listed twice", domainerrors.ErrTransferFailed, assetIDs[i])
		}
		seen[assetIDs[i]] = struct{}{}
		owner, err := registry.OwnerOf(ctx, assetIDs[i])
		if err != nil {
			return fmt.Errorf("%w: asset %d: %v", domainerrors.ErrTransferFailed, assetIDs[i], err)
		}
		if owner != s.Operator {
			return fmt.Errorf("%w: asset %d is not held by the operator", domainerrors.ErrTransferFailed, assetIDs[i])
		}
	}

	// Apply phase: list order. Validation makes failure here a registry
	// contract violation; compensate and surface it anyway.
	for i := range recipients {
		if err := registry.TransferAsset(ctx, s.Operator, recipients[i], assetIDs[i]); err != nil {
			s.unwindUnique(ctx, registry, recipients, assetIDs, i)
			return fmt.Errorf("%w: index %d: %v", domainerrors.ErrTransferFailed, i, err)
		}
	}

	return s.publishCompleted(ctx, registryID, ModeUniqueAsset, len(recipients))
}

// DistributeEditions transfers quantities[i] units of assetIDs[i] to
// recipients[i] for every index, with the same atomicity contract as
// DistributeUnique.
func (s Service) DistributeEditions(
	ctx context.Context,
	callerID string,
	registryID string,
	recipients []string,
	assetIDs []uint64,
	quantities []uint64,
) error {
	if err := s.requireOperator(callerID); err != nil {
		return err
	}
	if len(recipients) != len(assetIDs) || len(recipients) != len(quantities) {
		return domainerrors.ErrLengthMismatch
	}
	if len(recipients) == 0 {
		return domainerrors.ErrInvalidRequest
	}

	registry, err := s.authorizedRegistry(ctx, registryID)
	if err != nil {
		return err
	}

	required := make(map[uint64]uint64, len(assetIDs))
	for i := range recipients {
		if strings.TrimSpace(recipients[i]) == "" {
			return fmt.Errorf("%w: empty recipient at index %d", domainerrors.ErrTransferFailed, i)
		}
		if quantities[i] == 0 {
			return fmt.Errorf("%w: zero quantity at index %d", domainerrors.ErrInvalidRequest, i)
		}
		required[assetIDs[i]] += quantities[i]
	}
	for assetID, units := range required {
		held, err := registry.BalanceOf(ctx, s.Operator, assetID)
		if err != nil {
			return fmt.Errorf("%w: asset %d: %v", domainerrors.ErrTransferFailed, assetID, err)
		}
		if held < units {
			return fmt.Errorf("%w: asset %d needs %d units, operator holds %d",
				domainerrors.ErrTransferFailed, assetID, units, held)
		}
	}

	for i := range recipients {
		if err := registry.TransferUnits(ctx, s.Operator, recipients[i], assetIDs[i], quantities[i]); err != nil {
			s.unwindEditions(ctx, registry, recipients, assetIDs, quantities, i)
			return fmt.Errorf("%w: index %d: %v", domainerrors.ErrTransferFailed, i, err)
		}
	}

	return s.publishCompleted(ctx, registryID, ModeIDQuantity, len(recipients))
}

// IsAuthorized reports whether the engine currently holds transfer
// authorization on the registry on behalf of the operator. Pure delegation.
func (s Service) IsAuthorized(ctx context.Context, registryID string) (bool, error) {
	registry, err := s.Registries.Resolve(ctx, strings.TrimSpace(registryID))
	if err != nil {
		return false, err
	}
	return registry.IsApprovedForAll(ctx, s.Operator, s.Engine)
}

func (s Service) authorizedRegistry(ctx context.Context, registryID string) (ports.AssetRegistry, error) {
	registry, err := s.Registries.Resolve(ctx, strings.TrimSpace(registryID))
	if err != nil {
		return nil, err
	}
	approved, err := registry.IsApprovedForAll(ctx, s.Operator, s.Engine)
	if err != nil {
		return nil, err
	}
	if !approved {
		return nil, domainerrors.ErrUnauthorized
	}
	return registry, nil
}

func (s Service) unwindUnique(
	ctx context.Context,
	registry ports.AssetRegistry,
	recipients []string,
	assetIDs []uint64,
	applied int,
) {
	logger := ResolveLogger(s.Logger)
	for i := applied - 1; i >= 0; i-- {
		if err := registry.TransferAsset(ctx, recipients[i], s.Operator, assetIDs[i]); err != nil {
			logger.Error("distribution unwind transfer failed",
				"event", "distribution_unwind_failed",
				"module", "asset-operations/distribution-engine",
				"layer", "application",
				"index", i,
				"asset_id", assetIDs[i],
				"error", err.Error(),
			)
		}
	}
}

func (s Service) unwindEditions(
	ctx context.Context,
	registry ports.AssetRegistry,
	recipients []string,
	assetIDs []uint64,
	quantities []uint64,
	applied int,
) {
	logger := ResolveLogger(s.Logger)
	for i := applied - 1; i >= 0; i-- {
		if err := registry.TransferUnits(ctx, recipients[i], s.Operator, assetIDs[i], quantities[i]); err != nil {
			logger.Error("distribution unwind transfer failed",
				"event", "distribution_unwind_failed",
				"module", "asset-operations/distribution-engine",
				"layer", "application",
				"index", i,
				"asset_id", assetIDs[i],
				"error", err.Error(),
			)
		}
	}
}

func (s Service) publishCompleted(ctx context.Context, registryID string, mode string, recipients int) error {
	now := s.now()
	eventID, err := s.IDGen.NewID(ctx)
	if err != nil {
		return err
	}
	payload, err := json.Marshal(distributionCompletedPayload{
		Operator:      s.Operator,
		RegistryID:    registryID,
		Mode:          mode,
		Recipients:    recipients,
		OccurredAtUTC: now.UTC(),
	})
	if err != nil {
		return err
	}
	if err := s.Publisher.Publish(ctx, distributionTopic, ports.EventEnvelope{
		EventID:    eventID,
		EventType:  EventDistributionCompleted,
		EntityID:   registryID,
		OccurredAt: now,
		Payload:    payload,
	}); err != nil {
		return err
	}

	ResolveLogger(s.Logger).Info("distribution completed",
		"event", "distribution_completed",
		"module", "asset-operations/distribution-engine",
		"layer", "application",
		"registry_id", registryID,
		"mode", mode,
		"recipients", recipients,
	)
	return nil
}

func (s Service) requireOperator(callerID string) error {
	if strings.TrimSpace(callerID) == "" || callerID != s.Operator {
		return domainerrors.ErrUnauthorized
	}
	return nil
}

func (s Service) now() time.Time {
	if s.Clock == nil {
		return time.Now().UTC()
	}
	return s.Clock.Now().UTC()
}
