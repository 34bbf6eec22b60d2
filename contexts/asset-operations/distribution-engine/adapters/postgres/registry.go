package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	domainerrors "croesus/contexts/asset-operations/distribution-engine/domain/errors"
	"croesus/contexts/asset-operations/distribution-engine/ports"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Registry is a postgres-backed asset registry. Each instance is bound to one
// registry identifier; transfers run inside a database transaction with the
// source row locked, so a failed transfer leaves nothing behind.
type Registry struct {
	db         *gorm.DB
	registryID string
	logger     *slog.Logger
}

func NewRegistry(db *gorm.DB, registryID string, logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{
		db:         db,
		registryID: strings.TrimSpace(registryID),
		logger:     logger,
	}
}

func (r *Registry) IsApprovedForAll(ctx context.Context, holder string, operator string) (bool, error) {
	var row registryApprovalModel
	err := r.db.WithContext(ctx).
		Where("registry_id = ? AND holder = ? AND grantee = ?", r.registryID, holder, operator).
		First(&row).
		Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, r.logError("registry_approval_lookup_failed", err, "holder", holder)
	}
	return row.Approved, nil
}

func (r *Registry) OwnerOf(ctx context.Context, assetID uint64) (string, error) {
	var row registryAssetModel
	err := r.db.WithContext(ctx).
		Where("registry_id = ? AND asset_id = ?", r.registryID, assetID).
		First(&row).
		Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", domainerrors.ErrAssetNotFound
	}
	if err != nil {
		return "", r.logError("registry_owner_lookup_failed", err, "asset_id", assetID)
	}
	return row.Owner, nil
}

func (r *Registry) BalanceOf(ctx context.Context, holder string, assetID uint64) (uint64, error) {
	var row registryUnitsModel
	err := r.db.WithContext(ctx).
		Where("registry_id = ? AND asset_id = ? AND holder = ?", r.registryID, assetID, holder).
		First(&row).
		Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, r.logError("registry_balance_lookup_failed", err, "asset_id", assetID, "holder", holder)
	}
	return row.Units, nil
}

func (r *Registry) TransferAsset(ctx context.Context, from string, to string, assetID uint64) error {
	if strings.TrimSpace(to) == "" {
		return domainerrors.ErrInvalidRequest
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row registryAssetModel
		err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("registry_id = ? AND asset_id = ?", r.registryID, assetID).
			First(&row).
			Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domainerrors.ErrAssetNotFound
		}
		if err != nil {
			return err
		}
		if row.Owner != from {
			return domainerrors.ErrNotAssetOwner
		}
		return tx.
			Model(&registryAssetModel{}).
			Where("registry_id = ? AND asset_id = ?", r.registryID, assetID).
			Update("owner", to).
			Error
	})
}

func (r *Registry) TransferUnits(ctx context.Context, from string, to string, assetID uint64, quantity uint64) error {
	if strings.TrimSpace(to) == "" || quantity == 0 {
		return domainerrors.ErrInvalidRequest
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var source registryUnitsModel
		err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("registry_id = ? AND asset_id = ? AND holder = ?", r.registryID, assetID, from).
			First(&source).
			Error
		if errors.Is(err, gorm.ErrRecordNotFound) || (err == nil && source.Units < quantity) {
			return domainerrors.ErrInsufficientUnits
		}
		if err != nil {
			return err
		}

		if err := tx.
			Model(&registryUnitsModel{}).
			Where("registry_id = ? AND asset_id = ? AND holder = ?", r.registryID, assetID, from).
			Update("units", gorm.Expr("units - ?", quantity)).
			Error; err != nil {
			return err
		}

		destination := registryUnitsModel{
			RegistryID: r.registryID,
			AssetID:    assetID,
			Holder:     to,
			Units:      quantity,
		}
		return tx.
			Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "registry_id"}, {Name: "asset_id"}, {Name: "holder"}},
				DoUpdates: clause.Assignments(map[string]any{"units": gorm.Expr("registry_units.units + ?", quantity)}),
			}).
			Create(&destination).
			Error
	})
}

func (r *Registry) logError(event string, err error, args ...any) error {
	fields := append([]any{
		"event", event,
		"module", "asset-operations/distribution-engine",
		"layer", "adapter/postgres",
		"registry_id", r.registryID,
		"error", err.Error(),
	}, args...)
	r.logger.Error("registry operation failed", fields...)
	return err
}

type registryAssetModel struct {
	RegistryID string `gorm:"column:registry_id;primaryKey"`
	AssetID    uint64 `gorm:"column:asset_id;primaryKey"`
	Owner      string `gorm:"column:owner"`
}

func (registryAssetModel) TableName() string {
	return "registry_assets"
}

type registryUnitsModel struct {
	RegistryID string `gorm:"column:registry_id;primaryKey"`
	AssetID    uint64 `gorm:"column:asset_id;primaryKey"`
	Holder     string `gorm:"column:holder;primaryKey"`
	Units      uint64 `gorm:"column:units"`
}

func (registryUnitsModel) TableName() string {
	return "registry_units"
}

type registryApprovalModel struct {
	RegistryID string `gorm:"column:registry_id;primaryKey"`
	Holder     string `gorm:"column:holder;primaryKey"`
	Grantee    string `gorm:"column:grantee;primaryKey"`
	Approved   bool   `gorm:"column:approved"`
}

func (registryApprovalModel) TableName() string {
	return "registry_approvals"
}

var _ ports.AssetRegistry = (*Registry)(nil)
