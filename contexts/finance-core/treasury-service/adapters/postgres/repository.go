package postgresadapter

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"croesus/contexts/finance-core/treasury-service/ports"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Money columns are NUMERIC scanned through shopspring/decimal so repeated
// credits never accumulate float drift at rest.
const singletonRowID = "treasury"

type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{
		db:     db,
		logger: logger,
	}
}

func (r *Repository) GetFeeConfig(ctx context.Context) (ports.FeeConfig, error) {
	var row feeConfigModel
	err := r.db.WithContext(ctx).
		Where("id = ?", singletonRowID).
		First(&row).
		Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ports.FeeConfig{}, nil
	}
	if err != nil {
		return ports.FeeConfig{}, r.logError("treasury_repo_get_fee_config_failed", err)
	}
	return row.toEntity()
}

func (r *Repository) PutFeeConfig(ctx context.Context, config ports.FeeConfig) error {
	row, err := feeConfigModelFromEntity(config)
	if err != nil {
		return err
	}
	err = r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).
		Create(&row).
		Error
	if err != nil {
		return r.logError("treasury_repo_put_fee_config_failed", err)
	}
	return nil
}

func (r *Repository) GetCounters(ctx context.Context) (ports.Counters, error) {
	var row countersModel
	err := r.db.WithContext(ctx).
		Where("id = ?", singletonRowID).
		First(&row).
		Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ports.Counters{}, nil
	}
	if err != nil {
		return ports.Counters{}, r.logError("treasury_repo_get_counters_failed", err)
	}
	return row.toEntity(), nil
}

func (r *Repository) PutCounters(ctx context.Context, counters ports.Counters) error {
	row := countersModelFromEntity(counters)
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).
		Create(&row).
		Error
	if err != nil {
		return r.logError("treasury_repo_put_counters_failed", err)
	}
	return nil
}

func (r *Repository) AppendOutbox(ctx context.Context, record ports.OutboxRecord) error {
	row := outboxModelFromRecord(record)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return r.logError("treasury_repo_append_outbox_failed", err,
			"outbox_id", record.OutboxID,
			"event_type", record.EventType,
		)
	}
	return nil
}

func (r *Repository) ListPendingOutbox(ctx context.Context, limit int) ([]ports.OutboxRecord, error) {
	if limit <= 0 {
		limit = 100
	}
	var rows []treasuryOutboxModel
	err := r.db.WithContext(ctx).
		Where("published_at IS NULL").
		Order("created_at asc").
		Limit(limit).
		Find(&rows).
		Error
	if err != nil {
		return nil, r.logError("treasury_repo_list_pending_outbox_failed", err)
	}
	records := make([]ports.OutboxRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, row.toRecord())
	}
	return records, nil
}

func (r *Repository) MarkOutboxPublished(ctx context.Context, outboxID string, publishedAt time.Time) error {
	err := r.db.WithContext(ctx).
		Model(&treasuryOutboxModel{}).
		Where("id = ?", outboxID).
		Update("published_at", publishedAt.UTC()).
		Error
	if err != nil {
		return r.logError("treasury_repo_mark_outbox_published_failed", err,
			"outbox_id", outboxID,
		)
	}
	return nil
}

func (r *Repository) logError(event string, err error, args ...any) error {
	fields := append([]any{
		"event", event,
		"module", "finance-core/treasury-service",
		"layer", "adapter/postgres",
		"error", err.Error(),
	}, args...)
	r.logger.Error("treasury repository operation failed", fields...)
	return err
}

type feeConfigModel struct {
	ID             string          `gorm:"column:id;primaryKey"`
	TransactionFee decimal.Decimal `gorm:"column:transaction_fee;type:numeric"`
	Tiers          []byte          `gorm:"column:subscription_tiers;type:jsonb"`
	UpdatedAt      time.Time       `gorm:"column:updated_at"`
}

func (feeConfigModel) TableName() string {
	return "treasury_fee_config"
}

func (m feeConfigModel) toEntity() (ports.FeeConfig, error) {
	var tiers []float64
	if len(m.Tiers) > 0 {
		if err := json.Unmarshal(m.Tiers, &tiers); err != nil {
			return ports.FeeConfig{}, err
		}
	}
	return ports.FeeConfig{
		TransactionFee:    m.TransactionFee.InexactFloat64(),
		SubscriptionTiers: tiers,
		UpdatedAt:         m.UpdatedAt,
	}, nil
}

func feeConfigModelFromEntity(config ports.FeeConfig) (feeConfigModel, error) {
	tiers, err := json.Marshal(config.SubscriptionTiers)
	if err != nil {
		return feeConfigModel{}, err
	}
	return feeConfigModel{
		ID:             singletonRowID,
		TransactionFee: decimal.NewFromFloat(config.TransactionFee),
		Tiers:          tiers,
		UpdatedAt:      config.UpdatedAt.UTC(),
	}, nil
}

type countersModel struct {
	ID                 string          `gorm:"column:id;primaryKey"`
	CumulativeReceived decimal.Decimal `gorm:"column:cumulative_received;type:numeric"`
	Balance            decimal.Decimal `gorm:"column:balance;type:numeric"`
	UpdatedAt          time.Time       `gorm:"column:updated_at"`
}

func (countersModel) TableName() string {
	return "treasury_counters"
}

func (m countersModel) toEntity() ports.Counters {
	return ports.Counters{
		CumulativeReceived: m.CumulativeReceived.InexactFloat64(),
		Balance:            m.Balance.InexactFloat64(),
		UpdatedAt:          m.UpdatedAt,
	}
}

func countersModelFromEntity(counters ports.Counters) countersModel {
	return countersModel{
		ID:                 singletonRowID,
		CumulativeReceived: decimal.NewFromFloat(counters.CumulativeReceived),
		Balance:            decimal.NewFromFloat(counters.Balance),
		UpdatedAt:          counters.UpdatedAt.UTC(),
	}
}

type treasuryOutboxModel struct {
	ID          string     `gorm:"column:id;primaryKey"`
	EventType   string     `gorm:"column:event_type"`
	EntityID    string     `gorm:"column:entity_id"`
	Payload     []byte     `gorm:"column:payload;type:jsonb"`
	CreatedAt   time.Time  `gorm:"column:created_at"`
	PublishedAt *time.Time `gorm:"column:published_at"`
}

func (treasuryOutboxModel) TableName() string {
	return "treasury_outbox"
}

func (m treasuryOutboxModel) toRecord() ports.OutboxRecord {
	return ports.OutboxRecord{
		OutboxID:    m.ID,
		EventType:   m.EventType,
		EntityID:    m.EntityID,
		Payload:     m.Payload,
		CreatedAt:   m.CreatedAt,
		PublishedAt: m.PublishedAt,
	}
}

func outboxModelFromRecord(record ports.OutboxRecord) treasuryOutboxModel {
	return treasuryOutboxModel{
		ID:          record.OutboxID,
		EventType:   record.EventType,
		EntityID:    record.EntityID,
		Payload:     record.Payload,
		CreatedAt:   record.CreatedAt.UTC(),
		PublishedAt: record.PublishedAt,
	}
}

var _ ports.Repository = (*Repository)(nil)
var _ ports.OutboxStore = (*Repository)(nil)
