package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"croesus/contexts/membership-registry/subscriber-ledger/ports"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

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

func (r *Repository) GetSubscriber(ctx context.Context, account string) (ports.Subscriber, bool, error) {
	var row subscriberModel
	err := r.db.WithContext(ctx).
		Where("account = ?", strings.TrimSpace(account)).
		First(&row).
		Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ports.Subscriber{}, false, nil
	}
	if err != nil {
		return ports.Subscriber{}, false, r.logError("ledger_repo_get_subscriber_failed", err,
			"account", account,
		)
	}
	return row.toEntity(), true, nil
}

func (r *Repository) PutSubscriber(ctx context.Context, record ports.Subscriber) error {
	row := subscriberModelFromEntity(record)
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "account"}},
			UpdateAll: true,
		}).
		Create(&row).
		Error
	if err != nil {
		if isUniqueViolation(err) {
			// Concurrent writer won the insert race; retry as a plain update.
			return r.db.WithContext(ctx).
				Model(&subscriberModel{}).
				Where("account = ?", row.Account).
				Updates(map[string]any{
					"subscribed": row.Subscribed,
					"until_utc":  row.Until,
					"updated_at": row.UpdatedAt,
				}).
				Error
		}
		return r.logError("ledger_repo_put_subscriber_failed", err,
			"account", record.Account,
		)
	}
	return nil
}

func (r *Repository) ListAccounts(ctx context.Context) ([]string, error) {
	var accounts []string
	err := r.db.WithContext(ctx).
		Model(&subscriberModel{}).
		Order("account asc").
		Pluck("account", &accounts).
		Error
	if err != nil {
		return nil, r.logError("ledger_repo_list_accounts_failed", err)
	}
	return accounts, nil
}

func (r *Repository) AppendOutbox(ctx context.Context, record ports.OutboxRecord) error {
	row := outboxModelFromRecord(record)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return r.logError("ledger_repo_append_outbox_failed", err,
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
	var rows []ledgerOutboxModel
	err := r.db.WithContext(ctx).
		Where("published_at IS NULL").
		Order("created_at asc").
		Limit(limit).
		Find(&rows).
		Error
	if err != nil {
		return nil, r.logError("ledger_repo_list_pending_outbox_failed", err)
	}
	records := make([]ports.OutboxRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, row.toRecord())
	}
	return records, nil
}

func (r *Repository) MarkOutboxPublished(ctx context.Context, outboxID string, publishedAt time.Time) error {
	err := r.db.WithContext(ctx).
		Model(&ledgerOutboxModel{}).
		Where("id = ?", outboxID).
		Update("published_at", publishedAt.UTC()).
		Error
	if err != nil {
		return r.logError("ledger_repo_mark_outbox_published_failed", err,
			"outbox_id", outboxID,
		)
	}
	return nil
}

func (r *Repository) logError(event string, err error, args ...any) error {
	fields := append([]any{
		"event", event,
		"module", "membership-registry/subscriber-ledger",
		"layer", "adapter/postgres",
		"error", err.Error(),
	}, args...)
	r.logger.Error("ledger repository operation failed", fields...)
	return err
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

var _ ports.Repository = (*Repository)(nil)
var _ ports.OutboxStore = (*Repository)(nil)
