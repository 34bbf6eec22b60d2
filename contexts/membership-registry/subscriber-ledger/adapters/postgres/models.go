package postgresadapter

import (
	"time"

	"croesus/contexts/membership-registry/subscriber-ledger/ports"
)

type subscriberModel struct {
	Account    string    `gorm:"column:account;primaryKey"`
	Subscribed bool      `gorm:"column:subscribed"`
	Until      time.Time `gorm:"column:until_utc"`
	UpdatedAt  time.Time `gorm:"column:updated_at"`
}

func (subscriberModel) TableName() string {
	return "membership_subscribers"
}

func (m subscriberModel) toEntity() ports.Subscriber {
	return ports.Subscriber{
		Account:    m.Account,
		Subscribed: m.Subscribed,
		Until:      m.Until,
		UpdatedAt:  m.UpdatedAt,
	}
}

func subscriberModelFromEntity(record ports.Subscriber) subscriberModel {
	return subscriberModel{
		Account:    record.Account,
		Subscribed: record.Subscribed,
		Until:      record.Until.UTC(),
		UpdatedAt:  record.UpdatedAt.UTC(),
	}
}

type ledgerOutboxModel struct {
	ID          string     `gorm:"column:id;primaryKey"`
	EventType   string     `gorm:"column:event_type"`
	EntityID    string     `gorm:"column:entity_id"`
	Payload     []byte     `gorm:"column:payload;type:jsonb"`
	CreatedAt   time.Time  `gorm:"column:created_at"`
	PublishedAt *time.Time `gorm:"column:published_at"`
}

func (ledgerOutboxModel) TableName() string {
	return "membership_outbox"
}

func (m ledgerOutboxModel) toRecord() ports.OutboxRecord {
	return ports.OutboxRecord{
		OutboxID:    m.ID,
		EventType:   m.EventType,
		EntityID:    m.EntityID,
		Payload:     m.Payload,
		CreatedAt:   m.CreatedAt,
		PublishedAt: m.PublishedAt,
	}
}

func outboxModelFromRecord(record ports.OutboxRecord) ledgerOutboxModel {
	return ledgerOutboxModel{
		ID:          record.OutboxID,
		EventType:   record.EventType,
		EntityID:    record.EntityID,
		Payload:     record.Payload,
		CreatedAt:   record.CreatedAt.UTC(),
		PublishedAt: record.PublishedAt,
	}
}
