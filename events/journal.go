package events

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	limitorderdomain "github.com/osmosis-labs/limitswap/domain/limitorder"
	"github.com/osmosis-labs/limitswap/json"
)

// eventRecord is the journal row of one event.
type eventRecord struct {
	ID      uint64 `gorm:"primaryKey;autoIncrement"`
	OrderID uint64 `gorm:"index;not null"`
	Height  uint64 `gorm:"index;not null"`
	Type    string `gorm:"size:32;not null"`
	Payload []byte `gorm:"not null"`
}

func (eventRecord) TableName() string {
	return "order_events"
}

// Journal persists events to sqlite and serves them back per order.
type Journal struct {
	db *gorm.DB
}

var _ limitorderdomain.EventJournal = &Journal{}

// NewJournal opens or creates the sqlite journal at path. ":memory:" keeps it in memory.
func NewJournal(path string) (*Journal, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create journal directory: %w", err)
		}
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open journal: %w", err)
	}

	if path == ":memory:" {
		// every connection of an in-memory database sees its own empty database
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
	}

	if err := db.AutoMigrate(&eventRecord{}); err != nil {
		return nil, fmt.Errorf("failed to migrate journal: %w", err)
	}

	return &Journal{db: db}, nil
}

// Publish implements limitorderdomain.EventPublisher. The batch is written atomically.
func (j *Journal) Publish(ctx context.Context, events []limitorderdomain.Event) error {
	if len(events) == 0 {
		return nil
	}

	records := make([]eventRecord, 0, len(events))
	for _, event := range events {
		payload, err := json.Marshal(event)
		if err != nil {
			return err
		}

		records = append(records, eventRecord{
			OrderID: event.OrderID,
			Height:  event.Height,
			Type:    string(event.Type),
			Payload: payload,
		})
	}

	return j.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&records).Error
	})
}

// EventsByOrder implements limitorderdomain.EventJournal.
func (j *Journal) EventsByOrder(ctx context.Context, orderID uint64) ([]limitorderdomain.Event, error) {
	var records []eventRecord
	if err := j.db.WithContext(ctx).Where("order_id = ?", orderID).Order("id").Find(&records).Error; err != nil {
		return nil, err
	}

	events := make([]limitorderdomain.Event, 0, len(records))
	for _, record := range records {
		var event limitorderdomain.Event
		if err := json.Unmarshal(record.Payload, &event); err != nil {
			return nil, fmt.Errorf("failed to decode journal record %d: %w", record.ID, err)
		}
		events = append(events, event)
	}

	return events, nil
}

// Close implements limitorderdomain.EventPublisher.
func (j *Journal) Close() error {
	sqlDB, err := j.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
