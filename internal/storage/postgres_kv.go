package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type KVEntry struct {
	Key       string    `gorm:"type:varchar(128);primaryKey"`
	Value     string    `gorm:"type:jsonb;not null"`
	UpdatedAt time.Time
}

func (KVEntry) TableName() string {
	return "kv_entries"
}

type PostgresKV struct {
	db *gorm.DB
}

func NewPostgresKV(db *gorm.DB) *PostgresKV {
	return &PostgresKV{db: db}
}

// Migrate creates the table and seeds empty rows for keys so the first
// concurrent Update calls have a row to lock.
func (p *PostgresKV) Migrate(ctx context.Context, keys map[string]string) error {
	db := p.db.WithContext(ctx)
	if err := db.AutoMigrate(&KVEntry{}); err != nil {
		return fmt.Errorf("migrate kv_entries: %w", err)
	}
	for key, empty := range keys {
		entry := KVEntry{Key: key, Value: empty, UpdatedAt: time.Now()}
		if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&entry).Error; err != nil {
			return fmt.Errorf("seed key %s: %w", key, err)
		}
	}
	return nil
}

func (p *PostgresKV) Get(ctx context.Context, key string) ([]byte, error) {
	var entry KVEntry
	err := p.db.WithContext(ctx).First(&entry, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return []byte(entry.Value), nil
}

func (p *PostgresKV) Update(ctx context.Context, key string, fn UpdateFunc) error {
	return p.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var entry KVEntry
		var current []byte

		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&entry, "key = ?", key).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
		case err != nil:
			return err
		default:
			current = []byte(entry.Value)
		}

		next, err := fn(current)
		if err != nil {
			return err
		}

		entry = KVEntry{Key: key, Value: string(next), UpdatedAt: time.Now()}
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).Create(&entry).Error
	})
}

func (p *PostgresKV) Ping(ctx context.Context) error {
	sqlDB, err := p.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (p *PostgresKV) Close() error {
	sqlDB, err := p.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
