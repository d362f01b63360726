package storage

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// KV is a string-keyed store of whole values. Collections are read whole and
// written whole; there are no partial updates at this boundary.
type KV interface {
	Get(ctx context.Context, key string) (value []byte, found bool, err error)
	Put(ctx context.Context, key string, value []byte) error
}

type kvEntry struct {
	Key       string `gorm:"column:entry_key;primaryKey"`
	Value     string `gorm:"not null"`
	UpdatedAt time.Time
}

func (kvEntry) TableName() string {
	return "kv_entries"
}

type SQLiteKV struct {
	database *gorm.DB
}

func NewSQLiteKV(database *gorm.DB) *SQLiteKV {
	return &SQLiteKV{database: database}
}

func (kv *SQLiteKV) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var entry kvEntry
	result := kv.database.WithContext(ctx).Where("entry_key = ?", key).Limit(1).Find(&entry)
	if result.Error != nil {
		return nil, false, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, false, nil
	}
	return []byte(entry.Value), true, nil
}

func (kv *SQLiteKV) Put(ctx context.Context, key string, value []byte) error {
	entry := kvEntry{Key: key, Value: string(value)}
	return kv.database.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&entry).Error
}
