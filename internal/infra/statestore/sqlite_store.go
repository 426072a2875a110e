package statestore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yanqian/desi-diet/internal/domain/state"
)

// StateBlob is the gorm model backing SQLiteStore.
type StateBlob struct {
	Key       string `gorm:"column:state_key;primaryKey"`
	Version   int64  `gorm:"not null"`
	Data      []byte `gorm:"not null"`
	UpdatedAt time.Time
}

// SQLiteStore implements state.Store on an embedded database through gorm.
type SQLiteStore struct {
	db *gorm.DB
}

// NewSQLiteStore constructs the store. The StateBlob table must be migrated.
func NewSQLiteStore(db *gorm.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// Load fetches the record under key.
func (s *SQLiteStore) Load(ctx context.Context, key string) (state.Record, bool, error) {
	var blob StateBlob
	err := s.db.WithContext(ctx).Where("state_key = ?", key).First(&blob).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return state.Record{}, false, nil
		}
		return state.Record{}, false, fmt.Errorf("load %s: %w", key, err)
	}
	return state.Record{Data: blob.Data, Version: blob.Version, UpdatedAt: blob.UpdatedAt}, true, nil
}

// Save inserts the first version or updates the row whose version matches.
func (s *SQLiteStore) Save(ctx context.Context, key string, data []byte, expectedVersion int64) (int64, error) {
	now := time.Now().UTC()
	db := s.db.WithContext(ctx)
	var result *gorm.DB
	if expectedVersion == 0 {
		result = db.Clauses(clause.OnConflict{DoNothing: true}).Create(&StateBlob{
			Key:       key,
			Version:   1,
			Data:      data,
			UpdatedAt: now,
		})
	} else {
		result = db.Model(&StateBlob{}).
			Where("state_key = ? AND version = ?", key, expectedVersion).
			Updates(map[string]any{
				"data":       data,
				"version":    gorm.Expr("version + 1"),
				"updated_at": now,
			})
	}
	if result.Error != nil {
		return 0, fmt.Errorf("save %s: %w", key, result.Error)
	}
	if result.RowsAffected == 0 {
		return 0, state.ErrVersionConflict
	}
	return expectedVersion + 1, nil
}

var _ state.Store = (*SQLiteStore)(nil)
