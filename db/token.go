package db

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TokenPair is the access/refresh credential pair for the current session.
// The two tokens are always written and cleared together.
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// TokenStore defines decoupled operations for token persistence. Load returns
// nil (and no error) when no pair is stored. All operations are idempotent.
type TokenStore interface {
	Save(ctx context.Context, pair TokenPair) error
	Load(ctx context.Context) (*TokenPair, error)
	Clear(ctx context.Context) error
}

// gormTokenStore is a GORM-backed implementation of TokenStore keeping the
// pair under two prefixed keys in the kv_items table.
// Use constructor NewTokenStore to obtain an instance.
type gormTokenStore struct {
	db         *gorm.DB
	accessKey  string
	refreshKey string
}

// NewTokenStore creates a TokenStore. Accepts *gorm.DB to avoid global access.
// The storage keys are namespaced by prefix, e.g. "mzigoego_access_token".
func NewTokenStore(db *gorm.DB, prefix, accessKey, refreshKey string) TokenStore {
	return &gormTokenStore{
		db:         db,
		accessKey:  prefix + accessKey,
		refreshKey: prefix + refreshKey,
	}
}

func (s *gormTokenStore) Save(ctx context.Context, pair TokenPair) error {
	if s.db == nil {
		return fmt.Errorf("token store not initialized")
	}
	// Both keys are written in one transaction so a crash can never leave
	// only half of the pair behind.
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, item := range []KVItem{
			{Key: s.accessKey, Value: pair.Access},
			{Key: s.refreshKey, Value: pair.Refresh},
		} {
			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "key"}},
				DoUpdates: clause.AssignmentColumns([]string{"value"}),
			}).Create(&item).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *gormTokenStore) Load(ctx context.Context) (*TokenPair, error) {
	if s.db == nil {
		return nil, fmt.Errorf("token store not initialized")
	}
	access, err := s.get(ctx, s.accessKey)
	if err != nil {
		return nil, err
	}
	refresh, err := s.get(ctx, s.refreshKey)
	if err != nil {
		return nil, err
	}
	if access == nil && refresh == nil {
		return nil, nil // No pair stored
	}
	pair := &TokenPair{}
	if access != nil {
		pair.Access = *access
	}
	if refresh != nil {
		pair.Refresh = *refresh
	}
	return pair, nil
}

func (s *gormTokenStore) Clear(ctx context.Context) error {
	if s.db == nil {
		return fmt.Errorf("token store not initialized")
	}
	// Deleting absent keys is a no-op, so Clear on an empty store succeeds.
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Where("key IN ?", []string{s.accessKey, s.refreshKey}).Delete(&KVItem{}).Error
	})
}

func (s *gormTokenStore) get(ctx context.Context, key string) (*string, error) {
	var item KVItem
	err := s.db.WithContext(ctx).First(&item, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item.Value, nil
}
