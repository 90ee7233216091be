package kv

import (
	"context"
	"fmt"
	"time"

	"github.com/junaidrashid-git/revista-gateway/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// GormStore keeps values in the key_values table. With a positive ttl
// every value expires ttl after it was last set.
type GormStore struct {
	db  *gorm.DB
	ttl time.Duration
	now func() time.Time
}

func NewGormStore(db *gorm.DB, ttl time.Duration) *GormStore {
	return &GormStore{db: db, ttl: ttl, now: time.Now}
}

// OpenPostgres connects with dsn and migrates the key_values table.
func OpenPostgres(dsn string, ttl time.Duration) (*GormStore, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("kv: connect postgres: %w", err)
	}
	if err := db.AutoMigrate(&models.KeyValue{}); err != nil {
		return nil, fmt.Errorf("kv: migrate: %w", err)
	}
	return NewGormStore(db, ttl), nil
}

func (s *GormStore) Get(ctx context.Context, key string) (string, error) {
	v, ok, err := models.GetKeyValue(s.db.WithContext(ctx), key, s.now())
	if err != nil {
		return "", fmt.Errorf("kv: get %q: %w", key, err)
	}
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

func (s *GormStore) Set(ctx context.Context, key, value string) error {
	var expiresAt *time.Time
	if s.ttl > 0 {
		at := s.now().Add(s.ttl)
		expiresAt = &at
	}
	if err := models.SaveKeyValue(s.db.WithContext(ctx), key, value, expiresAt); err != nil {
		return fmt.Errorf("kv: set %q: %w", key, err)
	}
	return nil
}

func (s *GormStore) Remove(ctx context.Context, key string) error {
	if err := models.DeleteKeyValue(s.db.WithContext(ctx), key); err != nil {
		return fmt.Errorf("kv: remove %q: %w", key, err)
	}
	return nil
}

// PurgeExpired deletes the rows whose expiry has passed.
func (s *GormStore) PurgeExpired(ctx context.Context) (int, error) {
	n, err := models.PurgeExpiredKeyValues(s.db.WithContext(ctx), s.now())
	if err != nil {
		return 0, fmt.Errorf("kv: purge: %w", err)
	}
	return int(n), nil
}
