package models

import (
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// KeyValue is one row of the persistent token store. A nil ExpiresAt
// never expires.
type KeyValue struct {
	Key       string `gorm:"primaryKey;size:191"`
	Value     string `gorm:"not null"`
	UpdatedAt time.Time
	ExpiresAt *time.Time `gorm:"index"`
}

func (KeyValue) TableName() string { return "key_values" }

// SaveKeyValue inserts or overwrites the value stored under key.
func SaveKeyValue(db *gorm.DB, key, value string, expiresAt *time.Time) error {
	row := KeyValue{Key: key, Value: value, UpdatedAt: time.Now(), ExpiresAt: expiresAt}
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at", "expires_at"}),
	}).Create(&row).Error
}

// GetKeyValue returns the value under key and whether it exists and is
// unexpired at now.
func GetKeyValue(db *gorm.DB, key string, now time.Time) (string, bool, error) {
	var row KeyValue
	err := db.Where("key = ? AND (expires_at IS NULL OR expires_at > ?)", key, now).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return row.Value, true, nil
}

// DeleteKeyValue removes key; a missing key is not an error.
func DeleteKeyValue(db *gorm.DB, key string) error {
	return db.Where("key = ?", key).Delete(&KeyValue{}).Error
}

// PurgeExpiredKeyValues deletes every row expired at now and returns how
// many it removed.
func PurgeExpiredKeyValues(db *gorm.DB, now time.Time) (int64, error) {
	res := db.Where("expires_at IS NOT NULL AND expires_at <= ?", now).Delete(&KeyValue{})
	return res.RowsAffected, res.Error
}
