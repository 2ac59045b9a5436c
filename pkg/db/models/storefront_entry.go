package models

import "time"

// StorefrontEntry is one session-scoped key/value pair.
type StorefrontEntry struct {
	ID        int64     `gorm:"column:id;primaryKey;autoIncrement"`
	SessionID string    `gorm:"column:session_id;type:varchar(64);not null;uniqueIndex:storefront_entries_session_key"`
	Key       string    `gorm:"column:entry_key;type:varchar(64);not null;uniqueIndex:storefront_entries_session_key"`
	Value     string    `gorm:"column:value;type:text;not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName pins the table created by the migrations.
func (StorefrontEntry) TableName() string {
	return "storefront_entries"
}
