package storage

import (
	"context"
	"errors"
	"time"

	"github.com/gamevault/storefront-backend/pkg/db"
	"github.com/gamevault/storefront-backend/pkg/db/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SQLBackend persists entries in the storefront_entries table.
type SQLBackend struct {
	client *db.Client
	name   string
}

func NewSQLBackend(client *db.Client, driver string) *SQLBackend {
	return &SQLBackend{client: client, name: driver}
}

func (b *SQLBackend) Name() string { return b.name }

// Client exposes the database client, e.g. for running migrations.
func (b *SQLBackend) Client() *db.Client { return b.client }

func (b *SQLBackend) Ping(ctx context.Context) error {
	return b.client.Ping(ctx)
}

func (b *SQLBackend) Open(sessionID string) Store {
	return &SQLStore{db: b.client.DB(), sessionID: sessionID}
}

// PurgeIdle deletes every entry of sessions whose most recent write is older
// than cutoff and returns the number of rows removed.
func (b *SQLBackend) PurgeIdle(ctx context.Context, cutoff time.Time) (int64, error) {
	var deleted int64
	err := b.client.WithTx(ctx, func(tx *gorm.DB) error {
		idle := tx.Model(&models.StorefrontEntry{}).
			Select("session_id").
			Group("session_id").
			Having("MAX(updated_at) < ?", cutoff.UTC())
		res := tx.Where("session_id IN (?)", idle).Delete(&models.StorefrontEntry{})
		if res.Error != nil {
			return res.Error
		}
		deleted = res.RowsAffected
		return nil
	})
	return deleted, err
}

// SQLStore is a session view over the storefront_entries table.
type SQLStore struct {
	db        *gorm.DB
	sessionID string
}

func (s *SQLStore) Get(ctx context.Context, key string) (string, error) {
	var entry models.StorefrontEntry
	err := s.db.WithContext(ctx).
		Where("session_id = ? AND entry_key = ?", s.sessionID, key).
		Take(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return entry.Value, nil
}

func (s *SQLStore) Set(ctx context.Context, key, value string) error {
	now := time.Now().UTC()
	entry := models.StorefrontEntry{SessionID: s.sessionID, Key: key, Value: value, CreatedAt: now, UpdatedAt: now}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "session_id"}, {Name: "entry_key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&entry).Error
}

func (s *SQLStore) Delete(ctx context.Context, key string) error {
	return s.db.WithContext(ctx).
		Where("session_id = ? AND entry_key = ?", s.sessionID, key).
		Delete(&models.StorefrontEntry{}).Error
}
