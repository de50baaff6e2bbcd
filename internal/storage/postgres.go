package storage

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Entry is one row of the kv_entries table.
type Entry struct {
	Namespace string    `gorm:"primaryKey;size:64"`
	Key       string    `gorm:"column:entry_key;primaryKey;size:128"`
	Value     string    `gorm:"type:jsonb;not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (Entry) TableName() string {
	return "kv_entries"
}

// PostgresStore keeps keys as jsonb rows. Update serializes writers with
// transaction-scoped advisory locks taken in key order.
type PostgresStore struct {
	db        *gorm.DB
	namespace string
}

// NewPostgresStore migrates the kv_entries table and returns the store.
func NewPostgresStore(db *gorm.DB, namespace string) (*PostgresStore, error) {
	if err := db.AutoMigrate(&Entry{}); err != nil {
		return nil, fmt.Errorf("failed to migrate kv_entries: %w", err)
	}
	return &PostgresStore{db: db, namespace: namespace}, nil
}

func (s *PostgresStore) get(ctx context.Context, db *gorm.DB, key string) ([]byte, error) {
	var e Entry
	err := db.WithContext(ctx).
		Where("namespace = ? AND entry_key = ?", s.namespace, key).
		Take(&e).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get %s: %w", key, err)
	}
	return []byte(e.Value), nil
}

func (s *PostgresStore) set(ctx context.Context, db *gorm.DB, key string, value []byte) error {
	e := Entry{
		Namespace: s.namespace,
		Key:       key,
		Value:     string(value),
		UpdatedAt: time.Now().UTC(),
	}
	err := db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "namespace"}, {Name: "entry_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&e).Error
	if err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}
	return nil
}

func (s *PostgresStore) del(ctx context.Context, db *gorm.DB, key string) error {
	err := db.WithContext(ctx).
		Where("namespace = ? AND entry_key = ?", s.namespace, key).
		Delete(&Entry{}).Error
	if err != nil {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}

func (s *PostgresStore) Get(ctx context.Context, key string) ([]byte, error) {
	return s.get(ctx, s.db, key)
}

func (s *PostgresStore) Set(ctx context.Context, key string, value []byte) error {
	if err := checkJSON(key, value); err != nil {
		return err
	}
	return s.set(ctx, s.db, key, value)
}

func (s *PostgresStore) Delete(ctx context.Context, key string) error {
	return s.del(ctx, s.db, key)
}

func (s *PostgresStore) Update(ctx context.Context, keys []string, fn func(tx Accessor) error) error {
	locks := append([]string(nil), keys...)
	sort.Strings(locks)

	return s.db.WithContext(ctx).Transaction(func(db *gorm.DB) error {
		for _, k := range locks {
			if err := db.Exec("SELECT pg_advisory_xact_lock(hashtext(?))", s.namespace+":"+k).Error; err != nil {
				return fmt.Errorf("failed to lock %s: %w", k, err)
			}
		}

		staged := newStagedTx(func(ctx context.Context, key string) ([]byte, error) {
			return s.get(ctx, db, key)
		})
		if err := fn(staged); err != nil {
			return err
		}
		return staged.apply(
			func(key string, value []byte) error {
				return s.set(ctx, db, key, value)
			},
			func(key string) error {
				return s.del(ctx, db, key)
			},
		)
	})
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close is a no-op; the connection pool is owned by the database package.
func (s *PostgresStore) Close() error { return nil }
