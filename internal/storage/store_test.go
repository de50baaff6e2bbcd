package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofrs/flock"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func backends(t *testing.T) map[string]Store {
	t.Helper()

	fs, err := NewFileStore(filepath.Join(t.TempDir(), "profile", "store.json"))
	require.NoError(t, err)

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	stores := map[string]Store{
		"memory": NewMemoryStore(),
		"file":   fs,
		"redis":  NewRedisStore(client, "test"),
	}

	if dsn := os.Getenv("TEST_DATABASE_DSN"); dsn != "" {
		db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Silent)})
		require.NoError(t, err)
		ps, err := NewPostgresStore(db, "test_"+t.Name())
		require.NoError(t, err)
		t.Cleanup(func() {
			db.Where("namespace = ?", "test_"+t.Name()).Delete(&Entry{})
		})
		stores["postgres"] = ps
	}
	return stores
}

func TestStoreBasics(t *testing.T) {
	ctx := context.Background()
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, s.Ping(ctx))

			_, err := s.Get(ctx, KeyEvents)
			assert.ErrorIs(t, err, ErrNotFound)

			require.NoError(t, s.Set(ctx, KeyEvents, []byte(`[{"id":1}]`)))
			got, err := s.Get(ctx, KeyEvents)
			require.NoError(t, err)
			assert.JSONEq(t, `[{"id":1}]`, string(got))

			err = s.Set(ctx, KeyEvents, []byte(`{not json`))
			assert.ErrorIs(t, err, ErrInvalidJSON)

			require.NoError(t, s.Delete(ctx, KeyEvents))
			_, err = s.Get(ctx, KeyEvents)
			assert.ErrorIs(t, err, ErrNotFound)
		})
	}
}

func TestStoreUpdateIsAllOrNothing(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("boom")

	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, s.Set(ctx, KeyEvents, []byte(`[]`)))

			err := s.Update(ctx, []string{KeyEvents, KeyBookings}, func(tx Accessor) error {
				require.NoError(t, tx.Set(ctx, KeyEvents, []byte(`[{"id":1}]`)))
				require.NoError(t, tx.Set(ctx, KeyBookings, []byte(`[{"id":2}]`)))
				return boom
			})
			assert.ErrorIs(t, err, boom)

			got, err := s.Get(ctx, KeyEvents)
			require.NoError(t, err)
			assert.JSONEq(t, `[]`, string(got))
			_, err = s.Get(ctx, KeyBookings)
			assert.ErrorIs(t, err, ErrNotFound)

			err = s.Update(ctx, []string{KeyEvents, KeyBookings}, func(tx Accessor) error {
				v, err := tx.Get(ctx, KeyEvents)
				if err != nil {
					return err
				}
				assert.JSONEq(t, `[]`, string(v))
				if err := tx.Set(ctx, KeyEvents, []byte(`[{"id":1}]`)); err != nil {
					return err
				}
				// reads observe the transaction's own writes
				v, err = tx.Get(ctx, KeyEvents)
				if err != nil {
					return err
				}
				assert.JSONEq(t, `[{"id":1}]`, string(v))
				return tx.Set(ctx, KeyBookings, []byte(`[{"id":2}]`))
			})
			require.NoError(t, err)

			got, err = s.Get(ctx, KeyBookings)
			require.NoError(t, err)
			assert.JSONEq(t, `[{"id":2}]`, string(got))
		})
	}
}

func TestStoreUpdateSerializesWriters(t *testing.T) {
	ctx := context.Background()
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, s.Set(ctx, "counter", []byte(`0`)))

			const workers = 8
			var wg sync.WaitGroup
			for i := 0; i < workers; i++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					err := s.Update(ctx, []string{"counter"}, func(tx Accessor) error {
						v, err := tx.Get(ctx, "counter")
						if err != nil {
							return err
						}
						n := int(v[0]-'0') + 1
						return tx.Set(ctx, "counter", []byte{byte('0' + n)})
					})
					assert.NoError(t, err)
				}()
			}
			wg.Wait()

			got, err := s.Get(ctx, "counter")
			require.NoError(t, err)
			assert.Equal(t, "8", string(got))
		})
	}
}

func TestFileStorePersistsAcrossInstances(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "store.json")

	first, err := NewFileStore(path)
	require.NoError(t, err)
	require.NoError(t, first.Set(ctx, KeyCurrentUser, []byte(`{"id":3}`)))

	second, err := NewFileStore(path)
	require.NoError(t, err)
	got, err := second.Get(ctx, KeyCurrentUser)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":3}`, string(got))
}

func TestFileStoreSerializesInstancesOnOnePath(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "store.json")

	var stores []*FileStore
	for range 2 {
		s, err := NewFileStore(path)
		require.NoError(t, err)
		t.Cleanup(func() { s.Close() })
		stores = append(stores, s)
	}

	const perStore = 25
	var wg sync.WaitGroup
	for _, s := range stores {
		wg.Add(1)
		go func(s *FileStore) {
			defer wg.Done()
			for range perStore {
				err := s.Update(ctx, []string{"counter"}, func(tx Accessor) error {
					n := 0
					if raw, err := tx.Get(ctx, "counter"); err == nil {
						n, _ = strconv.Atoi(string(raw))
					}
					time.Sleep(time.Millisecond)
					return tx.Set(ctx, "counter", []byte(strconv.Itoa(n+1)))
				})
				assert.NoError(t, err)
			}
		}(s)
	}
	wg.Wait()

	raw, err := stores[0].Get(ctx, "counter")
	require.NoError(t, err)
	assert.Equal(t, strconv.Itoa(2*perStore), string(raw))
}

func TestFileStoreUpdateWaitsForLockHolder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")
	s, err := NewFileStore(path)
	require.NoError(t, err)
	defer s.Close()

	holder := flock.New(path + ".lock")
	require.NoError(t, holder.Lock())

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	err = s.Set(ctx, KeyEvents, []byte(`[]`))
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	require.NoError(t, holder.Unlock())
	assert.NoError(t, s.Set(context.Background(), KeyEvents, []byte(`[]`)))
}

func TestFileStoreCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")
	require.NoError(t, os.WriteFile(path, []byte("garbage"), 0o644))

	s, err := NewFileStore(path)
	require.NoError(t, err)
	_, err = s.Get(context.Background(), KeyEvents)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}
