package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/gofrs/flock"
)

const fileLockRetry = 10 * time.Millisecond

// FileStore persists every key in a single JSON object on disk, in the manner
// of a browser profile's local storage. Writes go through a temp file and rename.
// A lock file next to the store serializes processes sharing the same path;
// mu serializes goroutines sharing this instance.
type FileStore struct {
	mu   sync.Mutex
	path string
	lock *flock.Flock
}

// NewFileStore opens (or lazily creates) the store file at path.
func NewFileStore(path string) (*FileStore, error) {
	if path == "" {
		return nil, errors.New("file store path cannot be empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create store directory: %w", err)
	}
	return &FileStore{path: path, lock: flock.New(path + ".lock")}, nil
}

// DefaultFilePath places the store under the user's config directory.
func DefaultFilePath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "eventhub", "store.json"), nil
}

func (s *FileStore) Path() string {
	return s.path
}

func (s *FileStore) load() (map[string]json.RawMessage, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return make(map[string]json.RawMessage), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read store file: %w", err)
	}
	if len(data) == 0 {
		return make(map[string]json.RawMessage), nil
	}
	entries := make(map[string]json.RawMessage)
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to decode store file %s: %w", s.path, err)
	}
	return entries, nil
}

func (s *FileStore) save(entries map[string]json.RawMessage) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode store file: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".store-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("failed to replace store file: %w", err)
	}
	return nil
}

// acquire takes the cross-process lock, shared for readers.
func (s *FileStore) acquire(ctx context.Context, shared bool) (func(), error) {
	var (
		ok  bool
		err error
	)
	if shared {
		ok, err = s.lock.TryRLockContext(ctx, fileLockRetry)
	} else {
		ok, err = s.lock.TryLockContext(ctx, fileLockRetry)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to lock store file: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("failed to lock store file: %w", ctx.Err())
	}
	return func() { _ = s.lock.Unlock() }, nil
}

func (s *FileStore) Get(ctx context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	unlock, err := s.acquire(ctx, true)
	if err != nil {
		return nil, err
	}
	defer unlock()

	entries, err := s.load()
	if err != nil {
		return nil, err
	}
	v, ok := entries[key]
	if !ok {
		return nil, ErrNotFound
	}
	return []byte(v), nil
}

func (s *FileStore) Set(ctx context.Context, key string, value []byte) error {
	return s.Update(ctx, []string{key}, func(tx Accessor) error {
		return tx.Set(ctx, key, value)
	})
}

func (s *FileStore) Delete(ctx context.Context, key string) error {
	return s.Update(ctx, []string{key}, func(tx Accessor) error {
		return tx.Delete(ctx, key)
	})
}

func (s *FileStore) Update(ctx context.Context, _ []string, fn func(tx Accessor) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	unlock, err := s.acquire(ctx, false)
	if err != nil {
		return err
	}
	defer unlock()

	entries, err := s.load()
	if err != nil {
		return err
	}
	tx := newStagedTx(func(_ context.Context, key string) ([]byte, error) {
		v, ok := entries[key]
		if !ok {
			return nil, ErrNotFound
		}
		return append([]byte(nil), v...), nil
	})
	if err := fn(tx); err != nil {
		return err
	}
	if tx.empty() {
		return nil
	}
	err = tx.apply(
		func(key string, value []byte) error {
			entries[key] = json.RawMessage(value)
			return nil
		},
		func(key string) error {
			delete(entries, key)
			return nil
		},
	)
	if err != nil {
		return err
	}
	return s.save(entries)
}

func (s *FileStore) Ping(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	unlock, err := s.acquire(ctx, true)
	if err != nil {
		return err
	}
	defer unlock()
	_, err = s.load()
	return err
}

func (s *FileStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lock.Close()
}
