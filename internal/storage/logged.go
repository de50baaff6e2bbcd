package storage

import (
	"context"
	"errors"
	"strings"
	"time"

	"eventhub/pkg/logger"
)

// LoggedStore records the op, key and latency of every call on the wrapped
// store. A missing key is not an error.
type LoggedStore struct {
	Store
	log *logger.Logger
}

func WithLogging(store Store, log *logger.Logger) *LoggedStore {
	return &LoggedStore{Store: store, log: log}
}

func (s *LoggedStore) record(ctx context.Context, op, key string, start time.Time, err error) {
	if errors.Is(err, ErrNotFound) {
		err = nil
	}
	s.log.LogStoreOp(ctx, op, key, time.Since(start), err)
}

func (s *LoggedStore) Get(ctx context.Context, key string) ([]byte, error) {
	start := time.Now()
	v, err := s.Store.Get(ctx, key)
	s.record(ctx, "get", key, start, err)
	return v, err
}

func (s *LoggedStore) Set(ctx context.Context, key string, value []byte) error {
	start := time.Now()
	err := s.Store.Set(ctx, key, value)
	s.record(ctx, "set", key, start, err)
	return err
}

func (s *LoggedStore) Delete(ctx context.Context, key string) error {
	start := time.Now()
	err := s.Store.Delete(ctx, key)
	s.record(ctx, "delete", key, start, err)
	return err
}

func (s *LoggedStore) Update(ctx context.Context, keys []string, fn func(tx Accessor) error) error {
	start := time.Now()
	err := s.Store.Update(ctx, keys, fn)
	s.record(ctx, "update", strings.Join(keys, ","), start, err)
	return err
}

// Unwrap returns the wrapped backend.
func (s *LoggedStore) Unwrap() Store {
	return s.Store
}
