package storage

import (
	"context"
	"sync"
)

// MemoryStore keeps everything in process memory. Updates are serialized by a mutex.
type MemoryStore struct {
	mu   sync.Mutex
	data map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string][]byte)}
}

func (s *MemoryStore) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.get(key)
}

func (s *MemoryStore) get(key string) ([]byte, error) {
	v, ok := s.data[key]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), v...), nil
}

func (s *MemoryStore) Set(_ context.Context, key string, value []byte) error {
	if err := checkJSON(key, value); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = append([]byte(nil), value...)
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}

func (s *MemoryStore) Update(ctx context.Context, _ []string, fn func(tx Accessor) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := newStagedTx(func(_ context.Context, key string) ([]byte, error) {
		return s.get(key)
	})
	if err := fn(tx); err != nil {
		return err
	}
	return tx.apply(
		func(key string, value []byte) error {
			s.data[key] = value
			return nil
		},
		func(key string) error {
			delete(s.data, key)
			return nil
		},
	)
}

func (s *MemoryStore) Ping(context.Context) error { return nil }

func (s *MemoryStore) Close() error { return nil }
