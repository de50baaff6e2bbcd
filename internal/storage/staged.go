package storage

import (
	"context"
	"encoding/json"
	"fmt"
)

type readFunc func(ctx context.Context, key string) ([]byte, error)

// stagedTx buffers writes over a backend reader until the owning Update commits them.
type stagedTx struct {
	read    readFunc
	writes  map[string][]byte
	deletes map[string]bool
	order   []string
}

func newStagedTx(read readFunc) *stagedTx {
	return &stagedTx{
		read:    read,
		writes:  make(map[string][]byte),
		deletes: make(map[string]bool),
	}
}

func (t *stagedTx) Get(ctx context.Context, key string) ([]byte, error) {
	if t.deletes[key] {
		return nil, ErrNotFound
	}
	if v, ok := t.writes[key]; ok {
		return append([]byte(nil), v...), nil
	}
	return t.read(ctx, key)
}

func (t *stagedTx) Set(_ context.Context, key string, value []byte) error {
	if err := checkJSON(key, value); err != nil {
		return err
	}
	t.touch(key)
	delete(t.deletes, key)
	t.writes[key] = append([]byte(nil), value...)
	return nil
}

func (t *stagedTx) Delete(_ context.Context, key string) error {
	t.touch(key)
	delete(t.writes, key)
	t.deletes[key] = true
	return nil
}

func (t *stagedTx) touch(key string) {
	if _, ok := t.writes[key]; ok {
		return
	}
	if t.deletes[key] {
		return
	}
	t.order = append(t.order, key)
}

func (t *stagedTx) empty() bool {
	return len(t.order) == 0
}

// apply replays the staged mutations in first-touch order.
func (t *stagedTx) apply(set func(key string, value []byte) error, del func(key string) error) error {
	for _, key := range t.order {
		if t.deletes[key] {
			if err := del(key); err != nil {
				return err
			}
			continue
		}
		if v, ok := t.writes[key]; ok {
			if err := set(key, v); err != nil {
				return err
			}
		}
	}
	return nil
}

func checkJSON(key string, value []byte) error {
	if !json.Valid(value) {
		return fmt.Errorf("%w: key %q", ErrInvalidJSON, key)
	}
	return nil
}
