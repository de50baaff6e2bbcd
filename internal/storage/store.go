// Package storage is the persisted key-value store behind the booking engine.
// Keys are strings and values are JSON documents.
package storage

import (
	"context"
	"errors"
)

// Collection keys.
const (
	KeyEvents      = "events"
	KeyBookings    = "bookings"
	KeyUsers       = "users"
	KeyCurrentUser = "currentUser"
)

var (
	ErrNotFound    = errors.New("key not found")
	ErrInvalidJSON = errors.New("value is not valid JSON")
	ErrConflict    = errors.New("concurrent update conflict")
)

// Accessor reads and writes individual keys.
type Accessor interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// Store is an Accessor that can also apply a read-modify-write atomically.
type Store interface {
	Accessor

	// Update runs fn against a transactional view. Writes made through the
	// view become visible together once fn returns nil; nothing is written
	// when fn fails. keys names the keys fn reads, which the backend guards
	// against concurrent writers. fn may run more than once on backends
	// that retry optimistic conflicts.
	Update(ctx context.Context, keys []string, fn func(tx Accessor) error) error

	Ping(ctx context.Context) error
	Close() error
}
