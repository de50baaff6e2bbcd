package analytics

import (
	"context"

	"eventhub/internal/bookings"
	"eventhub/internal/events"
	"eventhub/internal/storage"
	"eventhub/internal/users"
	"eventhub/pkg/logger"
)

// Snapshot is a consistent read of the collections the dashboard aggregates.
type Snapshot struct {
	Events   []events.Event
	Bookings []bookings.Booking
	Users    int
}

// Repository defines the analytics repository interface
type Repository interface {
	Snapshot(ctx context.Context) (*Snapshot, error)
}

type repository struct {
	store storage.Store
	log   *logger.Logger
}

func NewRepository(store storage.Store, log *logger.Logger) Repository {
	return &repository{store: store, log: log}
}

// Snapshot reads all three collections inside one store update that writes nothing.
func (r *repository) Snapshot(ctx context.Context) (*Snapshot, error) {
	snap := &Snapshot{}
	keys := []string{storage.KeyEvents, storage.KeyBookings, storage.KeyUsers}
	err := r.store.Update(ctx, keys, func(tx storage.Accessor) error {
		ev, err := storage.LoadCollection[events.Event](ctx, tx, storage.KeyEvents, r.log)
		if err != nil {
			return err
		}
		bk, err := storage.LoadCollection[bookings.Booking](ctx, tx, storage.KeyBookings, r.log)
		if err != nil {
			return err
		}
		us, err := storage.LoadCollection[users.User](ctx, tx, storage.KeyUsers, r.log)
		if err != nil {
			return err
		}
		snap.Events, snap.Bookings, snap.Users = ev.Items, bk.Items, len(us.Items)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return snap, nil
}
