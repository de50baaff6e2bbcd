package bookings

import (
	"context"
	"errors"

	"eventhub/internal/events"
	"eventhub/internal/storage"
	"eventhub/pkg/logger"
)

// Repository is everything the ledger reads and writes. WithTx binds a
// repository to one atomic update spanning the events and bookings keys.
type Repository interface {
	GetEvent(ctx context.Context, id int64) (*events.Event, error)
	SaveEvent(ctx context.Context, event *events.Event) error

	ListBookings(ctx context.Context) ([]Booking, error)
	GetBooking(ctx context.Context, id int64) (*Booking, error)
	AppendBooking(ctx context.Context, booking *Booking) error
	SaveBooking(ctx context.Context, booking *Booking) error
	DeleteBookingsByUser(ctx context.Context, userID int64) (int, error)

	WithTx(ctx context.Context, fn func(tx Repository) error) error
}

type repository struct {
	store  storage.Store
	kv     storage.Accessor
	events events.Repository
	log    *logger.Logger
	inTx   bool
}

// NewRepository returns a repository over store.
func NewRepository(store storage.Store, log *logger.Logger) Repository {
	return &repository{
		store:  store,
		kv:     store,
		events: events.NewRepository(store, log),
		log:    log,
	}
}

func (r *repository) GetEvent(ctx context.Context, id int64) (*events.Event, error) {
	e, err := r.events.Get(ctx, id)
	if errors.Is(err, events.ErrEventNotFound) {
		return nil, ErrInvalidEventReference
	}
	return e, err
}

func (r *repository) SaveEvent(ctx context.Context, event *events.Event) error {
	return r.events.Save(ctx, event)
}

func (r *repository) load(ctx context.Context) (*storage.Collection[Booking], error) {
	return storage.LoadCollection[Booking](ctx, r.kv, storage.KeyBookings, r.log)
}

func (r *repository) ListBookings(ctx context.Context) ([]Booking, error) {
	c, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	return c.Items, nil
}

func (r *repository) GetBooking(ctx context.Context, id int64) (*Booking, error) {
	c, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range c.Items {
		if c.Items[i].ID == id {
			return &c.Items[i], nil
		}
	}
	return nil, ErrBookingNotFound
}

func (r *repository) AppendBooking(ctx context.Context, booking *Booking) error {
	c, err := r.load(ctx)
	if err != nil {
		return err
	}
	c.Items = append(c.Items, *booking)
	return storage.SaveCollection(ctx, r.kv, storage.KeyBookings, c)
}

func (r *repository) SaveBooking(ctx context.Context, booking *Booking) error {
	c, err := r.load(ctx)
	if err != nil {
		return err
	}
	for i := range c.Items {
		if c.Items[i].ID == booking.ID {
			c.Items[i] = *booking
			return storage.SaveCollection(ctx, r.kv, storage.KeyBookings, c)
		}
	}
	return ErrBookingNotFound
}

func (r *repository) DeleteBookingsByUser(ctx context.Context, userID int64) (int, error) {
	c, err := r.load(ctx)
	if err != nil {
		return 0, err
	}
	kept := c.Items[:0]
	removed := 0
	for _, b := range c.Items {
		if b.UserID == userID {
			removed++
			continue
		}
		kept = append(kept, b)
	}
	if removed == 0 {
		return 0, nil
	}
	c.Items = kept
	return removed, storage.SaveCollection(ctx, r.kv, storage.KeyBookings, c)
}

func (r *repository) WithTx(ctx context.Context, fn func(tx Repository) error) error {
	if r.inTx {
		return fn(r)
	}
	keys := []string{storage.KeyEvents, storage.KeyBookings}
	return r.store.Update(ctx, keys, func(tx storage.Accessor) error {
		return fn(&repository{
			kv:     tx,
			events: events.NewTxRepository(tx, r.log),
			log:    r.log,
			inTx:   true,
		})
	})
}
