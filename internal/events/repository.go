package events

import (
	"context"
	"errors"

	"eventhub/internal/storage"
	"eventhub/pkg/logger"
)

var ErrEventNotFound = errors.New("event not found")

// Repository is a typed view over the events collection.
type Repository interface {
	List(ctx context.Context) ([]Event, error)
	Get(ctx context.Context, id int64) (*Event, error)
	Save(ctx context.Context, event *Event) error
	Delete(ctx context.Context, id int64) error
	NextID(ctx context.Context) (int64, error)

	// WithTx runs fn against a repository bound to one atomic store update.
	WithTx(ctx context.Context, fn func(tx Repository) error) error
}

type repository struct {
	store storage.Store
	kv    storage.Accessor
	log   *logger.Logger
	inTx  bool
}

// NewRepository returns a repository over store.
func NewRepository(store storage.Store, log *logger.Logger) Repository {
	return &repository{store: store, kv: store, log: log}
}

// NewTxRepository binds a repository to an accessor inside an existing store update.
func NewTxRepository(tx storage.Accessor, log *logger.Logger) Repository {
	return &repository{kv: tx, log: log, inTx: true}
}

func (r *repository) load(ctx context.Context) (*storage.Collection[Event], error) {
	return storage.LoadCollection[Event](ctx, r.kv, storage.KeyEvents, r.log)
}

func (r *repository) List(ctx context.Context) ([]Event, error) {
	c, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	return c.Items, nil
}

func (r *repository) Get(ctx context.Context, id int64) (*Event, error) {
	c, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range c.Items {
		if c.Items[i].ID == id {
			return &c.Items[i], nil
		}
	}
	return nil, ErrEventNotFound
}

func (r *repository) Save(ctx context.Context, event *Event) error {
	c, err := r.load(ctx)
	if err != nil {
		return err
	}
	replaced := false
	for i := range c.Items {
		if c.Items[i].ID == event.ID {
			c.Items[i] = *event
			replaced = true
			break
		}
	}
	if !replaced {
		c.Items = append(c.Items, *event)
	}
	return storage.SaveCollection(ctx, r.kv, storage.KeyEvents, c)
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	c, err := r.load(ctx)
	if err != nil {
		return err
	}
	for i := range c.Items {
		if c.Items[i].ID == id {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			return storage.SaveCollection(ctx, r.kv, storage.KeyEvents, c)
		}
	}
	return ErrEventNotFound
}

func (r *repository) NextID(ctx context.Context) (int64, error) {
	c, err := r.load(ctx)
	if err != nil {
		return 0, err
	}
	var max int64
	for _, e := range c.Items {
		if e.ID > max {
			max = e.ID
		}
	}
	return max + 1, nil
}

func (r *repository) WithTx(ctx context.Context, fn func(tx Repository) error) error {
	if r.inTx {
		return fn(r)
	}
	return r.store.Update(ctx, []string{storage.KeyEvents}, func(tx storage.Accessor) error {
		return fn(NewTxRepository(tx, r.log))
	})
}
