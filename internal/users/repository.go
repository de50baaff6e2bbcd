package users

import (
	"context"
	"errors"
	"strings"

	"eventhub/internal/storage"
	"eventhub/pkg/logger"
)

var ErrUserNotFound = errors.New("user not found")

type Repository interface {
	List(ctx context.Context) ([]User, error)
	Get(ctx context.Context, id int64) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	Save(ctx context.Context, user *User) error
	Delete(ctx context.Context, id int64) error
	NextID(ctx context.Context) (int64, error)

	// CurrentUser is the signed-in user of a terminal session.
	CurrentUser(ctx context.Context) (*User, error)
	SetCurrentUser(ctx context.Context, user *User) error
	ClearCurrentUser(ctx context.Context) error

	WithTx(ctx context.Context, fn func(tx Repository) error) error
}

type repository struct {
	store storage.Store
	kv    storage.Accessor
	log   *logger.Logger
	inTx  bool
}

func NewRepository(store storage.Store, log *logger.Logger) Repository {
	return &repository{store: store, kv: store, log: log}
}

func (r *repository) load(ctx context.Context) (*storage.Collection[User], error) {
	return storage.LoadCollection[User](ctx, r.kv, storage.KeyUsers, r.log)
}

func (r *repository) List(ctx context.Context) ([]User, error) {
	c, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	return c.Items, nil
}

func (r *repository) Get(ctx context.Context, id int64) (*User, error) {
	c, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range c.Items {
		if c.Items[i].ID == id {
			return &c.Items[i], nil
		}
	}
	return nil, ErrUserNotFound
}

// GetByEmail matches case-insensitively.
func (r *repository) GetByEmail(ctx context.Context, email string) (*User, error) {
	c, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range c.Items {
		if strings.EqualFold(c.Items[i].Email, email) {
			return &c.Items[i], nil
		}
	}
	return nil, ErrUserNotFound
}

func (r *repository) Save(ctx context.Context, user *User) error {
	c, err := r.load(ctx)
	if err != nil {
		return err
	}
	for i := range c.Items {
		if c.Items[i].ID == user.ID {
			c.Items[i] = *user
			return storage.SaveCollection(ctx, r.kv, storage.KeyUsers, c)
		}
	}
	c.Items = append(c.Items, *user)
	return storage.SaveCollection(ctx, r.kv, storage.KeyUsers, c)
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	c, err := r.load(ctx)
	if err != nil {
		return err
	}
	for i := range c.Items {
		if c.Items[i].ID == id {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			return storage.SaveCollection(ctx, r.kv, storage.KeyUsers, c)
		}
	}
	return ErrUserNotFound
}

func (r *repository) NextID(ctx context.Context) (int64, error) {
	c, err := r.load(ctx)
	if err != nil {
		return 0, err
	}
	var max int64
	for _, u := range c.Items {
		if u.ID > max {
			max = u.ID
		}
	}
	return max + 1, nil
}

func (r *repository) CurrentUser(ctx context.Context) (*User, error) {
	u, err := storage.LoadObject[User](ctx, r.kv, storage.KeyCurrentUser, r.log)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	return u, err
}

func (r *repository) SetCurrentUser(ctx context.Context, user *User) error {
	return storage.SaveObject(ctx, r.kv, storage.KeyCurrentUser, user)
}

func (r *repository) ClearCurrentUser(ctx context.Context) error {
	return r.kv.Delete(ctx, storage.KeyCurrentUser)
}

func (r *repository) WithTx(ctx context.Context, fn func(tx Repository) error) error {
	if r.inTx {
		return fn(r)
	}
	keys := []string{storage.KeyUsers, storage.KeyCurrentUser}
	return r.store.Update(ctx, keys, func(tx storage.Accessor) error {
		return fn(&repository{kv: tx, log: r.log, inTx: true})
	})
}
