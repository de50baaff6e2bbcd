package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"eventhub/internal/auth"
	"eventhub/internal/bookings"
	"eventhub/internal/events"
	"eventhub/internal/payments"
	"eventhub/internal/shared/config"
	"eventhub/internal/shared/database"
	"eventhub/internal/storage"
	"eventhub/internal/users"
	"eventhub/pkg/logger"
)

var errNotLoggedIn = errors.New("not logged in: run eventctl login first")

// app holds the lazily opened store and the services built on it.
type app struct {
	cfg   *config.Config
	log   *logger.Logger
	out   io.Writer
	store storage.Store
	db    *database.DB
}

func (a *app) open() error {
	if a.store != nil {
		return nil
	}
	db, err := database.InitDB(a.cfg)
	if err != nil {
		return err
	}
	store, err := database.OpenStore(a.cfg, db, a.log)
	if err != nil {
		db.Close()
		return err
	}
	a.db, a.store = db, store
	return nil
}

func (a *app) close() {
	if a.store != nil {
		_ = a.store.Close()
		a.store = nil
	}
	if a.db != nil {
		_ = a.db.Close()
		a.db = nil
	}
}

func (a *app) eventRepo() events.Repository {
	return events.NewRepository(a.store, a.log)
}

func (a *app) userRepo() users.Repository {
	return users.NewRepository(a.store, a.log)
}

func (a *app) ledger() bookings.Service {
	return bookings.NewService(bookings.NewRepository(a.store, a.log),
		bookings.WithLogger(a.log),
		bookings.WithReleaseOnCancel(a.cfg.Booking.ReleaseSeatsOnCancel),
	)
}

func (a *app) userService() users.Service {
	return users.NewService(a.userRepo(), a.ledger(), a.log)
}

func (a *app) authService() auth.Service {
	return auth.NewService(a.userRepo(), a.cfg.JWT, a.log)
}

func (a *app) processor() *payments.Processor {
	return payments.NewProcessor(a.cfg.Booking.PaymentDelay)
}

// currentUser returns the signed-in user recorded in the store.
func (a *app) currentUser(ctx context.Context) (*users.User, error) {
	u, err := a.userRepo().CurrentUser(ctx)
	if errors.Is(err, users.ErrUserNotFound) {
		return nil, errNotLoggedIn
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read current user: %w", err)
	}
	return u, nil
}

func (a *app) actor(ctx context.Context) (bookings.Actor, *users.User, error) {
	u, err := a.currentUser(ctx)
	if err != nil {
		return bookings.Actor{}, nil, err
	}
	return bookings.Actor{UserID: u.ID, Admin: u.IsAdmin()}, u, nil
}
