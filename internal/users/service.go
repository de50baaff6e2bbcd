package users

import (
	"context"
	"errors"
	"fmt"

	"eventhub/pkg/logger"
)

var ErrCannotDeleteSelf = errors.New("administrators cannot delete their own account")

// BookingRemover deletes the bookings owned by a user.
type BookingRemover interface {
	DeleteUserBookings(ctx context.Context, userID int64) (int, error)
}

type Service interface {
	ListUsers(ctx context.Context) ([]Profile, error)
	GetUser(ctx context.Context, id int64) (*User, error)
	DeleteUser(ctx context.Context, id, actorID int64) (int, error)
	DisplayNames(ctx context.Context) (map[int64]string, error)
	CountUsers(ctx context.Context) (int, error)
}

type service struct {
	repo     Repository
	bookings BookingRemover
	log      *logger.Logger
}

func NewService(repo Repository, bookings BookingRemover, log *logger.Logger) Service {
	if log == nil {
		log = logger.GetDefault()
	}
	return &service{repo: repo, bookings: bookings, log: log}
}

func (s *service) ListUsers(ctx context.Context) ([]Profile, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	out := make([]Profile, 0, len(list))
	for i := range list {
		out = append(out, list[i].Profile())
	}
	return out, nil
}

func (s *service) GetUser(ctx context.Context, id int64) (*User, error) {
	return s.repo.Get(ctx, id)
}

// DeleteUser removes the user and then their bookings, returning how many
// bookings went with them. The terminal session slot is cleared when it
// belongs to the deleted user.
func (s *service) DeleteUser(ctx context.Context, id, actorID int64) (int, error) {
	if id == actorID {
		return 0, ErrCannotDeleteSelf
	}
	err := s.repo.WithTx(ctx, func(tx Repository) error {
		if err := tx.Delete(ctx, id); err != nil {
			return err
		}
		current, err := tx.CurrentUser(ctx)
		if err == nil && current.ID == id {
			return tx.ClearCurrentUser(ctx)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	removed := 0
	if s.bookings != nil {
		removed, err = s.bookings.DeleteUserBookings(ctx, id)
		if err != nil {
			return 0, err
		}
	}
	s.log.InfoWithContext(ctx, "User Deleted", map[string]interface{}{
		"user_id":          id,
		"actor_id":         actorID,
		"bookings_removed": removed,
	})
	return removed, nil
}

func (s *service) DisplayNames(ctx context.Context) (map[int64]string, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	names := make(map[int64]string, len(list))
	for _, u := range list {
		names[u.ID] = u.Name
	}
	return names, nil
}

func (s *service) CountUsers(ctx context.Context) (int, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		return 0, err
	}
	return len(list), nil
}
